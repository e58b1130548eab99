package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-contacts/internal/assistant"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/server"
	"golang.org/x/sync/errgroup"
)

// main delegates to runMain so deferred calls (closing the log file) run
// before os.Exit.
func main() {
	os.Exit(runMain())
}

// options collects the command-line flags.
type options struct {
	showVersion bool
	debug       bool
	configPath  string
	servePort   string
	lang        string
}

func runMain() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           config.CmdUse,
		Short:         config.CmdShort,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.showVersion {
				printVersion(cmd.OutOrStdout())
				return nil
			}

			logCloser := setupLogging(opts.debug)
			if logCloser != nil {
				defer func() { _ = logCloser.Close() }()
			}

			// Cancel on SIGINT (Ctrl+C) or SIGTERM.
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logStartupInfo()

			if err := run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), opts); err != nil {
				slog.Error(config.ErrAppFailed,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
				return err
			}

			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.showVersion, config.FlagVersion, false, config.FlagDescVersion)
	f.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	f.StringVar(&opts.configPath, config.FlagConfig, "", config.FlagDescConfig)
	f.StringVar(&opts.servePort, config.FlagServe, "", config.FlagDescServe)
	f.StringVar(&opts.lang, config.FlagLang, "", config.FlagDescLang)

	return cmd
}

// run wires the session and, when a port is configured, the calendar feed.
// It returns when the session ends, the server fails, or ctx is cancelled.
func run(ctx context.Context, in io.Reader, out io.Writer, opts options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	sess := assistant.NewSession(out, assistant.NewTranslator(settings.Language), settings)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(ctx)

	if settings.ServePort != "" {
		srv := server.NewFeedServer(settings.ServePort)
		sess.Publisher = srv
		group.Go(func() error { return srv.Start(groupCtx) })
	}

	// The session blocks on input, so it is not part of the group:
	// a signal must not wait for the next line.
	done := make(chan error, config.ChannelBufferSize)
	go func() { done <- sess.Run(groupCtx, in) }()

	var sessionErr error
	select {
	case sessionErr = <-done:
	case <-groupCtx.Done():
		if ctx.Err() != nil {
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		}
	}

	cancel()
	if errors.Is(sessionErr, context.Canceled) {
		sessionErr = nil
	}
	return errors.Join(sessionErr, group.Wait())
}

// loadSettings reads the settings file and applies flag overrides.
// Without --config, a missing default file just means defaults.
func loadSettings(opts options) (*config.Settings, error) {
	path, optional := opts.configPath, false
	if path == "" {
		p, err := config.DefaultSettingsPath()
		if err != nil {
			return config.DefaultSettings()
		}
		path, optional = p, true
	}

	settings, err := config.LoadSettings(path, optional)
	if err != nil {
		return nil, err
	}

	if opts.lang != "" {
		settings.Language = opts.lang
	}
	if opts.servePort != "" {
		settings.ServePort = opts.servePort
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrConfigInvalid, err)
	}
	return settings, nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging sends JSON logs to the cache-dir log file only; stdout
// carries the conversation. Without a usable file, logs are discarded.
func setupLogging(debugMode bool) io.Closer {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	var w io.Writer = io.Discard
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			w, logFile = f, f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
