package assistant

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/engine"
)

// Session-level error kinds, alongside those of package contacts.
var (
	ErrInvalidWindow  = errors.New(config.ErrWindow)
	ErrUnknownCommand = errors.New(config.ErrUnknownCmd)
)

// Publisher receives a freshly rendered greeting calendar after every command.
type Publisher interface {
	Publish(data []byte)
}

// Session reads commands, applies them to its Directory and writes replies.
// It owns the directory exclusively; nothing else may touch it while Run is active.
type Session struct {
	Directory  *contacts.Directory
	Clock      engine.Clock
	Importer   *engine.Importer
	Calendar   *engine.CalendarWriter
	Publisher  Publisher // optional
	Translator *Translator

	Prompt     string
	WindowDays int

	out io.Writer
}

// NewSession wires a session with an empty directory and the real clock.
func NewSession(out io.Writer, tr *Translator, settings *config.Settings) *Session {
	s := &Session{
		Directory:  contacts.NewDirectory(),
		Clock:      engine.RealClock{},
		Importer:   &engine.Importer{},
		Translator: tr,
		Prompt:     settings.Prompt,
		WindowDays: settings.WindowDays,
		out:        out,
	}
	s.Calendar = &engine.CalendarWriter{
		FormatSummary: func(name string) string {
			return tr.Msg(msgEventSummary, map[string]any{"Name": name})
		},
	}
	return s
}

// Run processes lines from in until exit/close, end of input, or ctx cancellation.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	log := slog.With(config.LogKeyComponent, config.CompSession)
	log.Info(config.MsgSessionStart)
	defer log.Info(config.MsgSessionEnd)

	s.publish()

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(s.out, s.Prompt); err != nil {
			return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("%s: %w", config.ErrReadInput, err)
			}
			return nil
		}

		reply, quit := s.Execute(ctx, scanner.Text())
		if reply != "" {
			if _, err := fmt.Fprintln(s.out, reply); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
			}
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one input line and returns the reply text and whether the
// session should end. Errors are turned into their user-facing message.
func (s *Session) Execute(ctx context.Context, line string) (string, bool) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return "", false
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompSession,
		config.LogKeyCommand, name,
		config.LogKeyArgs, len(args),
	)

	if name == config.CmdClose || name == config.CmdExit {
		return s.Translator.Msg(msgBye, nil), true
	}

	cmd, ok := commands[name]
	if !ok {
		return s.errorReply(name, ErrUnknownCommand), false
	}

	reply, err := cmd(ctx, s, args)
	if err != nil {
		return s.errorReply(name, err), false
	}
	s.publish()
	return reply, false
}

// splitFields splits line on whitespace. A double-quoted run is one field,
// so "John Doe" names a contact with a space; an unclosed quote runs to the end.
func splitFields(line string) []string {
	var (
		fields  []string
		field   strings.Builder
		quoted  bool
		inField bool
	)
	for _, r := range line {
		switch {
		case r == config.QuoteRune:
			quoted = !quoted
			inField = true
		case unicode.IsSpace(r) && !quoted:
			if inField {
				fields = append(fields, field.String())
				field.Reset()
				inField = false
			}
		default:
			field.WriteRune(r)
			inField = true
		}
	}
	if inField {
		fields = append(fields, field.String())
	}
	return fields
}

// errorReply maps an error kind to its fixed message.
func (s *Session) errorReply(command string, err error) string {
	msg, known := errorMessage(err)
	if known {
		slog.Debug(config.MsgCommandErr,
			config.LogKeyComponent, config.CompSession,
			config.LogKeyCommand, command,
			config.LogKeyError, err,
		)
	} else {
		slog.Error(config.ErrCommandFailed,
			config.LogKeyComponent, config.CompSession,
			config.LogKeyCommand, command,
			config.LogKeyError, err,
		)
	}
	return s.Translator.Msg(msg, nil)
}

func errorMessage(err error) (*i18n.Message, bool) {
	switch {
	case errors.Is(err, contacts.ErrInvalidPhoneFormat):
		return msgErrPhone, true
	case errors.Is(err, contacts.ErrInvalidDateFormat):
		return msgErrDate, true
	case errors.Is(err, contacts.ErrContactNotFound):
		return msgErrNotFound, true
	case errors.Is(err, contacts.ErrMissingArgument):
		return msgErrMissing, true
	case errors.Is(err, ErrInvalidWindow):
		return msgErrWindow, true
	case errors.Is(err, ErrUnknownCommand):
		return msgInvalidCommand, true
	default:
		return msgErrInternal, false
	}
}

// publish pushes the current greeting calendar to the Publisher, if any.
func (s *Session) publish() {
	if s.Publisher == nil {
		return
	}

	var buf bytes.Buffer
	if err := s.renderCalendar(&buf, s.WindowDays); err != nil {
		slog.Error(config.ErrPublishCalendar,
			config.LogKeyComponent, config.CompSession,
			config.LogKeyError, err,
		)
		return
	}
	s.Publisher.Publish(buf.Bytes())
}

func (s *Session) renderCalendar(w io.Writer, days int) error {
	now := s.Clock.Now()
	return s.Calendar.Encode(w, s.Directory.UpcomingBirthdays(now, days), now)
}
