package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
)

// Settings holds the user-tunable options read from the YAML settings file.
type Settings struct {
	Language   string `yaml:"language" default:"en"`
	WindowDays int    `yaml:"window-days" default:"7"`
	Prompt     string `yaml:"prompt"`
	ServePort  string `yaml:"serve-port"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() (*Settings, error) {
	s := new(Settings)
	if err := defaults.Set(s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigDefaults, err)
	}
	return s, nil
}

// DefaultSettingsPath returns <UserConfigDir>/go-contacts/config.yml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName, ConfigFileName), nil
}

// LoadSettings reads the settings file at path on top of the defaults.
// A missing file is only tolerated when optional is set.
func LoadSettings(path string, optional bool) (*Settings, error) {
	s, err := DefaultSettings()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			slog.Debug(MsgConfigMissing,
				LogKeyComponent, CompSettings,
				LogKeyFile, path,
			)
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
	}
	defer func() { _ = f.Close() }()

	if err := DecodeSettings(f, s); err != nil {
		return nil, err
	}

	slog.Debug(MsgConfigLoaded,
		LogKeyComponent, CompSettings,
		LogKeyFile, path,
	)
	return s, nil
}

// DecodeSettings decodes YAML from r into s and validates the result.
// An empty document leaves s untouched.
func DecodeSettings(r io.Reader, s *Settings) error {
	if err := yaml.NewDecoder(r).Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", ErrConfigParse, err)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", ErrConfigInvalid, err)
	}
	return nil
}

// Validate checks the language, the birthday window and the optional port.
func (s *Settings) Validate() error {
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrLanguage, s.Language)
	}
	if s.WindowDays <= 0 {
		return errors.New(ErrWindow)
	}
	if s.ServePort != "" {
		return ValidatePort(s.ServePort)
	}
	return nil
}

// ValidatePort checks that port is a number in [MinPort, MaxPort].
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}

// Assert interface compliance.
var _ defaults.Setter = (*Settings)(nil)

// SetDefaults implements the defaults.Setter interface.
func (s *Settings) SetDefaults() {
	if defaults.CanUpdate(s.Prompt) {
		s.Prompt = DefaultPrompt
	}
}
