// Package config loads and validates brokenlayers configuration.
//
// Values come from an optional YAML file and are then overridden by CLI
// flags. The file is looked up at --config, or else in the XDG config
// directory (~/.config/brokenlayers/config.yaml on Linux,
// %APPDATA%\brokenlayers\config.yaml on Windows).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "brokenlayers"

	// DefaultConfigFile is the file name looked up in the XDG config directory.
	DefaultConfigFile = "config.yaml"

	// DefaultOnError keeps the run atomic: one unreadable document aborts it.
	DefaultOnError = "abort"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConflictingCheckers is returned when both a checker command and a manifest are set.
	ErrConflictingCheckers = errors.New("conflicting checkers: command and manifest cannot be used together")
)

// Config holds all brokenlayers settings.
type Config struct {
	Checker CheckerConfig `yaml:"checker"`

	// OnError is "abort" or "skip" and decides what an unreadable document does to the run.
	OnError string `yaml:"on_error" validate:"required,oneof=abort skip"`

	// Print, when set, copies the report to stdout in this format.
	Print string `yaml:"print" validate:"omitempty,oneof=text json jsonl markdown"`

	// NoColor disables colored stdout output.
	NoColor bool `yaml:"no_color"`

	// Verbose enables debug logging on stderr.
	Verbose bool `yaml:"verbose"`
}

// CheckerConfig selects how the GIS toolkit is reached.
type CheckerConfig struct {
	// Command is the toolkit command line; the document path is appended.
	Command string `yaml:"command"`

	// Manifest is a YAML export of toolkit results to replay instead.
	Manifest string `yaml:"manifest"`

	// Timeout bounds a single document check; zero disables it.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{OnError: DefaultOnError}
}

// DefaultPath returns the XDG location of the configuration file.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, DefaultConfigFile)
}

// Find resolves the configuration file to load. An explicit path must
// exist. Without one, the XDG default is used when present; an empty
// result means no file should be loaded. A default path that exists but
// cannot be reached is an error.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
			}
			return "", err
		}
		return explicit, nil
	}

	path := DefaultPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to access config %q: %w", path, err)
	}
	return path, nil
}

// Load reads a YAML configuration file over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}
	if cfg.OnError == "" {
		cfg.OnError = DefaultOnError
	}
	return cfg, nil
}

// Validate runs schema validation (struct tags) and cross-field checks.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	if c.Checker.Command != "" && c.Checker.Manifest != "" {
		return ErrConflictingCheckers
	}
	return nil
}

// formatValidationErrors converts validator errors into user-friendly messages.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

// formatFieldError converts a single field validation error to a human-readable message.
func formatFieldError(fe validator.FieldError) string {
	field := yamlName(fe.StructNamespace())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// yamlName maps a struct namespace such as "Config.Checker.Timeout" to the
// key a user writes in the file, "checker.timeout".
func yamlName(namespace string) string {
	keys := map[string]string{
		"Config.OnError":         "on_error",
		"Config.Print":           "print",
		"Config.Checker.Timeout": "checker.timeout",
	}
	if k, ok := keys[namespace]; ok {
		return k
	}
	return namespace
}
