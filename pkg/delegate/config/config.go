package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidLogLevel is returned when log_level is not a known level.
var ErrInvalidLogLevel = errors.New("invalid log level")

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds observability settings for one delegate.
type Config struct {
	// Name identifies the delegate in logs, metrics and spans.
	// Default: "delegate"
	Name string `yaml:"name" json:"name"`

	// Logging enables structured logging of registrations, removals and
	// notifications.
	Logging bool `yaml:"logging" json:"logging"`

	// LogLevel is the minimum level logged: debug, info, warn or error.
	// Default: "info"
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Metrics enables OpenTelemetry metrics.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Tracing enables OpenTelemetry spans around notifications.
	Tracing bool `yaml:"tracing" json:"tracing"`
}

// Default returns a Config with every feature disabled.
func Default() Config {
	return Config{
		Name:     "delegate",
		LogLevel: "info",
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns LogLevel as a slog.Level, or slog.LevelInfo if it is
// empty or unknown.
func (c Config) Level() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
}
