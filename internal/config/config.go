// Package config loads countdown CLI settings from YAML files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/countdown/pkg/duration"
)

// Defaults.
const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultPulses       = 1
	DefaultLogLevel     = "info"
)

// Config holds the settings for one countdown run.
type Config struct {
	// Label is a human-readable timer name recorded in events.
	Label string `yaml:"label"`

	// Duration is the countdown length. Required.
	Duration Duration `yaml:"duration"`

	// StartImmediately starts the timer on creation. Only interactive reads
	// it; run always starts the timer.
	StartImmediately bool `yaml:"start_immediately"`

	// AutoRestart polls with TimeUpAndTryRestart so the timer pulses.
	AutoRestart bool `yaml:"auto_restart"`

	// Pulses is the number of expiries to wait for with AutoRestart.
	// Zero means run until interrupted.
	Pulses int `yaml:"pulses"`

	// PollInterval is how often the run command checks the timer.
	PollInterval Duration `yaml:"poll_interval"`

	// EventLog is an optional path for the CBOR event log.
	EventLog string `yaml:"event_log"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with defaults applied and no duration set.
func Default() Config {
	return Config{
		Pulses:       DefaultPulses,
		PollInterval: Duration(DefaultPollInterval),
		LogLevel:     DefaultLogLevel,
	}
}

// Parse decodes YAML on top of Default. It does not validate.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}
	return &cfg, nil
}

// Load reads and parses a config file. It does not validate, so that
// command-line flags can fill in missing values first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config can drive a timer.
func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return &LoadError{Message: fmt.Sprintf("duration must be positive, got %v", time.Duration(c.Duration))}
	}
	if c.PollInterval <= 0 {
		return &LoadError{Message: fmt.Sprintf("poll_interval must be positive, got %v", time.Duration(c.PollInterval))}
	}
	if c.Pulses < 0 {
		return &LoadError{Message: fmt.Sprintf("pulses must not be negative, got %d", c.Pulses)}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &LoadError{Message: "invalid log_level", Cause: err}
	}
	return nil
}

// ParseLogLevel maps a level name to an slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (use debug, info, warn, error)", s)
	}
}

// Duration is a time.Duration that decodes from seconds ("90", 1.5) or Go
// duration strings ("1m30s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	parsed, err := duration.Parse(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// LoadError describes a config file that could not be loaded or validated.
type LoadError struct {
	// File is the path to the file that failed to load (empty for flags).
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File != "" {
		return e.File + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// String renders the config as YAML, for debug output.
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "<config: " + strconv.Quote(err.Error()) + ">"
	}
	return string(data)
}
