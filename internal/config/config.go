// Package config loads server configuration.
//
// Sources are applied in priority order:
//  1. Defaults
//  2. User config file (~/.hoofy-todo/config.toml)
//  3. Explicit config file (--config)
//  4. Environment variables (HOOFY_TODO_*)
//
// None of this configures the todo list itself: lists live only in memory
// for the lifetime of a session.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultDirName is the per-user data and config directory under $HOME.
	DefaultDirName = ".hoofy-todo"
	// ConfigFileName is the config file looked up in the user directory.
	ConfigFileName = "config.toml"

	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultEventBuffer = 64
	DefaultReminderTag = "system-reminder"
	DefaultJournalOn   = false
)

// Config is the full server configuration.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Events   EventsConfig   `toml:"events"`
	Journal  JournalConfig  `toml:"journal"`
	Reminder ReminderConfig `toml:"reminder"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// EventsConfig controls the tool event bus.
type EventsConfig struct {
	Buffer int `toml:"buffer"`
}

// JournalConfig controls the sqlite event journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	DataDir string `toml:"data_dir"`
}

// ReminderConfig controls the injected reminder block.
type ReminderConfig struct {
	// Tag wraps the reminder; an empty string disables wrapping.
	Tag *string `toml:"tag"`
}

// TagOrDefault returns the configured tag, or DefaultReminderTag when unset.
func (r ReminderConfig) TagOrDefault() string {
	if r.Tag == nil {
		return DefaultReminderTag
	}
	return *r.Tag
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Events: EventsConfig{Buffer: DefaultEventBuffer},
		Journal: JournalConfig{
			Enabled: DefaultJournalOn,
			DataDir: filepath.Join("~", DefaultDirName),
		},
	}
}

// Load builds the configuration. explicitPath may be empty; when set, the
// file must exist.
func Load(explicitPath string) (*Config, error) {
	cfg := Default()

	if userFile := userConfigFile(); userFile != "" {
		if err := loadFile(cfg, userFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
	}

	if explicitPath != "" {
		path := expandPath(explicitPath)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Journal.DataDir = expandPath(cfg.Journal.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: must be json or console", c.Log.Format))
	}
	if c.Events.Buffer <= 0 {
		errs = append(errs, fmt.Errorf("events.buffer %d: must be positive", c.Events.Buffer))
	}
	if c.Journal.Enabled && c.Journal.DataDir == "" {
		errs = append(errs, errors.New("journal.data_dir: required when the journal is enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// loadFile decodes a TOML file over cfg; keys absent from the file keep
// their current values.
func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// userConfigFile returns ~/.hoofy-todo/config.toml if it exists.
func userConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, DefaultDirName, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("HOOFY_TODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HOOFY_TODO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("HOOFY_TODO_DATA_DIR"); v != "" {
		cfg.Journal.DataDir = v
	}
	if v := os.Getenv("HOOFY_TODO_JOURNAL"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HOOFY_TODO_JOURNAL=%q: %w", v, err)
		}
		cfg.Journal.Enabled = enabled
	}
	return nil
}

// expandPath expands environment variables and a leading ~/.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
