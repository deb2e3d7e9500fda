package config

import (
	"strconv"
	"time"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultStateDir      = "~/.focuslist"
	DefaultStorageKey    = "tasks"
	DefaultMaxTaskChars  = 100
	DefaultToastDuration = 3 * time.Second
	DefaultToastExpiry   = "own"
	DefaultSessionTTL    = 24 * time.Hour
	DefaultFilter        = "all"
	DefaultConfirmDelete = true
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for focuslist.
type Config struct {
	// Paths
	StateDir string `toml:"state_dir"`

	// Session (not persisted in config file)
	SessionID  string        `toml:"-"`
	NewSession bool          `toml:"-"`
	SessionTTL time.Duration `toml:"session_ttl"`

	// Tasks
	StorageKey    string `toml:"storage_key"`
	MaxTaskChars  int    `toml:"max_task_chars"`
	DefaultFilter string `toml:"default_filter"`
	ConfirmDelete bool   `toml:"confirm_delete"`

	// Toasts
	ToastDuration time.Duration `toml:"toast_duration"`
	ToastExpiry   string        `toml:"toast_expiry"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Config files that were applied (computed)
	Files []string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"state_dir",
		"session",
		"session_ttl",
		"storage_key",
		"max_task_chars",
		"default_filter",
		"confirm_delete",
		"toast_duration",
		"toast_expiry",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the display value of a configurable field.
func (c *Config) Value(field string) string {
	switch field {
	case "state_dir":
		return c.StateDir
	case "session":
		return c.SessionID
	case "session_ttl":
		return c.SessionTTL.String()
	case "storage_key":
		return c.StorageKey
	case "max_task_chars":
		return strconv.Itoa(c.MaxTaskChars)
	case "default_filter":
		return c.DefaultFilter
	case "confirm_delete":
		return strconv.FormatBool(c.ConfirmDelete)
	case "toast_duration":
		return c.ToastDuration.String()
	case "toast_expiry":
		return c.ToastExpiry
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	}
	return ""
}
