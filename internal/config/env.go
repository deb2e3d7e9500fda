package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables.
const (
	EnvStateDir      = "FOCUSLIST_STATE_DIR"
	EnvSession       = "FOCUSLIST_SESSION"
	EnvSessionTTL    = "FOCUSLIST_SESSION_TTL"
	EnvStorageKey    = "FOCUSLIST_STORAGE_KEY"
	EnvMaxChars      = "FOCUSLIST_MAX_CHARS"
	EnvFilter        = "FOCUSLIST_FILTER"
	EnvConfirmDelete = "FOCUSLIST_CONFIRM_DELETE"
	EnvToastDuration = "FOCUSLIST_TOAST_DURATION"
	EnvToastExpiry   = "FOCUSLIST_TOAST_EXPIRY"
	EnvLogLevel      = "FOCUSLIST_LOG_LEVEL"
	EnvLogFormat     = "FOCUSLIST_LOG_FORMAT"
	EnvLogTimestamps = "FOCUSLIST_LOG_TIMESTAMPS"
	EnvLogCaller     = "FOCUSLIST_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvStateDir); v != "" {
		cfg.StateDir = v
		set("state_dir")
	}
	if v := os.Getenv(EnvSession); v != "" {
		cfg.SessionID = v
		set("session")
	}
	if v := os.Getenv(EnvSessionTTL); v != "" {
		d, err := parseDuration(EnvSessionTTL, v)
		if err != nil {
			return err
		}
		cfg.SessionTTL = d
		set("session_ttl")
	}
	if v := os.Getenv(EnvStorageKey); v != "" {
		cfg.StorageKey = v
		set("storage_key")
	}
	if v := os.Getenv(EnvMaxChars); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvMaxChars, v)
		}
		cfg.MaxTaskChars = n
		set("max_task_chars")
	}
	if v := os.Getenv(EnvFilter); v != "" {
		cfg.DefaultFilter = v
		set("default_filter")
	}
	if v := os.Getenv(EnvConfirmDelete); v != "" {
		cfg.ConfirmDelete = boolFromString(v)
		set("confirm_delete")
	}
	if v := os.Getenv(EnvToastDuration); v != "" {
		d, err := parseDuration(EnvToastDuration, v)
		if err != nil {
			return err
		}
		cfg.ToastDuration = d
		set("toast_duration")
	}
	if v := os.Getenv(EnvToastExpiry); v != "" {
		cfg.ToastExpiry = v
		set("toast_expiry")
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
	return nil
}

// parseDuration accepts Go durations ("3s", "24h") and bare milliseconds.
func parseDuration(name, v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", name, v)
	}
	return d, nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
