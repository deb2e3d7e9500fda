package config

import "flag"

// flagFields maps flag names to config field names for source tracking.
var flagFields = map[string]string{
	"state-dir":      "state_dir",
	"session":        "session",
	"session-ttl":    "session_ttl",
	"storage-key":    "storage_key",
	"max-chars":      "max_task_chars",
	"filter":         "default_filter",
	"confirm-delete": "confirm_delete",
	"toast-duration": "toast_duration",
	"toast-expiry":   "toast_expiry",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses CLI flags. Values already in cfg become the
// flag defaults, so only flags given on the command line override them.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("focuslist", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "State directory for sessions and logs")

	// Session
	fs.StringVar(&cfg.SessionID, "session", cfg.SessionID, "Session id (default: derived from the launching shell)")
	fs.BoolVar(&cfg.NewSession, "new-session", cfg.NewSession, "Start a fresh session with a random id")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Remove sessions idle for longer than this (0 disables)")

	// Tasks
	fs.StringVar(&cfg.StorageKey, "storage-key", cfg.StorageKey, "Session key holding the task list")
	fs.IntVar(&cfg.MaxTaskChars, "max-chars", cfg.MaxTaskChars, "Maximum characters per task")
	fs.StringVar(&cfg.DefaultFilter, "filter", cfg.DefaultFilter, "Task filter (all, completed, pending)")
	fs.BoolVar(&cfg.ConfirmDelete, "confirm-delete", cfg.ConfirmDelete, "Ask before deleting a task")

	// Toasts
	fs.DurationVar(&cfg.ToastDuration, "toast-duration", cfg.ToastDuration, "How long a toast stays visible")
	fs.StringVar(&cfg.ToastExpiry, "toast-expiry", cfg.ToastExpiry, "Toast expiry policy (own, front)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
