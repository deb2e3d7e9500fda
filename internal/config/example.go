package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# focuslist configuration file
# Values can be overridden by FOCUSLIST_* environment variables or CLI flags

# State directory for session files and logs (supports ~ expansion)
state_dir = "~/.focuslist"

# Sessions idle for longer than this are removed at startup ("0s" disables)
session_ttl = "24h"

# Session key holding the task list
storage_key = "tasks"

# Maximum characters per task
max_task_chars = 100

# Filter shown at startup: all, completed, pending
default_filter = "all"

# Ask before deleting a task
confirm_delete = true

# How long a toast stays visible
toast_duration = "3s"

# Which toast an expiry timer removes:
#   own   - the toast the timer was started for
#   front - the oldest visible toast
toast_expiry = "own"

# Logging
log_level = "info"     # debug, info, warn, error
log_format = "text"    # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
