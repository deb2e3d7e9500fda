// Package appdir provides constants and utilities for the focuslist state directory.
package appdir

import "path/filepath"

const (
	// Dir is the name of the focuslist state directory under the user's home.
	Dir = ".focuslist"

	// SessionsDir holds one key-value file per session.
	SessionsDir = "sessions"

	// LogsDir holds one log file per TUI session.
	LogsDir = "logs"

	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "focuslist.toml"

	sessionExt = ".json"
	logExt     = ".log"
)

// SessionsPath returns the sessions directory within a state directory.
func SessionsPath(stateDir string) string {
	return filepath.Join(base(stateDir), SessionsDir)
}

// SessionFile returns the key-value file for a session id.
func SessionFile(stateDir, sessionID string) string {
	return filepath.Join(SessionsPath(stateDir), sessionID+sessionExt)
}

// LogsPath returns the logs directory within a state directory.
func LogsPath(stateDir string) string {
	return filepath.Join(base(stateDir), LogsDir)
}

// LogFile returns the log file for a session id.
func LogFile(stateDir, sessionID string) string {
	return filepath.Join(LogsPath(stateDir), sessionID+logExt)
}

// ConfigPath returns the config file within a state directory.
func ConfigPath(stateDir string) string {
	return filepath.Join(base(stateDir), DefaultConfigFile)
}

// IsSessionFile reports whether name looks like a session file.
func IsSessionFile(name string) bool {
	return filepath.Ext(name) == sessionExt
}

// IsLogFile reports whether name looks like a session log file.
func IsLogFile(name string) bool {
	return filepath.Ext(name) == logExt
}

func base(stateDir string) string {
	if stateDir == "" {
		return Dir
	}
	return stateDir
}
