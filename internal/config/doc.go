// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.focuslist/focuslist.toml or OS-specific config directory)
// 3. Project config file (focuslist.toml or .focuslist.toml in the working directory)
// 4. Environment variables (FOCUSLIST_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.focuslist/focuslist.toml (preferred)
// - Windows: %APPDATA%\focuslist\focuslist.toml
// - macOS: ~/Library/Application Support/focuslist/focuslist.toml
// - Linux/BSD: $XDG_CONFIG_HOME/focuslist/focuslist.toml or ~/.config/focuslist/focuslist.toml
package config
