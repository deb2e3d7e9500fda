package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/focuslist/internal/session"
	"github.com/nibzard/focuslist/internal/toast"
	"github.com/nibzard/focuslist/internal/todo"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.focuslist/focuslist.toml or OS-specific config dir)
// 3. Project config file (focuslist.toml or .focuslist.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// Flags are registered on fs before parsing, so callers may add their own
// subcommand flags to fs first and read positional arguments from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Override from environment
	if err := loadFromEnv(cfg, sources); err != nil {
		return nil, err
	}

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{Config: cfg, Sources: sources}, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StateDir = DefaultStateDir
	cfg.StorageKey = DefaultStorageKey
	cfg.MaxTaskChars = DefaultMaxTaskChars
	cfg.DefaultFilter = DefaultFilter
	cfg.ConfirmDelete = DefaultConfirmDelete
	cfg.ToastDuration = DefaultToastDuration
	cfg.ToastExpiry = DefaultToastExpiry
	cfg.SessionTTL = DefaultSessionTTL
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// loadConfigFile decodes a TOML file over cfg and records which keys it set.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
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
	for _, key := range md.Keys() {
		if sources != nil {
			sources[key.String()] = source
		}
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	// Expand ~ in paths
	cfg.StateDir = expandPath(cfg.StateDir)
	if strings.TrimSpace(cfg.StateDir) == "" {
		return fmt.Errorf("state_dir must not be empty")
	}

	if cfg.NewSession {
		cfg.SessionID = session.NewID()
	} else {
		cfg.SessionID = session.ResolveID(cfg.SessionID)
	}
	if err := session.ValidateID(cfg.SessionID); err != nil {
		return err
	}

	cfg.StorageKey = strings.TrimSpace(cfg.StorageKey)
	if cfg.StorageKey == "" {
		return fmt.Errorf("storage_key must not be empty")
	}
	if cfg.MaxTaskChars <= 0 {
		return fmt.Errorf("max_task_chars must be positive, got %d", cfg.MaxTaskChars)
	}
	if cfg.ToastDuration <= 0 {
		return fmt.Errorf("toast_duration must be positive, got %s", cfg.ToastDuration)
	}
	if cfg.SessionTTL < 0 {
		return fmt.Errorf("session_ttl must not be negative, got %s", cfg.SessionTTL)
	}

	filter, err := todo.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		return err
	}
	cfg.DefaultFilter = string(filter)

	expiry, err := toast.ParseExpiry(cfg.ToastExpiry)
	if err != nil {
		return err
	}
	cfg.ToastExpiry = string(expiry)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch cfg.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q, must be one of: text, json, logfmt", cfg.LogFormat)
	}

	return nil
}

// GetConfigFile returns the config file with the highest precedence that
// was applied, or an empty string.
func (cws *ConfigWithSources) GetConfigFile() string {
	if n := len(cws.Config.Files); n > 0 {
		return cws.Config.Files[n-1]
	}
	return ""
}
