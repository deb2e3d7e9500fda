package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var allEnv = []string{
	EnvStateDir, EnvSession, EnvSessionTTL, EnvStorageKey, EnvMaxChars,
	EnvFilter, EnvConfirmDelete, EnvToastDuration, EnvToastExpiry,
	EnvLogLevel, EnvLogFormat, EnvLogTimestamps, EnvLogCaller,
}

// isolate points every config lookup at fresh temp directories.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, name := range allEnv {
		t.Setenv(name, "")
	}
	testChdir(t, work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	home, _ := isolate(t)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if want := filepath.Join(home, ".focuslist"); cfg.StateDir != want {
		t.Errorf("StateDir: got %q, want %q", cfg.StateDir, want)
	}
	if cfg.StorageKey != "tasks" {
		t.Errorf("StorageKey: got %q, want tasks", cfg.StorageKey)
	}
	if cfg.MaxTaskChars != 100 {
		t.Errorf("MaxTaskChars: got %d, want 100", cfg.MaxTaskChars)
	}
	if cfg.ToastDuration != 3*time.Second {
		t.Errorf("ToastDuration: got %v, want 3s", cfg.ToastDuration)
	}
	if cfg.ToastExpiry != "own" || cfg.DefaultFilter != "all" || !cfg.ConfirmDelete {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !strings.HasPrefix(cfg.SessionID, "shell-") {
		t.Errorf("SessionID: got %q, want shell-<ppid>", cfg.SessionID)
	}
	for _, field := range Fields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if cws.GetConfigFile() != "" {
		t.Errorf("GetConfigFile: got %q, want empty", cws.GetConfigFile())
	}
}

func TestLayering(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(home, ".focuslist", "focuslist.toml"), `
max_task_chars = 80
toast_duration = "5s"
default_filter = "pending"
`)
	writeFile(t, filepath.Join(work, "focuslist.toml"), `
max_task_chars = 60
toast_expiry = "front"
`)
	t.Setenv(EnvToastDuration, "1500")
	t.Setenv(EnvStorageKey, "work-tasks")

	cws, err := LoadWithSources(newFlagSet(), []string{"--filter", "completed", "--session", "abc"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field  string
		want   string
		source ConfigSource
	}{
		{"max_task_chars", "60", SourceProjFile},
		{"toast_expiry", "front", SourceProjFile},
		{"toast_duration", "1.5s", SourceEnv},
		{"storage_key", "work-tasks", SourceEnv},
		{"default_filter", "completed", SourceFlag},
		{"session", "abc", SourceFlag},
		{"confirm_delete", "true", SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := cfg.Value(tt.field); got != tt.want {
				t.Errorf("value: got %q, want %q", got, tt.want)
			}
			if got := cws.Sources[tt.field]; got != tt.source {
				t.Errorf("source: got %q, want %q", got, tt.source)
			}
		})
	}
	if len(cfg.Files) != 2 {
		t.Errorf("Files: got %v, want user and project files", cfg.Files)
	}
	if cws.GetConfigFile() != "focuslist.toml" {
		t.Errorf("GetConfigFile: got %q", cws.GetConfigFile())
	}
}

func TestXDGConfigFallback(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "focuslist", "focuslist.toml"), `log_level = "debug"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
}

func TestUnknownKeyIsAnError(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ".focuslist.toml"), `max_chars = 10`)

	_, err := Load(newFlagSet(), nil)
	if err == nil || !strings.Contains(err.Error(), "max_chars") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestNewSessionMintsID(t *testing.T) {
	isolate(t)
	a, err := Load(newFlagSet(), []string{"--new-session"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := Load(newFlagSet(), []string{"--new-session"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.SessionID == b.SessionID || strings.HasPrefix(a.SessionID, "shell-") {
		t.Errorf("expected fresh ids, got %q and %q", a.SessionID, b.SessionID)
	}
}

func TestSubcommandFlagsAndArgs(t *testing.T) {
	isolate(t)
	fs := newFlagSet()
	yes := fs.Bool("yes", false, "")

	if _, err := Load(fs, []string{"--yes", "--state-dir", t.TempDir(), "42"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !*yes {
		t.Error("subcommand flag not parsed")
	}
	if got := fs.Args(); len(got) != 1 || got[0] != "42" {
		t.Errorf("Args: got %v", got)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		args []string
	}{
		{"bad filter", EnvFilter, "archived", nil},
		{"bad expiry", EnvToastExpiry, "never", nil},
		{"bad duration", EnvToastDuration, "soon", nil},
		{"bad max chars", EnvMaxChars, "lots", nil},
		{"zero max chars", "", "", []string{"--max-chars", "0"}},
		{"bad session", EnvSession, "../escape", nil},
		{"bad log level", EnvLogLevel, "loud", nil},
		{"bad log format", "", "", []string{"--log-format", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.env != "" {
				t.Setenv(tt.env, tt.val)
			}
			if _, err := Load(newFlagSet(), tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBoolFromString(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", " on "} {
		if !boolFromString(s) {
			t.Errorf("boolFromString(%q) = false", s)
		}
	}
	for _, s := range []string{"0", "false", "no", ""} {
		if boolFromString(s) {
			t.Errorf("boolFromString(%q) = true", s)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FOCUSLIST_TEST_DIR", "/tmp/x")

	if got := expandPath("~/state"); got != filepath.Join(home, "state") {
		t.Errorf("expandPath(~/state) = %q", got)
	}
	if got := expandPath("$FOCUSLIST_TEST_DIR/y"); got != "/tmp/x/y" {
		t.Errorf("expandPath($VAR) = %q", got)
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, "focuslist.toml"), ExampleConfig())

	if _, err := Load(newFlagSet(), nil); err != nil {
		t.Fatalf("example config should load cleanly: %v", err)
	}
}

// testChdir changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}
