package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nibzard/focuslist/internal/appdir"
	"github.com/nibzard/focuslist/internal/config"
	"github.com/nibzard/focuslist/internal/session"
	"github.com/nibzard/focuslist/internal/todo"
)

// doctorCommand checks the config, state directory and stored tasks.
// It never modifies the session.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("focuslist doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	cfg := cws.Config

	fmt.Println("focuslist doctor")
	fmt.Println("================")
	fmt.Println()

	allOK := true

	// Config
	fmt.Println("Config:")
	if path := cws.GetConfigFile(); path != "" {
		fmt.Printf("  ✅ File: %s\n", path)
	} else {
		fmt.Println("  ✅ File: none (using defaults)")
	}
	fmt.Printf("  ✅ Session: %s (%s)\n", cfg.SessionID, cws.Sources["session"])
	fmt.Printf("  ✅ Max task chars: %d\n", cfg.MaxTaskChars)
	fmt.Printf("  ✅ Toasts: %s, expiry %s\n", cfg.ToastDuration, cfg.ToastExpiry)
	fmt.Println()

	// State directory
	fmt.Printf("State directory: %s\n", cfg.StateDir)
	if err := checkWritable(appdir.SessionsPath(cfg.StateDir)); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ Writable")
	}
	sessions, err := session.List(cfg.StateDir)
	if err != nil {
		fmt.Printf("  ❌ Listing sessions: %v\n", err)
		allOK = false
	} else {
		stale := 0
		for _, s := range sessions {
			if s.ID != cfg.SessionID && cfg.SessionTTL > 0 && time.Since(s.ModTime) >= cfg.SessionTTL {
				stale++
			}
		}
		fmt.Printf("  ✅ Sessions: %d\n", len(sessions))
		if stale > 0 {
			fmt.Printf("  ⚠️  %d stale sessions will be removed on next start\n", stale)
		}
	}
	fmt.Println()

	// Current session
	sessionPath := appdir.SessionFile(cfg.StateDir, cfg.SessionID)
	fmt.Printf("Session file: %s\n", sessionPath)
	if !checkSession(cfg, *verbose) {
		allOK = false
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Stored tasks may not load.")
	return fmt.Errorf("doctor checks failed")
}

// checkSession validates the stored snapshot of the current session.
func checkSession(cfg *config.Config, verbose bool) bool {
	if _, err := os.Stat(appdir.SessionFile(cfg.StateDir, cfg.SessionID)); os.IsNotExist(err) {
		fmt.Println("  ⚠️  Not found (created on first change)")
		return true
	}
	items, dropped, err := session.Inspect(cfg.StateDir, cfg.SessionID)
	if err != nil {
		fmt.Printf("  ❌ Error: %v (moved aside on next start)\n", err)
		return false
	}
	if len(dropped) > 0 {
		fmt.Printf("  ❌ Non-string values for keys: %s (moved aside on next start)\n", strings.Join(dropped, ", "))
		return false
	}
	fmt.Println("  ✅ OK")

	raw, ok := items[cfg.StorageKey]
	if !ok {
		fmt.Printf("  ⚠️  No %q key yet\n", cfg.StorageKey)
		return true
	}

	if err := todo.ValidateSnapshot([]byte(raw)); err != nil {
		fmt.Println("  ❌ Snapshot invalid (tasks will start empty):")
		for _, e := range todo.SnapshotErrors(err) {
			fmt.Printf("     - %v\n", e)
		}
		return false
	}
	tasks, err := todo.ParseSnapshot([]byte(raw))
	if err != nil {
		fmt.Printf("  ❌ Snapshot invalid: %v\n", err)
		return false
	}
	fmt.Println("  ✅ Snapshot valid")

	for _, t := range tasks {
		if _, err := todo.ValidateText(t.Text, cfg.MaxTaskChars); err != nil {
			fmt.Printf("  ⚠️  Task %d: %v\n", t.ID, err)
		}
	}
	if verbose {
		fmt.Printf("  Tasks: %d\n", len(tasks))
		for _, t := range todo.Visible(tasks, todo.FilterAll) {
			printTask(t)
		}
	}
	return true
}

// checkWritable makes sure dir exists and a file can be created in it.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// configCommand prints the effective configuration or an example file.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "show":
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, field := range config.Fields() {
			fmt.Fprintf(tw, "%s\t%s\t(%s)\n", field, cws.Config.Value(field), cws.Sources[field])
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if path := cws.GetConfigFile(); path != "" {
			fmt.Printf("\nConfig file: %s\n", path)
		}
		return nil
	case "example":
		fmt.Print(config.ExampleConfig())
		return nil
	case "path":
		if path := cws.GetConfigFile(); path != "" {
			fmt.Println(path)
			return nil
		}
		fmt.Println(filepath.Clean(appdir.ConfigPath(cws.Config.StateDir)))
		return nil
	default:
		return fmt.Errorf("unknown config command: %s (expected show|example|path)", sub)
	}
}
