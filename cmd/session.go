package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/nibzard/focuslist/internal/appdir"
	"github.com/nibzard/focuslist/internal/config"
	"github.com/nibzard/focuslist/internal/logging"
	"github.com/nibzard/focuslist/internal/session"
)

// sessionCommand inspects and ends sessions.
func sessionCommand(cfg *config.Config, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	switch sub {
	case "show":
		return sessionShow(cfg)
	case "list", "ls":
		return sessionList(cfg)
	case "end":
		return sessionEnd(cfg)
	default:
		return fmt.Errorf("unknown session command: %s (expected show|list|end)", sub)
	}
}

func sessionShow(cfg *config.Config) error {
	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	fmt.Printf("Session: %s\n", cfg.SessionID)
	fmt.Printf("File:    %s\n", ws.kv.Path())
	fmt.Printf("Log:     %s\n", appdir.LogFile(cfg.StateDir, cfg.SessionID))
	fmt.Printf("Tasks:   %d\n", ws.state.Tasks.Len())
	if cfg.SessionTTL > 0 {
		fmt.Printf("Expires: after %s idle\n", cfg.SessionTTL)
	} else {
		fmt.Println("Expires: never")
	}
	return nil
}

func sessionList(cfg *config.Config) error {
	sessions, err := session.List(cfg.StateDir)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tLAST USED\tSIZE")
	for _, s := range sessions {
		marker := ""
		if s.ID == cfg.SessionID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", marker, s.ID, s.ModTime.Format(time.DateTime), s.Size)
	}
	return tw.Flush()
}

// sessionEnd discards the current session the way closing a tab does.
func sessionEnd(cfg *config.Config) error {
	kv, err := session.Open(cfg.StateDir, cfg.SessionID)
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	if err := kv.End(); err != nil {
		return err
	}
	if err := os.Remove(appdir.LogFile(cfg.StateDir, cfg.SessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session log: %w", err)
	}
	fmt.Printf("Session %s ended.\n", cfg.SessionID)
	return nil
}

// logsCommand prints the session log.
func logsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("focuslist logs", flag.ContinueOnError)
	follow := fs.Bool("follow", false, "Follow the log")
	fs.BoolVar(follow, "f", false, "Follow the log")
	n := fs.Int("n", 20, "Number of lines to show (0 = all)")
	latest := fs.Bool("latest", false, "Show the most recent log of any session")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logPath := appdir.LogFile(cfg.StateDir, cfg.SessionID)
	if *latest {
		found, err := logging.FindLatestLog(appdir.LogsPath(cfg.StateDir))
		if err != nil {
			return fmt.Errorf("finding latest log: %w", err)
		}
		logPath = found
	}
	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Println("No log files found.")
		return nil
	}

	if *follow {
		fmt.Printf("Tailing: %s\n", logPath)
		fmt.Println("(Ctrl+C to stop)")
		fmt.Println()
	}
	return logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
}
