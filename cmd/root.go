// Package cmd implements the CLI command structure for focuslist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/focuslist/internal/config"
	"github.com/nibzard/focuslist/internal/todo"
	"github.com/nibzard/focuslist/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// stdin is where confirmation prompts read answers from.
var stdin io.Reader = os.Stdin

// Run executes the focuslist CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("focuslist", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "done", "toggle":
		return doneCommand(cfg, remainingArgs)
	case "edit":
		return editCommand(cfg, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "session":
		return sessionCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "logs", "tail":
		return logsCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the interactive task list.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY; use 'focuslist ls' to print the list")
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	ws.logger.Info("tui started", "session", cfg.SessionID, "tasks", ws.state.Tasks.Len())
	err = ui.RunTUI(ctx, ws.state,
		ui.WithFilter(todo.Filter(cfg.DefaultFilter)),
		ui.WithConfirmDelete(cfg.ConfirmDelete),
		ui.WithLogger(ws.logger),
	)
	ws.logger.Info("tui stopped", "err", err)
	return err
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("focuslist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "focuslist - A session-scoped to-do list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  focuslist [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui               Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  ls [filter]       List tasks (all|completed|pending)")
	fmt.Fprintln(w, "  add <text>        Add a task")
	fmt.Fprintln(w, "  done <id>         Toggle a task between done and pending")
	fmt.Fprintln(w, "  edit <id> <text>  Replace the text of a task")
	fmt.Fprintln(w, "  rm <id>           Delete a task")
	fmt.Fprintln(w, "  export            Export tasks as json, csv or pdf")
	fmt.Fprintln(w, "  session [cmd]     Show, list or end sessions (show|list|end)")
	fmt.Fprintln(w, "  doctor            Check config, state directory and stored tasks")
	fmt.Fprintln(w, "  config [example]  Show effective config or an example file")
	fmt.Fprintln(w, "  logs              Show the session log")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rm Options (use with 'rm' command):")
	fmt.Fprintln(w, "  -y, --yes")
	fmt.Fprintln(w, "        Delete without asking")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (json|csv|pdf) (default json)")
	fmt.Fprintln(w, "  -o, --out string")
	fmt.Fprintln(w, "        Output file (default stdout)")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        Document title for pdf output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options (use with 'logs' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -latest")
	fmt.Fprintln(w, "        Show the most recent log of any session")
}
