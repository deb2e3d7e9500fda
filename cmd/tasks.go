package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nibzard/focuslist/internal/app"
	"github.com/nibzard/focuslist/internal/config"
	"github.com/nibzard/focuslist/internal/export"
	"github.com/nibzard/focuslist/internal/todo"
	"github.com/nibzard/focuslist/internal/ui"
)

// lsCommand lists tasks the way the list view orders them.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("focuslist ls", flag.ContinueOnError)
	filterFlag := fs.String("filter", cfg.DefaultFilter, "Filter (all|completed|pending)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		*filterFlag = remaining[0]
	}
	filter, err := todo.ParseFilter(*filterFlag)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	tasks := ws.state.Tasks.Tasks()
	c := todo.Count(tasks)
	fmt.Printf("%s: %d tasks, %d pending, %d completed\n", filter.Label(), c.All, c.Pending, c.Completed)

	visible := todo.Visible(tasks, filter)
	if len(visible) == 0 {
		fmt.Println()
		fmt.Println(ui.EmptyTitle)
		fmt.Println(ui.EmptyHint)
		return nil
	}
	for _, t := range visible {
		printTask(t)
	}
	return nil
}

// printTask prints one task line.
func printTask(t todo.Task) {
	box := "[ ]"
	if t.IsDone {
		box = "[x]"
	}
	fmt.Printf("  %s %d  %s\n", box, t.ID, t.Text)
}

// addCommand adds a task through the input form's submit action.
func addCommand(cfg *config.Config, args []string) error {
	text := strings.Join(args, " ")
	if !app.CanSubmit(text) {
		return fmt.Errorf("usage: focuslist add <text>")
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	ok := ws.state.Submit(app.Submission{Text: text})
	return report(os.Stdout, ws.state, ok, nil)
}

// doneCommand toggles a task's done flag.
func doneCommand(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: focuslist done <id>")
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	ok := ws.state.Toggle(id)
	return report(os.Stdout, ws.state, ok, fmt.Errorf("no task with id %d", id))
}

// editCommand replaces the text of a task.
func editCommand(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: focuslist edit <id> <text>")
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")
	if !app.CanSubmit(text) {
		return fmt.Errorf("task text must not be blank")
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	if _, found := ws.state.Tasks.Get(id); !found {
		return fmt.Errorf("no task with id %d", id)
	}
	ok := ws.state.Submit(app.Submission{Text: text, Editing: true, TaskID: id})
	return report(os.Stdout, ws.state, ok, nil)
}

// rmCommand deletes a task, asking first unless confirmation is off.
func rmCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("focuslist rm", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "Delete without asking")
	fs.BoolVar(yes, "y", false, "Delete without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("usage: focuslist rm [--yes] <id>")
	}
	id, err := parseTaskID(remaining[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	task, found := ws.state.Tasks.Get(id)
	if !found {
		return fmt.Errorf("no task with id %d", id)
	}

	confirmed := *yes || !cfg.ConfirmDelete
	if !confirmed {
		fmt.Printf("%s\n  %s\n(y/n) ", app.MsgConfirmDel, task.Text)
		confirmed = readConfirmation()
	}
	if !ws.state.Delete(id, confirmed) {
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
		return report(os.Stdout, ws.state, false, fmt.Errorf("no task with id %d", id))
	}
	return report(os.Stdout, ws.state, true, nil)
}

// readConfirmation reads a y/n answer. Anything but yes declines.
func readConfirmation() bool {
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// exportCommand writes the task list to stdout or a file.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("focuslist export", flag.ContinueOnError)
	formatFlag := fs.String("format", "", "Output format (json|csv|pdf)")
	out := fs.String("out", "", "Output file (default stdout)")
	fs.StringVar(out, "o", "", "Output file (default stdout)")
	filterFlag := fs.String("filter", cfg.DefaultFilter, "Filter (all|completed|pending)")
	title := fs.String("title", "", "Document title for pdf output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Infer the format from the output file name when not given.
	if *formatFlag == "" && *out != "" {
		for _, f := range []export.Format{export.FormatJSON, export.FormatCSV, export.FormatPDF} {
			if strings.HasSuffix(strings.ToLower(*out), f.Extension()) {
				*formatFlag = string(f)
			}
		}
	}
	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		return err
	}
	filter, err := todo.ParseFilter(*filterFlag)
	if err != nil {
		return err
	}
	if format == export.FormatPDF && *out == "" && ui.IsTTY(os.Stdout) {
		return fmt.Errorf("refusing to write pdf to a terminal; use --out")
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		return err
	}
	defer ws.Close()

	opts := export.Options{Title: *title, Filter: filter, Now: time.Now()}
	tasks := ws.state.Tasks.Tasks()
	if *out == "" {
		return export.Write(os.Stdout, format, tasks, opts)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := export.Write(f, format, tasks, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ws.logger.Info("tasks exported", "format", format, "path", *out, "tasks", len(todo.Visible(tasks, filter)))
	fmt.Printf("Exported %d tasks to %s\n", len(todo.Visible(tasks, filter)), *out)
	return nil
}
