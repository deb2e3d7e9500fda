package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/focuslist/internal/app"
	"github.com/nibzard/focuslist/internal/appdir"
	"github.com/nibzard/focuslist/internal/config"
	"github.com/nibzard/focuslist/internal/logging"
	"github.com/nibzard/focuslist/internal/session"
	"github.com/nibzard/focuslist/internal/toast"
	"github.com/nibzard/focuslist/internal/todo"
	"github.com/nibzard/focuslist/internal/ui"
)

// workspace is the state every task command runs against: the session
// storage, the session log and the application state built on them.
type workspace struct {
	kv     *session.File
	state  *app.State
	logger *log.Logger
	logs   *logging.SessionLogger
}

// openWorkspace prunes stale sessions and opens the current one.
func openWorkspace(cfg *config.Config) (*workspace, error) {
	ws := &workspace{}
	logs, err := logging.NewSessionLogger(cfg.StateDir, cfg.SessionID,
		logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller))
	if err != nil {
		// The session still works without a log file.
		opts := logging.OptionsFromConfig("warn", cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
		ws.logger = logging.New(os.Stderr, opts)
		ws.logger.Warn("session log unavailable", "err", err)
	} else {
		ws.logs = logs
		ws.logger = logs.Logger()
	}

	now := time.Now()
	if removed, err := session.Prune(cfg.StateDir, cfg.SessionTTL, cfg.SessionID, now); err != nil {
		ws.logger.Warn("prune sessions", "err", err)
	} else if len(removed) > 0 {
		ws.logger.Debug("pruned sessions", "ids", removed)
	}
	if removed, err := logging.PruneLogs(appdir.LogsPath(cfg.StateDir), cfg.SessionTTL, cfg.SessionID, now); err != nil {
		ws.logger.Warn("prune logs", "err", err)
	} else if len(removed) > 0 {
		ws.logger.Debug("pruned logs", "ids", removed)
	}

	kv, err := session.Open(cfg.StateDir, cfg.SessionID)
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("opening session: %w", err)
	}
	ws.kv = kv
	if backup, reason := kv.Recovered(); reason != nil {
		ws.logger.Warn("session file unreadable, moved aside", "backup", backup, "err", reason)
	}

	expiry, err := toast.ParseExpiry(cfg.ToastExpiry)
	if err != nil {
		ws.Close()
		return nil, err
	}
	tasks := todo.NewStore(kv,
		todo.WithKey(cfg.StorageKey),
		todo.WithMaxChars(cfg.MaxTaskChars),
		todo.WithLogger(ws.logger),
	)
	toasts := toast.New(
		toast.WithDuration(cfg.ToastDuration),
		toast.WithExpiry(expiry),
	)
	ws.state = app.New(tasks, toasts, ws.logger)
	return ws, nil
}

// Close closes the session log.
func (ws *workspace) Close() {
	_ = ws.logs.Close()
}

// report prints the toasts an action raised. When the action was rejected,
// the latest error toast (or fallback) is returned as the error instead. A
// change that could not be saved is printed and also returned as an error.
func report(w io.Writer, state *app.State, ok bool, fallback error) error {
	toasts := state.Toasts.Toasts()
	if !ok {
		for i := len(toasts) - 1; i >= 0; i-- {
			if toasts[i].Type == toast.TypeError {
				return errors.New(toasts[i].Message)
			}
		}
		if fallback == nil {
			fallback = errors.New("nothing changed")
		}
		return fallback
	}
	if out := ui.RenderToasts(toasts); out != "" {
		fmt.Fprintln(w, out)
	}
	for _, t := range toasts {
		if t.Message == app.MsgSaveFailed {
			return errors.New(app.MsgSaveFailed)
		}
	}
	return nil
}

// parseTaskID parses a task id argument.
func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
