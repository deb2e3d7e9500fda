// Package app wires the task store and toast service into the behaviour
// shared by every front end: the input form and the per-task row actions.
package app

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/nibzard/focuslist/internal/logging"
	"github.com/nibzard/focuslist/internal/toast"
	"github.com/nibzard/focuslist/internal/todo"
)

// Toast messages.
const (
	MsgAdded      = "Task added successfully!"
	MsgEdited     = "Task edited successfully!"
	MsgDone       = "Task marked as done!"
	MsgUndone     = "Task marked as undone!"
	MsgDeleted    = "Task deleted successfully!"
	MsgConfirmDel = "Are you sure you want to delete this task?"
	MsgSaveFailed = "Could not save tasks."
)

// TooLongMessage is the error toast for over-long input.
func TooLongMessage(maxChars int) string {
	return fmt.Sprintf("Task cannot exceed %d characters.", maxChars)
}

// State is the application state handed to every view. It owns nothing
// global; tests build their own.
type State struct {
	Tasks  *todo.Store
	Toasts *toast.Service
	logger *log.Logger
}

// New creates a State. A nil logger discards output.
func New(tasks *todo.Store, toasts *toast.Service, logger *log.Logger) *State {
	if logger == nil {
		logger = logging.Discard()
	}
	return &State{Tasks: tasks, Toasts: toasts, logger: logger}
}

// MaxChars returns the maximum task text length.
func (s *State) MaxChars() int {
	return s.Tasks.MaxChars()
}

// Submission is one submit of the input form.
type Submission struct {
	Text    string
	Editing bool
	TaskID  int64 // target when Editing
}

// CanSubmit reports whether the form's submit action is enabled.
func CanSubmit(text string) bool {
	return strings.TrimSpace(text) != ""
}

// Submit runs the input form's submit action. It reports whether the form
// should be cleared (and, when editing, closed).
func (s *State) Submit(sub Submission) bool {
	trimmed := strings.TrimSpace(sub.Text)
	if trimmed == "" {
		return false
	}
	if utf8.RuneCountInString(trimmed) > s.MaxChars() {
		s.Toasts.Error(TooLongMessage(s.MaxChars()))
		s.logger.Debug("submission rejected", "reason", "too long", "editing", sub.Editing)
		return false
	}

	if sub.Editing {
		_, found, err := s.Tasks.Edit(sub.TaskID, trimmed)
		if s.reportErr("edit task", err) {
			return !isValidation(err)
		}
		if !found {
			s.logger.Debug("edit target gone", "id", sub.TaskID)
		}
		s.Toasts.Info(MsgEdited)
		return true
	}

	task, err := s.Tasks.Add(trimmed)
	if s.reportErr("add task", err) {
		// A failed write keeps the new task in memory; clear the form so a
		// second submit does not add it twice.
		return !isValidation(err)
	}
	s.logger.Info("task added", "id", task.ID)
	s.Toasts.Success(MsgAdded)
	return true
}

// Toggle flips a task's done flag and reports whether the task existed.
// The toast reflects the state the task is in after the toggle.
func (s *State) Toggle(id int64) bool {
	task, found, err := s.Tasks.Toggle(id)
	if s.reportErr("toggle task", err) {
		return found
	}
	if !found {
		s.logger.Debug("toggle target gone", "id", id)
		return false
	}
	if task.IsDone {
		s.Toasts.Success(MsgDone)
	} else {
		s.Toasts.Success(MsgUndone)
	}
	return true
}

// Delete removes a task once the user has confirmed. Declining changes
// nothing and shows no toast.
func (s *State) Delete(id int64, confirmed bool) bool {
	if !confirmed {
		s.logger.Debug("delete declined", "id", id)
		return false
	}
	found, err := s.Tasks.Remove(id)
	if s.reportErr("delete task", err) {
		return found
	}
	if !found {
		s.logger.Debug("delete target gone", "id", id)
		return false
	}
	s.logger.Info("task deleted", "id", id)
	s.Toasts.Error(MsgDeleted)
	return true
}

// reportErr surfaces err as an error toast and reports whether there was one.
func (s *State) reportErr(action string, err error) bool {
	if err == nil {
		return false
	}
	var ve *todo.ValidationError
	switch {
	case errors.Is(err, todo.ErrTextTooLong):
		s.Toasts.Error(TooLongMessage(s.MaxChars()))
	case errors.As(err, &ve):
		s.Toasts.Error(fmt.Sprintf("Invalid task: %v", ve.Err))
	default:
		s.Toasts.Error(MsgSaveFailed)
	}
	s.logger.Error(action, "err", err)
	return true
}

// isValidation reports whether err rejected the input before any change.
func isValidation(err error) bool {
	var ve *todo.ValidationError
	return errors.As(err, &ve)
}
