package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/focuslist/internal/app"
	"github.com/nibzard/focuslist/internal/todo"
)

const editPlaceholder = "Edit your task"

func addPlaceholder(maxChars int) string {
	return fmt.Sprintf("Add a new task (Max chars %d)", maxChars)
}

func (m *Model) focusForm() tea.Cmd {
	m.focus = focusForm
	return m.form.Focus()
}

func (m *Model) focusListArea() {
	m.form.Blur()
	m.focus = focusList
	m.clampCursor()
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Cancel):
		m.focusListArea()
		return nil
	case key.Matches(msg, m.keys.Submit):
		if !app.CanSubmit(m.form.Value()) {
			return nil
		}
		if m.state.Submit(app.Submission{Text: m.form.Value()}) {
			m.form.Reset()
		}
		return nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return cmd
}

func (m *Model) startEdit(task todo.Task) tea.Cmd {
	m.editID = task.ID
	m.editInput.SetValue(task.Text)
	m.editInput.CursorEnd()
	m.focus = focusEdit
	return m.editInput.Focus()
}

func (m *Model) stopEdit() {
	m.editInput.Blur()
	m.editInput.Reset()
	m.editID = 0
	m.focus = focusList
	m.clampCursor()
}

func (m *Model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEdit()
		return nil
	case key.Matches(msg, m.keys.Submit):
		if !app.CanSubmit(m.editInput.Value()) {
			return nil
		}
		sub := app.Submission{Text: m.editInput.Value(), Editing: true, TaskID: m.editID}
		if m.state.Submit(sub) {
			m.stopEdit()
		}
		return nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return cmd
}

func (m *Model) writeForm(b *strings.Builder) {
	label := "Add"
	if app.CanSubmit(m.form.Value()) {
		label = buttonStyle.Render("[ " + label + " ]")
	} else {
		label = buttonDisabledStyle.Render("[ " + label + " ]")
	}
	style := formBlurredStyle
	if m.focus == focusForm {
		style = formFocusedStyle
	}
	b.WriteString(style.Render(m.form.View()+"  "+label) + "\n\n")
}
