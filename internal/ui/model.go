package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/focuslist/internal/app"
	"github.com/nibzard/focuslist/internal/logging"
	"github.com/nibzard/focuslist/internal/todo"
)

type focusArea int

const (
	focusForm focusArea = iota
	focusList
	focusEdit
)

// Option configures the TUI model.
type Option func(*Model)

// WithFilter sets the filter shown at startup.
func WithFilter(f todo.Filter) Option {
	return func(m *Model) {
		if f != "" {
			m.filter = f
		}
	}
}

// WithConfirmDelete controls whether deleting asks for confirmation.
func WithConfirmDelete(enabled bool) Option {
	return func(m *Model) {
		m.confirmDelete = enabled
	}
}

// WithLogger sets the logger used for UI events.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Model is the bubbletea model for the task list view.
type Model struct {
	state  *app.State
	keys   keyMap
	help   help.Model
	sched  *teaScheduler
	logger *log.Logger

	form      textinput.Model
	editInput textinput.Model
	editID    int64
	focus     focusArea

	filter todo.Filter
	cursor int

	confirmDelete bool
	confirming    bool
	confirmID     int64

	showHelp bool
	width    int
	height   int
}

// NewModel creates the TUI model. It takes over scheduling of the toast
// service's expiry timers.
func NewModel(state *app.State, opts ...Option) *Model {
	form := textinput.New()
	form.Placeholder = addPlaceholder(state.MaxChars())
	form.Prompt = "› "
	form.Width = len(form.Placeholder)
	form.Focus()

	edit := textinput.New()
	edit.Placeholder = editPlaceholder
	edit.Prompt = ""
	edit.Width = state.MaxChars()

	m := &Model{
		state:         state,
		keys:          newKeyMap(),
		help:          help.New(),
		sched:         &teaScheduler{},
		logger:        logging.Discard(),
		form:          form,
		editInput:     edit,
		focus:         focusForm,
		filter:        todo.FilterAll,
		confirmDelete: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	state.Toasts.SetScheduler(m.sched)
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 8; w > 10 {
			m.form.Width = w
			m.editInput.Width = w
		}
	case toastTimerMsg:
		msg.fire()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch {
		case m.confirming:
			m.updateConfirm(msg)
		case m.focus == focusForm:
			cmd = m.updateForm(msg)
		case m.focus == focusEdit:
			cmd = m.updateEdit(msg)
		default:
			var quit bool
			cmd, quit = m.updateList(msg)
			if quit {
				return m, tea.Quit
			}
		}
	default:
		cmd = m.forwardToInput(msg)
	}
	return m, m.withTimers(cmd)
}

// withTimers batches cmd with any toast timers started during this update.
func (m *Model) withTimers(cmd tea.Cmd) tea.Cmd {
	timers := m.sched.drain()
	if timers == nil {
		return cmd
	}
	if cmd == nil {
		return timers
	}
	return tea.Batch(cmd, timers)
}

// forwardToInput passes non-key messages such as cursor blinks to the
// focused input.
func (m *Model) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusForm:
		m.form, cmd = m.form.Update(msg)
	case focusEdit:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Focus):
		return m.focusForm(), false
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.selected(); ok {
			m.state.Toggle(task.ID)
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Edit):
		if task, ok := m.selected(); ok {
			return m.startEdit(task), false
		}
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			m.requestDelete(task.ID)
		}
	case key.Matches(msg, m.keys.All):
		m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.Done):
		m.setFilter(todo.FilterCompleted)
	case key.Matches(msg, m.keys.Pending):
		m.setFilter(todo.FilterPending)
	case key.Matches(msg, m.keys.Cycle):
		m.setFilter(m.filter.Next())
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Cancel):
		if m.showHelp {
			m.showHelp = false
			m.help.ShowAll = false
		}
	}
	return nil, false
}

func (m *Model) requestDelete(id int64) {
	if !m.confirmDelete {
		m.state.Delete(id, true)
		m.clampCursor()
		return
	}
	m.confirming = true
	m.confirmID = id
}

func (m *Model) updateConfirm(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.state.Delete(m.confirmID, true)
	case key.Matches(msg, m.keys.Decline):
		m.state.Delete(m.confirmID, false)
	default:
		return
	}
	m.confirming = false
	m.confirmID = 0
	m.clampCursor()
}

func (m *Model) setFilter(f todo.Filter) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.cursor = 0
	m.logger.Debug("filter changed", "filter", f)
}

// visible returns the tasks shown under the current filter.
func (m *Model) visible() []todo.Task {
	return todo.Visible(m.state.Tasks.Tasks(), m.filter)
}

func (m *Model) selected() (todo.Task, bool) {
	tasks := m.visible()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return todo.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b, todo.Count(m.state.Tasks.Tasks()))
	m.writeForm(&b)
	writeFilterTabs(&b, m.filter)
	m.writeList(&b)
	if m.confirming {
		b.WriteString(confirmStyle.Render(app.MsgConfirmDel+" (y/n)") + "\n\n")
	}
	if toasts := RenderToasts(m.state.Toasts.Toasts()); toasts != "" {
		b.WriteString(toasts + "\n\n")
	}
	b.WriteString(m.help.View(m.keys) + "\n")
	return b.String()
}
