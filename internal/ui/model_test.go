package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/focuslist/internal/app"
	"github.com/nibzard/focuslist/internal/session"
	"github.com/nibzard/focuslist/internal/toast"
	"github.com/nibzard/focuslist/internal/todo"
)

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	tasks := todo.NewStore(session.NewMemory())
	toasts := toast.New(toast.WithDuration(time.Millisecond))
	return NewModel(app.New(tasks, toasts, nil), opts...)
}

func typeText(m *Model, s string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func addTask(t *testing.T, m *Model, text string) {
	t.Helper()
	typeText(m, text)
	press(m, tea.KeyEnter)
}

// collect runs cmd and any batched commands, returning the messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestPlaceholderShowsMaxChars(t *testing.T) {
	m := newTestModel(t)
	if !strings.Contains(m.View(), "new task (Max chars 100)") {
		t.Errorf("placeholder missing:\n%s", m.View())
	}
}

func TestPlaceholderSurvivesResize(t *testing.T) {
	for _, width := range []int{15, 80} {
		m := newTestModel(t)
		m.Update(tea.WindowSizeMsg{Width: width, Height: 40})
		if !strings.Contains(m.View(), "Add a new task") {
			t.Errorf("width %d: placeholder missing:\n%s", width, m.View())
		}
	}
}

func TestEmptyState(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	if !strings.Contains(view, EmptyTitle) || !strings.Contains(view, EmptyHint) {
		t.Errorf("empty state missing:\n%s", view)
	}
}

func TestFormAddsTask(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "  Buy milk  ")
	cmd := press(m, tea.KeyEnter)

	tasks := m.state.Tasks.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("tasks: %+v", tasks)
	}
	if m.form.Value() != "" {
		t.Errorf("form not cleared: %q", m.form.Value())
	}
	view := m.View()
	if !strings.Contains(view, "Buy milk") || !strings.Contains(view, app.MsgAdded) {
		t.Errorf("view missing task or toast:\n%s", view)
	}
	if cmd == nil {
		t.Error("expected a toast timer command")
	}
}

func TestFormSubmitDisabledWhenBlank(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "   ")
	if cmd := press(m, tea.KeyEnter); cmd != nil {
		t.Error("blank submit should not start a timer")
	}
	if m.state.Tasks.Len() != 0 || m.state.Toasts.Len() != 0 {
		t.Error("blank submit should do nothing")
	}
}

func TestFormRejectsTooLong(t *testing.T) {
	m := newTestModel(t)
	long := strings.Repeat("a", 101)
	addTask(t, m, long)

	if m.state.Tasks.Len() != 0 {
		t.Errorf("store changed: %d tasks", m.state.Tasks.Len())
	}
	if m.form.Value() != long {
		t.Error("form should keep rejected input")
	}
	if !strings.Contains(m.View(), "Task cannot exceed 100 characters.") {
		t.Errorf("error toast missing:\n%s", m.View())
	}
}

func TestToastExpiresOnEventLoop(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "x")
	cmd := press(m, tea.KeyEnter)
	if m.state.Toasts.Len() != 1 {
		t.Fatalf("toasts: got %d, want 1", m.state.Toasts.Len())
	}
	for _, msg := range collect(cmd) {
		m.Update(msg)
	}
	if m.state.Toasts.Len() != 0 {
		t.Errorf("toast still visible after timer: %d", m.state.Toasts.Len())
	}
}

func TestToggleFromList(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "walk dog")
	press(m, tea.KeyTab)
	if m.focus != focusList {
		t.Fatal("tab should focus the list")
	}

	press(m, tea.KeySpace)
	task := m.state.Tasks.Tasks()[0]
	if !task.IsDone {
		t.Fatal("space should toggle the task")
	}
	view := m.View()
	if !strings.Contains(view, "[x]") || !strings.Contains(view, app.MsgDone) {
		t.Errorf("view after toggle:\n%s", view)
	}

	typeText(m, "x")
	if m.state.Tasks.Tasks()[0].IsDone {
		t.Error("x should toggle back")
	}
	if !strings.Contains(m.View(), app.MsgUndone) {
		t.Errorf("undone toast missing:\n%s", m.View())
	}
}

func TestDeleteConfirmation(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "temp")
	press(m, tea.KeyTab)
	toastsBefore := m.state.Toasts.Len()

	typeText(m, "d")
	if !strings.Contains(m.View(), app.MsgConfirmDel) {
		t.Fatalf("confirm prompt missing:\n%s", m.View())
	}
	typeText(m, "n")
	if m.state.Tasks.Len() != 1 || m.state.Toasts.Len() != toastsBefore {
		t.Error("declining should change nothing")
	}
	if strings.Contains(m.View(), app.MsgConfirmDel) {
		t.Error("prompt should close after declining")
	}

	typeText(m, "d")
	typeText(m, "y")
	if m.state.Tasks.Len() != 0 {
		t.Fatal("confirmed delete should remove the task")
	}
	view := m.View()
	if !strings.Contains(view, app.MsgDeleted) || !strings.Contains(view, EmptyTitle) {
		t.Errorf("view after delete:\n%s", view)
	}
}

func TestDeleteWithoutConfirmation(t *testing.T) {
	m := newTestModel(t, WithConfirmDelete(false))
	addTask(t, m, "temp")
	press(m, tea.KeyTab)
	typeText(m, "d")
	if m.state.Tasks.Len() != 0 {
		t.Error("delete should not ask when confirmation is off")
	}
}

func TestInlineEdit(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "old")
	press(m, tea.KeyTab)
	toastsBefore := m.state.Toasts.Len()

	typeText(m, "e")
	if m.focus != focusEdit || m.editInput.Value() != "old" {
		t.Fatalf("edit not started: focus=%v value=%q", m.focus, m.editInput.Value())
	}
	for range "old" {
		press(m, tea.KeyBackspace)
	}
	typeText(m, "new")
	press(m, tea.KeyEnter)

	if got := m.state.Tasks.Tasks()[0].Text; got != "new" {
		t.Errorf("text: got %q, want new", got)
	}
	if m.focus != focusList {
		t.Error("saving should leave edit mode")
	}
	if got := m.state.Toasts.Len() - toastsBefore; got != 1 {
		t.Errorf("edit toasts: got %d, want 1", got)
	}
	if !strings.Contains(m.View(), app.MsgEdited) {
		t.Errorf("edited toast missing:\n%s", m.View())
	}
}

func TestInlineEditCancel(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "keep me")
	press(m, tea.KeyTab)
	typeText(m, "e")
	typeText(m, " changed")
	press(m, tea.KeyEsc)

	if got := m.state.Tasks.Tasks()[0].Text; got != "keep me" {
		t.Errorf("cancel changed text to %q", got)
	}
	if m.focus != focusList {
		t.Error("esc should leave edit mode")
	}
}

func TestFilters(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "alpha")
	addTask(t, m, "beta")
	press(m, tea.KeyTab)
	press(m, tea.KeySpace) // alpha done

	typeText(m, "2")
	view := m.View()
	if !strings.Contains(view, "alpha") || strings.Contains(view, "beta") {
		t.Errorf("completed filter:\n%s", view)
	}
	typeText(m, "3")
	view = m.View()
	if strings.Contains(view, "alpha") || !strings.Contains(view, "beta") {
		t.Errorf("pending filter:\n%s", view)
	}
	typeText(m, "f")
	if m.filter != todo.FilterAll {
		t.Errorf("f from pending: got %s, want all", m.filter)
	}
}

func TestPendingSortedFirst(t *testing.T) {
	m := newTestModel(t)
	addTask(t, m, "first")
	addTask(t, m, "second")
	press(m, tea.KeyTab)
	press(m, tea.KeySpace) // first done

	view := m.View()
	if strings.Index(view, "second") > strings.Index(view, "first") {
		t.Errorf("pending task should render before completed:\n%s", view)
	}
}

func TestQuitOnlyFromList(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "q")
	if m.form.Value() != "q" {
		t.Errorf("form value: got %q", m.form.Value())
	}
	press(m, tea.KeyTab)
	cmd := typeText(m, "q")
	if cmd == nil {
		t.Fatal("q in the list should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestStartupFilterOption(t *testing.T) {
	m := newTestModel(t, WithFilter(todo.FilterPending))
	if m.filter != todo.FilterPending {
		t.Errorf("filter: got %s", m.filter)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		n, cursor, size int
		start, end      int
	}{
		{5, 0, 0, 0, 5},
		{5, 4, 10, 0, 5},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
	}
	for _, tt := range tests {
		start, end := window(tt.n, tt.cursor, tt.size)
		if start != tt.start || end != tt.end {
			t.Errorf("window(%d,%d,%d) = %d,%d, want %d,%d", tt.n, tt.cursor, tt.size, start, end, tt.start, tt.end)
		}
	}
}

func TestRenderToasts(t *testing.T) {
	out := RenderToasts([]toast.Toast{
		{Message: "saved", Type: toast.TypeSuccess},
		{Message: "oops", Type: toast.TypeError},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "✓ saved") || !strings.Contains(lines[1], "✗ oops") {
		t.Errorf("RenderToasts: %q", out)
	}
	if RenderToasts(nil) != "" {
		t.Error("no toasts should render empty")
	}
}

type failingStorage struct {
	*session.Memory
}

func (failingStorage) SetItem(string, string) error {
	return errors.New("disk full")
}

func TestFormClearsWhenSaveFails(t *testing.T) {
	tasks := todo.NewStore(failingStorage{session.NewMemory()})
	toasts := toast.New(toast.WithDuration(time.Millisecond))
	m := NewModel(app.New(tasks, toasts, nil))

	addTask(t, m, "Buy milk")
	if m.form.Value() != "" {
		t.Errorf("form not cleared after failed save: %q", m.form.Value())
	}
	press(m, tea.KeyEnter)
	if got := m.state.Tasks.Len(); got != 1 {
		t.Errorf("tasks: got %d, want 1", got)
	}
	if !strings.Contains(m.View(), app.MsgSaveFailed) {
		t.Errorf("save error toast missing:\n%s", m.View())
	}
}
