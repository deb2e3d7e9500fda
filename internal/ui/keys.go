package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the list-mode bindings. The form captures raw keystrokes, so
// only submit, focus and cancel apply while it has focus.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Submit    key.Binding
	Focus     key.Binding
	Cancel    key.Binding
	All       key.Binding
	Done      key.Binding
	Pending   key.Binding
	Cycle     key.Binding
	Confirm   key.Binding
	Decline   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space/x", "toggle done")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Focus:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "form/list")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		All:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Done:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "completed")),
		Pending:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "pending")),
		Cycle:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		Confirm:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Decline:   key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Toggle, k.Edit, k.Delete, k.Cycle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus, k.Submit, k.Cancel},
		{k.Toggle, k.Edit, k.Delete},
		{k.All, k.Done, k.Pending, k.Cycle},
		{k.Help, k.Quit},
	}
}
