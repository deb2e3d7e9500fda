package ui

import (
	"fmt"
	"strings"

	"github.com/nibzard/focuslist/internal/todo"
)

// Empty state text.
const (
	EmptyTitle = "🎉 You are all caught up! 🎉"
	EmptyHint  = "Start by adding a new task!"
)

// chromeLines is the number of lines View uses outside the task rows.
const chromeLines = 16

func writeTitle(b *strings.Builder, c todo.Counts) {
	b.WriteString(titleStyle.Render("focuslist"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d tasks · %d pending · %d completed", c.All, c.Pending, c.Completed)))
	b.WriteString("\n\n")
}

func writeFilterTabs(b *strings.Builder, active todo.Filter) {
	tabs := make([]string, 0, len(todo.Filters))
	for i, f := range todo.Filters {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, "   ") + "\n\n")
}

func (m *Model) writeList(b *strings.Builder) {
	tasks := m.visible()
	if len(tasks) == 0 {
		writeEmptyState(b)
		return
	}

	start, end := window(len(tasks), m.cursor, m.maxRows())
	if start > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ↑ %d more", start)) + "\n")
	}
	for i := start; i < end; i++ {
		t := tasks[i]
		if m.focus == focusEdit && t.ID == m.editID {
			b.WriteString(renderEditRow(t, m.editInput.View()) + "\n")
			continue
		}
		selected := m.focus != focusForm && i == m.cursor
		b.WriteString(renderRow(t, selected) + "\n")
	}
	if end < len(tasks) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ↓ %d more", len(tasks)-end)) + "\n")
	}
	b.WriteString("\n")
}

func writeEmptyState(b *strings.Builder) {
	b.WriteString(emptyStyle.Render("  "+EmptyTitle) + "\n")
	b.WriteString(emptyStyle.Render("  "+EmptyHint) + "\n\n")
}

// maxRows returns how many task rows fit, or 0 when the height is unknown.
func (m *Model) maxRows() int {
	if m.height == 0 {
		return 0
	}
	rows := m.height - chromeLines
	if rows < 3 {
		rows = 3
	}
	return rows
}

// window returns the half-open range of rows to show so that cursor stays
// visible. A non-positive size shows everything.
func window(n, cursor, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > n {
		start = n - size
	}
	return start, start + size
}
