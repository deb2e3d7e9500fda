package ui

import (
	"github.com/nibzard/focuslist/internal/todo"
)

// renderRow renders one task line. selected marks the cursor row.
func renderRow(t todo.Task, selected bool) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("› ")
	}
	if t.IsDone {
		return marker + checkDoneStyle.Render("[x]") + " " + doneTextStyle.Render(t.Text)
	}
	return marker + "[ ] " + t.Text
}

// renderEditRow renders the row of the task being edited with its inline
// input in place of the text.
func renderEditRow(t todo.Task, input string) string {
	check := "[ ]"
	if t.IsDone {
		check = checkDoneStyle.Render("[x]")
	}
	return cursorStyle.Render("› ") + check + " " + input + "  " + mutedStyle.Render("enter save · esc cancel")
}
