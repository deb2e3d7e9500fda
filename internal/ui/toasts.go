package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/focuslist/internal/toast"
)

// ToastIcon returns the marker shown before a toast of the given type.
func ToastIcon(typ toast.Type) string {
	switch typ {
	case toast.TypeError:
		return "✗"
	case toast.TypeInfo:
		return "ℹ"
	default:
		return "✓"
	}
}

func toastStyle(typ toast.Type) lipgloss.Style {
	switch typ {
	case toast.TypeError:
		return toastErrorStyle
	case toast.TypeInfo:
		return toastInfoStyle
	default:
		return toastSuccessStyle
	}
}

// RenderToast renders a single toast as one line.
func RenderToast(t toast.Toast) string {
	return toastStyle(t.Type).Render(ToastIcon(t.Type) + " " + t.Message)
}

// RenderToasts renders toasts oldest first, one per line. It returns an
// empty string when there are none.
func RenderToasts(toasts []toast.Toast) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, len(toasts))
	for i, t := range toasts {
		lines[i] = RenderToast(t)
	}
	return strings.Join(lines, "\n")
}
