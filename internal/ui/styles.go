package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("69")
	colorMuted   = lipgloss.Color("241")
	colorSuccess = lipgloss.Color("10")
	colorInfo    = lipgloss.Color("12")
	colorError   = lipgloss.Color("9")
	colorWarn    = lipgloss.Color("3")
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)
	tabStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	doneTextStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted)
	checkDoneStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	confirmStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	emptyStyle     = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(colorMuted)

	formFocusedStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
	formBlurredStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)

	toastSuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	toastInfoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(colorError)
)
