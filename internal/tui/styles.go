package tui

import "github.com/charmbracelet/lipgloss"

// Parchment-and-ink palette, carried over from the product's visual theme.
var (
	colorInk    = lipgloss.Color("#2c3e54")
	colorAccent = lipgloss.Color("#c4952c")
	colorMuted  = lipgloss.Color("#8a8579")
	colorBorder = lipgloss.Color("#e5ddcf")
	colorError  = lipgloss.Color("#8a3a3a")
	colorOK     = lipgloss.Color("#4CAF50")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInk)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	okStyle = lipgloss.NewStyle().Foreground(colorOK).Bold(true)

	accentStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	hintBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	statusStyle = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)

	logHeadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))

	logPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	keyHintStyle = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)
