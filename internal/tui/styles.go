package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("241")
	danger = lipgloss.Color("#FF5F87")
	good   = lipgloss.Color("#04B575")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(accent).
			Padding(0, 1)

	subtleStyle   = lipgloss.NewStyle().Foreground(muted)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	successStyle  = lipgloss.NewStyle().Foreground(good)
	helpStyle     = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
	selectedStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	ownStyle      = lipgloss.NewStyle().Foreground(accent)
	otherStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))

	avatarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(accent).
			Width(3).
			Align(lipgloss.Center)

	badgeAdmin   = lipgloss.NewStyle().Foreground(accent).Render("[admin]")
	badgeBlocked = lipgloss.NewStyle().Foreground(danger).Render("[blocked]")

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	activePaneStyle = paneStyle.BorderForeground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
)
