package tui

import "github.com/charmbracelet/lipgloss"

var (
	colText    = lipgloss.Color("252")
	colSubtle  = lipgloss.Color("241")
	colAccent  = lipgloss.Color("63")
	colDanger  = lipgloss.Color("196")
	colWarn    = lipgloss.Color("214")
	colSurface = lipgloss.Color("236")

	titleStyle = lipgloss.NewStyle().Foreground(colAccent).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(colSubtle)
	errStyle   = lipgloss.NewStyle().Foreground(colDanger)
	warnStyle  = lipgloss.NewStyle().Foreground(colWarn)

	tabStyle = lipgloss.NewStyle().
			Foreground(colSubtle).
			Padding(0, 2)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(colText).
			Background(colSurface).
			Bold(true).
			Padding(0, 2)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colAccent).
			Padding(1, 2)

	labelStyle      = lipgloss.NewStyle().Foreground(colSubtle).Width(14)
	labelFocusStyle = lipgloss.NewStyle().Foreground(colAccent).Bold(true).Width(14)
	statusBarStyle  = lipgloss.NewStyle().Foreground(colSubtle)
)
