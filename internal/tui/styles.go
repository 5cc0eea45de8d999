package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Dashboard styles, derived from ui.GetCurrentTUITheme by initTUIStyles.
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	promptStyle        lipgloss.Style
	requestStyle       lipgloss.Style
	engineStyle        lipgloss.Style
	successStyle       lipgloss.Style
	errorStyle         lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusIdleStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	chartStyle         lipgloss.Style
)

func init() { initTUIStyles() }

// initTUIStyles must run again after ui.InitTheme changes the theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	bold := func(c lipgloss.TerminalColor) lipgloss.Style { return fg(c).Bold(true) }

	panelStyle = fg(t.Text).Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)
	headerStyle = bold(t.Accent).Padding(0, 1)
	titleStyle = bold(t.Accent)
	promptStyle = bold(t.Accent)
	metricValueStyle = bold(t.Accent)
	elapsedStyle = fg(t.Accent)

	versionStyle = fg(t.Dim)
	engineStyle = fg(t.Dim)
	metricLabelStyle = fg(t.Dim)

	requestStyle = fg(t.Info)
	successStyle = fg(t.Success)
	errorStyle = fg(t.Error)
	chartStyle = fg(t.Warning)

	statusRunningStyle = bold(t.Warning)
	statusIdleStyle = bold(t.Success)
	statusErrorStyle = bold(t.Error)
}
