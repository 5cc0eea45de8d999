// Package ui holds the color themes shared by the CLI presenter, the REPL
// and the dashboard. CLI output uses the ANSI sequences of the current
// Theme through the Color* helpers; the dashboard reads the lipgloss
// palette returned by GetCurrentTUITheme.
package ui
