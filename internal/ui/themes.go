package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the ANSI escape sequences used by the CLI output.
type Theme struct {
	Name      string
	Primary   string // headings, names
	Secondary string // digests, hints
	Success   string
	Warning   string // durations, truncation notes
	Error     string
	Info      string // requests
	Bold      string
	Underline string
	Reset     string
}

// TUITheme is the lipgloss palette of the dashboard.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

// fg returns the escape sequence selecting color n of the 256-color table.
func fg(n int) string { return fmt.Sprintf("\033[38;5;%dm", n) }

// palette builds a Theme from 256-color indices in the order primary,
// secondary, success, warning, error, info.
func palette(name string, primary, secondary, success, warning, errColor, info int) Theme {
	return Theme{
		Name:      name,
		Primary:   fg(primary),
		Secondary: fg(secondary),
		Success:   fg(success),
		Warning:   fg(warning),
		Error:     fg(errColor),
		Info:      fg(info),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}
}

var (
	// DarkTheme suits dark terminal backgrounds and is the default.
	DarkTheme = palette("dark", 39, 245, 82, 220, 196, 141)
	// LightTheme uses darker tones for light backgrounds.
	LightTheme = palette("light", 27, 240, 28, 130, 124, 54)
	// OrangeTheme matches the dashboard palette.
	OrangeTheme = palette("orange", 208, 245, 82, 214, 196, 69)
	// NoColorTheme disables every escape sequence (NO_COLOR, --no-color).
	NoColorTheme = Theme{Name: "none"}

	// DarkTUITheme is the dashboard palette when colors are enabled.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#3A7BD5"),
		Accent:  lipgloss.Color("#5FAFFF"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF5555"),
		Dim:     lipgloss.Color("#6C6C6C"),
		Info:    lipgloss.Color("#C792EA"),
	}
	// LightTUITheme is the dashboard palette for light backgrounds.
	LightTUITheme = TUITheme{
		Text:    lipgloss.Color("#202020"),
		Border:  lipgloss.Color("#005FAF"),
		Accent:  lipgloss.Color("#005FD7"),
		Success: lipgloss.Color("#008700"),
		Warning: lipgloss.Color("#AF5F00"),
		Error:   lipgloss.Color("#AF0000"),
		Dim:     lipgloss.Color("#808080"),
		Info:    lipgloss.Color("#5F00AF"),
	}
	// OrangeTUITheme is the warm dashboard palette.
	OrangeTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
	}
	// NoColorTUITheme leaves the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text: lipgloss.NoColor{}, Border: lipgloss.NoColor{}, Accent: lipgloss.NoColor{},
		Success: lipgloss.NoColor{}, Warning: lipgloss.NoColor{}, Error: lipgloss.NoColor{},
		Dim: lipgloss.NoColor{}, Info: lipgloss.NoColor{},
	}
)

// themes indexes the CLI themes and their dashboard palettes by name.
var themes = map[string]struct {
	cli Theme
	tui TUITheme
}{
	"dark":   {DarkTheme, DarkTUITheme},
	"light":  {LightTheme, LightTUITheme},
	"orange": {OrangeTheme, OrangeTUITheme},
	"none":   {NoColorTheme, NoColorTUITheme},
}

var (
	themeMutex   sync.RWMutex
	currentTheme = DarkTheme
)

// GetCurrentTheme returns the active CLI theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the dashboard palette of the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	if t, ok := themes[currentTheme.Name]; ok {
		return t.tui
	}
	return DarkTUITheme
}

// SetCurrentTheme installs t. Tests use it to restore the previous theme.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the named theme ("dark", "light", "orange" or "none").
// Unknown names select dark.
func SetTheme(name string) {
	t, ok := themes[name]
	if !ok {
		t = themes["dark"]
	}
	SetCurrentTheme(t.cli)
}

// InitTheme selects the theme at startup. Colors are off when noColor is
// set or NO_COLOR is present in the environment (https://no-color.org/);
// otherwise BIGCALC_THEME names the theme.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetTheme("none")
		return
	}
	SetTheme(os.Getenv("BIGCALC_THEME"))
}
