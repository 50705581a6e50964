package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the chat interface
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Primary marks assistant output, Secondary user input, Accent links
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

var (
	// PartSelectTheme uses the storefront's teal and yellow
	PartSelectTheme = TUITheme{
		Name:        "partselect",
		Description: "Storefront teal and yellow",

		Background: lipgloss.Color("#121212"),
		Surface:    lipgloss.Color("#1f2d2d"),
		Border:     lipgloss.Color(brandTeal),

		Primary:   lipgloss.Color("#5fb3b4"),
		Secondary: lipgloss.Color(brandYellow),
		Accent:    lipgloss.Color(brandYellow),
		Warning:   lipgloss.Color("#f0a04b"),
		Error:     lipgloss.Color("#e05d5d"),

		Text:     lipgloss.Color(brandInk),
		TextDim:  lipgloss.Color("#8a9a9a"),
		TextMute: lipgloss.Color("#4a5a5a"),
	}

	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - dark with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	CatppuccinMochaTheme = TUITheme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - warm pastels",

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#a6e3a1"),
		Accent:    lipgloss.Color("#cba6f7"),
		Warning:   lipgloss.Color("#f9e2af"),
		Error:     lipgloss.Color("#f38ba8"),

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),
	}

	LightTheme = TUITheme{
		Name:        "light",
		Description: "High contrast for bright terminals",

		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#eef4f4"),
		Border:     lipgloss.Color(brandTeal),

		Primary:   lipgloss.Color(brandTeal),
		Secondary: lipgloss.Color("#8a5a00"),
		Accent:    lipgloss.Color("#1f5fa8"),
		Warning:   lipgloss.Color("#a86400"),
		Error:     lipgloss.Color("#b00020"),

		Text:     lipgloss.Color("#1a1a1a"),
		TextDim:  lipgloss.Color("#5a5a5a"),
		TextMute: lipgloss.Color("#a0a0a0"),
	}
)

var (
	tuiThemeMu      sync.RWMutex
	currentTUITheme = PartSelectTheme
)

// AvailableTUIThemes returns all TUI themes, default first
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		PartSelectTheme,
		TokyoNightTheme,
		CatppuccinMochaTheme,
		LightTheme,
	}
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// GetTUITheme returns the active TUI theme
func GetTUITheme() TUITheme {
	tuiThemeMu.RLock()
	defer tuiThemeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme activates a theme by name. Unknown names leave the current
// theme in place and return false.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	tuiThemeMu.Lock()
	currentTUITheme = theme
	tuiThemeMu.Unlock()
	return true
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
