package render

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Theme names
const (
	ThemePartSelect = "partselect"
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeDracula    = "dracula"
	ThemeTokyoNight = "tokyo-night"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
)

// brand colors of the storefront
const (
	brandTeal   = "#337778"
	brandYellow = "#F3C04C"
	brandInk    = "#E8E8E8"
)

// partSelectStyle derives the storefront style from glamour's dark style.
// Only pointers are replaced, so the shared dark style is never mutated.
func partSelectStyle() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	cfg.H1.StylePrimitive.Color = strPtr(brandInk)
	cfg.H1.StylePrimitive.BackgroundColor = strPtr(brandTeal)
	cfg.H1.StylePrimitive.Bold = boolPtr(true)

	cfg.Heading.StylePrimitive.Color = strPtr(brandTeal)
	cfg.Heading.StylePrimitive.Bold = boolPtr(true)

	cfg.Link.Color = strPtr(brandYellow)
	cfg.Link.Underline = boolPtr(true)
	cfg.LinkText.Color = strPtr(brandYellow)
	cfg.LinkText.Bold = boolPtr(true)

	cfg.Strong.Color = strPtr(brandYellow)

	return cfg
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// IsBuiltinStyle reports whether style names a bundled theme rather than a
// path to a JSON style file.
func IsBuiltinStyle(style string) bool {
	if style == ThemePartSelect {
		return true
	}
	_, ok := styles.DefaultStyles[style]
	return ok
}

// styleOption returns the glamour option selecting style
func styleOption(style string) glamour.TermRendererOption {
	if style == ThemePartSelect || style == "" {
		return glamour.WithStyles(partSelectStyle())
	}
	return glamour.WithStylePath(style)
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the markdown themes that need no style file.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemePartSelect, Description: "Storefront colors (default)"},
		{Name: ThemeDark, Description: "Dark theme"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
