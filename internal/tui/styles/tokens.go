package styles

// ThemeTokens defines the semantic color roles for the player.
type ThemeTokens struct {
	Background   string
	Text         string
	TextMuted    string
	Border       string
	Accent       string
	Cursor       string
	Done         string
	GradientFrom string
	GradientTo   string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// Lookup returns the named theme, falling back to the default.
func Lookup(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}
