package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme  Theme
	Title  lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
	Bold   lipgloss.Style
	Italic lipgloss.Style
	Cursor lipgloss.Style
	Border lipgloss.Style
	Done   lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:  theme,
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Bold:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Italic: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Italic(true),
		Cursor: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Cursor)).Bold(true),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Border)),
		Done:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Done)),
	}
}

// SpanStyle maps a script span style name to a lipgloss style. Unknown
// and empty names render as plain text; the "gradient" style is handled
// separately by the renderer.
func (s Styles) SpanStyle(name string) lipgloss.Style {
	switch name {
	case "bold":
		return s.Bold
	case "italic":
		return s.Italic
	case "accent":
		return s.Accent
	case "muted":
		return s.Muted
	default:
		return s.Text
	}
}
