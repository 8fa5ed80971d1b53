package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gradient renders text with a per-rune color blend between the theme's
// gradient endpoints. Falls back to plain text when the endpoints do not
// parse.
func Gradient(text string, theme Theme) string {
	from, errFrom := colorful.Hex(theme.Tokens.GradientFrom)
	to, errTo := colorful.Hex(theme.Tokens.GradientTo)
	if errFrom != nil || errTo != nil {
		return text
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLuv(to, t)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}
