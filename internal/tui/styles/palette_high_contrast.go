package styles

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Background:   "#000000",
		Text:         "#FFFFFF",
		TextMuted:    "#C0C0C0",
		Border:       "#FFFFFF",
		Accent:       "#00A2FF",
		Cursor:       "#FFD400",
		Done:         "#00FF5A",
		GradientFrom: "#00A2FF",
		GradientTo:   "#FFD400",
	},
}
