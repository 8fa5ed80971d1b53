package styles

// DefaultTheme is the baseline palette.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Background:   "#0B0F14",
		Text:         "#E6EDF3",
		TextMuted:    "#8B9AAE",
		Border:       "#223043",
		Accent:       "#5B8DEF",
		Cursor:       "#7AA2F7",
		Done:         "#3FB950",
		GradientFrom: "#5B8DEF",
		GradientTo:   "#B57AF7",
	},
}
