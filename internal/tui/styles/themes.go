package styles

// NewVitrineTheme is the default theme: the storefront blue with green and red
// action colors.
func NewVitrineTheme() *Theme {
	return &Theme{
		Name:   "vitrine",
		IsDark: true,

		Primary:   ParseHex("#1E88E5"),
		Secondary: ParseHex("#5EB3F6"),
		Accent:    ParseHex("#43A047"),

		BgBase:   ParseHex("#1B1F24"),
		BgSubtle: ParseHex("#2D333B"),

		FgBase:     ParseHex("#F5F5F5"),
		FgMuted:    ParseHex("#A0A0A0"),
		FgSubtle:   ParseHex("#9E9E9E"),
		FgInverted: ParseHex("#FFFFFF"),

		Border:      ParseHex("#5D6D7E"),
		BorderFocus: ParseHex("#1E88E5"),

		Success: ParseHex("#43A047"),
		Error:   ParseHex("#D32F2F"),
		Warning: ParseHex("#F39C12"),
		Info:    ParseHex("#5EB3F6"),
	}
}

// NewDarkTheme creates a low-contrast slate theme
func NewDarkTheme() *Theme {
	return &Theme{
		Name:   "dark",
		IsDark: true,

		Primary:   ParseHex("#60a5fa"), // Sky blue
		Secondary: ParseHex("#a78bfa"), // Violet
		Accent:    ParseHex("#34d399"), // Emerald

		BgBase:   ParseHex("#0f172a"), // Slate 900
		BgSubtle: ParseHex("#334155"), // Slate 700

		FgBase:     ParseHex("#f8fafc"), // Slate 50
		FgMuted:    ParseHex("#cbd5e1"), // Slate 300
		FgSubtle:   ParseHex("#94a3b8"), // Slate 400
		FgInverted: ParseHex("#0f172a"), // Slate 900

		Border:      ParseHex("#334155"), // Slate 700
		BorderFocus: ParseHex("#60a5fa"), // Sky 400

		Success: ParseHex("#34d399"),
		Error:   ParseHex("#f87171"),
		Warning: ParseHex("#fbbf24"),
		Info:    ParseHex("#60a5fa"),
	}
}
