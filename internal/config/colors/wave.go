package colors

// Wave returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		Accent: palette.oniViolet,

		StageBorder: palette.crystalBlue,
		CardBorder:  palette.sumiInk4,
		Pinned:      palette.carpYellow,

		Scheduled: palette.springGreen,
		Planned:   palette.carpYellow,

		Title:  palette.crystalBlue,
		Subtle: palette.fujiGray,
		Normal: palette.fujiWhite,

		InfoFg:    palette.crystalBlue,
		InfoBg:    palette.waveBlue2,
		WarningFg: palette.roninYellow,
		WarningBg: palette.winterYellow,
		ErrorFg:   palette.autumnRed,
		ErrorBg:   palette.winterRed,
	}
}
