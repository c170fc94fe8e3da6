package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for headers, labels, highlights)
	Accent string `yaml:"accent"`

	// Board elements
	StageBorder string `yaml:"stage_border"`
	CardBorder  string `yaml:"card_border"`
	Pinned      string `yaml:"pinned"`

	// Calendar markers
	Scheduled string `yaml:"scheduled"`
	Planned   string `yaml:"planned"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	case "lotus":
		return Lotus()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
// If preset is specified, loads that preset first, then overrides with custom values
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.StageBorder, preset.StageBorder)
	fill(&c.CardBorder, preset.CardBorder)
	fill(&c.Pinned, preset.Pinned)
	fill(&c.Scheduled, preset.Scheduled)
	fill(&c.Planned, preset.Planned)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.InfoBg, preset.InfoBg)
	fill(&c.WarningFg, preset.WarningFg)
	fill(&c.WarningBg, preset.WarningBg)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.ErrorBg, preset.ErrorBg)
}

// MergeFrom overlays every non-empty value of other onto c
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	take := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	take(&c.Preset, other.Preset)
	take(&c.Accent, other.Accent)
	take(&c.StageBorder, other.StageBorder)
	take(&c.CardBorder, other.CardBorder)
	take(&c.Pinned, other.Pinned)
	take(&c.Scheduled, other.Scheduled)
	take(&c.Planned, other.Planned)
	take(&c.Title, other.Title)
	take(&c.Subtle, other.Subtle)
	take(&c.Normal, other.Normal)
	take(&c.InfoFg, other.InfoFg)
	take(&c.InfoBg, other.InfoBg)
	take(&c.WarningFg, other.WarningFg)
	take(&c.WarningBg, other.WarningBg)
	take(&c.ErrorFg, other.ErrorFg)
	take(&c.ErrorBg, other.ErrorBg)
}
