package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ColorScheme defines the colors used by the CLI's human-readable output
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave")
	Preset string `yaml:"preset"`

	// Primary accent color (titles, field labels, borders)
	Accent string `yaml:"accent"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Priority colors
	PriorityHigh   string `yaml:"priority_high"`
	PriorityMedium string `yaml:"priority_medium"`
	PriorityLow    string `yaml:"priority_low"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// DefaultColorScheme returns the default color scheme (purple theme)
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset:         "default",
		Accent:         "#874BFD",
		Title:          "#D75FD7",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		PriorityHigh:   "#FF5F5F",
		PriorityMedium: "#FFD700",
		PriorityLow:    "#5FD75F",
		InfoFg:         "#00AFFF",
		InfoBg:         "#00005F",
		WarningFg:      "#FFD700",
		WarningBg:      "#875F00",
		ErrorFg:        "#FF0000",
		ErrorBg:        "#5F0000",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		Title:          "#FFFFFF",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		PriorityHigh:   "#FFFFFF",
		PriorityMedium: "#D0D0D0",
		PriorityLow:    "#585858",
		InfoFg:         "#FFFFFF",
		InfoBg:         "#1C1C1C",
		WarningFg:      "#FFFFFF",
		WarningBg:      "#3A3A3A",
		ErrorFg:        "#FFFFFF",
		ErrorBg:        "#585858",
	}
}

// WaveColorScheme returns the Kanagawa Wave palette
func WaveColorScheme() ColorScheme {
	return ColorScheme{
		Preset:         "wave",
		Accent:         "#957FB8",
		Title:          "#7E9CD8",
		Subtle:         "#727169",
		Normal:         "#DCD7BA",
		PriorityHigh:   "#E82424",
		PriorityMedium: "#FF9E3B",
		PriorityLow:    "#98BB6C",
		InfoFg:         "#658594",
		InfoBg:         "#252535",
		WarningFg:      "#FF9E3B",
		WarningBg:      "#49443C",
		ErrorFg:        "#E82424",
		ErrorBg:        "#43242B",
	}
}

// GetPreset returns a preset color scheme by name; unknown names get the default
func GetPreset(name string) ColorScheme {
	switch name {
	case "monochrome":
		return MonochromeColorScheme()
	case "wave":
		return WaveColorScheme()
	default:
		return DefaultColorScheme()
	}
}

// ApplyDefaults fills in missing color values from the named preset
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
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.PriorityHigh, preset.PriorityHigh)
	fill(&c.PriorityMedium, preset.PriorityMedium)
	fill(&c.PriorityLow, preset.PriorityLow)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.InfoBg, preset.InfoBg)
	fill(&c.WarningFg, preset.WarningFg)
	fill(&c.WarningBg, preset.WarningBg)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.ErrorBg, preset.ErrorBg)
}

// MergeFrom copies every non-empty color of other into c
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&c.Preset, other.Preset)
	set(&c.Accent, other.Accent)
	set(&c.Title, other.Title)
	set(&c.Subtle, other.Subtle)
	set(&c.Normal, other.Normal)
	set(&c.PriorityHigh, other.PriorityHigh)
	set(&c.PriorityMedium, other.PriorityMedium)
	set(&c.PriorityLow, other.PriorityLow)
	set(&c.InfoFg, other.InfoFg)
	set(&c.InfoBg, other.InfoBg)
	set(&c.WarningFg, other.WarningFg)
	set(&c.WarningBg, other.WarningBg)
	set(&c.ErrorFg, other.ErrorFg)
	set(&c.ErrorBg, other.ErrorBg)
}

// loadThemeFile merges the theme from TABLERO_THEME_FILE, if set and readable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}
