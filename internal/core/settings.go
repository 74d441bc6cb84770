package core

// Theme is the shell color scheme.
type Theme string

const (
	ThemeClassic Theme = "classic"
	ThemeBlack   Theme = "black"
	ThemeSilver  Theme = "silver"
	ThemeDark    Theme = "dark"
)

// Themes lists the themes in cycle order.
var Themes = []Theme{ThemeClassic, ThemeBlack, ThemeSilver, ThemeDark}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, known := range Themes {
		if known == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}

// SettingsVersion is written with every persisted settings blob.
const SettingsVersion = "2.0.0"

// Settings are the persisted user preferences.
type Settings struct {
	Volume           float64 `json:"volume"`
	ClickSounds      bool    `json:"clickSounds"`
	Theme            Theme   `json:"theme"`
	LastPlayedSongID string  `json:"lastPlayedSongId"`
	Version          string  `json:"version"`
}

// DefaultSettings returns the built-in preferences.
func DefaultSettings() Settings {
	return Settings{
		Volume:      0.7,
		ClickSounds: true,
		Theme:       ThemeClassic,
		Version:     SettingsVersion,
	}
}

// ClampUnit clamps v to [0,1].
func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
