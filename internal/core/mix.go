package core

import "strings"

// Color is the cosmetic shell color of a cassette.
type Color string

const (
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
	ColorWhite  Color = "white"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
)

// Colors lists every valid mix color.
var Colors = []Color{ColorOrange, ColorPurple, ColorWhite, ColorGreen, ColorRed}

// Valid reports whether c is a known color.
func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

const (
	// OnTheGoTitle names the ad-hoc mix used by "play now".
	OnTheGoTitle = "On-the-Go"

	// FavoritesID is the reserved id of the liked-songs mix.
	FavoritesID    = "favorites"
	FavoritesTitle = "Favorites ❤️"

	// MaxMixes is the soft library cap enforced where mixes are created.
	MaxMixes = 10

	// MaxTitleLen is the title limit applied on import.
	MaxTitleLen = 50
)

// Mix is a user-owned ordered playlist.
type Mix struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Color            Color  `json:"color"`
	Songs            []Song `json:"songs"`
	CurrentSongIndex int    `json:"currentSongIndex"`

	// Origin fingerprints the share link a mix was imported from.
	Origin string `json:"origin,omitempty"`
}

// Current returns the song at the cursor, or nil if the index is out of range.
func (m *Mix) Current() *Song {
	if m == nil || len(m.Songs) == 0 || m.CurrentSongIndex < 0 || m.CurrentSongIndex >= len(m.Songs) {
		return nil
	}
	return &m.Songs[m.CurrentSongIndex]
}

// Len returns the number of songs in the mix.
func (m *Mix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Songs)
}

// IsEmpty returns true if the mix has no songs.
func (m *Mix) IsEmpty() bool {
	return m.Len() == 0
}

// IndexOf returns the position of the song with the given id, or -1.
func (m *Mix) IndexOf(songID string) int {
	if m == nil {
		return -1
	}
	for i, s := range m.Songs {
		if s.ID == songID {
			return i
		}
	}
	return -1
}

// HasSong reports whether a song with the given id is in the mix.
func (m *Mix) HasSong(songID string) bool {
	return m.IndexOf(songID) >= 0
}

// IsOnTheGo reports whether this is the ad-hoc On-the-Go mix.
func (m *Mix) IsOnTheGo() bool {
	return m != nil && IsOnTheGoTitle(m.Title)
}

// IsOnTheGoTitle matches the On-the-Go title case-insensitively, ignoring
// surrounding whitespace.
func IsOnTheGoTitle(title string) bool {
	return strings.EqualFold(strings.TrimSpace(title), OnTheGoTitle)
}

// Clone returns a copy whose song slice does not alias m.
func (m Mix) Clone() Mix {
	out := m
	if m.Songs != nil {
		out.Songs = make([]Song, len(m.Songs))
		copy(out.Songs, m.Songs)
	}
	return out
}

// SongIDs returns the ids of the mix's songs in order.
func (m *Mix) SongIDs() []string {
	if m == nil {
		return nil
	}
	ids := make([]string, len(m.Songs))
	for i, s := range m.Songs {
		ids[i] = s.ID
	}
	return ids
}
