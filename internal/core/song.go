package core

import (
	"strconv"
	"strings"
	"time"
)

// Image is one artwork rendition of a song.
type Image struct {
	Quality string `json:"quality"`
	Link    string `json:"link"`
}

// Album identifies the album a song belongs to.
type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Song is an immutable catalog record.
type Song struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Type              string  `json:"type,omitempty"`
	Album             Album   `json:"album"`
	Year              string  `json:"year"`
	ReleaseDate       string  `json:"releaseDate,omitempty"`
	Duration          int     `json:"duration"`
	Label             string  `json:"label,omitempty"`
	PrimaryArtists    string  `json:"primaryArtists"`
	PlayCount         int     `json:"playCount,omitempty"`
	Language          string  `json:"language,omitempty"`
	HasLyrics         string  `json:"hasLyrics,omitempty"`
	URL               string  `json:"url"`
	Copyright         string  `json:"copyright,omitempty"`
	Image             []Image `json:"image"`
	EncryptedMediaURL string  `json:"encryptedMediaUrl"`
}

// thumbnailQualities is the preference order for artwork.
var thumbnailQualities = []string{"500x500", "150x150", "50x50"}

// Artists splits the comma-joined artist string into trimmed, non-empty names.
func (s Song) Artists() []string {
	var names []string
	for _, part := range strings.Split(s.PrimaryArtists, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Thumbnail returns the best available artwork link.
func (s Song) Thumbnail() string {
	for _, q := range thumbnailQualities {
		for _, img := range s.Image {
			if img.Quality == q && img.Link != "" {
				return img.Link
			}
		}
	}
	if len(s.Image) > 0 {
		return s.Image[0].Link
	}
	return ""
}

// YearInt returns the release year, or 0 when missing or malformed.
func (s Song) YearInt() int {
	y, err := strconv.Atoi(strings.TrimSpace(s.Year))
	if err != nil {
		return 0
	}
	return y
}

// Length returns the song duration.
func (s Song) Length() time.Duration {
	if s.Duration <= 0 {
		return 0
	}
	return time.Duration(s.Duration) * time.Second
}

// Playable reports whether the song carries a media token.
func (s Song) Playable() bool {
	return s.EncryptedMediaURL != ""
}
