package saavn

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flex decodes a JSON string, number, or bool as a string. The API mixes
// representations for the same field across endpoints.
type Flex string

func (f *Flex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flex(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*f = ""
		return nil
	}
	*f = Flex(strings.Trim(string(data), `"`))
	return nil
}

// String returns the raw value.
func (f Flex) String() string { return string(f) }

// Int parses the leading integer, returning 0 when there is none.
func (f Flex) Int() int {
	s := strings.TrimSpace(string(f))
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && s[end] == '-') {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Or returns f, or fallback when f is empty.
func (f Flex) Or(fallback Flex) Flex {
	if f != "" {
		return f
	}
	return fallback
}

// SearchResponse is the body of search.getResults (api_version 4).
type SearchResponse struct {
	Total   Flex         `json:"total"`
	Start   Flex         `json:"start"`
	Results []SearchItem `json:"results"`
}

// SearchItem is one raw search hit.
type SearchItem struct {
	ID                Flex      `json:"id"`
	Title             Flex      `json:"title"`
	Name              Flex      `json:"name"`
	Song              Flex      `json:"song"`
	Subtitle          Flex      `json:"subtitle"`
	Type              Flex      `json:"type"`
	Image             Flex      `json:"image"`
	PermaURL          Flex      `json:"perma_url"`
	Year              Flex      `json:"year"`
	Language          Flex      `json:"language"`
	PlayCount         Flex      `json:"play_count"`
	Duration          Flex      `json:"duration"`
	ExplicitContent   Flex      `json:"explicit_content"`
	EncryptedMediaURL Flex      `json:"encrypted_media_url"`
	MoreInfo          *MoreInfo `json:"more_info"`
}

// MoreInfo carries the nested song attributes of a search hit.
type MoreInfo struct {
	AlbumID           Flex       `json:"album_id"`
	Album             Flex       `json:"album"`
	AlbumURL          Flex       `json:"album_url"`
	Year              Flex       `json:"year"`
	ReleaseDate       Flex       `json:"release_date"`
	Duration          Flex       `json:"duration"`
	Label             Flex       `json:"label"`
	HasLyrics         Flex       `json:"has_lyrics"`
	CopyrightText     Flex       `json:"copyright_text"`
	EncryptedMediaURL Flex       `json:"encrypted_media_url"`
	ArtistMap         *ArtistMap `json:"artistMap"`
}

// ArtistMap groups artists by role.
type ArtistMap struct {
	PrimaryArtists []Artist `json:"primary_artists"`
}

// Artist is an artist reference.
type Artist struct {
	ID   Flex `json:"id"`
	Name Flex `json:"name"`
}

// RawSong is one entry of a song.getDetails response.
type RawSong struct {
	ID                Flex `json:"id"`
	Song              Flex `json:"song"`
	Title             Flex `json:"title"`
	Name              Flex `json:"name"`
	Type              Flex `json:"type"`
	AlbumID           Flex `json:"albumid"`
	Album             Flex `json:"album"`
	AlbumURL          Flex `json:"album_url"`
	Year              Flex `json:"year"`
	ReleaseDate       Flex `json:"release_date"`
	Duration          Flex `json:"duration"`
	Label             Flex `json:"label"`
	PrimaryArtists    Flex `json:"primary_artists"`
	PlayCount         Flex `json:"play_count"`
	Language          Flex `json:"language"`
	HasLyrics         Flex `json:"has_lyrics"`
	PermaURL          Flex `json:"perma_url"`
	CopyrightText     Flex `json:"copyright_text"`
	Image             Flex `json:"image"`
	EncryptedMediaURL Flex `json:"encrypted_media_url"`
}

// LyricsResponse is the body of lyrics.getLyrics.
type LyricsResponse struct {
	Lyrics    Flex `json:"lyrics"`
	Copyright Flex `json:"lyrics_copyright"`
	Snippet   Flex `json:"snippet"`
	Status    Flex `json:"status"`
}
