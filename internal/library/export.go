package library

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
)

// ExportVersion is written into export documents.
const ExportVersion = "2.0.0"

// ExportDoc is the backup file format.
type ExportDoc struct {
	Version    string     `json:"version"`
	ExportDate time.Time  `json:"exportDate"`
	Playlists  []core.Mix `json:"playlists"`
}

// ImportReport summarizes a file import.
type ImportReport struct {
	Added     []core.Mix
	Invalid   int
	Duplicate int
	OverLimit int
	Truncated int
}

// Skipped returns how many entries were not imported.
func (r ImportReport) Skipped() int {
	return r.Invalid + r.Duplicate + r.OverLimit
}

// Export writes the whole library as an ExportDoc.
func (s *Store) Export(w io.Writer) error {
	doc := ExportDoc{
		Version:    ExportVersion,
		ExportDate: time.Now().UTC(),
		Playlists:  s.List(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Import reads an ExportDoc, or a bare array of mixes, and adds every valid
// entry whose id is not already present, up to the library cap. Malformed
// entries are skipped; the file is only rejected when nothing in it is usable.
func (s *Store) Import(r io.Reader) (ImportReport, error) {
	var report ImportReport

	data, err := io.ReadAll(r)
	if err != nil {
		return report, fmt.Errorf("%w: %v", tderr.ErrInvalidImport, err)
	}
	entries, err := importEntries(data)
	if err != nil {
		return report, err
	}

	var valid []core.Mix
	for _, entry := range entries {
		mix, truncated, ok := parseEntry(entry)
		if !ok {
			report.Invalid++
			continue
		}
		if truncated {
			report.Truncated++
		}
		valid = append(valid, mix)
	}
	if len(valid) == 0 {
		return report, fmt.Errorf("%w: no valid mixtapes found", tderr.ErrInvalidImport)
	}

	current := s.List()
	slots := core.MaxMixes - len(current)
	if slots <= 0 {
		return report, tderr.WithSuggestion(
			fmt.Errorf("%w: library full", tderr.ErrLibraryFull),
			"Delete a mix before importing")
	}

	existing := lo.SliceToMap(current, func(m core.Mix) (string, struct{}) { return m.ID, struct{}{} })
	for _, mix := range valid {
		if _, dup := existing[mix.ID]; dup {
			report.Duplicate++
			continue
		}
		if len(report.Added) >= slots {
			report.OverLimit++
			continue
		}
		existing[mix.ID] = struct{}{}
		s.Add(mix)
		report.Added = append(report.Added, mix)
	}
	return report, nil
}

func importEntries(data []byte) ([]map[string]any, error) {
	var doc struct {
		Playlists []map[string]any `json:"playlists"`
	}
	if err := json.Unmarshal(data, &doc); err == nil && doc.Playlists != nil {
		return doc.Playlists, nil
	}

	var bare []map[string]any
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("%w: failed to parse file", tderr.ErrInvalidImport)
	}
	return bare, nil
}

// parseEntry validates one imported mix: an id, a string title, and songs
// each with an id and a string name.
func parseEntry(entry map[string]any) (core.Mix, bool, bool) {
	id, ok := idString(entry["id"])
	if !ok {
		return core.Mix{}, false, false
	}
	title, ok := entry["title"].(string)
	if !ok {
		return core.Mix{}, false, false
	}
	rawSongs, ok := entry["songs"].([]any)
	if !ok {
		return core.Mix{}, false, false
	}
	for _, rs := range rawSongs {
		song, ok := rs.(map[string]any)
		if !ok {
			return core.Mix{}, false, false
		}
		songID, ok := idString(song["id"])
		if !ok {
			return core.Mix{}, false, false
		}
		if _, ok := song["name"].(string); !ok {
			return core.Mix{}, false, false
		}
		song["id"] = songID
	}
	entry["id"] = id

	data, err := json.Marshal(entry)
	if err != nil {
		return core.Mix{}, false, false
	}
	var mix core.Mix
	if err := json.Unmarshal(data, &mix); err != nil {
		return core.Mix{}, false, false
	}

	truncated := false
	if r := []rune(title); len(r) > core.MaxTitleLen {
		mix.Title = string(r[:core.MaxTitleLen])
		truncated = true
	}
	if !mix.Color.Valid() {
		mix.Color = core.ColorOrange
	}
	if mix.Songs == nil {
		mix.Songs = []core.Song{}
	}
	if mix.CurrentSongIndex < 0 || mix.CurrentSongIndex >= len(mix.Songs) {
		mix.CurrentSongIndex = 0
	}
	return mix, truncated, true
}

func idString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), id != 0
	default:
		return "", false
	}
}
