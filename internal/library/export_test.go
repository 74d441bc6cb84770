package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := newStore(t)
	src.Add(core.Mix{ID: "x", Title: "Exported", Color: core.ColorWhite, Songs: []core.Song{song("a")}})

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	var doc ExportDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, ExportVersion, doc.Version)
	assert.False(t, doc.ExportDate.IsZero())
	assert.Len(t, doc.Playlists, 3)

	dst, _ := newStore(t)
	report, err := dst.Import(&buf)
	require.NoError(t, err)
	require.Len(t, report.Added, 1)
	assert.Equal(t, "x", report.Added[0].ID)
	assert.Equal(t, 2, report.Duplicate)

	m, ok := dst.Get("x")
	require.True(t, ok)
	assert.Equal(t, "Song a", m.Songs[0].Name)
}

func TestImportBareArrayValidates(t *testing.T) {
	long := strings.Repeat("é", 60)
	file := fmt.Sprintf(`[
		{"id": "ok", "title": %q, "color": "green", "songs": [{"id": "s1", "name": "One"}]},
		{"id": 42, "title": "numeric id", "songs": []},
		{"id": "", "title": "no id", "songs": []},
		{"id": "t", "title": 5, "songs": []},
		{"id": "u", "title": "no songs"},
		{"id": "v", "title": "bad song", "songs": [{"id": "s1"}]},
		{"id": "w", "title": "bad color", "color": "neon", "songs": []}
	]`, long)

	s, _ := newStore(t)
	report, err := s.Import(strings.NewReader(file))
	require.NoError(t, err)

	assert.Len(t, report.Added, 3)
	assert.Equal(t, 4, report.Invalid)
	assert.Equal(t, 1, report.Truncated)

	m, ok := s.Get("ok")
	require.True(t, ok)
	assert.Equal(t, core.MaxTitleLen, len([]rune(m.Title)))

	num, ok := s.Get("42")
	require.True(t, ok)
	assert.Equal(t, "numeric id", num.Title)

	w, _ := s.Get("w")
	assert.Equal(t, core.ColorOrange, w.Color)
}

func TestImportHonoursCap(t *testing.T) {
	s, _ := newStore(t)
	for s.Len() < core.MaxMixes-1 {
		_, err := s.CreateMix(fmt.Sprintf("m%d", s.Len()), core.ColorRed)
		require.NoError(t, err)
	}

	file := `[{"id":"a","title":"A","songs":[]},{"id":"b","title":"B","songs":[]}]`
	report, err := s.Import(strings.NewReader(file))
	require.NoError(t, err)
	assert.Len(t, report.Added, 1)
	assert.Equal(t, 1, report.OverLimit)
	assert.Equal(t, core.MaxMixes, s.Len())

	_, err = s.Import(strings.NewReader(`[{"id":"c","title":"C","songs":[]}]`))
	assert.ErrorIs(t, err, tderr.ErrLibraryFull)
}

func TestImportRejectsGarbage(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Import(strings.NewReader("not json"))
	assert.ErrorIs(t, err, tderr.ErrInvalidImport)

	_, err = s.Import(strings.NewReader(`[{"title":"no id"}]`))
	assert.ErrorIs(t, err, tderr.ErrInvalidImport)
	assert.Len(t, s.List(), 2, "nothing partially applied")
}
