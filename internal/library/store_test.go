package library

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/store"
)

func song(id string) core.Song {
	return core.Song{ID: id, Name: "Song " + id, PrimaryArtists: "Artist", Album: core.Album{ID: "al-" + id, Name: "Album " + id}}
}

func newStore(t *testing.T) (*Store, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	return New(kv, nil), kv
}

func TestLoadDefaultsPersisted(t *testing.T) {
	s, kv := newStore(t)

	mixes := s.List()
	require.Len(t, mixes, 2)
	assert.Equal(t, "Pawan Kalyan Hits", mixes[0].Title)
	assert.Equal(t, core.ColorOrange, mixes[0].Color)
	assert.Equal(t, "DSP Specials", mixes[1].Title)
	assert.Equal(t, core.ColorPurple, mixes[1].Color)

	raw, ok, err := kv.Get(store.KeyMixes)
	require.NoError(t, err)
	require.True(t, ok, "defaults must be written back")
	var persisted []core.Mix
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Len(t, persisted, 2)
}

func TestLoadCorruptFallsBack(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(store.KeyMixes, "{{{"))

	s := New(kv, nil)
	assert.Equal(t, DefaultMixes(), s.List())

	raw, _, _ := kv.Get(store.KeyMixes)
	assert.NotEqual(t, "{{{", raw)
}

func TestLoadKeepsEmptyLibrary(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(store.KeyMixes, "[]"))
	assert.Empty(t, New(kv, nil).List())
}

func TestWriteThrough(t *testing.T) {
	s, kv := newStore(t)
	before := kv.Writes()

	s.Add(core.Mix{ID: "x", Title: "X"})
	title := "Renamed"
	_, err := s.Update("x", Patch{Title: &title})
	require.NoError(t, err)
	require.NoError(t, s.Delete("x"))

	assert.Equal(t, before+3, kv.Writes())

	reloaded := New(kv, nil)
	assert.Len(t, reloaded.List(), 2)
}

func TestWriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	s, kv := newStore(t)
	kv.FailWrites(true)

	s.Add(core.Mix{ID: "x", Title: "X"})
	m, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, "X", m.Title)
}

func TestListOrderAndIsolation(t *testing.T) {
	s, _ := newStore(t)
	s.Add(core.Mix{ID: "3", Title: "Third", Songs: []core.Song{song("a")}})

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})

	list[2].Songs[0].Name = "mutated"
	m, _ := s.Get("3")
	assert.Equal(t, "Song a", m.Songs[0].Name)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Update("nope", Patch{})
	assert.ErrorIs(t, err, tderr.ErrMixNotFound)
	assert.ErrorIs(t, s.Delete("nope"), tderr.ErrMixNotFound)
}

func TestObservers(t *testing.T) {
	s, _ := newStore(t)

	var deleted []string
	var changed []string
	s.OnDelete(func(id string) { deleted = append(deleted, id) })
	s.OnChange(func(m core.Mix) { changed = append(changed, m.ID) })

	s.Add(core.Mix{ID: "x"})
	_, err := s.Update("x", Patch{})
	require.NoError(t, err)
	require.NoError(t, s.Delete("1"))

	assert.Equal(t, []string{"x", "x"}, changed)
	assert.Equal(t, []string{"1"}, deleted)

	deleted = nil
	s.Replace([]core.Mix{{ID: "x"}})
	assert.Equal(t, []string{"2"}, deleted)
}

func TestObserverMayCallBack(t *testing.T) {
	s, _ := newStore(t)
	s.OnDelete(func(string) { _ = s.List() })
	require.NoError(t, s.Delete("1"))
}
