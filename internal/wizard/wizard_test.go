package wizard

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/tapedeck/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMixModelSelects(t *testing.T) {
	mixes := []core.Mix{
		{ID: "1", Title: "Road Trip", Color: core.ColorOrange},
		{ID: "2", Title: "Late Night", Color: core.ColorPurple},
	}
	var m tea.Model = NewMixModel(mixes, "2")

	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	assert.Contains(t, m.View(), "inserted")

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	selected := m.(MixModel).Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "2", selected.ID, "cursor stops at the last tape")
}

func TestMixModelEmptyShelf(t *testing.T) {
	m := NewMixModel(nil, "")
	assert.Contains(t, m.View(), "shelf is empty")

	next, _ := m.Update(keyMsg("enter"))
	assert.Nil(t, next.(MixModel).Selected())
}

func TestSearchModelDropsStaleResults(t *testing.T) {
	m := NewSearchModel(func(string) ([]core.Song, error) { return nil, nil })
	m.query.SetValue("kushi")
	m.seq = 2

	next, _ := m.Update(songsMsg{seq: 1, songs: []core.Song{{ID: "old"}}})
	assert.Empty(t, next.(SearchModel).songs)

	next, _ = next.Update(songsMsg{seq: 2, songs: []core.Song{{ID: "s1", Name: "Kushi"}}})
	sm := next.(SearchModel)
	require.Len(t, sm.songs, 1)

	next, _ = sm.Update(keyMsg("enter"))
	require.NotNil(t, next.(SearchModel).Selected())
	assert.Equal(t, "s1", next.(SearchModel).Selected().ID)
}

func TestSearchModelDebouncesTyping(t *testing.T) {
	m := NewSearchModel(func(string) ([]core.Song, error) { return nil, errors.New("offline") })

	var model tea.Model = m
	model, _ = model.Update(keyMsg("g"))
	model, _ = model.Update(keyMsg("o"))
	sm := model.(SearchModel)
	require.Equal(t, "go", sm.query.Value())
	assert.Equal(t, 2, sm.seq, "every edit starts a new request")

	model, cmd := model.Update(queryChangedMsg{seq: 1})
	assert.Nil(t, cmd, "superseded edits do not search")

	model, cmd = model.Update(queryChangedMsg{seq: 2})
	require.NotNil(t, cmd)
	assert.True(t, model.(SearchModel).pending)

	model, _ = model.Update(songsMsg{seq: 2, err: errors.New("offline")})
	assert.Contains(t, model.View(), "offline")
}

func TestSearchModelReusesRecentSearch(t *testing.T) {
	m := NewSearchModel(func(string) ([]core.Song, error) { return nil, nil }, "kushi", "gabbar")
	assert.Contains(t, m.View(), "Recent searches")

	var model tea.Model = m
	model, _ = model.Update(keyMsg("down"))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)
	sm := model.(SearchModel)
	assert.Equal(t, "gabbar", sm.query.Value())
	assert.False(t, sm.suggesting())
}

func TestSongRowFitsWidth(t *testing.T) {
	row := songRow(core.Song{Name: "A Very Long Song Title That Goes On", PrimaryArtists: "Someone", Year: "2020"}, 30)
	assert.Contains(t, row, "…")
	assert.Equal(t, "Kushi", songRow(core.Song{Name: "Kushi"}, 30))
}

func TestPickSongWithoutTerminal(t *testing.T) {
	i := NewInteractive()
	i.SetEnabled(false)

	song, err := i.PickSong("Which one?", []core.Song{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)
	assert.Equal(t, "a", song.ID)

	ok, err := i.Confirm("Sure?", false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSongLabel(t *testing.T) {
	assert.Equal(t, "Kushi · Sid Sriram (2023)", SongLabel(core.Song{Name: "Kushi", PrimaryArtists: "Sid Sriram", Year: "2023"}))
	assert.Equal(t, "Kushi", SongLabel(core.Song{Name: "Kushi"}))
}
