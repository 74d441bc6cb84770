package library

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
)

// RandomColor picks a cassette color.
func RandomColor() core.Color {
	return lo.Sample(core.Colors)
}

// NewID returns a fresh mix id.
func NewID() string {
	return uuid.NewString()
}

// CreateMix adds an empty mix. An empty color picks one at random.
func (s *Store) CreateMix(title string, color core.Color) (core.Mix, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return core.Mix{}, tderr.ErrEmptyTitle
	}
	if s.Len() >= core.MaxMixes {
		return core.Mix{}, tderr.WithSuggestion(
			fmt.Errorf("%w: max limit reached (%d cassettes)", tderr.ErrLibraryFull, core.MaxMixes),
			"Delete a mix before creating a new one")
	}
	if color == "" {
		color = RandomColor()
	}
	if !color.Valid() {
		return core.Mix{}, fmt.Errorf("unknown color %q", color)
	}

	mix := core.Mix{ID: NewID(), Title: title, Color: color, Songs: []core.Song{}}
	s.Add(mix)
	return mix, nil
}

// NextMixTitle returns the default title for a new mix, "Mix N".
func (s *Store) NextMixTitle() string {
	return fmt.Sprintf("Mix %d", s.Len()+1)
}

// Rename sets a mix title. Blank titles are rejected.
func (s *Store) Rename(id, title string) (core.Mix, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return core.Mix{}, tderr.ErrEmptyTitle
	}
	return s.Update(id, Patch{Title: &title})
}

// AppendSong adds song to the end of a mix unless a song with the same id is
// already present. It reports whether the song was added.
func (s *Store) AppendSong(mixID string, song core.Song) (bool, error) {
	mix, ok := s.Get(mixID)
	if !ok {
		return false, fmt.Errorf("%w: %s", tderr.ErrMixNotFound, mixID)
	}
	if mix.HasSong(song.ID) {
		return false, nil
	}
	songs := append(mix.Songs, song)
	if _, err := s.Update(mixID, Patch{Songs: &songs}); err != nil {
		return false, err
	}
	return true, nil
}

// FindOnTheGo returns the On-the-Go mix if there is one.
func (s *Store) FindOnTheGo() (core.Mix, bool) {
	return lo.Find(s.List(), func(m core.Mix) bool { return m.IsOnTheGo() })
}

// PlayNowTarget places song in the On-the-Go mix and returns where it is.
// An existing copy is reused; the mix is created when missing.
func (s *Store) PlayNowTarget(song core.Song) (mixID string, index int, err error) {
	otg, ok := s.FindOnTheGo()
	if !ok {
		otg = core.Mix{
			ID:    NewID(),
			Title: core.OnTheGoTitle,
			Color: core.ColorOrange,
			Songs: []core.Song{song},
		}
		s.Add(otg)
		return otg.ID, 0, nil
	}

	if i := otg.IndexOf(song.ID); i >= 0 {
		return otg.ID, i, nil
	}
	songs := append(otg.Songs, song)
	if _, err := s.Update(otg.ID, Patch{Songs: &songs}); err != nil {
		return "", 0, err
	}
	return otg.ID, len(songs) - 1, nil
}

// FillOnTheGo replaces the On-the-Go mix contents with songs and rewinds it,
// creating the mix when missing.
func (s *Store) FillOnTheGo(songs []core.Song) (string, error) {
	songs = slices.Clone(songs)
	otg, ok := s.FindOnTheGo()
	if !ok {
		otg = core.Mix{
			ID:    NewID(),
			Title: core.OnTheGoTitle,
			Color: core.ColorOrange,
			Songs: songs,
		}
		s.Add(otg)
		return otg.ID, nil
	}

	zero := 0
	if _, err := s.Update(otg.ID, Patch{Songs: &songs, CurrentSongIndex: &zero}); err != nil {
		return "", err
	}
	return otg.ID, nil
}

// IsFavorite reports whether song is in the favorites mix.
func (s *Store) IsFavorite(songID string) bool {
	fav, ok := s.Get(core.FavoritesID)
	return ok && fav.HasSong(songID)
}

// ToggleFavorite adds or removes song from the favorites mix, creating it
// when missing. It reports whether the song is now a favorite.
func (s *Store) ToggleFavorite(song core.Song) (bool, error) {
	fav, ok := s.Get(core.FavoritesID)
	if !ok {
		s.Add(core.Mix{
			ID:    core.FavoritesID,
			Title: core.FavoritesTitle,
			Color: core.ColorRed,
			Songs: []core.Song{song},
		})
		return true, nil
	}

	if i := fav.IndexOf(song.ID); i >= 0 {
		return false, s.RemoveSong(core.FavoritesID, i)
	}
	_, err := s.AppendSong(core.FavoritesID, song)
	return true, err
}

// RemoveSong deletes the song at index, keeping the cursor on the same song
// where possible.
func (s *Store) RemoveSong(mixID string, index int) error {
	mix, ok := s.Get(mixID)
	if !ok {
		return fmt.Errorf("%w: %s", tderr.ErrMixNotFound, mixID)
	}
	if index < 0 || index >= len(mix.Songs) {
		return fmt.Errorf("%w: index %d out of range", tderr.ErrSongNotFound, index)
	}

	songs := append(mix.Songs[:index:index], mix.Songs[index+1:]...)
	cur := mix.CurrentSongIndex
	if index < cur {
		cur--
	}
	cur = clampIndex(cur, len(songs))

	_, err := s.Update(mixID, Patch{Songs: &songs, CurrentSongIndex: &cur})
	return err
}

// MoveSong moves the song at from to position to. The cursor follows the
// song it pointed at.
func (s *Store) MoveSong(mixID string, from, to int) error {
	mix, ok := s.Get(mixID)
	if !ok {
		return fmt.Errorf("%w: %s", tderr.ErrMixNotFound, mixID)
	}
	n := len(mix.Songs)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d->%d out of range", tderr.ErrSongNotFound, from, to)
	}
	if from == to {
		return nil
	}

	songs := mix.Songs
	moved := songs[from]
	songs = append(songs[:from:from], songs[from+1:]...)
	songs = append(songs[:to:to], append([]core.Song{moved}, songs[to:]...)...)

	cur := mix.CurrentSongIndex
	switch {
	case cur == from:
		cur = to
	case from < cur && to >= cur:
		cur--
	case from > cur && to <= cur:
		cur++
	}
	cur = clampIndex(cur, n)

	_, err := s.Update(mixID, Patch{Songs: &songs, CurrentSongIndex: &cur})
	return err
}

// AllSongs flattens every mix, keeping the first occurrence of each song id.
func (s *Store) AllSongs() []core.Song {
	return AllSongs(s.List())
}

// AllSongs flattens mixes, keeping the first occurrence of each song id.
func AllSongs(mixes []core.Mix) []core.Song {
	all := lo.FlatMap(mixes, func(m core.Mix, _ int) []core.Song { return m.Songs })
	return lo.UniqBy(all, func(s core.Song) string { return s.ID })
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
