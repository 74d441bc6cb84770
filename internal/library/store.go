// Package library owns the user's mixes and persists them write-through.
package library

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/samber/lo"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/logger"
	"github.com/tessro/tapedeck/internal/store"
)

// Patch holds the fields of a partial mix update. Nil fields are left alone.
type Patch struct {
	Title            *string
	Color            *core.Color
	Songs            *[]core.Song
	CurrentSongIndex *int
}

// DefaultMixes is the library used when nothing valid is persisted.
func DefaultMixes() []core.Mix {
	return []core.Mix{
		{ID: "1", Title: "Pawan Kalyan Hits", Color: core.ColorOrange, Songs: []core.Song{}},
		{ID: "2", Title: "DSP Specials", Color: core.ColorPurple, Songs: []core.Song{}},
	}
}

// Store is the ordered mix collection. It never rejects a write; caps and
// validation are enforced by the helpers that create mixes.
type Store struct {
	mu       sync.RWMutex
	kv       store.KV
	log      *logger.Logger
	mixes    []core.Mix
	onDelete []func(id string)
	onChange []func(mix core.Mix)
}

// New creates a store over kv and loads the persisted library.
func New(kv store.KV, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	s := &Store{kv: kv, log: log.WithComponent("library")}
	s.Load()
	return s
}

// Load reads the persisted library. A missing or corrupt blob falls back to
// DefaultMixes, which is written back.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(store.KeyMixes)
	if err != nil {
		s.log.Error("failed to read mixes", "error", err)
	}
	if err == nil && ok {
		var mixes []core.Mix
		if jerr := json.Unmarshal([]byte(raw), &mixes); jerr == nil && mixes != nil {
			s.mixes = mixes
			return
		} else if jerr != nil {
			s.log.Warn("persisted mixes are corrupt, restoring defaults", "error", jerr)
		}
	}

	s.mixes = DefaultMixes()
	s.persistLocked()
}

// OnDelete registers fn to run after a mix is deleted.
func (s *Store) OnDelete(fn func(id string)) {
	s.mu.Lock()
	s.onDelete = append(s.onDelete, fn)
	s.mu.Unlock()
}

// OnChange registers fn to run after a mix is added or updated.
func (s *Store) OnChange(fn func(mix core.Mix)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// List returns copies of every mix in insertion order.
func (s *Store) List() []core.Mix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Mix, len(s.mixes))
	for i, m := range s.mixes {
		out[i] = m.Clone()
	}
	return out
}

// Len returns the number of mixes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mixes)
}

// Get returns a copy of the mix with the given id.
func (s *Store) Get(id string) (core.Mix, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.mixes[i].Clone(), true
	}
	return core.Mix{}, false
}

// Add appends mix, or replaces the mix with the same id in place.
func (s *Store) Add(mix core.Mix) {
	mix = mix.Clone()
	if mix.Songs == nil {
		mix.Songs = []core.Song{}
	}

	s.mu.Lock()
	if i := s.indexLocked(mix.ID); i >= 0 {
		s.mixes[i] = mix
	} else {
		s.mixes = append(s.mixes, mix)
	}
	s.persistLocked()
	observers := s.onChange
	s.mu.Unlock()

	for _, fn := range observers {
		fn(mix.Clone())
	}
}

// Update applies p to the mix with the given id.
func (s *Store) Update(id string, p Patch) (core.Mix, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return core.Mix{}, fmt.Errorf("%w: %s", tderr.ErrMixNotFound, id)
	}

	m := &s.mixes[i]
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
	if p.Songs != nil {
		m.Songs = append([]core.Song{}, (*p.Songs)...)
	}
	if p.CurrentSongIndex != nil {
		m.CurrentSongIndex = *p.CurrentSongIndex
	}
	updated := m.Clone()
	s.persistLocked()
	observers := s.onChange
	s.mu.Unlock()

	for _, fn := range observers {
		fn(updated.Clone())
	}
	return updated, nil
}

// Delete removes the mix with the given id and notifies delete observers.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", tderr.ErrMixNotFound, id)
	}
	s.mixes = append(s.mixes[:i:i], s.mixes[i+1:]...)
	s.persistLocked()
	observers := s.onDelete
	s.mu.Unlock()

	for _, fn := range observers {
		fn(id)
	}
	return nil
}

// Replace swaps in a whole new library.
func (s *Store) Replace(mixes []core.Mix) {
	next := make([]core.Mix, len(mixes))
	for i, m := range mixes {
		next[i] = m.Clone()
		if next[i].Songs == nil {
			next[i].Songs = []core.Song{}
		}
	}

	s.mu.Lock()
	nextIDs := lo.Map(next, func(m core.Mix, _ int) string { return m.ID })
	removed := lo.FilterMap(s.mixes, func(m core.Mix, _ int) (string, bool) {
		return m.ID, !lo.Contains(nextIDs, m.ID)
	})
	s.mixes = next
	s.persistLocked()
	onDelete, onChange := s.onDelete, s.onChange
	s.mu.Unlock()

	for _, id := range removed {
		for _, fn := range onDelete {
			fn(id)
		}
	}
	for _, m := range next {
		for _, fn := range onChange {
			fn(m.Clone())
		}
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.mixes {
		if s.mixes[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the library. Failures are logged; memory stays
// authoritative.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.mixes)
	if err != nil {
		s.log.Error("failed to encode mixes", "error", err)
		return
	}
	if err := s.kv.Set(store.KeyMixes, string(data)); err != nil {
		s.log.Error("failed to persist mixes", "error", err)
	}
}
