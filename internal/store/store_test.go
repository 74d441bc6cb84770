package store

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/logger"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "tapedeck.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDBKeyValue(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set("k", "v1"))
	require.NoError(t, db.Set("k", "v2"))

	v, ok, err := db.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, db.Delete("k"))
	_, ok, err = db.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDBCache(t *testing.T) {
	db := openTestDB(t)

	data, err := db.GetCache("song:1")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, db.SetCache("song:1", []byte(`{"id":"1"}`), time.Hour))
	data, err = db.GetCache("song:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(data))

	require.NoError(t, db.SetCache("song:2", []byte("x"), -time.Second))
	data, err = db.GetCache("song:2")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data), "non-positive ttl never expires")

	require.NoError(t, db.ClearCache())
	data, err = db.GetCache("song:1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryCacheExpiry(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.SetCache("a", []byte("1"), time.Nanosecond))
	time.Sleep(time.Millisecond)
	data, err := m.GetCache("a")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryFailWrites(t *testing.T) {
	m := NewMemory()
	m.FailWrites(true)
	assert.ErrorIs(t, m.Set("a", "b"), ErrWriteFailed)
	m.FailWrites(false)
	assert.NoError(t, m.Set("a", "b"))
	assert.Equal(t, 1, m.Writes())
}

func TestSettingsRepo(t *testing.T) {
	t.Run("defaults when empty", func(t *testing.T) {
		r := NewSettingsRepo(NewMemory(), nil)
		assert.Equal(t, core.DefaultSettings(), r.Load())
	})

	t.Run("corrupt data reads as defaults", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Set(KeySettings, "{not json"))
		var buf bytes.Buffer
		log := logger.NewWithWriter(logger.Config{Level: "warn"}, &buf)

		assert.Equal(t, core.DefaultSettings(), NewSettingsRepo(m, log).Load())
		assert.Contains(t, buf.String(), "stored settings are corrupt")
	})

	t.Run("partial blob merges over defaults", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Set(KeySettings, `{"theme":"dark"}`))
		s := NewSettingsRepo(m, nil).Load()
		assert.Equal(t, core.ThemeDark, s.Theme)
		assert.Equal(t, 0.7, s.Volume)
		assert.True(t, s.ClickSounds)
	})

	t.Run("update persists and clamps", func(t *testing.T) {
		m := NewMemory()
		r := NewSettingsRepo(m, nil)
		s, err := r.Update(func(s *core.Settings) { s.Volume = 3 })
		require.NoError(t, err)
		assert.Equal(t, 1.0, s.Volume)
		assert.Equal(t, 1.0, r.Load().Volume)
	})

	t.Run("concurrent updates are not lost", func(t *testing.T) {
		r := NewSettingsRepo(NewMemory(), nil)
		_, err := r.Update(func(s *core.Settings) { s.Volume = 0 })
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = r.Update(func(s *core.Settings) { s.Volume += 0.01 })
			}()
		}
		wg.Wait()
		assert.InDelta(t, 0.5, r.Load().Volume, 0.0001)
	})

	t.Run("reset", func(t *testing.T) {
		r := NewSettingsRepo(NewMemory(), nil)
		_, err := r.Update(func(s *core.Settings) { s.Theme = core.ThemeSilver })
		require.NoError(t, err)
		s, err := r.Reset()
		require.NoError(t, err)
		assert.Equal(t, core.DefaultSettings(), s)
		assert.Equal(t, core.ThemeClassic, r.Load().Theme)
	})
}

func TestHistoryRepo(t *testing.T) {
	r := NewHistoryRepo(NewMemory())
	for _, term := range []string{"a", "b", "c", "a", "d", "e", "f", "  "} {
		_, err := r.Add(term)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"f", "e", "d", "a", "c"}, r.List())

	require.NoError(t, r.Clear())
	assert.Empty(t, r.List())
}
