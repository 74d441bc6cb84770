package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/lrclib"
	"github.com/tessro/tapedeck/internal/saavn"
	"github.com/tessro/tapedeck/internal/store"
)

type fakeProvider struct {
	mu          sync.Mutex
	songs       map[string]core.Song
	searchErr   error
	lyrics      string
	detailCalls int
	lyricCalls  int
}

func (f *fakeProvider) Search(_ context.Context, query string) ([]core.Song, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return []core.Song{{ID: "1", Name: query}}, nil
}

func (f *fakeProvider) SongDetails(_ context.Context, id string) (*core.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	s, ok := f.songs[id]
	if !ok {
		return nil, tderr.ErrSongNotFound
	}
	return &s, nil
}

func (f *fakeProvider) Lyrics(_ context.Context, _ core.Song) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lyricCalls++
	return f.lyrics, nil
}

func TestClientSearchNeverErrors(t *testing.T) {
	c := New(&fakeProvider{searchErr: errors.New("boom")}, nil, 0)
	assert.Empty(t, c.Search(context.Background(), "kushi"))
	assert.Empty(t, c.Search(context.Background(), "   "))
}

func TestGetSongsByIDDropsFailures(t *testing.T) {
	p := &fakeProvider{songs: map[string]core.Song{
		"a": {ID: "a", Name: "A"},
		"b": {ID: "b", Name: "B"},
		"d": {ID: "d", Name: "D"},
	}}
	c := New(p, nil, 2)

	result := c.GetSongsByID(context.Background(), []string{"a", "b", "bad", "d"})
	require.Len(t, result.Data, 3)
	assert.Equal(t, "a", result.Data[0].ID)
	assert.Equal(t, "b", result.Data[1].ID)
	assert.Equal(t, "d", result.Data[2].ID)
	assert.True(t, result.HasErrors())
	assert.ErrorIs(t, result.Errors[0], tderr.ErrSongNotFound)
}

func TestGetSongDetailsNilOnFailure(t *testing.T) {
	c := New(&fakeProvider{}, nil, 0)
	assert.Nil(t, c.GetSongDetails(context.Background(), "missing"))
	assert.Nil(t, c.GetSongDetails(context.Background(), ""))
}

func TestClientResolve(t *testing.T) {
	c := New(&fakeProvider{}, nil, 0)
	assert.Equal(t, "https://aac.saavncdn.com/815/abc123_320.mp4", c.Resolve(context.Background(), core.Song{EncryptedMediaURL: token96}))
	assert.Empty(t, c.ResolveStreamURL(core.Song{ID: "x"}))
}

func TestCachedProvider(t *testing.T) {
	p := &fakeProvider{songs: map[string]core.Song{"a": {ID: "a", Name: "A"}}, lyrics: "la la"}
	cp := NewCachedProvider(p, store.NewMemory(), time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		song, err := cp.SongDetails(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "A", song.Name)

		lyrics, err := cp.Lyrics(ctx, core.Song{ID: "a"})
		require.NoError(t, err)
		assert.Equal(t, "la la", lyrics)
	}
	assert.Equal(t, 1, p.detailCalls)
	assert.Equal(t, 1, p.lyricCalls)

	_, err := cp.SongDetails(ctx, "missing")
	assert.ErrorIs(t, err, tderr.ErrSongNotFound)
}

func TestSaavnProviderLyricsFallback(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("__call") {
		case "lyrics.getLyrics":
			_, _ = w.Write([]byte(`{"status":"failure"}`))
		case "song.getDetails":
			_, _ = w.Write([]byte(`{"abc":{"id":"abc","song":"Kushi","primary_artists":"Hesham"}}`))
		case "search.getResults":
			_, _ = w.Write([]byte(`{"results":[{"id":"old","title":"Old","year":"1999"},{"id":"new","title":"New","year":"2024"},{"title":"no id"}]}`))
		}
	}))
	defer api.Close()

	lrc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"plainLyrics":"from lrclib"}]`))
	}))
	defer lrc.Close()

	p := NewSaavnProvider(saavn.New(api.URL), lrclib.New(lrc.URL, nil), 0, nil)
	c := New(p, nil, 0)
	ctx := context.Background()

	song := c.GetSongDetails(ctx, "abc")
	require.NotNil(t, song)
	assert.Equal(t, "Kushi", song.Name)
	assert.Nil(t, c.GetSongDetails(ctx, "zzz"))

	assert.Equal(t, "from lrclib", c.Lyrics(ctx, *song))

	results := c.Search(ctx, "anything")
	require.Len(t, results, 2)
	assert.Equal(t, "new", results[0].ID)
	assert.Equal(t, "old", results[1].ID)
}

func TestSaavnProviderPrimaryLyrics(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"lyrics":"first<br>second"}`))
	}))
	defer api.Close()

	p := NewSaavnProvider(saavn.New(api.URL), nil, 0, nil)
	lyrics, err := p.Lyrics(context.Background(), core.Song{ID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", lyrics)
}
