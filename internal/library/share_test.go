package library

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
)

type fakeFetcher struct {
	songs map[string]core.Song
	calls int
}

func (f *fakeFetcher) GetSongsByID(_ context.Context, ids []string) tderr.PartialResult[[]core.Song] {
	f.calls++
	var r tderr.PartialResult[[]core.Song]
	for _, id := range ids {
		if s, ok := f.songs[id]; ok {
			r.Data = append(r.Data, s)
		} else {
			r.AddError(fmt.Errorf("%w: %s", tderr.ErrSongNotFound, id))
		}
	}
	return r
}

func TestShareRoundTrip(t *testing.T) {
	mix := core.Mix{ID: "7", Title: "Road Trip ✨", Color: core.ColorGreen, Songs: []core.Song{song("a"), song("b")}}

	link := ShareURL("https://tapedeck.app/", mix)
	assert.True(t, strings.HasPrefix(link, "https://tapedeck.app/?mix="))

	for _, in := range []string{link, EncodeShare(mix), "mix=" + EncodeShare(mix)} {
		p, err := DecodeShare(in)
		require.NoError(t, err, in)
		assert.Equal(t, SharePayload{Title: "Road Trip ✨", Color: core.ColorGreen, SongIDs: []string{"a", "b"}}, p)
	}
}

func TestDecodeShareRawPlus(t *testing.T) {
	// btoa output pasted without escaping keeps '+' and '/'.
	mix := core.Mix{Title: "??>>??", Songs: []core.Song{song(">>>")}}
	token := EncodeShare(mix)
	p, err := DecodeShare("https://tapedeck.app?mix=" + token)
	require.NoError(t, err)
	assert.Equal(t, "??>>??", p.Title)
}

func TestDecodeShareInvalid(t *testing.T) {
	for _, in := range []string{"", "not base64!!", "bnVsbA==", "https://tapedeck.app/?other=1"} {
		_, err := DecodeShare(in)
		assert.ErrorIs(t, err, tderr.ErrInvalidShareLink, in)
	}
}

func TestImportSharedPartial(t *testing.T) {
	s, _ := newStore(t)
	f := &fakeFetcher{songs: map[string]core.Song{"a": song("a"), "b": song("b"), "c": song("c")}}
	p := SharePayload{Title: "Friends", Color: "", SongIDs: []string{"a", "bogus", "c"}}

	res, err := s.ImportShared(context.Background(), p, f)
	require.NoError(t, err)
	assert.False(t, res.AlreadyImported)
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, "Friends (Imported)", res.Mix.Title)
	assert.Equal(t, core.ColorOrange, res.Mix.Color)
	assert.Equal(t, []string{"a", "c"}, res.Mix.SongIDs())

	stored, ok := s.Get(res.Mix.ID)
	require.True(t, ok)
	assert.Len(t, stored.Songs, 2)

	again, err := s.ImportShared(context.Background(), p, f)
	require.NoError(t, err)
	assert.True(t, again.AlreadyImported)
	assert.Equal(t, res.Mix.ID, again.Mix.ID)
	assert.Equal(t, 1, f.calls)
}

func TestImportSharedDetectsTitleAndCount(t *testing.T) {
	s, _ := newStore(t)
	s.Add(core.Mix{ID: "old", Title: "Friends (Imported)", Songs: []core.Song{song("x"), song("y")}})

	res, err := s.ImportShared(context.Background(), SharePayload{Title: "Friends", SongIDs: []string{"a", "b"}}, &fakeFetcher{})
	require.NoError(t, err)
	assert.True(t, res.AlreadyImported)
	assert.Equal(t, "old", res.Mix.ID)
}

func TestFingerprintStable(t *testing.T) {
	p := SharePayload{Title: "A", Color: core.ColorRed, SongIDs: []string{"1", "2"}}
	q := p
	q.Color = core.ColorGreen
	assert.Equal(t, Fingerprint(p), Fingerprint(q), "color is cosmetic")
	q.SongIDs = []string{"2", "1"}
	assert.NotEqual(t, Fingerprint(p), Fingerprint(q))
}
