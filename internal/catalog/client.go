// Package catalog normalizes provider responses into songs and resolves
// playable stream URLs.
package catalog

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/logger"
)

// DefaultWorkers bounds parallel detail lookups.
const DefaultWorkers = 4

// Client is the failure-tolerant catalog facade. Provider errors are logged
// and surface as empty results.
type Client struct {
	provider Provider
	log      *logger.Logger
	workers  int
}

// New wraps provider.
func New(provider Provider, log *logger.Logger, workers int) *Client {
	if log == nil {
		log = logger.Discard()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Client{provider: provider, log: log.WithComponent("catalog"), workers: workers}
}

// Search returns matching songs sorted newest first, or nil on any failure.
func (c *Client) Search(ctx context.Context, query string) []core.Song {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	songs, err := c.provider.Search(ctx, query)
	if err != nil {
		c.log.Error("search failed", "query", query, "error", err)
		return nil
	}
	return songs
}

// GetSongDetails looks up one song, returning nil on any failure.
func (c *Client) GetSongDetails(ctx context.Context, id string) *core.Song {
	if id == "" {
		return nil
	}
	song, err := c.provider.SongDetails(ctx, id)
	if err != nil {
		c.log.Warn("song lookup failed", "song_id", id, "error", err)
		return nil
	}
	return song
}

// GetSongsByID resolves ids in parallel. Data keeps input order and omits
// ids that failed; each failure is recorded in Errors.
func (c *Client) GetSongsByID(ctx context.Context, ids []string) tderr.PartialResult[[]core.Song] {
	found := make([]*core.Song, len(ids))
	errs := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, id := range ids {
		g.Go(func() error {
			song, err := c.provider.SongDetails(gctx, id)
			if err != nil {
				errs[i] = err
				return nil
			}
			found[i] = song
			return nil
		})
	}
	_ = g.Wait()

	var result tderr.PartialResult[[]core.Song]
	for i := range ids {
		if found[i] != nil {
			result.Data = append(result.Data, *found[i])
			continue
		}
		c.log.Warn("dropping unresolvable song", "song_id", ids[i], "error", errs[i])
		result.AddError(errs[i])
	}
	return result
}

// Lyrics returns the lyrics for song, or "" when none are found.
func (c *Client) Lyrics(ctx context.Context, song core.Song) string {
	lyrics, err := c.provider.Lyrics(ctx, song)
	if err != nil {
		c.log.Warn("lyrics lookup failed", "song_id", song.ID, "error", err)
		return ""
	}
	return lyrics
}

// ResolveStreamURL decrypts the song's media token. It returns "" when the
// song is unplayable; callers must not retry.
func (c *Client) ResolveStreamURL(song core.Song) string {
	if song.EncryptedMediaURL == "" {
		c.log.Warn("song has no media token", "song_id", song.ID, "song_name", song.Name)
		return ""
	}
	u := ResolveStreamURL(song)
	if u == "" {
		c.log.Warn("failed to decrypt media token", "song_id", song.ID, "song_name", song.Name)
	}
	return u
}

// Resolve adapts ResolveStreamURL to the playback resolver signature.
func (c *Client) Resolve(_ context.Context, song core.Song) string {
	return c.ResolveStreamURL(song)
}
