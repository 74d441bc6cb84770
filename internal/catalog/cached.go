package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tessro/tapedeck/internal/core"
)

type Cache interface {
	GetCache(key string) ([]byte, error)
	SetCache(key string, data []byte, ttl time.Duration) error
	ClearCache() error
}

// CachedProvider memoizes song details and lyrics. Searches always go to
// the backing provider.
type CachedProvider struct {
	provider Provider
	cache    Cache
	cacheTTL time.Duration
}

func NewCachedProvider(provider Provider, cache Cache, cacheTTL time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (c *CachedProvider) Search(ctx context.Context, query string) ([]core.Song, error) {
	return c.provider.Search(ctx, query)
}

func (c *CachedProvider) SongDetails(ctx context.Context, id string) (*core.Song, error) {
	cacheKey := fmt.Sprintf("song:%s", id)

	data, err := c.cache.GetCache(cacheKey)
	if err != nil {
		return nil, err
	}
	if data != nil {
		var song core.Song
		if err := json.Unmarshal(data, &song); err == nil {
			return &song, nil
		}
	}

	song, err := c.provider.SongDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(song); err == nil {
		_ = c.cache.SetCache(cacheKey, data, c.cacheTTL)
	}

	return song, nil
}

func (c *CachedProvider) Lyrics(ctx context.Context, song core.Song) (string, error) {
	cacheKey := fmt.Sprintf("lyrics:%s", song.ID)

	data, err := c.cache.GetCache(cacheKey)
	if err != nil {
		return "", err
	}
	if data != nil {
		return string(data), nil
	}

	lyrics, err := c.provider.Lyrics(ctx, song)
	if err != nil {
		return "", err
	}

	// Misses are not cached so a later fallback hit can still land.
	if lyrics != "" {
		_ = c.cache.SetCache(cacheKey, []byte(lyrics), c.cacheTTL)
	}

	return lyrics, nil
}
