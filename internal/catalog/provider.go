package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/logger"
	"github.com/tessro/tapedeck/internal/lrclib"
	"github.com/tessro/tapedeck/internal/saavn"
)

// Provider is the error-returning catalog backend.
type Provider interface {
	Search(ctx context.Context, query string) ([]core.Song, error)
	SongDetails(ctx context.Context, id string) (*core.Song, error)
	Lyrics(ctx context.Context, song core.Song) (string, error)
}

// SaavnProvider serves songs from JioSaavn and lyrics from JioSaavn with an
// LRCLib fallback.
type SaavnProvider struct {
	api   *saavn.Client
	lrc   *lrclib.Client
	limit int
	log   *logger.Logger
}

// NewSaavnProvider creates a provider. lrc may be nil to disable the fallback.
func NewSaavnProvider(api *saavn.Client, lrc *lrclib.Client, limit int, log *logger.Logger) *SaavnProvider {
	if log == nil {
		log = logger.Discard()
	}
	return &SaavnProvider{api: api, lrc: lrc, limit: limit, log: log}
}

func (p *SaavnProvider) Search(ctx context.Context, query string) ([]core.Song, error) {
	resp, err := p.api.Search(ctx, query, p.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", tderr.ErrNetworkError, query, err)
	}

	songs := make([]core.Song, 0, len(resp.Results))
	for _, item := range resp.Results {
		song := FromSearchItem(item)
		if song.ID == "" {
			continue
		}
		if !song.Playable() {
			p.log.Warn("search result has no media token", "song_id", song.ID, "song_name", song.Name)
		}
		songs = append(songs, song)
	}
	SortByYear(songs)
	return songs, nil
}

func (p *SaavnProvider) SongDetails(ctx context.Context, id string) (*core.Song, error) {
	resp, err := p.api.SongDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: song %s: %v", tderr.ErrNetworkError, id, err)
	}
	raw, ok := resp[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", tderr.ErrSongNotFound, id)
	}
	song := FromRawSong(raw)
	if song.ID == "" {
		song.ID = id
	}
	return &song, nil
}

func (p *SaavnProvider) Lyrics(ctx context.Context, song core.Song) (string, error) {
	var primaryErr error
	resp, err := p.api.Lyrics(ctx, song.ID)
	if err != nil {
		primaryErr = err
		p.log.Debug("saavn lyrics failed", "song_id", song.ID, "error", err)
	} else if lyrics := CleanLyrics(resp.Lyrics.String()); strings.TrimSpace(lyrics) != "" {
		return lyrics, nil
	}

	if p.lrc == nil || song.Name == "" || song.PrimaryArtists == "" {
		return "", primaryErr
	}

	lyrics, err := p.lrc.PlainLyrics(ctx, song.Name, song.PrimaryArtists)
	if err != nil {
		return "", fmt.Errorf("%w: lyrics fallback: %v", tderr.ErrNetworkError, err)
	}
	return lyrics, nil
}
