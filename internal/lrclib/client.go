// Package lrclib queries LRCLib for plain-text lyrics.
package lrclib

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tessro/tapedeck/internal/logger"
)

// SearchURL is the LRCLib search endpoint.
const SearchURL = "https://lrclib.net/api/search"

// Result is one LRCLib search hit.
type Result struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// Client is an LRCLib client.
type Client struct {
	httpClient *http.Client
	searchURL  string
	log        *logger.Logger
}

// New creates a client. An empty searchURL uses SearchURL.
func New(searchURL string, log *logger.Logger) *Client {
	if searchURL == "" {
		searchURL = SearchURL
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		searchURL:  searchURL,
		log:        log,
	}
}

// Search returns every hit for (track, artist).
func (c *Client) Search(ctx context.Context, track, artist string) ([]Result, error) {
	u, err := url.Parse(c.searchURL)
	if err != nil {
		return nil, fmt.Errorf("invalid search url: %w", err)
	}
	q := u.Query()
	q.Set("track_name", track)
	q.Set("artist_name", artist)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.log.Debug("lrclib request", "track", track, "artist", artist)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("LRCLib error: status %d", resp.StatusCode)
	}

	var results []Result
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return results, nil
}

// PlainLyrics returns the first hit's plain lyrics, or "" when there is none.
func (c *Client) PlainLyrics(ctx context.Context, track, artist string) (string, error) {
	results, err := c.Search(ctx, track, artist)
	if err != nil {
		return "", err
	}
	if len(results) == 0 || strings.TrimSpace(results[0].PlainLyrics) == "" {
		return "", nil
	}
	return results[0].PlainLyrics, nil
}
