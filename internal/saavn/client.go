// Package saavn is a thin client for the JioSaavn web API.
package saavn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tessro/tapedeck/internal/logger"
)

const (
	// BaseURL is the JioSaavn API endpoint.
	BaseURL = "https://www.jiosaavn.com/api.php"

	// UserAgent is sent with every request; the API rejects unknown clients.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultSearchLimit is the page size requested from search.getResults.
	DefaultSearchLimit = 60
)

// Client is a JioSaavn API client. Requests are never retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client for baseURL. An empty baseURL uses BaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		userAgent:  UserAgent,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchParams returns the query for search.getResults.
func SearchParams(query string, limit int) map[string]string {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return map[string]string{
		"__call":      "search.getResults",
		"_format":     "json",
		"_marker":     "0",
		"ctx":         "web6dot0",
		"api_version": "4",
		"q":           query,
		"n":           fmt.Sprint(limit),
		"p":           "1",
	}
}

// DetailsParams returns the query for song.getDetails.
func DetailsParams(id string) map[string]string {
	return map[string]string{
		"__call":  "song.getDetails",
		"_format": "json",
		"pids":    id,
		"ctx":     "wap6dot0",
	}
}

// LyricsParams returns the query for lyrics.getLyrics.
func LyricsParams(id string) map[string]string {
	return map[string]string{
		"__call":    "lyrics.getLyrics",
		"_format":   "json",
		"ctx":       "wap6dot0",
		"lyrics_id": id,
	}
}

// Search runs a catalog search.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.Get(ctx, SearchParams(query, limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SongDetails fetches the details of one song. The response is keyed by id.
func (c *Client) SongDetails(ctx context.Context, id string) (map[string]RawSong, error) {
	var resp map[string]json.RawMessage
	if err := c.Get(ctx, DetailsParams(id), &resp); err != nil {
		return nil, err
	}

	// Error payloads and auxiliary keys share the top-level object with songs.
	songs := make(map[string]RawSong, len(resp))
	for key, raw := range resp {
		var s RawSong
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		songs[key] = s
	}
	return songs, nil
}

// Lyrics fetches the lyrics of a song.
func (c *Client) Lyrics(ctx context.Context, id string) (*LyricsResponse, error) {
	var resp LyricsResponse
	if err := c.Get(ctx, LyricsParams(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get performs a GET with params and decodes the JSON body into result.
func (c *Client) Get(ctx context.Context, params map[string]string, result interface{}) error {
	body, err := c.Raw(ctx, params)
	if err != nil {
		return err
	}
	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// Raw performs a GET with params and returns the undecoded body.
func (c *Client) Raw(ctx context.Context, params map[string]string) ([]byte, error) {
	fullURL := BuildURL(c.baseURL, params)
	c.log.Debug("saavn request", "call", params["__call"], "url", fullURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("saavn response", "call", params["__call"], "status", resp.StatusCode, "bytes", len(body))
	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// APIError is a non-2xx response from the provider.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("JioSaavn API error %d: %s", e.Status, body)
}

// BuildURL builds a URL with query parameters.
func BuildURL(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}

	u, _ := url.Parse(path)
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
