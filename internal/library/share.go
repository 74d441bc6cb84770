package library

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/samber/lo"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
)

// ShareParam is the query parameter carrying a shared mix.
const ShareParam = "mix"

// SharePayload is the portable form of a mix: its songs travel as ids only.
type SharePayload struct {
	Title   string     `json:"title"`
	Color   core.Color `json:"color"`
	SongIDs []string   `json:"songIds"`
}

// SongFetcher resolves song ids, dropping the ones that fail.
type SongFetcher interface {
	GetSongsByID(ctx context.Context, ids []string) tderr.PartialResult[[]core.Song]
}

// ShareResult describes the outcome of importing a shared mix.
type ShareResult struct {
	Mix             core.Mix
	AlreadyImported bool
	Dropped         int
}

// PayloadOf builds the share payload of mix.
func PayloadOf(mix core.Mix) SharePayload {
	return SharePayload{Title: mix.Title, Color: mix.Color, SongIDs: mix.SongIDs()}
}

// EncodeShare returns the base64 share token of mix.
func EncodeShare(mix core.Mix) string {
	data, _ := json.Marshal(PayloadOf(mix))
	return base64.StdEncoding.EncodeToString(data)
}

// ShareURL returns base with the share token of mix attached.
func ShareURL(base string, mix core.Mix) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return "?" + ShareParam + "=" + url.QueryEscape(EncodeShare(mix))
	}
	q := u.Query()
	q.Set(ShareParam, EncodeShare(mix))
	u.RawQuery = q.Encode()
	return u.String()
}

// DecodeShare parses a share token or a full share URL.
func DecodeShare(s string) (SharePayload, error) {
	token := strings.TrimSpace(s)
	if strings.Contains(token, "?") || strings.HasPrefix(token, ShareParam+"=") {
		token = extractToken(token)
	}
	if token == "" {
		return SharePayload{}, tderr.ErrInvalidShareLink
	}

	data, err := decodeBase64(token)
	if err != nil {
		return SharePayload{}, fmt.Errorf("%w: %v", tderr.ErrInvalidShareLink, err)
	}

	var p SharePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return SharePayload{}, fmt.Errorf("%w: %v", tderr.ErrInvalidShareLink, err)
	}
	if p.SongIDs == nil {
		return SharePayload{}, fmt.Errorf("%w: missing songIds", tderr.ErrInvalidShareLink)
	}
	return p, nil
}

func extractToken(s string) string {
	_, query, ok := strings.Cut(s, "?")
	if !ok {
		query = s
	}
	for _, pair := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key != ShareParam {
			continue
		}
		// Unescaped links carry raw '+' which must not become a space.
		if v, err := url.PathUnescape(value); err == nil {
			return v
		}
		return value
	}
	return ""
}

func decodeBase64(token string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(token); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("not base64")
}

// Fingerprint identifies a share payload independent of its encoding.
func Fingerprint(p SharePayload) string {
	h, err := hashstructure.Hash(struct {
		Title   string
		SongIDs []string
	}{p.Title, p.SongIDs}, hashstructure.FormatV2, nil)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", h)
}

// ImportedTitle is the title given to an imported shared mix.
func ImportedTitle(title string) string {
	return title + " (Imported)"
}

// FindShared returns an existing import of p. A mix matches when it records
// the same fingerprint, or carries the imported title with the same number
// of songs.
func (s *Store) FindShared(p SharePayload) (core.Mix, bool) {
	fp := Fingerprint(p)
	title := ImportedTitle(p.Title)
	return lo.Find(s.List(), func(m core.Mix) bool {
		if fp != "" && m.Origin == fp {
			return true
		}
		return m.Title == title && len(m.Songs) == len(p.SongIDs)
	})
}

// ImportShared re-fetches the payload's songs and adds them as a new mix.
// Songs that fail to resolve are dropped rather than failing the import.
func (s *Store) ImportShared(ctx context.Context, p SharePayload, fetcher SongFetcher) (ShareResult, error) {
	if existing, ok := s.FindShared(p); ok {
		return ShareResult{Mix: existing, AlreadyImported: true}, nil
	}

	fetched := fetcher.GetSongsByID(ctx, p.SongIDs)
	if err := ctx.Err(); err != nil {
		return ShareResult{}, err
	}

	color := p.Color
	if !color.Valid() {
		color = core.ColorOrange
	}
	songs := fetched.Data
	if songs == nil {
		songs = []core.Song{}
	}

	mix := core.Mix{
		ID:     NewID(),
		Title:  ImportedTitle(p.Title),
		Color:  color,
		Songs:  songs,
		Origin: Fingerprint(p),
	}
	s.Add(mix)

	return ShareResult{Mix: mix, Dropped: len(p.SongIDs) - len(songs)}, nil
}
