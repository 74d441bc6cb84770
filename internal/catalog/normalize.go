package catalog

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/saavn"
)

// UnknownSongName labels song details that carry no title.
const UnknownSongName = "Unknown Details Title"

// imageSet derives the three artwork renditions from one provider link.
func imageSet(link string) []core.Image {
	return []core.Image{
		{Quality: "500x500", Link: strings.NewReplacer("150x150", "500x500", "50x50", "500x500").Replace(link)},
		{Quality: "150x150", Link: strings.ReplaceAll(link, "50x50", "150x150")},
		{Quality: "50x50", Link: strings.ReplaceAll(link, "150x150", "50x50")},
	}
}

func text(f saavn.Flex) string {
	return html.UnescapeString(strings.TrimSpace(f.String()))
}

// FromSearchItem maps a raw search hit to a Song, tolerating schema variants.
func FromSearchItem(item saavn.SearchItem) core.Song {
	info := item.MoreInfo
	if info == nil {
		info = &saavn.MoreInfo{}
	}

	artists := ""
	if info.ArtistMap != nil {
		names := lo.FilterMap(info.ArtistMap.PrimaryArtists, func(a saavn.Artist, _ int) (string, bool) {
			name := text(a.Name)
			return name, name != ""
		})
		artists = strings.Join(names, ", ")
	}
	if artists == "" {
		artists = text(item.Subtitle)
	}

	return core.Song{
		ID:   item.ID.String(),
		Name: text(item.Title.Or(item.Name).Or(item.Song)),
		Type: item.Type.String(),
		Album: core.Album{
			ID:   info.AlbumID.String(),
			Name: text(info.Album),
			URL:  info.AlbumURL.String(),
		},
		Year:              item.Year.Or(info.Year).String(),
		ReleaseDate:       info.ReleaseDate.String(),
		Duration:          info.Duration.Or(item.Duration).Int(),
		Label:             text(info.Label),
		PrimaryArtists:    artists,
		PlayCount:         item.PlayCount.Int(),
		Language:          item.Language.String(),
		HasLyrics:         info.HasLyrics.String(),
		URL:               item.PermaURL.String(),
		Copyright:         text(info.CopyrightText),
		Image:             imageSet(item.Image.String()),
		EncryptedMediaURL: info.EncryptedMediaURL.Or(item.EncryptedMediaURL).String(),
	}
}

// FromRawSong maps a song.getDetails entry to a Song.
func FromRawSong(raw saavn.RawSong) core.Song {
	name := text(raw.Song.Or(raw.Title).Or(raw.Name))
	if name == "" {
		name = UnknownSongName
	}
	return core.Song{
		ID:   raw.ID.String(),
		Name: name,
		Type: raw.Type.String(),
		Album: core.Album{
			ID:   raw.AlbumID.String(),
			Name: text(raw.Album),
			URL:  raw.AlbumURL.String(),
		},
		Year:              raw.Year.String(),
		ReleaseDate:       raw.ReleaseDate.String(),
		Duration:          raw.Duration.Int(),
		Label:             text(raw.Label),
		PrimaryArtists:    text(raw.PrimaryArtists),
		PlayCount:         raw.PlayCount.Int(),
		Language:          raw.Language.String(),
		HasLyrics:         raw.HasLyrics.String(),
		URL:               raw.PermaURL.String(),
		Copyright:         text(raw.CopyrightText),
		Image:             imageSet(raw.Image.String()),
		EncryptedMediaURL: raw.EncryptedMediaURL.String(),
	}
}

// SortByYear orders songs newest first. Missing years sort as 0 and ties
// keep their original order.
func SortByYear(songs []core.Song) {
	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].YearInt() > songs[j].YearInt()
	})
}

var lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

// CleanLyrics converts the provider's <br> markup to newlines.
func CleanLyrics(s string) string {
	return html.UnescapeString(lineBreak.ReplaceAllString(s, "\n"))
}
