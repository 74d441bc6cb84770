package nav

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/library"
)

var rootMenu = []Item{
	{Label: "Music", Kind: KindNavigate, Target: IDMusic},
	{Label: "Cover Flow", Kind: KindNavigate, Intent: IntentCoverFlow},
	{Label: "Cinema Mode", Kind: KindNavigate, Intent: IntentCinema},
	{Label: "Search", Kind: KindNavigate, Intent: IntentSearch},
	{Label: "Now Playing", Kind: KindNavigate, Intent: IntentNowPlaying},
	{Label: "Settings", Kind: KindNavigate, Target: IDSettings},
}

var musicMenu = []Item{
	{Label: "Playlists", Kind: KindNavigate, Target: IDPlaylists},
	{Label: "Artists", Kind: KindNavigate, Target: IDArtists},
	{Label: "Albums", Kind: KindNavigate, Target: IDAlbums},
	{Label: "Songs", Kind: KindNavigate, Target: IDSongs},
	{Label: "Favorites", Kind: KindNavigate, Target: prefixMix + core.FavoritesID, Payload: Payload{MixID: core.FavoritesID}},
}

// Items computes the menu for f from s. It has no side effects and returns
// a fresh slice on every call.
func Items(f Frame, s Snapshot) []Item {
	switch f.ID {
	case IDMain:
		return slices.Clone(rootMenu)
	case IDMusic:
		return slices.Clone(musicMenu)
	case IDPlaylists:
		return playlistItems(s)
	case IDArtists:
		return artistItems(s)
	case IDAlbums:
		return albumItems(library.AllSongs(s.Mixes))
	case IDSongs:
		return songsItems(s)
	case IDSettings:
		return settingsItems(s)
	case IDSearch:
		return searchItems(f, s)
	case IDRename:
		return []Item{{Label: "Press Enter to Save", Kind: KindNote}}
	case IDCoverFlow:
		return albumItems(library.AllSongs(s.Mixes))
	case IDNowPlaying, IDCinema, IDVolume:
		return nil
	}

	if f.Type == ViewMessage {
		return messageItems(f)
	}

	if id, ok := strings.CutPrefix(f.ID, prefixMix); ok {
		return mixItems(id, s)
	}
	if _, ok := strings.CutPrefix(f.ID, prefixArtistAllSongs); ok {
		return songItems(artistSongs(library.AllSongs(s.Mixes), f.Payload.Name))
	}
	if _, ok := strings.CutPrefix(f.ID, prefixArtist); ok {
		return artistDetailItems(f.Payload.Name, s)
	}
	if id, ok := strings.CutPrefix(f.ID, prefixAlbum); ok {
		return songItems(albumSongs(library.AllSongs(s.Mixes), id))
	}
	if _, ok := strings.CutPrefix(f.ID, prefixSong); ok {
		return songOptionItems(f.Payload.Song)
	}
	if _, ok := strings.CutPrefix(f.ID, prefixAddTo); ok {
		return addToItems(f.Payload.Song, s)
	}
	return nil
}

func playlistItems(s Snapshot) []Item {
	items := []Item{{Label: "[Create New Playlist]", Kind: KindAction, Action: ActionCreatePlaylist}}
	for _, m := range s.Mixes {
		if m.IsOnTheGo() {
			continue
		}
		items = append(items, Item{
			Label:   m.Title,
			Detail:  songCount(len(m.Songs)),
			Kind:    KindNavigate,
			Target:  prefixMix + m.ID,
			Payload: Payload{MixID: m.ID},
		})
	}
	return items
}

func mixItems(id string, s Snapshot) []Item {
	mix, ok := lo.Find(s.Mixes, func(m core.Mix) bool { return m.ID == id })
	if !ok {
		if id == core.FavoritesID {
			return []Item{{Label: "No favorites yet", Kind: KindNote}}
		}
		return []Item{{Label: "(Playlist Deleted)", Kind: KindAction, Action: ActionPop}}
	}

	items := make([]Item, 0, len(mix.Songs)+3)
	for i, song := range mix.Songs {
		items = append(items, Item{
			Label:   song.Name,
			Detail:  song.PrimaryArtists,
			Kind:    KindAction,
			Action:  ActionPlayMixSong,
			Payload: Payload{MixID: mix.ID, Index: i},
		})
	}
	p := Payload{MixID: mix.ID}
	return append(items,
		Item{Label: "[Share Playlist]", Kind: KindAction, Action: ActionShareMix, Payload: p},
		Item{Label: "[Rename Playlist]", Kind: KindAction, Action: ActionRenameMix, Payload: p},
		Item{Label: "[Delete Playlist]", Kind: KindAction, Action: ActionDeleteMix, Payload: p},
	)
}

// artistNames splits every artist credit, dedupes and sorts them.
func artistNames(songs []core.Song) []string {
	names := lo.Uniq(lo.FlatMap(songs, func(s core.Song, _ int) []string { return s.Artists() }))
	slices.SortFunc(names, compareFold)
	return names
}

func artistItems(s Snapshot) []Item {
	names := artistNames(library.AllSongs(s.Mixes))
	if len(names) == 0 {
		return []Item{{Label: "No artists", Kind: KindNote}}
	}
	return lo.Map(names, func(name string, _ int) Item {
		return Item{
			Label:   name,
			Kind:    KindNavigate,
			Target:  prefixArtist + name,
			Payload: Payload{Name: name},
		}
	})
}

func artistSongs(songs []core.Song, name string) []core.Song {
	return lo.Filter(songs, func(s core.Song, _ int) bool {
		return slices.Contains(s.Artists(), name)
	})
}

func artistDetailItems(name string, s Snapshot) []Item {
	songs := artistSongs(library.AllSongs(s.Mixes), name)
	items := []Item{{
		Label:   "All Songs",
		Detail:  songCount(len(songs)),
		Kind:    KindNavigate,
		Target:  prefixArtistAllSongs + name,
		Payload: Payload{Name: name},
	}}
	return append(items, albumItems(songs)...)
}

func albumKey(s core.Song) string {
	if s.Album.ID != "" {
		return s.Album.ID
	}
	return s.Album.Name
}

func albumSongs(songs []core.Song, key string) []core.Song {
	return lo.Filter(songs, func(s core.Song, _ int) bool { return albumKey(s) == key })
}

// albumItems dedupes songs by album and sorts albums by name. Each item
// carries the album's songs for the cover-flow track list.
func albumItems(songs []core.Song) []Item {
	songs = lo.Filter(songs, func(s core.Song, _ int) bool { return albumKey(s) != "" })
	groups := lo.GroupBy(songs, albumKey)
	albums := lo.UniqBy(songs, albumKey)
	slices.SortStableFunc(albums, func(a, b core.Song) int { return compareFold(a.Album.Name, b.Album.Name) })

	return lo.Map(albums, func(first core.Song, _ int) Item {
		key := albumKey(first)
		return Item{
			Label:   first.Album.Name,
			Detail:  first.PrimaryArtists,
			Kind:    KindNavigate,
			Target:  prefixAlbum + key,
			Payload: Payload{Name: first.Album.Name, Songs: groups[key]},
		}
	})
}

func sortedByName(songs []core.Song) []core.Song {
	songs = slices.Clone(songs)
	slices.SortStableFunc(songs, func(a, b core.Song) int { return compareFold(a.Name, b.Name) })
	return songs
}

func songItems(songs []core.Song) []Item {
	return lo.Map(sortedByName(songs), func(s core.Song, _ int) Item { return songItem(s) })
}

func songItem(s core.Song) Item {
	song := s
	return Item{
		Label:   s.Name,
		Detail:  s.PrimaryArtists,
		Kind:    KindNavigate,
		Target:  prefixSong + s.ID,
		Payload: Payload{Song: &song},
	}
}

func songsItems(s Snapshot) []Item {
	items := []Item{{Label: "Shuffle Songs", Kind: KindAction, Action: ActionShuffleSongs}}
	return append(items, songItems(library.AllSongs(s.Mixes))...)
}

func songOptionItems(song *core.Song) []Item {
	if song == nil {
		return []Item{{Label: "(Song Unavailable)", Kind: KindAction, Action: ActionPop}}
	}
	p := Payload{Song: song}
	return []Item{
		{Label: "Play Now", Kind: KindAction, Action: ActionPlayNow, Payload: p},
		{Label: "Add to Playlist...", Kind: KindNavigate, Target: prefixAddTo + song.ID, Payload: p},
		{Label: "Cancel", Kind: KindAction, Action: ActionCancel},
	}
}

func addToItems(song *core.Song, s Snapshot) []Item {
	if song == nil {
		return []Item{{Label: "(Song Unavailable)", Kind: KindAction, Action: ActionPop}}
	}
	if len(s.Mixes) == 0 {
		return []Item{{Label: "No playlists", Kind: KindNote}}
	}
	return lo.Map(s.Mixes, func(m core.Mix, _ int) Item {
		detail := songCount(len(m.Songs))
		if m.HasSong(song.ID) {
			detail = "added"
		}
		return Item{
			Label:   m.Title,
			Detail:  detail,
			Kind:    KindAction,
			Action:  ActionAddToMix,
			Payload: Payload{MixID: m.ID, Song: song},
		}
	})
}

func settingsItems(s Snapshot) []Item {
	clicks := "Off"
	if s.Settings.ClickSounds {
		clicks = "On"
	}
	return []Item{
		{Label: fmt.Sprintf("Volume: %d%%", percent(s.Playback.Volume)), Kind: KindNavigate, Intent: IntentVolume},
		{Label: "Click Sounds: " + clicks, Kind: KindAction, Action: ActionToggleClickSounds},
		{Label: "Theme: " + ThemeLabel(s.Settings.Theme), Kind: KindAction, Action: ActionCycleTheme},
		{Label: "Clear Search History", Detail: fmt.Sprintf("%d saved", len(s.Recent)), Kind: KindAction, Action: ActionClearHistory},
		{Label: "Reset Settings", Kind: KindAction, Action: ActionResetSettings},
		{Label: "About", Kind: KindAction, Action: ActionAbout},
	}
}

func searchItems(f Frame, s Snapshot) []Item {
	if len(f.Results) > 0 {
		return lo.Map(f.Results, func(song core.Song, _ int) Item { return songItem(song) })
	}
	if f.Searched {
		return []Item{{Label: "No results", Kind: KindNote}}
	}
	return lo.Map(s.Recent, func(q string, _ int) Item {
		return Item{
			Label:   q,
			Detail:  "recent",
			Kind:    KindAction,
			Action:  ActionRecentSearch,
			Payload: Payload{Query: q},
		}
	})
}

// messageItems shows the body one line per row so the wheel can scroll it.
func messageItems(f Frame) []Item {
	lines := lo.Filter(strings.Split(f.Message, "\n"), func(l string, _ int) bool {
		return strings.TrimSpace(l) != ""
	})
	return lo.Map(lines, func(l string, _ int) Item { return Item{Label: l, Kind: KindNote} })
}

// ThemeLabel is the display name of a theme.
func ThemeLabel(t core.Theme) string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

func percent(v float64) int {
	return int(core.ClampUnit(v)*100 + 0.5)
}

func songCount(n int) string {
	if n == 1 {
		return "1 song"
	}
	return fmt.Sprintf("%d songs", n)
}

func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
