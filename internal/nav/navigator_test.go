package nav

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/library"
	"github.com/tessro/tapedeck/internal/store"
)

type fakePlayer struct {
	lib    *library.Store
	state  core.PlaybackState
	volume float64
	plays  []string
}

func (p *fakePlayer) State() core.PlaybackState {
	s := p.state
	s.Volume = p.volume
	return s
}

func (p *fakePlayer) PlayAt(mixID string, index int) error {
	mix, ok := p.lib.Get(mixID)
	if !ok {
		return tderr.ErrMixNotFound
	}
	if index < 0 || index >= len(mix.Songs) {
		return errors.New("index out of range")
	}
	song := mix.Songs[index]
	p.state.ActiveMixID = mixID
	p.state.Index = index
	p.state.Song = &song
	p.state.IsPlaying = true
	p.plays = append(p.plays, mixID+"/"+song.ID)
	return nil
}

func (p *fakePlayer) NudgeVolume(delta float64) { p.volume = core.ClampUnit(p.volume + delta) }
func (p *fakePlayer) SetVolume(v float64)       { p.volume = core.ClampUnit(v) }

type fixture struct {
	nav     *Navigator
	lib     *library.Store
	player  *fakePlayer
	prefs   *store.SettingsRepo
	history *store.HistoryRepo
	copied  []string
}

func song(id, name, artists, albumID, album string) core.Song {
	return core.Song{ID: id, Name: name, PrimaryArtists: artists, Album: core.Album{ID: albumID, Name: album}}
}

func newFixture(t *testing.T, mixes ...core.Mix) *fixture {
	t.Helper()
	kv := store.NewMemory()
	lib := library.New(kv, nil)
	lib.Replace(mixes)

	f := &fixture{
		lib:     lib,
		player:  &fakePlayer{lib: lib, volume: 0.7},
		prefs:   store.NewSettingsRepo(kv, nil),
		history: store.NewHistoryRepo(kv),
	}
	hooks := Hooks{
		ShareBaseURL: "https://tapedeck.app/",
		About:        "tapedeck test",
		CopyToClipboard: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
	}
	f.nav = New(lib, f.player, f.prefs, f.history, hooks, nil)
	return f
}

func labels(items []Item) []string {
	return lo.Map(items, func(i Item, _ int) string { return i.Label })
}

// selectLabel moves the cursor to the item labelled label and selects it.
func selectLabel(t *testing.T, n *Navigator, label string) *Request {
	t.Helper()
	idx := slices.Index(labels(n.Items()), label)
	require.GreaterOrEqual(t, idx, 0, "no item %q in %v", label, labels(n.Items()))
	for n.Current().Selected != idx {
		n.Scroll(1)
	}
	return n.Select()
}

func stackIDs(n *Navigator) []string {
	return lo.Map(n.Stack(), func(f Frame, _ int) string { return f.ID })
}

var (
	s1 = song("s1", "Alpha", "Ann, Bob", "al1", "Zeta Album")
	s2 = song("s2", "Bravo", "Bob", "al2", "Beta Album")
	s3 = song("s3", "Charlie", "Cat", "al2", "Beta Album")
)

func sampleMixes() []core.Mix {
	return []core.Mix{
		{ID: "7", Title: "Road", Color: core.ColorRed, Songs: []core.Song{s1, s2, s3}},
		{ID: "8", Title: "Chill", Color: core.ColorGreen, Songs: []core.Song{s2}},
	}
}

func TestRootMenu(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t,
		[]string{"Music", "Cover Flow", "Cinema Mode", "Search", "Now Playing", "Settings"},
		labels(f.nav.Items()))
	assert.Equal(t, []string{IDMain}, stackIDs(f.nav))
}

func TestScrollIsCircular(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDPlaylists, Payload{}, "Playlists")

	n := len(f.nav.Items())
	require.Equal(t, 3, n)
	for start := 0; start < n; start++ {
		for f.nav.Current().Selected != start {
			f.nav.Scroll(1)
		}
		for i := 0; i < n; i++ {
			f.nav.Scroll(1)
		}
		assert.Equal(t, start, f.nav.Current().Selected)
	}

	for f.nav.Current().Selected != 0 {
		f.nav.Scroll(1)
	}
	f.nav.Scroll(-1)
	assert.Equal(t, n-1, f.nav.Current().Selected)
}

func TestScrollEmptyListIsNoop(t *testing.T) {
	f := newFixture(t)
	f.nav.NavigateTo(IDSearch, Payload{}, "")
	require.Empty(t, f.nav.Items())

	f.nav.Scroll(1)
	f.nav.Scroll(-1)
	assert.Equal(t, 0, f.nav.Current().Selected)
	assert.Nil(t, f.nav.Select())
}

func TestScrollInPlayerNudgesVolume(t *testing.T) {
	f := newFixture(t)
	selectLabel(t, f.nav, "Now Playing")
	require.Equal(t, ViewPlayer, f.nav.Current().Type)

	f.nav.Scroll(1)
	assert.InDelta(t, 0.75, f.player.volume, 1e-9)
	f.nav.Scroll(-1)
	f.nav.Scroll(-1)
	assert.InDelta(t, 0.65, f.player.volume, 1e-9)
}

func TestBackFloorsAtRoot(t *testing.T) {
	f := newFixture(t)
	f.nav.Back()
	f.nav.Back()
	assert.Equal(t, []string{IDMain}, stackIDs(f.nav))

	selectLabel(t, f.nav, "Music")
	selectLabel(t, f.nav, "Playlists")
	assert.Equal(t, []string{IDMain, IDMusic, IDPlaylists}, stackIDs(f.nav))
	f.nav.Back()
	f.nav.Back()
	f.nav.Back()
	assert.Equal(t, []string{IDMain}, stackIDs(f.nav))
}

func TestPlaylistsHideOnTheGo(t *testing.T) {
	mixes := append(sampleMixes(), core.Mix{ID: "otg", Title: " on-the-go ", Songs: []core.Song{s1}})
	f := newFixture(t, mixes...)
	f.nav.NavigateTo(IDPlaylists, Payload{}, "")

	assert.Equal(t, []string{"[Create New Playlist]", "Road", "Chill"}, labels(f.nav.Items()))
}

func TestDeletedMixThenBack(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDPlaylists, Payload{}, "Playlists")
	selectLabel(t, f.nav, "Road")
	require.Equal(t, []string{IDMain, IDPlaylists, "mix-7"}, stackIDs(f.nav))

	require.NoError(t, f.lib.Delete("7"))
	assert.Equal(t, []string{"(Playlist Deleted)"}, labels(f.nav.Items()))

	f.nav.Back()
	assert.Equal(t, []string{IDMain, IDPlaylists}, stackIDs(f.nav))
	assert.NotContains(t, labels(f.nav.Items()), "Road")
}

func TestDeletedPlaceholderPops(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDPlaylists, Payload{}, "")
	f.nav.NavigateTo("mix-7", Payload{MixID: "7"}, "Road")
	require.NoError(t, f.lib.Delete("7"))

	f.nav.Select()
	assert.Equal(t, []string{IDMain, IDPlaylists}, stackIDs(f.nav))
}

func TestMixItems(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo("mix-7", Payload{MixID: "7"}, "Road")

	assert.Equal(t,
		[]string{"Alpha", "Bravo", "Charlie", "[Share Playlist]", "[Rename Playlist]", "[Delete Playlist]"},
		labels(f.nav.Items()))
}

func TestPlayMixSongJumpsToNowPlaying(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo("mix-7", Payload{MixID: "7"}, "Road")
	selectLabel(t, f.nav, "Bravo")

	assert.Equal(t, []string{"7/s2"}, f.player.plays)
	assert.Equal(t, IDNowPlaying, f.nav.Current().ID)
	assert.Equal(t, ViewPlayer, f.nav.Current().Type)
}

func TestCursorClampsWhenListShrinks(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo("mix-7", Payload{MixID: "7"}, "Road")
	moveTo(f.nav, 5)
	require.Equal(t, 5, f.nav.Current().Selected)

	empty := []core.Song{}
	_, err := f.lib.Update("7", library.Patch{Songs: &empty})
	require.NoError(t, err)

	assert.Equal(t, 2, f.nav.Current().Selected)
	assert.NotPanics(t, func() { f.nav.Scroll(1) })
	assert.Equal(t, 0, f.nav.Current().Selected)
}

func moveTo(n *Navigator, idx int) {
	for n.Current().Selected != idx {
		n.Scroll(1)
	}
}

func TestAddToPlaylist(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDSongs, Payload{}, "Songs")
	selectLabel(t, f.nav, "Alpha")
	require.Equal(t, "song-s1", f.nav.Current().ID)
	assert.Equal(t, []string{"Play Now", "Add to Playlist...", "Cancel"}, labels(f.nav.Items()))

	selectLabel(t, f.nav, "Add to Playlist...")
	require.Equal(t, "add-to-s1", f.nav.Current().ID)
	selectLabel(t, f.nav, "Chill")

	chill, _ := f.lib.Get("8")
	assert.Equal(t, []string{"s2", "s1"}, chill.SongIDs())
	assert.Equal(t, []string{IDMain, IDSongs}, stackIDs(f.nav))
}

func TestAddToPlaylistDuplicateIsNoop(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDSongs, Payload{}, "Songs")
	selectLabel(t, f.nav, "Bravo")
	selectLabel(t, f.nav, "Add to Playlist...")
	selectLabel(t, f.nav, "Road")

	road, _ := f.lib.Get("7")
	assert.Len(t, road.Songs, 3)
	assert.Equal(t, []string{IDMain, IDSongs}, stackIDs(f.nav))
}

func TestSongOptionsCancel(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDSongs, Payload{}, "Songs")
	selectLabel(t, f.nav, "Alpha")
	selectLabel(t, f.nav, "Cancel")
	assert.Equal(t, []string{IDMain, IDSongs}, stackIDs(f.nav))
}

func TestPlayNowUsesOnTheGo(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDSongs, Payload{}, "Songs")
	selectLabel(t, f.nav, "Charlie")
	selectLabel(t, f.nav, "Play Now")

	otg, ok := f.lib.FindOnTheGo()
	require.True(t, ok)
	assert.Equal(t, []string{"s3"}, otg.SongIDs())
	assert.Equal(t, []string{otg.ID + "/s3"}, f.player.plays)
	assert.Equal(t, IDNowPlaying, f.nav.Current().ID)
}

func TestDerivedLibraryMenus(t *testing.T) {
	f := newFixture(t, sampleMixes()...)

	f.nav.NavigateTo(IDArtists, Payload{}, "Artists")
	assert.Equal(t, []string{"Ann", "Bob", "Cat"}, labels(f.nav.Items()))

	selectLabel(t, f.nav, "Bob")
	assert.Equal(t, []string{"All Songs", "Beta Album", "Zeta Album"}, labels(f.nav.Items()))
	selectLabel(t, f.nav, "All Songs")
	assert.Equal(t, []string{"Alpha", "Bravo"}, labels(f.nav.Items()))

	f.nav.Reset()
	f.nav.NavigateTo(IDAlbums, Payload{}, "Albums")
	assert.Equal(t, []string{"Beta Album", "Zeta Album"}, labels(f.nav.Items()))
	selectLabel(t, f.nav, "Beta Album")
	assert.Equal(t, []string{"Bravo", "Charlie"}, labels(f.nav.Items()))

	f.nav.Reset()
	f.nav.NavigateTo(IDSongs, Payload{}, "Songs")
	assert.Equal(t, []string{"Shuffle Songs", "Alpha", "Bravo", "Charlie"}, labels(f.nav.Items()))
}

func TestItemsIsPure(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	snap := f.nav.Snapshot()
	frame := Frame{ID: IDSongs, Type: ViewMenu}

	first := Items(frame, snap)
	first[0].Label = "mutated"
	assert.Equal(t, "Shuffle Songs", Items(frame, snap)[0].Label)

	root := Items(Frame{ID: IDMain}, snap)
	root[0].Label = "mutated"
	assert.Equal(t, "Music", rootMenu[0].Label)
}

func TestShuffleSongsFillsOnTheGo(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.shuffler = slices.Reverse[[]core.Song]
	f.nav.NavigateTo(IDSongs, Payload{}, "Songs")
	selectLabel(t, f.nav, "Shuffle Songs")

	otg, ok := f.lib.FindOnTheGo()
	require.True(t, ok)
	assert.Equal(t, []string{"s3", "s2", "s1"}, otg.SongIDs())
	assert.Equal(t, []string{otg.ID + "/s3"}, f.player.plays)
	assert.Equal(t, IDNowPlaying, f.nav.Current().ID)
}

func TestStaleSearchDiscarded(t *testing.T) {
	f := newFixture(t)
	selectLabel(t, f.nav, "Search")
	require.True(t, f.nav.TextEntry())

	for _, r := range "alpha" {
		f.nav.TypeRune(r)
	}
	reqA := f.nav.Select()
	require.NotNil(t, reqA)
	assert.Equal(t, "alpha", reqA.Query)
	assert.True(t, f.nav.Loading())

	f.nav.SetInput("bravo")
	reqB := f.nav.Submit()
	require.NotNil(t, reqB)

	assert.True(t, f.nav.Complete(Result{ID: reqB.ID, Songs: []core.Song{s2}}))
	assert.False(t, f.nav.Complete(Result{ID: reqA.ID, Songs: []core.Song{s1}}))

	assert.False(t, f.nav.Loading())
	assert.Equal(t, []string{"Bravo"}, labels(f.nav.Items()))
	assert.Equal(t, "bravo", f.nav.Current().Query)
}

func TestSearchResultsAndHistory(t *testing.T) {
	f := newFixture(t)
	f.nav.NavigateTo(IDSearch, Payload{}, "")
	f.nav.SetInput("  telugu  ")
	req := f.nav.Submit()
	require.NotNil(t, req)
	assert.Equal(t, RequestSearch, req.Kind)
	assert.Equal(t, []string{"telugu"}, f.history.List())

	f.nav.Complete(Result{ID: req.ID})
	assert.Equal(t, []string{"No results"}, labels(f.nav.Items()))

	f.nav.Back()
	f.nav.NavigateTo(IDSearch, Payload{}, "")
	assert.Equal(t, "", f.nav.Input())
	assert.Equal(t, []string{"telugu"}, labels(f.nav.Items()))

	again := f.nav.Select()
	require.NotNil(t, again)
	assert.Equal(t, "telugu", again.Query)
	f.nav.Complete(Result{ID: again.ID, Songs: []core.Song{s1, s3}})

	selectLabel(t, f.nav, "Charlie")
	assert.Equal(t, "song-s3", f.nav.Current().ID)
}

func TestSearchIgnoresBlankQuery(t *testing.T) {
	f := newFixture(t)
	f.nav.NavigateTo(IDSearch, Payload{}, "")
	f.nav.SetInput("   ")
	assert.Nil(t, f.nav.Submit())
	assert.False(t, f.nav.Loading())
}

func TestTypingOutsideTextEntry(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.nav.TypeRune('x'))
	assert.False(t, f.nav.Backspace())

	f.nav.NavigateTo(IDSearch, Payload{}, "")
	f.nav.TypeRune('h')
	f.nav.TypeRune('é')
	assert.True(t, f.nav.Backspace())
	assert.Equal(t, "h", f.nav.Input())
}

func TestCreatePlaylistThenRename(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDPlaylists, Payload{}, "Playlists")
	selectLabel(t, f.nav, "[Create New Playlist]")

	cur := f.nav.Current()
	require.Equal(t, IDRename, cur.ID)
	assert.Equal(t, "Mix 3", f.nav.Input())
	mixID := cur.Payload.MixID
	mix, ok := f.lib.Get(mixID)
	require.True(t, ok)
	assert.Equal(t, core.ColorPurple, mix.Color)

	f.nav.SetInput("Road Trip")
	f.nav.Select()

	mix, _ = f.lib.Get(mixID)
	assert.Equal(t, "Road Trip", mix.Title)
	top := f.nav.Current()
	assert.Equal(t, "mix-"+mixID, top.ID)
	assert.Equal(t, "Road Trip", top.Title)
}

func TestRenameBlankStays(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo("mix-7", Payload{MixID: "7"}, "Road")
	selectLabel(t, f.nav, "[Rename Playlist]")
	assert.Equal(t, "Road", f.nav.Input())

	f.nav.SetInput("  ")
	f.nav.Submit()
	assert.Equal(t, IDRename, f.nav.Current().ID)
	mix, _ := f.lib.Get("7")
	assert.Equal(t, "Road", mix.Title)
}

func TestCreatePlaylistAtCap(t *testing.T) {
	mixes := make([]core.Mix, core.MaxMixes)
	for i := range mixes {
		mixes[i] = core.Mix{ID: string(rune('a' + i)), Title: "M", Color: core.ColorRed}
	}
	f := newFixture(t, mixes...)
	f.nav.NavigateTo(IDPlaylists, Payload{}, "")
	selectLabel(t, f.nav, "[Create New Playlist]")

	cur := f.nav.Current()
	assert.Equal(t, ViewMessage, cur.Type)
	assert.Contains(t, cur.Message, "library full")
	assert.Equal(t, core.MaxMixes, len(f.lib.List()))

	f.nav.Select()
	assert.Equal(t, IDPlaylists, f.nav.Current().ID)
}

func TestDeletePlaylistPops(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDPlaylists, Payload{}, "")
	selectLabel(t, f.nav, "Chill")
	selectLabel(t, f.nav, "[Delete Playlist]")

	_, ok := f.lib.Get("8")
	assert.False(t, ok)
	assert.Equal(t, []string{IDMain, IDPlaylists}, stackIDs(f.nav))
}

func TestShareCopiesLink(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo("mix-7", Payload{MixID: "7"}, "Road")
	selectLabel(t, f.nav, "[Share Playlist]")

	require.Len(t, f.copied, 1)
	assert.True(t, strings.HasPrefix(f.copied[0], "https://tapedeck.app/?mix="))
	cur := f.nav.Current()
	assert.Equal(t, ViewMessage, cur.Type)
	assert.Contains(t, cur.Message, "Link copied")

	payload, err := library.DecodeShare(f.copied[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, payload.SongIDs)
}

func TestSettingsLabelsAreLive(t *testing.T) {
	f := newFixture(t)
	f.nav.NavigateTo(IDSettings, Payload{}, "Settings")
	assert.Equal(t, []string{
		"Volume: 70%", "Click Sounds: On", "Theme: Classic",
		"Clear Search History", "Reset Settings", "About",
	}, labels(f.nav.Items()))

	selectLabel(t, f.nav, "Click Sounds: On")
	selectLabel(t, f.nav, "Theme: Classic")
	assert.Contains(t, labels(f.nav.Items()), "Click Sounds: Off")
	assert.Contains(t, labels(f.nav.Items()), "Theme: Black")

	selectLabel(t, f.nav, "Volume: 70%")
	require.Equal(t, ViewVolume, f.nav.Current().Type)
	f.nav.Scroll(1)
	f.nav.Select()
	assert.Contains(t, labels(f.nav.Items()), "Volume: 75%")

	f.player.volume = 0.2
	selectLabel(t, f.nav, "Reset Settings")
	assert.Equal(t, core.DefaultSettings(), f.prefs.Load())
	assert.InDelta(t, 0.7, f.player.volume, 1e-9)
}

func TestClearHistory(t *testing.T) {
	f := newFixture(t)
	_, err := f.history.Add("x")
	require.NoError(t, err)

	f.nav.NavigateTo(IDSettings, Payload{}, "")
	selectLabel(t, f.nav, "Clear Search History")
	assert.Empty(t, f.history.List())
}

func TestAbout(t *testing.T) {
	f := newFixture(t)
	f.nav.NavigateTo(IDSettings, Payload{}, "")
	selectLabel(t, f.nav, "About")
	assert.Equal(t, []string{"tapedeck test"}, labels(f.nav.Items()))
}

func TestCoverFlowFlip(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	selectLabel(t, f.nav, "Cover Flow")
	require.Equal(t, ViewCoverFlow, f.nav.Current().Type)
	assert.Equal(t, []string{"Beta Album", "Zeta Album"}, labels(f.nav.Items()))

	f.nav.Select()
	require.True(t, f.nav.Current().Flipped)

	f.nav.Scroll(1)
	assert.Equal(t, 0, f.nav.Current().Selected)
	assert.Equal(t, 1, f.nav.Current().Track)
	f.nav.Scroll(1)
	assert.Equal(t, 0, f.nav.Current().Track)

	f.nav.Back()
	assert.False(t, f.nav.Current().Flipped)
	assert.Equal(t, IDCoverFlow, f.nav.Current().ID)

	f.nav.Select()
	f.nav.Scroll(-1)
	f.nav.Select()
	require.Len(t, f.player.plays, 1)
	assert.True(t, strings.HasSuffix(f.player.plays[0], "/s3"))
	assert.Equal(t, IDNowPlaying, f.nav.Current().ID)
}

func TestLyricsRequest(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	selectLabel(t, f.nav, "Now Playing")
	assert.Nil(t, f.nav.Select(), "no song, no lyrics")

	require.NoError(t, f.player.PlayAt("7", 0))
	req := f.nav.Select()
	require.NotNil(t, req)
	assert.Equal(t, RequestLyrics, req.Kind)
	assert.Equal(t, "s1", req.Song.ID)
	assert.Equal(t, IDLyrics, f.nav.Current().ID)
	assert.True(t, f.nav.Loading())

	f.nav.Complete(Result{ID: req.ID, Lyrics: "line one\n\nline two"})
	assert.Equal(t, []string{"line one", "line two"}, labels(f.nav.Items()))

	f.nav.Back()
	req = f.nav.Select()
	f.nav.Complete(Result{ID: req.ID})
	assert.Equal(t, "No lyrics found", f.nav.Current().Message)
}

func TestToggleFavorite(t *testing.T) {
	f := newFixture(t, sampleMixes()...)
	f.nav.NavigateTo(IDMusic, Payload{}, "Music")
	selectLabel(t, f.nav, "Favorites")
	assert.Equal(t, []string{"No favorites yet"}, labels(f.nav.Items()))

	require.NoError(t, f.player.PlayAt("7", 1))
	f.nav.ToggleFavorite()
	assert.Contains(t, labels(f.nav.Items()), "Bravo")
	f.nav.ToggleFavorite()
	assert.NotContains(t, labels(f.nav.Items()), "Bravo")
}

func TestResetDiscardsInFlight(t *testing.T) {
	f := newFixture(t)
	f.nav.NavigateTo(IDSearch, Payload{}, "")
	f.nav.SetInput("x")
	req := f.nav.Submit()
	f.nav.Reset()
	assert.False(t, f.nav.Complete(Result{ID: req.ID, Songs: []core.Song{s1}}))
	assert.Equal(t, []string{IDMain}, stackIDs(f.nav))
}
