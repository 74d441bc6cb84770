// Package nav is the click-wheel view-stack engine. It turns scroll, select
// and back signals into view transitions over menus computed from library
// and playback state.
package nav

import "github.com/tessro/tapedeck/internal/core"

// ViewType selects how a frame is rendered and how input is interpreted.
type ViewType string

const (
	ViewMenu      ViewType = "menu"
	ViewPlayer    ViewType = "player"
	ViewSearch    ViewType = "search"
	ViewMessage   ViewType = "message"
	ViewCinema    ViewType = "cinema"
	ViewCoverFlow ViewType = "cover-flow"
	ViewVolume    ViewType = "volume"
)

// Kind tags what selecting an item does.
type Kind int

const (
	// KindNavigate pushes Target, or resolves Intent when set.
	KindNavigate Kind = iota
	// KindAction runs Action through the dispatcher.
	KindAction
	// KindNote is display only.
	KindNote
)

// Intent names pseudo-navigation targets that are not plain menus.
type Intent int

const (
	IntentNone Intent = iota
	IntentNowPlaying
	IntentCinema
	IntentCoverFlow
	IntentSearch
	IntentVolume
	IntentRename
)

// Action is a behavior run by the central dispatcher.
type Action string

const (
	ActionCreatePlaylist    Action = "create-playlist"
	ActionPlayMixSong       Action = "play-mix-song"
	ActionShareMix          Action = "share-mix"
	ActionRenameMix         Action = "rename-mix"
	ActionDeleteMix         Action = "delete-mix"
	ActionPlayNow           Action = "play-now"
	ActionAddToMix          Action = "add-to-mix"
	ActionCancel            Action = "cancel"
	ActionShuffleSongs      Action = "shuffle-songs"
	ActionToggleClickSounds Action = "toggle-click-sounds"
	ActionCycleTheme        Action = "cycle-theme"
	ActionResetSettings     Action = "reset-settings"
	ActionClearHistory      Action = "clear-history"
	ActionRecentSearch      Action = "recent-search"
	ActionToggleFavorite    Action = "toggle-favorite"
	ActionAbout             Action = "about"
	ActionPop               Action = "pop"
)

// Payload is the context an item or frame carries.
type Payload struct {
	MixID string
	Index int
	Song  *core.Song
	Songs []core.Song
	Name  string
	Query string
}

// Item is one menu row.
type Item struct {
	Label   string
	Detail  string
	Kind    Kind
	Target  string
	Intent  Intent
	Action  Action
	Payload Payload
}

// Frame is one entry of the view stack.
type Frame struct {
	ID       string
	Title    string
	Type     ViewType
	Selected int
	Payload  Payload

	// Search state: the committed query and its results.
	Query    string
	Results  []core.Song
	Searched bool

	// Message body for message views.
	Message string

	// Cover-flow sub-state.
	Flipped bool
	Track   int

	seq uint64
}

// Snapshot is the immutable state menus are computed from.
type Snapshot struct {
	Mixes    []core.Mix
	Settings core.Settings
	Playback core.PlaybackState
	Recent   []string
}

// RequestKind identifies an async job the shell must run.
type RequestKind int

const (
	RequestSearch RequestKind = iota
	RequestLyrics
)

// Request is an async job handed to the shell. Its result must be passed
// back to Complete with the same ID.
type Request struct {
	ID    uint64
	Kind  RequestKind
	Query string
	Song  core.Song
}

// Result completes a Request.
type Result struct {
	ID     uint64
	Songs  []core.Song
	Lyrics string
}

// Hooks are the side effects the engine delegates to its host.
type Hooks struct {
	CopyToClipboard func(text string) error
	ShareBaseURL    string
	About           string
}

// Reserved view ids.
const (
	IDMain       = "main"
	IDMusic      = "music"
	IDPlaylists  = "playlists"
	IDArtists    = "artists"
	IDAlbums     = "albums"
	IDSongs      = "songs"
	IDSettings   = "settings"
	IDSearch     = "search"
	IDRename     = "rename"
	IDNowPlaying = "now-playing"
	IDCinema     = "cinema"
	IDCoverFlow  = "cover-flow"
	IDVolume     = "volume"
	IDLyrics     = "lyrics"
	IDMessage    = "message"

	prefixMix            = "mix-"
	prefixArtistAllSongs = "artist-allsongs-"
	prefixArtist         = "artist-"
	prefixAlbum          = "album-"
	prefixSong           = "song-"
	prefixAddTo          = "add-to-"
)
