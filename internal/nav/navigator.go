package nav

import (
	"strings"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/logger"
)

// VolumeStep is the volume change per wheel tick in player contexts.
const VolumeStep = 0.05

// Library is the playlist store as seen by the navigator.
type Library interface {
	List() []core.Mix
	Get(id string) (core.Mix, bool)
	NextMixTitle() string
	CreateMix(title string, color core.Color) (core.Mix, error)
	Rename(id, title string) (core.Mix, error)
	Delete(id string) error
	AppendSong(mixID string, song core.Song) (bool, error)
	PlayNowTarget(song core.Song) (string, int, error)
	FillOnTheGo(songs []core.Song) (string, error)
	ToggleFavorite(song core.Song) (bool, error)
}

// Player is the playback engine as seen by the navigator.
type Player interface {
	State() core.PlaybackState
	PlayAt(mixID string, index int) error
	NudgeVolume(delta float64)
	SetVolume(v float64)
}

// Preferences reads and writes persisted settings.
type Preferences interface {
	Load() core.Settings
	Update(fn func(*core.Settings)) (core.Settings, error)
	Reset() (core.Settings, error)
}

// History is the recent-search list.
type History interface {
	List() []string
	Add(term string) ([]string, error)
	Clear() error
}

// Navigator owns the view stack. It is not safe for concurrent use; shells
// drive it from their event loop.
type Navigator struct {
	lib      Library
	player   Player
	prefs    Preferences
	history  History
	hooks    Hooks
	log      *logger.Logger
	shuffler func([]core.Song)

	stack   []Frame
	seq     uint64
	input   string
	latest  uint64
	loading bool

	pendingKind  RequestKind
	pendingFrame uint64
}

// New returns a navigator positioned at the root menu.
func New(lib Library, player Player, prefs Preferences, history History, hooks Hooks, log *logger.Logger) *Navigator {
	if log == nil {
		log = logger.Discard()
	}
	n := &Navigator{
		lib:      lib,
		player:   player,
		prefs:    prefs,
		history:  history,
		hooks:    hooks,
		log:      log.WithComponent("nav"),
		shuffler: shuffleSongs,
	}
	n.Reset()
	return n
}

// Reset drops every frame above the root menu.
func (n *Navigator) Reset() {
	n.stack = []Frame{n.frame(IDMain, "tapedeck", ViewMenu, Payload{})}
	n.input = ""
	n.loading = false
	n.latest++
}

// Snapshot gathers the live state menus are computed from.
func (n *Navigator) Snapshot() Snapshot {
	return Snapshot{
		Mixes:    n.lib.List(),
		Settings: n.prefs.Load(),
		Playback: n.player.State(),
		Recent:   n.history.List(),
	}
}

// Stack returns a copy of the view stack, bottom first.
func (n *Navigator) Stack() []Frame {
	out := make([]Frame, len(n.stack))
	copy(out, n.stack)
	return out
}

// Depth is the number of frames on the stack.
func (n *Navigator) Depth() int { return len(n.stack) }

// Current returns the top frame with its cursor clamped to the live items.
func (n *Navigator) Current() Frame {
	items := Items(*n.top(), n.Snapshot())
	n.clamp(len(items))
	return *n.top()
}

// Items returns the live menu of the top frame.
func (n *Navigator) Items() []Item {
	items := Items(*n.top(), n.Snapshot())
	n.clamp(len(items))
	return items
}

// Loading reports whether the latest async request is outstanding.
func (n *Navigator) Loading() bool { return n.loading }

// Input returns the text-entry buffer.
func (n *Navigator) Input() string { return n.input }

// SetInput replaces the text-entry buffer.
func (n *Navigator) SetInput(s string) { n.input = s }

// TypeRune appends r to the input when the top view accepts text.
func (n *Navigator) TypeRune(r rune) bool {
	if !n.TextEntry() {
		return false
	}
	n.input += string(r)
	return true
}

// Backspace deletes the last rune of the input.
func (n *Navigator) Backspace() bool {
	if !n.TextEntry() || n.input == "" {
		return false
	}
	r := []rune(n.input)
	n.input = string(r[:len(r)-1])
	return true
}

// TextEntry reports whether the top view takes typed input.
func (n *Navigator) TextEntry() bool {
	return n.top().Type == ViewSearch
}

// Scroll moves the cursor by dir with wraparound. In player and volume views
// it nudges the volume instead; in a flipped cover flow it moves the track
// cursor.
func (n *Navigator) Scroll(dir int) {
	if dir == 0 {
		return
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}

	f := n.top()
	switch f.Type {
	case ViewPlayer, ViewVolume:
		n.player.NudgeVolume(float64(dir) * VolumeStep)
		return
	}

	items := Items(*f, n.Snapshot())
	n.clamp(len(items))
	if len(items) == 0 {
		return
	}

	if f.Type == ViewCoverFlow && f.Flipped {
		tracks := items[f.Selected].Payload.Songs
		if len(tracks) == 0 {
			return
		}
		f.Track = wrap(f.Track+dir, len(tracks))
		return
	}

	f.Selected = wrap(f.Selected+dir, len(items))
}

// Select activates the item under the cursor. A non-nil Request must be run
// by the caller and handed back to Complete.
func (n *Navigator) Select() *Request {
	f := n.top()

	switch f.Type {
	case ViewPlayer:
		return n.openLyrics()
	case ViewVolume, ViewMessage:
		n.Back()
		return nil
	case ViewCinema:
		return nil
	case ViewCoverFlow:
		return n.selectCoverFlow()
	case ViewSearch:
		if f.ID == IDRename || n.pendingQuery() {
			return n.Submit()
		}
	}

	items := Items(*f, n.Snapshot())
	n.clamp(len(items))
	if len(items) == 0 {
		return nil
	}
	return n.activate(items[f.Selected])
}

// Submit commits the text-entry buffer: a search request in the search view,
// a title change in the rename view.
func (n *Navigator) Submit() *Request {
	f := n.top()
	switch f.ID {
	case IDRename:
		n.commitRename()
		return nil
	case IDSearch:
		return n.search(n.input)
	}
	return nil
}

// Back pops the top frame. A flipped cover flow unflips first and the root
// is never popped.
func (n *Navigator) Back() {
	f := n.top()
	if f.Type == ViewCoverFlow && f.Flipped {
		f.Flipped = false
		f.Track = 0
		return
	}
	n.pop()
}

// NavigateTo pushes target. The search target starts with an empty result
// list and an empty input.
func (n *Navigator) NavigateTo(target string, p Payload, title string) {
	if target == IDSearch {
		n.input = ""
		n.push(n.frame(IDSearch, "Search", ViewSearch, p))
		return
	}
	if title == "" {
		title = defaultTitle(target)
	}
	n.push(n.frame(target, title, ViewMenu, p))
}

// Complete applies the result of an async request. Results for anything but
// the latest request are discarded.
func (n *Navigator) Complete(res Result) bool {
	if res.ID != n.latest {
		return false
	}
	n.loading = false

	var f *Frame
	for i := range n.stack {
		if n.stack[i].seq == n.pendingFrame {
			f = &n.stack[i]
		}
	}
	if f == nil {
		return false
	}

	switch n.pendingKind {
	case RequestSearch:
		f.Results = res.Songs
		f.Searched = true
		f.Selected = 0
	case RequestLyrics:
		f.Message = strings.TrimSpace(res.Lyrics)
		if f.Message == "" {
			f.Message = "No lyrics found"
		}
		f.Selected = 0
	}
	return true
}

// ToggleFavorite likes or unlikes the playing song.
func (n *Navigator) ToggleFavorite() {
	n.dispatch(ActionToggleFavorite, Payload{})
}

func (n *Navigator) activate(item Item) *Request {
	switch item.Kind {
	case KindNote:
		return nil
	case KindAction:
		return n.dispatch(item.Action, item.Payload)
	}

	if item.Intent != IntentNone {
		n.resolveIntent(item.Intent, item.Payload)
		return nil
	}
	if item.Target != "" {
		n.NavigateTo(item.Target, item.Payload, item.Label)
	}
	return nil
}

func (n *Navigator) resolveIntent(in Intent, p Payload) {
	switch in {
	case IntentNowPlaying:
		n.showNowPlaying()
	case IntentCinema:
		n.push(n.frame(IDCinema, "Cinema Mode", ViewCinema, p))
	case IntentCoverFlow:
		n.push(n.frame(IDCoverFlow, "Cover Flow", ViewCoverFlow, p))
	case IntentSearch:
		n.NavigateTo(IDSearch, p, "")
	case IntentVolume:
		n.push(n.frame(IDVolume, "Volume", ViewVolume, p))
	case IntentRename:
		n.openRename(p.MixID)
	}
}

func (n *Navigator) selectCoverFlow() *Request {
	f := n.top()
	items := Items(*f, n.Snapshot())
	n.clamp(len(items))
	if len(items) == 0 {
		return nil
	}
	tracks := items[f.Selected].Payload.Songs
	if !f.Flipped {
		if len(tracks) > 0 {
			f.Flipped = true
			f.Track = 0
		}
		return nil
	}
	if len(tracks) == 0 {
		return nil
	}
	song := tracks[wrap(f.Track, len(tracks))]
	n.playNow(song)
	return nil
}

func (n *Navigator) openLyrics() *Request {
	state := n.player.State()
	if state.Song == nil {
		return nil
	}
	n.push(n.frame(IDLyrics, state.Song.Name, ViewMessage, Payload{Song: state.Song}))
	return n.request(RequestLyrics, "", *state.Song)
}

// pendingQuery reports whether the input holds a query that has not been
// committed in the search view.
func (n *Navigator) pendingQuery() bool {
	q := strings.TrimSpace(n.input)
	return q != "" && q != n.top().Query
}

func (n *Navigator) search(query string) *Request {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	f := n.top()
	if f.ID != IDSearch {
		return nil
	}
	n.input = query
	f.Query = query
	if _, err := n.history.Add(query); err != nil {
		n.log.Warn("failed to save recent search", "error", err)
	}
	return n.request(RequestSearch, query, core.Song{})
}

// request supersedes any outstanding request.
func (n *Navigator) request(kind RequestKind, query string, song core.Song) *Request {
	n.latest++
	n.loading = true
	n.pendingKind = kind
	n.pendingFrame = n.top().seq
	return &Request{ID: n.latest, Kind: kind, Query: query, Song: song}
}

func (n *Navigator) openRename(mixID string) {
	mix, ok := n.lib.Get(mixID)
	if !ok {
		return
	}
	n.input = mix.Title
	n.push(n.frame(IDRename, "Rename Playlist", ViewSearch, Payload{MixID: mixID}))
}

func (n *Navigator) commitRename() {
	f := n.top()
	title := strings.TrimSpace(n.input)
	if title == "" {
		return
	}
	mix, err := n.lib.Rename(f.Payload.MixID, title)
	if err != nil {
		n.log.Warn("rename failed", "mix_id", f.Payload.MixID, "error", err)
		n.pop()
		return
	}
	for i := range n.stack {
		if n.stack[i].ID == prefixMix+mix.ID {
			n.stack[i].Title = mix.Title
		}
	}
	n.input = ""
	n.pop()
}

func (n *Navigator) showNowPlaying() {
	if n.top().ID == IDNowPlaying {
		return
	}
	n.push(n.frame(IDNowPlaying, "Now Playing", ViewPlayer, Payload{}))
}

func (n *Navigator) showMessage(title, body string) {
	f := n.frame(IDMessage, title, ViewMessage, Payload{})
	f.Message = body
	n.push(f)
}

func (n *Navigator) frame(id, title string, t ViewType, p Payload) Frame {
	n.seq++
	return Frame{ID: id, Title: title, Type: t, Payload: p, seq: n.seq}
}

func (n *Navigator) push(f Frame) {
	n.stack = append(n.stack, f)
}

func (n *Navigator) pop() {
	if len(n.stack) > 1 {
		n.stack = n.stack[:len(n.stack)-1]
	}
}

func (n *Navigator) top() *Frame {
	return &n.stack[len(n.stack)-1]
}

// clamp keeps the top cursor inside [0, count-1].
func (n *Navigator) clamp(count int) {
	f := n.top()
	switch {
	case count == 0 || f.Selected < 0:
		f.Selected = 0
	case f.Selected >= count:
		f.Selected = count - 1
	}
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func defaultTitle(target string) string {
	if target == "" {
		return ""
	}
	return strings.ToUpper(target[:1]) + target[1:]
}
