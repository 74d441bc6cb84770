// Package playback is the single writer of transport state: which mix is
// inserted, whether it plays, where in the song it is, and how loud.
package playback

import (
	"context"
	"fmt"
	"sync"

	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/library"
	"github.com/tessro/tapedeck/internal/logger"
	"github.com/tessro/tapedeck/internal/store"
)

// VolumeStep is the nudge applied per wheel tick.
const VolumeStep = 0.05

// Resolver turns a song into a playable stream URL. An empty result means
// the song cannot be played.
type Resolver interface {
	Resolve(ctx context.Context, song core.Song) string
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, song core.Song) string

func (f ResolverFunc) Resolve(ctx context.Context, song core.Song) string { return f(ctx, song) }

// Options tune engine policy.
type Options struct {
	// AutoPlay starts playback when a mix is inserted.
	AutoPlay bool
}

// Engine is the playback state machine.
type Engine struct {
	mu        sync.Mutex
	lib       *library.Store
	transport core.Transport
	resolver  Resolver
	settings  *store.SettingsRepo
	log       *logger.Logger
	opts      Options

	activeMixID  string
	isPlaying    bool
	hasPlayed    bool
	volume       float64
	progress     float64
	duration     float64
	streamURL    string
	unplayable   bool
	sourceLoaded bool

	loadedSongID string
	forceReload  bool

	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup

	subs   []chan Event
	closed bool
}

// New wires an engine to the library, transport and resolver. Volume is
// restored from settings.
func New(lib *library.Store, transport core.Transport, resolver Resolver, settings *store.SettingsRepo, log *logger.Logger, opts Options) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	e := &Engine{
		lib:       lib,
		transport: transport,
		resolver:  resolver,
		settings:  settings,
		log:       log.WithComponent("playback"),
		opts:      opts,
		volume:    settings.Load().Volume,
	}

	transport.SetHandlers(core.TransportHandlers{
		OnEnded:    e.handleEnded,
		OnProgress: e.handleProgress,
		OnDuration: e.handleDuration,
		OnError:    e.handleError,
	})
	transport.SetVolume(e.volume)

	lib.OnDelete(e.handleMixDeleted)
	lib.OnChange(e.handleMixChanged)
	return e
}

// Subscribe returns a channel of playback events. Slow readers drop events.
func (e *Engine) Subscribe() <-chan Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch := make(chan Event, 32)
	if e.closed {
		close(ch)
		return ch
	}
	e.subs = append(e.subs, ch)
	return ch
}

// State returns a snapshot of the playback state.
func (e *Engine) State() core.PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// CurrentSong returns the derived current song, or nil.
func (e *Engine) CurrentSong() *core.Song {
	e.mu.Lock()
	defer e.mu.Unlock()
	song, _ := e.currentLocked()
	return song
}

// ActiveMix returns the inserted mix.
func (e *Engine) ActiveMix() (core.Mix, bool) {
	e.mu.Lock()
	id := e.activeMixID
	e.mu.Unlock()
	if id == "" {
		return core.Mix{}, false
	}
	return e.lib.Get(id)
}

// LoadMix inserts the mix with the given id. Loading the mix that is already
// inserted is a no-op.
func (e *Engine) LoadMix(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id == e.activeMixID {
		return nil
	}
	if _, ok := e.lib.Get(id); !ok {
		return fmt.Errorf("%w: %s", tderr.ErrMixNotFound, id)
	}

	prev := e.stateLocked()
	e.activeMixID = id
	e.isPlaying = e.opts.AutoPlay
	e.hasPlayed = e.opts.AutoPlay
	e.forceReload = true
	e.reconcileLocked()
	e.emitLocked(prev)
	return nil
}

// Eject removes the inserted mix and stops playback.
func (e *Engine) Eject() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.activeMixID == "" {
		return
	}
	prev := e.stateLocked()
	e.clearLocked()
	e.emitLocked(prev)
}

// Play starts playback. It is a no-op with no mix inserted.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setPlayingLocked(true)
}

// Pause pauses playback. It is a no-op with no mix inserted.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setPlayingLocked(false)
}

// TogglePlay flips between playing and paused.
func (e *Engine) TogglePlay() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setPlayingLocked(!e.isPlaying)
}

func (e *Engine) setPlayingLocked(playing bool) {
	if e.activeMixID == "" || e.isPlaying == playing {
		return
	}
	prev := e.stateLocked()
	e.isPlaying = playing
	if playing {
		e.hasPlayed = true
	}
	if e.sourceLoaded {
		if playing {
			e.transport.Play()
		} else {
			e.transport.Pause()
		}
	}
	e.emitLocked(prev)
}

// Next advances to the following song, wrapping to the first.
func (e *Engine) Next() { e.step(1) }

// Prev moves to the preceding song, wrapping to the last.
func (e *Engine) Prev() { e.step(-1) }

func (e *Engine) step(delta int) {
	e.mu.Lock()
	mix, ok := e.activeMixLocked()
	if !ok || len(mix.Songs) == 0 {
		e.mu.Unlock()
		return
	}
	n := len(mix.Songs)
	idx := ((mix.CurrentSongIndex+delta)%n + n) % n
	e.forceReload = true
	e.mu.Unlock()

	// The library change observer performs the reload.
	if _, err := e.lib.Update(mix.ID, library.Patch{CurrentSongIndex: &idx}); err != nil {
		e.log.Warn("failed to move cursor", "mix_id", mix.ID, "error", err)
	}
}

// PlayAt inserts mixID if needed, moves its cursor to index and plays.
func (e *Engine) PlayAt(mixID string, index int) error {
	mix, ok := e.lib.Get(mixID)
	if !ok {
		return fmt.Errorf("%w: %s", tderr.ErrMixNotFound, mixID)
	}
	if index < 0 || index >= len(mix.Songs) {
		return fmt.Errorf("%w: index %d out of range", tderr.ErrSongNotFound, index)
	}

	e.mu.Lock()
	prev := e.stateLocked()
	e.activeMixID = mixID
	e.isPlaying = true
	e.hasPlayed = true
	e.forceReload = true
	if mix.CurrentSongIndex == index {
		e.reconcileLocked()
		e.emitLocked(prev)
		e.mu.Unlock()
		return nil
	}
	e.teardownLocked()
	e.emitLocked(prev)
	e.mu.Unlock()

	_, err := e.lib.Update(mixID, library.Patch{CurrentSongIndex: &index})
	return err
}

// Seek jumps to fraction of the loaded song. It is a no-op without media.
func (e *Engine) Seek(fraction float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sourceLoaded || e.duration <= 0 {
		return
	}
	prev := e.stateLocked()
	e.progress = core.ClampUnit(fraction)
	e.transport.Seek(e.progress * e.duration)
	e.emitLocked(prev)
}

// SetVolume clamps v to [0,1], applies it and persists it.
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setVolumeLocked(v)
}

// NudgeVolume changes the volume by delta.
func (e *Engine) NudgeVolume(delta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setVolumeLocked(e.volume + delta)
}

func (e *Engine) setVolumeLocked(v float64) {
	prev := e.stateLocked()
	e.volume = core.ClampUnit(v)
	e.transport.SetVolume(e.volume)
	vol := e.volume
	if _, err := e.settings.Update(func(s *core.Settings) { s.Volume = vol }); err != nil {
		e.log.Warn("failed to persist volume", "error", err)
	}
	e.emitLocked(prev)
}

// Settle blocks until in-flight stream resolutions have finished.
func (e *Engine) Settle() {
	e.wg.Wait()
}

// Close stops playback and closes every subscription.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.gen++
	if e.cancel != nil {
		e.cancel()
	}
	e.transport.Stop()
	for _, ch := range e.subs {
		close(ch)
	}
	e.subs = nil
	e.mu.Unlock()
	e.wg.Wait()
}

func (e *Engine) handleMixDeleted(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id != e.activeMixID {
		return
	}
	prev := e.stateLocked()
	e.clearLocked()
	e.emitLocked(prev)
}

func (e *Engine) handleMixChanged(mix core.Mix) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if mix.ID != e.activeMixID {
		return
	}
	prev := e.stateLocked()
	e.reconcileLocked()
	e.emitLocked(prev)
}

func (e *Engine) handleEnded() {
	e.mu.Lock()
	if !e.sourceLoaded || e.closed {
		e.mu.Unlock()
		return
	}
	prev := e.stateLocked()
	e.progress = 1
	e.sourceLoaded = false
	cur := e.stateLocked()
	e.broadcastLocked(Event{Type: EventSongCompleted, Previous: &prev, Current: &cur})
	e.mu.Unlock()

	e.Next()
}

func (e *Engine) handleProgress(fraction float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sourceLoaded {
		return
	}
	prev := e.stateLocked()
	e.progress = core.ClampUnit(fraction)
	e.emitLocked(prev)
}

func (e *Engine) handleDuration(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sourceLoaded || seconds <= 0 {
		return
	}
	prev := e.stateLocked()
	e.duration = seconds
	e.emitLocked(prev)
}

func (e *Engine) handleError(err error) {
	e.log.Error("transport error", "error", err)
}

// clearLocked drops the inserted mix and tears down the source.
func (e *Engine) clearLocked() {
	e.activeMixID = ""
	e.isPlaying = false
	e.hasPlayed = false
	e.teardownLocked()
	e.loadedSongID = ""
}

// teardownLocked stops the transport and invalidates in-flight resolutions.
func (e *Engine) teardownLocked() {
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.transport.Stop()
	e.sourceLoaded = false
	e.streamURL = ""
	e.unplayable = false
	e.progress = 0
	e.duration = 0
}

// reconcileLocked reloads the source when the derived current song differs
// from the loaded one, or a reload was requested.
func (e *Engine) reconcileLocked() {
	song, _ := e.currentLocked()
	if song == nil {
		if e.loadedSongID != "" || e.sourceLoaded || e.forceReload {
			e.teardownLocked()
		}
		e.loadedSongID = ""
		e.forceReload = false
		return
	}
	if !e.forceReload && song.ID == e.loadedSongID {
		return
	}
	e.forceReload = false
	e.loadedSongID = song.ID
	e.resolveLocked(*song)

	id := song.ID
	if _, err := e.settings.Update(func(s *core.Settings) { s.LastPlayedSongID = id }); err != nil {
		e.log.Warn("failed to persist last played song", "error", err)
	}
}

// resolveLocked tears down the old source and starts resolving song. Only
// the latest resolution may touch the transport.
func (e *Engine) resolveLocked(song core.Song) {
	e.teardownLocked()
	if e.closed {
		return
	}
	gen := e.gen
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		url := e.resolver.Resolve(ctx, song)

		e.mu.Lock()
		defer e.mu.Unlock()
		if gen != e.gen || e.closed {
			return
		}

		prev := e.stateLocked()
		if url == "" {
			e.log.Warn("no playable source", "song_id", song.ID, "song_name", song.Name)
			e.unplayable = true
			e.emitLocked(prev)
			return
		}
		if err := e.transport.Load(ctx, url); err != nil {
			e.log.Error("failed to load stream", "song_id", song.ID, "error", err)
			e.unplayable = true
			e.emitLocked(prev)
			return
		}
		e.streamURL = url
		e.sourceLoaded = true
		e.duration = float64(song.Duration)
		e.transport.SetVolume(e.volume)
		if e.isPlaying {
			e.transport.Play()
		}
		e.emitLocked(prev)
	}()
}

func (e *Engine) activeMixLocked() (core.Mix, bool) {
	if e.activeMixID == "" {
		return core.Mix{}, false
	}
	return e.lib.Get(e.activeMixID)
}

func (e *Engine) currentLocked() (*core.Song, int) {
	mix, ok := e.activeMixLocked()
	if !ok {
		return nil, -1
	}
	song := mix.Current()
	if song == nil {
		return nil, -1
	}
	s := *song
	return &s, mix.CurrentSongIndex
}

func (e *Engine) stateLocked() core.PlaybackState {
	song, idx := e.currentLocked()
	st := core.PlaybackState{
		ActiveMixID: e.activeMixID,
		Song:        song,
		Index:       idx,
		IsPlaying:   e.isPlaying,
		Volume:      e.volume,
		Progress:    e.progress,
		Duration:    e.duration,
		StreamURL:   e.streamURL,
		Unplayable:  e.unplayable,
	}
	switch {
	case e.activeMixID == "":
		st.Status = core.StatusIdle
	case e.isPlaying:
		st.Status = core.StatusPlaying
	case e.hasPlayed:
		st.Status = core.StatusPaused
	default:
		st.Status = core.StatusLoaded
	}
	return st
}

func (e *Engine) emitLocked(prev core.PlaybackState) {
	for _, ev := range diffStates(prev, e.stateLocked()) {
		e.broadcastLocked(ev)
	}
}

func (e *Engine) broadcastLocked(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = timeNow()
	}
	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
			// Drop event if channel is full
		}
	}
}
