// Package audio plays remote streams through ffmpeg and the system audio
// device.
package audio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/logger"
)

// ErrFFmpegNotFound is returned by Load when the decoder binary is missing.
var ErrFFmpegNotFound = errors.New("ffmpeg not found (required for playback)")

const pollInterval = 250 * time.Millisecond

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// session is the decoder and audio player for one loaded source at one
// offset. A seek replaces the session.
type session struct {
	token  uint64
	dec    *decoder
	player *oto.Player
	offset float64
}

// Transport implements core.Transport. Handlers are only ever invoked from
// its monitor goroutines, never from its methods.
type Transport struct {
	ffmpeg  string
	ffprobe string
	log     *logger.Logger

	mu       sync.Mutex
	handlers core.TransportHandlers
	url      string
	volume   float64
	playing  bool
	duration float64
	token    uint64
	current  *session
	probe    context.CancelFunc
}

var _ core.Transport = (*Transport)(nil)

// New creates a transport that decodes with the given ffmpeg binary.
func New(ffmpeg string, log *logger.Logger) *Transport {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Transport{
		ffmpeg:  ffmpeg,
		ffprobe: probeBinary(ffmpeg),
		log:     log.WithComponent("audio"),
		volume:  1,
	}
}

func (t *Transport) SetHandlers(h core.TransportHandlers) {
	t.mu.Lock()
	t.handlers = h
	t.mu.Unlock()
}

// Load replaces the current source with url. The new source starts paused.
func (t *Transport) Load(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	otoCtx, err := initOto()
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.url = url
	t.playing = false
	t.duration = 0
	if err := t.startLocked(otoCtx, 0); err != nil {
		return err
	}

	probeCtx, cancel := context.WithCancel(context.Background())
	t.probe = cancel
	go t.probeDuration(probeCtx, url)
	return nil
}

// Stop unloads the source. It does not wait for the decoder to exit.
func (t *Transport) Stop() {
	t.mu.Lock()
	t.stopLocked()
	t.url = ""
	t.mu.Unlock()
}

func (t *Transport) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playing = true
	if t.current != nil {
		t.current.player.Play()
	}
}

func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.playing = false
	if t.current != nil {
		t.current.player.Pause()
	}
}

// Seek restarts decoding at seconds, keeping the play state.
func (t *Transport) Seek(seconds float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil || t.url == "" {
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	t.endSessionLocked()
	if err := t.startLocked(globalOtoCtx, seconds); err != nil {
		t.log.Error("seek failed", "seconds", seconds, "error", err)
		h := t.handlers.OnError
		if h != nil {
			go h(err)
		}
	}
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (t *Transport) SetVolume(v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	t.volume = v
	if t.current != nil {
		t.current.player.SetVolume(v)
	}
}

// startLocked starts a new session at offset under a fresh token.
func (t *Transport) startLocked(otoCtx *oto.Context, offset float64) error {
	dec, err := startDecoder(t.ffmpeg, t.url, offset)
	if err != nil {
		return err
	}
	t.token++
	s := &session{
		token:  t.token,
		dec:    dec,
		player: otoCtx.NewPlayer(dec.counter),
		offset: offset,
	}
	s.player.SetVolume(t.volume)
	if t.playing {
		s.player.Play()
	}
	t.current = s
	go t.monitor(s)
	return nil
}

func (t *Transport) stopLocked() {
	if t.probe != nil {
		t.probe()
		t.probe = nil
	}
	t.endSessionLocked()
}

func (t *Transport) endSessionLocked() {
	t.token++
	if t.current == nil {
		return
	}
	t.current.player.Pause()
	t.current.dec.stop()
	t.current = nil
}

// monitor polls one session, reporting progress and the natural end of the
// stream. It exits as soon as the session is superseded.
func (t *Transport) monitor(s *session) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for range ticker.C {
		t.mu.Lock()
		if t.token != s.token {
			t.mu.Unlock()
			return
		}
		handlers := t.handlers
		duration := t.duration
		playing := t.playing
		t.mu.Unlock()

		if err := s.dec.failure(); err != nil {
			t.log.Error("decoder failed", "error", err)
			if t.invalidate(s.token) && handlers.OnError != nil {
				handlers.OnError(err)
			}
			return
		}

		if !playing {
			continue
		}

		position := s.offset + s.dec.counter.Seconds()
		if duration > 0 && handlers.OnProgress != nil {
			handlers.OnProgress(min(position/duration, 1))
		}

		if s.dec.counter.Drained() && !s.player.IsPlaying() {
			if t.invalidate(s.token) && handlers.OnEnded != nil {
				handlers.OnEnded()
			}
			return
		}
	}
}

// invalidate retires the session with token if it is still current, so its
// terminal notification fires once.
func (t *Transport) invalidate(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.token != token {
		return false
	}
	t.token++
	if t.current != nil {
		t.current.dec.stop()
		t.current = nil
	}
	return true
}

func (t *Transport) probeDuration(ctx context.Context, url string) {
	secs, err := probeDuration(ctx, t.ffprobe, url)
	if err != nil {
		t.log.Debug("duration probe failed", "error", err)
		return
	}

	t.mu.Lock()
	if t.url != url || ctx.Err() != nil {
		t.mu.Unlock()
		return
	}
	t.duration = secs
	h := t.handlers.OnDuration
	t.mu.Unlock()

	if h != nil {
		h(secs)
	}
}
