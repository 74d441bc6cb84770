package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/tessro/tapedeck/internal/app"
	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/logger"
	"github.com/tessro/tapedeck/internal/nav"
	"github.com/tessro/tapedeck/internal/playback"
	"github.com/tessro/tapedeck/internal/tui/styles"
)

// Shell names a presentation shell.
type Shell string

const (
	ShellPod  Shell = "pod"
	ShellDeck Shell = "deck"
)

const (
	requestTimeout = 15 * time.Second
	noticeDuration = 4 * time.Second
	springFPS      = 30
)

// Options configures Run.
type Options struct {
	Shell           Shell
	RefreshInterval time.Duration
	Notify          bool
	Version         string
}

// Session is the state both shells share: the application, the playback
// event feed and the animated progress needle.
type Session struct {
	app    *app.App
	log    *logger.Logger
	opts   Options
	events <-chan playback.Event

	state core.PlaybackState
	theme styles.Theme

	spring    harmonica.Spring
	needle    float64
	velocity  float64
	animating bool

	// Error handling
	lastError   error
	errorExpiry time.Time
	notice      string
	noticeUntil time.Time
}

// NewSession subscribes to the engine and loads the initial state.
func NewSession(a *app.App, opts Options) *Session {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 500 * time.Millisecond
	}
	s := &Session{
		app:    a,
		log:    a.Logger.WithComponent("tui"),
		opts:   opts,
		events: a.Engine.Subscribe(),
		spring: harmonica.NewSpring(harmonica.FPS(springFPS), 6.0, 1.0),
	}
	s.refresh()
	s.needle = s.state.Progress
	return s
}

// Messages
type tickMsg time.Time
type frameMsg time.Time
type eventMsg playback.Event
type eventsClosedMsg struct{}
type resultMsg nav.Result
type errMsg error

// Commands
func (s *Session) tick() tea.Cmd {
	return tea.Tick(s.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *Session) animate() tea.Cmd {
	return tea.Tick(time.Second/springFPS, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// waitForEvent blocks on the next playback event.
func (s *Session) waitForEvent() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

// run executes a navigator request off the update loop.
func (s *Session) run(req *nav.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	catalog := s.app.Catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		res := nav.Result{ID: r.ID}
		switch r.Kind {
		case nav.RequestSearch:
			res.Songs = catalog.Search(ctx, r.Query)
		case nav.RequestLyrics:
			res.Lyrics = catalog.Lyrics(ctx, r.Song)
		}
		return resultMsg(res)
	}
}

// refresh re-reads playback state and the theme.
func (s *Session) refresh() {
	s.state = s.app.Engine.State()
	s.theme = styles.For(s.app.Settings.Load().Theme)
	if time.Now().After(s.errorExpiry) {
		s.lastError = nil
	}
	if time.Now().After(s.noticeUntil) {
		s.notice = ""
	}
}

// step advances the needle toward the real progress. It reports whether the
// needle is still moving.
func (s *Session) step() bool {
	target := s.state.Progress
	s.needle, s.velocity = s.spring.Update(s.needle, s.velocity, target)
	if d := s.needle - target; d < 0.001 && d > -0.001 && s.velocity < 0.001 && s.velocity > -0.001 {
		s.needle, s.velocity = target, 0
		return false
	}
	return true
}

// onTick refreshes state and starts the needle animation when it lags.
func (s *Session) onTick() tea.Cmd {
	s.refresh()
	cmds := []tea.Cmd{s.tick()}
	if !s.animating && s.needle != s.state.Progress {
		s.animating = true
		cmds = append(cmds, s.animate())
	}
	return tea.Batch(cmds...)
}

func (s *Session) onFrame() tea.Cmd {
	if s.step() {
		return s.animate()
	}
	s.animating = false
	return nil
}

// handleEvent reacts to a playback event. The returned command re-arms the
// event feed.
func (s *Session) handleEvent(ev playback.Event) tea.Cmd {
	s.refresh()
	cmds := []tea.Cmd{s.waitForEvent()}
	switch ev.Type {
	case playback.EventSongChanged:
		if s.opts.Notify && ev.Current != nil && ev.Current.Song != nil {
			cmds = append(cmds, notifySong(*ev.Current.Song, s.log))
		}
	case playback.EventUnplayable:
		if ev.Current != nil && ev.Current.Song != nil {
			s.setNotice(fmt.Sprintf("%s is unavailable", ev.Current.Song.Name))
		}
	}
	return tea.Batch(cmds...)
}

func (s *Session) setError(err error) {
	s.lastError = err
	s.errorExpiry = time.Now().Add(5 * time.Second)
}

func (s *Session) setNotice(text string) {
	s.notice = text
	s.noticeUntil = time.Now().Add(noticeDuration)
}

// mixTitle returns the title of the inserted mix.
func (s *Session) mixTitle() string {
	if mix, ok := s.app.Library.Get(s.state.ActiveMixID); ok {
		return mix.Title
	}
	return ""
}

// favorite reports whether the playing song is liked.
func (s *Session) favorite() bool {
	return s.state.Song != nil && s.app.Library.IsFavorite(s.state.Song.ID)
}

// Hooks returns the navigator side effects backed by the system clipboard.
func (s *Session) Hooks() nav.Hooks {
	return nav.Hooks{
		CopyToClipboard: clipboard.WriteAll,
		ShareBaseURL:    s.app.Config.Catalog.ShareBaseURL,
		About:           aboutText(s.opts.Version),
	}
}

func aboutText(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("tapedeck %s\nMixtapes for the terminal\nMusic from JioSaavn\nLyrics from LRCLib", version)
}

// Run starts the TUI with the chosen shell
func Run(a *app.App, opts Options) error {
	session := NewSession(a, opts)

	var model tea.Model
	switch opts.Shell {
	case ShellDeck:
		model = NewDeck(session)
	default:
		model = NewPod(session)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
