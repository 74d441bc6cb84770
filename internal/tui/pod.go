package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/tapedeck/internal/nav"
	"github.com/tessro/tapedeck/internal/playback"
	"github.com/tessro/tapedeck/internal/tui/components"
	"github.com/tessro/tapedeck/internal/tui/styles"
)

const (
	podWidth = 44
	podRows  = 10
	seekStep = 0.05
)

// Pod is the click-wheel shell: a single-focus screen driven by the
// navigation engine.
type Pod struct {
	s        *Session
	nav      *nav.Navigator
	menu     *components.Menu
	spinner  spinner.Model
	width    int
	height   int
	view     string
	quitting bool
}

// NewPod creates the click-wheel shell over s.
func NewPod(s *Session) Pod {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.theme.Primary)

	return Pod{
		s:       s,
		nav:     nav.New(s.app.Library, s.app.Engine, s.app.Settings, s.app.History, s.Hooks(), s.log),
		menu:    components.NewMenu(),
		spinner: sp,
		view:    nav.IDMain,
	}
}

// Navigator exposes the view stack driving the shell.
func (p Pod) Navigator() *nav.Navigator { return p.nav }

// Init starts the refresh loop and the event feed
func (p Pod) Init() tea.Cmd {
	return tea.Batch(p.s.tick(), p.s.waitForEvent(), p.spinner.Tick)
}

// Update handles messages
func (p Pod) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tickMsg:
		return p, p.s.onTick()

	case frameMsg:
		return p, p.s.onFrame()

	case eventMsg:
		return p, p.s.handleEvent(playback.Event(msg))

	case eventsClosedMsg:
		return p, nil

	case resultMsg:
		p.nav.Complete(nav.Result(msg))
		return p, nil

	case errMsg:
		p.s.setError(msg)
		return p, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p Pod) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	text := p.nav.TextEntry()

	switch msg.String() {
	case "ctrl+c":
		p.quitting = true
		return p, tea.Quit
	case "up":
		p.nav.Scroll(-1)
	case "down":
		p.nav.Scroll(1)
	case "enter":
		cmd = p.s.run(p.nav.Select())
	case "esc":
		p.nav.Back()
	case "backspace":
		if text && p.nav.Input() != "" {
			p.nav.Backspace()
		} else {
			p.nav.Back()
		}
	default:
		if text {
			p.typeKey(msg)
		} else if quit := p.handleControlKey(msg.String()); quit {
			p.quitting = true
			return p, tea.Quit
		}
	}

	p.s.refresh()
	p.syncView()
	return p, cmd
}

func (p Pod) typeKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			p.nav.TypeRune(r)
		}
	case tea.KeySpace:
		p.nav.TypeRune(' ')
	}
}

// handleControlKey runs the keys available outside text entry. It reports
// whether the shell should quit.
func (p Pod) handleControlKey(key string) bool {
	engine := p.s.app.Engine
	switch key {
	case "q":
		return true
	case "k":
		p.nav.Scroll(-1)
	case "j":
		p.nav.Scroll(1)
	case " ":
		engine.TogglePlay()
	case "n":
		engine.Next()
	case "p":
		engine.Prev()
	case "left":
		engine.Seek(p.s.state.Progress - seekStep)
	case "right":
		engine.Seek(p.s.state.Progress + seekStep)
	case "f":
		p.nav.ToggleFavorite()
	case "m":
		p.nav.Reset()
	}
	return false
}

// syncView resets the menu scroll when the top view changes.
func (p *Pod) syncView() {
	if id := p.nav.Current().ID; id != p.view {
		p.view = id
		p.menu.Reset()
	}
}

// View renders the UI
func (p Pod) View() string {
	if p.quitting {
		return ""
	}

	th := p.s.theme
	f := p.nav.Current()
	inner := podWidth - 4

	screen := lipgloss.JoinVertical(lipgloss.Left,
		p.renderTitleBar(th, f, inner),
		th.DimText.Render(strings.Repeat("─", inner)),
		lipgloss.NewStyle().Width(inner).Height(podRows).Render(p.renderBody(th, f, inner)),
	)
	pod := lipgloss.JoinVertical(lipgloss.Center,
		th.Screen.Render(screen),
		"",
		p.renderStatus(th),
	)

	if p.width == 0 {
		return pod
	}
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, pod)
}

func (p Pod) renderTitleBar(th styles.Theme, f nav.Frame, width int) string {
	icon := " "
	if p.s.state.Song != nil {
		icon = th.StatusIcon(p.s.state.IsPlaying)
	}
	title := th.Title.Render(styles.Truncate(f.Title, width-4))
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(icon + " " + title)
}

func (p Pod) renderBody(th styles.Theme, f nav.Frame, width int) string {
	switch f.Type {
	case nav.ViewPlayer:
		return p.renderPlayer(th, width)
	case nav.ViewVolume:
		return p.renderVolume(th, width)
	case nav.ViewCinema:
		return p.renderCinema(th, width)
	case nav.ViewCoverFlow:
		return p.renderCoverFlow(th, f, width)
	case nav.ViewSearch:
		return p.renderSearch(th, f, width)
	}
	if f.ID == nav.IDLyrics && p.nav.Loading() {
		return p.spinner.View() + th.MutedText.Render(" Fetching lyrics…")
	}
	return p.menu.Render(th, p.nav.Items(), f.Selected, width, podRows)
}

func (p Pod) renderSearch(th styles.Theme, f nav.Frame, width int) string {
	prompt := "Search: "
	if f.ID == nav.IDRename {
		prompt = "Name: "
	}
	input := th.Highlight.Render(prompt) + styles.Truncate(p.nav.Input(), width-len(prompt)-1) + "▏"

	var body string
	if p.nav.Loading() {
		body = p.spinner.View() + th.MutedText.Render(" Searching…")
	} else {
		body = p.menu.Render(th, p.nav.Items(), f.Selected, width, podRows-2)
	}
	return lipgloss.JoinVertical(lipgloss.Left, input, "", body)
}

func (p Pod) renderPlayer(th styles.Theme, width int) string {
	state := p.s.state
	if state.Song == nil {
		return th.MutedText.Render("Nothing playing")
	}
	song := state.Song

	count := ""
	if mix, ok := p.s.app.Library.Get(state.ActiveMixID); ok {
		count = fmt.Sprintf("%d of %d", state.Index+1, len(mix.Songs))
	}

	name := song.Name
	if p.s.favorite() {
		name += " ♥"
	}

	total := state.Total()
	if total == 0 {
		total = song.Length()
	}
	elapsed := formatClock(p.s.needle * total.Seconds())
	remaining := "-" + formatClock((1-p.s.needle)*total.Seconds())
	bar := th.ProgressBar(p.s.needle*100, width-styles.Width(elapsed)-styles.Width(remaining)-2)

	status := ""
	switch {
	case state.Unplayable:
		status = th.ErrorText.Render("Unavailable")
	case state.StreamURL == "":
		status = th.DimText.Render("Loading…")
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Left,
		center.Render(th.DimText.Render(count)),
		"",
		center.Render(th.Title.Render(styles.Truncate(name, width))),
		center.Render(th.Subtitle.Render(styles.Truncate(song.PrimaryArtists, width))),
		center.Render(th.DimText.Render(styles.Truncate(song.Album.Name, width))),
		"",
		elapsed+" "+bar+" "+remaining,
		center.Render(status),
	)
}

func (p Pod) renderVolume(th styles.Theme, width int) string {
	v := p.s.state.Volume
	pct := fmt.Sprintf("%3d%%", int(v*100+0.5))
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		th.Title.Render("Volume"),
		"",
		"🔈 "+th.ProgressBar(v*100, width-12)+" 🔊",
		lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(th.MutedText.Render(pct)),
	)
}

func (p Pod) renderCinema(th styles.Theme, width int) string {
	state := p.s.state
	center := lipgloss.NewStyle().Width(width).Height(podRows).Align(lipgloss.Center, lipgloss.Center)
	if state.Song == nil {
		return center.Render(th.MutedText.Render("Nothing playing"))
	}
	song := state.Song
	big := th.Highlight.Render(strings.ToUpper(styles.Truncate(song.Name, width)))
	return center.Render(lipgloss.JoinVertical(lipgloss.Center,
		big,
		"",
		th.Subtitle.Render(styles.Truncate(song.PrimaryArtists, width)),
		th.DimText.Render(song.Year),
		"",
		th.ProgressBar(p.s.needle*100, width-6),
	))
}

func (p Pod) renderCoverFlow(th styles.Theme, f nav.Frame, width int) string {
	items := p.nav.Items()
	if len(items) == 0 {
		return th.MutedText.Render("No albums yet")
	}
	album := items[f.Selected]

	if f.Flipped {
		tracks := make([]nav.Item, 0, len(album.Payload.Songs))
		for _, s := range album.Payload.Songs {
			tracks = append(tracks, nav.Item{Label: s.Name, Detail: formatClock(float64(s.Duration)), Kind: nav.KindAction})
		}
		header := th.Highlight.Render(styles.Truncate(album.Label, width))
		return lipgloss.JoinVertical(lipgloss.Left, header, p.menu.Render(th, tracks, f.Track, width, podRows-1))
	}

	side := func(i int) string {
		if len(items) < 2 {
			return ""
		}
		return items[(i+len(items))%len(items)].Label
	}
	cell := (width - 4) / 3
	cover := func(label string, focused bool) string {
		style := th.BorderStyle
		if focused {
			style = th.FocusedBorder
		}
		return style.Width(cell).Height(3).Align(lipgloss.Center, lipgloss.Center).
			Render(styles.Truncate(label, cell*2))
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Center,
		cover(side(f.Selected-1), false),
		cover(album.Label, true),
		cover(side(f.Selected+1), false),
	)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Left,
		strip,
		"",
		center.Render(th.Title.Render(styles.Truncate(album.Label, width))),
		center.Render(th.MutedText.Render(album.Detail)),
	)
}

func (p Pod) renderStatus(th styles.Theme) string {
	switch {
	case p.s.lastError != nil:
		return th.ErrorText.Render("Error: " + p.s.lastError.Error())
	case p.s.notice != "":
		return th.Paused.Render(p.s.notice)
	case p.nav.TextEntry():
		return th.DimText.Render("type to edit  ↑/↓:scroll  enter:select  esc:back")
	}
	return th.DimText.Render("j/k:wheel  enter:select  esc:menu  space:play  n/p:skip  f:♥  q:quit")
}

func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

var _ tea.Model = Pod{}
