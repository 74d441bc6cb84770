package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/library"
	"github.com/tessro/tapedeck/internal/playback"
	"github.com/tessro/tapedeck/internal/tui/components"
	"github.com/tessro/tapedeck/internal/tui/styles"
)

const (
	searchDebounce = 300 * time.Millisecond
	volumeStep     = 0.1
	maxResults     = 10
)

// Overlay is the modal drawn over the deck.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlaySearch
	OverlayShare
	OverlayDelete
	OverlayRename
)

// Deck is the cassette-deck shell: a shelf of mixes, the inserted tape and
// the transport.
type Deck struct {
	s *Session

	// Components
	shelf       *components.Cassettes
	trackList   *components.TrackList
	nowPlaying  *components.NowPlaying
	historyView *components.History

	history []components.HistoryEntry
	mixes   []core.Mix

	overlay Overlay
	input   textinput.Model
	spinner spinner.Model
	target  string // mix id the rename/delete overlay acts on

	// Search state
	searchResults []core.Song
	searchCursor  int
	searching     bool
	lastQuery     string
	searchSeq     int

	// Share state
	shareLink string
	shareQR   string

	width    int
	height   int
	quitting bool
}

// Search messages
type searchDebounceMsg struct{ query string }
type searchResultsMsg struct {
	seq     int
	query   string
	results []core.Song
}

// NewDeck creates the cassette-deck shell over s.
func NewDeck(s *Session) Deck {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.theme.Primary)

	d := Deck{
		s:           s,
		shelf:       components.NewCassettes(),
		trackList:   components.NewTrackList(),
		nowPlaying:  components.NewNowPlaying(),
		historyView: components.NewHistory(),
		input:       ti,
		spinner:     sp,
	}
	d.reload()
	return d
}

// reload re-reads the shelf from the library.
func (d *Deck) reload() {
	d.mixes = d.s.app.Library.List()
	d.shelf.Clamp(len(d.mixes))
}

func (d Deck) selectedMix() (core.Mix, bool) {
	i := d.shelf.Selected()
	if i < 0 || i >= len(d.mixes) {
		return core.Mix{}, false
	}
	return d.mixes[i], true
}

// Init starts the refresh loop and the event feed
func (d Deck) Init() tea.Cmd {
	return tea.Batch(d.s.tick(), d.s.waitForEvent(), d.spinner.Tick)
}

// Update handles messages
func (d Deck) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil

	case tickMsg:
		d.reload()
		return d, d.s.onTick()

	case frameMsg:
		return d, d.s.onFrame()

	case eventMsg:
		ev := playback.Event(msg)
		if ev.Type == playback.EventSongChanged && ev.Current != nil && ev.Current.Song != nil {
			d.history = components.PushHistory(d.history, *ev.Current.Song, ev.Timestamp)
		}
		d.reload()
		return d, d.s.handleEvent(ev)

	case eventsClosedMsg:
		return d, nil

	case errMsg:
		d.s.setError(msg)
		return d, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case searchDebounceMsg:
		if msg.query == d.input.Value() && msg.query != d.lastQuery {
			d.lastQuery = msg.query
			d.searchSeq++
			d.searching = msg.query != ""
			return d, d.doSearch(d.searchSeq, msg.query)
		}

	case searchResultsMsg:
		// Last request wins
		if msg.seq != d.searchSeq {
			return d, nil
		}
		d.searching = false
		d.searchResults = msg.results
		d.searchCursor = 0
		return d, nil
	}

	// Forward other messages to textinput when an input overlay is active
	if d.overlay == OverlaySearch || d.overlay == OverlayRename {
		var inputCmd tea.Cmd
		d.input, inputCmd = d.input.Update(msg)
		return d, inputCmd
	}

	return d, nil
}

func (d Deck) doSearch(seq int, query string) tea.Cmd {
	catalog := d.s.app.Catalog
	return func() tea.Msg {
		if strings.TrimSpace(query) == "" {
			return searchResultsMsg{seq: seq, query: query}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return searchResultsMsg{seq: seq, query: query, results: catalog.Search(ctx, query)}
	}
}

func (d Deck) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	if msg.String() == "ctrl+c" {
		d.quitting = true
		return d, tea.Quit
	}

	switch d.overlay {
	case OverlayHelp:
		switch msg.String() {
		case "?", "esc", "q":
			d.overlay = OverlayNone
		}
		return d, nil
	case OverlayShare:
		d.overlay = OverlayNone
		return d, nil
	case OverlayDelete:
		return d.handleDeleteKeyPress(msg)
	case OverlayRename:
		return d.handleRenameKeyPress(msg)
	case OverlaySearch:
		return d.handleSearchKeyPress(msg)
	}

	engine := d.s.app.Engine
	switch msg.String() {
	case "q":
		d.quitting = true
		return d, tea.Quit
	case "?":
		d.overlay = OverlayHelp
	case "/":
		return d.openSearch()

	// Transport
	case " ":
		engine.TogglePlay()
	case "n":
		engine.Next()
	case "p":
		engine.Prev()
	case "left":
		engine.Seek(d.s.state.Progress - seekStep)
	case "right":
		engine.Seek(d.s.state.Progress + seekStep)
	case "up", "+", "=":
		engine.NudgeVolume(volumeStep)
	case "down", "-":
		engine.NudgeVolume(-volumeStep)
	case "e":
		engine.Eject()

	// Shelf
	case "j":
		d.shelf.SelectNext()
		d.shelf.Clamp(len(d.mixes))
	case "k":
		d.shelf.SelectPrev()
	case "enter":
		if mix, ok := d.selectedMix(); ok {
			if err := engine.LoadMix(mix.ID); err != nil {
				d.s.setError(err)
			}
		}
	case "f":
		if d.s.state.Song != nil {
			if _, err := d.s.app.Library.ToggleFavorite(*d.s.state.Song); err != nil {
				d.s.setError(err)
			}
		}
	case "x":
		if d.s.state.Song != nil {
			if err := d.s.app.Library.RemoveSong(d.s.state.ActiveMixID, d.s.state.Index); err != nil {
				d.s.setError(err)
			}
		}
	case "s":
		return d.openShare()
	case "c":
		return d.createMix()
	case "r":
		if mix, ok := d.selectedMix(); ok {
			return d.openRename(mix)
		}
	case "d":
		if mix, ok := d.selectedMix(); ok {
			d.target = mix.ID
			d.overlay = OverlayDelete
		}
	}

	d.reload()
	d.s.refresh()
	return d, nil
}

func (d Deck) openSearch() (tea.Model, tea.Cmd) {
	d.overlay = OverlaySearch
	d.input.Placeholder = "Search songs, artists, albums..."
	d.input.SetValue("")
	d.input.Focus()
	d.searchResults = nil
	d.searchCursor = 0
	d.lastQuery = ""
	d.searching = false
	return d, textinput.Blink
}

func (d Deck) handleSearchKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "esc":
		d.overlay = OverlayNone
		d.input.Blur()
		return d, nil

	case "enter":
		if d.input.Value() == "" {
			if recent := d.s.app.History.List(); d.searchCursor < len(recent) {
				d.input.SetValue(recent[d.searchCursor])
				d.input.CursorEnd()
				d.lastQuery = d.input.Value()
				d.searchSeq++
				d.searching = true
				return d, d.doSearch(d.searchSeq, d.lastQuery)
			}
			return d, nil
		}
		if song, ok := d.cursorSong(); ok {
			d.commitQuery()
			d.overlay = OverlayNone
			d.input.Blur()
			d.playNow(song)
		}
		return d, nil

	case "ctrl+a":
		if song, ok := d.cursorSong(); ok {
			d.commitQuery()
			d.addToInserted(song)
		}
		return d, nil

	case "up", "ctrl+p":
		if d.searchCursor > 0 {
			d.searchCursor--
		}
		return d, nil

	case "down", "ctrl+n":
		limit := len(d.searchResults)
		if d.input.Value() == "" {
			limit = len(d.s.app.History.List())
		}
		if d.searchCursor < limit-1 {
			d.searchCursor++
		}
		return d, nil
	}

	// Handle text input
	var inputCmd tea.Cmd
	d.input, inputCmd = d.input.Update(msg)
	cmds = append(cmds, inputCmd)

	// Debounce search
	if d.input.Value() != d.lastQuery {
		query := d.input.Value()
		cmds = append(cmds, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{query: query}
		}))
	}

	return d, tea.Batch(cmds...)
}

func (d Deck) cursorSong() (core.Song, bool) {
	if d.searchCursor < 0 || d.searchCursor >= len(d.searchResults) {
		return core.Song{}, false
	}
	return d.searchResults[d.searchCursor], true
}

// commitQuery records the query that produced the chosen result.
func (d Deck) commitQuery() {
	if _, err := d.s.app.History.Add(d.lastQuery); err != nil {
		d.s.log.Warn("failed to save search history", "error", err)
	}
}

func (d Deck) playNow(song core.Song) {
	lib := d.s.app.Library
	mixID, index, err := lib.PlayNowTarget(song)
	if err == nil {
		err = d.s.app.Engine.PlayAt(mixID, index)
	}
	if err != nil {
		d.s.setError(err)
	}
}

func (d Deck) addToInserted(song core.Song) {
	mixID := d.s.state.ActiveMixID
	if mixID == "" {
		d.s.setNotice("Insert a tape first")
		return
	}
	added, err := d.s.app.Library.AppendSong(mixID, song)
	switch {
	case err != nil:
		d.s.setError(err)
	case added:
		d.s.setNotice(fmt.Sprintf("Added %s to %s", song.Name, d.s.mixTitle()))
	default:
		d.s.setNotice(fmt.Sprintf("%s is already on %s", song.Name, d.s.mixTitle()))
	}
}

func (d Deck) openShare() (tea.Model, tea.Cmd) {
	mix, ok := d.selectedMix()
	if !ok {
		return d, nil
	}
	d.shareLink = d.s.app.ShareURL(mix)
	qr, err := QRCode(d.shareLink)
	if err != nil {
		d.s.log.Debug("qr code unavailable", "error", err)
	}
	d.shareQR = qr
	if err := clipboard.WriteAll(d.shareLink); err != nil {
		d.s.log.Debug("clipboard unavailable", "error", err)
	} else {
		d.s.setNotice("Link copied to clipboard")
	}
	d.overlay = OverlayShare
	return d, nil
}

func (d Deck) createMix() (tea.Model, tea.Cmd) {
	lib := d.s.app.Library
	mix, err := lib.CreateMix(lib.NextMixTitle(), library.RandomColor())
	if err != nil {
		d.s.setError(err)
		return d, nil
	}
	d.reload()
	for i, m := range d.mixes {
		if m.ID == mix.ID {
			for d.shelf.Selected() < i {
				d.shelf.SelectNext()
			}
		}
	}
	return d.openRename(mix)
}

func (d Deck) openRename(mix core.Mix) (tea.Model, tea.Cmd) {
	d.target = mix.ID
	d.overlay = OverlayRename
	d.input.Placeholder = "Mix name"
	d.input.SetValue(mix.Title)
	d.input.CursorEnd()
	d.input.Focus()
	return d, textinput.Blink
}

func (d Deck) handleRenameKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.overlay = OverlayNone
		d.input.Blur()
		return d, nil
	case "enter":
		if title := strings.TrimSpace(d.input.Value()); title != "" {
			if _, err := d.s.app.Library.Rename(d.target, title); err != nil {
				d.s.setError(err)
			}
		}
		d.overlay = OverlayNone
		d.input.Blur()
		d.reload()
		return d, nil
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d Deck) handleDeleteKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := d.s.app.Library.Delete(d.target); err != nil {
			d.s.setError(err)
		}
		d.reload()
		d.s.refresh()
	}
	d.overlay = OverlayNone
	return d, nil
}

// View renders the UI
func (d Deck) View() string {
	if d.quitting {
		return ""
	}

	if d.width == 0 {
		return "Loading..."
	}

	th := d.s.theme
	switch d.overlay {
	case OverlayHelp:
		return d.renderHelp(th)
	case OverlaySearch:
		return d.renderSearch(th)
	case OverlayShare:
		return d.renderShare(th)
	case OverlayDelete:
		return d.renderDelete(th)
	case OverlayRename:
		return d.renderRename(th)
	}

	// Left: deck (top), tape (bottom). Right: shelf (top), played (bottom).
	leftWidth := d.width * 60 / 100
	rightWidth := d.width - leftWidth - 2
	topHeight := d.height * 40 / 100
	bottomHeight := d.height - topHeight - 2

	var inserted *core.Mix
	current := -1
	if mix, ok := d.s.app.Library.Get(d.s.state.ActiveMixID); ok {
		inserted = &mix
		if d.s.state.Song != nil {
			current = d.s.state.Index
		}
	}

	deck := d.nowPlaying.Render(th, components.Deck{
		State:    d.s.state,
		MixTitle: d.s.mixTitle(),
		Favorite: d.s.favorite(),
		Progress: d.s.needle,
	}, leftWidth-2, topHeight-2, false)
	tape := d.trackList.Render(th, inserted, current, leftWidth-2, bottomHeight-2, false)
	shelf := d.shelf.Render(th, d.mixes, d.s.state.ActiveMixID, rightWidth-2, topHeight-2, true)
	played := d.historyView.Render(th, d.history, rightWidth-2, bottomHeight-2, false)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, deck, tape)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, shelf, played)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, main, d.renderStatusBar(th))
}

func (d Deck) renderStatusBar(th styles.Theme) string {
	status := th.DimText.Render("q:quit  ?:help  /:search  enter:insert  space:play/pause  n/p:skip  ←/→:seek  ↑/↓:volume")

	switch {
	case d.s.lastError != nil:
		status = th.ErrorText.Render("Error: " + d.s.lastError.Error())
	case d.s.notice != "":
		status = th.Paused.Render(d.s.notice)
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Padding(0, 1).
		Render(status)
}

func (d Deck) center(th styles.Theme, content string, focused bool) string {
	border := th.BorderStyle
	if focused {
		border = th.FocusedBorder
	}
	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(border.Render(content))
}

func (d Deck) renderHelp(th styles.Theme) string {
	title := "tapedeck - Keyboard Shortcuts"
	divider := strings.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  /            Search

  Transport
  ─────────
  Space        Play/Pause
  n / p        Next / previous song
  ←/→          Seek 5%
  ↑/↓, +/-     Volume
  e            Eject
  f            Favorite playing song
  x            Remove playing song from tape

  Shelf
  ─────
  j/k          Select mix
  Enter        Insert mix
  c            Create mix
  r            Rename mix
  d            Delete mix
  s            Share mix (link + QR)

  Search
  ──────
  Enter        Play now
  Ctrl+A       Add to inserted tape

  Press ? or Esc to close
`
	return d.center(th, help, false)
}

func (d Deck) renderSearch(th styles.Theme) string {
	var b strings.Builder

	b.WriteString(th.Highlight.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(d.input.View())
	b.WriteString("\n\n")

	selected := lipgloss.NewStyle().Background(th.Surface)
	switch {
	case d.searching:
		b.WriteString(d.spinner.View() + th.MutedText.Render(" Searching..."))
	case d.input.Value() == "":
		recent := d.s.app.History.List()
		if len(recent) == 0 {
			b.WriteString(th.MutedText.Render("Type to search"))
		} else {
			b.WriteString(th.DimText.Render("Recent searches"))
			b.WriteString("\n")
			for i, q := range recent {
				line := "  " + q
				if i == d.searchCursor {
					line = selected.Render("> " + q)
				}
				b.WriteString(line + "\n")
			}
		}
	case len(d.searchResults) == 0 && d.lastQuery != "":
		b.WriteString(th.MutedText.Render("No results found"))
	default:
		start := 0
		if d.searchCursor >= maxResults {
			start = d.searchCursor - maxResults + 1
		}
		for i := start; i < len(d.searchResults) && i < start+maxResults; i++ {
			song := d.searchResults[i]
			line := styles.Truncate(song.Name, 30) + " " + th.MutedText.Render(styles.Truncate(song.PrimaryArtists, 20))
			if song.Year != "" {
				line += " " + th.DimText.Render(song.Year)
			}
			if i == d.searchCursor {
				b.WriteString(selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if len(d.searchResults) > maxResults {
			b.WriteString(th.DimText.Render(fmt.Sprintf("  %d results", len(d.searchResults))))
		}
	}

	b.WriteString("\n")
	b.WriteString(th.DimText.Render("↑/↓:nav  Enter:play now  Ctrl+a:add to tape  Esc:close"))

	content := lipgloss.NewStyle().
		Width(64).
		Padding(1, 2).
		Render(b.String())
	return d.center(th, content, true)
}

func (d Deck) renderShare(th styles.Theme) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		th.Highlight.Render("Share"),
		"",
		d.shareQR,
		th.MutedText.Render(d.shareLink),
		"",
		th.DimText.Render("Press any key to close"),
	)
	return d.center(th, lipgloss.NewStyle().Padding(1, 2).Render(content), true)
}

func (d Deck) renderDelete(th styles.Theme) string {
	title := d.target
	if mix, ok := d.s.app.Library.Get(d.target); ok {
		title = mix.Title
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		th.ErrorText.Render(fmt.Sprintf("Delete %s?", title)),
		"",
		th.DimText.Render("y:delete  any other key:cancel"),
	)
	return d.center(th, lipgloss.NewStyle().Padding(1, 2).Render(content), true)
}

func (d Deck) renderRename(th styles.Theme) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		th.Highlight.Render("Name this mix"),
		"",
		d.input.View(),
		"",
		th.DimText.Render("Enter:save  Esc:cancel"),
	)
	return d.center(th, lipgloss.NewStyle().Width(56).Padding(1, 2).Render(content), true)
}

var _ tea.Model = Deck{}
