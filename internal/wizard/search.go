package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tessro/tapedeck/internal/core"
)

const (
	searchDebounce = 300 * time.Millisecond
	minVisibleRows = 5
)

// SearchFunc queries the catalog.
type SearchFunc func(query string) ([]core.Song, error)

// SearchModel is a type-ahead song finder. While the query is empty it
// offers recent searches; tab copies the highlighted one into the input.
type SearchModel struct {
	query   textinput.Model
	spin    spinner.Model
	search  SearchFunc
	recent  []string
	songs   []core.Song
	cursor  int
	seq     int
	pending bool
	err     error
	picked  *core.Song
	cols    int
	rows    int
}

var (
	wizardHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	wizardRow    = lipgloss.NewStyle().PaddingLeft(2)
	wizardCursor = lipgloss.NewStyle().PaddingLeft(2).Background(lipgloss.Color("237"))
	wizardMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	wizardError  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// NewSearchModel creates the finder. recent seeds the suggestions.
func NewSearchModel(search SearchFunc, recent ...string) SearchModel {
	in := textinput.New()
	in.Placeholder = "Song, album or artist"
	in.Prompt = "› "
	in.CharLimit = 100
	in.Width = 50
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return SearchModel{
		query:  in,
		spin:   sp,
		search: search,
		recent: recent,
		cols:   80,
		rows:   20,
	}
}

// Init starts the cursor blink.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// queryChangedMsg fires once typing pauses; stale ones are ignored.
type queryChangedMsg struct{ seq int }

// songsMsg carries the result of request seq.
type songsMsg struct {
	seq   int
	songs []core.Song
	err   error
}

// suggesting reports whether the recent searches are on screen.
func (m SearchModel) suggesting() bool {
	return strings.TrimSpace(m.query.Value()) == "" && len(m.recent) > 0
}

func (m SearchModel) listLen() int {
	if m.suggesting() {
		return len(m.recent)
	}
	return len(m.songs)
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.onKey(msg)

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.query.Width = msg.Width - 4
		return m, nil

	case queryChangedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		q := strings.TrimSpace(m.query.Value())
		if q == "" {
			m.songs, m.err, m.pending = nil, nil, false
			return m, nil
		}
		m.pending = true
		return m, tea.Batch(m.spin.Tick, m.lookup(msg.seq, q))

	case songsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.pending = false
		m.songs, m.err = msg.songs, msg.err
		m.cursor = 0
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m SearchModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "ctrl+p":
		m.cursor = max(m.cursor-1, 0)
		return m, nil

	case "down", "ctrl+n":
		m.cursor = max(min(m.cursor+1, m.listLen()-1), 0)
		return m, nil

	case "tab":
		if m.suggesting() && m.cursor < len(m.recent) {
			m.query.SetValue(m.recent[m.cursor])
			m.query.CursorEnd()
			return m, m.queryChanged()
		}
		return m, nil

	case "enter":
		if m.suggesting() {
			if m.cursor < len(m.recent) {
				m.query.SetValue(m.recent[m.cursor])
				m.query.CursorEnd()
				return m, m.queryChanged()
			}
			return m, nil
		}
		if m.cursor < len(m.songs) {
			song := m.songs[m.cursor]
			m.picked = &song
			return m, tea.Quit
		}
		return m, nil
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.queryChanged())
}

// queryChanged bumps the request sequence and schedules a debounced lookup.
func (m *SearchModel) queryChanged() tea.Cmd {
	m.seq++
	m.cursor = 0
	seq := m.seq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return queryChangedMsg{seq: seq}
	})
}

func (m SearchModel) lookup(seq int, q string) tea.Cmd {
	search := m.search
	return func() tea.Msg {
		songs, err := search(q)
		return songsMsg{seq: seq, songs: songs, err: err}
	}
}

// View renders the finder.
func (m SearchModel) View() string {
	lines := []string{wizardHeader.Render("🔍 Find a song"), "", m.query.View(), ""}

	visible := max(m.rows-8, minVisibleRows)
	width := max(m.cols-6, 20)

	switch {
	case m.err != nil:
		lines = append(lines, wizardError.Render("Error: "+m.err.Error()))
	case m.pending:
		lines = append(lines, m.spin.View()+" Searching…")
	case m.suggesting():
		lines = append(lines, wizardMuted.Render("Recent searches"))
		for i, term := range m.recent {
			if i >= visible {
				break
			}
			lines = append(lines, m.row(i, runewidth.Truncate(term, width, "…")))
		}
	case len(m.songs) == 0 && strings.TrimSpace(m.query.Value()) != "":
		lines = append(lines, wizardMuted.Render("Nothing matched"))
	default:
		for i, song := range m.songs {
			if i >= visible {
				lines = append(lines, wizardMuted.Render(fmt.Sprintf("  +%d more", len(m.songs)-visible)))
				break
			}
			lines = append(lines, m.row(i, songRow(song, width)))
		}
	}

	help := "↑/↓ move • enter pick • esc cancel"
	if m.suggesting() {
		help = "↑/↓ move • tab/enter reuse • esc cancel"
	}
	lines = append(lines, "", wizardMuted.Render(help))
	return strings.Join(lines, "\n")
}

func (m SearchModel) row(i int, text string) string {
	if i == m.cursor {
		return wizardCursor.Render("▸ " + text)
	}
	return wizardRow.Render("  " + text)
}

// songRow lays a song out as "title  artists (year)" within width cells.
func songRow(s core.Song, width int) string {
	detail := s.PrimaryArtists
	if s.Year != "" {
		detail = strings.TrimSpace(detail + " (" + s.Year + ")")
	}
	title := runewidth.Truncate(s.Name, width*2/3, "…")
	room := width - runewidth.StringWidth(title) - 1
	if detail == "" || room < 4 {
		return title
	}
	return title + " " + wizardMuted.Render(runewidth.Truncate(detail, room, "…"))
}

// Selected returns the picked song, or nil if none.
func (m SearchModel) Selected() *core.Song {
	return m.picked
}

// RunSearch runs the finder and returns the picked song.
func RunSearch(search SearchFunc, recent ...string) (*core.Song, error) {
	final, err := tea.NewProgram(NewSearchModel(search, recent...), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	return final.(SearchModel).Selected(), nil
}
