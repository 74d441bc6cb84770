package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/tapedeck/internal/core"
)

// MixModel is the bubbletea model for the tape picker.
type MixModel struct {
	mixes    []core.Mix
	activeID string
	cursor   int
	selected *core.Mix
	width    int
	height   int
}

// Styles for the tape picker
var (
	mixTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	mixItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	mixSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	mixActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	mixDetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var shellColors = map[core.Color]lipgloss.Color{
	core.ColorOrange: lipgloss.Color("208"),
	core.ColorPurple: lipgloss.Color("135"),
	core.ColorWhite:  lipgloss.Color("255"),
	core.ColorGreen:  lipgloss.Color("77"),
	core.ColorRed:    lipgloss.Color("196"),
}

// NewMixModel creates a tape picker. activeID marks the inserted tape.
func NewMixModel(mixes []core.Mix, activeID string) MixModel {
	return MixModel{
		mixes:    mixes,
		activeID: activeID,
		width:    80,
		height:   20,
	}
}

// Init initializes the model.
func (m MixModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MixModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if len(m.mixes) > 0 && m.cursor < len(m.mixes) {
				m.selected = &m.mixes[m.cursor]
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.mixes)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			if len(m.mixes) > 0 {
				m.cursor = len(m.mixes) - 1
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m MixModel) View() string {
	var b strings.Builder

	b.WriteString(mixTitleStyle.Render("📼 Pick a tape"))
	b.WriteString("\n\n")

	if len(m.mixes) == 0 {
		b.WriteString(mixDetailStyle.Render("The shelf is empty. Create a mix with 'tapedeck mix create'."))
	} else {
		for i, mix := range m.mixes {
			var line strings.Builder

			line.WriteString(lipgloss.NewStyle().Foreground(shellColors[mix.Color]).Render("■ "))
			line.WriteString(mix.Title)
			line.WriteString(mixDetailStyle.Render(fmt.Sprintf(" (%d songs)", len(mix.Songs))))
			if mix.ID == m.activeID {
				line.WriteString(mixActiveStyle.Render(" ▶ inserted"))
			}

			if i == m.cursor {
				b.WriteString(mixSelectedStyle.Render("▸ " + line.String()))
			} else {
				b.WriteString(mixItemStyle.Render("  " + line.String()))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mixDetailStyle.Render("↑/↓ navigate • enter select • esc quit"))

	return b.String()
}

// Selected returns the selected mix, or nil if none.
func (m MixModel) Selected() *core.Mix {
	return m.selected
}

// RunMixPicker runs the tape picker and returns the selected mix.
func RunMixPicker(mixes []core.Mix, activeID string) (*core.Mix, error) {
	model := NewMixModel(mixes, activeID)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(MixModel).Selected(), nil
}
