package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/tapedeck/internal/nav"
	"github.com/tessro/tapedeck/internal/tui/styles"
)

// Menu renders one click-wheel menu screen
type Menu struct {
	offset int
}

// NewMenu creates a new Menu component
func NewMenu() *Menu {
	return &Menu{}
}

// Reset scrolls back to the top, e.g. after the view changed.
func (m *Menu) Reset() {
	m.offset = 0
}

// Render draws items with the selected row highlighted. Rows are clipped to
// height and scroll to keep the selection visible.
func (m *Menu) Render(th styles.Theme, items []nav.Item, selected, width, height int) string {
	if height < 1 {
		height = 1
	}
	if len(items) == 0 {
		return th.MutedText.Render("Empty")
	}
	m.offset = follow(m.offset, selected, height)
	if m.offset > len(items)-1 {
		m.offset = 0
	}

	end := m.offset + height
	if end > len(items) {
		end = len(items)
	}

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.row(th, items[i], i == selected, width))
	}
	return strings.Join(lines, "\n")
}

func (m *Menu) row(th styles.Theme, item nav.Item, selected bool, width int) string {
	suffix := ""
	if item.Kind == nav.KindNavigate {
		suffix = "›"
	}

	detail := item.Detail
	room := width - styles.Width(suffix) - 1
	if detail != "" {
		room -= styles.Width(detail) + 1
	}
	label := styles.Truncate(item.Label, room)

	gap := width - styles.Width(label) - styles.Width(detail) - styles.Width(suffix)
	if gap < 1 {
		gap = 1
	}
	text := label + strings.Repeat(" ", gap) + detail + suffix

	switch {
	case selected:
		return th.Selected.Width(width).Render(text)
	case item.Kind == nav.KindNote:
		return th.MutedText.Render(text)
	default:
		return lipgloss.NewStyle().Foreground(th.Text).Render(text)
	}
}
