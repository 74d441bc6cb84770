package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/tui/styles"
)

// Cassettes displays the mix shelf
type Cassettes struct {
	selected int
	offset   int
}

// NewCassettes creates a new Cassettes component
func NewCassettes() *Cassettes {
	return &Cassettes{}
}

// SelectNext selects the next mix
func (c *Cassettes) SelectNext() {
	c.selected++
}

// SelectPrev selects the previous mix
func (c *Cassettes) SelectPrev() {
	if c.selected > 0 {
		c.selected--
	}
}

// Selected returns the selected mix index
func (c *Cassettes) Selected() int {
	return c.selected
}

// Clamp keeps the selection inside a shelf of n mixes.
func (c *Cassettes) Clamp(n int) {
	if c.selected >= n {
		c.selected = n - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
}

// Render renders the cassette shelf
func (c *Cassettes) Render(th styles.Theme, mixes []core.Mix, activeID string, width, height int, focused bool) string {
	title := th.PanelTitle("Cassettes", focused)

	var content string
	if len(mixes) == 0 {
		content = th.MutedText.Render("No mixes yet")
	} else {
		content = c.renderMixes(th, mixes, activeID, width-4, height-4, focused)
	}

	panel := th.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (c *Cassettes) renderMixes(th styles.Theme, mixes []core.Mix, activeID string, width, maxLines int, focused bool) string {
	c.Clamp(len(mixes))
	if maxLines < 1 {
		maxLines = 1
	}
	c.offset = follow(c.offset, c.selected, maxLines)

	end := c.offset + maxLines
	if end > len(mixes) {
		end = len(mixes)
	}

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		mix := mixes[i]

		selector := "  "
		if focused && i == c.selected {
			selector = "▸ "
		}

		tape := lipgloss.NewStyle().Foreground(styles.MixColor(mix.Color)).Render("▭")

		active := ""
		if mix.ID == activeID {
			active = th.Playing.Render(" ●")
		}

		count := fmt.Sprintf("%d", len(mix.Songs))
		name := styles.Truncate(mix.Title, width-len(count)-8)
		if focused && i == c.selected {
			name = th.Highlight.Render(name)
		}

		lines = append(lines, fmt.Sprintf("%s%s %s %s%s", selector, tape, name, th.DimText.Render(count), active))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// follow scrolls offset so that cursor stays inside a window of size rows.
func follow(offset, cursor, size int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+size {
		return cursor - size + 1
	}
	return offset
}
