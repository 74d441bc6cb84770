package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/tui/styles"
)

// HistoryEntry is a song the deck played this session
type HistoryEntry struct {
	Song     core.Song
	PlayedAt time.Time
}

// MaxHistory bounds the session history
const MaxHistory = 50

// PushHistory adds song to the front of entries.
func PushHistory(entries []HistoryEntry, song core.Song, at time.Time) []HistoryEntry {
	entries = append([]HistoryEntry{{Song: song, PlayedAt: at}}, entries...)
	if len(entries) > MaxHistory {
		entries = entries[:MaxHistory]
	}
	return entries
}

// History displays recently played songs
type History struct{}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel
func (h *History) Render(th styles.Theme, entries []HistoryEntry, width, height int, focused bool) string {
	title := th.PanelTitle("Played", focused)

	var content string
	if len(entries) == 0 {
		content = th.MutedText.Render("Nothing played yet")
	} else {
		content = h.renderHistory(th, entries, width-4, height-4)
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

func (h *History) renderHistory(th styles.Theme, entries []HistoryEntry, width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	// icon (2) + " — " (3) + gap before the time
	const overhead = 7

	for i, entry := range entries {
		if i >= maxLines {
			break
		}

		timeAgo := formatTimeAgo(entry.PlayedAt)
		title, artist := fit(entry.Song.Name, entry.Song.PrimaryArtists, width-overhead-len(timeAgo))

		info := fmt.Sprintf("%s — %s", title, artist)
		padding := width - 2 - styles.Width(info) - len(timeAgo)
		if padding < 1 {
			padding = 1
		}

		lines = append(lines, fmt.Sprintf("%s %s%s%s",
			th.DimText.Render("♪"),
			info,
			lipgloss.NewStyle().Width(padding).Render(""),
			th.DimText.Render(timeAgo)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return t.Format("Jan 2")
}
