package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/tui/styles"
)

// TrackList displays the songs of the inserted mix
type TrackList struct {
	offset int
}

// NewTrackList creates a new TrackList component
func NewTrackList() *TrackList {
	return &TrackList{}
}

// Render renders the track list panel. current is the playing index, or -1.
func (t *TrackList) Render(th styles.Theme, mix *core.Mix, current int, width, height int, focused bool) string {
	title := th.PanelTitle("Side A", focused)

	var content string
	switch {
	case mix == nil:
		content = th.MutedText.Render("No tape inserted")
	case mix.IsEmpty():
		content = th.MutedText.Render("This tape is blank")
	default:
		title = th.PanelTitle(styles.Truncate(mix.Title, width-6), focused)
		content = t.renderTracks(th, mix.Songs, current, width-4, height-4)
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

func (t *TrackList) renderTracks(th styles.Theme, songs []core.Song, current, width, maxLines int) string {
	// Leave room for the "more" indicator
	visible := maxLines - 1
	if visible < 1 {
		visible = 1
	}
	if current >= 0 {
		t.offset = follow(t.offset, current, visible)
	}
	if t.offset >= len(songs) {
		t.offset = 0
	}

	end := t.offset + visible
	if end > len(songs) {
		end = len(songs)
	}

	lines := make([]string, 0, end-t.offset+1)

	// "XX. " (4) + "▶ " (2) + " — " (3)
	const overhead = 9

	for i := t.offset; i < end; i++ {
		song := songs[i]
		num := fmt.Sprintf("%2d.", i+1)
		title, artist := fit(song.Name, song.PrimaryArtists, width-overhead)

		var line string
		if i == current {
			line = th.Playing.Render(fmt.Sprintf("%s ▶ %s — %s", num, title, artist))
		} else {
			line = fmt.Sprintf("%s   %s — %s",
				th.DimText.Render(num),
				title,
				th.MutedText.Render(artist))
		}
		lines = append(lines, line)
	}

	if end < len(songs) {
		lines = append(lines, th.DimText.Render(fmt.Sprintf("    ... and %d more", len(songs)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fit truncates title and artist to share available cells, giving the
// artist at least a third.
func fit(title, artist string, available int) (string, string) {
	tw, aw := styles.Width(title), styles.Width(artist)
	if tw+aw <= available {
		return title, artist
	}

	minArtist := available / 3
	if minArtist < 8 {
		minArtist = 8
	}
	if minArtist > available-8 {
		minArtist = available - 8
	}

	artistSpace := minArtist
	if aw < artistSpace {
		artistSpace = aw
	}
	return styles.Truncate(title, available-artistSpace), styles.Truncate(artist, artistSpace)
}
