package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/tui/styles"
)

// NowPlaying displays the deck: the current song, its progress and the volume
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Deck is what the now playing panel renders.
type Deck struct {
	State    core.PlaybackState
	MixTitle string
	Favorite bool
	// Progress overrides State.Progress when animating.
	Progress float64
}

// Render renders the now playing panel
func (n *NowPlaying) Render(th styles.Theme, d Deck, width, height int, focused bool) string {
	title := th.PanelTitle("Now Playing", focused)

	var content string
	switch {
	case d.State.ActiveMixID == "":
		content = th.MutedText.Render("Insert a tape")
	case d.State.Song == nil:
		content = th.MutedText.Render(d.MixTitle + " is blank")
	default:
		content = n.renderSong(th, d, width-4)
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

func (n *NowPlaying) renderSong(th styles.Theme, d Deck, width int) string {
	song := d.State.Song

	icon := th.StatusIcon(d.State.IsPlaying)
	name := song.Name
	if d.Favorite {
		name += " ♥"
	}
	title := th.Title.Render(styles.Truncate(name, width-4))

	artist := th.Subtitle.Render(styles.Truncate(song.PrimaryArtists, width-2))
	album := th.DimText.Render(styles.Truncate(song.Album.Name, width-2))

	// Account for times on either side
	progressWidth := width - 14
	if progressWidth < 10 {
		progressWidth = 10
	}
	total := d.State.Total()
	if total == 0 {
		total = song.Length()
	}
	elapsed := time.Duration(d.Progress * float64(total))
	progress := fmt.Sprintf("%s %s %s",
		formatDuration(elapsed),
		th.ProgressBar(d.Progress*100, progressWidth),
		formatDuration(total))

	status := ""
	switch {
	case d.State.Unplayable:
		status = th.ErrorText.Render("Unavailable")
	case d.State.StreamURL == "":
		status = th.DimText.Render("Loading…")
	}

	info := th.MutedText.Render(fmt.Sprintf("%s · track %d · vol %d%%",
		styles.Truncate(d.MixTitle, width/2), d.State.Index+1, int(d.State.Volume*100+0.5)))

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"  "+album,
		"",
		progress,
		status,
		info,
		n.renderControls(th, d.State),
	)
}

func (n *NowPlaying) renderControls(th styles.Theme, state core.PlaybackState) string {
	controls := th.DimText.Render("⏮ ")

	if state.IsPlaying {
		controls += th.Playing.Render("⏸")
	} else {
		controls += th.Paused.Render("▶")
	}

	controls += th.DimText.Render(" ⏭")

	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Render(controls)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
