package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/tessro/tapedeck/internal/core"
	"github.com/tessro/tapedeck/internal/logger"
)

func init() {
	beeep.AppName = "tapedeck"
}

// notifySong raises a desktop notification for song.
func notifySong(song core.Song, log *logger.Logger) tea.Cmd {
	return func() tea.Msg {
		if err := beeep.Notify(song.Name, song.PrimaryArtists, ""); err != nil {
			log.Debug("desktop notification failed", "error", err)
		}
		return nil
	}
}
