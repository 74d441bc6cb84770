package wizard

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/tessro/tapedeck/internal/core"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled    bool
	searchFunc SearchFunc
	recent     []string
	mixes      []core.Mix
	activeID   string
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// SetSearchFunc sets the search function for the search wizard.
func (i *Interactive) SetSearchFunc(fn SearchFunc) {
	i.searchFunc = fn
}

// SetRecent sets the suggestions the search wizard opens with.
func (i *Interactive) SetRecent(terms []string) {
	i.recent = terms
}

// SetMixes sets the shelf shown by the tape picker.
func (i *Interactive) SetMixes(mixes []core.Mix, activeID string) {
	i.mixes = mixes
	i.activeID = activeID
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptSearch launches the search wizard if interactive mode is available.
// Returns the selected song, or nil if cancelled or not interactive.
func (i *Interactive) PromptSearch() (*core.Song, error) {
	if !i.CanInteract() || i.searchFunc == nil {
		return nil, nil
	}
	return RunSearch(i.searchFunc, i.recent...)
}

// PromptMix launches the tape picker if interactive mode is available.
// Returns the selected mix, or nil if cancelled or not interactive.
func (i *Interactive) PromptMix() (*core.Mix, error) {
	if !i.CanInteract() || len(i.mixes) == 0 {
		return nil, nil
	}
	return RunMixPicker(i.mixes, i.activeID)
}

// PickSong asks which of songs to use. With a single candidate, or without a
// terminal, the first song wins.
func (i *Interactive) PickSong(title string, songs []core.Song) (*core.Song, error) {
	if len(songs) == 0 {
		return nil, nil
	}
	if len(songs) == 1 || !i.CanInteract() {
		return &songs[0], nil
	}

	options := make([]huh.Option[int], 0, len(songs))
	for idx, s := range songs {
		options = append(options, huh.NewOption(SongLabel(s), idx))
	}

	var picked int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(options...).
				Value(&picked),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return &songs[picked], nil
}

// Confirm asks a yes/no question. Without a terminal it returns fallback.
func (i *Interactive) Confirm(title string, fallback bool) (bool, error) {
	if !i.CanInteract() {
		return fallback, nil
	}
	ok := fallback
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// SongLabel is the one-line description of s used in pickers.
func SongLabel(s core.Song) string {
	label := s.Name
	if s.PrimaryArtists != "" {
		label += " · " + s.PrimaryArtists
	}
	if s.Year != "" {
		label += " (" + s.Year + ")"
	}
	return label
}

// NeedsMix returns true if a mix argument is required but missing.
func NeedsMix(args []string) bool {
	return len(args) == 0
}
