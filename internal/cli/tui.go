package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
	"github.com/tessro/tapedeck/internal/tui"
)

var (
	tuiShell   string
	tuiRefresh int
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive player",
	Long: `Launch the interactive player in one of two shells.

The pod shell is a click-wheel menu:
  ↑/↓, j/k     Scroll the wheel
  Enter        Select
  Esc          Back
  Space        Play/Pause
  n/p          Next/previous song
  f            Like the playing song
  q, Ctrl+C    Quit

The deck shell is a cassette deck with a tape shelf:
  j/k          Pick a tape
  Enter        Insert the tape
  e            Eject
  /            Search
  c/r/d        Create, rename, delete a tape
  s            Share the selected tape
  ?            Help`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiShell, "shell", "s", "", "shell to use: pod or deck (default from config)")
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "refresh interval in milliseconds (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	shell := cfg.TUI.Shell
	if tuiShell != "" {
		shell = tuiShell
	}
	switch tui.Shell(shell) {
	case tui.ShellPod, tui.ShellDeck:
	default:
		return fmt.Errorf("unknown shell %q (want pod or deck)", shell)
	}

	refresh := cfg.TUI.RefreshInterval
	if tuiRefresh > 0 {
		refresh = tuiRefresh
	}

	// The shells own the terminal, so logs go to a file.
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(cfg.Storage.Path), "tapedeck.log")
	}

	return withApp(func(a *app.App) error {
		return tui.Run(a, tui.Options{
			Shell:           tui.Shell(shell),
			RefreshInterval: time.Duration(refresh) * time.Millisecond,
			Notify:          cfg.TUI.Notify,
			Version:         Version,
		})
	})
}
