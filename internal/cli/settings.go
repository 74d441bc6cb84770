package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
	"github.com/tessro/tapedeck/internal/core"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show player preferences",
	Long: `Show the persisted player preferences. These are the settings the
shells change as you use them; the config file only seeds them on first run.`,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a preference",
	Long: `Change a preference.

Supported keys:
  volume         Volume (0-100)
  theme          classic, black, silver or dark
  click-sounds   Wheel click feedback (true/false)

Examples:
  tapedeck settings set volume 40
  tapedeck settings set theme dark`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default preferences",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func printSettings(cmd *cobra.Command, s core.Settings) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, s)
	}
	t := NewTable(out)
	t.AppendRow([]any{"volume", fmt.Sprintf("%d%%", int(s.Volume*100+0.5))})
	t.AppendRow([]any{"theme", s.Theme})
	t.AppendRow([]any{"click-sounds", s.ClickSounds})
	if s.LastPlayedSongID != "" {
		t.AppendRow([]any{"last played", s.LastPlayedSongID})
	}
	t.Render()
	return nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		return printSettings(cmd, a.Settings.Load())
	})
}

// settingsMutation parses a key/value pair into an update function.
func settingsMutation(key, value string) (func(*core.Settings), error) {
	switch strings.ToLower(key) {
	case "volume":
		v, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil || v < 0 || v > 100 {
			return nil, fmt.Errorf("volume must be between 0 and 100, got %q", value)
		}
		return func(s *core.Settings) { s.Volume = float64(v) / 100 }, nil

	case "theme":
		theme := core.Theme(strings.ToLower(value))
		if !theme.Valid() {
			return nil, fmt.Errorf("invalid theme %q (want classic, black, silver or dark)", value)
		}
		return func(s *core.Settings) { s.Theme = theme }, nil

	case "click-sounds", "click_sounds":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("click-sounds must be true or false, got %q", value)
		}
		return func(s *core.Settings) { s.ClickSounds = on }, nil
	}
	return nil, fmt.Errorf("unknown setting: %s", key)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	mutate, err := settingsMutation(args[0], args[1])
	if err != nil {
		return err
	}
	return withApp(func(a *app.App) error {
		s, err := a.Settings.Update(mutate)
		if err != nil {
			return err
		}
		return printSettings(cmd, s)
	})
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		s, err := a.Settings.Reset()
		if err != nil {
			return err
		}
		return printSettings(cmd, s)
	})
}
