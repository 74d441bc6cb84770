package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
	"github.com/tessro/tapedeck/internal/browser"
	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
	"github.com/tessro/tapedeck/internal/tui"
	"github.com/tessro/tapedeck/internal/wizard"
)

var (
	mixColorFlag string
	mixYes       bool
	mixSongID    string
	mixFirst     bool
	shareQR      bool
	shareCopy    bool
	shareOpen    bool
)

var mixCmd = &cobra.Command{
	Use:     "mix",
	Aliases: []string{"mixes", "tape"},
	Short:   "Manage the mixes on your shelf",
	Long: `Commands for creating, editing and sharing mixes.

A mix can be referenced by its id or by its title (case-insensitive).
Without a mix argument an interactive picker is shown on a terminal.`,
}

var mixListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List mixes",
	RunE:    runMixList,
}

var mixShowCmd = &cobra.Command{
	Use:   "show [mix]",
	Short: "Show the songs on a mix",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMixShow,
}

var mixCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create an empty mix",
	Long: `Create an empty mix. Without a title the mix is named "Mix N".

Examples:
  tapedeck mix create
  tapedeck mix create "Road Trip" --color purple`,
	RunE: runMixCreate,
}

var mixRenameCmd = &cobra.Command{
	Use:   "rename <mix> <title>",
	Short: "Rename a mix",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMixRename,
}

var mixDeleteCmd = &cobra.Command{
	Use:     "delete [mix]",
	Aliases: []string{"rm"},
	Short:   "Delete a mix",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runMixDelete,
}

var mixAddCmd = &cobra.Command{
	Use:   "add <mix> [query]",
	Short: "Search the catalog and add a song to a mix",
	Long: `Search the catalog and add a song to a mix.

On a terminal you pick from the results; otherwise the newest release wins.
Without a query the interactive search wizard opens.

Examples:
  tapedeck mix add "Road Trip" kushi
  tapedeck mix add 1 --id 5WXAlMNt
  tapedeck mix add 1 gabbar singh --first`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMixAdd,
}

var mixRemoveCmd = &cobra.Command{
	Use:   "remove <mix> <position>",
	Short: "Remove the song at a position (1-based)",
	Args:  cobra.ExactArgs(2),
	RunE:  runMixRemove,
}

var mixMoveCmd = &cobra.Command{
	Use:   "move <mix> <from> <to>",
	Short: "Move a song to another position (1-based)",
	Args:  cobra.ExactArgs(3),
	RunE:  runMixMove,
}

var mixShareCmd = &cobra.Command{
	Use:   "share [mix]",
	Short: "Print a share link for a mix",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMixShare,
}

var mixImportLinkCmd = &cobra.Command{
	Use:   "import-link <link>",
	Short: "Add a shared mix to your shelf",
	Long: `Add a shared mix to your shelf. The argument may be a full share link
or just the value of its ?mix= parameter. Songs that can no longer be found
in the catalog are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runMixImportLink,
}

func init() {
	mixCreateCmd.Flags().StringVar(&mixColorFlag, "color", "", "shell color: orange, purple, white, green or red (default random)")
	mixDeleteCmd.Flags().BoolVarP(&mixYes, "yes", "y", false, "delete without asking")
	mixAddCmd.Flags().StringVar(&mixSongID, "id", "", "add the song with this catalog id")
	mixAddCmd.Flags().BoolVar(&mixFirst, "first", false, "add the first result without asking")
	mixShareCmd.Flags().BoolVar(&shareQR, "qr", false, "also print a QR code")
	mixShareCmd.Flags().BoolVar(&shareCopy, "copy", false, "copy the link to the clipboard")
	mixShareCmd.Flags().BoolVar(&shareOpen, "open", false, "open the link in a browser")

	mixCmd.AddCommand(mixListCmd)
	mixCmd.AddCommand(mixShowCmd)
	mixCmd.AddCommand(mixCreateCmd)
	mixCmd.AddCommand(mixRenameCmd)
	mixCmd.AddCommand(mixDeleteCmd)
	mixCmd.AddCommand(mixAddCmd)
	mixCmd.AddCommand(mixRemoveCmd)
	mixCmd.AddCommand(mixMoveCmd)
	mixCmd.AddCommand(mixShareCmd)
	mixCmd.AddCommand(mixImportLinkCmd)
	rootCmd.AddCommand(mixCmd)
}

// resolveMix finds the mix named by args[0], or asks for one on a terminal.
func resolveMix(a *app.App, args []string) (core.Mix, error) {
	if wizard.NeedsMix(args) {
		in := wizard.NewInteractive()
		in.SetMixes(a.Library.List(), a.Engine.State().ActiveMixID)
		picked, err := in.PromptMix()
		if err != nil {
			return core.Mix{}, err
		}
		if picked == nil {
			return core.Mix{}, tderr.WithSuggestion(errors.New("no mix selected"), "Pass a mix id or title")
		}
		return *picked, nil
	}
	return findMix(a, args[0])
}

// findMix looks a mix up by id, then by title.
func findMix(a *app.App, ref string) (core.Mix, error) {
	if mix, ok := a.Library.Get(ref); ok {
		return mix, nil
	}
	if mix, ok := lo.Find(a.Library.List(), func(m core.Mix) bool {
		return strings.EqualFold(m.Title, strings.TrimSpace(ref))
	}); ok {
		return mix, nil
	}
	return core.Mix{}, fmt.Errorf("%w: %s", tderr.ErrMixNotFound, ref)
}

// parsePosition converts a 1-based position on mix to an index.
func parsePosition(mix core.Mix, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(mix.Songs) {
		return 0, fmt.Errorf("%w: position %q (mix has %d songs)", tderr.ErrSongNotFound, s, len(mix.Songs))
	}
	return n - 1, nil
}

func totalDuration(songs []core.Song) int {
	return lo.SumBy(songs, func(s core.Song) int { return s.Duration })
}

func runMixList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		out := cmd.OutOrStdout()
		mixes := a.Library.List()
		if JSONOutput() {
			return printJSON(out, mixes)
		}
		if len(mixes) == 0 {
			_, _ = fmt.Fprintln(out, "No mixes yet. Create one with 'tapedeck mix create'.")
			return nil
		}

		t := NewTable(out, "", "ID", "Title", "Songs", "Length")
		for _, m := range mixes {
			t.AppendRow([]any{colorSwatch(m.Color), m.ID, m.Title, len(m.Songs), FormatDuration(totalDuration(m.Songs))})
		}
		t.Render()
		return nil
	})
}

func runMixShow(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		mix, err := resolveMix(a, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, mix)
		}

		_, _ = fmt.Fprintf(out, "%s %s\n", colorSwatch(mix.Color), mix.Title)
		if len(mix.Songs) == 0 {
			_, _ = fmt.Fprintln(out, "This tape is blank. Add songs with 'tapedeck mix add'.")
			return nil
		}

		t := NewTable(out, "", "#", "Title", "Artists", "Album", "Time")
		for i, s := range mix.Songs {
			t.AppendRow([]any{
				lo.Ternary(i == mix.CurrentSongIndex, "▶", ""),
				i + 1,
				TruncateString(s.Name, 40),
				TruncateString(s.PrimaryArtists, 30),
				TruncateString(s.Album.Name, 30),
				FormatDuration(s.Duration),
			})
		}
		t.AppendFooter([]any{"", "", fmt.Sprintf("%d songs", len(mix.Songs)), "", "", FormatDuration(totalDuration(mix.Songs))})
		t.Render()
		return nil
	})
}

func runMixCreate(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			title = a.Library.NextMixTitle()
		}
		mix, err := a.Library.CreateMix(title, core.Color(mixColorFlag))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, mix)
		}
		_, _ = fmt.Fprintf(out, "Created %s %s (%s)\n", colorSwatch(mix.Color), mix.Title, mix.ID)
		return nil
	})
}

func runMixRename(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		mix, err := findMix(a, args[0])
		if err != nil {
			return err
		}
		renamed, err := a.Library.Rename(mix.ID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, renamed)
		}
		_, _ = fmt.Fprintf(out, "Renamed %q to %q\n", mix.Title, renamed.Title)
		return nil
	})
}

func runMixDelete(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		mix, err := resolveMix(a, args)
		if err != nil {
			return err
		}

		if !mixYes {
			in := wizard.NewInteractive()
			if !in.CanInteract() {
				return tderr.WithSuggestion(errors.New("refusing to delete without confirmation"), "Pass --yes to delete without asking")
			}
			ok, err := in.Confirm(fmt.Sprintf("Delete %q and its %d songs?", mix.Title, len(mix.Songs)), false)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		if err := a.Library.Delete(mix.ID); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, map[string]string{"status": "deleted", "id": mix.ID})
		}
		_, _ = fmt.Fprintf(out, "Deleted %s\n", mix.Title)
		return nil
	})
}

func runMixAdd(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		ctx := cmd.Context()
		mix, err := findMix(a, args[0])
		if err != nil {
			return err
		}

		in := wizard.NewInteractive()
		in.SetEnabled(!mixFirst)

		var song *core.Song
		query := strings.TrimSpace(strings.Join(args[1:], " "))
		switch {
		case mixSongID != "":
			song = a.Catalog.GetSongDetails(ctx, mixSongID)
			if song == nil {
				return fmt.Errorf("%w: %s", tderr.ErrSongNotFound, mixSongID)
			}

		case query == "":
			in.SetSearchFunc(func(q string) ([]core.Song, error) {
				return a.Catalog.Search(ctx, q), nil
			})
			in.SetRecent(a.History.List())
			song, err = in.PromptSearch()
			if err != nil {
				return err
			}
			if song == nil {
				return tderr.WithSuggestion(errors.New("no song selected"), "Pass a search query or --id")
			}

		default:
			results := a.Catalog.Search(ctx, query)
			if len(results) == 0 {
				return tderr.WithSuggestion(fmt.Errorf("no results for %q", query), "Try a different spelling or the album name")
			}
			if _, err := a.History.Add(query); err != nil {
				a.Logger.Warn("failed to save search", "error", err)
			}
			song, err = in.PickSong(fmt.Sprintf("Add to %s", mix.Title), results)
			if err != nil {
				return err
			}
		}

		added, err := a.Library.AppendSong(mix.ID, *song)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, map[string]any{"added": added, "mix": mix.ID, "song": song})
		}
		if !added {
			_, _ = fmt.Fprintf(out, "%s is already on %s\n", song.Name, mix.Title)
			return nil
		}
		_, _ = fmt.Fprintf(out, "Added %s to %s\n", wizard.SongLabel(*song), mix.Title)
		return nil
	})
}

func runMixRemove(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		mix, err := findMix(a, args[0])
		if err != nil {
			return err
		}
		idx, err := parsePosition(mix, args[1])
		if err != nil {
			return err
		}
		if err := a.Library.RemoveSong(mix.ID, idx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, map[string]any{"status": "removed", "mix": mix.ID, "song": mix.Songs[idx].ID})
		}
		_, _ = fmt.Fprintf(out, "Removed %s from %s\n", mix.Songs[idx].Name, mix.Title)
		return nil
	})
}

func runMixMove(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		mix, err := findMix(a, args[0])
		if err != nil {
			return err
		}
		from, err := parsePosition(mix, args[1])
		if err != nil {
			return err
		}
		to, err := parsePosition(mix, args[2])
		if err != nil {
			return err
		}
		if err := a.Library.MoveSong(mix.ID, from, to); err != nil {
			return err
		}

		if !JSONOutput() {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to position %d\n", mix.Songs[from].Name, to+1)
		}
		return nil
	})
}

func runMixShare(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		mix, err := resolveMix(a, args)
		if err != nil {
			return err
		}
		link := a.ShareURL(mix)

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, map[string]string{"mix": mix.ID, "url": link})
		}
		_, _ = fmt.Fprintln(out, link)

		if shareQR {
			code, err := tui.QRCode(link)
			if err != nil {
				return fmt.Errorf("failed to render QR code: %w", err)
			}
			_, _ = fmt.Fprintln(out, code)
		}
		if shareCopy {
			if err := clipboard.WriteAll(link); err != nil {
				return fmt.Errorf("failed to copy link: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
		}
		if shareOpen {
			if err := browser.Open(link); err != nil {
				return fmt.Errorf("failed to open browser: %w", err)
			}
		}
		return nil
	})
}

func runMixImportLink(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		res, err := a.ImportShared(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, map[string]any{
				"mix":              res.Mix,
				"already_imported": res.AlreadyImported,
				"dropped":          res.Dropped,
			})
		}
		if res.AlreadyImported {
			_, _ = fmt.Fprintf(out, "%s is already on your shelf\n", res.Mix.Title)
			return nil
		}
		_, _ = fmt.Fprintf(out, "Imported %s (%d songs)\n", res.Mix.Title, len(res.Mix.Songs))
		if res.Dropped > 0 {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %d songs that are no longer available\n", res.Dropped)
		}
		return nil
	})
}
