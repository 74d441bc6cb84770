package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
	"github.com/tessro/tapedeck/internal/core"
	tderr "github.com/tessro/tapedeck/internal/errors"
)

var songCmd = &cobra.Command{
	Use:   "song <id>",
	Short: "Show catalog details for a song",
	Args:  cobra.ExactArgs(1),
	RunE:  runSong,
}

var lyricsCmd = &cobra.Command{
	Use:   "lyrics <song-id>",
	Short: "Print the lyrics of a song",
	Long: `Print the lyrics of a song. The catalog is asked first; when it has
none, LRCLib is searched by track and artist name.`,
	Args: cobra.ExactArgs(1),
	RunE: runLyrics,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <song-id>",
	Short: "Print the highest-quality stream URL of a song",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(songCmd)
	rootCmd.AddCommand(lyricsCmd)
	rootCmd.AddCommand(resolveCmd)
}

func lookupSong(ctx context.Context, a *app.App, id string) (core.Song, error) {
	song := a.Catalog.GetSongDetails(ctx, id)
	if song == nil {
		return core.Song{}, tderr.WithSuggestion(
			fmt.Errorf("%w: %s", tderr.ErrSongNotFound, id),
			"Find song ids with 'tapedeck search'")
	}
	return *song, nil
}

func runSong(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		song, err := lookupSong(cmd.Context(), a, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, song)
		}

		t := NewTable(out)
		t.AppendRow([]any{"Title", song.Name})
		t.AppendRow([]any{"Artists", strings.Join(song.Artists(), ", ")})
		t.AppendRow([]any{"Album", song.Album.Name})
		t.AppendRow([]any{"Year", song.Year})
		t.AppendRow([]any{"Duration", FormatDuration(song.Duration)})
		if song.Language != "" {
			t.AppendRow([]any{"Language", song.Language})
		}
		if song.Label != "" {
			t.AppendRow([]any{"Label", song.Label})
		}
		if song.PlayCount > 0 {
			t.AppendRow([]any{"Plays", humanize.Comma(int64(song.PlayCount))})
		}
		t.AppendRow([]any{"Playable", StatusIcon(song.Playable())})
		if thumb := song.Thumbnail(); thumb != "" {
			t.AppendRow([]any{"Artwork", thumb})
		}
		t.Render()
		return nil
	})
}

func runLyrics(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		ctx := cmd.Context()
		song, err := lookupSong(ctx, a, args[0])
		if err != nil {
			return err
		}
		lyrics := a.Catalog.Lyrics(ctx, song)

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, map[string]any{"song": song.ID, "lyrics": lyrics})
		}
		if lyrics == "" {
			_, _ = fmt.Fprintf(out, "No lyrics found for %s\n", song.Name)
			return nil
		}
		_, _ = fmt.Fprintln(out, lyrics)
		return nil
	})
}

func runResolve(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		ctx := cmd.Context()
		song, err := lookupSong(ctx, a, args[0])
		if err != nil {
			return err
		}
		url := a.Catalog.Resolve(ctx, song)
		if url == "" {
			return fmt.Errorf("%w: %s", tderr.ErrUnplayable, song.Name)
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, map[string]string{"song": song.ID, "url": url})
		}
		_, _ = fmt.Fprintln(out, url)
		return nil
	})
}
