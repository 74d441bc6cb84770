package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
)

var searchNoHistory bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the song catalog",
	Long: `Search the JioSaavn catalog. Results are ordered newest release first.

Examples:
  tapedeck search kushi
  tapedeck search "gabbar singh" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchNoHistory, "no-history", false, "do not record the query in recent searches")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	return withApp(func(a *app.App) error {
		results := a.Catalog.Search(cmd.Context(), query)
		if !searchNoHistory {
			if _, err := a.History.Add(query); err != nil {
				a.Logger.Warn("failed to save search", "error", err)
			}
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, results)
		}
		if len(results) == 0 {
			_, _ = fmt.Fprintf(out, "No results for %q\n", query)
			return nil
		}

		t := NewTable(out, "#", "Title", "Artists", "Album", "Year", "Plays", "ID")
		for i, s := range results {
			plays := ""
			if s.PlayCount > 0 {
				plays = humanize.Comma(int64(s.PlayCount))
			}
			t.AppendRow([]any{
				i + 1,
				TruncateString(s.Name, 40),
				TruncateString(s.PrimaryArtists, 30),
				TruncateString(s.Album.Name, 30),
				s.Year,
				plays,
				s.ID,
			})
		}
		t.Render()
		return nil
	})
}
