package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Back up every mix to a JSON file",
	Long: `Write every mix to a JSON backup. Without a file, or with "-",
the backup is written to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore mixes from a JSON backup",
	Long: `Add the mixes from a backup written by 'tapedeck export'. Mixes whose id
is already on the shelf are skipped, as are malformed entries and anything
past the shelf limit.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		if len(args) == 0 || args[0] == "-" {
			return a.Library.Export(cmd.OutOrStdout())
		}

		path := args[0]
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := a.Library.Export(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write backup: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d mixes to %s (%s)\n",
			a.Library.Len(), path, humanize.Bytes(uint64(info.Size())))
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()

		report, err := a.Library.Import(f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, map[string]any{
				"added":      report.Added,
				"invalid":    report.Invalid,
				"duplicate":  report.Duplicate,
				"over_limit": report.OverLimit,
				"truncated":  report.Truncated,
			})
		}

		_, _ = fmt.Fprintf(out, "Imported %d mixes\n", len(report.Added))
		for _, m := range report.Added {
			_, _ = fmt.Fprintf(out, "  %s %s (%d songs)\n", colorSwatch(m.Color), m.Title, len(m.Songs))
		}
		if report.Skipped() > 0 {
			_, _ = fmt.Fprintf(out, "Skipped %d: %d invalid, %d already on the shelf, %d over the limit\n",
				report.Skipped(), report.Invalid, report.Duplicate, report.OverLimit)
		}
		if report.Truncated > 0 {
			_, _ = fmt.Fprintf(out, "Shortened %d long titles\n", report.Truncated)
		}
		return nil
	})
}
