package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the catalog cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached song details and lyrics",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		if err := a.Store.ClearCache(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		if !JSONOutput() {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared catalog cache")
		}
		return nil
	})
}
