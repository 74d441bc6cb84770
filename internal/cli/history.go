package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/tapedeck/internal/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget recent searches",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		terms := a.History.List()
		out := cmd.OutOrStdout()
		if JSONOutput() {
			return printJSON(out, terms)
		}
		if len(terms) == 0 {
			_, _ = fmt.Fprintln(out, "No recent searches")
			return nil
		}
		for _, term := range terms {
			_, _ = fmt.Fprintln(out, term)
		}
		return nil
	})
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		if err := a.History.Clear(); err != nil {
			return err
		}
		if !JSONOutput() {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared recent searches")
		}
		return nil
	})
}
