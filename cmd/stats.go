package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli/handlers"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Long: `Show entry counts, average ratings, the longest streak of consecutive
journaled days and how often each rating was given.

Examples:
  chronos stats                  All time
  chronos stats --last 30        The past 30 days
  chronos stats --from 2024-01-01 --to 2024-12-31`,
	Args: cobra.NoArgs,
	Run: withServices(func(d *Deps, cmd *cobra.Command, _ []string) {
		from, to, ok := rangeFromFlags(d, cmd)
		if !ok {
			return
		}
		handlers.ShowStats(d, from, to)
	}),
}

func init() {
	rootCmd.AddCommand(statsCmd)

	addRangeFlags(statsCmd)
}
