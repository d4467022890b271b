package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli/handlers"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show average ratings per month",
	Long: `Show the number of entries and the average physical and mental ratings
for each month, newest first. Accepts the same filters as 'chronos list'.

Examples:
  chronos report
  chronos report --from 2024-01-01
  chronos report -s run`,
	Args: cobra.NoArgs,
	Run: withServices(func(d *Deps, cmd *cobra.Command, _ []string) {
		f, ok := filterFromFlags(d, cmd)
		if !ok {
			return
		}
		handlers.ReportByMonth(d, f)
	}),
}

func init() {
	rootCmd.AddCommand(reportCmd)

	addFilterFlags(reportCmd)
}
