package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli/handlers"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "search"},
	Short:   "List journal entries",
	Long: `List finalized entries, newest first.

Filtering:
  --search/-s <keyword>    Case-insensitive search in the entry text
  --min-physical <n>       Physical rating at least n
  --min-mental <n>         Mental rating at least n
  --from/--to <date>       Inclusive date range
  --last <n>               The last n days, including today

Examples:
  chronos list                          All entries
  chronos list --last 7                 The past week
  chronos list -s walk --min-mental 6   Good days that mention a walk`,
	Args: cobra.NoArgs,
	Run: withServices(func(d *Deps, cmd *cobra.Command, _ []string) {
		f, ok := filterFromFlags(d, cmd)
		if !ok {
			return
		}
		handlers.ListEntries(d, f)
	}),
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <date>",
	Short: "Show the entry for a date",
	Long: `Show the full entry for a date.

Examples:
  chronos show yesterday
  chronos show 2024-08-03
  chronos show 03/08/2024`,
	Args: cobra.ExactArgs(1),
	Run: withServices(func(d *Deps, _ *cobra.Command, args []string) {
		handlers.ShowEntry(d, args[0])
	}),
}

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse [year [month]]",
	Short: "Browse entries by year and month",
	Long: `Walk the journal history.

Examples:
  chronos browse           List the years with entries
  chronos browse 2024      List the months of 2024 with entries
  chronos browse 2024 8    List the entries of August 2024`,
	Args: cobra.MaximumNArgs(2),
	Run: withServices(func(d *Deps, _ *cobra.Command, args []string) {
		handlers.Browse(d, args)
	}),
}

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample entries",
	Long:  `Insert two sample entries (2024-08-03 and 2023-09-07) unless those dates already have entries.`,
	Args:  cobra.NoArgs,
	Run: withServices(func(d *Deps, _ *cobra.Command, _ []string) {
		handlers.Seed(d)
	}),
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(seedCmd)

	addFilterFlags(listCmd)
}
