package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli/handlers"
)

// exportCmd represents the export parent command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journal entries to various formats",
	Long: `Export journal entries for programmatic use, backup, or migration.

Available formats:
  json    Export entries as JSON
  csv     Export entries as CSV

Both accept the same filters as 'chronos list'.

Examples:
  chronos export json > journal.json
  chronos export csv --last 30 > month.csv`,
}

// exportJSONCmd represents the export json command
var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export journal entries as JSON",
	Long: `Export entries to JSON, oldest first. Output includes metadata (export
timestamp, total entries, filter criteria) and an array of entry objects.`,
	Args: cobra.NoArgs,
	Run: withServices(func(d *Deps, cmd *cobra.Command, _ []string) {
		f, ok := filterFromFlags(d, cmd)
		if !ok {
			return
		}
		handlers.ExportJSON(d, f)
	}),
}

// exportCSVCmd represents the export csv command
var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export journal entries as CSV",
	Long:  `Export entries to CSV with a header row, oldest first.`,
	Args:  cobra.NoArgs,
	Run: withServices(func(d *Deps, cmd *cobra.Command, _ []string) {
		f, ok := filterFromFlags(d, cmd)
		if !ok {
			return
		}
		handlers.ExportCSV(d, f)
	}),
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportCSVCmd)

	addFilterFlags(exportJSONCmd)
	addFilterFlags(exportCSVCmd)
}
