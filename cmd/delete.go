package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli/handlers"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id|date>",
	Short: "Delete a journal entry",
	Long: `Delete an entry by its id or date.

The entry is shown and you are asked to confirm. The entries are backed up
before deleting; use 'chronos restore' to undo.

Examples:
  chronos delete 2024-08-03      Delete the entry for a date (with confirmation)
  chronos delete yesterday -y    Delete yesterday's entry without confirmation`,
	Args: cobra.ExactArgs(1),
	Run: withServices(func(d *Deps, cmd *cobra.Command, args []string) {
		yesFlag, _ := cmd.Flags().GetBool("yes")
		handlers.DeleteEntry(d, args[0], yesFlag)
	}),
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}
