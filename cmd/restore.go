package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli/handlers"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [n]",
	Short: "Restore the entries from a backup",
	Long: `Restore the entries from a backup. Up to 3 backups are kept; 1 is the
most recent. The current entries are backed up before restoring.

Examples:
  chronos restore       Restore from most recent backup
  chronos restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: withServices(func(d *Deps, _ *cobra.Command, args []string) {
		handlers.RestoreBackup(d, args)
	}),
}

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the entries",
	Long:  `Copy the current entries into backup slot 1, shifting older backups down. The oldest of 3 is dropped.`,
	Args:  cobra.NoArgs,
	Run: withServices(func(d *Deps, _ *cobra.Command, _ []string) {
		handlers.CreateBackup(d)
	}),
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(backupCmd)
}
