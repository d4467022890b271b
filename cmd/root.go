package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli/handlers"
)

var (
	// configPath overrides the config file location (--config)
	configPath string
	// debugMode turns on debug logging (--debug)
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "chronos",
	Short: "A daily health journal",
	Long: `chronos is a daily health journal: rate how you feel physically and
mentally from 0 to 10 and write a few lines about the day.

Today's ratings and text are kept as a draft that is saved as you go. When
the day ends the draft becomes a permanent entry.

Usage:
  chronos                                 Show today's draft
  chronos rate <physical|mental> <0-10>   Rate today
  chronos write <text>                    Replace today's text (--append to add a line)
  chronos finalize [date]                 Turn a draft into an entry now
  chronos drafts                          List stored drafts
  chronos list                            List entries (--search, --min-physical, --from ...)
  chronos show <date>                     Show one entry
  chronos browse [year [month]]           Walk entries by year and month
  chronos delete <id|date>                Delete an entry (with confirmation)
  chronos stats                           Show statistics
  chronos report                          Show averages per month
  chronos export <json|csv>               Export entries
  chronos validate                        Check storage health
  chronos backup                          Back up the entries
  chronos restore [n]                     Restore from backup (default: most recent)
  chronos tui                             Launch the interactive journal

Dates accept YYYY-MM-DD, DD/MM/YYYY, today and yesterday.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		if !ready() {
			return
		}
		handlers.ShowToday(deps)
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check storage health",
	Long: `Validate every record in the store and report on its health, including
entries with invalid dates or ratings and records that cannot be decoded.`,
	Args: cobra.NoArgs,
	Run: withServices(func(d *Deps, _ *cobra.Command, _ []string) {
		handlers.ValidateStorage(d)
	}),
}

func init() {
	rootCmd.AddCommand(validateCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is <config dir>/chronos/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"chronos version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
