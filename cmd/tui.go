package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/tui"
)

// runProgram starts the interactive journal; tests replace it
var runProgram = tui.Run

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive journal",
	Long: `Launch the interactive terminal journal.

Today's view edits the current draft: ratings are saved as soon as they
change and text is saved shortly after you stop typing. Leaving the terminal
and coming back on another day finalizes the previous day, just like
staying open past midnight.

Views available:
  - Today: Rate the day and write about it
  - History: Browse entries by year, month and day
  - Stats: Averages, streaks and rating spread
  - Config: View configuration and pick a theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-4: Jump to specific view
  - j/k or arrows: Navigate within lists
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch the interactive journal")
}

// runTUI opens the services and runs the TUI application
func runTUI() {
	if !ready() {
		return
	}
	if err := runProgram(deps.Services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI()
		return true
	}
	return false
}
