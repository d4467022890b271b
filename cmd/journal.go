package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli/handlers"
)

// rateCmd represents the rate command
var rateCmd = &cobra.Command{
	Use:   "rate <physical|mental> [0-10]",
	Short: "Rate today physically or mentally",
	Long: `Record a physical or mental rating for today. The draft is saved at once.

A rating of 0 means "unrated": it is kept while you edit but on its own it
does not make the day worth an entry.

Examples:
  chronos rate physical 7      Rate today's physical health 7/10
  chronos rate m 4             Rate today's mental health 4/10
  chronos rate mental --clear  Remove today's mental rating`,
	Args: cobra.RangeArgs(1, 2),
	Run: withServices(func(d *Deps, cmd *cobra.Command, args []string) {
		if clearFlag, _ := cmd.Flags().GetBool("clear"); clearFlag {
			handlers.ClearRating(d, args[0])
			return
		}
		if len(args) < 2 {
			_, _ = fmt.Fprintln(d.Stderr, "Error: Missing rating value")
			_, _ = fmt.Fprintln(d.Stderr, "Usage: chronos rate <physical|mental> <0-10>")
			d.Exit(1)
			return
		}
		handlers.Rate(d, args[0], args[1])
	}),
}

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write [text...]",
	Short: "Write today's text",
	Long: `Replace today's journal text. With no arguments the text is read from
stdin, so longer notes can be piped in.

Examples:
  chronos write "slept badly, long walk helped"
  chronos write --append "evening: much better"
  chronos write < notes.txt
  chronos write ""             Clear today's text`,
	Run: withServices(func(d *Deps, cmd *cobra.Command, args []string) {
		appendText, _ := cmd.Flags().GetBool("append")

		var text string
		if len(args) > 0 {
			text = strings.Join(args, " ")
		} else {
			data, err := io.ReadAll(d.Stdin)
			if err != nil {
				_, _ = fmt.Fprintln(d.Stderr, "Error: Failed to read text from stdin")
				_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", err)
				d.Exit(1)
				return
			}
			text = strings.TrimRight(string(data), "\n")
		}
		handlers.Write(d, text, appendText)
	}),
}

// finalizeCmd represents the finalize command
var finalizeCmd = &cobra.Command{
	Use:   "finalize [date]",
	Short: "Turn a draft into an entry",
	Long: `Finalize a draft now instead of waiting for the day to end. A draft with
content becomes an entry (replacing any entry already stored for that date);
an empty draft is discarded.

Examples:
  chronos finalize             Finalize today's draft
  chronos finalize yesterday   Finalize yesterday's draft
  chronos finalize 2024-08-03  Finalize the draft for a specific date`,
	Args: cobra.MaximumNArgs(1),
	Run: withServices(func(d *Deps, _ *cobra.Command, args []string) {
		date := ""
		if len(args) > 0 {
			date = args[0]
		}
		handlers.Finalize(d, date)
	}),
}

// draftsCmd represents the drafts command
var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List stored drafts",
	Long:  `List every draft in the store, oldest first. Drafts from past days are finalized the next time chronos starts.`,
	Args:  cobra.NoArgs,
	Run: withServices(func(d *Deps, _ *cobra.Command, _ []string) {
		handlers.ListDrafts(d)
	}),
}

func init() {
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(draftsCmd)

	rateCmd.Flags().Bool("clear", false, "Remove the rating instead of setting it")
	writeCmd.Flags().BoolP("append", "a", false, "Add the text as a new line instead of replacing")
}
