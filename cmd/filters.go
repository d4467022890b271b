package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/filter"
	"github.com/xolan/chronos/internal/timeutil"
)

// addRangeFlags adds --from, --to and --last to cmd
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().Int("last", 0, "Only the last N days, including today")
}

// addFilterFlags adds the keyword and rating filters plus the range flags
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "Only entries whose text contains this keyword")
	cmd.Flags().Int("min-physical", 0, "Only entries with a physical rating at least this high")
	cmd.Flags().Int("min-mental", 0, "Only entries with a mental rating at least this high")
	addRangeFlags(cmd)
}

// rangeFromFlags reads the range flags. With none set the range is open on
// both ends. On error the message is printed and ok is false.
func rangeFromFlags(d *Deps, cmd *cobra.Command) (from, to string, ok bool) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	lastDays, _ := cmd.Flags().GetInt("last")

	if fromStr == "" && toStr == "" && lastDays == 0 {
		return "", "", true
	}

	from, to, err := timeutil.ParseDateRangeFlags(fromStr, toStr, lastDays, d.Services.Source.Now())
	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(d.Stderr, "Hint: Use either --last N or --from/--to, with dates like 2024-01-15 or 15/01/2024")
		d.Exit(1)
		return "", "", false
	}
	return from, to, true
}

// filterFromFlags builds a filter from the keyword, rating and range flags.
// On error the message is printed and ok is false.
func filterFromFlags(d *Deps, cmd *cobra.Command) (*filter.Filter, bool) {
	keyword, _ := cmd.Flags().GetString("search")
	minPhysical, _ := cmd.Flags().GetInt("min-physical")
	minMental, _ := cmd.Flags().GetInt("min-mental")

	for name, v := range map[string]int{"--min-physical": minPhysical, "--min-mental": minMental} {
		if err := entry.ValidateRating(v); err != nil {
			_, _ = fmt.Fprintf(d.Stderr, "Error: Invalid %s: %v\n", name, err)
			d.Exit(1)
			return nil, false
		}
	}

	from, to, ok := rangeFromFlags(d, cmd)
	if !ok {
		return nil, false
	}

	return filter.NewFilter(keyword, minPhysical, minMental).WithRange(from, to), true
}
