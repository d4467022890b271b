package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/chronos/internal/cli"
	"github.com/xolan/chronos/internal/stats"
)

// ShowStats shows statistics for the inclusive date range. Empty bounds are open.
func ShowStats(deps *cli.Deps, from, to string) {
	result := deps.Services.Stats.ForRange(from, to)
	st := result.Statistics

	_, _ = fmt.Fprintf(deps.Stdout, "Statistics for %s:\n", result.Period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total entries:    %d %s\n", st.EntryCount, cli.Pluralize("entry", st.EntryCount))
	if st.EntryCount == 0 {
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "First entry:      %s\n", st.FirstDate)
	_, _ = fmt.Fprintf(deps.Stdout, "Last entry:       %s\n", st.LastDate)
	_, _ = fmt.Fprintf(deps.Stdout, "Longest streak:   %d %s\n", st.LongestStreak, cli.Pluralize("day", st.LongestStreak))
	_, _ = fmt.Fprintf(deps.Stdout, "Average physical: %s (%d rated)\n", cli.FormatAverage(st.AveragePhysical), st.RatedPhysical)
	_, _ = fmt.Fprintf(deps.Stdout, "Average mental:   %s (%d rated)\n", cli.FormatAverage(st.AverageMental), st.RatedMental)

	displayBreakdown(deps, "Physical", result.Physical)
	displayBreakdown(deps, "Mental", result.Mental)
}

func displayBreakdown(deps *cli.Deps, title string, breakdown []stats.RatingBreakdown) {
	if len(breakdown) == 0 {
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "%s ratings:\n", title)
	for _, b := range breakdown {
		_, _ = fmt.Fprintf(deps.Stdout, "  %2d %s %d\n", b.Rating, cli.RatingBar(b.Rating), b.EntryCount)
	}
}
