package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/chronos/internal/cli"
	"github.com/xolan/chronos/internal/filter"
)

// ReportByMonth shows average ratings per month over the entries matching f
func ReportByMonth(deps *cli.Deps, f *filter.Filter) {
	result := deps.Services.Report.GroupByMonth(f)

	period := result.Period
	if f != nil {
		period = cli.BuildPeriodWithFilters(period, f.Keyword, f.MinPhysical, f.MinMental)
	}

	if len(result.Groups) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s\n", period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Monthly report (%s):\n", period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "%-8s  %7s  %8s  %6s\n", "Month", "Entries", "Physical", "Mental")
	for _, g := range result.Groups {
		_, _ = fmt.Fprintf(deps.Stdout, "%-8s  %7d  %8s  %6s\n",
			g.Name, g.EntryCount, cli.FormatAverage(g.AveragePhysical), cli.FormatAverage(g.AverageMental))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %d %s in %d %s\n",
		result.EntryCount, cli.Pluralize("entry", result.EntryCount),
		len(result.Groups), cli.Pluralize("month", len(result.Groups)))
}
