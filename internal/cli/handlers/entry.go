package handlers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xolan/chronos/internal/cli"
	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/filter"
	"github.com/xolan/chronos/internal/timeutil"
)

// ListEntries lists finalized entries matching the filter, newest first
func ListEntries(deps *cli.Deps, f *filter.Filter) {
	result := deps.Services.Journal.List(f)

	period := result.Period
	if f != nil {
		period = cli.BuildPeriodWithFilters(period, f.Keyword, f.MinPhysical, f.MinMental)
	}

	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s\n", period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries for %s:\n", period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, e := range result.Entries {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEntryLine(e))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %d %s\n", len(result.Entries), cli.Pluralize("entry", len(result.Entries)))
}

// ShowEntry shows the entry for a single date
func ShowEntry(deps *cli.Deps, dateArg string) {
	date, err := timeutil.ParseDate(dateArg, deps.Services.Source.Now())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date: %v\n", err)
		deps.Exit(1)
		return
	}

	e, err := deps.Services.Journal.Get(date)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry for %s\n", date)
		if _, ok := deps.Services.Store.ReadDraft(date); ok {
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: A draft exists for this date; run 'chronos finalize %s' to turn it into an entry\n", date)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s (%s)\n", cli.FormatDate(e.Date), e.Date)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Physical: %s %s\n", cli.RatingBar(e.Physical), cli.FormatRating(e.Physical))
	_, _ = fmt.Fprintf(deps.Stdout, "Mental:   %s %s\n", cli.RatingBar(e.Mental), cli.FormatRating(e.Mental))
	_, _ = fmt.Fprintf(deps.Stdout, "ID:       %s\n", e.ID)
	if !e.UpdatedAt.IsZero() {
		_, _ = fmt.Fprintf(deps.Stdout, "Updated:  %s\n", e.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if strings.TrimSpace(e.Text) != "" {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		_, _ = fmt.Fprintln(deps.Stdout, e.Text)
	}
}

// DeleteEntry deletes the entry with the given id or date, asking for
// confirmation unless skipConfirm is set
func DeleteEntry(deps *cli.Deps, ref string, skipConfirm bool) {
	ref = strings.TrimSpace(ref)
	if date, err := timeutil.ParseDate(ref, deps.Services.Source.Now()); err == nil {
		ref = date
	}

	target := findEntry(deps, ref)
	if target == nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry matches '%s'\n", ref)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'chronos list' to see entries with their dates")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatEntryLine(*target))

	if !skipConfirm && !promptConfirmation(deps) {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}

	deleted, err := deps.Services.Journal.Delete(target.Date)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to delete entry: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted entry for %s\n", deleted.Date)
	_, _ = fmt.Fprintln(deps.Stdout, "Hint: Use 'chronos restore' to undo")
}

func findEntry(deps *cli.Deps, ref string) *entry.Entry {
	if ref == "" {
		return nil
	}
	for _, e := range deps.Services.Journal.List(nil).Entries {
		if e.ID == ref || e.Date == ref {
			e := e
			return &e
		}
	}
	return nil
}

// promptConfirmation asks the user to confirm deletion.
// Returns true if user confirms with 'y' or 'Y', false otherwise
func promptConfirmation(deps *cli.Deps) bool {
	_, _ = fmt.Fprint(deps.Stdout, "Delete this entry? [y/N]: ")

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}

// Seed inserts the sample entries
func Seed(deps *cli.Deps) {
	added, err := deps.Services.Journal.Seed()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to seed entries: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(added) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Sample entries already present")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added %d sample %s:\n", len(added), cli.Pluralize("entry", len(added)))
	for _, e := range added {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatEntryLine(e))
	}
}

// Browse walks the entries by year, month and day. With no args it lists the
// years, with a year the months, with a year and month the days.
func Browse(deps *cli.Deps, args []string) {
	journal := deps.Services.Journal

	if len(args) == 0 {
		years := journal.Years()
		if len(years) == 0 {
			_, _ = fmt.Fprintln(deps.Stdout, "No entries yet")
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, "Years:")
		for _, y := range years {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d\n", y)
		}
		return
	}

	year, err := strconv.Atoi(args[0])
	if err != nil || year < 1 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid year '%s'\n", args[0])
		deps.Exit(1)
		return
	}

	if len(args) == 1 {
		months := journal.Months(year)
		if len(months) == 0 {
			_, _ = fmt.Fprintf(deps.Stdout, "No entries in %d\n", year)
			return
		}
		_, _ = fmt.Fprintf(deps.Stdout, "Months in %d:\n", year)
		for _, m := range months {
			n := len(journal.Days(year, m))
			_, _ = fmt.Fprintf(deps.Stdout, "  %02d %-10s %d %s\n", int(m), m, n, cli.Pluralize("entry", n))
		}
		return
	}

	month, err := strconv.Atoi(args[1])
	if err != nil || month < 1 || month > 12 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid month '%s' (use 1-12)\n", args[1])
		deps.Exit(1)
		return
	}

	days := journal.Days(year, time.Month(month))
	if len(days) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries in %s %d\n", time.Month(month), year)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s %d:\n", time.Month(month), year)
	for _, e := range days {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatEntryLine(e))
	}
}
