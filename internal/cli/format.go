// Package cli provides the CLI presentation layer for the chronos journal.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/storage"
)

// FormatRating formats a stored rating as "7/10", or "-" when unrated (0)
func FormatRating(v int) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", v, entry.MaxRating)
}

// FormatDraftRating formats a draft rating. A nil rating has not been chosen
// yet and prints as "not set"; an explicit 0 prints as "0/10".
func FormatDraftRating(v *int) string {
	if v == nil {
		return "not set"
	}
	return fmt.Sprintf("%d/%d", *v, entry.MaxRating)
}

// RatingBar renders a rating as a fixed-width bar, e.g. "#######..." for 7
func RatingBar(v int) string {
	if v < 0 {
		v = 0
	}
	if v > entry.MaxRating {
		v = entry.MaxRating
	}
	return strings.Repeat("#", v) + strings.Repeat(".", entry.MaxRating-v)
}

// Truncate shortens s to max runes, ending with "..." when cut.
// Newlines are folded into spaces so the result fits on one line.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// FormatEntryLine formats an entry for list output:
// "2024-08-03  P 7/10  M 5/10  Dummy entry for..."
func FormatEntryLine(e entry.Entry) string {
	line := fmt.Sprintf("%s  P %-5s  M %-5s", e.Date, FormatRating(e.Physical), FormatRating(e.Mental))
	text := Truncate(e.Text, 50)
	if text == "" {
		return strings.TrimRight(line, " ")
	}
	return line + "  " + text
}

// FormatDate formats a date key for humans, e.g. "Sat, Aug 3, 2024".
// Unparseable keys are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(entry.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2, 2006")
}

// FormatAverage formats an average rating, or "-" when nothing was rated
func FormatAverage(avg float64) string {
	if avg <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", avg)
}

// FormatCorruptRecord formats a CorruptRecord into a human-readable string
func FormatCorruptRecord(r storage.CorruptRecord) string {
	msg := r.Error
	if len(msg) > 60 {
		msg = msg[:57] + "..."
	}
	return fmt.Sprintf("  %s (error: %s)", r.Key, msg)
}

// BuildPeriodWithFilters appends filter information to the period description.
// Example: "all time" -> "all time (\"walk\", physical >= 5)"
func BuildPeriodWithFilters(period, keyword string, minPhysical, minMental int) string {
	var filters []string
	if keyword != "" {
		filters = append(filters, fmt.Sprintf("%q", keyword))
	}
	if minPhysical > 0 {
		filters = append(filters, fmt.Sprintf("physical >= %d", minPhysical))
	}
	if minMental > 0 {
		filters = append(filters, fmt.Sprintf("mental >= %d", minMental))
	}
	if len(filters) == 0 {
		return period
	}
	return fmt.Sprintf("%s (%s)", period, strings.Join(filters, ", "))
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if n := len(word); n > 1 && word[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[n-2])) {
		return word[:n-1] + "ies"
	}
	return word + "s"
}
