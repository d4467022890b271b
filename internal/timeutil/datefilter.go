package timeutil

import "time"

// DateLayout is the calendar date key format (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return NextMidnight(t).Add(-time.Nanosecond)
}

// NextMidnight returns 00:00:00 of the day after t in t's location.
// Built with time.Date so days that are 23 or 25 hours long (DST) are handled.
func NextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}

// UntilMidnight returns how long from t until the next local midnight.
// Never returns less than a millisecond so a timer armed with it always advances.
func UntilMidnight(t time.Time) time.Duration {
	d := NextMidnight(t).Sub(t)
	if d < time.Millisecond {
		return time.Millisecond
	}
	return d
}

// DateKey formats t as the local calendar date key
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a date key by n days. Invalid keys are returned unchanged.
func AddDays(date string, n int) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// DaysBetween returns the number of calendar days from a to b (b - a).
func DaysBetween(a, b string) (int, error) {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, err
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// IsInRange checks if date falls within [from, to] (inclusive). Empty bounds are open.
// Date keys compare correctly as strings.
func IsInRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}
