package timeutil

import (
	"fmt"
	"time"
)

// ParseDateRangeFlags turns --from/--to/--last flags into inclusive date keys.
// An empty from means "since the beginning"; an empty to means today.
// Returns an error if both lastDays and from/to are specified.
func ParseDateRangeFlags(fromStr, toStr string, lastDays int, now time.Time) (from, to string, err error) {
	if lastDays < 0 {
		return "", "", fmt.Errorf("--last must be positive, got %d", lastDays)
	}
	if lastDays > 0 && (fromStr != "" || toStr != "") {
		return "", "", fmt.Errorf("cannot use --last with --from or --to")
	}

	if lastDays > 0 {
		return DateKey(now.AddDate(0, 0, -(lastDays - 1))), DateKey(now), nil
	}

	if fromStr != "" {
		from, err = ParseDate(fromStr, now)
		if err != nil {
			return "", "", fmt.Errorf("invalid --from date: %w", err)
		}
	}

	to = DateKey(now)
	if toStr != "" {
		to, err = ParseDate(toStr, now)
		if err != nil {
			return "", "", fmt.Errorf("invalid --to date: %w", err)
		}
	}

	if from != "" && from > to {
		return "", "", fmt.Errorf("--from date (%s) is after --to date (%s)", from, to)
	}

	return from, to, nil
}
