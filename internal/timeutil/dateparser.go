package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// YYYY-MM (missing day)
	isoPartialRe = regexp.MustCompile(`^\d{4}-\d{1,2}$`)

	// YYYY (year only)
	yearOnlyRe = regexp.MustCompile(`^\d{4}$`)

	// MM-DD or DD-MM (missing year)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)

	// DD/MM (missing year)
	euroPartialRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)

	// Too many separators
	tooManyPartsRe = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// ParseDate parses a user-supplied date into a date key relative to now.
//
// Valid inputs:
//   - "today", "yesterday"
//   - "2024-01-15" (ISO format)
//   - "15/01/2024" (European format)
//
// Invalid inputs return an error with suggested formats.
func ParseDate(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	switch strings.ToLower(input) {
	case "today", "t":
		return DateKey(now), nil
	case "yesterday", "y":
		return DateKey(now.AddDate(0, 0, -1)), nil
	}

	// ISO first - preferred for ambiguous dates
	if t, err := time.Parse(DateLayout, input); err == nil {
		return DateKey(t), nil
	}
	if t, err := time.Parse("02/01/2006", input); err == nil {
		return DateKey(t), nil
	}

	return "", buildDateParseError(input)
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}
