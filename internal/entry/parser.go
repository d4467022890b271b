package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidRating is returned for ratings outside MinRating..MaxRating
	ErrInvalidRating = errors.New("rating must be between 0 and 10")
	// ErrInvalidKind is returned for rating channels other than physical/mental
	ErrInvalidKind = errors.New("rating kind must be 'physical' or 'mental'")
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)

// ValidateRating checks that value is within MinRating..MaxRating.
func ValidateRating(value int) error {
	if value < MinRating || value > MaxRating {
		return fmt.Errorf("%w, got %d", ErrInvalidRating, value)
	}
	return nil
}

// ParseRating parses a rating argument such as "7".
func ParseRating(input string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidRating, input)
	}
	if err := ValidateRating(value); err != nil {
		return 0, err
	}
	return value, nil
}

// ParseKind parses a rating channel name. Single-letter forms "p" and "m" are accepted.
func ParseKind(input string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "physical", "p", "body":
		return Physical, nil
	case "mental", "m", "mind":
		return Mental, nil
	}
	return "", fmt.Errorf("%w, got %q", ErrInvalidKind, input)
}

// ValidateDate checks that date is a real calendar date in DateLayout.
func ValidateDate(date string) error {
	t, err := time.Parse(DateLayout, date)
	if err != nil || t.Format(DateLayout) != date {
		return fmt.Errorf("%w, got %q", ErrInvalidDate, date)
	}
	return nil
}

// SplitDate returns the year, month and day of a valid date key.
func SplitDate(date string) (year int, month time.Month, day int, err error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w, got %q", ErrInvalidDate, date)
	}
	return t.Year(), t.Month(), t.Day(), nil
}
