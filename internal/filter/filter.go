package filter

import (
	"strings"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/timeutil"
)

// Filter represents search and filtering criteria for journal entries.
// All filter fields are optional - zero values match all entries.
type Filter struct {
	Keyword     string // Case-insensitive substring search in entry text
	MinPhysical int    // Entries must have a physical rating at least this high
	MinMental   int    // Entries must have a mental rating at least this high
	From        string // Inclusive start date (YYYY-MM-DD), empty for open
	To          string // Inclusive end date (YYYY-MM-DD), empty for open
}

// NewFilter creates a new Filter with the given rating and keyword criteria.
func NewFilter(keyword string, minPhysical, minMental int) *Filter {
	return &Filter{
		Keyword:     keyword,
		MinPhysical: minPhysical,
		MinMental:   minMental,
	}
}

// WithRange returns a copy of f restricted to the inclusive date range.
func (f *Filter) WithRange(from, to string) *Filter {
	c := *f
	c.From = from
	c.To = to
	return &c
}

// IsEmpty returns true if all filter fields are empty (matches all entries)
func (f *Filter) IsEmpty() bool {
	return f.Keyword == "" && f.MinPhysical <= 0 && f.MinMental <= 0 && f.From == "" && f.To == ""
}

// FilterEntries returns a new slice containing only entries that match the filter criteria.
// If the filter is empty, returns all entries.
func FilterEntries(entries []entry.Entry, f *Filter) []entry.Entry {
	if f == nil || f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.Entry, 0)
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// MatchesKeyword returns true if the keyword is found in the entry's text (case-insensitive).
// An empty keyword matches all entries.
func (f *Filter) MatchesKeyword(e entry.Entry) bool {
	if f.Keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Text), strings.ToLower(f.Keyword))
}

// MatchesRatings returns true if both ratings meet their minimums.
func (f *Filter) MatchesRatings(e entry.Entry) bool {
	return e.Physical >= f.MinPhysical && e.Mental >= f.MinMental
}

// MatchesRange returns true if the entry date falls inside From..To.
func (f *Filter) MatchesRange(e entry.Entry) bool {
	return timeutil.IsInRange(e.Date, f.From, f.To)
}

// Matches returns true if the entry satisfies every criterion.
func (f *Filter) Matches(e entry.Entry) bool {
	return f.MatchesKeyword(e) && f.MatchesRatings(e) && f.MatchesRange(e)
}
