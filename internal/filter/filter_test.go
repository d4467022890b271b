package filter

import (
	"testing"

	"github.com/xolan/chronos/internal/entry"
)

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		{ID: "1", Date: "2024-08-03", Physical: 7, Mental: 5, Text: "Long walk by the river"},
		{ID: "2", Date: "2024-08-02", Physical: 2, Mental: 8, Text: "headache, read a book"},
		{ID: "3", Date: "2024-07-30", Physical: 0, Mental: 3, Text: ""},
		{ID: "4", Date: "2023-09-07", Physical: 3, Mental: 8, Text: "River swim"},
	}
}

func ids(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestFilterEntries(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   []string
	}{
		{"nil filter", nil, []string{"1", "2", "3", "4"}},
		{"empty filter", NewFilter("", 0, 0), []string{"1", "2", "3", "4"}},
		{"keyword case-insensitive", NewFilter("RIVER", 0, 0), []string{"1", "4"}},
		{"keyword no match", NewFilter("gym", 0, 0), []string{}},
		{"min physical", NewFilter("", 3, 0), []string{"1", "4"}},
		{"min mental", NewFilter("", 0, 8), []string{"2", "4"}},
		{"keyword and ratings", NewFilter("river", 0, 6), []string{"4"}},
		{"date range", NewFilter("", 0, 0).WithRange("2024-07-30", "2024-08-02"), []string{"2", "3"}},
		{"open start", NewFilter("", 0, 0).WithRange("", "2023-12-31"), []string{"4"}},
		{"open end with keyword", NewFilter("walk", 0, 0).WithRange("2024-01-01", ""), []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterEntries(sampleEntries(), tt.filter))
			if len(got) != len(tt.want) {
				t.Fatalf("FilterEntries() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FilterEntries()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero", Filter{}, true},
		{"keyword", Filter{Keyword: "x"}, false},
		{"min physical", Filter{MinPhysical: 1}, false},
		{"min mental", Filter{MinMental: 1}, false},
		{"from", Filter{From: "2024-01-01"}, false},
		{"to", Filter{To: "2024-01-01"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithRange_DoesNotMutate(t *testing.T) {
	f := NewFilter("x", 1, 2)
	r := f.WithRange("2024-01-01", "2024-02-01")
	if f.From != "" || f.To != "" {
		t.Error("WithRange() mutated the receiver")
	}
	if r.Keyword != "x" || r.MinPhysical != 1 || r.MinMental != 2 {
		t.Errorf("WithRange() lost criteria: %+v", r)
	}
}
