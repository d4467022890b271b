package stats

import (
	"sort"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/timeutil"
)

// Statistics contains aggregated statistics for a set of entries
type Statistics struct {
	EntryCount      int
	RatedPhysical   int // entries with a physical rating above 0
	RatedMental     int // entries with a mental rating above 0
	AveragePhysical float64
	AverageMental   float64
	LongestStreak   int // most consecutive journaled days
	FirstDate       string
	LastDate        string
}

// RatingBreakdown counts how often a rating value was recorded
type RatingBreakdown struct {
	Rating     int
	EntryCount int
}

// CalculateStatistics computes statistics for entries within the inclusive
// date range. Empty bounds are open. Unrated channels (0) are left out of the
// averages.
func CalculateStatistics(entries []entry.Entry, from, to string) Statistics {
	stats := Statistics{}

	if len(entries) == 0 {
		return stats
	}

	var physicalSum, mentalSum int
	days := make(map[string]bool)

	for _, e := range entries {
		if !timeutil.IsInRange(e.Date, from, to) {
			continue
		}
		stats.EntryCount++
		days[e.Date] = true

		if e.Physical > 0 {
			stats.RatedPhysical++
			physicalSum += e.Physical
		}
		if e.Mental > 0 {
			stats.RatedMental++
			mentalSum += e.Mental
		}
	}

	if stats.RatedPhysical > 0 {
		stats.AveragePhysical = float64(physicalSum) / float64(stats.RatedPhysical)
	}
	if stats.RatedMental > 0 {
		stats.AverageMental = float64(mentalSum) / float64(stats.RatedMental)
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > 0 {
		stats.FirstDate = dates[0]
		stats.LastDate = dates[len(dates)-1]
	}
	stats.LongestStreak = longestStreak(dates)

	return stats
}

// longestStreak expects ascending, unique date keys.
func longestStreak(dates []string) int {
	best, run := 0, 0
	for i, d := range dates {
		if i > 0 && timeutil.AddDays(dates[i-1], 1) == d {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// CalculateRatingBreakdown counts entries per rating value of the given kind,
// sorted by rating descending. Unrated entries are grouped under 0.
func CalculateRatingBreakdown(entries []entry.Entry, kind entry.Kind, from, to string) []RatingBreakdown {
	if len(entries) == 0 {
		return []RatingBreakdown{}
	}

	counts := make(map[int]int)
	for _, e := range entries {
		if !timeutil.IsInRange(e.Date, from, to) {
			continue
		}
		v := e.Physical
		if kind == entry.Mental {
			v = e.Mental
		}
		counts[v]++
	}

	breakdowns := make([]RatingBreakdown, 0, len(counts))
	for rating, n := range counts {
		breakdowns = append(breakdowns, RatingBreakdown{Rating: rating, EntryCount: n})
	}

	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].Rating > breakdowns[j].Rating
	})

	return breakdowns
}
