package service

import (
	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/stats"
	"github.com/xolan/chronos/internal/storage"
)

// StatsService provides statistics operations
type StatsService struct {
	store storage.Store
}

// NewStatsService creates a new StatsService
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store}
}

// ForRange returns statistics for the inclusive date range. Empty bounds are
// open.
func (s *StatsService) ForRange(from, to string) *StatsResult {
	entries := s.store.ReadEntries()

	return &StatsResult{
		Statistics: stats.CalculateStatistics(entries, from, to),
		Physical:   stats.CalculateRatingBreakdown(entries, entry.Physical, from, to),
		Mental:     stats.CalculateRatingBreakdown(entries, entry.Mental, from, to),
		Period:     describePeriod(from, to),
		From:       from,
		To:         to,
	}
}
