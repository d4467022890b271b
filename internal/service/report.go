package service

import (
	"sort"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/filter"
	"github.com/xolan/chronos/internal/stats"
	"github.com/xolan/chronos/internal/storage"
)

// ReportService provides operations for generating reports
type ReportService struct {
	store storage.Store
}

// NewReportService creates a new ReportService
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// GroupByMonth generates a report of average ratings per month, newest month
// first, over the entries matching f.
func (s *ReportService) GroupByMonth(f *filter.Filter) *ReportData {
	entries := filter.FilterEntries(s.store.ReadEntries(), f)

	byMonth := make(map[string][]entry.Entry)
	for _, e := range entries {
		if len(e.Date) < len("2006-01") {
			continue
		}
		month := e.Date[:len("2006-01")]
		byMonth[month] = append(byMonth[month], e)
	}

	groups := make([]GroupData, 0, len(byMonth))
	for month, monthEntries := range byMonth {
		st := stats.CalculateStatistics(monthEntries, "", "")
		groups = append(groups, GroupData{
			Name:            month,
			EntryCount:      st.EntryCount,
			AveragePhysical: st.AveragePhysical,
			AverageMental:   st.AverageMental,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name > groups[j].Name
	})

	period := "all time"
	if f != nil {
		period = describePeriod(f.From, f.To)
	}

	return &ReportData{
		Groups:     groups,
		EntryCount: len(entries),
		Period:     period,
	}
}
