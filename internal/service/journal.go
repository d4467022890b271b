package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/filter"
	"github.com/xolan/chronos/internal/logger"
	"github.com/xolan/chronos/internal/storage"
	"github.com/xolan/chronos/internal/timer"
)

// Common errors for the journal service
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrEmptyRef      = errors.New("entry id or date required")
)

// Backupper is implemented by stores that can snapshot the entry collection.
type Backupper interface {
	CreateBackup() error
}

// unreadableReporter is implemented by stores that can tell a missing entry
// collection from one that cannot be decoded.
type unreadableReporter interface {
	EntriesUnreadable() bool
}

// JournalService provides operations on finalized entries and stored drafts
type JournalService struct {
	store  storage.Store
	clock  timer.Clock
	logger *log.Logger
	newID  func() string
}

// NewJournalService creates a new JournalService
func NewJournalService(store storage.Store, clock timer.Clock, lg *log.Logger) *JournalService {
	if lg == nil {
		lg = logger.Discard()
	}
	return &JournalService{
		store:  store,
		clock:  clock,
		logger: lg,
		newID:  uuid.NewString,
	}
}

// Today returns today's date key from the service clock
func (s *JournalService) Today() string {
	return s.clock.Now().Format(entry.DateLayout)
}

// Finalize turns the draft for date into an entry. A missing draft is a no-op,
// an empty one is deleted. An existing entry for the date keeps its id.
// On a failed entry write the draft is left in place so a later call can
// retry.
func (s *JournalService) Finalize(date string) (FinalizeResult, error) {
	result := FinalizeResult{Date: date, Outcome: FinalizeNoDraft}

	d, ok := s.store.ReadDraft(date)
	if !ok {
		return result, nil
	}

	if !d.HasContent() {
		result.Outcome = FinalizeDiscarded
		if err := s.store.DeleteDraft(date); err != nil {
			return result, fmt.Errorf("failed to delete draft: %w", err)
		}
		return result, nil
	}

	entries := s.store.ReadEntries()
	if entries == nil {
		if err := s.backupUnreadable(); err != nil {
			return result, err
		}
	}
	e := entry.FromDraft(d, entry.FindByDate(entries, date), s.newID, s.clock.Now())
	if err := s.store.WriteEntries(entry.Upsert(entries, e)); err != nil {
		return result, fmt.Errorf("failed to save entry: %w", err)
	}

	result.Outcome = FinalizeWritten
	result.Entry = &e

	if err := s.store.DeleteDraft(date); err != nil {
		return result, fmt.Errorf("failed to delete draft: %w", err)
	}
	return result, nil
}

// FinalizeBefore finalizes every stored draft dated before date, oldest first.
// Failures are logged and the sweep continues.
func (s *JournalService) FinalizeBefore(date string) []FinalizeResult {
	var results []FinalizeResult
	for _, d := range s.store.DraftDates() {
		if d >= date {
			continue
		}
		r, err := s.Finalize(d)
		if err != nil {
			s.logger.Warn("finalize stale draft", "date", d, "err", err)
			continue
		}
		results = append(results, r)
	}
	return results
}

// ClearIfEmpty deletes the draft for date if it has no content.
func (s *JournalService) ClearIfEmpty(date string) (bool, error) {
	d, ok := s.store.ReadDraft(date)
	if !ok || d.HasContent() {
		return false, nil
	}
	if err := s.store.DeleteDraft(date); err != nil {
		return false, err
	}
	return true, nil
}

// List returns entries matching f, newest first.
func (s *JournalService) List(f *filter.Filter) *ListResult {
	entries := filter.FilterEntries(s.sortedEntries(), f)

	result := &ListResult{Entries: entries, Period: "all time"}
	if f != nil {
		result.From, result.To = f.From, f.To
		result.Period = describePeriod(f.From, f.To)
	}
	return result
}

// Get returns the entry for date.
func (s *JournalService) Get(date string) (*entry.Entry, error) {
	if err := entry.ValidateDate(date); err != nil {
		return nil, err
	}
	e := entry.FindByDate(s.store.ReadEntries(), date)
	if e == nil {
		return nil, fmt.Errorf("%w for %s", ErrEntryNotFound, date)
	}
	return e, nil
}

// Delete removes the entry whose id or date equals ref. The entry collection
// is backed up first when the store supports it.
func (s *JournalService) Delete(ref string) (*entry.Entry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrEmptyRef
	}

	entries := s.store.ReadEntries()
	idx := -1
	for i, e := range entries {
		if e.ID == ref || e.Date == ref {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, ref)
	}
	deleted := entries[idx]

	if b, ok := s.store.(Backupper); ok {
		if err := b.CreateBackup(); err != nil {
			return nil, fmt.Errorf("failed to create backup: %w", err)
		}
	}

	remaining := make([]entry.Entry, 0, len(entries)-1)
	remaining = append(remaining, entries[:idx]...)
	remaining = append(remaining, entries[idx+1:]...)
	if err := s.store.WriteEntries(remaining); err != nil {
		return nil, fmt.Errorf("failed to delete entry: %w", err)
	}

	return &deleted, nil
}

// backupUnreadable copies an undecodable entry collection into a backup slot
// before it gets replaced. A failed backup stops the write.
func (s *JournalService) backupUnreadable() error {
	r, ok := s.store.(unreadableReporter)
	if !ok || !r.EntriesUnreadable() {
		return nil
	}
	b, ok := s.store.(Backupper)
	if !ok {
		return nil
	}
	s.logger.Warn("entry collection unreadable, backing it up before writing")
	if err := b.CreateBackup(); err != nil {
		return fmt.Errorf("failed to back up unreadable entries: %w", err)
	}
	return nil
}

// Sample entries inserted by Seed.
var seedEntries = []entry.Entry{
	{ID: "2024-08-03-dummy", Date: "2024-08-03", Physical: 7, Mental: 5, Text: "Dummy entry for August 3rd, 2024"},
	{ID: "2023-09-07-dummy", Date: "2023-09-07", Physical: 3, Mental: 8, Text: "Dummy entry for September 7th, 2023"},
}

// Seed inserts the sample entries whose dates have no entry yet. It returns
// the inserted entries.
func (s *JournalService) Seed() ([]entry.Entry, error) {
	entries := s.store.ReadEntries()
	now := s.clock.Now()

	var added []entry.Entry
	for _, e := range seedEntries {
		if entry.FindByDate(entries, e.Date) != nil {
			continue
		}
		e.UpdatedAt = now
		entries = entry.Upsert(entries, e)
		added = append(added, e)
	}
	if len(added) == 0 {
		return nil, nil
	}
	if len(entries) == len(added) {
		if err := s.backupUnreadable(); err != nil {
			return nil, err
		}
	}

	if err := s.store.WriteEntries(entries); err != nil {
		return nil, fmt.Errorf("failed to save entries: %w", err)
	}
	return added, nil
}

// Years returns the years that have entries, newest first.
func (s *JournalService) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, e := range s.store.ReadEntries() {
		y, _, _, err := entry.SplitDate(e.Date)
		if err != nil || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Months returns the months of year that have entries, newest first.
func (s *JournalService) Months(year int) []time.Month {
	seen := make(map[time.Month]bool)
	var months []time.Month
	for _, e := range s.store.ReadEntries() {
		y, m, _, err := entry.SplitDate(e.Date)
		if err != nil || y != year || seen[m] {
			continue
		}
		seen[m] = true
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] > months[j] })
	return months
}

// Days returns the entries of a month, newest first.
func (s *JournalService) Days(year int, month time.Month) []entry.Entry {
	var days []entry.Entry
	for _, e := range s.sortedEntries() {
		y, m, _, err := entry.SplitDate(e.Date)
		if err == nil && y == year && m == month {
			days = append(days, e)
		}
	}
	return days
}

// Drafts returns every stored draft, oldest first.
func (s *JournalService) Drafts() []entry.Draft {
	var drafts []entry.Draft
	for _, date := range s.store.DraftDates() {
		if d, ok := s.store.ReadDraft(date); ok {
			drafts = append(drafts, d)
		}
	}
	return drafts
}

func (s *JournalService) sortedEntries() []entry.Entry {
	entries := s.store.ReadEntries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries
}

// describePeriod formats a date range for human-readable display
func describePeriod(from, to string) string {
	switch {
	case from == "" && to == "":
		return "all time"
	case from == to:
		return from
	case from == "":
		return "until " + to
	case to == "":
		return "since " + from
	}
	return from + " to " + to
}
