package service

import (
	"errors"
	"testing"
	"time"

	"github.com/xolan/chronos/internal/config"
	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/storage"
	"github.com/xolan/chronos/internal/timer"
)

var errDiskFull = errors.New("disk full")

// countingStore wraps a real store, counting writes and optionally failing them.
type countingStore struct {
	storage.Store
	draftWrites  int
	draftDeletes int
	entryWrites  int
	backups      int
	failWrites   bool
	failBackups  bool
}

func (c *countingStore) WriteDraft(d entry.Draft) error {
	c.draftWrites++
	if c.failWrites {
		return errDiskFull
	}
	return c.Store.WriteDraft(d)
}

func (c *countingStore) DeleteDraft(date string) error {
	c.draftDeletes++
	if c.failWrites {
		return errDiskFull
	}
	return c.Store.DeleteDraft(date)
}

func (c *countingStore) CreateBackup() error {
	c.backups++
	if c.failBackups {
		return errDiskFull
	}
	return c.Store.(Backupper).CreateBackup()
}

func (c *countingStore) EntriesUnreadable() bool {
	return c.Store.(unreadableReporter).EntriesUnreadable()
}

func (c *countingStore) WriteEntries(entries []entry.Entry) error {
	c.entryWrites++
	if c.failWrites {
		return errDiskFull
	}
	return c.Store.WriteEntries(entries)
}

type harness struct {
	disk    *storage.DiskStore
	store   *countingStore
	clock   *timer.Manual
	journal *JournalService
}

func newHarness(t *testing.T, now time.Time) *harness {
	t.Helper()
	disk, err := storage.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("storage.Open() returned unexpected error: %v", err)
	}
	store := &countingStore{Store: disk}
	clock := timer.NewManual(now)
	journal := NewJournalService(store, clock, nil)
	ids := 0
	journal.newID = func() string {
		ids++
		return "id-" + string(rune('0'+ids))
	}
	return &harness{disk: disk, store: store, clock: clock, journal: journal}
}

func (h *harness) session() *Session {
	return NewSession(h.journal, SessionOptions{Source: h.clock, Debounce: DefaultDebounce})
}

func (h *harness) services(t *testing.T) *Services {
	t.Helper()
	return NewServicesWithStore(h.disk, h.clock, t.TempDir()+"/config.toml", config.DefaultConfig(), nil)
}

func (h *harness) writeDraft(t *testing.T, d entry.Draft) {
	t.Helper()
	if err := h.disk.WriteDraft(d); err != nil {
		t.Fatalf("WriteDraft() returned unexpected error: %v", err)
	}
}

func (h *harness) draft(date string) (entry.Draft, bool) {
	return h.disk.ReadDraft(date)
}

func (h *harness) entry(date string) *entry.Entry {
	return entry.FindByDate(h.disk.ReadEntries(), date)
}

func at(year int, month time.Month, day, hour, min, sec, msec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, msec*int(time.Millisecond), time.UTC)
}

func ratingValue(r *int) string {
	if r == nil {
		return "nil"
	}
	return string(rune('0' + *r))
}

// drain collects the events emitted so far.
func drain(s *Session) []Event {
	var events []Event
	for {
		select {
		case ev := <-s.Events():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func hasEvent(events []Event, kind EventKind, date string) bool {
	for _, ev := range events {
		if ev.Kind == kind && ev.Date == date {
			return true
		}
	}
	return false
}
