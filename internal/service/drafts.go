package service

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/storage"
	"github.com/xolan/chronos/internal/timer"
)

// DefaultDebounce is the quiet period before typed text is saved
const DefaultDebounce = 500 * time.Millisecond

// DraftManager owns the draft being edited for the active date. Ratings are
// saved immediately; text is saved once typing pauses for the debounce delay.
//
// It is not safe for concurrent use. A Session serializes access and passes
// its lock so the debounce callback runs under it.
type DraftManager struct {
	store    storage.Store
	journal  *JournalService
	clock    timer.Clock
	debounce *timer.Slot
	delay    time.Duration
	logger   *log.Logger
	notify   func(Event)

	date   string
	fields entry.Fields
}

// NewDraftManager creates a DraftManager. locker may be nil when the caller
// drives everything from one goroutine.
func NewDraftManager(journal *JournalService, src timer.Source, delay time.Duration, locker sync.Locker, logger *log.Logger) *DraftManager {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = journal.logger
	}
	return &DraftManager{
		store:    journal.store,
		journal:  journal,
		clock:    src,
		debounce: timer.NewSlot(src, locker),
		delay:    delay,
		logger:   logger,
		notify:   func(Event) {},
	}
}

// Date returns the date being edited.
func (m *DraftManager) Date() string {
	return m.date
}

// Fields returns a copy of the in-memory editing state.
func (m *DraftManager) Fields() entry.Fields {
	return m.fields.WithText(m.fields.Text)
}

// TextPending reports whether a debounced save is waiting.
func (m *DraftManager) TextPending() bool {
	return m.debounce.Pending()
}

// SetRating records a rating and saves the draft right away. A pending text
// save is left alone; it will write the same merged state when it fires.
func (m *DraftManager) SetRating(kind entry.Kind, value int) error {
	if kind != entry.Physical && kind != entry.Mental {
		return entry.ErrInvalidKind
	}
	if err := entry.ValidateRating(value); err != nil {
		return err
	}
	m.fields = m.fields.WithRating(kind, value)
	m.save()
	return nil
}

// ClearRating unsets a rating and saves the draft right away.
func (m *DraftManager) ClearRating(kind entry.Kind) error {
	if kind != entry.Physical && kind != entry.Mental {
		return entry.ErrInvalidKind
	}
	m.fields = m.fields.WithoutRating(kind)
	m.save()
	return nil
}

// SetText replaces the in-memory text and (re)starts the debounce. The save
// reads whatever the state is when it fires.
func (m *DraftManager) SetText(text string) {
	m.fields = m.fields.WithText(text)
	m.debounce.Schedule(m.delay, m.save)
}

// Flush runs a pending text save now. It reports whether one was pending.
func (m *DraftManager) Flush() bool {
	return m.debounce.FireNow()
}

// LoadForDate switches the editing context to date, loading its stored draft
// or starting empty. A pending text save is dropped; callers flush first if
// it matters.
func (m *DraftManager) LoadForDate(date string) {
	m.debounce.Cancel()
	m.date = date
	if d, ok := m.store.ReadDraft(date); ok {
		m.fields = d.Fields()
		return
	}
	m.fields = entry.Fields{}
}

// Finalize finalizes date and, if it is the date being edited, resets the
// in-memory state. Errors are logged, never returned.
func (m *DraftManager) Finalize(date string) FinalizeResult {
	if date == m.date {
		m.Flush()
	}

	result, err := m.journal.Finalize(date)
	if err != nil {
		m.logger.Warn("finalize failed", "date", date, "err", err)
		m.notify(Event{Kind: EventSaveFailed, Date: date, At: m.clock.Now()})
	} else if result.Outcome != FinalizeNoDraft {
		m.notify(Event{Kind: EventFinalized, Date: date, Outcome: result.Outcome, At: m.clock.Now()})
	}

	if date == m.date {
		m.Reset()
	}
	return result
}

// Reset drops any pending save and clears the in-memory fields.
func (m *DraftManager) Reset() {
	m.debounce.Cancel()
	m.fields = entry.Fields{}
}

// Stop cancels the debounce timer.
func (m *DraftManager) Stop() {
	m.debounce.Cancel()
}

// save applies the content test to the current state and writes or deletes
// the draft for the active date. Store failures are logged and swallowed.
func (m *DraftManager) save() {
	if m.date == "" {
		return
	}
	now := m.clock.Now()
	d, action := entry.PlanSave(m.date, m.fields, now)

	var err error
	kind := EventDraftSaved
	switch action {
	case entry.SaveWrite:
		err = m.store.WriteDraft(d)
	case entry.SaveDelete:
		kind = EventDraftCleared
		err = m.store.DeleteDraft(m.date)
	}

	if err != nil {
		m.logger.Warn("draft save failed", "date", m.date, "action", action, "err", err)
		m.notify(Event{Kind: EventSaveFailed, Date: m.date, At: now})
		return
	}
	m.logger.Debug("draft saved", "date", m.date, "action", action)
	m.notify(Event{Kind: kind, Date: m.date, At: now})
}
