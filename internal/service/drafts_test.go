package service

import (
	"errors"
	"testing"
	"time"

	"github.com/xolan/chronos/internal/entry"
)

func newDrafts(t *testing.T, now time.Time) (*harness, *DraftManager) {
	t.Helper()
	h := newHarness(t, now)
	m := NewDraftManager(h.journal, h.clock, DefaultDebounce, nil, nil)
	m.LoadForDate(h.journal.Today())
	return h, m
}

func TestDraftManager_RatingSavedImmediately(t *testing.T) {
	h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))

	if err := m.SetRating(entry.Physical, 7); err != nil {
		t.Fatalf("SetRating() returned unexpected error: %v", err)
	}

	d, ok := h.draft("2024-08-03")
	if !ok {
		t.Fatal("rating was not persisted immediately")
	}
	if d.Physical == nil || *d.Physical != 7 || d.Mental != nil || d.Text != "" {
		t.Errorf("draft = physical %s mental %s text %q", ratingValue(d.Physical), ratingValue(d.Mental), d.Text)
	}
	if h.clock.Pending() != 0 {
		t.Error("a rating change should not schedule anything")
	}
}

func TestDraftManager_RatingWhileTextPending(t *testing.T) {
	h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))

	m.SetText("feeling ok")
	h.clock.Advance(100 * time.Millisecond)
	if err := m.SetRating(entry.Mental, 4); err != nil {
		t.Fatal(err)
	}

	d, ok := h.draft("2024-08-03")
	if !ok || d.Mental == nil || *d.Mental != 4 {
		t.Fatalf("rating not in store while text save pending: %+v, %v", d, ok)
	}
	if d.Text != "feeling ok" {
		t.Errorf("immediate save should merge the in-memory text, got %q", d.Text)
	}
	if !m.TextPending() {
		t.Error("text save should still be pending")
	}
}

func TestDraftManager_TextCoalesced(t *testing.T) {
	h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))

	for _, text := range []string{"h", "he", "hel", "hell", "hello"} {
		m.SetText(text)
		h.clock.Advance(100 * time.Millisecond)
	}
	if h.store.draftWrites != 0 {
		t.Fatalf("%d writes before the quiet period ended", h.store.draftWrites)
	}
	if m.Fields().Text != "hello" {
		t.Errorf("in-memory text = %q, want hello", m.Fields().Text)
	}

	h.clock.Advance(DefaultDebounce)

	if h.store.draftWrites != 1 {
		t.Errorf("draftWrites = %d, want 1", h.store.draftWrites)
	}
	d, ok := h.draft("2024-08-03")
	if !ok || d.Text != "hello" {
		t.Errorf("draft = %+v, %v; want text hello", d, ok)
	}
}

func TestDraftManager_TextSaveReadsStateAtFireTime(t *testing.T) {
	h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))

	m.SetText("note")
	h.clock.Advance(200 * time.Millisecond)
	// A rating change between scheduling and firing is part of the final write.
	if err := m.SetRating(entry.Physical, 3); err != nil {
		t.Fatal(err)
	}
	h.clock.Advance(time.Second)

	d, _ := h.draft("2024-08-03")
	if d.Physical == nil || *d.Physical != 3 || d.Text != "note" {
		t.Errorf("draft = %+v", d)
	}
}

func TestDraftManager_EmptySavesDelete(t *testing.T) {
	tests := []struct {
		name string
		edit func(m *DraftManager)
	}{
		{"whitespace text", func(m *DraftManager) { m.SetText("  \n ") }},
		{"zero rating", func(m *DraftManager) { _ = m.SetRating(entry.Physical, 0) }},
		{"cleared rating", func(m *DraftManager) { _ = m.ClearRating(entry.Physical) }},
		{"text erased", func(m *DraftManager) { m.SetText("") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))
			h.writeDraft(t, entry.Draft{Date: "2024-08-03", Physical: entry.Rating(5)})
			m.LoadForDate("2024-08-03")
			if tt.name != "cleared rating" {
				_ = m.ClearRating(entry.Physical)
			}

			tt.edit(m)
			h.clock.Advance(time.Second)

			if _, ok := h.draft("2024-08-03"); ok {
				t.Error("draft without content left in store")
			}
			if h.store.draftWrites != 0 {
				t.Errorf("an empty draft was written %d times", h.store.draftWrites)
			}
		})
	}
}

func TestDraftManager_InvalidRatingRejected(t *testing.T) {
	h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))
	if err := m.SetRating(entry.Physical, 6); err != nil {
		t.Fatal(err)
	}

	for _, v := range []int{-1, 11, 100} {
		if err := m.SetRating(entry.Physical, v); !errors.Is(err, entry.ErrInvalidRating) {
			t.Errorf("SetRating(%d) error = %v, want ErrInvalidRating", v, err)
		}
	}
	if err := m.SetRating(entry.Kind("spiritual"), 5); !errors.Is(err, entry.ErrInvalidKind) {
		t.Errorf("SetRating(bad kind) error = %v", err)
	}

	if p := m.Fields().Physical; p == nil || *p != 6 {
		t.Errorf("state changed by rejected rating: %v", p)
	}
	if h.store.draftWrites != 1 {
		t.Errorf("draftWrites = %d, want 1", h.store.draftWrites)
	}
}

func TestDraftManager_LoadForDate(t *testing.T) {
	h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))
	h.writeDraft(t, entry.Draft{Date: "2024-08-02", Mental: entry.Rating(8), Text: "yesterday"})

	m.LoadForDate("2024-08-02")
	f := m.Fields()
	if m.Date() != "2024-08-02" || f.Physical != nil || f.Mental == nil || *f.Mental != 8 || f.Text != "yesterday" {
		t.Errorf("loaded %s %+v", m.Date(), f)
	}

	m.LoadForDate("2024-08-01")
	if !m.Fields().IsZero() {
		t.Errorf("state not reset for a date without draft: %+v", m.Fields())
	}
}

func TestDraftManager_LoadForDateDropsPendingSave(t *testing.T) {
	h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))
	m.SetText("typed")
	m.LoadForDate("2024-08-04")
	h.clock.Advance(time.Second)

	if h.store.draftWrites != 0 {
		t.Error("save for the previous date ran after switching dates")
	}
}

func TestDraftManager_Finalize(t *testing.T) {
	h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))
	if err := m.SetRating(entry.Physical, 7); err != nil {
		t.Fatal(err)
	}
	m.SetText("pending text")

	res := m.Finalize("2024-08-03")
	if res.Outcome != FinalizeWritten {
		t.Fatalf("Outcome = %v", res.Outcome)
	}
	e := h.entry("2024-08-03")
	if e == nil || e.Physical != 7 || e.Text != "pending text" {
		t.Errorf("entry = %+v; pending text should be flushed before finalizing", e)
	}
	if !m.Fields().IsZero() || m.TextPending() {
		t.Error("in-memory state not reset after finalize")
	}
}

func TestDraftManager_WriteFailureKeepsState(t *testing.T) {
	h, m := newDrafts(t, at(2024, time.August, 3, 10, 0, 0, 0))
	var events []Event
	m.notify = func(ev Event) { events = append(events, ev) }
	h.store.failWrites = true

	if err := m.SetRating(entry.Mental, 9); err != nil {
		t.Fatalf("store failures must not surface, got %v", err)
	}
	if p := m.Fields().Mental; p == nil || *p != 9 {
		t.Error("in-memory rating lost after a failed write")
	}
	if len(events) != 1 || events[0].Kind != EventSaveFailed {
		t.Errorf("events = %+v", events)
	}
}
