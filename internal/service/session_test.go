package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/timer"
)

func TestSession_NotMounted(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 10, 0, 0, 0))
	s := h.session()

	if err := s.SetText("x"); !errors.Is(err, ErrNotMounted) {
		t.Errorf("SetText() error = %v, want ErrNotMounted", err)
	}
	if err := s.SetRating(entry.Physical, 3); !errors.Is(err, ErrNotMounted) {
		t.Errorf("SetRating() error = %v, want ErrNotMounted", err)
	}
	if err := s.ClearRating(entry.Physical); !errors.Is(err, ErrNotMounted) {
		t.Errorf("ClearRating() error = %v, want ErrNotMounted", err)
	}
	if st := s.State(); st.Mounted || st.Date != "" {
		t.Errorf("State() = %+v", st)
	}
}

// A rating is stored at once and survives leaving without finalize.
func TestSession_RatingPersistsWithoutFinalize(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 10, 0, 0, 0))
	s := h.session()
	s.Mount()

	if err := s.SetRating(entry.Physical, 7); err != nil {
		t.Fatal(err)
	}
	s.Close()

	d, ok := h.draft("2024-08-03")
	if !ok || d.Physical == nil || *d.Physical != 7 || d.Mental != nil || d.Text != "" {
		t.Errorf("draft = %+v, %v", d, ok)
	}
	if h.entry("2024-08-03") != nil {
		t.Error("closing the session created an entry")
	}
}

func TestSession_State(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 10, 0, 0, 0))
	s := h.session()
	s.Mount()

	if err := s.SetRating(entry.Mental, 6); err != nil {
		t.Fatal(err)
	}
	if err := s.SetText("draft text"); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	if !st.Mounted || st.Date != "2024-08-03" || st.Physical != nil ||
		st.Mental == nil || *st.Mental != 6 || st.Text != "draft text" || !st.TextPending {
		t.Errorf("State() = %+v", st)
	}

	s.Flush()
	if s.State().TextPending {
		t.Error("TextPending after Flush()")
	}
	if d, _ := h.draft("2024-08-03"); d.Text != "draft text" {
		t.Errorf("Flush() did not save text, draft = %+v", d)
	}
}

func TestSession_Events(t *testing.T) {
	h := newHarness(t, at(2024, time.March, 1, 23, 0, 0, 0))
	s := h.session()
	s.Mount()
	events := drain(s)
	if !hasEvent(events, EventRollover, "2024-03-01") {
		t.Errorf("mount events = %+v", events)
	}

	if err := s.SetRating(entry.Physical, 4); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRating(entry.Physical, 0); err != nil {
		t.Fatal(err)
	}
	events = drain(s)
	if len(events) != 2 || events[0].Kind != EventDraftSaved || events[1].Kind != EventDraftCleared {
		t.Errorf("edit events = %+v", events)
	}

	if err := s.SetText("late"); err != nil {
		t.Fatal(err)
	}
	h.clock.Advance(2 * time.Hour)
	events = drain(s)
	if !hasEvent(events, EventDraftSaved, "2024-03-01") ||
		!hasEvent(events, EventFinalized, "2024-03-01") ||
		!hasEvent(events, EventRollover, "2024-03-02") {
		t.Errorf("rollover events = %+v", events)
	}
}

func TestSession_EventsNeverBlock(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 10, 0, 0, 0))
	s := h.session()
	s.Mount()

	for i := 0; i < eventBuffer*2; i++ {
		if err := s.SetRating(entry.Physical, i%10); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(drain(s)); got != eventBuffer {
		t.Errorf("buffered %d events, want %d", got, eventBuffer)
	}
}

func TestSession_LifecycleAndFinalize(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 21, 0, 0, 0))
	s := h.session()
	s.Mount()
	if err := s.SetText("evening"); err != nil {
		t.Fatal(err)
	}
	s.EnteredBackground()

	h.clock.Set(at(2024, time.August, 4, 8, 0, 0, 0))
	s.BecameActive()

	if e := h.entry("2024-08-03"); e == nil || e.Text != "evening" {
		t.Errorf("entry = %+v", e)
	}
	if s.State().Date != "2024-08-04" {
		t.Errorf("State().Date = %q", s.State().Date)
	}

	if err := s.SetRating(entry.Mental, 9); err != nil {
		t.Fatal(err)
	}
	res := s.FinalizeNow()
	if res.Outcome != FinalizeWritten || res.Entry.Mental != 9 {
		t.Errorf("FinalizeNow() = %+v", res)
	}
	if st := s.State(); st.Mental != nil {
		t.Errorf("state not reset after FinalizeNow(): %+v", st)
	}

	s.Close()
	if h.clock.Pending() != 0 {
		t.Errorf("%d timers pending after Close()", h.clock.Pending())
	}
}

// Real timers fire on their own goroutines; the session lock serializes them
// with concurrent callers.
func TestSession_RealTimers(t *testing.T) {
	h := newHarness(t, time.Now())
	s := NewSession(h.journal, SessionOptions{Source: timer.NewReal(time.Local), Debounce: 5 * time.Millisecond})
	s.Mount()
	defer s.Close()
	drain(s)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = s.SetText("typing")
				_ = s.SetRating(entry.Mental, (i+j)%10+1)
				_ = s.State()
			}
		}(i)
	}
	wg.Wait()

	deadline := time.After(2 * time.Second)
	for {
		if !s.State().TextPending {
			break
		}
		select {
		case <-deadline:
			t.Fatal("debounced save never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	today := s.State().Date
	d, ok := h.disk.ReadDraft(today)
	if !ok || d.Text != "typing" {
		t.Errorf("draft = %+v, %v", d, ok)
	}
}
