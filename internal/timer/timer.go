// Package timer provides the clock and one-shot timer abstractions used by the
// journal session, with a real implementation and a manual one for tests.
package timer

import (
	"sort"
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Handle is a scheduled callback that can be stopped before it fires.
type Handle interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped it (false if it already ran or was already stopped).
	Stop() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Handle
}

// Source is a Clock and a Scheduler sharing one notion of time.
type Source interface {
	Clock
	Scheduler
}

// Real is the wall clock in a fixed location.
type Real struct {
	Location *time.Location
}

// NewReal returns a Real source in loc (time.Local when nil).
func NewReal(loc *time.Location) Real {
	if loc == nil {
		loc = time.Local
	}
	return Real{Location: loc}
}

// Now returns the current time in r.Location.
func (r Real) Now() time.Time {
	if r.Location == nil {
		return time.Now()
	}
	return time.Now().In(r.Location)
}

// AfterFunc wraps time.AfterFunc. f runs on its own goroutine.
func (Real) AfterFunc(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, f)
}

// Manual is a Source whose time only moves when Advance or Set is called.
// Due callbacks run synchronously on the goroutine that moves the clock.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualHandle
}

// NewManual returns a Manual source starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

type manualHandle struct {
	m       *Manual
	due     time.Time
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (h *manualHandle) Stop() bool {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if h.stopped || h.fired {
		return false
	}
	h.stopped = true
	h.m.remove(h)
	return true
}

// Now returns the manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules f to run once the manual time reaches now+d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	h := &manualHandle{m: m, due: m.now.Add(d), seq: m.seq, f: f}
	m.pending = append(m.pending, h)
	return h
}

// Advance moves time forward by d, running every callback that becomes due in
// due-time order. Callbacks scheduled while advancing run too if they fall due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()
	m.runUntil(target)
}

// Set jumps the clock to t without running anything, like a wall clock change.
// Callbacks keep their absolute due time.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Pending returns the number of scheduled callbacks that have not run.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// NextDue returns the due time of the earliest pending callback.
func (m *Manual) NextDue() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return time.Time{}, false
	}
	m.sortPending()
	return m.pending[0].due, true
}

func (m *Manual) runUntil(target time.Time) {
	for {
		m.mu.Lock()
		m.sortPending()
		if len(m.pending) == 0 || m.pending[0].due.After(target) {
			if target.After(m.now) {
				m.now = target
			}
			m.mu.Unlock()
			return
		}
		h := m.pending[0]
		m.pending = m.pending[1:]
		h.fired = true
		if h.due.After(m.now) {
			m.now = h.due
		}
		m.mu.Unlock()

		h.f()
	}
}

func (m *Manual) sortPending() {
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due.Equal(m.pending[j].due) {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].due.Before(m.pending[j].due)
	})
}

func (m *Manual) remove(h *manualHandle) {
	for i, p := range m.pending {
		if p == h {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
