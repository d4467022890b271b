package timer

import (
	"sync"
	"time"
)

// Slot holds at most one pending callback. Scheduling replaces whatever was
// pending, so two timers of the same kind are never live at once.
//
// A callback that was already handed to the scheduler when it got replaced or
// cancelled is dropped when it fires, so a late real-timer goroutine cannot run
// stale work.
//
// When a locker is given, a firing callback runs with it held, and the
// staleness check happens after it is acquired. Owners that call Schedule,
// Cancel and FireNow while holding the same locker get all of their work,
// timer callbacks included, serialized on one logical thread.
type Slot struct {
	sched  Scheduler
	locker sync.Locker

	mu     sync.Mutex
	gen    uint64
	handle Handle
	fn     func()
}

// NewSlot returns an empty slot backed by sched. locker may be nil.
func NewSlot(sched Scheduler, locker sync.Locker) *Slot {
	return &Slot{sched: sched, locker: locker}
}

// Schedule cancels any pending callback and arms f to run after d.
func (s *Slot) Schedule(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.fn = f
	s.handle = s.sched.AfterFunc(d, func() { s.fire(gen) })
}

// Cancel drops the pending callback. It reports whether one was pending.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

// FireNow cancels the pending callback and runs it immediately on the calling
// goroutine. It reports whether anything ran. With a locker, the caller must
// already hold it.
func (s *Slot) FireNow() bool {
	s.mu.Lock()
	f := s.fn
	pending := s.stopLocked()
	s.mu.Unlock()

	if !pending || f == nil {
		return false
	}
	f()
	return true
}

// Pending reports whether a callback is armed.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

func (s *Slot) fire(gen uint64) {
	if s.locker != nil {
		s.locker.Lock()
		defer s.locker.Unlock()
	}

	s.mu.Lock()
	if gen != s.gen || s.handle == nil {
		s.mu.Unlock()
		return
	}
	f := s.fn
	s.handle = nil
	s.fn = nil
	s.mu.Unlock()

	f()
}

// stopLocked must be called with s.mu held.
func (s *Slot) stopLocked() bool {
	if s.handle == nil {
		return false
	}
	s.handle.Stop()
	s.handle = nil
	s.fn = nil
	s.gen++
	return true
}
