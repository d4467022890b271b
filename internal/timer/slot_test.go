package timer

import (
	"sync"
	"testing"
	"time"
)

func TestSlot_ScheduleReplaces(t *testing.T) {
	m := NewManual(start)
	s := NewSlot(m, nil)
	var got []string

	s.Schedule(time.Second, func() { got = append(got, "first") })
	s.Schedule(time.Second, func() { got = append(got, "second") })

	if m.Pending() != 1 {
		t.Fatalf("scheduler has %d pending, want 1", m.Pending())
	}
	m.Advance(2 * time.Second)

	if len(got) != 1 || got[0] != "second" {
		t.Errorf("ran %v, want [second]", got)
	}
	if s.Pending() {
		t.Error("Pending() = true after firing")
	}
}

func TestSlot_Cancel(t *testing.T) {
	m := NewManual(start)
	s := NewSlot(m, nil)

	if s.Cancel() {
		t.Error("Cancel() on empty slot = true")
	}

	ran := false
	s.Schedule(time.Second, func() { ran = true })
	if !s.Cancel() {
		t.Error("Cancel() = false, want true")
	}
	m.Advance(time.Minute)
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestSlot_FireNow(t *testing.T) {
	m := NewManual(start)
	s := NewSlot(m, nil)
	count := 0

	if s.FireNow() {
		t.Error("FireNow() on empty slot = true")
	}

	s.Schedule(time.Minute, func() { count++ })
	if !s.FireNow() {
		t.Fatal("FireNow() = false, want true")
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	m.Advance(time.Hour)
	if count != 1 {
		t.Errorf("callback ran again after FireNow, count = %d", count)
	}
}

// A stale fire can arrive after the slot moved on when the scheduler is real.
type captureScheduler struct {
	fns []func()
}

type nopHandle struct{}

func (nopHandle) Stop() bool { return false }

func (c *captureScheduler) AfterFunc(_ time.Duration, f func()) Handle {
	c.fns = append(c.fns, f)
	return nopHandle{}
}

func TestSlot_StaleFireIsDropped(t *testing.T) {
	c := &captureScheduler{}
	s := NewSlot(c, nil)
	var got []string

	s.Schedule(time.Second, func() { got = append(got, "old") })
	s.Schedule(time.Second, func() { got = append(got, "new") })

	// The first timer could not be stopped and fires late.
	c.fns[0]()
	if len(got) != 0 {
		t.Fatalf("stale callback ran: %v", got)
	}

	c.fns[1]()
	if len(got) != 1 || got[0] != "new" {
		t.Errorf("ran %v, want [new]", got)
	}

	s.Schedule(time.Second, func() { got = append(got, "cancelled") })
	s.Cancel()
	c.fns[2]()
	if len(got) != 1 {
		t.Errorf("cancelled callback ran: %v", got)
	}
}

type countingLocker struct {
	mu     sync.Mutex
	held   bool
	locked int
}

func (l *countingLocker) Lock() {
	l.mu.Lock()
	l.held = true
	l.locked++
}

func (l *countingLocker) Unlock() {
	l.held = false
	l.mu.Unlock()
}

func TestSlot_FireHoldsLocker(t *testing.T) {
	m := NewManual(start)
	l := &countingLocker{}
	s := NewSlot(m, l)

	heldDuringCallback := false
	s.Schedule(time.Second, func() { heldDuringCallback = l.held })
	m.Advance(time.Second)

	if !heldDuringCallback {
		t.Error("callback ran without the locker held")
	}
	if l.locked != 1 {
		t.Errorf("locker acquired %d times, want 1", l.locked)
	}
	if l.held {
		t.Error("locker still held after callback")
	}
}

func TestSlot_StaleFireWithLockerIsDropped(t *testing.T) {
	c := &captureScheduler{}
	l := &countingLocker{}
	s := NewSlot(c, l)
	ran := false

	s.Schedule(time.Second, func() { ran = true })

	// The owner cancels while holding the locker; the fire arrives afterwards.
	l.Lock()
	s.Cancel()
	l.Unlock()
	c.fns[0]()

	if ran {
		t.Error("callback cancelled under the locker still ran")
	}
}
