package service

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/timer"
)

// ErrNotMounted is returned for edits made while no day is active
var ErrNotMounted = errors.New("session is not mounted")

// eventBuffer is the capacity of the Events channel. Events beyond it are
// dropped rather than blocking the session.
const eventBuffer = 32

// Session is one editing session: the draft manager and the rollover
// controller for a journal, behind a single lock. Input, lifecycle
// notifications and both timers all run under that lock, one at a time.
type Session struct {
	mu       sync.Mutex
	drafts   *DraftManager
	rollover *Rollover
	logger   *log.Logger
	events   chan Event
}

// SessionOptions configures NewSession
type SessionOptions struct {
	Source   timer.Source  // clock and scheduler; the real clock in time.Local if nil
	Debounce time.Duration // text save delay; DefaultDebounce if zero
	Logger   *log.Logger
}

// NewSession creates an idle session over journal. Call Mount to start.
func NewSession(journal *JournalService, opts SessionOptions) *Session {
	src := opts.Source
	if src == nil {
		src = timer.NewReal(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = journal.logger
	}

	s := &Session{
		logger: logger,
		events: make(chan Event, eventBuffer),
	}
	s.drafts = NewDraftManager(journal, src, opts.Debounce, &s.mu, logger)
	s.rollover = NewRollover(s.drafts, src, &s.mu, logger)
	s.drafts.notify = s.emit
	s.rollover.notify = s.emit
	return s
}

// Events delivers what the session persisted. Nobody has to listen.
func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.logger.Debug("event dropped", "kind", ev.Kind, "date", ev.Date)
	}
}

// Mount activates today and arms the midnight timer.
func (s *Session) Mount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollover.Mount()
}

// SetRating records a rating for the active date and saves it immediately.
// Ratings outside 0..10 are rejected and leave the state untouched.
func (s *Session) SetRating(kind entry.Kind, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.rollover.Mounted() {
		return ErrNotMounted
	}
	return s.drafts.SetRating(kind, value)
}

// ClearRating unsets a rating for the active date and saves immediately.
func (s *Session) ClearRating(kind entry.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.rollover.Mounted() {
		return ErrNotMounted
	}
	return s.drafts.ClearRating(kind)
}

// SetText replaces the text for the active date. It is saved after the
// debounce delay.
func (s *Session) SetText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.rollover.Mounted() {
		return ErrNotMounted
	}
	s.drafts.SetText(text)
	return nil
}

// Flush saves pending text now.
func (s *Session) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts.Flush()
}

// BecameActive is the app-resumed notification.
func (s *Session) BecameActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollover.BecameActive()
}

// EnteredBackground is the app-suspended notification.
func (s *Session) EnteredBackground() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollover.EnteredBackground()
}

// FinalizeNow finalizes the active date and clears the editing state.
func (s *Session) FinalizeNow() FinalizeResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollover.FinalizeNow()
}

// Close cancels both timers. Pending text is not saved; call Flush first to
// keep it.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollover.Unmount()
}

// State returns a snapshot of the editing state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.drafts.Fields()
	return State{
		Date:        s.rollover.Active(),
		Mounted:     s.rollover.Mounted(),
		Physical:    f.Physical,
		Mental:      f.Mental,
		Text:        f.Text,
		TextPending: s.drafts.TextPending(),
	}
}
