package service

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/xolan/chronos/internal/timer"
	"github.com/xolan/chronos/internal/timeutil"
)

// Rollover tracks which calendar day is current. A self-rescheduling timer
// fires at each local midnight, and BecameActive catches days that passed
// while the app was suspended. Either way the outgoing day's draft is
// finalized before the new day is loaded.
//
// Like DraftManager it is not safe for concurrent use on its own.
type Rollover struct {
	drafts   *DraftManager
	journal  *JournalService
	clock    timer.Clock
	midnight *timer.Slot
	logger   *log.Logger
	notify   func(Event)

	active       string // "" while idle
	mounted      bool
	lastOpenDate string
}

// NewRollover creates an idle Rollover driving drafts.
func NewRollover(drafts *DraftManager, src timer.Source, locker sync.Locker, logger *log.Logger) *Rollover {
	if logger == nil {
		logger = drafts.logger
	}
	return &Rollover{
		drafts:   drafts,
		journal:  drafts.journal,
		clock:    src,
		midnight: timer.NewSlot(src, locker),
		logger:   logger,
		notify:   func(Event) {},
	}
}

// Active returns the active date, or "" when idle.
func (r *Rollover) Active() string {
	if !r.mounted {
		return ""
	}
	return r.active
}

// Mounted reports whether the controller is active.
func (r *Rollover) Mounted() bool {
	return r.mounted
}

// LastOpenDate returns the date recorded at the last mount, resume or suspend.
func (r *Rollover) LastOpenDate() string {
	return r.lastOpenDate
}

// MidnightPending reports whether the midnight timer is armed.
func (r *Rollover) MidnightPending() bool {
	return r.midnight.Pending()
}

func (r *Rollover) today() string {
	return timeutil.DateKey(r.clock.Now())
}

// Mount activates today. A date tracked from an earlier mount that is no
// longer today is finalized first, as is any leftover draft from a past day.
func (r *Rollover) Mount() {
	today := r.today()

	if r.active != "" && r.active != today {
		r.drafts.Finalize(r.active)
	}
	for _, res := range r.journal.FinalizeBefore(today) {
		if res.Outcome != FinalizeNoDraft {
			r.logger.Info("finalized leftover draft", "date", res.Date, "outcome", res.Outcome)
			r.notify(Event{Kind: EventFinalized, Date: res.Date, Outcome: res.Outcome, At: r.clock.Now()})
		}
	}

	changed := r.active != today
	r.active = today
	r.mounted = true
	r.lastOpenDate = today
	r.drafts.LoadForDate(today)
	r.scheduleMidnight()

	if changed {
		r.notify(Event{Kind: EventRollover, Date: today, At: r.clock.Now()})
	}
}

func (r *Rollover) scheduleMidnight() {
	r.midnight.Schedule(timeutil.UntilMidnight(r.clock.Now()), r.onMidnight)
}

func (r *Rollover) onMidnight() {
	if !r.mounted {
		return
	}
	today := r.today()
	if today != r.active {
		prev := r.active
		r.logger.Debug("midnight rollover", "from", prev, "to", today)
		r.drafts.Finalize(prev)
		r.active = today
		r.drafts.LoadForDate(today)
		r.notify(Event{Kind: EventRollover, Date: today, At: r.clock.Now()})
	}
	r.scheduleMidnight()
}

// BecameActive handles a resume from background. If the day changed since the
// last recorded open, that day is finalized and today is mounted again.
func (r *Rollover) BecameActive() {
	today := r.today()
	r.drafts.Flush()
	if r.mounted && r.lastOpenDate != "" && r.lastOpenDate != today {
		r.logger.Debug("resumed on a new day", "last", r.lastOpenDate, "today", today)
		r.drafts.Finalize(r.lastOpenDate)
		r.drafts.Reset()
		r.Mount()
	}
	r.lastOpenDate = today
}

// EnteredBackground saves pending text and records the date.
func (r *Rollover) EnteredBackground() {
	r.drafts.Flush()
	r.lastOpenDate = r.today()
}

// FinalizeNow finalizes the active date on request.
func (r *Rollover) FinalizeNow() FinalizeResult {
	if !r.mounted {
		return FinalizeResult{Outcome: FinalizeNoDraft}
	}
	return r.drafts.Finalize(r.active)
}

// Unmount cancels both timers. The active date is remembered so a later Mount
// can finalize it if the day changed in between.
func (r *Rollover) Unmount() {
	r.midnight.Cancel()
	r.drafts.Stop()
	r.mounted = false
}
