// Package service provides the business logic layer for the chronos journal.
// It wraps the storage, timer, config, and stats packages, providing one API
// for both CLI and TUI frontends.
package service

import (
	"time"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/stats"
)

// FinalizeOutcome says what Finalize did with a date's draft
type FinalizeOutcome int

const (
	// FinalizeNoDraft means there was nothing stored for the date
	FinalizeNoDraft FinalizeOutcome = iota
	// FinalizeDiscarded means the draft had no content and was removed
	FinalizeDiscarded
	// FinalizeWritten means the draft became an entry
	FinalizeWritten
)

func (o FinalizeOutcome) String() string {
	switch o {
	case FinalizeDiscarded:
		return "discarded"
	case FinalizeWritten:
		return "written"
	default:
		return "no draft"
	}
}

// FinalizeResult reports a single finalize
type FinalizeResult struct {
	Date    string
	Outcome FinalizeOutcome
	Entry   *entry.Entry // set when Outcome is FinalizeWritten
}

// ListResult contains the results of listing entries
type ListResult struct {
	Entries []entry.Entry // newest first
	Period  string        // Human-readable period description
	From    string
	To      string
}

// StatsResult contains statistics for a period
type StatsResult struct {
	Statistics stats.Statistics
	Physical   []stats.RatingBreakdown
	Mental     []stats.RatingBreakdown
	Period     string
	From       string
	To         string
}

// ReportData contains per-month averages
type ReportData struct {
	Groups     []GroupData
	EntryCount int
	Period     string
}

// GroupData represents a single month in a report
type GroupData struct {
	Name            string // YYYY-MM
	EntryCount      int
	AveragePhysical float64
	AverageMental   float64
}

// EventKind identifies a session event
type EventKind int

const (
	// EventDraftSaved means the active draft was written
	EventDraftSaved EventKind = iota
	// EventDraftCleared means the active draft had no content and was removed
	EventDraftCleared
	// EventFinalized means a date was finalized
	EventFinalized
	// EventRollover means the active date changed
	EventRollover
	// EventSaveFailed means a store write failed; the in-memory state is kept
	EventSaveFailed
)

func (k EventKind) String() string {
	switch k {
	case EventDraftSaved:
		return "saved"
	case EventDraftCleared:
		return "cleared"
	case EventFinalized:
		return "finalized"
	case EventRollover:
		return "rollover"
	case EventSaveFailed:
		return "save failed"
	}
	return "unknown"
}

// Event is emitted by a Session after anything reaches the store.
type Event struct {
	Kind    EventKind
	Date    string
	Outcome FinalizeOutcome // for EventFinalized
	At      time.Time
}

// State is a snapshot of the session's editing state.
type State struct {
	Date        string
	Mounted     bool
	Physical    *int
	Mental      *int
	Text        string
	TextPending bool // a debounced text save has not run yet
}
