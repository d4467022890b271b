package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/chronos/internal/cli"
	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/service"
	"github.com/xolan/chronos/internal/timeutil"
)

// runSession mounts a session for today, runs fn, then flushes any pending
// text and closes it. Anything finalized while mounting is reported.
func runSession(deps *cli.Deps, fn func(s *service.Session) error) (service.State, error) {
	s := deps.Services.NewSession()
	s.Mount()
	defer s.Close()

	err := fn(s)
	s.Flush()
	state := s.State()
	reportEvents(deps, s, state.Date)
	return state, err
}

// reportEvents drains the session's events without blocking. Finalizes of
// the active date are left to the caller.
func reportEvents(deps *cli.Deps, s *service.Session, active string) {
	for {
		select {
		case ev := <-s.Events():
			switch ev.Kind {
			case service.EventFinalized:
				if ev.Outcome == service.FinalizeWritten && ev.Date != active {
					_, _ = fmt.Fprintf(deps.Stdout, "Finalized entry for %s\n", ev.Date)
				}
			case service.EventSaveFailed:
				_, _ = fmt.Fprintf(deps.Stderr, "Warning: Failed to save draft for %s (see log for details)\n", ev.Date)
			}
		default:
			return
		}
	}
}

// ShowToday shows the draft for the current day
func ShowToday(deps *cli.Deps) {
	state, _ := runSession(deps, func(*service.Session) error { return nil })

	_, _ = fmt.Fprintf(deps.Stdout, "Today: %s (%s)\n", cli.FormatDate(state.Date), state.Date)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	if !entry.HasContent(state.Physical, state.Mental, state.Text) {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing recorded yet")
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Use 'chronos rate physical 7' or 'chronos write \"...\"' to start today's entry")
		return
	}

	printState(deps, state)
}

func printState(deps *cli.Deps, state service.State) {
	_, _ = fmt.Fprintf(deps.Stdout, "Physical: %s\n", cli.FormatDraftRating(state.Physical))
	_, _ = fmt.Fprintf(deps.Stdout, "Mental:   %s\n", cli.FormatDraftRating(state.Mental))
	if strings.TrimSpace(state.Text) == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Text:     (empty)")
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Text:")
	for _, line := range strings.Split(state.Text, "\n") {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", line)
	}
}

// Rate records a rating on today's draft
func Rate(deps *cli.Deps, kindArg, valueArg string) {
	kind, err := entry.ParseKind(kindArg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: chronos rate <physical|mental> <0-10>")
		deps.Exit(1)
		return
	}

	value, err := entry.ParseRating(valueArg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Ratings go from %d to %d; 0 records the day as unrated\n", entry.MinRating, entry.MaxRating)
		deps.Exit(1)
		return
	}

	state, err := runSession(deps, func(s *service.Session) error {
		return s.SetRating(kind, value)
	})
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to record rating: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Recorded %s rating %d/%d for %s\n", kind, value, entry.MaxRating, state.Date)
}

// ClearRating removes a rating from today's draft
func ClearRating(deps *cli.Deps, kindArg string) {
	kind, err := entry.ParseKind(kindArg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: chronos rate <physical|mental> --clear")
		deps.Exit(1)
		return
	}

	state, err := runSession(deps, func(s *service.Session) error {
		return s.ClearRating(kind)
	})
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to clear rating: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Cleared %s rating for %s\n", kind, state.Date)
}

// Write replaces today's text, or appends a new line to it when appendText is set
func Write(deps *cli.Deps, text string, appendText bool) {
	state, err := runSession(deps, func(s *service.Session) error {
		if appendText {
			if current := s.State().Text; current != "" {
				text = current + "\n" + text
			}
		}
		return s.SetText(text)
	})
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to save text: %v\n", err)
		deps.Exit(1)
		return
	}

	if strings.TrimSpace(state.Text) == "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Cleared text for %s\n", state.Date)
		return
	}
	n := len([]rune(state.Text))
	_, _ = fmt.Fprintf(deps.Stdout, "Saved text for %s (%d %s)\n", state.Date, n, cli.Pluralize("character", n))
}

// Finalize turns a draft into an entry. An empty dateArg finalizes today's
// draft through the session; any other date is finalized directly.
func Finalize(deps *cli.Deps, dateArg string) {
	var result service.FinalizeResult

	if dateArg == "" {
		_, err := runSession(deps, func(s *service.Session) error {
			result = s.FinalizeNow()
			return nil
		})
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
	} else {
		date, err := timeutil.ParseDate(dateArg, deps.Services.Source.Now())
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date: %v\n", err)
			deps.Exit(1)
			return
		}
		result, err = deps.Services.Journal.Finalize(date)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to finalize %s\n", date)
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: The draft was kept; run the command again once the problem is fixed")
			deps.Exit(1)
			return
		}
	}

	switch result.Outcome {
	case service.FinalizeWritten:
		e := result.Entry
		_, _ = fmt.Fprintf(deps.Stdout, "Finalized %s: physical %s, mental %s\n",
			result.Date, cli.FormatRating(e.Physical), cli.FormatRating(e.Mental))
	case service.FinalizeDiscarded:
		_, _ = fmt.Fprintf(deps.Stdout, "Discarded empty draft for %s\n", result.Date)
	default:
		_, _ = fmt.Fprintf(deps.Stdout, "No draft for %s\n", result.Date)
	}
}

// ListDrafts lists every stored draft
func ListDrafts(deps *cli.Deps) {
	drafts := deps.Services.Journal.Drafts()
	if len(drafts) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No drafts")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Drafts:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, d := range drafts {
		line := fmt.Sprintf("%s  P %-7s  M %-7s", d.Date, cli.FormatDraftRating(d.Physical), cli.FormatDraftRating(d.Mental))
		if text := cli.Truncate(d.Text, 40); text != "" {
			line += "  " + text
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %d %s\n", len(drafts), cli.Pluralize("draft", len(drafts)))
}
