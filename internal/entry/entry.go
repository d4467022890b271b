// Package entry defines journal entries and drafts, and the pure decisions made
// about them: the content test, the save plan for a draft, and how a draft
// becomes an entry.
package entry

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used as the key for entries and drafts
const DateLayout = "2006-01-02"

// Rating bounds. 0 means "no rating recorded".
const (
	MinRating = 0
	MaxRating = 10
)

// Entry is a finalized journal record, at most one per date.
type Entry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Physical  int       `json:"physical"`
	Mental    int       `json:"mental"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasContent reports whether the entry carries any user data.
func (e Entry) HasContent() bool {
	return HasContent(&e.Physical, &e.Mental, e.Text)
}

// Draft is the in-progress state for a date. A nil rating has not been chosen
// yet, which is different from an explicit 0.
type Draft struct {
	Date      string    `json:"date"`
	Physical  *int      `json:"physical,omitempty"`
	Mental    *int      `json:"mental,omitempty"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasContent reports whether the draft carries any user data.
func (d Draft) HasContent() bool {
	return HasContent(d.Physical, d.Mental, d.Text)
}

// Fields returns the editable part of the draft.
func (d Draft) Fields() Fields {
	return Fields{Physical: copyRating(d.Physical), Mental: copyRating(d.Mental), Text: d.Text}
}

// HasContent is the content test: a positive rating or non-blank text.
func HasContent(physical, mental *int, text string) bool {
	return ratingOf(physical) > 0 || ratingOf(mental) > 0 || strings.TrimSpace(text) != ""
}

// Kind selects one of the two rating channels.
type Kind string

const (
	Physical Kind = "physical"
	Mental   Kind = "mental"
)

// Fields is the in-memory editing state for the active date.
type Fields struct {
	Physical *int
	Mental   *int
	Text     string
}

// WithRating returns a copy of f with the rating for kind set to value.
func (f Fields) WithRating(kind Kind, value int) Fields {
	v := value
	out := f.clone()
	switch kind {
	case Physical:
		out.Physical = &v
	case Mental:
		out.Mental = &v
	}
	return out
}

// WithoutRating returns a copy of f with the rating for kind unset.
func (f Fields) WithoutRating(kind Kind) Fields {
	out := f.clone()
	switch kind {
	case Physical:
		out.Physical = nil
	case Mental:
		out.Mental = nil
	}
	return out
}

// WithText returns a copy of f with the text replaced.
func (f Fields) WithText(text string) Fields {
	out := f.clone()
	out.Text = text
	return out
}

// IsZero reports whether nothing has been entered at all.
func (f Fields) IsZero() bool {
	return f.Physical == nil && f.Mental == nil && f.Text == ""
}

func (f Fields) clone() Fields {
	return Fields{Physical: copyRating(f.Physical), Mental: copyRating(f.Mental), Text: f.Text}
}

// SaveAction is the outcome of PlanSave.
type SaveAction int

const (
	// SaveWrite means the draft has content and replaces the stored one.
	SaveWrite SaveAction = iota
	// SaveDelete means the draft is empty and the stored one must go.
	SaveDelete
)

func (a SaveAction) String() string {
	if a == SaveWrite {
		return "write"
	}
	return "delete"
}

// PlanSave merges the editing state into a draft for date and decides whether
// it should be written or deleted. It performs no I/O.
func PlanSave(date string, f Fields, now time.Time) (Draft, SaveAction) {
	d := Draft{
		Date:      date,
		Physical:  copyRating(f.Physical),
		Mental:    copyRating(f.Mental),
		Text:      f.Text,
		UpdatedAt: now,
	}
	if !d.HasContent() {
		return d, SaveDelete
	}
	return d, SaveWrite
}

// FromDraft builds the finalized entry for d. The id of existing is kept when
// present so refinalizing a date does not change its identity; otherwise
// newID supplies one. Unset ratings become 0 and the text is trimmed.
func FromDraft(d Draft, existing *Entry, newID func() string, now time.Time) Entry {
	id := ""
	if existing != nil {
		id = existing.ID
	}
	if id == "" {
		id = newID()
	}
	return Entry{
		ID:        id,
		Date:      d.Date,
		Physical:  ratingOf(d.Physical),
		Mental:    ratingOf(d.Mental),
		Text:      strings.TrimSpace(d.Text),
		UpdatedAt: now,
	}
}

// Upsert replaces the entry with the same id or date, or appends e.
func Upsert(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	replaced := false
	for _, existing := range entries {
		if !replaced && (existing.ID == e.ID || existing.Date == e.Date) {
			out = append(out, e)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, e)
	}
	return out
}

// FindByDate returns the entry for date, or nil.
func FindByDate(entries []Entry, date string) *Entry {
	for i := range entries {
		if entries[i].Date == date {
			e := entries[i]
			return &e
		}
	}
	return nil
}

// Rating returns a pointer to v, for building drafts.
func Rating(v int) *int {
	return &v
}

func ratingOf(r *int) int {
	if r == nil {
		return 0
	}
	return *r
}

func copyRating(r *int) *int {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
