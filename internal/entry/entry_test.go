package entry

import (
	"testing"
	"time"
)

var now = time.Date(2024, time.August, 3, 21, 15, 0, 0, time.UTC)

func TestHasContent(t *testing.T) {
	tests := []struct {
		name     string
		physical *int
		mental   *int
		text     string
		expected bool
	}{
		{"all unset", nil, nil, "", false},
		{"explicit zeros", Rating(0), Rating(0), "", false},
		{"whitespace text", nil, nil, "   \n\t", false},
		{"physical only", Rating(7), nil, "", true},
		{"mental only", nil, Rating(1), "", true},
		{"text only", nil, nil, "ok", true},
		{"padded text", nil, nil, "  ok  ", true},
		{"negative rating", Rating(-3), nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasContent(tt.physical, tt.mental, tt.text); got != tt.expected {
				t.Errorf("HasContent() = %v, expected %v", got, tt.expected)
			}
			d := Draft{Physical: tt.physical, Mental: tt.mental, Text: tt.text}
			if got := d.HasContent(); got != tt.expected {
				t.Errorf("Draft.HasContent() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestEntryHasContent(t *testing.T) {
	if (Entry{}).HasContent() {
		t.Error("empty entry should have no content")
	}
	if !(Entry{Mental: 4}).HasContent() {
		t.Error("entry with mental rating should have content")
	}
}

func TestPlanSave(t *testing.T) {
	tests := []struct {
		name     string
		fields   Fields
		expected SaveAction
	}{
		{"empty fields delete", Fields{}, SaveDelete},
		{"whitespace text delete", Fields{Text: "   "}, SaveDelete},
		{"zero rating delete", Fields{Physical: Rating(0)}, SaveDelete},
		{"rating writes", Fields{Physical: Rating(7)}, SaveWrite},
		{"text writes", Fields{Text: "slept well"}, SaveWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, action := PlanSave("2024-08-03", tt.fields, now)
			if action != tt.expected {
				t.Errorf("PlanSave() action = %v, expected %v", action, tt.expected)
			}
			if d.Date != "2024-08-03" {
				t.Errorf("draft date = %q, expected 2024-08-03", d.Date)
			}
			if !d.UpdatedAt.Equal(now) {
				t.Errorf("draft UpdatedAt = %v, expected %v", d.UpdatedAt, now)
			}
		})
	}
}

func TestPlanSave_DoesNotAliasFields(t *testing.T) {
	f := Fields{Physical: Rating(3)}
	d, _ := PlanSave("2024-08-03", f, now)

	*f.Physical = 9
	if *d.Physical != 3 {
		t.Errorf("draft should hold a copy of the rating, got %d", *d.Physical)
	}
}

func TestFieldsWith(t *testing.T) {
	f := Fields{Text: "ok"}

	g := f.WithRating(Physical, 7).WithRating(Mental, 5)
	if f.Physical != nil || f.Mental != nil {
		t.Error("WithRating must not mutate the receiver")
	}
	if *g.Physical != 7 || *g.Mental != 5 || g.Text != "ok" {
		t.Errorf("unexpected fields %+v", g)
	}

	h := g.WithoutRating(Physical).WithText("")
	if h.Physical != nil {
		t.Error("WithoutRating should unset physical")
	}
	if *h.Mental != 5 {
		t.Error("WithoutRating should keep mental")
	}
	if h.Text != "" {
		t.Error("WithText should replace text")
	}

	if !(Fields{}).IsZero() {
		t.Error("zero Fields should report IsZero")
	}
	if (Fields{Physical: Rating(0)}).IsZero() {
		t.Error("explicit 0 rating is not zero Fields")
	}
}

func TestFromDraft(t *testing.T) {
	newID := func() string { return "new-id" }

	t.Run("new entry defaults ratings and trims text", func(t *testing.T) {
		d := Draft{Date: "2024-08-03", Mental: Rating(5), Text: "  ok \n"}
		e := FromDraft(d, nil, newID, now)

		if e.ID != "new-id" {
			t.Errorf("ID = %q, expected new-id", e.ID)
		}
		if e.Physical != 0 || e.Mental != 5 {
			t.Errorf("ratings = %d/%d, expected 0/5", e.Physical, e.Mental)
		}
		if e.Text != "ok" {
			t.Errorf("Text = %q, expected trimmed 'ok'", e.Text)
		}
		if !e.UpdatedAt.Equal(now) {
			t.Errorf("UpdatedAt = %v, expected %v", e.UpdatedAt, now)
		}
	})

	t.Run("existing entry keeps its id", func(t *testing.T) {
		existing := &Entry{ID: "X", Date: "2024-08-03", Physical: 2}
		e := FromDraft(Draft{Date: "2024-08-03", Physical: Rating(9)}, existing, newID, now)

		if e.ID != "X" {
			t.Errorf("ID = %q, expected X", e.ID)
		}
		if e.Physical != 9 {
			t.Errorf("Physical = %d, expected 9", e.Physical)
		}
	})
}

func TestUpsert(t *testing.T) {
	entries := []Entry{
		{ID: "a", Date: "2024-08-01"},
		{ID: "b", Date: "2024-08-02"},
	}

	t.Run("append new date", func(t *testing.T) {
		got := Upsert(entries, Entry{ID: "c", Date: "2024-08-03"})
		if len(got) != 3 || got[2].ID != "c" {
			t.Errorf("unexpected result %+v", got)
		}
		if len(entries) != 2 {
			t.Error("Upsert must not modify its input")
		}
	})

	t.Run("replace by date", func(t *testing.T) {
		got := Upsert(entries, Entry{ID: "b", Date: "2024-08-02", Text: "new"})
		if len(got) != 2 || got[1].Text != "new" {
			t.Errorf("unexpected result %+v", got)
		}
	})

	t.Run("replace by id", func(t *testing.T) {
		got := Upsert(entries, Entry{ID: "a", Date: "2024-08-01", Mental: 3})
		if len(got) != 2 || got[0].Mental != 3 {
			t.Errorf("unexpected result %+v", got)
		}
	})
}

func TestFindByDate(t *testing.T) {
	entries := []Entry{{ID: "a", Date: "2024-08-01"}}

	if e := FindByDate(entries, "2024-08-01"); e == nil || e.ID != "a" {
		t.Errorf("FindByDate() = %+v, expected entry a", e)
	}
	if e := FindByDate(entries, "2024-08-02"); e != nil {
		t.Errorf("FindByDate() = %+v, expected nil", e)
	}
}
