package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/chronos/internal/entry"
	"github.com/xolan/chronos/internal/filter"
	"github.com/xolan/chronos/internal/storage"
)

func TestJournalService_Finalize(t *testing.T) {
	tests := []struct {
		name        string
		draft       *entry.Draft
		wantOutcome FinalizeOutcome
		wantEntry   *entry.Entry
	}{
		{
			name:        "no draft",
			draft:       nil,
			wantOutcome: FinalizeNoDraft,
		},
		{
			name:        "whitespace only",
			draft:       &entry.Draft{Date: "2024-08-03", Text: "   "},
			wantOutcome: FinalizeDiscarded,
		},
		{
			name:        "zero ratings only",
			draft:       &entry.Draft{Date: "2024-08-03", Physical: entry.Rating(0), Mental: entry.Rating(0)},
			wantOutcome: FinalizeDiscarded,
		},
		{
			name:        "full draft",
			draft:       &entry.Draft{Date: "2024-08-03", Physical: entry.Rating(7), Mental: entry.Rating(5), Text: "ok"},
			wantOutcome: FinalizeWritten,
			wantEntry:   &entry.Entry{ID: "id-1", Date: "2024-08-03", Physical: 7, Mental: 5, Text: "ok"},
		},
		{
			name:        "absent rating becomes zero and text is trimmed",
			draft:       &entry.Draft{Date: "2024-08-03", Mental: entry.Rating(4), Text: "  walked  \n"},
			wantOutcome: FinalizeWritten,
			wantEntry:   &entry.Entry{ID: "id-1", Date: "2024-08-03", Physical: 0, Mental: 4, Text: "walked"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
			if tt.draft != nil {
				h.writeDraft(t, *tt.draft)
			}

			res, err := h.journal.Finalize("2024-08-03")
			if err != nil {
				t.Fatalf("Finalize() returned unexpected error: %v", err)
			}
			if res.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %v, want %v", res.Outcome, tt.wantOutcome)
			}
			if _, ok := h.draft("2024-08-03"); ok {
				t.Error("draft still present after Finalize()")
			}

			got := h.entry("2024-08-03")
			if tt.wantEntry == nil {
				if got != nil {
					t.Errorf("unexpected entry %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("no entry written")
			}
			if got.ID != tt.wantEntry.ID || got.Physical != tt.wantEntry.Physical ||
				got.Mental != tt.wantEntry.Mental || got.Text != tt.wantEntry.Text {
				t.Errorf("entry = %+v, want %+v", got, tt.wantEntry)
			}
			if !got.UpdatedAt.Equal(h.clock.Now()) {
				t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, h.clock.Now())
			}
		})
	}
}

func TestJournalService_FinalizeIdempotent(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	h.writeDraft(t, entry.Draft{Date: "2024-08-03", Physical: entry.Rating(7), Mental: entry.Rating(5), Text: "ok"})

	if _, err := h.journal.Finalize("2024-08-03"); err != nil {
		t.Fatal(err)
	}
	first := h.disk.ReadEntries()
	writes := h.store.entryWrites

	h.clock.Advance(time.Hour)
	res, err := h.journal.Finalize("2024-08-03")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != FinalizeNoDraft {
		t.Errorf("second Finalize() outcome = %v, want %v", res.Outcome, FinalizeNoDraft)
	}
	if h.store.entryWrites != writes {
		t.Error("second Finalize() wrote entries")
	}
	second := h.disk.ReadEntries()
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Errorf("entries changed: %+v -> %+v", first, second)
	}
}

func TestJournalService_FinalizeKeepsExistingID(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 9, 0, 0, 0))
	before := at(2024, time.August, 3, 8, 0, 0, 0)
	if err := h.disk.WriteEntries([]entry.Entry{
		{ID: "X", Date: "2024-08-03", Physical: 2, Mental: 2, Text: "first", UpdatedAt: before},
		{ID: "Y", Date: "2024-08-02", Physical: 5},
	}); err != nil {
		t.Fatal(err)
	}
	h.writeDraft(t, entry.Draft{Date: "2024-08-03", Physical: entry.Rating(9), Text: "second"})

	if _, err := h.journal.Finalize("2024-08-03"); err != nil {
		t.Fatal(err)
	}

	entries := h.disk.ReadEntries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	got := h.entry("2024-08-03")
	if got.ID != "X" {
		t.Errorf("ID = %q, want X", got.ID)
	}
	if got.Physical != 9 || got.Mental != 0 || got.Text != "second" {
		t.Errorf("fields not overwritten: %+v", got)
	}
	if !got.UpdatedAt.After(before) {
		t.Errorf("UpdatedAt = %v, should advance past %v", got.UpdatedAt, before)
	}
}

func TestJournalService_FinalizeWriteFailureKeepsDraft(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	h.writeDraft(t, entry.Draft{Date: "2024-08-03", Text: "keep me"})
	h.store.failWrites = true

	if _, err := h.journal.Finalize("2024-08-03"); !errors.Is(err, errDiskFull) {
		t.Fatalf("Finalize() error = %v, want %v", err, errDiskFull)
	}
	if _, ok := h.draft("2024-08-03"); !ok {
		t.Error("draft was removed although the entry write failed")
	}
}

// corruptEntries replaces the stored entry collection with bytes that do not decode.
func (h *harness) corruptEntries(t *testing.T) {
	t.Helper()
	path := filepath.Join(h.disk.BasePath(), storage.EntriesKey)
	if err := os.WriteFile(path, []byte("[{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestJournalService_FinalizeBacksUpUnreadableEntries(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	h.corruptEntries(t)
	h.writeDraft(t, entry.Draft{Date: "2024-08-03", Text: "new day"})

	result, err := h.journal.Finalize("2024-08-03")
	if err != nil {
		t.Fatalf("Finalize() returned unexpected error: %v", err)
	}
	if result.Outcome != FinalizeWritten {
		t.Fatalf("Outcome = %v, want %v", result.Outcome, FinalizeWritten)
	}

	backups := h.disk.ListBackups()
	if len(backups) != 1 || backups[0].Entries != -1 {
		t.Errorf("expected the undecodable collection in a backup, got %+v", backups)
	}
	if got := h.disk.ReadEntries(); len(got) != 1 || got[0].Text != "new day" {
		t.Errorf("entries = %+v", got)
	}
}

func TestJournalService_FinalizeSkipsBackupForMissingEntries(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	h.writeDraft(t, entry.Draft{Date: "2024-08-03", Text: "first"})

	if _, err := h.journal.Finalize("2024-08-03"); err != nil {
		t.Fatal(err)
	}
	if h.store.backups != 0 {
		t.Errorf("backups = %d, want 0 when nothing was stored", h.store.backups)
	}
}

func TestJournalService_FinalizeBackupFailureKeepsDraft(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	h.corruptEntries(t)
	h.writeDraft(t, entry.Draft{Date: "2024-08-03", Text: "keep me"})
	h.store.failBackups = true

	if _, err := h.journal.Finalize("2024-08-03"); !errors.Is(err, errDiskFull) {
		t.Fatalf("Finalize() error = %v, want %v", err, errDiskFull)
	}
	if h.store.entryWrites != 0 {
		t.Errorf("entry collection written %d times without a backup", h.store.entryWrites)
	}
	if _, ok := h.draft("2024-08-03"); !ok {
		t.Error("draft was removed although the backup failed")
	}
}

func TestJournalService_SeedBacksUpUnreadableEntries(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	h.corruptEntries(t)

	if _, err := h.journal.Seed(); err != nil {
		t.Fatal(err)
	}
	if backups := h.disk.ListBackups(); len(backups) != 1 {
		t.Errorf("expected one backup before seeding, got %+v", backups)
	}
}

func TestJournalService_FinalizeBefore(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	h.writeDraft(t, entry.Draft{Date: "2024-08-01", Text: "one"})
	h.writeDraft(t, entry.Draft{Date: "2024-08-02", Text: " "})
	h.writeDraft(t, entry.Draft{Date: "2024-08-03", Text: "today"})

	results := h.journal.FinalizeBefore("2024-08-03")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Date != "2024-08-01" || results[0].Outcome != FinalizeWritten {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Date != "2024-08-02" || results[1].Outcome != FinalizeDiscarded {
		t.Errorf("results[1] = %+v", results[1])
	}
	if _, ok := h.draft("2024-08-03"); !ok {
		t.Error("today's draft should be untouched")
	}
}

func TestJournalService_ClearIfEmpty(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	h.writeDraft(t, entry.Draft{Date: "2024-08-02", Text: "\t"})
	h.writeDraft(t, entry.Draft{Date: "2024-08-03", Text: "x"})

	cleared, err := h.journal.ClearIfEmpty("2024-08-02")
	if err != nil || !cleared {
		t.Errorf("ClearIfEmpty(empty) = %v, %v", cleared, err)
	}
	cleared, err = h.journal.ClearIfEmpty("2024-08-03")
	if err != nil || cleared {
		t.Errorf("ClearIfEmpty(content) = %v, %v", cleared, err)
	}
	if _, ok := h.draft("2024-08-03"); !ok {
		t.Error("draft with content was removed")
	}
	if cleared, _ := h.journal.ClearIfEmpty("2020-01-01"); cleared {
		t.Error("ClearIfEmpty(missing) reported a clear")
	}
}

func seedEntries3(t *testing.T, h *harness) {
	t.Helper()
	if err := h.disk.WriteEntries([]entry.Entry{
		{ID: "a", Date: "2023-09-07", Physical: 3, Mental: 8, Text: "river"},
		{ID: "b", Date: "2024-08-03", Physical: 7, Mental: 5, Text: "walk"},
		{ID: "c", Date: "2024-07-15", Physical: 2, Mental: 2, Text: "rain"},
		{ID: "d", Date: "2024-08-01", Physical: 6, Mental: 6, Text: "river again"},
	}); err != nil {
		t.Fatal(err)
	}
}

func TestJournalService_List(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	seedEntries3(t, h)

	all := h.journal.List(nil)
	want := []string{"2024-08-03", "2024-08-01", "2024-07-15", "2023-09-07"}
	if len(all.Entries) != len(want) {
		t.Fatalf("List() returned %d entries", len(all.Entries))
	}
	for i, d := range want {
		if all.Entries[i].Date != d {
			t.Errorf("Entries[%d].Date = %s, want %s", i, all.Entries[i].Date, d)
		}
	}
	if all.Period != "all time" {
		t.Errorf("Period = %q", all.Period)
	}

	f := filter.NewFilter("river", 0, 0).WithRange("2024-01-01", "")
	res := h.journal.List(f)
	if len(res.Entries) != 1 || res.Entries[0].ID != "d" {
		t.Errorf("filtered List() = %+v", res.Entries)
	}
	if res.Period != "since 2024-01-01" {
		t.Errorf("Period = %q", res.Period)
	}
}

func TestJournalService_Get(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	seedEntries3(t, h)

	e, err := h.journal.Get("2024-07-15")
	if err != nil || e.ID != "c" {
		t.Errorf("Get() = %+v, %v", e, err)
	}
	if _, err := h.journal.Get("2024-07-16"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Get(missing) error = %v", err)
	}
	if _, err := h.journal.Get("July"); !errors.Is(err, entry.ErrInvalidDate) {
		t.Errorf("Get(bad date) error = %v", err)
	}
}

func TestJournalService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr error
	}{
		{"by id", "c", "c", nil},
		{"by date", "2024-08-03", "b", nil},
		{"missing", "zzz", "", ErrEntryNotFound},
		{"empty", "  ", "", ErrEmptyRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
			seedEntries3(t, h)

			deleted, err := h.journal.Delete(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Delete() returned unexpected error: %v", err)
			}
			if deleted.ID != tt.wantID {
				t.Errorf("deleted ID = %q, want %q", deleted.ID, tt.wantID)
			}
			if got := len(h.disk.ReadEntries()); got != 3 {
				t.Errorf("%d entries left, want 3", got)
			}
			backups := h.disk.ListBackups()
			if len(backups) != 1 || backups[0].Entries != 4 {
				t.Errorf("expected a backup of the 4 entries, got %+v", backups)
			}
		})
	}
}

func TestJournalService_Seed(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))

	added, err := h.journal.Seed()
	if err != nil {
		t.Fatal(err)
	}
	if len(added) != 2 {
		t.Fatalf("Seed() added %d entries, want 2", len(added))
	}
	aug := h.entry("2024-08-03")
	if aug == nil || aug.ID != "2024-08-03-dummy" || aug.Physical != 7 || aug.Mental != 5 ||
		aug.Text != "Dummy entry for August 3rd, 2024" {
		t.Errorf("2024-08-03 seed = %+v", aug)
	}
	sep := h.entry("2023-09-07")
	if sep == nil || sep.ID != "2023-09-07-dummy" || sep.Physical != 3 || sep.Mental != 8 {
		t.Errorf("2023-09-07 seed = %+v", sep)
	}

	again, err := h.journal.Seed()
	if err != nil || len(again) != 0 {
		t.Errorf("second Seed() = %v, %v", again, err)
	}
	if got := len(h.disk.ReadEntries()); got != 2 {
		t.Errorf("%d entries after reseed, want 2", got)
	}
}

func TestJournalService_SeedKeepsExisting(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	if err := h.disk.WriteEntries([]entry.Entry{{ID: "mine", Date: "2024-08-03", Physical: 1}}); err != nil {
		t.Fatal(err)
	}

	added, err := h.journal.Seed()
	if err != nil || len(added) != 1 || added[0].Date != "2023-09-07" {
		t.Errorf("Seed() = %+v, %v", added, err)
	}
	if h.entry("2024-08-03").ID != "mine" {
		t.Error("Seed() replaced an existing entry")
	}
}

func TestJournalService_Browse(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	seedEntries3(t, h)

	years := h.journal.Years()
	if len(years) != 2 || years[0] != 2024 || years[1] != 2023 {
		t.Errorf("Years() = %v", years)
	}

	months := h.journal.Months(2024)
	if len(months) != 2 || months[0] != time.August || months[1] != time.July {
		t.Errorf("Months(2024) = %v", months)
	}
	if got := h.journal.Months(2022); len(got) != 0 {
		t.Errorf("Months(2022) = %v", got)
	}

	days := h.journal.Days(2024, time.August)
	if len(days) != 2 || days[0].Date != "2024-08-03" || days[1].Date != "2024-08-01" {
		t.Errorf("Days(2024, August) = %+v", days)
	}
}

func TestJournalService_Drafts(t *testing.T) {
	h := newHarness(t, at(2024, time.August, 3, 12, 0, 0, 0))
	h.writeDraft(t, entry.Draft{Date: "2024-08-03", Text: "b"})
	h.writeDraft(t, entry.Draft{Date: "2024-08-01", Physical: entry.Rating(3)})

	drafts := h.journal.Drafts()
	if len(drafts) != 2 || drafts[0].Date != "2024-08-01" || drafts[1].Date != "2024-08-03" {
		t.Errorf("Drafts() = %+v", drafts)
	}
	if h.journal.Today() != "2024-08-03" {
		t.Errorf("Today() = %s", h.journal.Today())
	}
}

func TestDescribePeriod(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{"", "", "all time"},
		{"2024-08-03", "2024-08-03", "2024-08-03"},
		{"", "2024-08-03", "until 2024-08-03"},
		{"2024-08-03", "", "since 2024-08-03"},
		{"2024-08-01", "2024-08-03", "2024-08-01 to 2024-08-03"},
	}
	for _, tt := range tests {
		if got := describePeriod(tt.from, tt.to); got != tt.want {
			t.Errorf("describePeriod(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}
