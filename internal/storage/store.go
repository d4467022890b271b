// Package storage is the persistence layer for entries and drafts.
//
// Records live in a flat key-value store: the entry collection under one fixed
// key, and one draft per date under a prefixed key. Reads never fail: a record
// that cannot be decoded is reported as absent and logged.
package storage

import (
	"errors"
	"strings"

	"github.com/xolan/chronos/internal/entry"
)

const (
	// EntriesKey holds the serialized entry collection.
	EntriesKey = "journal_entries"
	// DraftPrefix prefixes the per-date draft keys.
	DraftPrefix = "draft:"
	// BackupPrefix prefixes the rotated entry collection copies.
	BackupPrefix = "backup:"
)

var (
	// ErrInvalidDraft is returned when writing a draft without a valid date
	ErrInvalidDraft = errors.New("draft has no valid date")
	// ErrBackupNotFound is returned when restoring a backup slot that is empty
	ErrBackupNotFound = errors.New("backup does not exist")
	// ErrInvalidBackup is returned for a backup number outside 1..MaxBackupCount
	ErrInvalidBackup = errors.New("invalid backup number")
)

// Store is the persistence contract used by the journal session.
// Every write replaces the whole record.
type Store interface {
	ReadEntries() []entry.Entry
	WriteEntries(entries []entry.Entry) error
	ReadDraft(date string) (entry.Draft, bool)
	WriteDraft(d entry.Draft) error
	DeleteDraft(date string) error
	// DraftDates lists the dates that currently have a draft, ascending.
	DraftDates() []string
}

// DraftKey returns the store key for the draft of date.
func DraftKey(date string) string {
	return DraftPrefix + date
}

// DateFromDraftKey extracts the date from a draft key.
func DateFromDraftKey(key string) (string, bool) {
	if !strings.HasPrefix(key, DraftPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, DraftPrefix), true
}
