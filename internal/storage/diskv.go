package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/diskv/v3"

	"github.com/xolan/chronos/internal/entry"
	chronoslog "github.com/xolan/chronos/internal/logger"
)

const (
	// StoreDir is the directory under the data dir that holds the records
	StoreDir = "store"
	// TempDir receives in-flight writes before they are renamed into place
	TempDir = "tmp"

	draftsDir  = "drafts"
	backupsDir = "backups"
)

// DiskStore is a Store backed by diskv. Writes are atomic renames from a
// temp directory. Reads always go to disk so that a long-running TUI sees
// changes made by CLI commands in another process.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
	logger   *log.Logger
}

// Open creates (if needed) and opens the store under dataDir.
func Open(dataDir string, logger *log.Logger) (*DiskStore, error) {
	if dataDir == "" {
		return nil, errors.New("storage: data dir required")
	}
	basePath := filepath.Join(dataDir, StoreDir)
	tempPath := filepath.Join(dataDir, TempDir)
	for _, dir := range []string{basePath, tempPath} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create %s: %w", dir, err)
		}
	}
	if logger == nil {
		logger = chronoslog.Discard()
	}

	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           tempPath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      0,
		}),
		basePath: basePath,
		logger:   logger,
	}, nil
}

// BasePath returns the directory holding the records.
func (s *DiskStore) BasePath() string {
	return s.basePath
}

// ReadEntries returns the entry collection, or nil when it is missing or
// cannot be decoded.
func (s *DiskStore) ReadEntries() []entry.Entry {
	entries, err := s.readEntriesKey(EntriesKey)
	if err != nil {
		s.logCorrupt(EntriesKey, err)
		return nil
	}
	return entries
}

// EntriesUnreadable reports whether an entry collection is stored but cannot
// be decoded. ReadEntries returns nil in that case too.
func (s *DiskStore) EntriesUnreadable() bool {
	if !s.d.Has(EntriesKey) {
		return false
	}
	_, err := s.readEntriesKey(EntriesKey)
	return err != nil
}

// WriteEntries replaces the entry collection.
func (s *DiskStore) WriteEntries(entries []entry.Entry) error {
	if entries == nil {
		entries = []entry.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.d.Write(EntriesKey, data)
}

// ReadDraft returns the draft for date. A missing or undecodable draft is
// reported as absent.
func (s *DiskStore) ReadDraft(date string) (entry.Draft, bool) {
	key := DraftKey(date)
	if !s.d.Has(key) {
		return entry.Draft{}, false
	}
	data, err := s.d.Read(key)
	if err != nil {
		s.logCorrupt(key, err)
		return entry.Draft{}, false
	}
	var d entry.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		s.logCorrupt(key, err)
		return entry.Draft{}, false
	}
	d.Date = date
	return d, true
}

// WriteDraft replaces the draft stored for d.Date.
func (s *DiskStore) WriteDraft(d entry.Draft) error {
	if err := entry.ValidateDate(d.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDraft, d.Date)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.d.Write(DraftKey(d.Date), data)
}

// DeleteDraft removes the draft for date. Deleting a missing draft is not an
// error.
func (s *DiskStore) DeleteDraft(date string) error {
	key := DraftKey(date)
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// DraftDates lists the dates that have a draft, ascending.
func (s *DiskStore) DraftDates() []string {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var dates []string
	for key := range s.d.KeysPrefix(DraftPrefix, ctx.Done()) {
		if date, ok := DateFromDraftKey(key); ok && entry.ValidateDate(date) == nil {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

func (s *DiskStore) readEntriesKey(key string) ([]entry.Entry, error) {
	if !s.d.Has(key) {
		return nil, nil
	}
	data, err := s.d.Read(key)
	if err != nil {
		return nil, err
	}
	var entries []entry.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *DiskStore) logCorrupt(key string, err error) {
	s.logger.Debug("unreadable record treated as absent", "key", key, "err", err)
}

// keys maps flat keys onto a small directory layout:
//
//	journal_entries   -> journal_entries
//	draft:2024-08-03  -> drafts/2024-08-03
//	backup:1          -> backups/1
func keyToPathTransform(key string) *diskv.PathKey {
	switch {
	case strings.HasPrefix(key, DraftPrefix):
		return &diskv.PathKey{Path: []string{draftsDir}, FileName: strings.TrimPrefix(key, DraftPrefix)}
	case strings.HasPrefix(key, BackupPrefix):
		return &diskv.PathKey{Path: []string{backupsDir}, FileName: strings.TrimPrefix(key, BackupPrefix)}
	default:
		return &diskv.PathKey{Path: []string{}, FileName: key}
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	switch pathKey.Path[0] {
	case draftsDir:
		return DraftPrefix + pathKey.FileName
	case backupsDir:
		return BackupPrefix + pathKey.FileName
	default:
		return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
	}
}
