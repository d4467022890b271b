package storage

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/xolan/chronos/internal/entry"
)

// CorruptRecord names a key whose payload could not be decoded
type CorruptRecord struct {
	Key   string
	Error string
}

// StorageHealth summarizes what the store holds.
type StorageHealth struct {
	Entries        int             // entries in the collection
	InvalidEntries int             // entries without a valid date or rating
	Drafts         int             // readable drafts
	Backups        int             // stored backups
	Corrupt        []CorruptRecord // keys that could not be decoded
}

// Healthy reports whether nothing needs attention.
func (h StorageHealth) Healthy() bool {
	return len(h.Corrupt) == 0 && h.InvalidEntries == 0
}

// Validate walks every record in the store and reports its health. Unlike the
// regular read path it surfaces undecodable records instead of hiding them.
func (s *DiskStore) Validate() StorageHealth {
	health := StorageHealth{Corrupt: []CorruptRecord{}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for key := range s.d.Keys(ctx.Done()) {
		switch {
		case key == EntriesKey:
			entries, err := s.readEntriesKey(key)
			if err != nil {
				health.Corrupt = append(health.Corrupt, CorruptRecord{Key: key, Error: err.Error()})
				continue
			}
			health.Entries = len(entries)
			for _, e := range entries {
				if !validEntry(e) {
					health.InvalidEntries++
				}
			}
		case strings.HasPrefix(key, DraftPrefix):
			data, err := s.d.Read(key)
			if err == nil {
				var d entry.Draft
				err = json.Unmarshal(data, &d)
			}
			if err != nil {
				health.Corrupt = append(health.Corrupt, CorruptRecord{Key: key, Error: err.Error()})
				continue
			}
			health.Drafts++
		case strings.HasPrefix(key, BackupPrefix):
			if _, err := s.readEntriesKey(key); err != nil {
				health.Corrupt = append(health.Corrupt, CorruptRecord{Key: key, Error: err.Error()})
				continue
			}
			health.Backups++
		}
	}

	return health
}

func validEntry(e entry.Entry) bool {
	if entry.ValidateDate(e.Date) != nil {
		return false
	}
	return entry.ValidateRating(e.Physical) == nil && entry.ValidateRating(e.Mental) == nil
}
