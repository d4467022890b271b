package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// MaxBackupCount is the maximum number of entry collection backups to keep
const MaxBackupCount = 3

// BackupKey returns the key of backup slot n. Lower numbers are more recent.
func BackupKey(n int) string {
	return BackupPrefix + strconv.Itoa(n)
}

// rotateBackups shifts backup:1 -> backup:2 -> backup:3 and drops the oldest.
func (s *DiskStore) rotateBackups() error {
	oldest := BackupKey(MaxBackupCount)
	if s.d.Has(oldest) {
		if err := s.d.Erase(oldest); err != nil {
			return err
		}
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		current := BackupKey(i)
		if !s.d.Has(current) {
			continue
		}
		data, err := s.d.Read(current)
		if err != nil {
			return err
		}
		if err := s.d.Write(BackupKey(i+1), data); err != nil {
			return err
		}
		if err := s.d.Erase(current); err != nil {
			return err
		}
	}

	return nil
}

// CreateBackup copies the current entry collection into backup slot 1 after
// rotating the older ones. With no collection stored it does nothing.
func (s *DiskStore) CreateBackup() error {
	if !s.d.Has(EntriesKey) {
		return nil
	}
	data, err := s.d.Read(EntriesKey)
	if err != nil {
		return err
	}

	if err := s.rotateBackups(); err != nil {
		return fmt.Errorf("rotate backups: %w", err)
	}

	return s.d.Write(BackupKey(1), data)
}

// BackupInfo describes one stored backup
type BackupInfo struct {
	Number  int       // 1 is the most recent
	Entries int       // entries in the backup, -1 if it cannot be decoded
	ModTime time.Time // when the backup was written
}

// ListBackups returns the existing backups, most recent first.
func (s *DiskStore) ListBackups() []BackupInfo {
	var backups []BackupInfo

	for i := 1; i <= MaxBackupCount; i++ {
		key := BackupKey(i)
		if !s.d.Has(key) {
			continue
		}
		info := BackupInfo{Number: i, Entries: -1}
		if entries, err := s.readEntriesKey(key); err == nil {
			info.Entries = len(entries)
		}
		if fi, err := os.Stat(filepath.Join(s.basePath, backupsDir, strconv.Itoa(i))); err == nil {
			info.ModTime = fi.ModTime()
		}
		backups = append(backups, info)
	}

	return backups
}

// RestoreBackup replaces the entry collection with backup n. The current
// collection is backed up first.
func (s *DiskStore) RestoreBackup(n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("%w: %d, must be between 1 and %d", ErrInvalidBackup, n, MaxBackupCount)
	}

	key := BackupKey(n)
	if !s.d.Has(key) {
		return fmt.Errorf("%w: %d", ErrBackupNotFound, n)
	}
	data, err := s.d.Read(key)
	if err != nil {
		return err
	}

	if err := s.CreateBackup(); err != nil {
		return err
	}

	return s.d.Write(EntriesKey, data)
}
