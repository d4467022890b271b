package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/chronos/internal/cli"
	"github.com/xolan/chronos/internal/storage"
)

// ValidateStorage reports on the health of every record in the store
func ValidateStorage(deps *cli.Deps) {
	store := deps.Services.Store
	health := store.Validate()

	_, _ = fmt.Fprintf(deps.Stdout, "Storage: %s\n", store.BasePath())
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Entries:         %d\n", health.Entries)
	_, _ = fmt.Fprintf(deps.Stdout, "Invalid entries: %d\n", health.InvalidEntries)
	_, _ = fmt.Fprintf(deps.Stdout, "Drafts:          %d\n", health.Drafts)
	_, _ = fmt.Fprintf(deps.Stdout, "Backups:         %d\n", health.Backups)

	if len(health.Corrupt) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Corrupted records:")
		for _, r := range health.Corrupt {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptRecord(r))
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.Healthy() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Storage is healthy")
		return
	}
	problems := len(health.Corrupt) + health.InvalidEntries
	_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Storage has %d %s\n", problems, cli.Pluralize("problem", problems))
	if len(health.Corrupt) > 0 && health.Backups > 0 {
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'chronos restore' to recover the entries from a backup")
	}
}

// CreateBackup backs up the entry collection
func CreateBackup(deps *cli.Deps) {
	if err := deps.Services.Store.CreateBackup(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create backup: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Backup created")
	listBackups(deps, deps.Services.Store.ListBackups())
}

// RestoreBackup lists the backups and restores one (default: the most recent)
func RestoreBackup(deps *cli.Deps, args []string) {
	store := deps.Services.Store

	backups := store.ListBackups()
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}
	listBackups(deps, backups)
	_, _ = fmt.Fprintln(deps.Stdout)

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	if err := store.RestoreBackup(backupNum); err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidBackup):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, backupNum)
		case errors.Is(err, storage.ErrBackupNotFound):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", backupNum)
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
}

func listBackups(deps *cli.Deps, backups []storage.BackupInfo) {
	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, b := range backups {
		count := "unreadable"
		if b.Entries >= 0 {
			count = fmt.Sprintf("%d %s", b.Entries, cli.Pluralize("entry", b.Entries))
		}
		line := fmt.Sprintf("  %d: %s", b.Number, count)
		if !b.ModTime.IsZero() {
			line += ", " + b.ModTime.Format("2006-01-02 15:04")
		}
		if b.Number == 1 {
			line += " (most recent)"
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}
}
