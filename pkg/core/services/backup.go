package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// BackupStore defines the database operations needed for snapshot
// management.
type BackupStore interface {
	GetMonthStatus(ctx context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error)
	ListEventsInRange(ctx context.Context, groupID, fromDate, toDate string) ([]db.Event, error)
	ReplaceMonthEvents(ctx context.Context, groupID, monthKey string, events []db.Event) error
	ListBackups(ctx context.Context, groupID, monthKey string) ([]db.Backup, error)
	GetBackup(ctx context.Context, groupID, backupID string) (*db.Backup, error)
	InsertBackup(ctx context.Context, backup db.Backup) error
	RenameBackup(ctx context.Context, groupID, backupID, label string) error
	DeleteBackup(ctx context.Context, groupID, backupID string) error
}

// CreateBackup snapshots the month's entire live event set verbatim,
// original identifiers included, under a labeled timestamped record.
func CreateBackup(ctx context.Context, store BackupStore, logger *zap.Logger, groupID, monthKey, label string) (*db.Backup, error) {
	fromDate, toDate, err := month.Bounds(monthKey)
	if err != nil {
		return nil, err
	}

	events, err := store.ListEventsInRange(ctx, groupID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	if label == "" {
		label = "backup " + time.Now().UTC().Format("2006-01-02 15:04:05")
	}

	backup := db.Backup{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		Month:     monthKey,
		Label:     label,
		CreatedAt: time.Now().UTC(),
		Events:    events,
	}
	if err := store.InsertBackup(ctx, backup); err != nil {
		return nil, fmt.Errorf("failed to store backup: %w", err)
	}

	logger.Info("Backup created",
		zap.String("backup_id", backup.ID),
		zap.String("month", monthKey),
		zap.String("label", label),
		zap.Int("events", len(events)))

	return &backup, nil
}

// RestoreBackup replaces the month's live event set with the snapshot's
// contents in one atomic batch, preserving the snapshot's original event
// IDs so external references stay valid. Blocked while the snapshot's
// month is locked. All-or-nothing: a failed write leaves the live set
// untouched.
func RestoreBackup(ctx context.Context, store BackupStore, logger *zap.Logger, groupID, backupID string) (*db.Backup, error) {
	backup, err := store.GetBackup(ctx, groupID, backupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load backup: %w", err)
	}

	ms, err := store.GetMonthStatus(ctx, groupID, backup.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load month status: %w", err)
	}
	if err := ms.CheckEditable(); err != nil {
		return nil, err
	}

	if err := store.ReplaceMonthEvents(ctx, groupID, backup.Month, backup.Events); err != nil {
		return nil, fmt.Errorf("failed to restore month %s: %w", backup.Month, err)
	}

	logger.Info("Backup restored",
		zap.String("backup_id", backup.ID),
		zap.String("month", backup.Month),
		zap.Int("events", len(backup.Events)))

	return backup, nil
}

// ListBackups returns the month's snapshots, newest first.
func ListBackups(ctx context.Context, store BackupStore, groupID, monthKey string) ([]db.Backup, error) {
	if _, err := month.ParseKey(monthKey); err != nil {
		return nil, err
	}
	return store.ListBackups(ctx, groupID, monthKey)
}

// RenameBackup edits snapshot metadata only.
func RenameBackup(ctx context.Context, store BackupStore, logger *zap.Logger, groupID, backupID, label string) error {
	if label == "" {
		return fmt.Errorf("backup label must not be empty")
	}
	if err := store.RenameBackup(ctx, groupID, backupID, label); err != nil {
		return err
	}
	logger.Info("Backup renamed", zap.String("backup_id", backupID), zap.String("label", label))
	return nil
}

// DeleteBackup removes a snapshot; live event data is never affected.
func DeleteBackup(ctx context.Context, store BackupStore, logger *zap.Logger, groupID, backupID string) error {
	if err := store.DeleteBackup(ctx, groupID, backupID); err != nil {
		return err
	}
	logger.Info("Backup deleted", zap.String("backup_id", backupID))
	return nil
}
