package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
	"github.com/jackc/pgx/v5"
)

// ListBackups retrieves snapshot metadata and contents for a (group, month),
// newest first.
func (d *DB) ListBackups(ctx context.Context, groupID, monthKey string) ([]db.Backup, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, group_id, month, label, created_at, events
		FROM event_backup
		WHERE group_id = $1 AND month = $2
		ORDER BY created_at DESC, id
	`, groupID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query backups: %w", err)
	}
	defer rows.Close()

	var backups []db.Backup
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, err
		}
		backups = append(backups, *b)
	}
	return backups, rows.Err()
}

// GetBackup retrieves a single snapshot by ID.
func (d *DB) GetBackup(ctx context.Context, groupID, backupID string) (*db.Backup, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, group_id, month, label, created_at, events
		FROM event_backup
		WHERE group_id = $1 AND id = $2
	`, groupID, backupID)
	b, err := scanBackup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("backup %s not found", backupID)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// InsertBackup appends a snapshot. The event set is stored as JSON so the
// snapshot's lifetime is fully independent of the live event table.
func (d *DB) InsertBackup(ctx context.Context, backup db.Backup) error {
	events, err := json.Marshal(backup.Events)
	if err != nil {
		return fmt.Errorf("failed to encode backup events: %w", err)
	}
	_, err = d.pool.Exec(ctx, `
		INSERT INTO event_backup (id, group_id, month, label, created_at, events)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, backup.ID, backup.GroupID, backup.Month, backup.Label, backup.CreatedAt, events)
	if err != nil {
		return fmt.Errorf("failed to insert backup %s: %w", backup.ID, err)
	}
	return nil
}

// RenameBackup updates snapshot metadata only.
func (d *DB) RenameBackup(ctx context.Context, groupID, backupID, label string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE event_backup SET label = $3 WHERE group_id = $1 AND id = $2
	`, groupID, backupID, label)
	if err != nil {
		return fmt.Errorf("failed to rename backup %s: %w", backupID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("backup %s not found", backupID)
	}
	return nil
}

// DeleteBackup removes a snapshot. Live event data is never touched.
func (d *DB) DeleteBackup(ctx context.Context, groupID, backupID string) error {
	tag, err := d.pool.Exec(ctx, `
		DELETE FROM event_backup WHERE group_id = $1 AND id = $2
	`, groupID, backupID)
	if err != nil {
		return fmt.Errorf("failed to delete backup %s: %w", backupID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("backup %s not found", backupID)
	}
	return nil
}

func scanBackup(row pgx.Row) (*db.Backup, error) {
	var b db.Backup
	var events []byte
	if err := row.Scan(&b.ID, &b.GroupID, &b.Month, &b.Label, &b.CreatedAt, &events); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan backup: %w", err)
	}
	if err := json.Unmarshal(events, &b.Events); err != nil {
		return nil, fmt.Errorf("failed to decode backup events: %w", err)
	}
	return &b, nil
}
