package postgres

import (
	"context"
	"fmt"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
	"github.com/jackc/pgx/v5"
)

// ListEventsInRange retrieves a group's events with dates in [fromDate, toDate],
// ordered by date then ID.
func (d *DB) ListEventsInRange(ctx context.Context, groupID, fromDate, toDate string) ([]db.Event, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, group_id, event_date, title, required_count, member_ids, head_server_id, fixed
		FROM mass_event
		WHERE group_id = $1 AND event_date >= $2 AND event_date <= $3
		ORDER BY event_date, id
	`, groupID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []db.Event
	for rows.Next() {
		var e db.Event
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Date, &e.Title, &e.RequiredCount, &e.MemberIDs, &e.HeadServerID, &e.Fixed); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// InsertEvent inserts a single mass event record.
func (d *DB) InsertEvent(ctx context.Context, event db.Event) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO mass_event (id, group_id, event_date, title, required_count, member_ids, head_server_id, fixed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, event.ID, event.GroupID, event.Date, event.Title, event.RequiredCount, event.MemberIDs, event.HeadServerID, event.Fixed)
	if err != nil {
		return fmt.Errorf("failed to insert event %s: %w", event.ID, err)
	}
	return nil
}

// UpdateEvent overwrites a single mass event record.
func (d *DB) UpdateEvent(ctx context.Context, event db.Event) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE mass_event
		SET event_date = $3, title = $4, required_count = $5, member_ids = $6, head_server_id = $7, fixed = $8
		WHERE group_id = $1 AND id = $2
	`, event.GroupID, event.ID, event.Date, event.Title, event.RequiredCount, event.MemberIDs, event.HeadServerID, event.Fixed)
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", event.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", event.ID)
	}
	return nil
}

// DeleteEvent removes a single mass event record.
func (d *DB) DeleteEvent(ctx context.Context, groupID, eventID string) error {
	tag, err := d.pool.Exec(ctx, `
		DELETE FROM mass_event WHERE group_id = $1 AND id = $2
	`, groupID, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", eventID)
	}
	return nil
}

// ReplaceMonthEvents deletes every event of the month and inserts the given
// set in one transaction. Used by restore and preset-copy: on any failure
// the live set stays as it was.
func (d *DB) ReplaceMonthEvents(ctx context.Context, groupID, monthKey string, events []db.Event) error {
	fromDate, toDate, err := month.Bounds(monthKey)
	if err != nil {
		return err
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM mass_event
		WHERE group_id = $1 AND event_date >= $2 AND event_date <= $3
	`, groupID, fromDate, toDate)
	if err != nil {
		return fmt.Errorf("failed to clear month %s: %w", monthKey, err)
	}

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`
			INSERT INTO mass_event (id, group_id, event_date, title, required_count, member_ids, head_server_id, fixed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, e.ID, e.GroupID, e.Date, e.Title, e.RequiredCount, e.MemberIDs, e.HeadServerID, e.Fixed)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert month events: %w", err)
	}

	return tx.Commit(ctx)
}

// WriteAssignments applies solver output as point updates in one
// transaction. A missing event aborts the whole batch.
func (d *DB) WriteAssignments(ctx context.Context, groupID string, assignments []db.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		tag, err := tx.Exec(ctx, `
			UPDATE mass_event
			SET member_ids = $3, head_server_id = $4
			WHERE group_id = $1 AND id = $2
		`, groupID, a.EventID, a.MemberIDs, a.HeadServerID)
		if err != nil {
			return fmt.Errorf("failed to write assignment for event %s: %w", a.EventID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("event %s not found while writing assignments", a.EventID)
		}
	}

	return tx.Commit(ctx)
}
