package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/jackc/pgx/v5"
)

// GetMonthStatus retrieves the lifecycle record for a (group, month). When
// none exists yet, a fresh NOT_CONFIRMED record is returned without writing.
func (d *DB) GetMonthStatus(ctx context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error) {
	ms := &lifecycle.MonthStatus{}
	var status string
	err := d.pool.QueryRow(ctx, `
		SELECT group_id, month, status, survey_open, locked, note, updated_by, updated_at
		FROM month_status
		WHERE group_id = $1 AND month = $2
	`, groupID, monthKey).Scan(&ms.GroupID, &ms.Month, &status, &ms.SurveyOpen, &ms.Locked, &ms.Note, &ms.UpdatedBy, &ms.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return lifecycle.NewMonthStatus(groupID, monthKey), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query month status: %w", err)
	}
	ms.Status = lifecycle.Status(status)
	return ms, nil
}

// PutMonthStatus upserts the lifecycle record.
func (d *DB) PutMonthStatus(ctx context.Context, ms *lifecycle.MonthStatus) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO month_status (group_id, month, status, survey_open, locked, note, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (group_id, month)
		DO UPDATE SET status = EXCLUDED.status, survey_open = EXCLUDED.survey_open,
			locked = EXCLUDED.locked, note = EXCLUDED.note,
			updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
	`, ms.GroupID, ms.Month, string(ms.Status), ms.SurveyOpen, ms.Locked, ms.Note, ms.UpdatedBy, ms.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to store month status for %s/%s: %w", ms.GroupID, ms.Month, err)
	}
	return nil
}
