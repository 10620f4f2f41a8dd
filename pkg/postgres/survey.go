package postgres

import (
	"context"
	"fmt"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// GetResponses retrieves every availability response for a (group, month).
func (d *DB) GetResponses(ctx context.Context, groupID, monthKey string) ([]db.SurveyResponse, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT group_id, month, member_id, unavailable_event_ids, submitted_at
		FROM survey_response
		WHERE group_id = $1 AND month = $2
		ORDER BY member_id
	`, groupID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey responses: %w", err)
	}
	defer rows.Close()

	var responses []db.SurveyResponse
	for rows.Next() {
		var r db.SurveyResponse
		if err := rows.Scan(&r.GroupID, &r.Month, &r.MemberID, &r.UnavailableEventIDs, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan survey response: %w", err)
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// PutResponse upserts a member's response. Resubmission overwrites the
// previous document; each member only ever writes their own.
func (d *DB) PutResponse(ctx context.Context, response db.SurveyResponse) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO survey_response (group_id, month, member_id, unavailable_event_ids, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (group_id, month, member_id)
		DO UPDATE SET unavailable_event_ids = EXCLUDED.unavailable_event_ids, submitted_at = EXCLUDED.submitted_at
	`, response.GroupID, response.Month, response.MemberID, response.UnavailableEventIDs, response.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to store survey response for member %s: %w", response.MemberID, err)
	}
	return nil
}
