package postgres

import (
	"context"
	"fmt"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// ListMembers retrieves every member of a group, active or not. Callers
// filter on the Active flag where eligibility matters.
func (d *DB) ListMembers(ctx context.Context, groupID string) ([]db.Member, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, group_id, name, baptismal_name, serving_since, active
		FROM member
		WHERE group_id = $1
		ORDER BY name, id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []db.Member
	for rows.Next() {
		var m db.Member
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Name, &m.BaptismalName, &m.ServingSince, &m.Active); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
