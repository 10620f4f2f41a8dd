package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// ListServersStore defines the database operations needed for the roster
// summary.
type ListServersStore interface {
	ListMembers(ctx context.Context, groupID string) ([]db.Member, error)
	ListEventsInRange(ctx context.Context, groupID, fromDate, toDate string) ([]db.Event, error)
}

// ServerRow is one member's line in the roster summary.
type ServerRow struct {
	MemberID      string
	Name          string
	BaptismalName string
	ServingSince  int
	Active        bool
	PriorCount    int
	CurrentCount  int
}

// ListServers summarizes the registry with prior- and current-month duty
// counts for fairness context.
func ListServers(ctx context.Context, store ListServersStore, logger *zap.Logger, groupID, monthKey string) ([]ServerRow, error) {
	members, err := store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	fromDate, toDate, err := month.Bounds(monthKey)
	if err != nil {
		return nil, err
	}
	current, err := store.ListEventsInRange(ctx, groupID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	priorMonth, err := month.Prev(monthKey)
	if err != nil {
		return nil, err
	}
	priorFrom, priorTo, err := month.Bounds(priorMonth)
	if err != nil {
		return nil, err
	}
	prior, err := store.ListEventsInRange(ctx, groupID, priorFrom, priorTo)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior month events: %w", err)
	}

	currentCounts := countAssignments(current)
	priorCounts := countAssignments(prior)

	rows := make([]ServerRow, len(members))
	for i, m := range members {
		rows[i] = ServerRow{
			MemberID:      m.ID,
			Name:          m.Name,
			BaptismalName: m.BaptismalName,
			ServingSince:  m.ServingSince,
			Active:        m.Active,
			PriorCount:    priorCounts[m.ID],
			CurrentCount:  currentCounts[m.ID],
		}
	}

	logger.Debug("Roster summary built",
		zap.String("month", monthKey),
		zap.Int("members", len(rows)))

	return rows, nil
}
