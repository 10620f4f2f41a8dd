package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/survey"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// ViewResponsesStore defines the database operations needed to summarize a
// month's survey.
type ViewResponsesStore interface {
	ListEventsInRange(ctx context.Context, groupID, fromDate, toDate string) ([]db.Event, error)
	ListMembers(ctx context.Context, groupID string) ([]db.Member, error)
	GetResponses(ctx context.Context, groupID, monthKey string) ([]db.SurveyResponse, error)
}

// MemberResponseRow is one member's line in the survey summary.
type MemberResponseRow struct {
	MemberID         string
	Name             string
	Responded        bool
	UnavailableCount int
}

// EventResponseRow is one event's line in the survey summary.
type EventResponseRow struct {
	EventID            string
	Date               string
	Title              string
	UnavailableMembers []string
}

// ViewResponsesResult is the aggregated survey view.
type ViewResponsesResult struct {
	Month           string
	Members         []MemberResponseRow
	Events          []EventResponseRow
	RespondedCount  int
	StaleReferences int
}

// ViewResponses aggregates the month's survey: who responded (distinct from
// who is fully available), and which members declared out per event.
// Responses referencing deleted events are tolerated and counted as stale.
func ViewResponses(
	ctx context.Context,
	store ViewResponsesStore,
	logger *zap.Logger,
	groupID, monthKey string,
) (*ViewResponsesResult, error) {
	fromDate, toDate, err := month.Bounds(monthKey)
	if err != nil {
		return nil, err
	}

	events, err := store.ListEventsInRange(ctx, groupID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	members, err := store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	active := filterActiveMembers(members)

	responses, err := store.GetResponses(ctx, groupID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	agg := survey.Build(toSurveyResponses(responses), eventIDs(events))
	if agg.StaleReferences() > 0 {
		logger.Warn("Survey responses reference deleted events",
			zap.String("month", monthKey),
			zap.Int("stale_references", agg.StaleReferences()))
	}

	result := &ViewResponsesResult{
		Month:           monthKey,
		StaleReferences: agg.StaleReferences(),
	}

	ids := make([]string, len(active))
	names := make(map[string]string, len(active))
	for i, m := range active {
		ids[i] = m.ID
		names[m.ID] = m.Name
	}
	for _, s := range agg.Summarize(ids) {
		row := MemberResponseRow{
			MemberID:         s.MemberID,
			Name:             names[s.MemberID],
			Responded:        s.Responded,
			UnavailableCount: len(s.UnavailableEventIDs),
		}
		if row.Responded {
			result.RespondedCount++
		}
		result.Members = append(result.Members, row)
	}

	for _, e := range events {
		result.Events = append(result.Events, EventResponseRow{
			EventID:            e.ID,
			Date:               e.Date,
			Title:              e.Title,
			UnavailableMembers: agg.UnavailableFor(e.ID),
		})
	}

	logger.Debug("Survey summary built",
		zap.String("month", monthKey),
		zap.Int("responded", result.RespondedCount),
		zap.Int("members", len(result.Members)),
		zap.Int("events", len(result.Events)))

	return result, nil
}
