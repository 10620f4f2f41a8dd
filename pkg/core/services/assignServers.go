package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/roster"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/survey"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// AssignServersStore defines the database operations needed for a solver run.
type AssignServersStore interface {
	GetMonthStatus(ctx context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error)
	ListEventsInRange(ctx context.Context, groupID, fromDate, toDate string) ([]db.Event, error)
	ListMembers(ctx context.Context, groupID string) ([]db.Member, error)
	GetResponses(ctx context.Context, groupID, monthKey string) ([]db.SurveyResponse, error)
	InsertBackup(ctx context.Context, backup db.Backup) error
	WriteAssignments(ctx context.Context, groupID string, assignments []db.Assignment) error
}

// AssignServersParams tunes a solver run.
type AssignServersParams struct {
	GroupID  string
	Month    string
	Operator string

	// MinRestDays is the spacing constraint handed to the solver.
	MinRestDays int

	// DryRun computes the roster without backing up or writing anything.
	DryRun bool

	// Rand overrides the tie-break randomness source. Nil uses a
	// time-seeded source; tests inject a fixed seed.
	Rand roster.Rand
}

// AssignServersResult reports a solver run.
type AssignServersResult struct {
	Month       string
	BackupID    string
	Slots       []*roster.EventSlot
	Counts      map[string]int
	PriorCounts map[string]int
	Findings    []roster.Finding
	Complete    bool
	DryRun      bool
}

// AssignServers runs the duty assignment solver for a month and writes the
// roster back onto the event records in one atomic batch. The run is gated
// on SURVEY_CONFIRMED. Re-running replaces every non-fixed assignment, so
// the live event set is snapshotted first.
func AssignServers(
	ctx context.Context,
	store AssignServersStore,
	logger *zap.Logger,
	params AssignServersParams,
) (*AssignServersResult, error) {
	logger.Debug("Starting assignServers",
		zap.String("group_id", params.GroupID),
		zap.String("month", params.Month),
		zap.Bool("dry_run", params.DryRun))

	fromDate, toDate, err := month.Bounds(params.Month)
	if err != nil {
		return nil, err
	}

	ms, err := store.GetMonthStatus(ctx, params.GroupID, params.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load month status: %w", err)
	}
	if err := ms.CheckAssignable(); err != nil {
		return nil, err
	}

	events, err := store.ListEventsInRange(ctx, params.GroupID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("month %s has no events to assign", params.Month)
	}
	logger.Debug("Loaded events", zap.Int("count", len(events)))

	members, err := store.ListMembers(ctx, params.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	active := filterActiveMembers(members)
	logger.Debug("Active members", zap.Int("count", len(active)))

	responses, err := store.GetResponses(ctx, params.GroupID, params.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey responses: %w", err)
	}
	agg := survey.Build(toSurveyResponses(responses), eventIDs(events))
	if agg.StaleReferences() > 0 {
		logger.Warn("Ignoring unavailability entries for deleted events",
			zap.Int("stale_references", agg.StaleReferences()))
	}

	priorCounts, err := loadPriorCounts(ctx, store, logger, params.GroupID, params.Month)
	if err != nil {
		return nil, err
	}

	inputs := make([]roster.EventInput, len(events))
	for i, e := range events {
		inputs[i] = roster.EventInput{
			EventID:      e.ID,
			Date:         e.Date,
			Title:        e.Title,
			Required:     e.RequiredCount,
			Fixed:        e.Fixed,
			Assigned:     e.MemberIDs,
			HeadServerID: e.HeadServerID,
		}
	}

	result := &AssignServersResult{
		Month:       params.Month,
		PriorCounts: priorCounts,
		DryRun:      params.DryRun,
	}

	// Snapshot before the destructive rewrite.
	if !params.DryRun {
		backup := db.Backup{
			ID:        uuid.New().String(),
			GroupID:   params.GroupID,
			Month:     params.Month,
			Label:     "before assignment " + time.Now().UTC().Format("2006-01-02 15:04:05"),
			CreatedAt: time.Now().UTC(),
			Events:    events,
		}
		if err := store.InsertBackup(ctx, backup); err != nil {
			return nil, fmt.Errorf("failed to back up events before assignment: %w", err)
		}
		result.BackupID = backup.ID
		logger.Info("Pre-assignment backup created", zap.String("backup_id", backup.ID))
	}

	logger.Info("Running assignment solver",
		zap.Int("events", len(inputs)),
		zap.Int("members", len(active)),
		zap.Int("min_rest_days", params.MinRestDays))

	outcome, err := roster.Assign(roster.Config{
		Events:      inputs,
		Members:     toRosterMembers(active),
		PriorCounts: priorCounts,
		Unavailable: agg.UnavailableSets(),
		MinRestDays: params.MinRestDays,
		Rand:        params.Rand,
	})
	if err != nil {
		return nil, fmt.Errorf("assignment failed: %w", err)
	}

	result.Slots = outcome.Slots
	result.Counts = outcome.Counts
	result.Findings = outcome.Findings
	result.Complete = outcome.Complete

	for _, f := range outcome.Findings {
		logger.Warn("Solver finding",
			zap.String("kind", string(f.Kind)),
			zap.String("event_id", f.EventID),
			zap.String("date", f.Date),
			zap.String("description", f.Description))
	}

	if params.DryRun {
		logger.Info("Dry run mode - roster not saved")
		return result, nil
	}

	assignments := make([]db.Assignment, 0, len(outcome.Slots))
	for _, slot := range outcome.Slots {
		if slot.Fixed {
			continue
		}
		assignments = append(assignments, db.Assignment{
			EventID:      slot.EventID,
			MemberIDs:    slot.Assigned,
			HeadServerID: slot.HeadServerID,
		})
	}
	if err := store.WriteAssignments(ctx, params.GroupID, assignments); err != nil {
		return nil, fmt.Errorf("failed to save roster: %w", err)
	}

	logger.Info("Roster saved",
		zap.String("month", params.Month),
		zap.Int("events_written", len(assignments)),
		zap.Bool("complete", outcome.Complete))

	return result, nil
}

// loadPriorCounts tallies last month's duties per member. Display context
// for fairness; an absent prior month simply yields empty counts.
func loadPriorCounts(
	ctx context.Context,
	store AssignServersStore,
	logger *zap.Logger,
	groupID, monthKey string,
) (map[string]int, error) {
	priorMonth, err := month.Prev(monthKey)
	if err != nil {
		return nil, err
	}
	fromDate, toDate, err := month.Bounds(priorMonth)
	if err != nil {
		return nil, err
	}
	priorEvents, err := store.ListEventsInRange(ctx, groupID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior month events: %w", err)
	}
	logger.Debug("Prior month context",
		zap.String("month", priorMonth),
		zap.Int("events", len(priorEvents)))
	return countAssignments(priorEvents), nil
}
