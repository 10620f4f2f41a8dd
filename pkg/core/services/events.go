package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// EventEditStore defines the database operations needed for manual event
// management.
type EventEditStore interface {
	GetMonthStatus(ctx context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error)
	ListEventsInRange(ctx context.Context, groupID, fromDate, toDate string) ([]db.Event, error)
	InsertEvent(ctx context.Context, event db.Event) error
	UpdateEvent(ctx context.Context, event db.Event) error
	DeleteEvent(ctx context.Context, groupID, eventID string) error
}

// AddEvent manually inserts a single mass event. Blocked once the event's
// month is locked.
func AddEvent(ctx context.Context, store EventEditStore, logger *zap.Logger, groupID, date, title string, required int) (*db.Event, error) {
	monthKey, err := month.KeyOf(date)
	if err != nil {
		return nil, err
	}
	if required < 0 {
		return nil, fmt.Errorf("required server count must not be negative, got %d", required)
	}
	if err := checkMonthEditable(ctx, store, groupID, monthKey); err != nil {
		return nil, err
	}

	event := db.Event{
		ID:            uuid.New().String(),
		GroupID:       groupID,
		Date:          date,
		Title:         title,
		RequiredCount: required,
		MemberIDs:     []string{},
	}
	if err := store.InsertEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	logger.Info("Event added",
		zap.String("event_id", event.ID),
		zap.String("date", date),
		zap.String("title", title))

	return &event, nil
}

// RemoveEvent deletes a single mass event. Blocked once the month is
// locked. Survey responses referencing the event are left in place; readers
// tolerate the dangling reference.
func RemoveEvent(ctx context.Context, store EventEditStore, logger *zap.Logger, groupID, eventID string) error {
	event, err := findEvent(ctx, store, groupID, eventID)
	if err != nil {
		return err
	}
	monthKey, err := month.KeyOf(event.Date)
	if err != nil {
		return err
	}
	if err := checkMonthEditable(ctx, store, groupID, monthKey); err != nil {
		return err
	}

	if err := store.DeleteEvent(ctx, groupID, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	logger.Info("Event removed", zap.String("event_id", eventID), zap.String("date", event.Date))
	return nil
}

// SetEventFixed toggles the exclude-from-auto-assignment flag. The current
// assignee list rides along untouched; the solver will preserve it.
func SetEventFixed(ctx context.Context, store EventEditStore, logger *zap.Logger, groupID, eventID string, fixed bool) error {
	event, err := findEvent(ctx, store, groupID, eventID)
	if err != nil {
		return err
	}
	monthKey, err := month.KeyOf(event.Date)
	if err != nil {
		return err
	}
	if err := checkMonthEditable(ctx, store, groupID, monthKey); err != nil {
		return err
	}

	event.Fixed = fixed
	if err := store.UpdateEvent(ctx, *event); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	logger.Info("Event fixed flag updated", zap.String("event_id", eventID), zap.Bool("fixed", fixed))
	return nil
}

// findEvent scans the group's events for the given ID. The store only
// exposes date-range reads, so the lookup scans the full date range.
func findEvent(ctx context.Context, store EventEditStore, groupID, eventID string) (*db.Event, error) {
	events, err := store.ListEventsInRange(ctx, groupID, "00000000", "99999999")
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	for i := range events {
		if events[i].ID == eventID {
			return &events[i], nil
		}
	}
	return nil, fmt.Errorf("event %s not found", eventID)
}

func checkMonthEditable(ctx context.Context, store EventEditStore, groupID, monthKey string) error {
	ms, err := store.GetMonthStatus(ctx, groupID, monthKey)
	if err != nil {
		return fmt.Errorf("failed to load month status: %w", err)
	}
	return ms.CheckEditable()
}
