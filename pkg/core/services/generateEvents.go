package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// GenerateEventsStore defines the database operations needed by the preset
// and prior-month copiers.
type GenerateEventsStore interface {
	GetMonthStatus(ctx context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error)
	ListEventsInRange(ctx context.Context, groupID, fromDate, toDate string) ([]db.Event, error)
	ReplaceMonthEvents(ctx context.Context, groupID, monthKey string, events []db.Event) error
}

// PresetSlot is one recurring mass of the weekly template. The recurrence
// rule is expanded over the target month.
type PresetSlot struct {
	RRule       string
	Title       string
	ServerCount int
}

// GenerateFromPreset populates a month from the weekly recurrence template.
// Destructive: the target month's existing events are deleted and the
// generated set inserted in one atomic batch. An empty template is a
// reported failure, and the target month must not be locked.
func GenerateFromPreset(
	ctx context.Context,
	store GenerateEventsStore,
	logger *zap.Logger,
	groupID, targetMonth string,
	preset []PresetSlot,
) ([]db.Event, error) {
	if len(preset) == 0 {
		return nil, fmt.Errorf("no preset template configured for group %s", groupID)
	}

	if err := checkTargetEditable(ctx, store, groupID, targetMonth); err != nil {
		return nil, err
	}

	firstDay, err := month.ParseKey(targetMonth)
	if err != nil {
		return nil, err
	}
	lastDay := firstDay.AddDate(0, 1, 0).Add(-time.Second)

	var events []db.Event
	for i, slot := range preset {
		rule, err := rrule.StrToRRule(slot.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in preset slot %d: %w", i, err)
		}
		rule.DTStart(firstDay)

		for _, occurrence := range rule.Between(firstDay, lastDay, true) {
			events = append(events, db.Event{
				ID:            uuid.New().String(),
				GroupID:       groupID,
				Date:          occurrence.Format(month.DateLayout),
				Title:         slot.Title,
				RequiredCount: slot.ServerCount,
				MemberIDs:     []string{},
			})
		}
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("preset template produced no events for %s", targetMonth)
	}

	sortEventsByDate(events)

	if err := store.ReplaceMonthEvents(ctx, groupID, targetMonth, events); err != nil {
		return nil, fmt.Errorf("failed to write generated events: %w", err)
	}

	logger.Info("Month generated from weekly preset",
		zap.String("month", targetMonth),
		zap.Int("events", len(events)))

	return events, nil
}

// CopyPriorMonth populates a month by replaying the prior month's reference
// week (the week starting at its first Sunday) across the target month.
// The prior month must be MASS_CONFIRMED or later, and a reference week
// with no events is a reported failure that leaves the target untouched.
func CopyPriorMonth(
	ctx context.Context,
	store GenerateEventsStore,
	logger *zap.Logger,
	groupID, targetMonth string,
) ([]db.Event, error) {
	if err := checkTargetEditable(ctx, store, groupID, targetMonth); err != nil {
		return nil, err
	}

	priorMonth, err := month.Prev(targetMonth)
	if err != nil {
		return nil, err
	}

	priorStatus, err := store.GetMonthStatus(ctx, groupID, priorMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior month status: %w", err)
	}
	if !priorStatus.Status.AtLeast(lifecycle.StatusMassConfirmed) {
		return nil, &lifecycle.PreconditionError{
			Op:       "copy prior month",
			Required: lifecycle.StatusMassConfirmed,
			Actual:   priorStatus.Status,
		}
	}

	// Reference week: first Sunday of the prior month through the following
	// Saturday.
	weekStart, err := month.FirstWeekday(priorMonth, time.Sunday)
	if err != nil {
		return nil, err
	}
	startDay, _ := month.ParseDate(weekStart)
	weekEnd := startDay.AddDate(0, 0, 6).Format(month.DateLayout)

	reference, err := store.ListEventsInRange(ctx, groupID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference week: %w", err)
	}
	if len(reference) == 0 {
		return nil, fmt.Errorf("no reference pattern: week of %s in %s has no events", weekStart, priorMonth)
	}

	// Weekday -> masses held that day.
	pattern := make(map[time.Weekday][]db.Event)
	for _, e := range reference {
		day, err := month.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("reference event %s: %w", e.ID, err)
		}
		pattern[day.Weekday()] = append(pattern[day.Weekday()], e)
	}

	days, err := month.Days(targetMonth)
	if err != nil {
		return nil, err
	}

	var events []db.Event
	for _, date := range days {
		day, _ := month.ParseDate(date)
		for _, ref := range pattern[day.Weekday()] {
			events = append(events, db.Event{
				ID:            uuid.New().String(),
				GroupID:       groupID,
				Date:          date,
				Title:         ref.Title,
				RequiredCount: ref.RequiredCount,
				MemberIDs:     []string{},
			})
		}
	}

	sortEventsByDate(events)

	if err := store.ReplaceMonthEvents(ctx, groupID, targetMonth, events); err != nil {
		return nil, fmt.Errorf("failed to write copied events: %w", err)
	}

	logger.Info("Month copied from prior month pattern",
		zap.String("month", targetMonth),
		zap.String("reference_week", weekStart),
		zap.Int("events", len(events)))

	return events, nil
}

// checkTargetEditable rejects generation into a locked month.
func checkTargetEditable(ctx context.Context, store GenerateEventsStore, groupID, targetMonth string) error {
	ms, err := store.GetMonthStatus(ctx, groupID, targetMonth)
	if err != nil {
		return fmt.Errorf("failed to load month status: %w", err)
	}
	return ms.CheckEditable()
}

func sortEventsByDate(events []db.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Title < events[j].Title
	})
}
