package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// Notifier is the external notification trigger invoked after a month is
// finalized. Delivery, retries and channel selection live outside this
// core; failures are logged and never roll back the transition.
type Notifier interface {
	RosterFinalized(ctx context.Context, groupID, monthKey string, events []db.Event) error
}

// LoggingNotifier is the default Notifier: it records the trigger and does
// nothing else.
type LoggingNotifier struct {
	Logger *zap.Logger
}

// RosterFinalized logs the finalized roster trigger.
func (n *LoggingNotifier) RosterFinalized(_ context.Context, groupID, monthKey string, events []db.Event) error {
	n.Logger.Info("Roster finalized notification",
		zap.String("group_id", groupID),
		zap.String("month", monthKey),
		zap.Int("events", len(events)))
	return nil
}

// FinalizeMonthStore defines the database operations needed to finalize a
// month.
type FinalizeMonthStore interface {
	GetMonthStatus(ctx context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error)
	PutMonthStatus(ctx context.Context, status *lifecycle.MonthStatus) error
	ListEventsInRange(ctx context.Context, groupID, fromDate, toDate string) ([]db.Event, error)
}

// FinalizeMonth advances SURVEY_CONFIRMED to FINAL_CONFIRMED, locking the
// month against further edits, and fires the external notification trigger
// with the finalized roster.
func FinalizeMonth(
	ctx context.Context,
	store FinalizeMonthStore,
	notifier Notifier,
	logger *zap.Logger,
	groupID, monthKey, operator string,
) (*lifecycle.MonthStatus, error) {
	ms, err := transition(ctx, store, logger, groupID, monthKey, "finalize_month", func(ms *lifecycle.MonthStatus) error {
		return ms.Finalize(operator)
	})
	if err != nil {
		return nil, err
	}

	fromDate, toDate, err := month.Bounds(monthKey)
	if err != nil {
		return ms, err
	}
	events, err := store.ListEventsInRange(ctx, groupID, fromDate, toDate)
	if err != nil {
		// The transition already committed; notification just loses its
		// payload. Surface the read failure without undoing the finalize.
		return ms, fmt.Errorf("month finalized but roster could not be read for notification: %w", err)
	}

	// Fire-and-forget.
	if notifier != nil {
		if err := notifier.RosterFinalized(ctx, groupID, monthKey, events); err != nil {
			logger.Warn("Notification trigger failed", zap.Error(err))
		}
	}

	return ms, nil
}
