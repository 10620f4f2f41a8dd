package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
)

// StatusStore defines the database operations needed for lifecycle
// transitions.
type StatusStore interface {
	GetMonthStatus(ctx context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error)
	PutMonthStatus(ctx context.Context, status *lifecycle.MonthStatus) error
}

// GetMonthStatus loads the lifecycle record for a month.
func GetMonthStatus(ctx context.Context, store StatusStore, groupID, monthKey string) (*lifecycle.MonthStatus, error) {
	if _, err := month.ParseKey(monthKey); err != nil {
		return nil, err
	}
	return store.GetMonthStatus(ctx, groupID, monthKey)
}

// ConfirmMasses advances a month from NOT_CONFIRMED to MASS_CONFIRMED,
// freezing the event set so the availability survey can be opened.
func ConfirmMasses(ctx context.Context, store StatusStore, logger *zap.Logger, groupID, monthKey, operator string) (*lifecycle.MonthStatus, error) {
	return transition(ctx, store, logger, groupID, monthKey, "confirm_masses", func(ms *lifecycle.MonthStatus) error {
		return ms.ConfirmMasses(operator)
	})
}

// OpenSurvey opens the availability survey for a MASS_CONFIRMED month.
func OpenSurvey(ctx context.Context, store StatusStore, logger *zap.Logger, groupID, monthKey, operator string) (*lifecycle.MonthStatus, error) {
	return transition(ctx, store, logger, groupID, monthKey, "open_survey", func(ms *lifecycle.MonthStatus) error {
		return ms.OpenSurvey(operator)
	})
}

// CloseSurvey closes an open survey, advancing to SURVEY_CONFIRMED.
func CloseSurvey(ctx context.Context, store StatusStore, logger *zap.Logger, groupID, monthKey, operator string) (*lifecycle.MonthStatus, error) {
	return transition(ctx, store, logger, groupID, monthKey, "close_survey", func(ms *lifecycle.MonthStatus) error {
		return ms.CloseSurvey(operator)
	})
}

// SetMonthStatus is the administrative override: it force-sets any status
// with a mandatory note recording the reason.
func SetMonthStatus(ctx context.Context, store StatusStore, logger *zap.Logger, groupID, monthKey string, status lifecycle.Status, note, operator string) (*lifecycle.MonthStatus, error) {
	ms, err := transition(ctx, store, logger, groupID, monthKey, "force_set_status", func(ms *lifecycle.MonthStatus) error {
		return ms.ForceSet(status, note, operator)
	})
	if err != nil {
		return nil, err
	}
	logger.Warn("Month status force-set",
		zap.String("group_id", groupID),
		zap.String("month", monthKey),
		zap.String("status", string(status)),
		zap.String("note", note),
		zap.String("operator", operator))
	return ms, nil
}

// transition loads the record, applies the state-machine mutation and
// persists the result. A guard failure aborts before any write.
func transition(
	ctx context.Context,
	store StatusStore,
	logger *zap.Logger,
	groupID, monthKey, op string,
	apply func(*lifecycle.MonthStatus) error,
) (*lifecycle.MonthStatus, error) {
	if _, err := month.ParseKey(monthKey); err != nil {
		return nil, err
	}

	ms, err := store.GetMonthStatus(ctx, groupID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load month status: %w", err)
	}

	logger.Debug("Applying lifecycle transition",
		zap.String("op", op),
		zap.String("month", monthKey),
		zap.String("from", string(ms.Status)))

	if err := apply(ms); err != nil {
		return nil, err
	}

	if err := store.PutMonthStatus(ctx, ms); err != nil {
		return nil, fmt.Errorf("failed to store month status: %w", err)
	}

	logger.Info("Month status updated",
		zap.String("op", op),
		zap.String("month", monthKey),
		zap.String("status", string(ms.Status)),
		zap.Bool("locked", ms.Locked))

	return ms, nil
}
