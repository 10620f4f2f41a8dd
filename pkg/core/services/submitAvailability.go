package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// SubmitAvailabilityStore defines the database operations needed to record
// a survey response.
type SubmitAvailabilityStore interface {
	GetMonthStatus(ctx context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error)
	ListMembers(ctx context.Context, groupID string) ([]db.Member, error)
	PutResponse(ctx context.Context, response db.SurveyResponse) error
}

// SubmitAvailability records one member's "cannot serve" declaration for a
// month. Resubmission overwrites the previous response. The survey must be
// open; event IDs are stored as-is (weak references, validated nowhere).
func SubmitAvailability(
	ctx context.Context,
	store SubmitAvailabilityStore,
	logger *zap.Logger,
	groupID, monthKey, memberID string,
	unavailableEventIDs []string,
) error {
	ms, err := store.GetMonthStatus(ctx, groupID, monthKey)
	if err != nil {
		return fmt.Errorf("failed to load month status: %w", err)
	}
	if !ms.SurveyOpen {
		return &lifecycle.PreconditionError{
			Op:     "submit availability",
			Actual: ms.Status,
			Reason: "survey is not open",
		}
	}

	members, err := store.ListMembers(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}
	known := memberIDSet(filterActiveMembers(members))
	if !known[memberID] {
		return fmt.Errorf("member %s is not an active member of group %s", memberID, groupID)
	}

	response := db.SurveyResponse{
		GroupID:             groupID,
		Month:               monthKey,
		MemberID:            memberID,
		UnavailableEventIDs: unavailableEventIDs,
		SubmittedAt:         time.Now().UTC(),
	}
	if response.UnavailableEventIDs == nil {
		// An explicit empty submission means "fully available", which must
		// stay distinguishable from no submission at all.
		response.UnavailableEventIDs = []string{}
	}

	if err := store.PutResponse(ctx, response); err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}

	logger.Info("Availability response recorded",
		zap.String("month", monthKey),
		zap.String("member_id", memberID),
		zap.Int("unavailable_events", len(response.UnavailableEventIDs)))

	return nil
}
