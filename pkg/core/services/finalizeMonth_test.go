package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

type recordingNotifier struct {
	groupID string
	month   string
	events  []db.Event
	calls   int
	err     error
}

func (n *recordingNotifier) RosterFinalized(_ context.Context, groupID, monthKey string, events []db.Event) error {
	n.groupID = groupID
	n.month = monthKey
	n.events = events
	n.calls++
	return n.err
}

func TestFinalizeMonth_LocksAndNotifies(t *testing.T) {
	store := newMockStore()
	store.seedStatus("group-1", "202603", lifecycle.StatusSurveyConfirmed, false, false)
	store.events = []db.Event{
		{ID: "ev-1", GroupID: "group-1", Date: "20260301", Title: "Sunday Mass", RequiredCount: 2, MemberIDs: []string{"m1", "m2"}},
	}
	notifier := &recordingNotifier{}
	logger := zap.NewNop()

	ms, err := FinalizeMonth(context.Background(), store, notifier, logger, "group-1", "202603", "admin")
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusFinalConfirmed, ms.Status)
	assert.True(t, ms.Locked)

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "group-1", notifier.groupID)
	assert.Equal(t, "202603", notifier.month)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, []string{"m1", "m2"}, notifier.events[0].MemberIDs)
}

func TestFinalizeMonth_WrongStatus(t *testing.T) {
	store := newMockStore()
	store.seedStatus("group-1", "202603", lifecycle.StatusMassConfirmed, true, false)
	notifier := &recordingNotifier{}
	logger := zap.NewNop()

	_, err := FinalizeMonth(context.Background(), store, notifier, logger, "group-1", "202603", "admin")
	require.Error(t, err)

	var precondition *lifecycle.PreconditionError
	require.True(t, errors.As(err, &precondition))
	assert.Equal(t, lifecycle.StatusSurveyConfirmed, precondition.Required)
	assert.Zero(t, notifier.calls)
	assert.Empty(t, store.putStatuses)
}

func TestFinalizeMonth_NotifierFailureDoesNotRollBack(t *testing.T) {
	store := newMockStore()
	store.seedStatus("group-1", "202603", lifecycle.StatusSurveyConfirmed, false, false)
	notifier := &recordingNotifier{err: fmt.Errorf("webhook down")}
	logger := zap.NewNop()

	ms, err := FinalizeMonth(context.Background(), store, notifier, logger, "group-1", "202603", "admin")
	require.NoError(t, err, "Notification delivery is fire-and-forget")
	assert.Equal(t, lifecycle.StatusFinalConfirmed, ms.Status)

	stored := store.statuses[store.key("group-1", "202603")]
	assert.Equal(t, lifecycle.StatusFinalConfirmed, stored.Status)
	assert.True(t, stored.Locked)
}

func TestFinalizeMonth_NilNotifier(t *testing.T) {
	store := newMockStore()
	store.seedStatus("group-1", "202603", lifecycle.StatusSurveyConfirmed, false, false)
	logger := zap.NewNop()

	ms, err := FinalizeMonth(context.Background(), store, nil, logger, "group-1", "202603", "admin")
	require.NoError(t, err)
	assert.True(t, ms.Locked)
}
