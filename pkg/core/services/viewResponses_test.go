package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

func viewFixture() *mockStore {
	store := newMockStore()
	store.events = []db.Event{
		{ID: "ev-1", GroupID: "group-1", Date: "20260301", Title: "Sunday Mass", RequiredCount: 2},
		{ID: "ev-2", GroupID: "group-1", Date: "20260308", Title: "Sunday Mass", RequiredCount: 2},
	}
	store.members = []db.Member{
		{ID: "m1", GroupID: "group-1", Name: "Anna", Active: true},
		{ID: "m2", GroupID: "group-1", Name: "Ben", Active: true},
		{ID: "m3", GroupID: "group-1", Name: "Chris", Active: true},
		{ID: "m4", GroupID: "group-1", Name: "Dora", Active: false},
	}
	store.responses = []db.SurveyResponse{
		{GroupID: "group-1", Month: "202603", MemberID: "m1", UnavailableEventIDs: []string{"ev-1"}},
		{GroupID: "group-1", Month: "202603", MemberID: "m2", UnavailableEventIDs: []string{}},
	}
	return store
}

func TestViewResponses_Summary(t *testing.T) {
	store := viewFixture()
	logger := zap.NewNop()

	result, err := ViewResponses(context.Background(), store, logger, "group-1", "202603")
	require.NoError(t, err)

	assert.Equal(t, 2, result.RespondedCount)
	require.Len(t, result.Members, 3, "Inactive members are excluded")

	rows := map[string]MemberResponseRow{}
	for _, row := range result.Members {
		rows[row.MemberID] = row
	}
	assert.True(t, rows["m1"].Responded)
	assert.Equal(t, 1, rows["m1"].UnavailableCount)

	// Fully available and silent are distinct states.
	assert.True(t, rows["m2"].Responded)
	assert.Zero(t, rows["m2"].UnavailableCount)
	assert.False(t, rows["m3"].Responded)
	assert.Zero(t, rows["m3"].UnavailableCount)

	require.Len(t, result.Events, 2)
	assert.Equal(t, []string{"m1"}, result.Events[0].UnavailableMembers)
	assert.Empty(t, result.Events[1].UnavailableMembers)
}

func TestViewResponses_StaleReferencesCounted(t *testing.T) {
	store := viewFixture()
	store.responses = append(store.responses, db.SurveyResponse{
		GroupID:             "group-1",
		Month:               "202603",
		MemberID:            "m3",
		UnavailableEventIDs: []string{"ev-deleted"},
	})
	logger := zap.NewNop()

	result, err := ViewResponses(context.Background(), store, logger, "group-1", "202603")
	require.NoError(t, err)

	assert.Equal(t, 1, result.StaleReferences)

	rows := map[string]MemberResponseRow{}
	for _, row := range result.Members {
		rows[row.MemberID] = row
	}
	assert.True(t, rows["m3"].Responded, "A stale response still counts as responded")
	assert.Zero(t, rows["m3"].UnavailableCount, "Deleted events drop out of the live view")
}

func TestViewResponses_NoEventsNoResponses(t *testing.T) {
	store := newMockStore()
	store.members = []db.Member{{ID: "m1", GroupID: "group-1", Name: "Anna", Active: true}}
	logger := zap.NewNop()

	result, err := ViewResponses(context.Background(), store, logger, "group-1", "202603")
	require.NoError(t, err)

	assert.Zero(t, result.RespondedCount)
	assert.Empty(t, result.Events)
	require.Len(t, result.Members, 1)
	assert.False(t, result.Members[0].Responded)
}
