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

func backupFixture() *mockStore {
	store := newMockStore()
	store.events = []db.Event{
		{ID: "ev-1", GroupID: "group-1", Date: "20260301", Title: "Sunday Mass", RequiredCount: 2, MemberIDs: []string{"m1", "m2"}, HeadServerID: "m1"},
		{ID: "ev-2", GroupID: "group-1", Date: "20260308", Title: "Sunday Mass", RequiredCount: 2, MemberIDs: []string{"m3"}},
		{ID: "ev-apr", GroupID: "group-1", Date: "20260405", Title: "Sunday Mass", RequiredCount: 2},
	}
	return store
}

func TestCreateBackup_SnapshotsMonthVerbatim(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()

	backup, err := CreateBackup(context.Background(), store, logger, "group-1", "202603", "before cleanup")
	require.NoError(t, err)

	assert.Equal(t, "before cleanup", backup.Label)
	assert.Equal(t, "202603", backup.Month)
	require.Len(t, backup.Events, 2, "Only the requested month is captured")
	assert.Equal(t, "ev-1", backup.Events[0].ID)
	assert.Equal(t, []string{"m1", "m2"}, backup.Events[0].MemberIDs)
	assert.Equal(t, "m1", backup.Events[0].HeadServerID)
	assert.False(t, backup.CreatedAt.IsZero())
}

func TestCreateBackup_DefaultLabel(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()

	backup, err := CreateBackup(context.Background(), store, logger, "group-1", "202603", "")
	require.NoError(t, err)
	assert.NotEmpty(t, backup.Label)
}

func TestRestoreBackup_ReplacesMonthKeepingIDs(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()
	ctx := context.Background()

	backup, err := CreateBackup(ctx, store, logger, "group-1", "202603", "golden")
	require.NoError(t, err)

	// The month is rewritten after the snapshot.
	require.NoError(t, store.ReplaceMonthEvents(ctx, "group-1", "202603", []db.Event{
		{ID: "ev-new", GroupID: "group-1", Date: "20260315", Title: "Replacement", RequiredCount: 3},
	}))

	restored, err := RestoreBackup(ctx, store, logger, "group-1", backup.ID)
	require.NoError(t, err)
	assert.Equal(t, "202603", restored.Month)

	live, err := store.ListEventsInRange(ctx, "group-1", "20260301", "20260331")
	require.NoError(t, err)
	require.Len(t, live, 2)
	ids := []string{live[0].ID, live[1].ID}
	assert.ElementsMatch(t, []string{"ev-1", "ev-2"}, ids, "Restore keeps the snapshot's original event IDs")

	// Other months are untouched.
	april, err := store.ListEventsInRange(ctx, "group-1", "20260401", "20260430")
	require.NoError(t, err)
	assert.Len(t, april, 1)
}

func TestRestoreBackup_FailedWriteLeavesLiveSet(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()
	ctx := context.Background()

	backup, err := CreateBackup(ctx, store, logger, "group-1", "202603", "golden")
	require.NoError(t, err)

	store.errs["ReplaceMonthEvents"] = fmt.Errorf("connection reset")
	_, err = RestoreBackup(ctx, store, logger, "group-1", backup.ID)
	require.Error(t, err)

	delete(store.errs, "ReplaceMonthEvents")
	live, err := store.ListEventsInRange(ctx, "group-1", "20260301", "20260331")
	require.NoError(t, err)
	assert.Len(t, live, 2, "A failed restore must not lose live events")
}

func TestRestoreBackup_LockedMonthRejected(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()
	ctx := context.Background()

	backup, err := CreateBackup(ctx, store, logger, "group-1", "202603", "golden")
	require.NoError(t, err)

	store.seedStatus("group-1", "202603", lifecycle.StatusFinalConfirmed, false, true)

	_, err = RestoreBackup(ctx, store, logger, "group-1", backup.ID)
	require.Error(t, err)
	var precondition *lifecycle.PreconditionError
	assert.True(t, errors.As(err, &precondition))
	assert.Empty(t, store.replaced, "A locked month's live events must stay as they are")
}

func TestRestoreBackup_UnknownID(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()

	_, err := RestoreBackup(context.Background(), store, logger, "group-1", "no-such-backup")
	require.Error(t, err)
}

func TestRenameBackup_MetadataOnly(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()
	ctx := context.Background()

	backup, err := CreateBackup(ctx, store, logger, "group-1", "202603", "draft")
	require.NoError(t, err)

	require.NoError(t, RenameBackup(ctx, store, logger, "group-1", backup.ID, "approved"))
	assert.Equal(t, "approved", store.renamed[backup.ID])

	live, err := store.ListEventsInRange(ctx, "group-1", "20260301", "20260331")
	require.NoError(t, err)
	assert.Len(t, live, 2)
}

func TestRenameBackup_EmptyLabelRejected(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()

	err := RenameBackup(context.Background(), store, logger, "group-1", "any", "")
	require.Error(t, err)
}

func TestDeleteBackup_LeavesEvents(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()
	ctx := context.Background()

	backup, err := CreateBackup(ctx, store, logger, "group-1", "202603", "old")
	require.NoError(t, err)

	require.NoError(t, DeleteBackup(ctx, store, logger, "group-1", backup.ID))
	assert.Empty(t, store.backups)

	live, err := store.ListEventsInRange(ctx, "group-1", "20260301", "20260331")
	require.NoError(t, err)
	assert.Len(t, live, 2)
}

func TestListBackups_FiltersByMonth(t *testing.T) {
	store := backupFixture()
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := CreateBackup(ctx, store, logger, "group-1", "202603", "march")
	require.NoError(t, err)
	_, err = CreateBackup(ctx, store, logger, "group-1", "202604", "april")
	require.NoError(t, err)

	backups, err := ListBackups(ctx, store, "group-1", "202603")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, "march", backups[0].Label)
}
