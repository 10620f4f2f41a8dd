package db

import (
	"context"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
)

// EventStore persists mass events. ReplaceMonthEvents and WriteAssignments
// are the atomic multi-write primitives required by restore, preset-copy and
// the solver: they either commit fully or leave the prior state intact.
type EventStore interface {
	ListEventsInRange(ctx context.Context, groupID, fromDate, toDate string) ([]Event, error)
	InsertEvent(ctx context.Context, event Event) error
	UpdateEvent(ctx context.Context, event Event) error
	DeleteEvent(ctx context.Context, groupID, eventID string) error
	ReplaceMonthEvents(ctx context.Context, groupID, monthKey string, events []Event) error
	WriteAssignments(ctx context.Context, groupID string, assignments []Assignment) error
}

// MemberStore reads the server registry for a group.
type MemberStore interface {
	ListMembers(ctx context.Context, groupID string) ([]Member, error)
}

// SurveyStore persists availability responses, one document per
// (group, month, member). PutResponse overwrites a prior submission.
type SurveyStore interface {
	GetResponses(ctx context.Context, groupID, monthKey string) ([]SurveyResponse, error)
	PutResponse(ctx context.Context, response SurveyResponse) error
}

// StatusStore persists the month lifecycle record. GetMonthStatus returns a
// fresh NOT_CONFIRMED record when none exists yet.
type StatusStore interface {
	GetMonthStatus(ctx context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error)
	PutMonthStatus(ctx context.Context, status *lifecycle.MonthStatus) error
}

// BackupStore persists event snapshots, append-only per (group, month).
// Deleting or renaming a snapshot never touches live event data.
type BackupStore interface {
	ListBackups(ctx context.Context, groupID, monthKey string) ([]Backup, error)
	GetBackup(ctx context.Context, groupID, backupID string) (*Backup, error)
	InsertBackup(ctx context.Context, backup Backup) error
	RenameBackup(ctx context.Context, groupID, backupID, label string) error
	DeleteBackup(ctx context.Context, groupID, backupID string) error
}

// Store bundles every persistence concern the scheduler core touches.
type Store interface {
	EventStore
	MemberStore
	SurveyStore
	StatusStore
	BackupStore
}
