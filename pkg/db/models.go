package db

import "time"

// Event is a persisted mass event record. Dates are YYYYMMDD strings so the
// store can range-scan a month lexicographically.
type Event struct {
	ID            string
	GroupID       string
	Date          string
	Title         string
	RequiredCount int
	MemberIDs     []string
	HeadServerID  string
	// Fixed excludes the event from auto-assignment; its member list is
	// preserved across solver runs.
	Fixed bool
}

// Member is a registered altar server. Members are deactivated rather than
// deleted while history referencing them exists.
type Member struct {
	ID            string
	GroupID       string
	Name          string
	BaptismalName string
	// ServingSince is the year the member started serving; 0 when unknown.
	ServingSince int
	Active       bool
}

// SurveyResponse is one member's unavailability declaration for a month.
// The event IDs are weak references: an event may be deleted after the
// response was submitted, and readers must tolerate that.
type SurveyResponse struct {
	GroupID             string
	Month               string
	MemberID            string
	UnavailableEventIDs []string
	SubmittedAt         time.Time
}

// Assignment is the solver output for one event, applied as a point update.
type Assignment struct {
	EventID      string
	MemberIDs    []string
	HeadServerID string
}

// Backup is a labeled, timestamped snapshot of a month's full event set.
// Snapshots keep the original event IDs so a restore leaves external
// references valid.
type Backup struct {
	ID        string
	GroupID   string
	Month     string
	Label     string
	CreatedAt time.Time
	Events    []Event
}
