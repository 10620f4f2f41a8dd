package services

import (
	"context"
	"fmt"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/lifecycle"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// mockStore is a test double for the per-service store interfaces. Reads
// serve the seeded fixtures; writes are recorded for assertions. Any method
// can be made to fail by name via errs.
type mockStore struct {
	statuses  map[string]*lifecycle.MonthStatus // key: group/month
	events    []db.Event
	members   []db.Member
	responses []db.SurveyResponse
	backups   []db.Backup

	putStatuses     []*lifecycle.MonthStatus
	putResponses    []db.SurveyResponse
	inserted        []db.Event
	updated         []db.Event
	deleted         []string
	assignments     []db.Assignment
	insertedBackups []db.Backup
	renamed         map[string]string
	deletedBackups  []string
	replaced        map[string][]db.Event // monthKey -> new event set

	errs map[string]error
}

func newMockStore() *mockStore {
	return &mockStore{
		statuses: make(map[string]*lifecycle.MonthStatus),
		renamed:  make(map[string]string),
		replaced: make(map[string][]db.Event),
		errs:     make(map[string]error),
	}
}

func (m *mockStore) key(groupID, monthKey string) string {
	return groupID + "/" + monthKey
}

func (m *mockStore) seedStatus(groupID, monthKey string, status lifecycle.Status, surveyOpen, locked bool) {
	m.statuses[m.key(groupID, monthKey)] = &lifecycle.MonthStatus{
		GroupID:    groupID,
		Month:      monthKey,
		Status:     status,
		SurveyOpen: surveyOpen,
		Locked:     locked,
	}
}

func (m *mockStore) GetMonthStatus(_ context.Context, groupID, monthKey string) (*lifecycle.MonthStatus, error) {
	if err := m.errs["GetMonthStatus"]; err != nil {
		return nil, err
	}
	if ms, ok := m.statuses[m.key(groupID, monthKey)]; ok {
		copied := *ms
		return &copied, nil
	}
	return lifecycle.NewMonthStatus(groupID, monthKey), nil
}

func (m *mockStore) PutMonthStatus(_ context.Context, ms *lifecycle.MonthStatus) error {
	if err := m.errs["PutMonthStatus"]; err != nil {
		return err
	}
	copied := *ms
	m.statuses[m.key(ms.GroupID, ms.Month)] = &copied
	m.putStatuses = append(m.putStatuses, &copied)
	return nil
}

func (m *mockStore) ListEventsInRange(_ context.Context, groupID, fromDate, toDate string) ([]db.Event, error) {
	if err := m.errs["ListEventsInRange"]; err != nil {
		return nil, err
	}
	var events []db.Event
	for _, e := range m.events {
		if e.GroupID == groupID && e.Date >= fromDate && e.Date <= toDate {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *mockStore) InsertEvent(_ context.Context, event db.Event) error {
	if err := m.errs["InsertEvent"]; err != nil {
		return err
	}
	m.events = append(m.events, event)
	m.inserted = append(m.inserted, event)
	return nil
}

func (m *mockStore) UpdateEvent(_ context.Context, event db.Event) error {
	if err := m.errs["UpdateEvent"]; err != nil {
		return err
	}
	for i := range m.events {
		if m.events[i].ID == event.ID {
			m.events[i] = event
			m.updated = append(m.updated, event)
			return nil
		}
	}
	return fmt.Errorf("event %s not found", event.ID)
}

func (m *mockStore) DeleteEvent(_ context.Context, _, eventID string) error {
	if err := m.errs["DeleteEvent"]; err != nil {
		return err
	}
	for i := range m.events {
		if m.events[i].ID == eventID {
			m.events = append(m.events[:i], m.events[i+1:]...)
			m.deleted = append(m.deleted, eventID)
			return nil
		}
	}
	return fmt.Errorf("event %s not found", eventID)
}

func (m *mockStore) ReplaceMonthEvents(_ context.Context, groupID, monthKey string, events []db.Event) error {
	if err := m.errs["ReplaceMonthEvents"]; err != nil {
		return err
	}
	fromDate := monthKey + "01"
	toDate := monthKey + "31"
	var kept []db.Event
	for _, e := range m.events {
		if e.GroupID == groupID && e.Date >= fromDate && e.Date <= toDate {
			continue
		}
		kept = append(kept, e)
	}
	m.events = append(kept, events...)
	m.replaced[monthKey] = events
	return nil
}

func (m *mockStore) WriteAssignments(_ context.Context, _ string, assignments []db.Assignment) error {
	if err := m.errs["WriteAssignments"]; err != nil {
		return err
	}
	m.assignments = append(m.assignments, assignments...)
	for _, a := range assignments {
		for i := range m.events {
			if m.events[i].ID == a.EventID {
				m.events[i].MemberIDs = a.MemberIDs
				m.events[i].HeadServerID = a.HeadServerID
			}
		}
	}
	return nil
}

func (m *mockStore) ListMembers(_ context.Context, groupID string) ([]db.Member, error) {
	if err := m.errs["ListMembers"]; err != nil {
		return nil, err
	}
	var members []db.Member
	for _, mem := range m.members {
		if mem.GroupID == groupID {
			members = append(members, mem)
		}
	}
	return members, nil
}

func (m *mockStore) GetResponses(_ context.Context, groupID, monthKey string) ([]db.SurveyResponse, error) {
	if err := m.errs["GetResponses"]; err != nil {
		return nil, err
	}
	var responses []db.SurveyResponse
	for _, r := range m.responses {
		if r.GroupID == groupID && r.Month == monthKey {
			responses = append(responses, r)
		}
	}
	return responses, nil
}

func (m *mockStore) PutResponse(_ context.Context, response db.SurveyResponse) error {
	if err := m.errs["PutResponse"]; err != nil {
		return err
	}
	for i := range m.responses {
		if m.responses[i].GroupID == response.GroupID &&
			m.responses[i].Month == response.Month &&
			m.responses[i].MemberID == response.MemberID {
			m.responses[i] = response
			m.putResponses = append(m.putResponses, response)
			return nil
		}
	}
	m.responses = append(m.responses, response)
	m.putResponses = append(m.putResponses, response)
	return nil
}

func (m *mockStore) ListBackups(_ context.Context, groupID, monthKey string) ([]db.Backup, error) {
	if err := m.errs["ListBackups"]; err != nil {
		return nil, err
	}
	var backups []db.Backup
	for _, b := range m.backups {
		if b.GroupID == groupID && b.Month == monthKey {
			backups = append(backups, b)
		}
	}
	return backups, nil
}

func (m *mockStore) GetBackup(_ context.Context, groupID, backupID string) (*db.Backup, error) {
	if err := m.errs["GetBackup"]; err != nil {
		return nil, err
	}
	for _, b := range m.backups {
		if b.GroupID == groupID && b.ID == backupID {
			copied := b
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("backup %s not found", backupID)
}

func (m *mockStore) InsertBackup(_ context.Context, backup db.Backup) error {
	if err := m.errs["InsertBackup"]; err != nil {
		return err
	}
	m.backups = append(m.backups, backup)
	m.insertedBackups = append(m.insertedBackups, backup)
	return nil
}

func (m *mockStore) RenameBackup(_ context.Context, groupID, backupID, label string) error {
	if err := m.errs["RenameBackup"]; err != nil {
		return err
	}
	for i := range m.backups {
		if m.backups[i].GroupID == groupID && m.backups[i].ID == backupID {
			m.backups[i].Label = label
			m.renamed[backupID] = label
			return nil
		}
	}
	return fmt.Errorf("backup %s not found", backupID)
}

func (m *mockStore) DeleteBackup(_ context.Context, groupID, backupID string) error {
	if err := m.errs["DeleteBackup"]; err != nil {
		return err
	}
	for i := range m.backups {
		if m.backups[i].GroupID == groupID && m.backups[i].ID == backupID {
			m.backups = append(m.backups[:i], m.backups[i+1:]...)
			m.deletedBackups = append(m.deletedBackups, backupID)
			return nil
		}
	}
	return fmt.Errorf("backup %s not found", backupID)
}
