// Package lifecycle implements the monthly duty-cycle state machine. The
// MonthStatus record is the sole authority for which mutating operations are
// currently legal for a (group, month) pair.
package lifecycle

import (
	"fmt"
	"time"
)

// Status is the confirmation phase of a month.
type Status string

const (
	// StatusNotConfirmed is the initial state: events are still being edited.
	StatusNotConfirmed Status = "NOT_CONFIRMED"

	// StatusMassConfirmed means the month's mass events are finalized and the
	// availability survey may be opened.
	StatusMassConfirmed Status = "MASS_CONFIRMED"

	// StatusSurveyConfirmed means the survey has been closed and the
	// assignment solver may run.
	StatusSurveyConfirmed Status = "SURVEY_CONFIRMED"

	// StatusFinalConfirmed is terminal unless explicitly reopened by an
	// operator. Entering it always sets the edit lock.
	StatusFinalConfirmed Status = "FINAL_CONFIRMED"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotConfirmed, StatusMassConfirmed, StatusSurveyConfirmed, StatusFinalConfirmed:
		return true
	}
	return false
}

// rank orders statuses along the monthly cycle.
func (s Status) rank() int {
	switch s {
	case StatusMassConfirmed:
		return 1
	case StatusSurveyConfirmed:
		return 2
	case StatusFinalConfirmed:
		return 3
	}
	return 0
}

// AtLeast reports whether s has reached the given phase of the cycle.
func (s Status) AtLeast(other Status) bool {
	return s.rank() >= other.rank()
}

// MonthStatus is the per-(group, month) state machine record.
type MonthStatus struct {
	GroupID    string
	Month      string // YYYYMM
	Status     Status
	SurveyOpen bool
	Locked     bool
	Note       string
	UpdatedBy  string
	UpdatedAt  time.Time
}

// NewMonthStatus returns the initial record for a month.
func NewMonthStatus(groupID, monthKey string) *MonthStatus {
	return &MonthStatus{
		GroupID: groupID,
		Month:   monthKey,
		Status:  StatusNotConfirmed,
	}
}

// ConfirmMasses advances NOT_CONFIRMED to MASS_CONFIRMED.
func (ms *MonthStatus) ConfirmMasses(by string) error {
	if err := ms.require("confirm masses", StatusNotConfirmed); err != nil {
		return err
	}
	ms.set(StatusMassConfirmed, by)
	return nil
}

// OpenSurvey opens the availability survey. Only permitted once the month's
// events are confirmed, and only if the survey is not already open.
func (ms *MonthStatus) OpenSurvey(by string) error {
	if err := ms.require("open survey", StatusMassConfirmed); err != nil {
		return err
	}
	if ms.SurveyOpen {
		return &PreconditionError{
			Op:     "open survey",
			Actual: ms.Status,
			Reason: "survey is already open",
		}
	}
	ms.SurveyOpen = true
	ms.touch(by)
	return nil
}

// CloseSurvey closes an open survey and advances to SURVEY_CONFIRMED.
func (ms *MonthStatus) CloseSurvey(by string) error {
	if err := ms.require("close survey", StatusMassConfirmed); err != nil {
		return err
	}
	if !ms.SurveyOpen {
		return &PreconditionError{
			Op:     "close survey",
			Actual: ms.Status,
			Reason: "survey has not been opened",
		}
	}
	ms.SurveyOpen = false
	ms.set(StatusSurveyConfirmed, by)
	return nil
}

// CheckAssignable reports whether the assignment solver may run. It is a
// guard only and never mutates the record.
func (ms *MonthStatus) CheckAssignable() error {
	return ms.require("assign servers", StatusSurveyConfirmed)
}

// CheckEditable reports whether event and member mutations are permitted.
func (ms *MonthStatus) CheckEditable() error {
	if ms.Locked {
		return &PreconditionError{
			Op:     "edit events",
			Actual: ms.Status,
			Reason: "month is locked",
		}
	}
	return nil
}

// Finalize advances SURVEY_CONFIRMED to FINAL_CONFIRMED and sets the edit
// lock. FINAL_CONFIRMED always implies Locked.
func (ms *MonthStatus) Finalize(by string) error {
	if err := ms.require("finalize month", StatusSurveyConfirmed); err != nil {
		return err
	}
	ms.set(StatusFinalConfirmed, by)
	ms.Locked = true
	return nil
}

// ForceSet is the administrative override: it moves the record to any status
// directly. A non-empty note explaining the override is mandatory so the
// who/when/why is preserved on the record.
func (ms *MonthStatus) ForceSet(status Status, note, by string) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	if note == "" {
		return &PreconditionError{
			Op:     "force-set status",
			Actual: ms.Status,
			Reason: "an override note is required",
		}
	}
	ms.Note = note
	ms.set(status, by)
	ms.Locked = status == StatusFinalConfirmed
	if status != StatusMassConfirmed {
		ms.SurveyOpen = false
	}
	return nil
}

func (ms *MonthStatus) require(op string, want Status) error {
	if ms.Status != want {
		return &PreconditionError{Op: op, Required: want, Actual: ms.Status}
	}
	return nil
}

func (ms *MonthStatus) set(status Status, by string) {
	ms.Status = status
	ms.touch(by)
}

func (ms *MonthStatus) touch(by string) {
	ms.UpdatedBy = by
	ms.UpdatedAt = time.Now().UTC()
}
