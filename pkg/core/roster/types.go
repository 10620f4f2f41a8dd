package roster

import "time"

// Member is an active altar server eligible for assignment.
type Member struct {
	ID string

	// Name is used for deterministic head-server tie-breaks.
	Name string

	// ServingSince is the year the member started serving. Earlier years are
	// more senior. Zero means unknown and ranks last for head-server
	// selection (missing seniority data is tolerated, never fatal).
	ServingSince int
}

// EventSlot is a single mass event being filled during a run.
type EventSlot struct {
	// EventID identifies the underlying mass event record.
	EventID string

	// Date of the event (YYYYMMDD).
	Date string

	// Title of the mass (display only).
	Title string

	// Required is the target number of servers for this event.
	Required int

	// Fixed marks an event excluded from auto-assignment. Its Assigned list
	// is preserved verbatim; its date still counts toward spacing for the
	// members involved.
	Fixed bool

	// Assigned holds the member IDs serving this event. For fixed events it
	// is the pre-existing list; for the rest it is produced by the run.
	Assigned []string

	// HeadServerID is the designated head server among Assigned. Preserved
	// for fixed events, selected by seniority for the rest.
	HeadServerID string

	// ShortBy is how many slots stayed unfilled after the run.
	ShortBy int

	// GapUsed is the spacing requirement (in days) this slot was filled
	// under. Equal to the configured minimum unless relaxation was needed.
	GapUsed int

	day time.Time
}

// Candidate tracks one member's running state during a pass.
type Candidate struct {
	Member

	// Count is the current-month assignment count. It is updated immediately
	// after every pick so later events observe the new fairness state.
	Count int

	// PriorCount is last month's count. Display context only, never a
	// constraint.
	PriorCount int

	// LastDuty is the date of the member's most recent duty this month,
	// fixed events included. Zero when the member has not served yet.
	LastDuty time.Time

	// Unavailable is the set of event IDs the member declared out for.
	Unavailable map[string]bool
}

// HasServed reports whether the candidate has any duty recorded this month.
func (c *Candidate) HasServed() bool {
	return !c.LastDuty.IsZero()
}

// State is the working state of a single solver run.
type State struct {
	// Slots in strictly ascending date order. Spacing and fairness are
	// order-dependent, so the pass never revisits a slot.
	Slots []*EventSlot

	// Candidates indexed by member ID.
	Candidates map[string]*Candidate

	// MinRestDays is the configured spacing constraint.
	MinRestDays int

	// noviceYear is the newest known serving-since year across the roster.
	// Members of that cohort (and members with no year) count as novices for
	// the experience guard.
	noviceYear int
}

// isNovice reports whether the candidate belongs to the newest start-year
// cohort. An unknown year counts as novice.
func (s *State) isNovice(c *Candidate) bool {
	return c.ServingSince <= 0 || c.ServingSince >= s.noviceYear
}

// Finding reports a constraint the run could not honor or had to relax.
// Findings are part of the result report, not errors: underfill and spacing
// relaxation are legitimate partial outcomes.
type Finding struct {
	EventID     string
	Date        string
	Kind        FindingKind
	Description string
}

// FindingKind classifies a Finding.
type FindingKind string

const (
	// FindingUnderfilled means fewer eligible members existed than the
	// event required.
	FindingUnderfilled FindingKind = "underfilled"

	// FindingSpacingRelaxed means the minimum rest gap had to be shortened
	// to fill the event.
	FindingSpacingRelaxed FindingKind = "spacing_relaxed"

	// FindingSpacingViolation is produced by validation when two duties of
	// one member sit closer than the configured minimum.
	FindingSpacingViolation FindingKind = "spacing_violation"

	// FindingOverfilled is produced by validation when an event carries more
	// assignees than required. The solver never does this on its own.
	FindingOverfilled FindingKind = "overfilled"
)

// Outcome is the result of a solver run.
type Outcome struct {
	// Slots in date order, with Assigned, HeadServerID, ShortBy and GapUsed
	// populated. Fixed slots pass through untouched.
	Slots []*EventSlot

	// Counts is the final current-month assignment count per member ID.
	Counts map[string]int

	// Findings lists underfills and spacing relaxations from the pass.
	Findings []Finding

	// Complete is true when every non-fixed slot reached its required size.
	Complete bool
}
