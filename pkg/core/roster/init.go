package roster

import (
	"fmt"
	"sort"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
)

// EventInput is one mass event handed to the solver.
type EventInput struct {
	EventID      string
	Date         string // YYYYMMDD
	Title        string
	Required     int
	Fixed        bool
	Assigned     []string
	HeadServerID string
}

// Config is the full input of a solver run.
type Config struct {
	// Events for the target month, in any order; the run sorts them by date.
	Events []EventInput

	// Members is the active roster. Inactive members must be filtered out by
	// the caller before the run.
	Members []Member

	// PriorCounts holds last month's per-member assignment counts. Carried
	// through to the outcome for display; not a constraint.
	PriorCounts map[string]int

	// Unavailable maps member ID to the set of event IDs they declared out
	// for. Missing members mean fully available.
	Unavailable map[string]map[string]bool

	// MinRestDays is the minimum day gap between two duties of one member.
	// The run relaxes it per event, down to zero, when the pool would
	// otherwise be too small.
	MinRestDays int

	// Rand drives the tie-break among equally ranked candidates. This is the
	// one deliberately non-deterministic step; tests inject a fixed seed to
	// make everything else reproducible.
	Rand Rand
}

// InitState validates the config and builds the working state.
//
// Errors are returned for structural problems only: no events, no members,
// an unparseable event date, or a negative required count. Missing
// unavailability or prior-count entries are normal.
func InitState(cfg Config) (*State, error) {
	if len(cfg.Events) == 0 {
		return nil, fmt.Errorf("no events to assign")
	}
	if len(cfg.Members) == 0 {
		return nil, fmt.Errorf("no active members in the roster")
	}
	if cfg.MinRestDays < 0 {
		return nil, fmt.Errorf("minimum rest days must not be negative, got %d", cfg.MinRestDays)
	}

	slots := make([]*EventSlot, 0, len(cfg.Events))
	for _, ev := range cfg.Events {
		if ev.Required < 0 {
			return nil, fmt.Errorf("event %s: required server count must not be negative, got %d", ev.EventID, ev.Required)
		}
		day, err := month.ParseDate(ev.Date)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.EventID, err)
		}
		slots = append(slots, &EventSlot{
			EventID:      ev.EventID,
			Date:         ev.Date,
			Title:        ev.Title,
			Required:     ev.Required,
			Fixed:        ev.Fixed,
			Assigned:     append([]string(nil), ev.Assigned...),
			HeadServerID: ev.HeadServerID,
			day:          day,
		})
	}

	// Date-ascending, event ID as a stable secondary key for same-day masses.
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].EventID < slots[j].EventID
	})

	candidates := make(map[string]*Candidate, len(cfg.Members))
	noviceYear := 0
	for _, m := range cfg.Members {
		if m.ID == "" {
			return nil, fmt.Errorf("member with empty ID in roster")
		}
		candidates[m.ID] = &Candidate{
			Member:      m,
			PriorCount:  cfg.PriorCounts[m.ID],
			Unavailable: cfg.Unavailable[m.ID],
		}
		if m.ServingSince > noviceYear {
			noviceYear = m.ServingSince
		}
	}

	return &State{
		Slots:       slots,
		Candidates:  candidates,
		MinRestDays: cfg.MinRestDays,
		noviceYear:  noviceYear,
	}, nil
}
