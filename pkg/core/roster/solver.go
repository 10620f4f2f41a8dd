// Package roster implements the duty assignment solver: a deterministic
// single forward pass over a month's mass events that balances current-month
// counts under a relaxable spacing constraint. The only non-deterministic
// step is the tie-break among equally ranked candidates, which draws from an
// injectable randomness source.
package roster

import (
	"math/rand"
	"time"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
)

// Assign runs the solver over the given configuration and returns the
// outcome. The input slices are not mutated; fixed events pass through with
// their assignee lists untouched.
func Assign(cfg Config) (*Outcome, error) {
	state, err := InitState(cfg)
	if err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	outcome := &Outcome{
		Slots:    state.Slots,
		Counts:   make(map[string]int, len(state.Candidates)),
		Findings: []Finding{},
		Complete: true,
	}

	for _, slot := range state.Slots {
		if slot.Fixed {
			// Preserve the list verbatim; the date still counts toward
			// spacing for the involved members. Fixed duties do not bump
			// fairness counts.
			state.recordDuty(slot.Assigned, slot.day)
			slot.GapUsed = state.MinRestDays
			continue
		}

		state.fillSlot(slot, rng)

		if slot.GapUsed < state.MinRestDays {
			outcome.Findings = append(outcome.Findings, Finding{
				EventID:     slot.EventID,
				Date:        slot.Date,
				Kind:        FindingSpacingRelaxed,
				Description: describeRelaxation(slot, state.MinRestDays),
			})
		}
		if slot.ShortBy > 0 {
			outcome.Complete = false
			outcome.Findings = append(outcome.Findings, Finding{
				EventID:     slot.EventID,
				Date:        slot.Date,
				Kind:        FindingUnderfilled,
				Description: describeUnderfill(slot),
			})
		}
	}

	for id, cand := range state.Candidates {
		outcome.Counts[id] = cand.Count
	}

	return outcome, nil
}

// fillSlot selects assignees for one non-fixed slot and updates the fairness
// state immediately, so later slots in the pass see the new counts.
func (s *State) fillSlot(slot *EventSlot, rng Rand) {
	slot.Assigned = []string{}
	slot.HeadServerID = ""

	pool := s.eligible(slot)

	// Spacing constraint with progressive relief: start from the configured
	// gap and shorten one day at a time until enough candidates remain. A
	// slot is never left unfilled while any eligible member exists.
	gap := s.MinRestDays
	spaced := filterBySpacing(pool, slot, gap)
	for len(spaced) < slot.Required && gap > 0 {
		gap--
		spaced = filterBySpacing(pool, slot, gap)
	}
	slot.GapUsed = gap

	ranked := rankCandidates(spaced, rng)

	n := min(slot.Required, len(ranked))
	picks := append([]*Candidate(nil), ranked[:n]...)
	picks = s.applyExperienceGuard(picks, ranked)

	for _, cand := range picks {
		slot.Assigned = append(slot.Assigned, cand.ID)
		cand.Count++
		cand.LastDuty = slot.day
	}
	slot.ShortBy = slot.Required - len(picks)
	slot.HeadServerID = selectHeadServer(picks)
}

// eligible returns all candidates minus those who declared unavailability
// for this specific event.
func (s *State) eligible(slot *EventSlot) []*Candidate {
	pool := make([]*Candidate, 0, len(s.Candidates))
	for _, cand := range s.Candidates {
		if cand.Unavailable[slot.EventID] {
			continue
		}
		pool = append(pool, cand)
	}
	return pool
}

// filterBySpacing drops candidates whose most recent duty lies within gap
// days of the slot's date.
func filterBySpacing(pool []*Candidate, slot *EventSlot, gap int) []*Candidate {
	if gap == 0 {
		return pool
	}
	kept := make([]*Candidate, 0, len(pool))
	for _, cand := range pool {
		if cand.HasServed() && month.DayDiff(cand.LastDuty, slot.day) < gap {
			continue
		}
		kept = append(kept, cand)
	}
	return kept
}

// recordDuty marks the given date as the latest duty for each listed member.
// IDs that do not resolve to an active candidate (e.g. a fixed event naming
// a deactivated member) are skipped.
func (s *State) recordDuty(memberIDs []string, day time.Time) {
	for _, id := range memberIDs {
		if cand, ok := s.Candidates[id]; ok {
			cand.LastDuty = day
		}
	}
}
