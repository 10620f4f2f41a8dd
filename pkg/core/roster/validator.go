package roster

import (
	"fmt"

	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/month"
)

// Validate inspects a finished roster independently of how it was produced.
// It reports overfilled events and member duties closer together than
// minRestDays. Spacing findings overlap with the relaxations already
// reported by the run; validation exists so callers and tests can check the
// final state without trusting the pass bookkeeping.
func Validate(slots []*EventSlot, minRestDays int) []Finding {
	findings := []Finding{}

	for _, slot := range slots {
		if !slot.Fixed && len(slot.Assigned) > slot.Required {
			findings = append(findings, Finding{
				EventID:     slot.EventID,
				Date:        slot.Date,
				Kind:        FindingOverfilled,
				Description: fmt.Sprintf("%d servers assigned, %d required", len(slot.Assigned), slot.Required),
			})
		}

		seen := make(map[string]bool, len(slot.Assigned))
		for _, id := range slot.Assigned {
			if seen[id] {
				findings = append(findings, Finding{
					EventID:     slot.EventID,
					Date:        slot.Date,
					Kind:        FindingOverfilled,
					Description: fmt.Sprintf("member %s assigned twice to the same event", id),
				})
			}
			seen[id] = true
		}
	}

	if minRestDays > 0 {
		findings = append(findings, validateSpacing(slots, minRestDays)...)
	}

	return findings
}

// validateSpacing compares every pair of duties per member. Slots arrive in
// date order, so scanning forward until the gap opens up is enough.
func validateSpacing(slots []*EventSlot, minRestDays int) []Finding {
	var findings []Finding

	for i, slot := range slots {
		members := make(map[string]bool, len(slot.Assigned))
		for _, id := range slot.Assigned {
			members[id] = true
		}

		for j := i + 1; j < len(slots); j++ {
			other := slots[j]
			gap := month.DayDiff(slot.day, other.day)
			if gap >= minRestDays {
				break
			}
			for _, id := range other.Assigned {
				if members[id] {
					findings = append(findings, Finding{
						EventID:     other.EventID,
						Date:        other.Date,
						Kind:        FindingSpacingViolation,
						Description: fmt.Sprintf("member %s also serves %s on %s, %d day(s) apart", id, slot.EventID, slot.Date, gap),
					})
				}
			}
		}
	}

	return findings
}

func describeRelaxation(slot *EventSlot, minRestDays int) string {
	return fmt.Sprintf("rest gap relaxed from %d to %d day(s) to fill %d slot(s)", minRestDays, slot.GapUsed, slot.Required)
}

func describeUnderfill(slot *EventSlot) string {
	return fmt.Sprintf("only %d of %d required servers available", len(slot.Assigned), slot.Required)
}
