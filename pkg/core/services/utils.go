package services

import (
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/roster"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/survey"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/db"
)

// filterActiveMembers keeps only members eligible for assignment.
func filterActiveMembers(members []db.Member) []db.Member {
	active := make([]db.Member, 0, len(members))
	for _, m := range members {
		if m.Active {
			active = append(active, m)
		}
	}
	return active
}

// toRosterMembers converts registry records into solver members.
func toRosterMembers(members []db.Member) []roster.Member {
	result := make([]roster.Member, len(members))
	for i, m := range members {
		result[i] = roster.Member{
			ID:           m.ID,
			Name:         m.Name,
			ServingSince: m.ServingSince,
		}
	}
	return result
}

// toSurveyResponses converts stored responses for aggregation.
func toSurveyResponses(responses []db.SurveyResponse) []survey.Response {
	result := make([]survey.Response, len(responses))
	for i, r := range responses {
		result[i] = survey.Response{
			MemberID:            r.MemberID,
			UnavailableEventIDs: r.UnavailableEventIDs,
			SubmittedAt:         r.SubmittedAt,
		}
	}
	return result
}

// eventIDs extracts the ID of every event.
func eventIDs(events []db.Event) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

// countAssignments tallies how many events each member serves in the given
// set. Used for the prior-month fairness context.
func countAssignments(events []db.Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		for _, id := range e.MemberIDs {
			counts[id]++
		}
	}
	return counts
}

// memberIDSet builds a lookup set of member IDs.
func memberIDSet(members []db.Member) map[string]bool {
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m.ID] = true
	}
	return set
}
