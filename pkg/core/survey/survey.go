// Package survey aggregates the monthly availability responses. A member
// with no response document is "non-responding", which is distinct from a
// member who responded with an empty unavailable set ("fully available").
package survey

import (
	"sort"
	"time"
)

// Response is one member's declaration for a month: the set of event IDs
// they cannot serve. Resubmission overwrites the previous document.
type Response struct {
	MemberID            string
	UnavailableEventIDs []string
	SubmittedAt         time.Time
}

// MemberSummary is the per-member line of the aggregation.
type MemberSummary struct {
	MemberID  string
	Responded bool
	// UnavailableEventIDs holds only event IDs that still resolve to live
	// events. Stale references are dropped, not treated as errors.
	UnavailableEventIDs []string
}

// Aggregate answers availability questions for the solver and for summary
// views. Event references that no longer resolve are skipped.
type Aggregate struct {
	byEvent  map[string][]string // eventID -> unavailable member IDs
	byMember map[string][]string // memberID -> unavailable event IDs (live only)
	replied  map[string]bool
	stale    int
}

// Build constructs an Aggregate from the month's responses. liveEventIDs is
// the set of event IDs that currently exist; responses may reference events
// deleted after submission, and those references are silently dropped.
func Build(responses []Response, liveEventIDs []string) *Aggregate {
	live := make(map[string]bool, len(liveEventIDs))
	for _, id := range liveEventIDs {
		live[id] = true
	}

	agg := &Aggregate{
		byEvent:  make(map[string][]string),
		byMember: make(map[string][]string),
		replied:  make(map[string]bool),
	}

	for _, resp := range responses {
		agg.replied[resp.MemberID] = true
		for _, eventID := range resp.UnavailableEventIDs {
			if !live[eventID] {
				agg.stale++
				continue
			}
			agg.byEvent[eventID] = append(agg.byEvent[eventID], resp.MemberID)
			agg.byMember[resp.MemberID] = append(agg.byMember[resp.MemberID], eventID)
		}
	}

	for _, members := range agg.byEvent {
		sort.Strings(members)
	}
	for _, events := range agg.byMember {
		sort.Strings(events)
	}

	return agg
}

// UnavailableFor returns the member IDs that declared unavailability for the
// given event, sorted for stable output.
func (a *Aggregate) UnavailableFor(eventID string) []string {
	return a.byEvent[eventID]
}

// UnavailableEvents returns the live event IDs the member declared
// unavailability for.
func (a *Aggregate) UnavailableEvents(memberID string) []string {
	return a.byMember[memberID]
}

// HasResponded reports whether the member submitted a response at all.
func (a *Aggregate) HasResponded(memberID string) bool {
	return a.replied[memberID]
}

// StaleReferences returns how many declared event IDs no longer resolved to
// a live event. Useful for summary views and logging.
func (a *Aggregate) StaleReferences() int {
	return a.stale
}

// UnavailableSets returns the full memberID -> event-ID-set mapping in the
// shape the solver consumes.
func (a *Aggregate) UnavailableSets() map[string]map[string]bool {
	sets := make(map[string]map[string]bool, len(a.byMember))
	for memberID, events := range a.byMember {
		set := make(map[string]bool, len(events))
		for _, id := range events {
			set[id] = true
		}
		sets[memberID] = set
	}
	return sets
}

// Summarize produces one line per member ID, preserving the order of
// memberIDs, with responded/non-responding kept distinct.
func (a *Aggregate) Summarize(memberIDs []string) []MemberSummary {
	summaries := make([]MemberSummary, 0, len(memberIDs))
	for _, id := range memberIDs {
		summaries = append(summaries, MemberSummary{
			MemberID:            id,
			Responded:           a.replied[id],
			UnavailableEventIDs: a.byMember[id],
		})
	}
	return summaries
}
