package roster

import "sort"

// Rand is the injectable randomness source behind the tie-break. A
// *math/rand.Rand satisfies it.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
}

// rankCandidates orders candidates by ascending current-month count, so
// members with zero duties come first. Candidates with equal counts are
// shuffled uniformly before the stable sort, which makes the shuffle order
// the effective tie-break within each count bucket.
func rankCandidates(pool []*Candidate, rng Rand) []*Candidate {
	ranked := append([]*Candidate(nil), pool...)
	rng.Shuffle(len(ranked), func(i, j int) {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count < ranked[j].Count
	})
	return ranked
}

// applyExperienceGuard avoids filling a multi-server event entirely with
// members of the newest start-year cohort when an experienced alternate is
// eligible. It is a tie-break heuristic, not a hard constraint: only
// alternates with the same current count as the displaced pick are
// considered, so the swap never skews the fairness histogram. With only
// novices eligible the picks stand as ranked.
func (s *State) applyExperienceGuard(picks, ranked []*Candidate) []*Candidate {
	if len(picks) < 2 {
		return picks
	}
	for _, cand := range picks {
		if !s.isNovice(cand) {
			return picks
		}
	}
	last := picks[len(picks)-1]
	for _, cand := range ranked[len(picks):] {
		if cand.Count != last.Count {
			break
		}
		if !s.isNovice(cand) {
			picks[len(picks)-1] = cand
			return picks
		}
	}
	return picks
}

// selectHeadServer picks the most senior assignee: earliest serving-since
// year wins, names break ties, members with an unknown year rank last.
func selectHeadServer(picks []*Candidate) string {
	var head *Candidate
	for _, cand := range picks {
		if head == nil || moreSenior(cand, head) {
			head = cand
		}
	}
	if head == nil {
		return ""
	}
	return head.ID
}

func moreSenior(a, b *Candidate) bool {
	ay, by := seniorityYear(a), seniorityYear(b)
	if ay != by {
		return ay < by
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// seniorityYear treats a missing serving-since year as the lowest possible
// seniority rather than an error.
func seniorityYear(c *Candidate) int {
	if c.ServingSince <= 0 {
		return int(^uint(0) >> 1)
	}
	return c.ServingSince
}
