package roster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCandidatesOrdersByCount(t *testing.T) {
	pool := []*Candidate{
		{Member: Member{ID: "busy"}, Count: 3},
		{Member: Member{ID: "idle"}, Count: 0},
		{Member: Member{ID: "once"}, Count: 1},
	}

	ranked := rankCandidates(pool, rand.New(rand.NewSource(1)))

	require.Len(t, ranked, 3)
	assert.Equal(t, "idle", ranked[0].ID)
	assert.Equal(t, "once", ranked[1].ID)
	assert.Equal(t, "busy", ranked[2].ID)
}

func TestRankCandidatesTieBreakIsUniform(t *testing.T) {
	// Three tied candidates: over many seeds each should come first at
	// least once. The shuffle is the one documented non-deterministic step.
	firsts := make(map[string]int)
	for seed := int64(0); seed < 60; seed++ {
		pool := []*Candidate{
			{Member: Member{ID: "a"}},
			{Member: Member{ID: "b"}},
			{Member: Member{ID: "c"}},
		}
		ranked := rankCandidates(pool, rand.New(rand.NewSource(seed)))
		firsts[ranked[0].ID]++
	}

	assert.Len(t, firsts, 3, "every tied candidate should win the tie-break sometimes")
}

func TestExperienceGuardSwapsInSeniorWithinTie(t *testing.T) {
	state := &State{noviceYear: 2025}

	novice1 := &Candidate{Member: Member{ID: "n1", ServingSince: 2025}}
	novice2 := &Candidate{Member: Member{ID: "n2", ServingSince: 2025}}
	senior := &Candidate{Member: Member{ID: "s1", ServingSince: 2021}}

	picks := state.applyExperienceGuard(
		[]*Candidate{novice1, novice2},
		[]*Candidate{novice1, novice2, senior},
	)

	require.Len(t, picks, 2)
	assert.Equal(t, "n1", picks[0].ID)
	assert.Equal(t, "s1", picks[1].ID, "all-novice pick should swap in the senior alternate")
}

func TestExperienceGuardNeverSkewsCounts(t *testing.T) {
	state := &State{noviceYear: 2025}

	novice1 := &Candidate{Member: Member{ID: "n1", ServingSince: 2025}}
	novice2 := &Candidate{Member: Member{ID: "n2", ServingSince: 2025}}
	busySenior := &Candidate{Member: Member{ID: "s1", ServingSince: 2021}, Count: 1}

	// The only senior alternate already has a higher count: no swap.
	picks := state.applyExperienceGuard(
		[]*Candidate{novice1, novice2},
		[]*Candidate{novice1, novice2, busySenior},
	)

	assert.Equal(t, []*Candidate{novice1, novice2}, picks)
}

func TestExperienceGuardSkipsSingleSlotAndMixedPicks(t *testing.T) {
	state := &State{noviceYear: 2025}

	novice := &Candidate{Member: Member{ID: "n1", ServingSince: 2025}}
	senior := &Candidate{Member: Member{ID: "s1", ServingSince: 2020}}

	// Single-slot events have no co-assignee to protect.
	picks := state.applyExperienceGuard([]*Candidate{novice}, []*Candidate{novice, senior})
	assert.Equal(t, []*Candidate{novice}, picks)

	// A pick set already containing a senior stays untouched.
	novice2 := &Candidate{Member: Member{ID: "n2", ServingSince: 2025}}
	picks = state.applyExperienceGuard(
		[]*Candidate{senior, novice},
		[]*Candidate{senior, novice, novice2},
	)
	assert.Equal(t, []*Candidate{senior, novice}, picks)
}

func TestSelectHeadServerEarliestYearWins(t *testing.T) {
	picks := []*Candidate{
		{Member: Member{ID: "young", Name: "Young", ServingSince: 2024}},
		{Member: Member{ID: "elder", Name: "Elder", ServingSince: 2018}},
		{Member: Member{ID: "mid", Name: "Mid", ServingSince: 2021}},
	}
	assert.Equal(t, "elder", selectHeadServer(picks))
}

func TestSelectHeadServerTieBrokenByName(t *testing.T) {
	picks := []*Candidate{
		{Member: Member{ID: "m2", Name: "Theresa", ServingSince: 2020}},
		{Member: Member{ID: "m1", Name: "Agnes", ServingSince: 2020}},
	}
	assert.Equal(t, "m1", selectHeadServer(picks))
}

func TestSelectHeadServerUnknownYearRanksLast(t *testing.T) {
	picks := []*Candidate{
		{Member: Member{ID: "unknown", Name: "Aa"}},
		{Member: Member{ID: "known", Name: "Zz", ServingSince: 2025}},
	}
	assert.Equal(t, "known", selectHeadServer(picks))

	// Alone, a member with no recorded year still leads.
	assert.Equal(t, "unknown", selectHeadServer(picks[:1]))
	assert.Equal(t, "", selectHeadServer(nil))
}
