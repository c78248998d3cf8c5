package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivo225/fplhelper-sub000/internal/fpl"
)

func TestSimilarityIdenticalForwards(t *testing.T) {
	stats := fpl.Element{
		GoalsScored: 10,
		Assists:     5,
		Bonus:       8,
		Bps:         300,
		ICTIndex:    "150.0",
		Minutes:     1800,
		CleanSheets: 2,
	}

	assert.Equal(t, 1.0, Similarity(stats, stats, Forward))
}

func TestSimilarityBounds(t *testing.T) {
	a := fpl.Element{GoalsScored: 20, Assists: 10, Bonus: 30, Bps: 900, ICTIndex: "400", Minutes: 3000, CleanSheets: 15}
	b := fpl.Element{} // all zero

	for _, pos := range []Position{Goalkeeper, Defender, Midfielder, Forward} {
		got := Similarity(a, b, pos)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestSimilarityPositionWeighting(t *testing.T) {
	// a and b agree on everything except clean sheets; the clean-sheet gap
	// must hurt keepers (weight 3) more than forwards (weight 1).
	a := fpl.Element{GoalsScored: 2, Assists: 2, Bonus: 5, Bps: 400, ICTIndex: "100", Minutes: 2000, CleanSheets: 12}
	b := fpl.Element{GoalsScored: 2, Assists: 2, Bonus: 5, Bps: 400, ICTIndex: "100", Minutes: 2000, CleanSheets: 0}

	assert.Less(t, Similarity(a, b, Goalkeeper), Similarity(a, b, Forward))
	assert.Less(t, Similarity(a, b, Defender), Similarity(a, b, Forward))
}

func TestSimilarityGoalWeighting(t *testing.T) {
	// Same gap in goals, measured across positions: forwards weight goals
	// 3x, midfielders 2x, defenders 1x.
	a := fpl.Element{GoalsScored: 15, Bps: 500, Minutes: 2500}
	b := fpl.Element{GoalsScored: 3, Bps: 500, Minutes: 2500}

	forward := Similarity(a, b, Forward)
	midfielder := Similarity(a, b, Midfielder)
	defender := Similarity(a, b, Defender)

	assert.Less(t, forward, midfielder)
	assert.Less(t, midfielder, defender)
}

func TestSimilaritySymmetric(t *testing.T) {
	a := fpl.Element{GoalsScored: 7, Assists: 3, Bonus: 12, Bps: 420, ICTIndex: "88.3", Minutes: 1500, CleanSheets: 4}
	b := fpl.Element{GoalsScored: 2, Assists: 9, Bonus: 4, Bps: 377, ICTIndex: "70.1", Minutes: 2100, CleanSheets: 7}

	assert.InDelta(t, Similarity(a, b, Midfielder), Similarity(b, a, Midfielder), 1e-12)
}
