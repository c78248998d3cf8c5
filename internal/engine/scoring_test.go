package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivo225/fplhelper-sub000/internal/fpl"
)

func TestEmptyWindowScoresNeutrally(t *testing.T) {
	var window []FixtureEntry

	assert.Zero(t, CleanSheetPotential(window))
	assert.Zero(t, MidfieldPotential(window))
	assert.Zero(t, ForwardPotential(window))
	assert.Zero(t, FixtureScore(window))
}

func TestCleanSheetPotentialWeights(t *testing.T) {
	window := []FixtureEntry{
		{Difficulty: 2}, // weight 1.0 -> 4.0
		{Difficulty: 2}, // weight 0.9 -> 3.6
		{Difficulty: 3}, // weight 0.8 -> 2.4
	}

	assert.InDelta(t, 10.0/3, CleanSheetPotential(window), 1e-9)
}

func TestFixtureScoreIsDifficultyNotEase(t *testing.T) {
	easy := []FixtureEntry{{Difficulty: 1}, {Difficulty: 1}}
	hard := []FixtureEntry{{Difficulty: 5}, {Difficulty: 5}}

	// Higher means harder; the candidate scorer inverts it.
	assert.Less(t, FixtureScore(easy), FixtureScore(hard))
}

func TestScoreMonotonicInDifficulty(t *testing.T) {
	for difficulty := 5; difficulty > 1; difficulty-- {
		harder := []FixtureEntry{{Difficulty: difficulty}}
		easier := []FixtureEntry{{Difficulty: difficulty - 1}}

		assert.Greater(t, CleanSheetPotential(easier), CleanSheetPotential(harder))
		assert.Greater(t, ForwardPotential(easier), ForwardPotential(harder))
		assert.Greater(t, MidfieldPotential(easier), MidfieldPotential(harder))
	}
}

func TestHomeBonusPerPosition(t *testing.T) {
	home := []FixtureEntry{{Difficulty: 3, IsHome: true}}
	away := []FixtureEntry{{Difficulty: 3, IsHome: false}}

	assert.InDelta(t, 0.5, MidfieldPotential(home)-MidfieldPotential(away), 1e-9)
	assert.InDelta(t, 0.7, ForwardPotential(home)-ForwardPotential(away), 1e-9)
	// Clean-sheet potential ignores venue.
	assert.Equal(t, CleanSheetPotential(home), CleanSheetPotential(away))
}

func TestWeightDecayCapsAtZero(t *testing.T) {
	// Fixtures beyond the 10th contribute nothing.
	window := make([]FixtureEntry, 12)
	for i := range window {
		window[i] = FixtureEntry{Difficulty: 1}
	}

	expected := 0.0
	for k := 0; k < 12; k++ {
		w := 1.0 - 0.1*float64(k)
		if w < 0 {
			w = 0
		}
		expected += 5 * w
	}
	assert.InDelta(t, expected/12, CleanSheetPotential(window), 1e-9)
}

func TestScoreCandidate(t *testing.T) {
	candidate := fpl.Element{Form: "6.0"}

	got := ScoreCandidate(candidate, 2.0, 3.0)

	// 0.3*6 + 0.4*(6-2) + 0.3*3
	assert.InDelta(t, 1.8+1.6+0.9, got, 1e-9)
}

func TestScoreCandidateMalformedForm(t *testing.T) {
	tests := []struct {
		name string
		form string
	}{
		{"empty", ""},
		{"garbage", "n/a"},
		{"whitespace", "  "},
		{"trailing junk", "4.2abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreCandidate(fpl.Element{Form: tt.form}, 2.0, 0)
			assert.InDelta(t, 0.4*(6-2.0), got, 1e-9, "unparseable form must count as 0")
		})
	}
}

func TestParseFloatOrZero(t *testing.T) {
	assert.Equal(t, 0.0, ParseFloatOrZero(""))
	assert.Equal(t, 0.0, ParseFloatOrZero("abc"))
	assert.Equal(t, 7.5, ParseFloatOrZero("7.5"))
	assert.Equal(t, 3.0, ParseFloatOrZero(" 3.0 "))
}

func TestPositionBonusDispatch(t *testing.T) {
	window := []FixtureEntry{{Difficulty: 2, IsHome: true}}

	assert.Equal(t, CleanSheetPotential(window), PositionBonus(Goalkeeper, window))
	assert.Equal(t, CleanSheetPotential(window), PositionBonus(Defender, window))
	assert.Equal(t, MidfieldPotential(window), PositionBonus(Midfielder, window))
	assert.Equal(t, ForwardPotential(window), PositionBonus(Forward, window))
}
