package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivo225/fplhelper-sub000/internal/fpl"
)

func intPtr(v int) *int { return &v }

func TestBuildFixtureWindow(t *testing.T) {
	fixtures := []fpl.Fixture{
		{ID: 1, Event: intPtr(3), TeamH: 1, TeamA: 2, TeamHDifficulty: 2, TeamADifficulty: 4},
		{ID: 2, Event: intPtr(5), TeamH: 3, TeamA: 1, TeamHDifficulty: 3, TeamADifficulty: 5},
		{ID: 3, Event: intPtr(4), TeamH: 1, TeamA: 4, TeamHDifficulty: 1, TeamADifficulty: 3},
		{ID: 4, Event: nil, TeamH: 1, TeamA: 5},                // unscheduled
		{ID: 5, Event: intPtr(2), TeamH: 1, TeamA: 6},          // past
		{ID: 6, Event: intPtr(9), TeamH: 1, TeamA: 7},          // beyond horizon
		{ID: 7, Event: intPtr(4), TeamH: 8, TeamA: 9},          // other teams
	}

	window := BuildFixtureWindow(1, fixtures, 3, 4)

	assert.Len(t, window, 3)
	assert.Equal(t, []FixtureEntry{
		{Opponent: 2, Difficulty: 2, IsHome: true, Event: 3},
		{Opponent: 4, Difficulty: 1, IsHome: true, Event: 4},
		{Opponent: 3, Difficulty: 5, IsHome: false, Event: 5},
	}, window)
}

func TestBuildFixtureWindowBound(t *testing.T) {
	fixtures := make([]fpl.Fixture, 0, 38)
	for gw := 1; gw <= 38; gw++ {
		fixtures = append(fixtures, fpl.Fixture{
			ID: gw, Event: intPtr(gw), TeamH: 1, TeamA: 2,
			TeamHDifficulty: 3, TeamADifficulty: 3,
		})
	}

	const currentGW, horizon = 10, 4
	window := BuildFixtureWindow(1, fixtures, currentGW, horizon)

	assert.Len(t, window, horizon+1)
	for _, f := range window {
		assert.GreaterOrEqual(t, f.Event, currentGW)
		assert.LessOrEqual(t, f.Event, currentGW+horizon)
	}
}

func TestBuildFixtureWindowAwayDifficulty(t *testing.T) {
	fixtures := []fpl.Fixture{
		{ID: 1, Event: intPtr(1), TeamH: 2, TeamA: 1, TeamHDifficulty: 5, TeamADifficulty: 2},
	}

	window := BuildFixtureWindow(1, fixtures, 1, 3)

	assert.Len(t, window, 1)
	assert.False(t, window[0].IsHome)
	assert.Equal(t, 2, window[0].Difficulty, "away side must use team_a_difficulty")
	assert.Equal(t, 2, window[0].Opponent)
}

func TestBuildFixtureWindowStableOrderOnSameGameweek(t *testing.T) {
	// Double gameweek: two fixtures in the same event keep input order.
	fixtures := []fpl.Fixture{
		{ID: 1, Event: intPtr(7), TeamH: 1, TeamA: 2, TeamHDifficulty: 4},
		{ID: 2, Event: intPtr(7), TeamH: 1, TeamA: 3, TeamHDifficulty: 1},
	}

	window := BuildFixtureWindow(1, fixtures, 7, 2)

	assert.Len(t, window, 2)
	assert.Equal(t, 2, window[0].Opponent)
	assert.Equal(t, 3, window[1].Opponent)
}

func TestBuildFixtureWindowEmpty(t *testing.T) {
	assert.Empty(t, BuildFixtureWindow(1, nil, 1, 4))
	assert.Empty(t, BuildFixtureWindow(1, []fpl.Fixture{
		{ID: 1, Event: nil, TeamH: 1, TeamA: 2},
	}, 1, 4))
}
