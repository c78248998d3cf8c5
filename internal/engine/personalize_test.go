package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivo225/fplhelper-sub000/internal/fpl"
)

func TestPersonalizeRosterExclusivity(t *testing.T) {
	roster := fullSquad()
	analysis := AnalyzeRoster(roster)
	ownedID := roster.Slots[0].Player.ID

	buy := []Suggestion{
		{PlayerID: ownedID, Position: Goalkeeper, CombinedScore: 5},
		{PlayerID: 100, Position: Midfielder, CombinedScore: 4},
	}
	sell := []Suggestion{
		{PlayerID: ownedID, Position: Goalkeeper},
		{PlayerID: 200, Position: Forward},
	}

	result := Personalize(buy, sell, analysis, roster, nil)

	for _, s := range result.Buy {
		assert.False(t, analysis.PlayerIDs[s.PlayerID], "buy list must not contain owned players")
	}
	for _, s := range result.Sell {
		assert.True(t, analysis.PlayerIDs[s.PlayerID], "sell list must only contain owned players")
	}
	require.Len(t, result.Sell, 1)
	assert.Equal(t, ownedID, result.Sell[0].PlayerID)
}

func TestPersonalizeBoostExactness(t *testing.T) {
	roster := fullSquad()
	// Remove a defender so DEF becomes a priority position.
	for i, s := range roster.Slots {
		if PositionOf(s.Player.ElementType) == Defender {
			roster.Slots = append(roster.Slots[:i], roster.Slots[i+1:]...)
			break
		}
	}
	analysis := AnalyzeRoster(roster)

	buy := []Suggestion{
		{PlayerID: 100, Position: Defender, CombinedScore: 4.2},
		{PlayerID: 101, Position: Forward, CombinedScore: 4.2},
	}

	result := Personalize(buy, nil, analysis, roster, nil)

	require.Len(t, result.Buy, 2)
	for _, s := range result.Buy {
		switch s.PlayerID {
		case 100:
			assert.InDelta(t, 4.2*1.5, s.CombinedScore, 1e-9)
			assert.True(t, s.PositionPriority)
		case 101:
			assert.InDelta(t, 4.2, s.CombinedScore, 1e-9)
			assert.False(t, s.PositionPriority)
		}
	}
}

// The boost, not raw form, must decide final order when a weak position is
// in play: a defender covering the roster gap outranks a higher-form
// forward.
func TestPersonalizeBoostDecidesOrder(t *testing.T) {
	roster := &Roster{Gameweek: 10}
	id := 1
	add := func(elementType, count int, status string) {
		for i := 0; i < count; i++ {
			roster.Slots = append(roster.Slots, slot(id, elementType, status))
			id++
		}
	}
	add(int(Goalkeeper), 2, "a")
	add(int(Defender), 4, "a") // one short of target
	add(int(Midfielder), 5, "a")
	add(int(Forward), 3, "a")
	// Flag one midfielder as unavailable.
	for i, s := range roster.Slots {
		if PositionOf(s.Player.ElementType) == Midfielder {
			roster.Slots[i].Player.Status = "i"
			break
		}
	}

	analysis := AnalyzeRoster(roster)
	require.True(t, analysis.PriorityPositions[Defender])
	require.True(t, analysis.PriorityPositions[Midfielder])
	require.False(t, analysis.PriorityPositions[Forward])

	window := []FixtureEntry{
		{Difficulty: 2, IsHome: true},
		{Difficulty: 2, IsHome: false},
		{Difficulty: 3, IsHome: true},
	}
	fixtureScore := FixtureScore(window)

	defender := fpl.Element{ID: 500, ElementType: int(Defender), Form: "7.0"}
	forward := fpl.Element{ID: 501, ElementType: int(Forward), Form: "9.0"}

	defenderScore := ScoreCandidate(defender, fixtureScore, CleanSheetPotential(window))
	forwardScore := ScoreCandidate(forward, fixtureScore, ForwardPotential(window))
	require.Greater(t, forwardScore, defenderScore, "raw ranking favors the forward")

	buy := []Suggestion{
		{PlayerID: 500, Position: Defender, CombinedScore: defenderScore, FixtureScore: fixtureScore},
		{PlayerID: 501, Position: Forward, CombinedScore: forwardScore, FixtureScore: fixtureScore},
	}

	result := Personalize(buy, nil, analysis, roster, nil)

	require.Len(t, result.Buy, 2)
	assert.Equal(t, 500, result.Buy[0].PlayerID, "boosted defender must outrank the forward")
	assert.InDelta(t, defenderScore*1.5, result.Buy[0].CombinedScore, 1e-9)
	assert.InDelta(t, forwardScore, result.Buy[1].CombinedScore, 1e-9)
	assert.False(t, result.Buy[1].PositionPriority)
}

func TestPersonalizeReplacementMatching(t *testing.T) {
	roster := fullSquad()
	// Flag one midfielder; give it weak stats so replacements trigger.
	var flaggedID int
	for i, s := range roster.Slots {
		if PositionOf(s.Player.ElementType) == Midfielder {
			roster.Slots[i].Player.Status = "i"
			roster.Slots[i].Player.Form = "2.0"
			roster.Slots[i].Player.WebName = "Flagged Mid"
			flaggedID = s.Player.ID
			break
		}
	}
	analysis := AnalyzeRoster(roster)

	candidate := fpl.Element{
		ID:            900,
		WebName:       "In-form Mid",
		ElementType:   int(Midfielder),
		Status:        "a",
		Form:          "6.5",
		PointsPerGame: "5.1",
		GoalsScored:   8,
		Assists:       6,
		Minutes:       1700,
	}
	elements := map[int]fpl.Element{900: candidate}

	buy := []Suggestion{
		{PlayerID: 900, Position: Midfielder, CombinedScore: 5.0, FixtureScore: 2.5, Form: "6.5"},
	}

	result := Personalize(buy, nil, analysis, roster, elements)

	require.Len(t, result.Buy, 1)
	got := result.Buy[0]
	assert.Equal(t, 900, got.PlayerID)
	assert.NotEmpty(t, got.RationaleTags)
	assert.Contains(t, got.RationaleTags, "better current form")
	assert.Contains(t, got.RationaleTags, "easier upcoming fixtures")
	_ = flaggedID
}

func TestPersonalizeMergeDedupesReplacements(t *testing.T) {
	roster := fullSquad()
	// Weak-form midfielder invites replacements.
	for i, s := range roster.Slots {
		if PositionOf(s.Player.ElementType) == Midfielder {
			roster.Slots[i].Player.Form = "1.0"
			break
		}
	}
	analysis := AnalyzeRoster(roster)

	buy := []Suggestion{
		{PlayerID: 900, Position: Midfielder, CombinedScore: 5.0, FixtureScore: 2.0},
		{PlayerID: 901, Position: Forward, CombinedScore: 3.0, FixtureScore: 3.5},
	}

	result := Personalize(buy, nil, analysis, roster, nil)

	// Player 900 appears exactly once even though it also matched as a
	// replacement, and the surviving entry carries the annotations.
	require.Len(t, result.Buy, 2)
	assert.Equal(t, 900, result.Buy[0].PlayerID)
	assert.NotEmpty(t, result.Buy[0].RationaleTags)
	assert.NotEmpty(t, result.Buy[0].Reason)
	assert.Empty(t, result.Buy[1].RationaleTags)
}

func TestPersonalizeGenericRationaleFallback(t *testing.T) {
	owner := fpl.Element{Status: "a", Form: "5.0", PointsPerGame: "6.0"}
	cand := fpl.Element{Status: "a", Form: "2.0", PointsPerGame: "3.0"}

	tags := replacementRationale(owner, cand, Suggestion{FixtureScore: 4.0}, 5.0)

	assert.Equal(t, []string{"like-for-like alternative"}, tags)
}
