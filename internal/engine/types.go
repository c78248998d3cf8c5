// Package engine is the transfer-recommendation core: pure computation over
// in-memory snapshots of players, fixtures and rosters. It performs no I/O
// and holds no state between calls; concurrent use is safe.
package engine

import (
	"time"

	"github.com/ivo225/fplhelper-sub000/internal/fpl"
)

// Position is the FPL element type.
type Position int

const (
	Goalkeeper Position = 1
	Defender   Position = 2
	Midfielder Position = 3
	Forward    Position = 4
)

func (p Position) String() string {
	switch p {
	case Goalkeeper:
		return "GK"
	case Defender:
		return "DEF"
	case Midfielder:
		return "MID"
	case Forward:
		return "FWD"
	}
	return "UNK"
}

// PositionTargets is the desired squad composition: a full FPL squad of 15.
var PositionTargets = map[Position]int{
	Goalkeeper: 2,
	Defender:   5,
	Midfielder: 5,
	Forward:    3,
}

// StatusAvailable is the fully-available player status sentinel.
const StatusAvailable = "a"

// FixtureEntry is one upcoming match in a team's fixture window.
type FixtureEntry struct {
	Opponent   int  `json:"opponent"`
	Difficulty int  `json:"difficulty"`
	IsHome     bool `json:"is_home"`
	Event      int  `json:"event"`
}

// Suggestion is one ranked buy/sell/captain/differential entry. Buy entries
// carry the blended combined score plus its raw components; sell entries
// carry only the fixture score.
type Suggestion struct {
	PlayerID             int       `json:"player_id"`
	Name                 string    `json:"name"`
	Team                 int       `json:"team"`
	Position             Position  `json:"position"`
	Kind                 string    `json:"kind"`
	Price                int       `json:"price"`
	Form                 string    `json:"form"`
	Reason               string    `json:"reason,omitempty"`
	Confidence           float64   `json:"confidence_score"`
	FixtureScore         float64   `json:"fixture_score"`
	PositionFixtureBonus float64   `json:"position_fixture_bonus,omitempty"`
	CombinedScore        float64   `json:"combined_score,omitempty"`
	PositionPriority     bool      `json:"position_priority,omitempty"`
	Similarity           float64   `json:"similarity,omitempty"`
	RationaleTags        []string  `json:"rationale_tags,omitempty"`
	Rank                 int       `json:"rank,omitempty"`
	PredictedPoints      float64   `json:"predicted_points,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

const (
	KindBuy          = "buy"
	KindSell         = "sell"
	KindCaptain      = "captain"
	KindDifferential = "differential"
)

// RosterSlot is one of the fifteen squad slots in a user's roster.
type RosterSlot struct {
	Player        fpl.Element `json:"player"`
	IsCaptain     bool        `json:"is_captain"`
	IsViceCaptain bool        `json:"is_vice_captain"`
}

// Roster is the personalization input: a user's squad for a gameweek.
type Roster struct {
	Gameweek   int          `json:"gameweek"`
	TotalValue int          `json:"total_value"`
	Slots      []RosterSlot `json:"slots"`
}

// RosterAnalysis is the output of AnalyzeRoster.
type RosterAnalysis struct {
	PriorityPositions map[Position]bool
	PlayerIDs         map[int]bool
}

// PositionOf maps an element type to a Position.
func PositionOf(elementType int) Position {
	return Position(elementType)
}
