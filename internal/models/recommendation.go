package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/ivo225/fplhelper-sub000/internal/engine"
)

// Recommendation is a persisted suggestion row. The player reference column
// is canonically named player_id; the legacy element_id name is handled by
// a rename step in cmd/migrate, never probed for at query time.
type Recommendation struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	Gameweek             int            `gorm:"not null;index:idx_recommendations_gw_kind" json:"gameweek"`
	Kind                 string         `gorm:"size:20;not null;index:idx_recommendations_gw_kind" json:"kind"`
	PlayerID             int            `gorm:"not null;index" json:"player_id"`
	PlayerName           string         `gorm:"size:100" json:"player_name"`
	Team                 int            `json:"team"`
	Position             int            `json:"position"`
	Price                int            `json:"price"`
	Form                 string         `gorm:"size:10" json:"form"`
	Reason               string         `gorm:"type:text" json:"reason"`
	Confidence           float64        `json:"confidence_score"` // canonical 0-1
	Rank                 int            `json:"rank"`
	PredictedPoints      float64        `json:"predicted_points"`
	FixtureScore         float64        `json:"fixture_score"`
	PositionFixtureBonus float64        `json:"position_fixture_bonus"`
	CombinedScore        float64        `json:"combined_score"`
	RationaleTags        datatypes.JSON `json:"rationale_tags"`
	CreatedAt            time.Time      `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Recommendation) TableName() string {
	return "recommendations"
}

// NormalizeConfidence maps legacy 0-100 confidence values onto the
// canonical 0-1 scale. Values already in [0,1] pass through.
func NormalizeConfidence(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// ToSuggestion converts a stored row into an engine suggestion.
func (r *Recommendation) ToSuggestion() engine.Suggestion {
	var tags []string
	if len(r.RationaleTags) > 0 {
		_ = json.Unmarshal(r.RationaleTags, &tags)
	}
	return engine.Suggestion{
		PlayerID:             r.PlayerID,
		Name:                 r.PlayerName,
		Team:                 r.Team,
		Position:             engine.PositionOf(r.Position),
		Kind:                 r.Kind,
		Price:                r.Price,
		Form:                 r.Form,
		Reason:               r.Reason,
		Confidence:           NormalizeConfidence(r.Confidence),
		FixtureScore:         r.FixtureScore,
		PositionFixtureBonus: r.PositionFixtureBonus,
		CombinedScore:        r.CombinedScore,
		Rank:                 r.Rank,
		PredictedPoints:      r.PredictedPoints,
		RationaleTags:        tags,
		CreatedAt:            r.CreatedAt,
	}
}

// FromSuggestion builds a storable row from an engine suggestion.
func FromSuggestion(gameweek int, s engine.Suggestion) Recommendation {
	var tags datatypes.JSON
	if len(s.RationaleTags) > 0 {
		if data, err := json.Marshal(s.RationaleTags); err == nil {
			tags = datatypes.JSON(data)
		}
	}
	return Recommendation{
		Gameweek:             gameweek,
		Kind:                 s.Kind,
		PlayerID:             s.PlayerID,
		PlayerName:           s.Name,
		Team:                 s.Team,
		Position:             int(s.Position),
		Price:                s.Price,
		Form:                 s.Form,
		Reason:               s.Reason,
		Confidence:           NormalizeConfidence(s.Confidence),
		Rank:                 s.Rank,
		PredictedPoints:      s.PredictedPoints,
		FixtureScore:         s.FixtureScore,
		PositionFixtureBonus: s.PositionFixtureBonus,
		CombinedScore:        s.CombinedScore,
		RationaleTags:        tags,
		CreatedAt:            s.CreatedAt,
	}
}
