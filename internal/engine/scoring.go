package engine

import (
	"strconv"
	"strings"

	"github.com/ivo225/fplhelper-sub000/internal/fpl"
)

// Each position score is a weighted sum over the window with linearly
// decaying weight per fixture index (1.0, 0.9, 0.8, ...), divided by the
// window length. An empty window scores a neutral 0.

const (
	midfielderHomeBonus = 0.5
	forwardHomeBonus    = 0.7
)

func fixtureWeight(k int) float64 {
	w := 1.0 - 0.1*float64(k)
	if w < 0 {
		return 0
	}
	return w
}

// CleanSheetPotential scores keepers and defenders: easier opponents mean
// better clean-sheet odds.
func CleanSheetPotential(window []FixtureEntry) float64 {
	if len(window) == 0 {
		return 0
	}
	total := 0.0
	for k, f := range window {
		total += float64(6-f.Difficulty) * fixtureWeight(k)
	}
	return total / float64(len(window))
}

// MidfieldPotential scores midfielders, with a small home-advantage bonus.
func MidfieldPotential(window []FixtureEntry) float64 {
	return attackingPotential(window, midfielderHomeBonus)
}

// ForwardPotential scores forwards, weighted more toward home advantage.
func ForwardPotential(window []FixtureEntry) float64 {
	return attackingPotential(window, forwardHomeBonus)
}

func attackingPotential(window []FixtureEntry, homeBonus float64) float64 {
	if len(window) == 0 {
		return 0
	}
	total := 0.0
	for k, f := range window {
		term := float64(6 - f.Difficulty)
		if f.IsHome {
			term += homeBonus
		}
		total += term * fixtureWeight(k)
	}
	return total / float64(len(window))
}

// FixtureScore is the generic fixture score fed into the blended candidate
// score. Higher means harder fixtures; the candidate scorer inverts it as
// (6 - score). Keep the inversion at the call site, not here.
func FixtureScore(window []FixtureEntry) float64 {
	if len(window) == 0 {
		return 0
	}
	total := 0.0
	for k, f := range window {
		total += float64(f.Difficulty) * fixtureWeight(k)
	}
	return total / float64(len(window))
}

// PositionBonus dispatches to the position scoring function for a candidate.
// Keepers and defenders both use clean-sheet potential.
func PositionBonus(position Position, window []FixtureEntry) float64 {
	switch position {
	case Goalkeeper, Defender:
		return CleanSheetPotential(window)
	case Midfielder:
		return MidfieldPotential(window)
	case Forward:
		return ForwardPotential(window)
	}
	return 0
}

// ScoreCandidate blends current form, fixture outlook and the position
// bonus into the combined score used to rank buy candidates.
func ScoreCandidate(candidate fpl.Element, fixtureScore, positionBonus float64) float64 {
	form := ParseFloatOrZero(candidate.Form)
	return 0.3*form + 0.4*(6-fixtureScore) + 0.3*positionBonus
}

// ParseFloatOrZero parses a decimal-string stat, treating absent or
// malformed values as 0. Stats like form and ownership arrive as strings
// from the upstream API and are occasionally empty or garbage.
func ParseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
