package engine

import (
	"math"

	"github.com/ivo225/fplhelper-sub000/internal/fpl"
)

// Similarity is a normalized, position-weighted closeness measure between
// two players' season stats, in [0,1]. Each metric contributes
// (1 - |a-b|/max(a,b,1)) * weight; the result is the weighted mean. The
// weight table is position-specific: clean sheets matter most for keepers
// and defenders, goal involvement for midfielders, goals for forwards.
func Similarity(a, b fpl.Element, position Position) float64 {
	type metric struct {
		name string
		a, b float64
	}

	metrics := []metric{
		{"goals", float64(a.GoalsScored), float64(b.GoalsScored)},
		{"assists", float64(a.Assists), float64(b.Assists)},
		{"bonus", float64(a.Bonus), float64(b.Bonus)},
		{"bps", float64(a.Bps), float64(b.Bps)},
		{"ict_index", ParseFloatOrZero(a.ICTIndex), ParseFloatOrZero(b.ICTIndex)},
		{"minutes", float64(a.Minutes), float64(b.Minutes)},
		{"clean_sheets", float64(a.CleanSheets), float64(b.CleanSheets)},
	}

	total := 0.0
	denominator := 0.0
	for _, m := range metrics {
		weight := metricWeight(position, m.name)
		scale := math.Max(math.Max(m.a, m.b), 1)
		total += (1 - math.Abs(m.a-m.b)/scale) * weight
		denominator += weight
	}

	if denominator == 0 {
		return 0
	}
	return total / denominator
}

func metricWeight(position Position, name string) float64 {
	switch position {
	case Goalkeeper:
		if name == "clean_sheets" {
			return 3
		}
	case Defender:
		if name == "clean_sheets" {
			return 2
		}
	case Midfielder:
		if name == "goals" || name == "assists" {
			return 2
		}
	case Forward:
		if name == "goals" {
			return 3
		}
	}
	return 1
}
