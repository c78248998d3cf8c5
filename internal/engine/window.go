package engine

import (
	"sort"

	"github.com/ivo225/fplhelper-sub000/internal/fpl"
)

// BuildFixtureWindow groups the flat fixture list into the ordered window of
// upcoming matches for one team: fixtures with a resolved gameweek inside
// [currentGW, currentGW+horizon], ascending by gameweek. Ties keep the
// original fixture order.
func BuildFixtureWindow(teamID int, fixtures []fpl.Fixture, currentGW, horizon int) []FixtureEntry {
	window := make([]FixtureEntry, 0, horizon+1)

	for _, f := range fixtures {
		if f.Event == nil {
			continue
		}
		event := *f.Event
		if event < currentGW || event > currentGW+horizon {
			continue
		}

		switch teamID {
		case f.TeamH:
			window = append(window, FixtureEntry{
				Opponent:   f.TeamA,
				Difficulty: f.TeamHDifficulty,
				IsHome:     true,
				Event:      event,
			})
		case f.TeamA:
			window = append(window, FixtureEntry{
				Opponent:   f.TeamH,
				Difficulty: f.TeamADifficulty,
				IsHome:     false,
				Event:      event,
			})
		}
	}

	sort.SliceStable(window, func(i, j int) bool {
		return window[i].Event < window[j].Event
	})

	return window
}
