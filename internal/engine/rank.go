package engine

import "sort"

// DedupeLatest collapses repeated suggestions for the same player, keeping
// the most recently created one. Input order is otherwise preserved, so the
// result is stable and the operation is idempotent.
func DedupeLatest(suggestions []Suggestion) []Suggestion {
	latest := make(map[int]Suggestion, len(suggestions))
	order := make([]int, 0, len(suggestions))

	for _, s := range suggestions {
		existing, seen := latest[s.PlayerID]
		if !seen {
			order = append(order, s.PlayerID)
			latest[s.PlayerID] = s
			continue
		}
		if s.CreatedAt.After(existing.CreatedAt) {
			latest[s.PlayerID] = s
		}
	}

	out := make([]Suggestion, 0, len(order))
	for _, id := range order {
		out = append(out, latest[id])
	}
	return out
}

// RankByConfidence orders suggestions descending by stored confidence.
// Used for un-personalized buy/sell lists read from the store.
func RankByConfidence(suggestions []Suggestion) []Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions
}

// RankByCombinedScore orders suggestions descending by combined score.
// Used for personalized buy lists.
func RankByCombinedScore(suggestions []Suggestion) []Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].CombinedScore > suggestions[j].CombinedScore
	})
	return suggestions
}

// RankByRank orders suggestions ascending by rank. Used for captain and
// differential lists.
func RankByRank(suggestions []Suggestion) []Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Rank < suggestions[j].Rank
	})
	return suggestions
}
