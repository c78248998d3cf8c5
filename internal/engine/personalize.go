package engine

import (
	"fmt"
	"sort"

	"github.com/ivo225/fplhelper-sub000/internal/fpl"
)

const (
	// priorityBoost multiplies the combined score of buy candidates whose
	// position needs reinforcement.
	priorityBoost = 1.5

	// weakFormThreshold marks roster players worth replacing on form alone.
	weakFormThreshold = 4.0

	// easyFixtureScore marks a materially easy fixture run.
	easyFixtureScore = 3.0
)

// PersonalizedSet is the roster-aware output of Personalize.
type PersonalizedSet struct {
	Buy  []Suggestion
	Sell []Suggestion
}

// Personalize filters, boosts and re-ranks the general suggestion lists
// against a user's roster. Sell suggestions must reference owned players;
// buy suggestions must not. Candidates at priority positions get a score
// boost, and replaceable roster players attract same-position alternatives
// annotated with a similarity score and rationale tags. elements is the
// stats lookup for similarity; it must cover both roster and candidate ids.
func Personalize(buy, sell []Suggestion, analysis RosterAnalysis, roster *Roster, elements map[int]fpl.Element) PersonalizedSet {
	result := PersonalizedSet{
		Buy:  make([]Suggestion, 0, len(buy)),
		Sell: make([]Suggestion, 0, len(sell)),
	}

	sellIDs := make(map[int]bool)
	for _, s := range sell {
		if analysis.PlayerIDs[s.PlayerID] {
			result.Sell = append(result.Sell, s)
			sellIDs[s.PlayerID] = true
		}
	}

	for _, s := range buy {
		if analysis.PlayerIDs[s.PlayerID] {
			continue
		}
		if analysis.PriorityPositions[s.Position] {
			s.CombinedScore *= priorityBoost
			s.PositionPriority = true
		}
		result.Buy = append(result.Buy, s)
	}

	replacements := findReplacements(result.Buy, analysis, roster, sellIDs, elements)

	// General candidates first so they win the distinct-by-id pass.
	merged := append(result.Buy, replacements...)
	result.Buy = distinctByPlayerID(merged)

	sort.SliceStable(result.Buy, func(i, j int) bool {
		return result.Buy[i].CombinedScore > result.Buy[j].CombinedScore
	})

	return result
}

// findReplacements scans the roster for players that look replaceable
// (flagged, out of form, or already marked for sale) and pairs each with
// same-position buy candidates offering better scoring or easier fixtures.
// Matches are annotated in place on the buy slice, so the general-list
// entry that survives the distinct pass carries the annotations.
func findReplacements(buy []Suggestion, analysis RosterAnalysis, roster *Roster, sellIDs map[int]bool, elements map[int]fpl.Element) []Suggestion {
	if roster == nil {
		return nil
	}

	var replacements []Suggestion
	for _, slot := range roster.Slots {
		owner := slot.Player
		ownerForm := ParseFloatOrZero(owner.Form)

		flagged := owner.Status != "" && owner.Status != StatusAvailable
		if !flagged && ownerForm >= weakFormThreshold && !sellIDs[owner.ID] {
			continue
		}

		ownerPos := PositionOf(owner.ElementType)
		for i := range buy {
			cand := &buy[i]
			if cand.Position != ownerPos {
				continue
			}
			if cand.CombinedScore <= ownerForm && cand.FixtureScore >= easyFixtureScore {
				continue
			}

			candElement, ok := elements[cand.PlayerID]
			if ok {
				cand.Similarity = Similarity(owner, candElement, ownerPos)
			}
			cand.RationaleTags = replacementRationale(owner, candElement, *cand, ownerForm)
			cand.Reason = fmt.Sprintf("Replacement option for %s", owner.WebName)
			replacements = append(replacements, *cand)
		}
	}

	return replacements
}

// replacementRationale lists whichever advantages actually favor the
// candidate over the roster player, with a generic fallback when none do.
func replacementRationale(owner fpl.Element, cand fpl.Element, suggestion Suggestion, ownerForm float64) []string {
	var tags []string

	if suggestion.FixtureScore < easyFixtureScore {
		tags = append(tags, "easier upcoming fixtures")
	}
	if candForm := ParseFloatOrZero(cand.Form); candForm > ownerForm {
		tags = append(tags, "better current form")
	}
	if owner.Status != StatusAvailable && owner.Status != "" && cand.Status == StatusAvailable {
		tags = append(tags, "available while current pick is flagged")
	}
	if ParseFloatOrZero(cand.PointsPerGame) > ParseFloatOrZero(owner.PointsPerGame) {
		tags = append(tags, "higher points per game")
	}

	if len(tags) == 0 {
		tags = append(tags, "like-for-like alternative")
	}
	return tags
}

// distinctByPlayerID keeps the first occurrence of each player id,
// preserving order.
func distinctByPlayerID(suggestions []Suggestion) []Suggestion {
	seen := make(map[int]bool, len(suggestions))
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if seen[s.PlayerID] {
			continue
		}
		seen[s.PlayerID] = true
		out = append(out, s)
	}
	return out
}
