package engine

// AnalyzeRoster derives the set of positions needing reinforcement and the
// set of owned player ids. A position is a priority when the squad holds
// fewer players there than the target composition, or when any player at
// that position carries a non-available status flag.
func AnalyzeRoster(roster *Roster) RosterAnalysis {
	analysis := RosterAnalysis{
		PriorityPositions: make(map[Position]bool),
		PlayerIDs:         make(map[int]bool),
	}
	if roster == nil {
		return analysis
	}

	counts := make(map[Position]int)
	for _, slot := range roster.Slots {
		pos := PositionOf(slot.Player.ElementType)
		counts[pos]++
		analysis.PlayerIDs[slot.Player.ID] = true

		if slot.Player.Status != "" && slot.Player.Status != StatusAvailable {
			analysis.PriorityPositions[pos] = true
		}
	}

	for pos, target := range PositionTargets {
		if counts[pos] < target {
			analysis.PriorityPositions[pos] = true
		}
	}

	return analysis
}
