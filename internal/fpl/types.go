package fpl

// Wire types for the public Fantasy Premier League API. Numeric stats that
// the API serves as decimal strings (form, points_per_game, ict_index,
// selected_by_percent) stay strings here; parsing is the engine's concern.

// Element is one player row from bootstrap-static.
type Element struct {
	ID                int    `json:"id"`
	WebName           string `json:"web_name"`
	Team              int    `json:"team"`
	ElementType       int    `json:"element_type"` // 1=GK 2=DEF 3=MID 4=FWD
	NowCost           int    `json:"now_cost"`     // tenths of a million
	Status            string `json:"status"`       // "a" = available
	Form              string `json:"form"`
	PointsPerGame     string `json:"points_per_game"`
	TotalPoints       int    `json:"total_points"`
	SelectedByPercent string `json:"selected_by_percent"`
	Minutes           int    `json:"minutes"`
	GoalsScored       int    `json:"goals_scored"`
	Assists           int    `json:"assists"`
	CleanSheets       int    `json:"clean_sheets"`
	Bonus             int    `json:"bonus"`
	Bps               int    `json:"bps"`
	ICTIndex          string `json:"ict_index"`
}

// Team is one club row from bootstrap-static.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// Event is one gameweek row from bootstrap-static.
type Event struct {
	ID        int  `json:"id"`
	Finished  bool `json:"finished"`
	IsCurrent bool `json:"is_current"`
	IsNext    bool `json:"is_next"`
}

// Bootstrap is the bootstrap-static payload, trimmed to the fields we read.
type Bootstrap struct {
	Events   []Event   `json:"events"`
	Teams    []Team    `json:"teams"`
	Elements []Element `json:"elements"`
}

// Fixture is one scheduled match. Event is nil for unscheduled fixtures.
type Fixture struct {
	ID              int  `json:"id"`
	Event           *int `json:"event"`
	TeamH           int  `json:"team_h"`
	TeamA           int  `json:"team_a"`
	TeamHDifficulty int  `json:"team_h_difficulty"`
	TeamADifficulty int  `json:"team_a_difficulty"`
	TeamHScore      *int `json:"team_h_score"`
	TeamAScore      *int `json:"team_a_score"`
	Finished        bool `json:"finished"`
}

// Pick is one roster slot from the manager picks endpoint.
type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

// ManagerPicks is the /entry/{id}/event/{gw}/picks/ payload.
type ManagerPicks struct {
	EntryHistory struct {
		Event int `json:"event"`
		Value int `json:"value"` // squad value in tenths
	} `json:"entry_history"`
	Picks []Pick `json:"picks"`
}

// CurrentEvent returns the id of the current gameweek, falling back to the
// next event when the API marks no event as current (pre-season).
func (b *Bootstrap) CurrentEvent() int {
	for _, e := range b.Events {
		if e.IsCurrent {
			return e.ID
		}
	}
	for _, e := range b.Events {
		if e.IsNext {
			return e.ID
		}
	}
	return 1
}

// ElementByID returns the element with the given id, or nil.
func (b *Bootstrap) ElementByID(id int) *Element {
	for i := range b.Elements {
		if b.Elements[i].ID == id {
			return &b.Elements[i]
		}
	}
	return nil
}

// TeamShortName returns the short name for a team id, or empty string.
func (b *Bootstrap) TeamShortName(id int) string {
	for _, t := range b.Teams {
		if t.ID == id {
			return t.ShortName
		}
	}
	return ""
}
