package shortlist

import "github.com/riskibarqy/fpl-weekly/internal/domain/player"

// Row is the uniform shortlist schema shared by both ranking strategies.
// Pointer fields stay nil when the source dataset has no value, so both
// outputs serialize with identical columns.
type Row struct {
	PlayerID          int64
	WebName           string
	Team              string
	TeamShort         string
	Position          string
	BlendScoreZ       *float64
	FormScoreZ        *float64
	FixtureScoreZ     *float64
	NowCostM          float64
	SelectedByPercent *float64
	Form              float64
	PointsPerGame     float64
	LastGWPoints      *int
	PriceChangeGW     *float64
	PriceChangeSeason *float64
	OwnershipLabel    string
	Availability      string
	ShortlistRank     int
	IsBestPick        bool
	DataTimestamp     string
}

// Columns is the fixed output column order for both shortlist tables.
func Columns() []string {
	return []string{
		"player_id", "web_name", "team", "team_short", "position",
		"blend_score_z", "form_score_z", "fixture_score_z",
		"now_cost_m", "selected_by_percent", "form", "points_per_game",
		"last_gw_points", "price_change_gw", "price_change_season", "ownership_label",
		"availability", "shortlist_rank", "is_best_pick", "data_timestamp",
	}
}

var positionPriority = map[string]int{
	player.PositionGoalkeeper: 0,
	player.PositionDefender:   1,
	player.PositionMidfielder: 2,
	player.PositionForward:    3,
}

// PositionPriority returns the fixed display order GK, DEF, MID, FWD.
// Unknown positions sort last.
func PositionPriority(position string) int {
	if p, ok := positionPriority[position]; ok {
		return p
	}
	return len(positionPriority)
}
