package models

// TeamStandingRow is one line of a group table. It is derived from games on
// every call and never persisted.
type TeamStandingRow struct {
	TeamCode     string `json:"team_code"`
	Group        string `json:"group"`
	GamesPlayed  int    `json:"games_played"`
	Wins         int    `json:"wins"`
	OTWins       int    `json:"ot_wins"`
	SOWins       int    `json:"so_wins"`
	Losses       int    `json:"losses"`
	OTLosses     int    `json:"ot_losses"`
	SOLosses     int    `json:"so_losses"`
	Ties         int    `json:"ties"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
	RankInGroup  int    `json:"rank_in_group"`
}

func (r TeamStandingRow) GoalDiff() int {
	return r.GoalsFor - r.GoalsAgainst
}
