package models

import "strings"

// ResultKind describes how a game was decided.
type ResultKind string

const (
	ResultRegulation ResultKind = "REG"
	ResultOvertime   ResultKind = "OT"
	ResultShootout   ResultKind = "SO"
)

// Round names used by the game store for the group stage.
const (
	RoundPreliminary = "Preliminary Round"
	RoundGroupStage  = "Group Stage"
	RoundRobin       = "Round Robin"
)

// Playoff round names written by the schedule generator.
const (
	RoundQuarterfinals = "Quarterfinals"
	RoundSemifinals    = "Semifinals"
	RoundBronzeMedal   = "Bronze Medal Game"
	RoundGoldMedal     = "Gold Medal Game"
)

// IsPreliminaryRound reports whether a round name belongs to the group
// stage. Case and surrounding space are ignored.
func IsPreliminaryRound(round string) bool {
	round = strings.TrimSpace(round)
	for _, name := range []string{RoundPreliminary, RoundGroupStage, RoundRobin} {
		if strings.EqualFold(round, name) {
			return true
		}
	}
	return false
}

type Game struct {
	ID           int        `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	Round        string     `json:"round" db:"round"`
	Group        *string    `json:"group,omitempty" db:"group_name"`
	GameNumber   *int       `json:"game_number,omitempty" db:"game_number"`
	Team1Code    string     `json:"team1_code" db:"team1_code"`
	Team2Code    string     `json:"team2_code" db:"team2_code"`
	Team1Score   *int       `json:"team1_score,omitempty" db:"team1_score"`
	Team2Score   *int       `json:"team2_score,omitempty" db:"team2_score"`
	ResultType   ResultKind `json:"result_type,omitempty" db:"result_type"`
	Team1Points  int        `json:"team1_points" db:"team1_points"`
	Team2Points  int        `json:"team2_points" db:"team2_points"`
}

// HasScore reports whether both scores have been entered.
func (g *Game) HasScore() bool {
	return g.Team1Score != nil && g.Team2Score != nil
}

// GameDisplay is a game whose team refs have been run through the resolver.
// Team1Code/Team2Code keep the stored refs, the display fields carry the
// resolved codes (or the placeholder when it could not be resolved yet).
type GameDisplay struct {
	Game
	Team1Display string `json:"team1_display"`
	Team2Display string `json:"team2_display"`
}
