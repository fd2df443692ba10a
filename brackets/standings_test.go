package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/championship-tracker/models"
)

func codes(rows []models.TeamStandingRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.TeamCode
	}
	return out
}

func TestGamePoints(t *testing.T) {
	tests := []struct {
		kind           models.ResultKind
		s1, s2         int
		wantP1, wantP2 int
	}{
		{models.ResultRegulation, 3, 1, 3, 0},
		{models.ResultRegulation, 0, 2, 0, 3},
		{models.ResultOvertime, 2, 1, 2, 1},
		{models.ResultOvertime, 1, 2, 1, 2},
		{models.ResultShootout, 4, 3, 2, 1},
		{models.ResultShootout, 3, 4, 1, 2},
	}
	for _, tt := range tests {
		p1, p2, ok := GamePoints(tt.kind, tt.s1, tt.s2)
		require.True(t, ok)
		assert.Equal(t, tt.wantP1, p1, "%s %d-%d", tt.kind, tt.s1, tt.s2)
		assert.Equal(t, tt.wantP2, p2, "%s %d-%d", tt.kind, tt.s1, tt.s2)
		assert.Equal(t, 3, p1+p2)
	}

	p1, p2, ok := GamePoints(models.ResultRegulation, 2, 2)
	assert.True(t, ok)
	assert.Equal(t, 1, p1)
	assert.Equal(t, 1, p2)

	_, _, ok = GamePoints("PEN", 2, 1)
	assert.False(t, ok)
}

func TestCalculateGroupStandings_Ranks(t *testing.T) {
	tables := CalculateGroupStandings(championshipPrelims(), nil, discardLogger())

	require.Equal(t, []string{"A", "B"}, tables.Groups())
	assert.Equal(t, []string{"CAN", "FIN", "LAT", "SVK"}, codes(tables["A"]))
	assert.Equal(t, []string{"SWE", "USA", "GER", "DEN"}, codes(tables["B"]))

	can, ok := tables.Lookup("CAN")
	require.True(t, ok)
	assert.Equal(t, 3, can.GamesPlayed)
	assert.Equal(t, 3, can.Wins)
	assert.Equal(t, 9, can.Points)
	assert.Equal(t, 12, can.GoalsFor)
	assert.Equal(t, 1, can.GoalsAgainst)
	assert.Equal(t, 11, can.GoalDiff())
	assert.Equal(t, 1, can.RankInGroup)

	svk, _ := tables.Lookup("SVK")
	assert.Equal(t, 4, svk.RankInGroup)
	assert.Equal(t, 3, svk.Losses)
}

func TestCalculateGroupStandings_RecordsOvertime(t *testing.T) {
	games := []*models.Game{
		prelim(1, "A", "CAN", "FIN", 2, 1, models.ResultOvertime),
		prelim(2, "A", "FIN", "SWE", 1, 2, models.ResultShootout),
	}
	tables := CalculateGroupStandings(games, nil, discardLogger())

	can, _ := tables.Lookup("CAN")
	fin, _ := tables.Lookup("FIN")
	swe, _ := tables.Lookup("SWE")
	assert.Equal(t, 1, can.OTWins)
	assert.Equal(t, 1, fin.OTLosses)
	assert.Equal(t, 1, fin.SOLosses)
	assert.Equal(t, 1, swe.SOWins)
	assert.Equal(t, 2, fin.Points)

	total := 0
	for _, row := range tables["A"] {
		total += row.Points
	}
	assert.Equal(t, 6, total)
}

func TestCalculateGroupStandings_SkipsIneligibleGames(t *testing.T) {
	unscored := prelim(3, "A", "CAN", "SWE", 0, 0, models.ResultRegulation)
	unscored.Team1Score, unscored.Team2Score = nil, nil

	playoff := prelim(57, "A", "CAN", "FIN", 9, 0, models.ResultRegulation)
	playoff.Round = models.RoundQuarterfinals

	placeholder := prelim(4, "A", "A1", "FIN", 9, 0, models.ResultRegulation)

	games := []*models.Game{
		prelim(1, "A", "CAN", "FIN", 2, 1, models.ResultRegulation),
		unscored, playoff, placeholder, nil,
	}
	tables := CalculateGroupStandings(games, nil, discardLogger())

	can, _ := tables.Lookup("CAN")
	assert.Equal(t, 1, can.GamesPlayed)
	assert.Equal(t, 2, can.GoalsFor)
	_, ok := tables.Lookup("A1")
	assert.False(t, ok)
	swe, ok := tables.Lookup("SWE")
	require.True(t, ok)
	assert.Equal(t, 0, swe.GamesPlayed)
	assert.Equal(t, 0, swe.Points)
}

func TestCalculateGroupStandings_ScheduledTeamsBeforeResults(t *testing.T) {
	unscored := func(num int, t1, t2 string) *models.Game {
		g := prelim(num, "Group A", t1, t2, 0, 0, "")
		g.Team1Score, g.Team2Score = nil, nil
		return g
	}

	games := []*models.Game{unscored(1, "FIN", "CAN"), unscored(2, "SVK", "LAT")}
	tables := CalculateGroupStandings(games, nil, discardLogger())
	assert.Equal(t, []string{"CAN", "FIN", "LAT", "SVK"}, codes(tables["A"]))
	assert.Equal(t, "CAN", AssignSeeds(tables)["A1"])

	// after one result the teams still waiting keep their rows
	games = []*models.Game{
		prelim(1, "Group A", "CAN", "FIN", 1, 4, models.ResultRegulation),
		unscored(2, "SVK", "LAT"),
	}
	tables = CalculateGroupStandings(games, nil, discardLogger())
	assert.Equal(t, []string{"FIN", "LAT", "SVK", "CAN"}, codes(tables["A"]))
	seeds := AssignSeeds(tables)
	assert.Equal(t, "SVK", seeds["A3"])
	assert.Equal(t, "CAN", seeds["A4"])
}

func TestCalculateGroupStandings_UnknownResultKind(t *testing.T) {
	games := []*models.Game{prelim(1, "A", "CAN", "FIN", 2, 1, "PEN")}
	tables := CalculateGroupStandings(games, nil, discardLogger())

	can, _ := tables.Lookup("CAN")
	assert.Equal(t, 1, can.GamesPlayed)
	assert.Equal(t, 0, can.Points)
	assert.Equal(t, 0, can.Wins)
}

func TestCalculateGroupStandings_Membership(t *testing.T) {
	games := []*models.Game{prelim(1, "A", "CAN", "FIN", 2, 1, models.ResultRegulation)}
	tables := CalculateGroupStandings(games, map[string][]string{"Group A": {"CAN", "FIN", "SWE"}}, discardLogger())

	assert.Equal(t, []string{"CAN", "SWE", "FIN"}, codes(tables["A"]))
	swe, ok := tables.Lookup("SWE")
	require.True(t, ok)
	assert.Equal(t, 0, swe.GamesPlayed)
	assert.Equal(t, 2, swe.RankInGroup)
}

func TestCalculateGroupStandings_CircularTieFallsBackToGoalDifference(t *testing.T) {
	reg := models.ResultRegulation
	games := []*models.Game{
		prelim(1, "C", "AAA", "BBB", 1, 0, reg),
		prelim(2, "C", "BBB", "CCC", 1, 0, reg),
		prelim(3, "C", "CCC", "AAA", 1, 0, reg),
		prelim(4, "C", "AAA", "DDD", 5, 0, reg),
		prelim(5, "C", "BBB", "DDD", 3, 0, reg),
		prelim(6, "C", "CCC", "DDD", 1, 0, reg),
	}
	tables := CalculateGroupStandings(games, nil, discardLogger())

	assert.Equal(t, []string{"AAA", "BBB", "CCC", "DDD"}, codes(tables["C"]))
	for i, row := range tables["C"] {
		assert.Equal(t, i+1, row.RankInGroup)
	}
}

func TestCalculateGroupStandings_HeadToHeadBeatsGoalDifference(t *testing.T) {
	reg := models.ResultRegulation
	games := []*models.Game{
		prelim(1, "D", "AAA", "BBB", 1, 0, reg),
		prelim(2, "D", "AAA", "CCC", 0, 1, reg),
		prelim(3, "D", "AAA", "DDD", 1, 0, reg),
		prelim(4, "D", "BBB", "CCC", 5, 0, reg),
		prelim(5, "D", "BBB", "DDD", 5, 0, reg),
		prelim(6, "D", "CCC", "DDD", 0, 1, reg),
	}
	tables := CalculateGroupStandings(games, nil, discardLogger())

	assert.Equal(t, []string{"AAA", "BBB", "DDD", "CCC"}, codes(tables["D"]))
}

func TestCalculateGroupStandings_Deterministic(t *testing.T) {
	first := CalculateGroupStandings(championshipPrelims(), nil, discardLogger())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateGroupStandings(championshipPrelims(), nil, discardLogger()))
	}
}

func TestNormalizeGroup(t *testing.T) {
	assert.Equal(t, "A", NormalizeGroup("Group A"))
	assert.Equal(t, "B", NormalizeGroup(" B "))
	assert.Equal(t, "", NormalizeGroup(""))
}
