package brackets

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/championship-tracker/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func prelim(num int, group, t1, t2 string, s1, s2 int, kind models.ResultKind) *models.Game {
	return &models.Game{
		ID:         num,
		Round:      models.RoundPreliminary,
		Group:      strPtr(group),
		GameNumber: intPtr(num),
		Team1Code:  t1,
		Team2Code:  t2,
		Team1Score: intPtr(s1),
		Team2Score: intPtr(s2),
		ResultType: kind,
	}
}

func scoreGame(g *models.Game, s1, s2 int, kind models.ResultKind) {
	g.Team1Score = intPtr(s1)
	g.Team2Score = intPtr(s2)
	g.ResultType = kind
}

// Group A ranks CAN, FIN, LAT, SVK. Group B ranks SWE, USA, GER, DEN.
// CAN is ahead of SWE and USA ahead of FIN on goal difference.
func championshipPrelims() []*models.Game {
	reg := models.ResultRegulation
	return []*models.Game{
		prelim(1, "Group A", "CAN", "FIN", 4, 1, reg),
		prelim(2, "Group A", "CAN", "LAT", 3, 0, reg),
		prelim(3, "Group A", "CAN", "SVK", 5, 0, reg),
		prelim(4, "Group A", "FIN", "LAT", 3, 2, reg),
		prelim(5, "Group A", "FIN", "SVK", 2, 0, reg),
		prelim(6, "Group A", "LAT", "SVK", 2, 1, reg),
		prelim(7, "Group B", "SWE", "USA", 2, 1, reg),
		prelim(8, "Group B", "SWE", "GER", 3, 1, reg),
		prelim(9, "Group B", "SWE", "DEN", 2, 0, reg),
		prelim(10, "Group B", "USA", "GER", 4, 0, reg),
		prelim(11, "Group B", "USA", "DEN", 3, 0, reg),
		prelim(12, "Group B", "GER", "DEN", 3, 2, reg),
	}
}

type championship struct {
	games   []*models.Game
	playoff map[int]*models.Game
}

func newChampionship(t *testing.T) *championship {
	t.Helper()
	skeleton, err := NewPlayoffSkeletonGenerator().Generate(context.Background(), GenerateScheduleParams{
		TournamentID: 1,
		Template:     DefaultTemplate(),
	})
	require.NoError(t, err)

	c := &championship{games: championshipPrelims(), playoff: make(map[int]*models.Game)}
	for i, g := range skeleton {
		g.ID = 100 + i
		c.playoff[*g.GameNumber] = g
		c.games = append(c.games, g)
	}
	return c
}

// finishQuarterfinals lets the higher seed win every quarterfinal:
// CAN, FIN, SWE and USA go through.
func (c *championship) finishQuarterfinals() {
	for n := DefaultQuarterfinal1; n < DefaultQuarterfinal1+4; n++ {
		scoreGame(c.playoff[n], 3, 1, models.ResultRegulation)
	}
}

func displayByNumber(t *testing.T, games []*models.GameDisplay, number int) *models.GameDisplay {
	t.Helper()
	for _, g := range games {
		if g.GameNumber != nil && *g.GameNumber == number {
			return g
		}
	}
	require.Failf(t, "game not found", "no game with number %d", number)
	return nil
}
