package brackets

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/championship-tracker/models"
)

var ErrSkeletonLayout = errors.New("template cannot hold a quarterfinal playoff")

type PlayoffSkeletonGenerator struct{}

func NewPlayoffSkeletonGenerator() ScheduleGenerator {
	return &PlayoffSkeletonGenerator{}
}

func (g *PlayoffSkeletonGenerator) GetName() string {
	return "PlayoffSkeleton"
}

// Generate lays out the placeholder playoff games of a two-group
// tournament. Quarterfinals cross the groups (A1-B4, A2-B3, B1-A4, B2-A3),
// semifinals are Q1 v Q4 and Q2 v Q3, the bronze game takes the semifinal
// losers and the gold game the winners. Numbers come from the template.
func (g *PlayoffSkeletonGenerator) Generate(ctx context.Context, params GenerateScheduleParams) ([]*models.Game, error) {
	tmpl := params.Template
	if tmpl == nil {
		tmpl = DefaultTemplate()
	}
	if len(tmpl.QuarterfinalGames) != 4 || len(tmpl.SemifinalGames) != 2 || tmpl.BronzeGame <= 0 || tmpl.GoldGame <= 0 {
		return nil, fmt.Errorf("%w: %d quarterfinals, %d semifinals", ErrSkeletonLayout, len(tmpl.QuarterfinalGames), len(tmpl.SemifinalGames))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	first, second := "A", "B"
	if len(params.Groups) > 0 {
		names := make([]string, 0, len(params.Groups))
		for name := range params.Groups {
			names = append(names, NormalizeGroup(name))
		}
		sort.Strings(names)
		if len(names) < 2 {
			return nil, fmt.Errorf("%w: need two groups, got %v", ErrSkeletonLayout, names)
		}
		first, second = names[0], names[1]
	}

	pairs := [4][2]string{
		{first + "1", second + "4"},
		{first + "2", second + "3"},
		{second + "1", first + "4"},
		{second + "2", first + "3"},
	}

	games := make([]*models.Game, 0, 8)
	add := func(round string, number int, ref1, ref2 string) {
		games = append(games, &models.Game{
			TournamentID: params.TournamentID,
			Round:        round,
			GameNumber:   intPtr(number),
			Team1Code:    ref1,
			Team2Code:    ref2,
		})
	}
	for i, n := range tmpl.QuarterfinalGames {
		add(models.RoundQuarterfinals, n, pairs[i][0], pairs[i][1])
	}
	add(models.RoundSemifinals, tmpl.SemifinalGames[0], "Q1", "Q4")
	add(models.RoundSemifinals, tmpl.SemifinalGames[1], "Q2", "Q3")
	add(models.RoundBronzeMedal, tmpl.BronzeGame, "L(SF1)", "L(SF2)")
	add(models.RoundGoldMedal, tmpl.GoldGame, "W(SF1)", "W(SF2)")

	sort.SliceStable(games, func(i, j int) bool {
		return *games[i].GameNumber < *games[j].GameNumber
	})
	return games, nil
}
