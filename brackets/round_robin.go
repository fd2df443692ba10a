package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/championship-tracker/models"
)

type GroupStageGenerator struct{}

func NewGroupStageGenerator() ScheduleGenerator {
	return &GroupStageGenerator{}
}

func (g *GroupStageGenerator) GetName() string {
	return "GroupStage"
}

// Generate creates the preliminary round: inside each group every team
// plays every other team once. Groups are numbered in letter order.
func (g *GroupStageGenerator) Generate(ctx context.Context, params GenerateScheduleParams) ([]*models.Game, error) {
	if len(params.Groups) == 0 {
		return nil, fmt.Errorf("GroupStageGenerator: no groups given")
	}

	groups := make([]string, 0, len(params.Groups))
	for name := range params.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	number := params.FirstGameNumber
	if number <= 0 {
		number = 1
	}

	games := make([]*models.Game, 0)
	for _, name := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		teams := params.Groups[name]
		if len(teams) < 2 {
			return nil, fmt.Errorf("GroupStageGenerator: group %s has %d teams, min 2 required", name, len(teams))
		}
		for _, code := range teams {
			if !IsCodeFinal(code) {
				return nil, fmt.Errorf("GroupStageGenerator: group %s: invalid team code %q", name, code)
			}
		}

		group := NormalizeGroup(name)
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				games = append(games, &models.Game{
					TournamentID: params.TournamentID,
					Round:        models.RoundPreliminary,
					Group:        strPtr(group),
					GameNumber:   intPtr(number),
					Team1Code:    teams[i],
					Team2Code:    teams[j],
				})
				number++
			}
		}
	}
	return games, nil
}
