package brackets

import (
	"context"

	"github.com/Dosada05/championship-tracker/models"
)

type GenerateScheduleParams struct {
	TournamentID int
	// Groups maps group letter to its team codes.
	Groups   map[string][]string
	Template *Template
	// FirstGameNumber is the number given to the first generated game.
	// Zero means 1.
	FirstGameNumber int
}

type ScheduleGenerator interface {
	Generate(ctx context.Context, params GenerateScheduleParams) ([]*models.Game, error)

	GetName() string
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
