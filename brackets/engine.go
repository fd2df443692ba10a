package brackets

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/Dosada05/championship-tracker/models"
)

// Input is everything one resolution run needs. Games are read, never
// modified.
type Input struct {
	Games []*models.Game
	// Membership lists each group's teams, so teams without a played game
	// still get a table row. Optional.
	Membership    map[string][]string
	Template      *Template
	CustomSeeding *models.CustomSeeding
}

// Result is the resolved view of the bracket.
type Result struct {
	RunID      string                `json:"run_id"`
	Games      []*models.GameDisplay `json:"games"`
	Slots      ResolutionMap         `json:"slots"`
	Standings  GroupTables           `json:"standings"`
	Template   *Template             `json:"template"`
	Semifinals *SemifinalPlan        `json:"semifinals,omitempty"`
	Podium     Podium                `json:"podium"`
	Passes     int                   `json:"passes"`
	Converged  bool                  `json:"converged"`
}

// Engine runs the bracket resolution pipeline. It keeps no state between
// runs and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Resolve computes standings, seeds the bracket and propagates results
// through every playoff round. Running it twice on the same input yields
// the same result.
func (e *Engine) Resolve(in Input) *Result {
	tmpl := in.Template
	if tmpl == nil {
		tmpl = DefaultTemplate()
	}
	runID := uuid.NewString()
	logger := e.logger.With(slog.String("run_id", runID))

	standings := CalculateGroupStandings(in.Games, in.Membership, logger)

	slots := make(ResolutionMap)
	for token, code := range AssignSeeds(standings) {
		slots[token] = code
	}
	for token, code := range AssignHostSeeds(standings, tmpl.Hosts) {
		if _, taken := slots[token]; !taken {
			slots[token] = code
		}
	}

	displays := NewDisplays(in.Games)
	res := NewResolver(slots, GamesOf(displays))
	passCap := PassCap(countTeams(in.Games, in.Membership))

	result := &Result{
		RunID:     runID,
		Games:     displays,
		Slots:     slots,
		Standings: standings,
		Template:  tmpl,
	}
	propagate := func(stage string) {
		stats := res.Propagate(displays, passCap)
		result.Passes += stats.Passes
		result.Converged = stats.Converged
		if !stats.Converged {
			logger.Warn("propagation hit pass cap",
				slog.String("stage", stage), slog.Int("pass_cap", passCap), slog.Int("changes", stats.Changes))
		}
	}

	propagate("seeds")

	override := in.CustomSeeding
	if plan := e.pairSemifinals(res, standings, tmpl, override, logger); plan != nil {
		ApplySemifinals(res, plan)
		result.Semifinals = plan
		if !plan.CustomSeeding {
			override = nil
		}
	} else {
		override = nil
		AssignQuarterfinalAliases(res, tmpl)
	}

	propagate("semifinals")

	if !AssignMedalGames(res, tmpl) {
		logger.Debug("medal games not wired", slog.Int("bronze_game", tmpl.BronzeGame), slog.Int("gold_game", tmpl.GoldGame))
	}

	// The override is written once more so nothing later in the run can
	// move the seeded teams.
	if override != nil && result.Semifinals != nil {
		ApplySemifinals(res, result.Semifinals)
	}

	propagate("medals")

	result.Podium = FinalRanking(res, tmpl)
	logger.Debug("bracket resolved",
		slog.Int("games", len(displays)), slog.Int("slots", len(slots)),
		slog.Int("passes", result.Passes), slog.Bool("converged", result.Converged))
	return result
}

func (e *Engine) pairSemifinals(res *Resolver, standings GroupTables, tmpl *Template, override *models.CustomSeeding, logger *slog.Logger) *SemifinalPlan {
	winners, err := QuarterfinalWinners(res, tmpl)
	if err != nil {
		logger.Debug("semifinals not paired", slog.Any("reason", err))
		return nil
	}

	if override != nil {
		plan, err := PairSemifinals(winners, standings, tmpl, override)
		if err == nil {
			return plan
		}
		logger.Warn("ignoring custom seeding", slog.Any("error", err), slog.Any("winners", winners))
	}

	plan, err := PairSemifinals(winners, standings, tmpl, nil)
	if err != nil {
		logger.Warn("semifinals not paired", slog.Any("error", err))
		return nil
	}
	return plan
}

func countTeams(games []*models.Game, membership map[string][]string) int {
	seen := make(map[string]struct{})
	for _, teams := range membership {
		for _, code := range teams {
			seen[code] = struct{}{}
		}
	}
	for _, g := range games {
		if g == nil {
			continue
		}
		for _, code := range []string{g.Team1Code, g.Team2Code} {
			if IsCodeFinal(code) {
				seen[code] = struct{}{}
			}
		}
	}
	return len(seen)
}
