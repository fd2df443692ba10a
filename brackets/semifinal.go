package brackets

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/Dosada05/championship-tracker/models"
)

var (
	ErrQuarterfinalsIncomplete = errors.New("quarterfinal winners are not all known yet")
	ErrSemifinalLayout         = errors.New("template does not describe exactly two semifinals")
	ErrWinnerWithoutStanding   = errors.New("quarterfinal winner has no group standing")
	ErrSeedingMismatch         = errors.New("custom seeding does not match the quarterfinal winners")
)

type Matchup struct {
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
}

// Contains reports whether code plays in the matchup.
func (m Matchup) Contains(code string) bool {
	return code != "" && (m.Team1 == code || m.Team2 == code)
}

// SemifinalPlan is the outcome of semifinal pairing. Games[i] is played by
// Matchups[i]; Games is ascending.
type SemifinalPlan struct {
	Seeds         [4]string  `json:"seeds"`
	Games         [2]int     `json:"games"`
	Matchups      [2]Matchup `json:"matchups"`
	HostPlaced    string     `json:"host_placed,omitempty"`
	CustomSeeding bool       `json:"custom_seeding"`
}

// QuarterfinalWinners resolves W(n) for every quarterfinal of the template.
func QuarterfinalWinners(res *Resolver, tmpl *Template) ([]string, error) {
	winners := make([]string, 0, len(tmpl.QuarterfinalGames))
	for _, n := range tmpl.QuarterfinalGames {
		code := res.Resolve(OutcomeToken(Winner, n))
		if !IsCodeFinal(code) {
			return nil, fmt.Errorf("%w: game %d", ErrQuarterfinalsIncomplete, n)
		}
		winners = append(winners, code)
	}
	if len(winners) != 4 {
		return nil, fmt.Errorf("%w: %d quarterfinals in template", ErrQuarterfinalsIncomplete, len(winners))
	}
	distinct := slices.Clone(winners)
	slices.Sort(distinct)
	if len(slices.Compact(distinct)) != 4 {
		return nil, fmt.Errorf("%w: winners are not distinct %v", ErrQuarterfinalsIncomplete, winners)
	}
	return winners, nil
}

// RankQuarterfinalWinners orders the winners best to worst by group rank,
// then points, goal difference and goals for.
func RankQuarterfinalWinners(winners []string, tables GroupTables) ([]string, error) {
	rows := make([]models.TeamStandingRow, 0, len(winners))
	for _, code := range winners {
		row, ok := tables.Lookup(code)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrWinnerWithoutStanding, code)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.RankInGroup != b.RankInGroup {
			return a.RankInGroup < b.RankInGroup
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff() != b.GoalDiff() {
			return a.GoalDiff() > b.GoalDiff()
		}
		return a.GoalsFor > b.GoalsFor
	})
	ranked := make([]string, len(rows))
	for i, row := range rows {
		ranked[i] = row.TeamCode
	}
	return ranked, nil
}

// ValidateSeeding checks that an override names exactly the four winners.
func ValidateSeeding(override models.CustomSeeding, winners []string) error {
	codes := override.Codes()
	seen := make(map[string]bool, 4)
	for i, code := range codes {
		if !slices.Contains(winners, code) {
			return fmt.Errorf("%w: seed%d %q", ErrSeedingMismatch, i+1, code)
		}
		if seen[code] {
			return fmt.Errorf("%w: %q seeded twice", ErrSeedingMismatch, code)
		}
		seen[code] = true
	}
	return nil
}

// PairSemifinals builds the semifinal matchups R1-R4 and R2-R3. A host
// among the four has its matchup placed in the lower-numbered semifinal,
// the primary host first, then the secondary. A valid override replaces
// the computed order and is never reordered for hosts.
func PairSemifinals(winners []string, tables GroupTables, tmpl *Template, override *models.CustomSeeding) (*SemifinalPlan, error) {
	if len(tmpl.SemifinalGames) != 2 {
		return nil, ErrSemifinalLayout
	}
	plan := &SemifinalPlan{Games: [2]int{tmpl.SemifinalGames[0], tmpl.SemifinalGames[1]}}
	if plan.Games[0] > plan.Games[1] {
		plan.Games[0], plan.Games[1] = plan.Games[1], plan.Games[0]
	}

	if override != nil {
		if err := ValidateSeeding(*override, winners); err != nil {
			return nil, err
		}
		copy(plan.Seeds[:], override.Codes())
		plan.CustomSeeding = true
		plan.Matchups = [2]Matchup{
			{Team1: plan.Seeds[0], Team2: plan.Seeds[3]},
			{Team1: plan.Seeds[1], Team2: plan.Seeds[2]},
		}
		return plan, nil
	}

	ranked, err := RankQuarterfinalWinners(winners, tables)
	if err != nil {
		return nil, err
	}
	copy(plan.Seeds[:], ranked)

	high := Matchup{Team1: plan.Seeds[0], Team2: plan.Seeds[3]}
	mid := Matchup{Team1: plan.Seeds[1], Team2: plan.Seeds[2]}
	plan.Matchups = [2]Matchup{high, mid}

	for _, host := range []string{tmpl.PrimaryHost(), tmpl.SecondaryHost()} {
		if host == "" || !slices.Contains(ranked, host) {
			continue
		}
		if mid.Contains(host) {
			plan.Matchups = [2]Matchup{mid, high}
		}
		plan.HostPlaced = host
		break
	}
	return plan, nil
}

// ApplySemifinals pins the matchups onto the semifinal games and writes
// the Q1..Q4 and seed1..seed4 aliases. Q aliases follow the skeleton
// layout: the first semifinal is Q1 v Q4, the second Q2 v Q3. This holds
// for computed and custom seeding alike; Q1/Q2 never both name the first
// semifinal.
func ApplySemifinals(res *Resolver, plan *SemifinalPlan) {
	for i, n := range plan.Games {
		res.Pin(n, plan.Matchups[i].Team1, plan.Matchups[i].Team2)
	}
	res.Set("Q1", plan.Matchups[0].Team1)
	res.Set("Q4", plan.Matchups[0].Team2)
	res.Set("Q2", plan.Matchups[1].Team1)
	res.Set("Q3", plan.Matchups[1].Team2)
	for i, code := range plan.Seeds {
		res.Set("seed"+strconv.Itoa(i+1), code)
	}
}

// AssignQuarterfinalAliases maps Q1..Q4 to the quarterfinal winners in
// template order. Used when no semifinal plan could be made.
func AssignQuarterfinalAliases(res *Resolver, tmpl *Template) {
	if len(tmpl.QuarterfinalGames) != 4 {
		return
	}
	if _, ok := res.Slots()["Q1"]; ok {
		return
	}
	for i, n := range tmpl.QuarterfinalGames {
		code := res.Resolve(OutcomeToken(Winner, n))
		if IsCodeFinal(code) {
			res.Set("Q"+strconv.Itoa(i+1), code)
		}
	}
}
