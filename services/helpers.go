package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Dosada05/championship-tracker/brackets"
	"github.com/Dosada05/championship-tracker/models"
	"github.com/Dosada05/championship-tracker/repositories"
)

// handleRepositoryError - общий хелпер для ошибок репозитория
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrSeedingNotFound):
		return ErrSeedingNotFound
	case errors.Is(err, repositories.ErrTournamentInvalidRef):
		return fmt.Errorf("%w: %v", ErrTournamentNotFound, err)
	}
	return err
}

func normalizeSeeding(s models.CustomSeeding) models.CustomSeeding {
	norm := func(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }
	return models.CustomSeeding{
		Seed1: norm(s.Seed1),
		Seed2: norm(s.Seed2),
		Seed3: norm(s.Seed3),
		Seed4: norm(s.Seed4),
	}
}

// checkSeedingCodes requires four distinct team codes.
func checkSeedingCodes(s models.CustomSeeding) error {
	seen := make(map[string]int, 4)
	for i, code := range s.Codes() {
		if !brackets.IsCodeFinal(code) {
			return &SeedingError{Seed: i + 1, Code: code, Reason: "not a three-letter team code"}
		}
		if prev, ok := seen[code]; ok {
			return &SeedingError{Seed: i + 1, Code: code, Reason: fmt.Sprintf("already used as seed%d", prev)}
		}
		seen[code] = i + 1
	}
	return nil
}

// checkSeedingAgainstBracket compares an override with the resolved
// bracket. Once all quarterfinal winners are known the override must name
// exactly them; before that every code must at least be a known team.
func checkSeedingAgainstBracket(s models.CustomSeeding, current *brackets.Result) error {
	var candidates []string
	reason := "not a quarterfinal winner"

	winners := quarterfinalWinners(current)
	if len(winners) == 4 {
		candidates = winners
	} else {
		for _, group := range current.Standings.Groups() {
			for _, row := range current.Standings[group] {
				candidates = append(candidates, row.TeamCode)
			}
		}
		reason = "not a team of this tournament"
		if len(candidates) == 0 {
			return nil
		}
	}

	used := make(map[string]bool, 4)
	for _, code := range s.Codes() {
		used[code] = true
	}
	for i, code := range s.Codes() {
		if containsCode(candidates, code) {
			continue
		}
		return &SeedingError{Seed: i + 1, Code: code, Reason: reason, Suggestion: suggestCode(code, candidates, used)}
	}
	return nil
}

func quarterfinalWinners(r *brackets.Result) []string {
	winners := make([]string, 0, 4)
	for _, n := range r.Template.QuarterfinalGames {
		code := r.Slots[brackets.OutcomeToken(brackets.Winner, n)]
		if !brackets.IsCodeFinal(code) {
			return nil
		}
		winners = append(winners, code)
	}
	return winners
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// suggestCode picks the closest unused candidate, preferring a fuzzy
// subsequence match and falling back to edit distance.
func suggestCode(code string, candidates []string, used map[string]bool) string {
	free := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !used[c] {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return ""
	}

	if ranks := fuzzy.RankFindFold(code, free); len(ranks) > 0 {
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r.Distance < best.Distance {
				best = r
			}
		}
		return best.Target
	}

	best, bestDist := "", 3
	for _, c := range free {
		if d := fuzzy.LevenshteinDistance(code, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
