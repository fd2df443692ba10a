package brackets

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/Dosada05/championship-tracker/models"
)

// GroupTables holds the ranked table of every group, keyed by group letter.
type GroupTables map[string][]models.TeamStandingRow

// Lookup finds the standings row of a team in any group.
func (t GroupTables) Lookup(code string) (models.TeamStandingRow, bool) {
	for _, rows := range t {
		for _, row := range rows {
			if row.TeamCode == code {
				return row, true
			}
		}
	}
	return models.TeamStandingRow{}, false
}

// Groups returns the group keys in ascending order.
func (t GroupTables) Groups() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeGroup strips the "Group " prefix used by the game store.
func NormalizeGroup(name string) string {
	name = strings.TrimSpace(name)
	if rest, ok := strings.CutPrefix(name, "Group "); ok {
		return strings.TrimSpace(rest)
	}
	return name
}

// GamePoints returns the points each side earns from a decided game.
// Regulation win 3/0, overtime or shootout win 2/1, a tie 1/1.
// ok is false for a result kind the table does not know.
func GamePoints(kind models.ResultKind, score1, score2 int) (p1, p2 int, ok bool) {
	if score1 == score2 {
		// Ties do not happen in this sport; kept so the table stays balanced.
		return 1, 1, true
	}
	var win, loss int
	switch kind {
	case models.ResultRegulation:
		win, loss = 3, 0
	case models.ResultOvertime, models.ResultShootout:
		win, loss = 2, 1
	default:
		return 0, 0, false
	}
	if score1 > score2 {
		return win, loss, true
	}
	return loss, win, true
}

// CalculateGroupStandings ranks every group from its played preliminary
// games. Every team of a scheduled preliminary game gets a row, played or
// not. membership may list further teams per group; it may be nil.
func CalculateGroupStandings(games []*models.Game, membership map[string][]string, logger *slog.Logger) GroupTables {
	if logger == nil {
		logger = slog.Default()
	}

	rows := make(map[string]*models.TeamStandingRow)
	ensure := func(code, group string) *models.TeamStandingRow {
		row, ok := rows[code]
		if !ok {
			row = &models.TeamStandingRow{TeamCode: code, Group: group}
			rows[code] = row
		} else if row.Group == "" && group != "" {
			row.Group = group
		}
		return row
	}

	for group, teams := range membership {
		for _, code := range teams {
			ensure(code, NormalizeGroup(group))
		}
	}

	played := make([]*models.Game, 0, len(games))
	for _, g := range games {
		if g == nil || !models.IsPreliminaryRound(g.Round) {
			continue
		}
		if !IsCodeFinal(g.Team1Code) || !IsCodeFinal(g.Team2Code) {
			continue
		}
		group := ""
		if g.Group != nil {
			group = NormalizeGroup(*g.Group)
		}
		// scheduled teams get a row before their first result
		t1 := ensure(g.Team1Code, group)
		t2 := ensure(g.Team2Code, group)
		if !g.HasScore() {
			continue
		}
		s1, s2 := *g.Team1Score, *g.Team2Score

		t1.GamesPlayed++
		t2.GamesPlayed++
		t1.GoalsFor += s1
		t1.GoalsAgainst += s2
		t2.GoalsFor += s2
		t2.GoalsAgainst += s1

		p1, p2, ok := GamePoints(g.ResultType, s1, s2)
		if !ok {
			logger.Warn("unrecognized result type, no points awarded",
				slog.Int("game_id", g.ID), slog.String("result_type", string(g.ResultType)))
			played = append(played, g)
			continue
		}
		t1.Points += p1
		t2.Points += p2
		recordOutcome(t1, t2, g.ResultType, s1, s2)
		played = append(played, g)
	}

	tables := make(GroupTables)
	byGroup := make(map[string][]*models.TeamStandingRow)
	for _, row := range rows {
		byGroup[row.Group] = append(byGroup[row.Group], row)
	}
	for group, list := range byGroup {
		sort.SliceStable(list, func(i, j int) bool {
			return compareOverall(list[i], list[j]) < 0
		})
		list = applyHeadToHead(list, played)

		ranked := make([]models.TeamStandingRow, len(list))
		for i, row := range list {
			row.RankInGroup = i + 1
			ranked[i] = *row
		}
		tables[group] = ranked
	}
	return tables
}

func recordOutcome(t1, t2 *models.TeamStandingRow, kind models.ResultKind, s1, s2 int) {
	if s1 == s2 {
		t1.Ties++
		t2.Ties++
		return
	}
	winner, loser := t1, t2
	if s2 > s1 {
		winner, loser = t2, t1
	}
	switch kind {
	case models.ResultRegulation:
		winner.Wins++
		loser.Losses++
	case models.ResultOvertime:
		winner.OTWins++
		loser.OTLosses++
	case models.ResultShootout:
		winner.SOWins++
		loser.SOLosses++
	}
}

// compareOverall orders by points, goal difference, goals for, then team code.
func compareOverall(a, b *models.TeamStandingRow) int {
	if a.Points != b.Points {
		return b.Points - a.Points
	}
	if a.GoalDiff() != b.GoalDiff() {
		return b.GoalDiff() - a.GoalDiff()
	}
	if a.GoalsFor != b.GoalsFor {
		return b.GoalsFor - a.GoalsFor
	}
	return strings.Compare(a.TeamCode, b.TeamCode)
}

type h2hRecord struct {
	points, goalsFor, goalsAgainst int
}

// applyHeadToHead re-ranks every run of teams level on points using only
// the games played among them. Teams still level keep the overall order.
func applyHeadToHead(sorted []*models.TeamStandingRow, games []*models.Game) []*models.TeamStandingRow {
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].Points == sorted[start].Points {
			end++
		}
		if end-start > 1 {
			sortByHeadToHead(sorted[start:end], games)
		}
		start = end
	}
	return sorted
}

func sortByHeadToHead(tied []*models.TeamStandingRow, games []*models.Game) {
	records := make(map[string]*h2hRecord, len(tied))
	for _, row := range tied {
		records[row.TeamCode] = &h2hRecord{}
	}
	for _, g := range games {
		r1, ok1 := records[g.Team1Code]
		r2, ok2 := records[g.Team2Code]
		if !ok1 || !ok2 {
			continue
		}
		s1, s2 := *g.Team1Score, *g.Team2Score
		r1.goalsFor += s1
		r1.goalsAgainst += s2
		r2.goalsFor += s2
		r2.goalsAgainst += s1
		if p1, p2, ok := GamePoints(g.ResultType, s1, s2); ok {
			r1.points += p1
			r2.points += p2
		}
	}

	sort.SliceStable(tied, func(i, j int) bool {
		a, b := records[tied[i].TeamCode], records[tied[j].TeamCode]
		if a.points != b.points {
			return a.points > b.points
		}
		if ad, bd := a.goalsFor-a.goalsAgainst, b.goalsFor-b.goalsAgainst; ad != bd {
			return ad > bd
		}
		return a.goalsFor > b.goalsFor
	})
}
