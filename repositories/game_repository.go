package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/championship-tracker/models"
)

type GameRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Game, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

// ListByTournament returns every game of the tournament, ordered by game
// number with unnumbered games last.
func (r *postgresGameRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Game, error) {
	query := `
		SELECT id, tournament_id, round, group_name, game_number,
		       team1_code, team2_code, team1_score, team2_score,
		       COALESCE(result_type, ''), team1_points, team2_points
		FROM games
		WHERE tournament_id = $1
		ORDER BY game_number NULLS LAST, id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		g := &models.Game{}
		var group sql.NullString
		var number, s1, s2 sql.NullInt64
		if err := rows.Scan(
			&g.ID, &g.TournamentID, &g.Round, &group, &number,
			&g.Team1Code, &g.Team2Code, &s1, &s2,
			&g.ResultType, &g.Team1Points, &g.Team2Points,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		if group.Valid {
			g.Group = &group.String
		}
		g.GameNumber = nullIntPtr(number)
		g.Team1Score = nullIntPtr(s1)
		g.Team2Score = nullIntPtr(s2)
		games = append(games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return games, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
