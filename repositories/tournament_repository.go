package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/championship-tracker/models"
	"github.com/lib/pq"
)

type TournamentRepository interface {
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	UpdateFixtureKey(ctx context.Context, exec SQLExecutor, id int, fixtureKey *string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	executor := r.getExecutor(nil)
	query := `
		SELECT id, name, year, fixture_key, host_codes, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	var hosts []string
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Year, &t.FixtureKey, pq.Array(&hosts), &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	t.HostCodes = hosts
	return t, nil
}

func (r *postgresTournamentRepository) UpdateFixtureKey(ctx context.Context, exec SQLExecutor, id int, fixtureKey *string) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournaments SET fixture_key = $1 WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, fixtureKey, id)
	if err != nil {
		return mapPQError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
