package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/championship-tracker/models"
)

type SeedingRepository interface {
	Get(ctx context.Context, tournamentID int) (*models.CustomSeeding, error)
	Upsert(ctx context.Context, exec SQLExecutor, tournamentID int, seeding models.CustomSeeding) error
	Delete(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresSeedingRepository struct {
	db *sql.DB
}

func NewPostgresSeedingRepository(db *sql.DB) SeedingRepository {
	return &postgresSeedingRepository{db: db}
}

func (r *postgresSeedingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSeedingRepository) Get(ctx context.Context, tournamentID int) (*models.CustomSeeding, error) {
	query := `SELECT seeding FROM custom_seedings WHERE tournament_id = $1`

	var raw []byte
	err := r.getExecutor(nil).QueryRowContext(ctx, query, tournamentID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeedingNotFound
		}
		return nil, err
	}
	return DecodeSeeding(raw)
}

func (r *postgresSeedingRepository) Upsert(ctx context.Context, exec SQLExecutor, tournamentID int, seeding models.CustomSeeding) error {
	raw, err := json.Marshal(seeding)
	if err != nil {
		return fmt.Errorf("failed to encode seeding: %w", err)
	}
	query := `
		INSERT INTO custom_seedings (tournament_id, seeding, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (tournament_id) DO UPDATE
		SET seeding = EXCLUDED.seeding, updated_at = NOW()`

	_, err = r.getExecutor(exec).ExecContext(ctx, query, tournamentID, raw)
	return mapPQError(err)
}

func (r *postgresSeedingRepository) Delete(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	query := `DELETE FROM custom_seedings WHERE tournament_id = $1`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, tournamentID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeedingNotFound)
}

// DecodeSeeding reads a stored seeding document. Older rows wrap the map
// as {"seeding": {...}}.
func DecodeSeeding(raw []byte) (*models.CustomSeeding, error) {
	var wrapped struct {
		Seeding *models.CustomSeeding `json:"seeding"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode seeding: %w", err)
	}
	if wrapped.Seeding != nil {
		return wrapped.Seeding, nil
	}

	var seeding models.CustomSeeding
	if err := json.Unmarshal(raw, &seeding); err != nil {
		return nil, fmt.Errorf("failed to decode seeding: %w", err)
	}
	return &seeding, nil
}
