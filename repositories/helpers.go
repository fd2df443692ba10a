package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var (
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrSeedingNotFound      = errors.New("custom seeding not found")
	ErrTournamentInvalidRef = errors.New("invalid tournament reference")
	ErrGameNumberConflict   = errors.New("game number already used in this tournament")
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}

// mapPQError turns constraint violations into repository errors.
func mapPQError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrTournamentInvalidRef, pqErr.Constraint)
		case "23505": // unique_violation
			if pqErr.Constraint == "games_tournament_id_game_number_key" {
				return ErrGameNumberConflict
			}
		}
	}
	return err
}
