package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/championship-tracker/models"
)

func TestDecodeSeeding(t *testing.T) {
	want := &models.CustomSeeding{Seed1: "CAN", Seed2: "SWE", Seed3: "USA", Seed4: "FIN"}

	tests := []struct {
		name string
		raw  string
	}{
		{"bare map", `{"seed1":"CAN","seed2":"SWE","seed3":"USA","seed4":"FIN"}`},
		{"wrapped", `{"seeding":{"seed1":"CAN","seed2":"SWE","seed3":"USA","seed4":"FIN"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSeeding([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := DecodeSeeding([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestMapPQError(t *testing.T) {
	assert.NoError(t, mapPQError(nil))

	err := mapPQError(&pq.Error{Code: "23503", Constraint: "custom_seedings_tournament_id_fkey"})
	assert.ErrorIs(t, err, ErrTournamentInvalidRef)

	err = mapPQError(&pq.Error{Code: "23505", Constraint: "games_tournament_id_game_number_key"})
	assert.ErrorIs(t, err, ErrGameNumberConflict)

	other := errors.New("boom")
	assert.Equal(t, other, mapPQError(other))
}

type fakeResult struct {
	rows int64
	err  error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, f.err }

var _ sql.Result = fakeResult{}

func TestCheckAffectedRows(t *testing.T) {
	assert.NoError(t, checkAffectedRows(fakeResult{rows: 1}, ErrSeedingNotFound))
	assert.ErrorIs(t, checkAffectedRows(fakeResult{rows: 0}, ErrSeedingNotFound), ErrSeedingNotFound)
	assert.Error(t, checkAffectedRows(fakeResult{err: errors.New("driver")}, ErrSeedingNotFound))
}

func TestNullIntPtr(t *testing.T) {
	assert.Nil(t, nullIntPtr(sql.NullInt64{}))
	assert.Equal(t, 57, *nullIntPtr(sql.NullInt64{Int64: 57, Valid: true}))
}
