package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrSeedingNotFound    = errors.New("custom seeding not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidFixture   = errors.New("invalid fixture descriptor")
	ErrSeedingRejected  = errors.New("custom seeding rejected")
)

// SeedingError explains why a seeding override was rejected and, when a
// close match exists, which team was probably meant.
type SeedingError struct {
	Seed       int
	Code       string
	Reason     string
	Suggestion string
}

func (e *SeedingError) Error() string {
	msg := fmt.Sprintf("seed%d %q: %s", e.Seed, e.Code, e.Reason)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean %q?", e.Suggestion)
	}
	return msg
}

func (e *SeedingError) Unwrap() error {
	return ErrSeedingRejected
}
