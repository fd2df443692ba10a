package models

import "time"

// Tournament представляет чемпионат (один год турнира).
type Tournament struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Year       int       `json:"year" db:"year"`
	FixtureKey *string   `json:"fixture_key,omitempty" db:"fixture_key"`
	HostCodes  []string  `json:"host_codes,omitempty" db:"host_codes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CustomSeeding is an organizer override of the semifinal seeding order.
type CustomSeeding struct {
	Seed1 string `json:"seed1"`
	Seed2 string `json:"seed2"`
	Seed3 string `json:"seed3"`
	Seed4 string `json:"seed4"`
}

// Codes returns the seeds in order seed1..seed4.
func (s CustomSeeding) Codes() []string {
	return []string{s.Seed1, s.Seed2, s.Seed3, s.Seed4}
}
