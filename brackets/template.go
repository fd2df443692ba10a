package brackets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// Default playoff numbering of the 16-team championship format.
const (
	DefaultQuarterfinal1 = 57
	DefaultSemifinal1    = 61
	DefaultBronzeGame    = 63
	DefaultGoldGame      = 64
)

var ErrTemplateHasNoPlayoffs = errors.New("fixture descriptor lists no playoff games")

// FixtureDescriptor is the JSON document describing one tournament.
type FixtureDescriptor struct {
	Hosts    []string        `json:"hosts"`
	Schedule []ScheduleEntry `json:"schedule"`

	// Optional explicit numbering, overrides what the schedule implies.
	QFGameNumbers []int `json:"qf_game_numbers,omitempty"`
	SFGameNumbers []int `json:"sf_game_numbers,omitempty"`
}

type ScheduleEntry struct {
	Round      string `json:"round"`
	GameNumber int    `json:"gameNumber"`
}

// Template is the playoff layout of one tournament.
type Template struct {
	QuarterfinalGames []int    `json:"quarterfinal_games"`
	SemifinalGames    []int    `json:"semifinal_games"`
	BronzeGame        int      `json:"bronze_game,omitempty"`
	GoldGame          int      `json:"gold_game,omitempty"`
	Hosts             []string `json:"hosts"`
	IsDefault         bool     `json:"is_default"`
}

// DefaultTemplate is used whenever no usable fixture descriptor exists.
func DefaultTemplate() *Template {
	return &Template{
		QuarterfinalGames: []int{DefaultQuarterfinal1, DefaultQuarterfinal1 + 1, DefaultQuarterfinal1 + 2, DefaultQuarterfinal1 + 3},
		SemifinalGames:    []int{DefaultSemifinal1, DefaultSemifinal1 + 1},
		BronzeGame:        DefaultBronzeGame,
		GoldGame:          DefaultGoldGame,
		Hosts:             []string{"SWE", "DEN"},
		IsDefault:         true,
	}
}

// PrimaryHost returns the first host code, or "".
func (t *Template) PrimaryHost() string {
	if len(t.Hosts) > 0 {
		return t.Hosts[0]
	}
	return ""
}

// SecondaryHost returns the second host code, or "".
func (t *Template) SecondaryHost() string {
	if len(t.Hosts) > 1 {
		return t.Hosts[1]
	}
	return ""
}

// HasPlayoffs reports whether at least one playoff game number is known.
func (t *Template) HasPlayoffs() bool {
	return len(t.QuarterfinalGames) > 0 || len(t.SemifinalGames) > 0 || t.BronzeGame > 0 || t.GoldGame > 0
}

type roundKind int

const (
	roundOther roundKind = iota
	roundQuarterfinal
	roundSemifinal
	roundBronze
	roundGold
)

// classifyRound buckets a round name by case-insensitive substring. The
// order matters: "Semifinal" and "Quarterfinal" also contain "final".
func classifyRound(round string) roundKind {
	r := strings.ToLower(round)
	switch {
	case strings.Contains(r, "quarterfinal"):
		return roundQuarterfinal
	case strings.Contains(r, "semifinal"):
		return roundSemifinal
	case strings.Contains(r, "bronze"), strings.Contains(r, "3rd place"):
		return roundBronze
	case strings.Contains(r, "gold"), strings.Contains(r, "final"):
		return roundGold
	}
	return roundOther
}

// TemplateFromDescriptor builds a template from a decoded descriptor.
func TemplateFromDescriptor(d FixtureDescriptor) (*Template, error) {
	t := &Template{Hosts: d.Hosts}
	for _, entry := range d.Schedule {
		if entry.GameNumber <= 0 {
			continue
		}
		switch classifyRound(entry.Round) {
		case roundQuarterfinal:
			t.QuarterfinalGames = append(t.QuarterfinalGames, entry.GameNumber)
		case roundSemifinal:
			t.SemifinalGames = append(t.SemifinalGames, entry.GameNumber)
		case roundBronze:
			t.BronzeGame = entry.GameNumber
		case roundGold:
			t.GoldGame = entry.GameNumber
		}
	}
	if len(d.QFGameNumbers) > 0 {
		t.QuarterfinalGames = append([]int(nil), d.QFGameNumbers...)
	}
	if len(d.SFGameNumbers) > 0 {
		t.SemifinalGames = append([]int(nil), d.SFGameNumbers...)
	}
	sort.Ints(t.SemifinalGames)

	if !t.HasPlayoffs() {
		return nil, ErrTemplateHasNoPlayoffs
	}
	if t.Hosts == nil {
		t.Hosts = []string{}
	}
	return t, nil
}

// ParseTemplate decodes a fixture descriptor document.
func ParseTemplate(r io.Reader) (*Template, error) {
	var d FixtureDescriptor
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode fixture descriptor: %w", err)
	}
	return TemplateFromDescriptor(d)
}

// FixtureOpener is the read side of a fixture store.
type FixtureOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// LoadTemplate reads the descriptor stored under key. It never fails: a
// missing key, an unreadable document or one without playoff games all
// yield DefaultTemplate.
func LoadTemplate(ctx context.Context, source FixtureOpener, key string, logger *slog.Logger) *Template {
	if logger == nil {
		logger = slog.Default()
	}
	if source == nil || key == "" {
		logger.Debug("no fixture descriptor configured, using default template")
		return DefaultTemplate()
	}

	rc, err := source.Open(ctx, key)
	if err != nil {
		logger.Warn("could not open fixture descriptor, using default template",
			slog.String("fixture_key", key), slog.Any("error", err))
		return DefaultTemplate()
	}
	defer rc.Close()

	t, err := ParseTemplate(rc)
	if err != nil {
		logger.Warn("could not parse fixture descriptor, using default template",
			slog.String("fixture_key", key), slog.Any("error", err))
		return DefaultTemplate()
	}
	return t
}
