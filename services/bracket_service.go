package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"slices"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/championship-tracker/brackets"
	"github.com/Dosada05/championship-tracker/models"
	"github.com/Dosada05/championship-tracker/repositories"
	"github.com/Dosada05/championship-tracker/storage"
)

// maxFixtureSize bounds an uploaded fixture descriptor.
const maxFixtureSize = 1 << 20

// Broadcaster pushes messages to the clients watching a tournament.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type BracketService interface {
	GetBracket(ctx context.Context, tournamentID int) (*brackets.Result, error)
	GetStandings(ctx context.Context, tournamentID int) (brackets.GroupTables, error)
	GetCustomSeeding(ctx context.Context, tournamentID int) (*models.CustomSeeding, error)
	SetCustomSeeding(ctx context.Context, tournamentID int, seeding models.CustomSeeding) (*brackets.Result, error)
	ClearCustomSeeding(ctx context.Context, tournamentID int) (*brackets.Result, error)
	UploadFixture(ctx context.Context, tournamentID int, r io.Reader) (*brackets.Template, error)
	PreviewSchedule(ctx context.Context, tournamentID int) ([]*models.Game, error)
}

type bracketService struct {
	tournamentRepo repositories.TournamentRepository
	gameRepo       repositories.GameRepository
	seedingRepo    repositories.SeedingRepository
	fixtures       storage.FixtureSource
	hub            Broadcaster
	engine         *brackets.Engine
	logger         *slog.Logger
}

func NewBracketService(
	tournamentRepo repositories.TournamentRepository,
	gameRepo repositories.GameRepository,
	seedingRepo repositories.SeedingRepository,
	fixtures storage.FixtureSource,
	hub Broadcaster,
	logger *slog.Logger,
) BracketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bracketService{
		tournamentRepo: tournamentRepo,
		gameRepo:       gameRepo,
		seedingRepo:    seedingRepo,
		fixtures:       fixtures,
		hub:            hub,
		engine:         brackets.NewEngine(logger),
		logger:         logger,
	}
}

// snapshot is everything read from storage for one resolution.
type snapshot struct {
	tournament *models.Tournament
	games      []*models.Game
	seeding    *models.CustomSeeding
}

func (s *bracketService) loadSnapshot(ctx context.Context, tournamentID int, withSeeding bool) (*snapshot, error) {
	snap := &snapshot{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gCtx, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		snap.tournament = t
		return nil
	})

	g.Go(func() error {
		games, err := s.gameRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load games for tournament %d: %w", tournamentID, err)
		}
		snap.games = games
		return nil
	})

	if withSeeding {
		g.Go(func() error {
			seeding, err := s.seedingRepo.Get(gCtx, tournamentID)
			if err != nil {
				if errors.Is(err, repositories.ErrSeedingNotFound) {
					return nil
				}
				return fmt.Errorf("failed to load custom seeding for tournament %d: %w", tournamentID, err)
			}
			snap.seeding = seeding
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// template loads the tournament's playoff layout. Hosts stored on the
// tournament win over the hosts of the default layout.
func (s *bracketService) template(ctx context.Context, t *models.Tournament) *brackets.Template {
	key := ""
	if t.FixtureKey != nil {
		key = *t.FixtureKey
	}
	tmpl := brackets.LoadTemplate(ctx, s.fixtures, key, s.logger.With(slog.Int("tournament_id", t.ID)))
	if len(t.HostCodes) > 0 && (tmpl.IsDefault || len(tmpl.Hosts) == 0) {
		tmpl.Hosts = slices.Clone(t.HostCodes)
	}
	return tmpl
}

func (s *bracketService) resolve(ctx context.Context, snap *snapshot, seeding *models.CustomSeeding) *brackets.Result {
	return s.engine.Resolve(brackets.Input{
		Games:         snap.games,
		Membership:    groupsFromGames(snap.games),
		Template:      s.template(ctx, snap.tournament),
		CustomSeeding: seeding,
	})
}

func (s *bracketService) GetBracket(ctx context.Context, tournamentID int) (*brackets.Result, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID, true)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, snap, snap.seeding), nil
}

func (s *bracketService) GetStandings(ctx context.Context, tournamentID int) (brackets.GroupTables, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID, false)
	if err != nil {
		return nil, err
	}
	return brackets.CalculateGroupStandings(snap.games, groupsFromGames(snap.games), s.logger), nil
}

func (s *bracketService) GetCustomSeeding(ctx context.Context, tournamentID int) (*models.CustomSeeding, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err)
	}
	seeding, err := s.seedingRepo.Get(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return seeding, nil
}

func (s *bracketService) SetCustomSeeding(ctx context.Context, tournamentID int, seeding models.CustomSeeding) (*brackets.Result, error) {
	seeding = normalizeSeeding(seeding)
	if err := checkSeedingCodes(seeding); err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx, tournamentID, false)
	if err != nil {
		return nil, err
	}

	current := s.resolve(ctx, snap, nil)
	if err := checkSeedingAgainstBracket(seeding, current); err != nil {
		return nil, err
	}

	if err := s.seedingRepo.Upsert(ctx, nil, tournamentID, seeding); err != nil {
		return nil, handleRepositoryError(err)
	}
	log.Printf("Custom seeding saved for tournament %d: %v", tournamentID, seeding.Codes())

	result := s.resolve(ctx, snap, &seeding)
	s.broadcast(tournamentID, brackets.MessageBracketUpdated, result)
	return result, nil
}

func (s *bracketService) ClearCustomSeeding(ctx context.Context, tournamentID int) (*brackets.Result, error) {
	if err := s.seedingRepo.Delete(ctx, nil, tournamentID); err != nil {
		return nil, handleRepositoryError(err)
	}
	snap, err := s.loadSnapshot(ctx, tournamentID, false)
	if err != nil {
		return nil, err
	}
	result := s.resolve(ctx, snap, nil)
	s.broadcast(tournamentID, brackets.MessageSeedingCleared, result)
	return result, nil
}

func (s *bracketService) UploadFixture(ctx context.Context, tournamentID int, r io.Reader) (*brackets.Template, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxFixtureSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture descriptor: %w", err)
	}
	if len(raw) > maxFixtureSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidFixture, maxFixtureSize)
	}
	tmpl, err := brackets.ParseTemplate(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err)
	}

	key := fmt.Sprintf("tournaments/%d/fixture-%s.json", tournamentID, uuid.NewString())
	if err := s.fixtures.Put(ctx, key, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to store fixture descriptor: %w", err)
	}
	if err := s.tournamentRepo.UpdateFixtureKey(ctx, nil, tournamentID, &key); err != nil {
		return nil, handleRepositoryError(err)
	}
	s.logger.Info("fixture descriptor stored",
		slog.Int("tournament_id", tournamentID), slog.String("fixture_key", key),
		slog.Any("quarterfinals", tmpl.QuarterfinalGames), slog.Any("semifinals", tmpl.SemifinalGames))

	if result, err := s.GetBracket(ctx, tournamentID); err == nil {
		s.broadcast(tournamentID, brackets.MessageBracketUpdated, result)
	} else {
		s.logger.Warn("bracket not re-resolved after fixture upload", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
	}
	return tmpl, nil
}

// PreviewSchedule lays out the schedule implied by the tournament's groups
// and playoff template. Nothing is stored.
func (s *bracketService) PreviewSchedule(ctx context.Context, tournamentID int) ([]*models.Game, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID, false)
	if err != nil {
		return nil, err
	}
	tmpl := s.template(ctx, snap.tournament)
	groups := groupsFromGames(snap.games)

	schedule := make([]*models.Game, 0)
	if len(groups) > 0 {
		prelims, err := brackets.NewGroupStageGenerator().Generate(ctx, brackets.GenerateScheduleParams{
			TournamentID: tournamentID,
			Groups:       groups,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		schedule = append(schedule, prelims...)
	}

	playoffs, err := brackets.NewPlayoffSkeletonGenerator().Generate(ctx, brackets.GenerateScheduleParams{
		TournamentID: tournamentID,
		Groups:       groups,
		Template:     tmpl,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return append(schedule, playoffs...), nil
}

func (s *bracketService) broadcast(tournamentID int, kind string, result *brackets.Result) {
	if s.hub == nil {
		return
	}
	room := strconv.Itoa(tournamentID)
	s.hub.BroadcastToRoom(room, brackets.WebSocketMessage{Type: kind, Payload: result, RoomID: room})
}

// groupsFromGames collects each group's team codes from the preliminary
// games, sorted by code.
func groupsFromGames(games []*models.Game) map[string][]string {
	seen := make(map[string]map[string]bool)
	for _, g := range games {
		if g == nil || g.Group == nil || !models.IsPreliminaryRound(g.Round) {
			continue
		}
		group := brackets.NormalizeGroup(*g.Group)
		if group == "" {
			continue
		}
		if seen[group] == nil {
			seen[group] = make(map[string]bool)
		}
		for _, code := range []string{g.Team1Code, g.Team2Code} {
			if brackets.IsCodeFinal(code) {
				seen[group][code] = true
			}
		}
	}
	groups := make(map[string][]string, len(seen))
	for group, codes := range seen {
		list := make([]string, 0, len(codes))
		for code := range codes {
			list = append(list, code)
		}
		sort.Strings(list)
		groups[group] = list
	}
	return groups
}
