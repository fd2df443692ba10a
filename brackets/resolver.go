package brackets

import (
	"math"
	"math/bits"
	"strconv"

	"github.com/Dosada05/championship-tracker/models"
)

// MaxResolveDepth bounds the number of hops a single token may take.
const MaxResolveDepth = 5

// ResolutionMap maps a placeholder token to another token or a team code.
// It is the working state of exactly one resolution run.
type ResolutionMap map[string]string

// Resolver rewrites placeholder tokens into team codes using a
// ResolutionMap and the outcomes of scored games.
type Resolver struct {
	slots    ResolutionMap
	games    map[int]*models.Game
	pinned   map[int][2]string
	parsed   map[string]Expression
	maxDepth int
}

// NewResolver indexes games by number. When a number appears twice the
// game seen last wins.
func NewResolver(slots ResolutionMap, games []*models.Game) *Resolver {
	if slots == nil {
		slots = make(ResolutionMap)
	}
	byNumber := make(map[int]*models.Game, len(games))
	for _, g := range games {
		if g != nil && g.GameNumber != nil {
			byNumber[*g.GameNumber] = g
		}
	}
	return &Resolver{
		slots:    slots,
		games:    byNumber,
		pinned:   make(map[int][2]string),
		parsed:   make(map[string]Expression),
		maxDepth: MaxResolveDepth,
	}
}

// Slots exposes the map the resolver writes into.
func (r *Resolver) Slots() ResolutionMap {
	return r.slots
}

// Game returns the game with the given number, if any.
func (r *Resolver) Game(number int) (*models.Game, bool) {
	g, ok := r.games[number]
	return g, ok
}

// Set stores a slot value and reports whether it changed.
func (r *Resolver) Set(token, value string) bool {
	if token == "" || token == value {
		return false
	}
	if cur, ok := r.slots[token]; ok && cur == value {
		return false
	}
	r.slots[token] = value
	return true
}

// Pin replaces the team refs of game number for the rest of the run.
// Displays and W/L outcomes of that game use the pinned refs.
func (r *Resolver) Pin(number int, ref1, ref2 string) {
	r.pinned[number] = [2]string{ref1, ref2}
}

// Refs returns the effective team refs of a game.
func (r *Resolver) Refs(g *models.Game) (string, string) {
	if g.GameNumber != nil {
		if p, ok := r.pinned[*g.GameNumber]; ok {
			return p[0], p[1]
		}
	}
	return g.Team1Code, g.Team2Code
}

func (r *Resolver) parse(token string) Expression {
	if e, ok := r.parsed[token]; ok {
		return e
	}
	e := ParseExpression(token)
	r.parsed[token] = e
	return e
}

// Resolve follows token through the map and through decided games. It
// returns the most concrete value reachable within MaxResolveDepth hops;
// a token that cannot be resolved yet comes back unchanged.
func (r *Resolver) Resolve(token string) string {
	current := token
	for hop := 0; hop < r.maxDepth; hop++ {
		if next, ok := r.slots[current]; ok {
			if next == current {
				return current
			}
			current = next
			continue
		}

		ref, ok := r.parse(current).(OutcomeRef)
		if !ok {
			return current
		}
		if ref.Slot != "" {
			target, ok := r.slots[ref.Slot]
			if !ok {
				return current
			}
			if IsCodeFinal(target) {
				return target
			}
			n, err := strconv.Atoi(target)
			if err != nil || n <= 0 {
				return current
			}
			current = OutcomeToken(ref.Kind, n)
			continue
		}

		next, ok := r.rawOutcome(ref)
		if !ok || next == current {
			return current
		}
		current = next
	}
	return current
}

// rawOutcome returns the stored ref of the winning or losing side of a
// scored game, before any further resolution.
func (r *Resolver) rawOutcome(ref OutcomeRef) (string, bool) {
	g, ok := r.games[ref.GameNumber]
	if !ok || !g.HasScore() || *g.Team1Score == *g.Team2Score {
		return "", false
	}
	ref1, ref2 := r.Refs(g)
	winner, loser := ref1, ref2
	if *g.Team2Score > *g.Team1Score {
		winner, loser = ref2, ref1
	}
	if ref.Kind == Winner {
		return winner, true
	}
	return loser, true
}

// PassCap derives the pass limit from bracket depth: ceil(log2(teams)) + 2,
// never fewer than three passes.
func PassCap(teamCount int) int {
	depth := 0
	if teamCount > 1 {
		depth = bits.Len(uint(teamCount - 1))
	}
	return int(math.Max(3, float64(depth+2)))
}

// PropagationStats describes one call to Propagate.
type PropagationStats struct {
	Passes    int
	Changes   int
	Converged bool
}

// Propagate runs full passes over the games until a pass changes nothing
// or passCap passes have run. Each pass re-resolves both refs of every
// game and records W(n)/L(n) for every scored playoff game whose two
// sides are concrete.
func (r *Resolver) Propagate(displays []*models.GameDisplay, passCap int) PropagationStats {
	var stats PropagationStats
	for stats.Passes < passCap {
		stats.Passes++
		changes := r.pass(displays)
		stats.Changes += changes
		if changes == 0 {
			stats.Converged = true
			break
		}
	}
	return stats
}

func (r *Resolver) pass(displays []*models.GameDisplay) int {
	changes := 0
	for _, d := range displays {
		ref1, ref2 := r.Refs(&d.Game)
		t1, t2 := r.Resolve(ref1), r.Resolve(ref2)
		if d.Team1Display != t1 {
			d.Team1Display = t1
			changes++
		}
		if d.Team2Display != t2 {
			d.Team2Display = t2
			changes++
		}

		if models.IsPreliminaryRound(d.Round) || d.GameNumber == nil || !d.HasScore() {
			continue
		}
		if !IsCodeFinal(t1) || !IsCodeFinal(t2) || *d.Team1Score == *d.Team2Score {
			continue
		}
		if !r.isIndexed(&d.Game) {
			// duplicate number, an earlier game lost to the last-seen one
			continue
		}
		winner, loser := t1, t2
		if *d.Team2Score > *d.Team1Score {
			winner, loser = t2, t1
		}
		if r.Set(OutcomeToken(Winner, *d.GameNumber), winner) {
			changes++
		}
		if r.Set(OutcomeToken(Loser, *d.GameNumber), loser) {
			changes++
		}
	}
	return changes
}

func (r *Resolver) isIndexed(g *models.Game) bool {
	indexed, ok := r.games[*g.GameNumber]
	if !ok {
		return false
	}
	return indexed == g || (indexed.ID != 0 && indexed.ID == g.ID)
}

// NewDisplays copies games into display rows with empty display codes.
func NewDisplays(games []*models.Game) []*models.GameDisplay {
	displays := make([]*models.GameDisplay, 0, len(games))
	for _, g := range games {
		if g == nil {
			continue
		}
		displays = append(displays, &models.GameDisplay{Game: *g})
	}
	return displays
}

// GamesOf returns pointers to the games embedded in displays, so a resolver
// built from them shares identity with the display rows.
func GamesOf(displays []*models.GameDisplay) []*models.Game {
	games := make([]*models.Game, len(displays))
	for i, d := range displays {
		games[i] = &d.Game
	}
	return games
}
