package brackets

import (
	"fmt"
	"strconv"
	"strings"
)

// OutcomeKind selects which side of a decided game an OutcomeRef points at.
type OutcomeKind int

const (
	Winner OutcomeKind = iota
	Loser
)

func (k OutcomeKind) prefix() string {
	if k == Loser {
		return "L"
	}
	return "W"
}

// Expression is a parsed team reference. The set of implementations is
// closed: SeedRef, OutcomeRef, NamedSlot and Literal.
type Expression interface {
	fmt.Stringer
	expression()
}

// SeedRef is a group rank position such as "A1".
type SeedRef struct {
	Group string
	Rank  int
}

// OutcomeRef is the winner or loser of a game, either by number ("W(57)")
// or through a slot alias ("L(SF1)").
type OutcomeRef struct {
	Kind       OutcomeKind
	GameNumber int
	Slot       string
}

// NamedSlot is a bracket alias such as "SF1", "Q3" or "seed2".
type NamedSlot struct {
	Name string
}

// Literal is a concrete team code, or any token the parser does not know.
type Literal struct {
	Code string
}

func (SeedRef) expression()    {}
func (OutcomeRef) expression() {}
func (NamedSlot) expression()  {}
func (Literal) expression()    {}

func (s SeedRef) String() string { return s.Group + strconv.Itoa(s.Rank) }

func (o OutcomeRef) String() string {
	if o.Slot != "" {
		return o.Kind.prefix() + "(" + o.Slot + ")"
	}
	return o.Kind.prefix() + "(" + strconv.Itoa(o.GameNumber) + ")"
}

func (n NamedSlot) String() string { return n.Name }
func (l Literal) String() string   { return l.Code }

// OutcomeToken formats the placeholder for the winner or loser of a game.
func OutcomeToken(kind OutcomeKind, gameNumber int) string {
	return OutcomeRef{Kind: kind, GameNumber: gameNumber}.String()
}

var namedSlotPrefixes = []string{"seed", "SF", "QF", "Q", "H"}

// ParseExpression turns a raw team ref into an Expression. It never fails:
// anything it does not recognise comes back as a Literal.
func ParseExpression(token string) Expression {
	token = strings.TrimSpace(token)
	if token == "" {
		return Literal{}
	}
	if IsCodeFinal(token) {
		return Literal{Code: token}
	}

	if len(token) > 3 && (token[0] == 'W' || token[0] == 'L') && token[1] == '(' && token[len(token)-1] == ')' {
		kind := Winner
		if token[0] == 'L' {
			kind = Loser
		}
		inner := token[2 : len(token)-1]
		if n, err := strconv.Atoi(inner); err == nil && n > 0 {
			return OutcomeRef{Kind: kind, GameNumber: n}
		}
		if inner != "" && !strings.ContainsAny(inner, "()") {
			return OutcomeRef{Kind: kind, Slot: inner}
		}
		return Literal{Code: token}
	}

	for _, prefix := range namedSlotPrefixes {
		if rest, ok := strings.CutPrefix(token, prefix); ok && isDigits(rest) {
			return NamedSlot{Name: token}
		}
	}

	// A single group letter followed by the rank: "A1", "B12".
	if len(token) >= 2 && token[0] >= 'A' && token[0] <= 'Z' && isDigits(token[1:]) {
		rank, _ := strconv.Atoi(token[1:])
		if rank > 0 {
			return SeedRef{Group: token[:1], Rank: rank}
		}
	}

	return Literal{Code: token}
}

// IsCodeFinal reports whether code is a concrete three-letter team code.
// Anything else is "to be determined" and must not be shown as a team.
func IsCodeFinal(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
