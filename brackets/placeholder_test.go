package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		token string
		want  Expression
	}{
		{"CAN", Literal{Code: "CAN"}},
		{" SWE ", Literal{Code: "SWE"}},
		{"", Literal{}},
		{"A1", SeedRef{Group: "A", Rank: 1}},
		{"B12", SeedRef{Group: "B", Rank: 12}},
		{"W(57)", OutcomeRef{Kind: Winner, GameNumber: 57}},
		{"L(61)", OutcomeRef{Kind: Loser, GameNumber: 61}},
		{"W(SF1)", OutcomeRef{Kind: Winner, Slot: "SF1"}},
		{"L(SF2)", OutcomeRef{Kind: Loser, Slot: "SF2"}},
		{"W()", Literal{Code: "W()"}},
		{"W(0)", OutcomeRef{Kind: Winner, Slot: "0"}},
		{"Q1", NamedSlot{Name: "Q1"}},
		{"seed3", NamedSlot{Name: "seed3"}},
		{"SF2", NamedSlot{Name: "SF2"}},
		{"H1", NamedSlot{Name: "H1"}},
		{"A0", Literal{Code: "A0"}},
		{"TBD", Literal{Code: "TBD"}},
		{"Winner 57", Literal{Code: "Winner 57"}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := ParseExpression(tt.token)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpressionString(t *testing.T) {
	for _, token := range []string{"A1", "W(57)", "L(SF1)", "Q4", "CAN"} {
		assert.Equal(t, token, ParseExpression(token).String())
	}
	assert.Equal(t, "L(63)", OutcomeToken(Loser, 63))
	assert.Equal(t, "W(64)", OutcomeToken(Winner, 64))
}

func TestIsCodeFinal(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"CAN", true},
		{"SWE", true},
		{"can", false},
		{"CA", false},
		{"CANA", false},
		{"L(61)", false},
		{"A1", false},
		{"Q1", false},
		{"", false},
		{"ÅLA", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCodeFinal(tt.code), "code %q", tt.code)
	}
}
