package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPreliminaryRound(t *testing.T) {
	tests := []struct {
		round string
		want  bool
	}{
		{"Preliminary Round", true},
		{"Preliminary round", true},
		{"PRELIMINARY ROUND", true},
		{" group stage ", true},
		{"Round Robin", true},
		{"Quarterfinals", false},
		{"Gold Medal Game", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.round, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPreliminaryRound(tt.round))
		})
	}
}

func TestGameHasScore(t *testing.T) {
	one := 1
	assert.False(t, (&Game{}).HasScore())
	assert.False(t, (&Game{Team1Score: &one}).HasScore())
	assert.True(t, (&Game{Team1Score: &one, Team2Score: &one}).HasScore())
}
