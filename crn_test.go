package crntext

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestRateString(t *testing.T) {
	assert.Equal(t, "?", UnspecifiedRate().String())
	assert.Equal(t, "13.78", RateOf(decimal.RequireFromString("13.78")).String())
	assert.Equal(t, "0", RateOf(decimal.Zero).String())
}

func TestReactionString(t *testing.T) {
	tests := []struct {
		name     string
		reaction Reaction
		want     string
	}{
		{
			name:     "irreversible without rate",
			reaction: &Irreversible{Reactants: []string{"B", "B"}, Products: []string{"C"}},
			want:     "2 B -> C",
		},
		{
			name: "irreversible with rate",
			reaction: &Irreversible{
				Reactants: []string{"A", "C", "C"},
				Products:  []string{"E"},
				Rate:      RateOf(decimal.RequireFromString("13.78")),
			},
			want: "A + 2 C -> E [k = 13.78]",
		},
		{
			name: "reversible with rates",
			reaction: &Reversible{
				Reactants:    []string{"C", "A"},
				Products:     []string{"D"},
				RateForward:  RateOf(decimal.RequireFromString("1")),
				RateBackward: RateOf(decimal.RequireFromString("1")),
			},
			want: "C + A <=> D [kf = 1, kr = 1]",
		},
		{
			name:     "empty reactant side",
			reaction: &Reversible{Products: []string{"A"}},
			want:     "<=> A",
		},
		{
			name:     "empty product side",
			reaction: &Irreversible{Reactants: []string{"A"}},
			want:     "A ->",
		},
		{
			name:     "nonadjacent duplicates are not compressed",
			reaction: &Irreversible{Reactants: []string{"A", "B", "A"}, Products: []string{"C"}},
			want:     "A + B + A -> C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reaction.String())
		})
	}
}

func TestReactionKind(t *testing.T) {
	assert.Equal(t, KindIrreversible, (&Irreversible{}).Kind())
	assert.Equal(t, KindReversible, (&Reversible{}).Kind())
	assert.Equal(t, "irreversible", KindIrreversible.String())
	assert.Equal(t, "reversible", KindReversible.String())
}

func TestDocumentString(t *testing.T) {
	doc := &Document{
		Reactions: []Reaction{
			&Irreversible{Reactants: []string{"B", "B"}, Products: []string{"C"}},
		},
		FormalSpecies: []string{"B", "C"},
		SignalSpecies: []string{"B", "C"},
	}

	want := "2 B -> C\nformals = {B, C}\nsignals = {B, C}\nfuels = {}\n"
	assert.Equal(t, want, doc.String())
}

func TestConsistencyError(t *testing.T) {
	err := &ConsistencyError{Species: []string{"X", "Y"}}
	assert.Equal(t, "X, Y declared as signal & fuel species", err.Error())
	assert.IsError(t, err, ErrConsistency)
}
