package parser

import (
	"testing"

	"github.com/shibukawa/crntext"
	tok "github.com/shibukawa/crntext/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandMultipliers(t *testing.T) {
	tests := []struct {
		name string
		refs []speciesRef
		want []string
	}{
		{
			name: "implicit count of one",
			refs: []speciesRef{{count: 1, name: "A"}},
			want: []string{"A"},
		},
		{
			name: "count expands in place",
			refs: []speciesRef{{count: 1, name: "A"}, {count: 2, name: "C"}, {count: 1, name: "B"}},
			want: []string{"A", "C", "C", "B"},
		},
		{
			name: "zero count drops the species",
			refs: []speciesRef{{count: 0, name: "A"}, {count: 1, name: "B"}},
			want: []string{"B"},
		},
		{
			name: "empty list stays empty",
			refs: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandMultipliers(tt.refs))
		})
	}
}

func TestPostProcessDeclarationOrderIndependence(t *testing.T) {
	// declarations and reactions accumulate in one sweep, so a formals
	// block before or after a reaction gives the same document
	records := []record{
		&declarationRecord{category: catFormals, species: []string{"Q"}},
		&reactionRecord{
			kind:      crntext.KindIrreversible,
			reactants: []speciesRef{{count: 1, name: "A"}},
			products:  []speciesRef{{count: 1, name: "B"}},
		},
	}

	doc, err := postProcess(records, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "Q"}, doc.FormalSpecies)
	assert.Equal(t, []string{"A", "B", "Q"}, doc.SignalSpecies)
}

func TestPostProcessRejectsUnknownRecords(t *testing.T) {
	t.Run("unknown record type", func(t *testing.T) {
		_, err := postProcess([]record{bogusRecord{}}, false)
		require.ErrorIs(t, err, crntext.ErrFormat)
	})

	t.Run("unknown reaction variant", func(t *testing.T) {
		_, err := postProcess([]record{
			&reactionRecord{kind: crntext.Kind(99)},
		}, false)
		require.ErrorIs(t, err, crntext.ErrFormat)
	})
}

func TestPostProcessConsistency(t *testing.T) {
	records := []record{
		&reactionRecord{
			kind:      crntext.KindIrreversible,
			reactants: []speciesRef{{count: 1, name: "A"}},
			products:  []speciesRef{{count: 1, name: "B"}},
		},
		&declarationRecord{category: catSignals, species: []string{"X"}},
		&declarationRecord{category: catFuels, species: []string{"X"}},
	}

	_, err := postProcess(records, false)
	require.ErrorIs(t, err, crntext.ErrConsistency)

	var consistencyErr *crntext.ConsistencyError
	require.ErrorAs(t, err, &consistencyErr)
	assert.Equal(t, []string{"X"}, consistencyErr.Species)
}

type bogusRecord struct{}

func (bogusRecord) recordPos() tok.Position { return tok.Position{} }
