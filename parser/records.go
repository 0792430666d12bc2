package parser

import (
	"github.com/shibukawa/crntext"
	tok "github.com/shibukawa/crntext/tokenizer"
)

// record is one entry of the parse record sequence the grammar hands to the
// post-processor: either a reaction or a species category declaration, in
// document order.
type record interface {
	recordPos() tok.Position
}

// speciesRef is a species occurrence before multiplicity expansion:
// "2 C" is {count: 2, name: "C"}, a bare "C" is {count: 1, name: "C"}.
type speciesRef struct {
	count int
	name  string
}

// reactionRecord is a reaction as parsed, with multiplicities still folded.
// The variant is decided by which arrow token matched; rate slots that were
// not written stay unspecified.
type reactionRecord struct {
	kind      crntext.Kind
	reactants []speciesRef
	products  []speciesRef
	rate      crntext.Rate // k (irreversible) or kf (reversible)
	rateBack  crntext.Rate // kr, reversible only
	module    int          // index of the ';'-chain this reaction belongs to
	pos       tok.Position
}

func (r *reactionRecord) recordPos() tok.Position { return r.pos }

// category identifies one of the three species declaration blocks.
type category int

const (
	catFormals category = iota
	catSignals
	catFuels
)

// declarationRecord is a "formals/signals/fuels = { ... }" block.
type declarationRecord struct {
	category category
	species  []string
	pos      tok.Position
}

func (d *declarationRecord) recordPos() tok.Position { return d.pos }
