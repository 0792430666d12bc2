package crntext

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Rate is a single kinetic rate slot of a reaction. A reaction written
// without a rate clause keeps Specified == false; this is distinct from a
// rate given as zero.
type Rate struct {
	Value     decimal.Decimal `yaml:"value"`
	Specified bool            `yaml:"specified"`
}

// RateOf returns a specified rate carrying v.
func RateOf(v decimal.Decimal) Rate {
	return Rate{Value: v, Specified: true}
}

// UnspecifiedRate returns the marker for a rate that was not given.
func UnspecifiedRate() Rate {
	return Rate{}
}

// String returns the rate literal, or "?" when the rate was not given.
func (r Rate) String() string {
	if !r.Specified {
		return "?"
	}

	return r.Value.String()
}

// Kind discriminates the two reaction variants.
type Kind int

const (
	KindIrreversible Kind = iota
	KindReversible
)

func (k Kind) String() string {
	switch k {
	case KindIrreversible:
		return "irreversible"
	case KindReversible:
		return "reversible"
	default:
		return "unknown"
	}
}

// Reaction is one stoichiometric reaction. It is a closed sum type with two
// variants, Irreversible and Reversible, decided by which arrow token was
// written in the source. Reactant and product lists are already expanded:
// a multiplier like "2 C" appears as two "C" entries.
type Reaction interface {
	Kind() Kind
	ReactantSpecies() []string
	ProductSpecies() []string
	String() string
}

// Irreversible is a one-way reaction (written with "->") with a single rate
// slot k.
type Irreversible struct {
	Reactants []string `yaml:"reactants"`
	Products  []string `yaml:"products"`
	Rate      Rate     `yaml:"k"`
}

// Kind implements Reaction.
func (r *Irreversible) Kind() Kind { return KindIrreversible }

// ReactantSpecies implements Reaction.
func (r *Irreversible) ReactantSpecies() []string { return r.Reactants }

// ProductSpecies implements Reaction.
func (r *Irreversible) ProductSpecies() []string { return r.Products }

// String renders the reaction in canonical CRN surface syntax.
func (r *Irreversible) String() string {
	s := joinArrow(r.Reactants, "->", r.Products)
	if r.Rate.Specified {
		s += " [k = " + r.Rate.String() + "]"
	}

	return s
}

// MarshalYAML adds the variant kind to the emitted mapping.
func (r *Irreversible) MarshalYAML() (any, error) {
	return struct {
		Kind      string   `yaml:"kind"`
		Reactants []string `yaml:"reactants"`
		Products  []string `yaml:"products"`
		Rate      Rate     `yaml:"k"`
	}{r.Kind().String(), r.Reactants, r.Products, r.Rate}, nil
}

// Reversible is a two-way reaction (written with "<=>") with forward and
// backward rate slots kf and kr.
type Reversible struct {
	Reactants    []string `yaml:"reactants"`
	Products     []string `yaml:"products"`
	RateForward  Rate     `yaml:"kf"`
	RateBackward Rate     `yaml:"kr"`
}

// Kind implements Reaction.
func (r *Reversible) Kind() Kind { return KindReversible }

// ReactantSpecies implements Reaction.
func (r *Reversible) ReactantSpecies() []string { return r.Reactants }

// ProductSpecies implements Reaction.
func (r *Reversible) ProductSpecies() []string { return r.Products }

// String renders the reaction in canonical CRN surface syntax.
func (r *Reversible) String() string {
	s := joinArrow(r.Reactants, "<=>", r.Products)
	if r.RateForward.Specified || r.RateBackward.Specified {
		s += " [kf = " + r.RateForward.String() + ", kr = " + r.RateBackward.String() + "]"
	}

	return s
}

// MarshalYAML adds the variant kind to the emitted mapping.
func (r *Reversible) MarshalYAML() (any, error) {
	return struct {
		Kind      string   `yaml:"kind"`
		Reactants []string `yaml:"reactants"`
		Products  []string `yaml:"products"`
		Forward   Rate     `yaml:"kf"`
		Backward  Rate     `yaml:"kr"`
	}{r.Kind().String(), r.Reactants, r.Products, r.RateForward, r.RateBackward}, nil
}

var (
	_ Reaction = (*Irreversible)(nil)
	_ Reaction = (*Reversible)(nil)
)

// joinArrow renders both sides of a reaction around the arrow, compressing
// runs of the same species back into multiplier notation.
func joinArrow(reactants []string, arrow string, products []string) string {
	left := joinSpecies(reactants)
	right := joinSpecies(products)

	switch {
	case left == "" && right == "":
		return arrow
	case left == "":
		return arrow + " " + right
	case right == "":
		return left + " " + arrow
	default:
		return left + " " + arrow + " " + right
	}
}

func joinSpecies(species []string) string {
	terms := make([]string, 0, len(species))

	for i := 0; i < len(species); {
		run := 1
		for i+run < len(species) && species[i+run] == species[i] {
			run++
		}

		if run > 1 {
			terms = append(terms, strconv.Itoa(run)+" "+species[i])
		} else {
			terms = append(terms, species[i])
		}

		i += run
	}

	return strings.Join(terms, " + ")
}

// Document is the finalized CRN: the reaction list in declaration order and
// the three species sets, each sorted for determinism. It is built once per
// parse call and not mutated afterwards.
type Document struct {
	Reactions []Reaction `yaml:"reactions"`

	// Modules groups the reactions by input line when the document was
	// parsed in modular mode. Nil otherwise.
	Modules [][]Reaction `yaml:"modules,omitempty"`

	FormalSpecies []string `yaml:"formals"`
	SignalSpecies []string `yaml:"signals"`
	FuelSpecies   []string `yaml:"fuels"`
}

// String renders the whole document in canonical CRN surface syntax.
func (d *Document) String() string {
	var sb strings.Builder
	for _, r := range d.Reactions {
		sb.WriteString(r.String())
		sb.WriteString("\n")
	}

	sb.WriteString("formals = {" + strings.Join(d.FormalSpecies, ", ") + "}\n")
	sb.WriteString("signals = {" + strings.Join(d.SignalSpecies, ", ") + "}\n")
	sb.WriteString("fuels = {" + strings.Join(d.FuelSpecies, ", ") + "}\n")

	return sb.String()
}
