package parser

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shibukawa/crntext"
)

// postProcess normalizes the parse record sequence into the finalized
// document, in one linear sweep over the records in document order:
// category declarations union into their running sets, reactions get their
// multiplicities expanded, and every reactant and product joins the formal
// set whether or not it was declared. Validation happens once at the end.
func postProcess(records []record, modular bool) (*crntext.Document, error) {
	reactions := make([]crntext.Reaction, 0, len(records))

	var modules [][]crntext.Reaction

	formals := map[string]struct{}{}
	signals := map[string]struct{}{}
	fuels := map[string]struct{}{}

	for _, rec := range records {
		switch rec := rec.(type) {
		case *declarationRecord:
			set := formals

			switch rec.category {
			case catSignals:
				set = signals
			case catFuels:
				set = fuels
			}

			for _, name := range rec.species {
				set[name] = struct{}{}
			}
		case *reactionRecord:
			reactants := expandMultipliers(rec.reactants)
			products := expandMultipliers(rec.products)

			for _, name := range reactants {
				formals[name] = struct{}{}
			}
			for _, name := range products {
				formals[name] = struct{}{}
			}

			var reaction crntext.Reaction

			switch rec.kind {
			case crntext.KindIrreversible:
				reaction = &crntext.Irreversible{
					Reactants: reactants,
					Products:  products,
					Rate:      rec.rate,
				}
			case crntext.KindReversible:
				reaction = &crntext.Reversible{
					Reactants:    reactants,
					Products:     products,
					RateForward:  rec.rate,
					RateBackward: rec.rateBack,
				}
			default:
				return nil, fmt.Errorf("%w: unknown reaction variant %v", crntext.ErrFormat, rec.kind)
			}

			reactions = append(reactions, reaction)

			if modular {
				for len(modules) <= rec.module {
					modules = append(modules, nil)
				}

				modules[rec.module] = append(modules[rec.module], reaction)
			}
		default:
			// Contract violation between grammar and post-processor; a
			// conforming grammar never produces this.
			return nil, fmt.Errorf("%w: unexpected record type %T", crntext.ErrFormat, rec)
		}
	}

	// An empty signal set, declared or not, falls back to the full formal
	// set. The fuel set stays empty unless declared.
	if len(signals) == 0 {
		signals = maps.Clone(formals)
	}

	var conflicts []string

	for name := range signals {
		if _, ok := fuels[name]; ok {
			conflicts = append(conflicts, name)
		}
	}

	if len(conflicts) > 0 {
		slices.Sort(conflicts)

		return nil, &crntext.ConsistencyError{Species: conflicts}
	}

	doc := &crntext.Document{
		Reactions:     reactions,
		FormalSpecies: slices.Sorted(maps.Keys(formals)),
		SignalSpecies: slices.Sorted(maps.Keys(signals)),
		FuelSpecies:   slices.Sorted(maps.Keys(fuels)),
	}
	if modular {
		doc.Modules = modules
	}

	return doc, nil
}

// expandMultipliers flattens species references into repeated identifier
// occurrences: {2, "C"} becomes "C", "C". Relative order is preserved.
func expandMultipliers(refs []speciesRef) []string {
	flat := make([]string, 0, len(refs))

	for _, ref := range refs {
		for range ref.count {
			flat = append(flat, ref.name)
		}
	}

	return flat
}
