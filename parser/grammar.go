package parser

import (
	"errors"
	"strconv"

	"github.com/shibukawa/crntext"
	tok "github.com/shibukawa/crntext/tokenizer"
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shopspring/decimal"
)

// Composite productions. One species term is an identifier with an optional
// integer multiplier before it; rate clauses are shaped by the arrow kind.
var (
	speciesTerm = pc.Or(pc.Seq(number, identifier), identifier)
	plusSpecies = pc.Seq(plus, speciesTerm)

	rateClauseK   = pc.Seq(bracketOpen, slotK, equal, number, bracketClose)
	rateClauseRev = pc.Seq(bracketOpen, slotKf, equal, number, comma, slotKr, equal, number, bracketClose)

	declarationHead = pc.Seq(categoryKeyword, equal, braceOpen)
	commaIdentifier = pc.Seq(comma, identifier)
)

// parseDocument parses a whole token stream into the ordered record
// sequence: one or more reaction modules, then zero or more category
// declarations, then end of input. Anything left over is a syntax error.
func parseDocument(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) ([]record, error) {
	records := make([]record, 0, 8)
	pos := skipNewlines(pctx, tokens, 0)
	module := 0

	for {
		consumed, rec, err := parseReaction(pctx, tokens[pos:])
		if errors.Is(err, pc.ErrNotMatch) {
			break
		} else if err != nil {
			return nil, err
		}

		rec.module = module
		records = append(records, rec)
		pos += consumed

		// Reactions chained with ';' belong to the same module. A ';' not
		// followed by a reaction is left alone: a category declaration may
		// start with one.
		for {
			c, _, err := semicolon(pctx, tokens[pos:])
			if err != nil {
				break
			}

			consumed, rec, err := parseReaction(pctx, tokens[pos+c:])
			if errors.Is(err, pc.ErrNotMatch) {
				break
			} else if err != nil {
				return nil, err
			}

			rec.module = module
			records = append(records, rec)
			pos += c + consumed
		}

		module++
		pos = skipNewlines(pctx, tokens, pos)
	}

	if module == 0 {
		return nil, syntaxErrorAt(tokens, pos, "expected at least one reaction")
	}

	for {
		pos = skipNewlines(pctx, tokens, pos)

		consumed, decl, err := parseDeclaration(pctx, tokens[pos:])
		if errors.Is(err, pc.ErrNotMatch) {
			break
		} else if err != nil {
			return nil, err
		}

		records = append(records, decl)
		pos += consumed
	}

	if pos < len(tokens) {
		return nil, syntaxErrorAt(tokens, pos, "unparsed trailing input")
	}

	return records, nil
}

// parseReaction parses one reaction. It reports pc.ErrNotMatch only when no
// species and no arrow were found, so callers can probe for "is there
// another reaction here" without consuming anything.
func parseReaction(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, *reactionRecord, error) {
	offset, reactants, err := parseSpeciesList(pctx, tokens)
	if err != nil {
		return 0, nil, err
	}

	var kind crntext.Kind

	if c, _, err := irrevArrow(pctx, tokens[offset:]); err == nil {
		kind = crntext.KindIrreversible
		offset += c
	} else if c, _, err := revArrow(pctx, tokens[offset:]); err == nil {
		kind = crntext.KindReversible
		offset += c
	} else {
		if len(reactants) == 0 {
			return 0, nil, pc.ErrNotMatch
		}

		return 0, nil, syntaxErrorAt(tokens, offset, "expected '->' or '<=>' after species list")
	}

	rec := &reactionRecord{
		kind:      kind,
		reactants: reactants,
		pos:       tokens[0].Val.Position,
	}

	consumed, products, err := parseSpeciesList(pctx, tokens[offset:])
	if err != nil {
		return 0, nil, err
	}

	rec.products = products
	offset += consumed

	consumed, err = parseRateClause(pctx, tokens[offset:], rec)
	if err != nil {
		return 0, nil, err
	}

	offset += consumed

	return offset, rec, nil
}

// parseRateClause parses the optional bracketed rate clause behind a
// reaction and fills the record's rate slots. The clause shape is bound to
// the arrow: "->" takes [k = r], "<=>" takes [kf = r, kr = r]. A bracket
// that does not complete the matching shape is a hard failure, including the
// reversed combinations.
func parseRateClause(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token], rec *reactionRecord) (int, error) {
	clause := rateClauseK
	if rec.kind == crntext.KindReversible {
		clause = rateClauseRev
	}

	consumed, match, err := clause(pctx, tokens)
	if err != nil {
		if _, _, err := bracketOpen(pctx, tokens); err == nil {
			if rec.kind == crntext.KindReversible {
				return 0, syntaxErrorAt(tokens, 0, "malformed rate clause for reversible reaction: want [kf = <rate>, kr = <rate>]")
			}

			return 0, syntaxErrorAt(tokens, 0, "malformed rate clause for irreversible reaction: want [k = <rate>]")
		}

		// no rate clause at all; the slots stay unspecified
		return 0, nil
	}

	rec.rate, err = rateFrom(match[3])
	if err != nil {
		return 0, err
	}

	if rec.kind == crntext.KindReversible {
		rec.rateBack, err = rateFrom(match[7])
		if err != nil {
			return 0, err
		}
	}

	return consumed, nil
}

// parseSpeciesList parses zero or more '+'-separated species references.
// An empty list is legal: it is the empty side of a pure production or
// decay reaction.
func parseSpeciesList(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []speciesRef, error) {
	consumed, match, err := speciesTerm(pctx, tokens)
	if err != nil {
		return 0, nil, nil
	}

	ref, err := toSpeciesRef(match)
	if err != nil {
		return 0, nil, err
	}

	refs := []speciesRef{ref}
	offset := consumed

	for {
		consumed, match, err := plusSpecies(pctx, tokens[offset:])
		if err != nil {
			break
		}

		ref, err := toSpeciesRef(match[1:])
		if err != nil {
			return 0, nil, err
		}

		refs = append(refs, ref)
		offset += consumed
	}

	return offset, refs, nil
}

// toSpeciesRef converts a matched species term (identifier, optionally
// preceded by a number token) into a speciesRef. The multiplier must be an
// unsigned integer; a fractional number in multiplier position is malformed.
func toSpeciesRef(match []pc.Token[tok.Token]) (speciesRef, error) {
	if len(match) == 1 {
		return speciesRef{count: 1, name: match[0].Val.Value}, nil
	}

	count, err := strconv.Atoi(match[0].Val.Value)
	if err != nil {
		return speciesRef{}, &SyntaxError{
			Pos:     match[0].Val.Position,
			Message: "species multiplier must be an unsigned integer, got " + strconv.Quote(match[0].Val.Value),
		}
	}

	return speciesRef{count: count, name: match[1].Val.Value}, nil
}

// parseDeclaration parses one "formals/signals/fuels = { id, ... }" block,
// optionally preceded by a ';'. The identifier list may be empty.
func parseDeclaration(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, *declarationRecord, error) {
	offset := 0
	if c, _, err := semicolon(pctx, tokens); err == nil {
		offset = c
	}

	consumed, match, err := declarationHead(pctx, tokens[offset:])
	if err != nil {
		return 0, nil, pc.ErrNotMatch
	}

	keyword := match[0].Val
	offset += consumed

	decl := &declarationRecord{
		category: categoryOf(keyword.Type),
		pos:      keyword.Position,
	}

	if c, m, err := identifier(pctx, tokens[offset:]); err == nil {
		decl.species = append(decl.species, m[0].Val.Value)
		offset += c

		for {
			c, m, err := commaIdentifier(pctx, tokens[offset:])
			if err != nil {
				break
			}

			decl.species = append(decl.species, m[1].Val.Value)
			offset += c
		}
	}

	c, _, err := braceClose(pctx, tokens[offset:])
	if err != nil {
		return 0, nil, syntaxErrorAt(tokens, offset, "unterminated "+keyword.Value+" set: expected '}'")
	}

	offset += c

	return offset, decl, nil
}

func categoryOf(t tok.TokenType) category {
	switch t {
	case tok.SIGNALS:
		return catSignals
	case tok.FUELS:
		return catFuels
	default:
		return catFormals
	}
}

func skipNewlines(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token], pos int) int {
	for {
		c, _, err := newline(pctx, tokens[pos:])
		if err != nil {
			return pos
		}

		pos += c
	}
}

func rateFrom(token pc.Token[tok.Token]) (crntext.Rate, error) {
	v, err := decimal.NewFromString(token.Val.Value)
	if err != nil {
		return crntext.Rate{}, &SyntaxError{
			Pos:     token.Val.Position,
			Message: "invalid rate literal " + strconv.Quote(token.Val.Value),
		}
	}

	return crntext.RateOf(v), nil
}
