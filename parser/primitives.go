package parser

import (
	"slices"

	tok "github.com/shibukawa/crntext/tokenizer"
	pc "github.com/shibukawa/parsercombinator"
)

// Primitives
var (
	newline         = primitiveType("newline", tok.NEWLINE)
	identifier      = primitiveType("identifier", tok.IDENTIFIER)
	number          = primitiveType("number", tok.NUMBER)
	plus            = primitiveType("plus", tok.PLUS)
	comma           = primitiveType("comma", tok.COMMA)
	semicolon       = primitiveType("semicolon", tok.SEMICOLON)
	equal           = primitiveType("equal", tok.EQUAL)
	irrevArrow      = primitiveType("irrevArrow", tok.IRREV_ARROW)
	revArrow        = primitiveType("revArrow", tok.REV_ARROW)
	bracketOpen     = primitiveType("bracketOpen", tok.OPENED_BRACKET)
	bracketClose    = primitiveType("bracketClose", tok.CLOSED_BRACKET)
	braceOpen       = primitiveType("braceOpen", tok.OPENED_BRACE)
	braceClose      = primitiveType("braceClose", tok.CLOSED_BRACE)
	categoryKeyword = primitiveType("categoryKeyword", tok.FORMALS, tok.SIGNALS, tok.FUELS)
)

// Rate slot names. They are ordinary identifiers, matched by value inside a
// bracketed rate clause only.
var (
	slotK  = word("k")
	slotKf = word("kf")
	slotKr = word("kr")
)

func primitiveType(typeName string, types ...tok.TokenType) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

// word matches an identifier token with the exact (case sensitive) value w.
func word(w string) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && tokens[0].Val.Type == tok.IDENTIFIER && tokens[0].Val.Value == w {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

// toParserTokens converts tokenizer output into parser combinator tokens.
// The EOF marker is dropped; end of input is the end of the slice.
func toParserTokens(tokens []tok.Token) []pc.Token[tok.Token] {
	results := make([]pc.Token[tok.Token], 0, len(tokens))

	for _, token := range tokens {
		if token.Type == tok.EOF {
			continue
		}

		results = append(results, pc.Token[tok.Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: token,
			Raw: token.Value,
		})
	}

	return results
}
