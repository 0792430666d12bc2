// Package parser turns CRN (chemical reaction network) text into the
// finalized crntext.Document: the reaction list plus the formal, signal and
// fuel species sets.
//
// The surface syntax is a small line-oriented language:
//
//	# a comment
//	B + B -> C
//	C + A <=> D   [kf = 1, kr = 1]
//	A + 2 C -> E [k = 13.78]; E + F <=> 2 A [kf = 13, kr = 14]
//	formals = {A, B, C}
//	signals = {A, D}
//	fuels = {}
//
// Parsing is all or nothing: trailing unparsed text fails the whole call,
// and no partial document is ever returned. Every call builds its own
// tokenizer and parse context, so independent calls are safe to run
// concurrently.
package parser

import (
	"fmt"
	"os"

	"github.com/shibukawa/crntext"
	tok "github.com/shibukawa/crntext/tokenizer"
	pc "github.com/shibukawa/parsercombinator"
)

// SyntaxError reports text that does not match the CRN grammar, with the
// position of the offending token.
type SyntaxError struct {
	Pos     tok.Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return crntext.ErrSyntax
}

// syntaxErrorAt builds a SyntaxError pointing at tokens[pos], or at the end
// of input when the stream is exhausted.
func syntaxErrorAt(tokens []pc.Token[tok.Token], pos int, message string) error {
	if pos < len(tokens) {
		t := tokens[pos].Val

		return &SyntaxError{Pos: t.Position, Message: message + ", got " + t.String()}
	}

	var p tok.Position
	if len(tokens) > 0 {
		p = tokens[len(tokens)-1].Val.Position
	}

	return &SyntaxError{Pos: p, Message: message + ", got end of input"}
}

// Parse parses a CRN document from a string and returns the finalized
// document: reactions in declaration order and the sorted formal, signal
// and fuel species sets.
func Parse(src string) (*crntext.Document, error) {
	return parse(src, false)
}

// ParseModular parses like Parse but additionally groups the reactions into
// modules, one per ';'-separated reaction chain, in Document.Modules. The
// lexical rules are identical.
func ParseModular(src string) (*crntext.Document, error) {
	return parse(src, true)
}

// ParseFile reads path and parses its full contents as one CRN document.
func ParseFile(path string) (*crntext.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parse(string(data), false)
}

func parse(src string, modular bool) (*crntext.Document, error) {
	tokens, err := tok.Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crntext.ErrSyntax, err)
	}

	pctx := pc.NewParseContext[tok.Token]()

	records, err := parseDocument(pctx, toParserTokens(tokens))
	if err != nil {
		return nil, err
	}

	return postProcess(records, modular)
}
