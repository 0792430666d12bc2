package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/crntext"
	tok "github.com/shibukawa/crntext/tokenizer"
	pc "github.com/shibukawa/parsercombinator"
)

func TestParseReactionProbe(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		wantConsumed int
		wantErr      error
	}{
		{
			name:         "plain reaction",
			src:          "A + B -> C",
			wantConsumed: 5,
		},
		{
			name:         "reaction with rate clause",
			src:          "A -> B [k = 1]",
			wantConsumed: 8,
		},
		{
			name:         "empty reactant side",
			src:          "<=> A",
			wantConsumed: 2,
		},
		{
			name:    "not a reaction",
			src:     "formals = {A}",
			wantErr: pc.ErrNotMatch,
		},
		{
			name:    "empty input",
			src:     "",
			wantErr: pc.ErrNotMatch,
		},
		{
			name:    "species without arrow",
			src:     "A + B",
			wantErr: crntext.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tok.Tokenize(tt.src)
			assert.NoError(t, err)

			pctx := pc.NewParseContext[tok.Token]()
			consumed, _, err := parseReaction(pctx, toParserTokens(tokens))
			if tt.wantErr != nil {
				assert.IsError(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantConsumed, consumed)
		})
	}
}

func TestParseDeclarationProbe(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		wantCategory category
		wantSpecies  []string
		wantErr      error
	}{
		{
			name:         "formals",
			src:          "formals = {A, B, C}",
			wantCategory: catFormals,
			wantSpecies:  []string{"A", "B", "C"},
		},
		{
			name:         "empty fuels",
			src:          "fuels = {}",
			wantCategory: catFuels,
			wantSpecies:  nil,
		},
		{
			name:         "leading semicolon",
			src:          "; signals = {X}",
			wantCategory: catSignals,
			wantSpecies:  []string{"X"},
		},
		{
			name:    "not a declaration",
			src:     "A -> B",
			wantErr: pc.ErrNotMatch,
		},
		{
			name:    "case sensitive keyword",
			src:     "Formals = {A}",
			wantErr: pc.ErrNotMatch,
		},
		{
			name:    "unterminated set",
			src:     "formals = {A, B",
			wantErr: crntext.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tok.Tokenize(tt.src)
			assert.NoError(t, err)

			pctx := pc.NewParseContext[tok.Token]()
			_, decl, err := parseDeclaration(pctx, toParserTokens(tokens))
			if tt.wantErr != nil {
				assert.IsError(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCategory, decl.category)
			assert.Equal(t, tt.wantSpecies, decl.species)
		})
	}
}
