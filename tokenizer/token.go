package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrInvalidNumber       = errors.New("invalid number format")
	ErrIncompleteArrow     = errors.New("incomplete reaction arrow")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF        TokenType = iota
	WHITESPACE           // spaces and tabs, never newlines
	NEWLINE              // line break, a significant separator in CRN documents
	LINE_COMMENT         // # comment to end of line
	IDENTIFIER           // species names and the rate slot names k, kf, kr
	NUMBER               // multipliers and rate literals (1, 13.78, 1e-3)

	// Operators
	PLUS           // +
	COMMA          // ,
	SEMICOLON      // ;
	EQUAL          // =
	IRREV_ARROW    // ->
	REV_ARROW      // <=>
	OPENED_BRACKET // [
	CLOSED_BRACKET // ]
	OPENED_BRACE   // {
	CLOSED_BRACE   // }

	// Reserved category keywords
	FORMALS // formals
	SIGNALS // signals
	FUELS   // fuels
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case NEWLINE:
		return "NEWLINE"
	case LINE_COMMENT:
		return "LINE_COMMENT"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case PLUS:
		return "PLUS"
	case COMMA:
		return "COMMA"
	case SEMICOLON:
		return "SEMICOLON"
	case EQUAL:
		return "EQUAL"
	case IRREV_ARROW:
		return "IRREV_ARROW"
	case REV_ARROW:
		return "REV_ARROW"
	case OPENED_BRACKET:
		return "OPENED_BRACKET"
	case CLOSED_BRACKET:
		return "CLOSED_BRACKET"
	case OPENED_BRACE:
		return "OPENED_BRACE"
	case CLOSED_BRACE:
		return "CLOSED_BRACE"
	case FORMALS:
		return "FORMALS"
	case SIGNALS:
		return "SIGNALS"
	case FUELS:
		return "FUELS"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source text
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}

// getKeywordTokenType returns the TokenType corresponding to a reserved
// category keyword. The keywords are case sensitive; "Formals" is a species
// name, "formals" is not.
func getKeywordTokenType(word string) TokenType {
	switch word {
	case "formals":
		return FORMALS
	case "signals":
		return SIGNALS
	case "fuels":
		return FUELS
	default:
		return IDENTIFIER
	}
}
