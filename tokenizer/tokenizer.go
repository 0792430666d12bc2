package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
)

// TokenIterator uses the Go 1.23 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// CrnTokenizer is a tokenizer for CRN documents that returns an iterator
type CrnTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer. They are held by the
// tokenizer instance, so two concurrent parses can never observe each
// other's whitespace settings. NEWLINE tokens are always emitted: line
// breaks separate reactions from category declarations and are structural,
// not skippable whitespace.
type TokenizerOptions struct {
	SkipWhitespace bool
	SkipComments   bool
}

// NewCrnTokenizer creates a new CrnTokenizer
func NewCrnTokenizer(input string, options ...TokenizerOptions) *CrnTokenizer {
	opts := TokenizerOptions{
		SkipWhitespace: false,
		SkipComments:   false,
	}
	if len(options) > 0 {
		opts = options[0]
	}

	return &CrnTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens
func (t *CrnTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:    t.input,
			position: 0,
			line:     1,
			column:   1,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				if !yield(Token{}, err) {
					return
				}
				continue
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			// Filtering based on options
			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}
			if t.options.SkipComments && token.Type == LINE_COMMENT {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *CrnTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)
	var lastError error

	for token, err := range t.Tokens() {
		if err != nil {
			lastError = err
			continue
		}
		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, lastError
}

// Tokenize returns the structural tokens of src: whitespace and comments
// are dropped, newlines are kept. This is the token stream the CRN grammar
// consumes.
func Tokenize(src string) ([]Token, error) {
	t := NewCrnTokenizer(src, TokenizerOptions{
		SkipWhitespace: true,
		SkipComments:   true,
	})

	return t.AllTokens()
}

// Internal tokenizer implementation
type tokenizer struct {
	input      string
	position   int
	line       int
	column     int
	lastColumn int
	current    rune
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	switch t.current {
	case 0:
		return t.newToken(EOF, ""), nil
	case '\n':
		// readChar already advanced the line counter when it consumed the
		// newline, so the position is reconstructed from the previous line.
		token := Token{
			Type:  NEWLINE,
			Value: "\n",
			Position: Position{
				Line:   t.line - 1,
				Column: t.lastColumn,
				Offset: t.position - 1,
			},
		}
		t.readChar()
		return token, nil
	case ' ', '\t', '\r':
		return t.readWhitespace(), nil
	case '#':
		return t.readLineComment(), nil
	case '+':
		token := t.newToken(PLUS, string(t.current))
		t.readChar()
		return token, nil
	case ',':
		token := t.newToken(COMMA, string(t.current))
		t.readChar()
		return token, nil
	case ';':
		token := t.newToken(SEMICOLON, string(t.current))
		t.readChar()
		return token, nil
	case '=':
		token := t.newToken(EQUAL, string(t.current))
		t.readChar()
		return token, nil
	case '[':
		token := t.newToken(OPENED_BRACKET, string(t.current))
		t.readChar()
		return token, nil
	case ']':
		token := t.newToken(CLOSED_BRACKET, string(t.current))
		t.readChar()
		return token, nil
	case '{':
		token := t.newToken(OPENED_BRACE, string(t.current))
		t.readChar()
		return token, nil
	case '}':
		token := t.newToken(CLOSED_BRACE, string(t.current))
		t.readChar()
		return token, nil
	case '-':
		if t.peekChar() == '>' {
			token := t.newToken(IRREV_ARROW, "->")
			t.readChar()
			t.readChar()
			return token, nil
		}
		err := fmt.Errorf("%w: expected '->' at line %d, column %d", ErrIncompleteArrow, t.line, t.column-1)
		t.readChar()
		return Token{}, err
	case '<':
		if t.peekChar() == '=' && t.peekChar2() == '>' {
			token := t.newToken(REV_ARROW, "<=>")
			t.readChar()
			t.readChar()
			t.readChar()
			return token, nil
		}
		err := fmt.Errorf("%w: expected '<=>' at line %d, column %d", ErrIncompleteArrow, t.line, t.column-1)
		t.readChar()
		return Token{}, err
	default:
		if unicode.IsLetter(t.current) {
			return t.readWord(), nil
		} else if unicode.IsDigit(t.current) {
			return t.readNumber()
		}

		err := fmt.Errorf("%w: %q at line %d, column %d", ErrUnexpectedCharacter, t.current, t.line, t.column-1)
		t.readChar()
		return Token{}, err
	}
}

// readChar reads the next character
func (t *tokenizer) readChar() {
	if t.position >= len(t.input) {
		t.current = 0
		t.position++
		return
	}

	t.current = rune(t.input[t.position])
	t.position++

	if t.current == '\n' {
		t.lastColumn = t.column
		t.line++
		t.column = 1
	} else {
		t.column++
	}
}

// peekChar looks ahead at the next character
func (t *tokenizer) peekChar() rune {
	if t.position >= len(t.input) {
		return 0
	}
	return rune(t.input[t.position])
}

// peekChar2 looks ahead two characters
func (t *tokenizer) peekChar2() rune {
	if t.position+1 >= len(t.input) {
		return 0
	}
	return rune(t.input[t.position+1])
}

// readWhitespace reads a run of spaces and tabs (never newlines)
func (t *tokenizer) readWhitespace() Token {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - 1

	for t.current == ' ' || t.current == '\t' || t.current == '\r' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return Token{
		Type:  WHITESPACE,
		Value: builder.String(),
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}
}

// readWord reads identifiers and the reserved category keywords
func (t *tokenizer) readWord() Token {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - 1

	for unicode.IsLetter(t.current) || unicode.IsDigit(t.current) || t.current == '_' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	word := builder.String()

	return Token{
		Type:  getKeywordTokenType(word),
		Value: word,
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}
}

// readNumber reads numeric literals: unsigned integers used as multipliers
// and decimal or exponential rate literals.
func (t *tokenizer) readNumber() (Token, error) {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - 1

	// Integer part
	for unicode.IsDigit(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	// Decimal point
	if t.current == '.' && unicode.IsDigit(t.peekChar()) {
		builder.WriteRune(t.current)
		t.readChar()

		for unicode.IsDigit(t.current) {
			builder.WriteRune(t.current)
			t.readChar()
		}
	}

	// Exponent. Only entered when a digit (or a signed digit) follows, so
	// that "2 e" and "2e" still lex as a multiplier and the species "e".
	if t.current == 'e' || t.current == 'E' {
		next := t.peekChar()
		signed := next == '+' || next == '-'
		if unicode.IsDigit(next) || (signed && unicode.IsDigit(t.peekChar2())) {
			builder.WriteRune(t.current)
			t.readChar()

			if signed {
				builder.WriteRune(t.current)
				t.readChar()
			}

			for unicode.IsDigit(t.current) {
				builder.WriteRune(t.current)
				t.readChar()
			}
		}
	}

	// A dot left over here means a malformed literal like "1.2.3" or "1."
	if t.current == '.' {
		err := fmt.Errorf("%w: %q at line %d, column %d", ErrInvalidNumber, builder.String()+".", startLine, startColumn)
		t.readChar()
		return Token{}, err
	}

	return Token{
		Type:  NUMBER,
		Value: builder.String(),
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}, nil
}

// readLineComment reads a '#' comment to end of line
func (t *tokenizer) readLineComment() Token {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - 1

	for t.current != 0 && t.current != '\n' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return Token{
		Type:  LINE_COMMENT,
		Value: builder.String(),
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}
}

// newToken creates a new token starting at the current character, which has
// not been consumed yet.
func (t *tokenizer) newToken(tokenType TokenType, value string) Token {
	return Token{
		Type:  tokenType,
		Value: value,
		Position: Position{
			Line:   t.line,
			Column: t.column - 1,
			Offset: t.position - 1,
		},
	}
}
