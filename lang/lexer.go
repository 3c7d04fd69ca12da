package lang

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lexer splits source text into [Token]s on demand.
//
// Inline whitespace and comments are discarded. A run of newlines (with any
// blank or comment-only lines between them) is reported as a single
// [TokenNewline]; deciding what a newline means is left to the parser.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Tokens returns a lazy sequence of the tokens in src, ending with
// [TokenEOF]. Each range over the sequence lexes src from the beginning.
// Iteration stops at the first error, which is yielded with a zero Token.
func Tokens(src string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		l := NewLexer(src)

		for {
			tok, err := l.Next()
			if err != nil {
				yield(Token{}, err)

				return
			}

			if !yield(tok, nil) || tok.Kind == TokenEOF {
				return
			}
		}
	}
}

// Next scans and returns the next token. After the end of input it keeps
// returning [TokenEOF].
func (l *Lexer) Next() (Token, error) {
	l.skipSpaceAndComments()

	start := l.position()

	if l.eof() {
		return Token{Kind: TokenEOF, Pos: start}, nil
	}

	ch := l.peek()

	switch {
	case l.atNewline():
		l.scanNewlines()

		return Token{Kind: TokenNewline, Lexeme: "\n", Pos: start}, nil

	case isIdentChar(ch):
		for !l.eof() && isIdentChar(l.peek()) {
			l.advance()
		}

		lexeme := l.src[start.Offset:l.pos]
		if lexeme == keywordVar {
			return Token{Kind: TokenKeyword, Lexeme: lexeme, Pos: start}, nil
		}

		return Token{Kind: TokenIdentifier, Lexeme: lexeme, Pos: start}, nil

	case isDigit(ch) || ch == '.' || ch == '+' || ch == '-':
		return l.scanNumber(start)

	case ch == '"':
		return l.scanString(start)

	case ch == '^' && l.peekAt(1) == '[':
		l.advance()
		l.advance()

		return Token{Kind: TokenRefOpen, Lexeme: "^[", Pos: start}, nil
	}

	var kind TokenKind

	switch ch {
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	case ',':
		kind = TokenComma
	case ']':
		kind = TokenRefClose
	default:
		return Token{}, l.errorf(start, string(ch), "unexpected character %s",
			strconv.QuoteRune(ch))
	}

	l.advance()

	return Token{Kind: kind, Lexeme: string(ch), Pos: start}, nil
}

// scanNewlines consumes one or more line breaks along with the whitespace and
// comments separating them.
func (l *Lexer) scanNewlines() {
	for l.atNewline() {
		if l.peek() == '\r' {
			l.advance()
		}

		l.advance()
		l.skipSpaceAndComments()
	}
}

// scanNumber scans [+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)? and converts it to
// float64. An exponent marker is only consumed when digits follow it, so
// "1e" lexes as the number 1 followed by the identifier e.
func (l *Lexer) scanNumber(start Position) (Token, error) {
	if c := l.peek(); c == '+' || c == '-' {
		l.advance()
	}

	intDigits := l.scanDigits()
	fracDigits := 0

	if l.peek() == '.' {
		if intDigits == 0 && !isDigit(l.peekAt(1)) {
			return Token{}, l.malformedNumber(start)
		}

		l.advance()

		fracDigits = l.scanDigits()
	}

	if intDigits == 0 && fracDigits == 0 {
		return Token{}, l.malformedNumber(start)
	}

	if c := l.peek(); c == 'e' || c == 'E' {
		switch next := l.peekAt(1); {
		case isDigit(next):
			l.advance()
			l.scanDigits()
		case (next == '+' || next == '-') && isDigit(l.peekAt(2)):
			l.advance()
			l.advance()
			l.scanDigits()
		}
	}

	lexeme := l.src[start.Offset:l.pos]

	if _, err := strconv.ParseFloat(lexeme, 64); err != nil {
		msg := "invalid number"
		if errors.Is(err, strconv.ErrRange) {
			msg = "number out of range"
		}

		return Token{}, l.errorf(start, lexeme, "%s %s", msg, lexeme)
	}

	return Token{Kind: TokenNumber, Lexeme: lexeme, Pos: start}, nil
}

func (l *Lexer) malformedNumber(start Position) error {
	end := l.pos
	if end == start.Offset && !l.eof() {
		_, size := utf8.DecodeRuneInString(l.src[end:])
		end += size
	}

	lexeme := l.src[start.Offset:end]

	return l.errorf(start, lexeme, "malformed number %s", strconv.Quote(lexeme))
}

func (l *Lexer) scanDigits() int {
	n := 0
	for isDigit(l.peek()) {
		l.advance()
		n++
	}

	return n
}

// scanString scans a double-quoted string literal. The lexeme keeps its
// quotes and escapes; [decodeString] produces the text value.
func (l *Lexer) scanString(start Position) (Token, error) {
	l.advance() // skip opening quote

	for {
		if l.eof() || l.peek() == '\n' {
			return Token{}, l.errorf(start, l.src[start.Offset:l.pos],
				"unterminated string")
		}

		switch l.peek() {
		case '\\':
			l.advance()

			if !l.eof() && l.peek() != '\n' {
				l.advance()
			}

		case '"':
			l.advance()

			lexeme := l.src[start.Offset:l.pos]
			if _, err := decodeString(lexeme); err != nil {
				return Token{}, l.errorf(start, lexeme,
					"invalid string literal: %v", err)
			}

			return Token{Kind: TokenString, Lexeme: lexeme, Pos: start}, nil

		default:
			l.advance()
		}
	}
}

// errInvalidUTF8 reports a string literal holding bytes that are not valid
// UTF-8.
var errInvalidUTF8 = errors.New("invalid UTF-8 encoding")

// decodeString resolves the JSON escape sequences of a quoted string lexeme.
func decodeString(lexeme string) (string, error) {
	if !utf8.ValidString(lexeme) {
		return "", errInvalidUTF8
	}

	if !strings.Contains(lexeme, "\\") && isPlainText(lexeme) {
		return lexeme[1 : len(lexeme)-1], nil
	}

	var s string
	if err := json.Unmarshal([]byte(lexeme), &s); err != nil {
		return "", err
	}

	return s, nil
}

// isPlainText reports whether s is free of control characters, meaning it
// needs no JSON decoding beyond stripping its quotes.
func isPlainText(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 {
			return false
		}
	}

	return true
}

// skipSpaceAndComments discards spaces, tabs, and comments, stopping before
// any line break.
//
// A block comment #| ... |# ends at the first |#. An opening #| that is never
// closed is treated as a line comment.
func (l *Lexer) skipSpaceAndComments() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t':
			l.advance()

			continue

		case '#':
			if l.peekAt(1) == '|' {
				if end := strings.Index(l.src[l.pos+2:], "|#"); end >= 0 {
					stop := l.pos + 2 + end + 2
					for l.pos < stop {
						l.advance()
					}

					continue
				}
			}

			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}

			continue
		}

		return
	}
}

// Helper methods

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the byte at offset n from the current position as a rune
// when it is ASCII, the decoded rune when n is zero, and 0 past the end.
func (l *Lexer) peekAt(n int) rune {
	i := l.pos + n
	if i >= len(l.src) {
		return 0
	}

	if n == 0 {
		r, _ := utf8.DecodeRuneInString(l.src[i:])

		return r
	}

	return rune(l.src[i])
}

func (l *Lexer) atNewline() bool {
	switch l.peek() {
	case '\n':
		return true
	case '\r':
		return l.peekAt(1) == '\n'
	default:
		return false
	}
}

func (l *Lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *Lexer) errorf(
	pos Position,
	lexeme string,
	format string,
	args ...any,
) *SyntaxError {
	return &SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Lexeme: lexeme,
		Source: l.src,
		Pos:    pos,
	}
}

// Character classification

func isIdentChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
