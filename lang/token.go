package lang

//go:generate go tool stringer --linecomment --type TokenKind,Kind --output kind_string.go

import (
	"log/slog"
	"strconv"
)

// Position identifies a location in source text.
// Line and Column are 1-based; Column counts runes, not bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns the position formatted as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether p refers to an actual source location.
func (p Position) IsValid() bool { return p.Line > 0 }

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	)
}

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	TokenEOF        TokenKind = iota // EOF
	TokenNewline                     // newline
	TokenKeyword                     // keyword
	TokenIdentifier                  // identifier
	TokenNumber                      // number
	TokenString                      // string
	TokenLParen                      // (
	TokenRParen                      // )
	TokenComma                       // ,
	TokenRefOpen                     // ^[
	TokenRefClose                    // ]
)

// keywordVar is the only keyword of the language. It starts every
// declaration.
const keywordVar = "var"

// Token is a single lexeme produced by the [Lexer].
type Token struct {
	Kind   TokenKind
	Lexeme string
	Pos    Position
}

// String returns a short human-readable description of the token.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF, TokenNewline:
		return t.Kind.String()
	case TokenKeyword, TokenIdentifier, TokenNumber:
		return t.Kind.String() + " " + strconv.Quote(t.Lexeme)
	case TokenString:
		return t.Kind.String() + " " + t.Lexeme
	default:
		return strconv.Quote(t.Lexeme)
	}
}

// describe returns the expectation label used in syntax errors.
func (k TokenKind) describe() string {
	switch k {
	case TokenEOF, TokenNewline, TokenIdentifier, TokenNumber, TokenString:
		return k.String()
	case TokenKeyword:
		return strconv.Quote(keywordVar)
	default:
		return strconv.Quote(k.String())
	}
}
