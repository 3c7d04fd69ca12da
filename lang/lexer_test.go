package lang

import (
	"errors"
	"strings"
	"testing"
)

// lexAll collects every token of src up to and including EOF.
func lexAll(t *testing.T, src string) []Token {
	t.Helper()

	var toks []Token

	for tok, err := range Tokens(src) {
		if err != nil {
			t.Fatalf("lex %q: %v", src, err)
		}

		toks = append(toks, tok)
	}

	return toks
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}

	return out
}

func equalKinds(a, b []TokenKind) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{
			name:  "empty",
			input: "",
			want:  []TokenKind{TokenEOF},
		},
		{
			name:  "declaration",
			input: "var x 2",
			want: []TokenKind{
				TokenKeyword, TokenIdentifier, TokenNumber, TokenEOF,
			},
		},
		{
			name:  "reference",
			input: "var y ^[x]\n",
			want: []TokenKind{
				TokenKeyword, TokenIdentifier,
				TokenRefOpen, TokenIdentifier, TokenRefClose,
				TokenNewline, TokenEOF,
			},
		},
		{
			name:  "reference with inner spaces",
			input: "^[ x ]",
			want:  []TokenKind{TokenRefOpen, TokenIdentifier, TokenRefClose, TokenEOF},
		},
		{
			name:  "array",
			input: `( 1, "a", () )`,
			want: []TokenKind{
				TokenLParen, TokenNumber, TokenComma, TokenString, TokenComma,
				TokenLParen, TokenRParen, TokenRParen, TokenEOF,
			},
		},
		{
			name:  "newline run collapses",
			input: "var a 1\n\n  \n# note\n\r\nvar b 2",
			want: []TokenKind{
				TokenKeyword, TokenIdentifier, TokenNumber, TokenNewline,
				TokenKeyword, TokenIdentifier, TokenNumber, TokenEOF,
			},
		},
		{
			name:  "block comment spans lines",
			input: "#| one\ntwo |# var a 1",
			want:  []TokenKind{TokenKeyword, TokenIdentifier, TokenNumber, TokenEOF},
		},
		{
			name:  "block comment is not greedy",
			input: "#| a |# var #| b |# x 1",
			want:  []TokenKind{TokenKeyword, TokenIdentifier, TokenNumber, TokenEOF},
		},
		{
			name:  "unclosed block comment is a line comment",
			input: "#| open\nvar a 1",
			want: []TokenKind{
				TokenNewline, TokenKeyword, TokenIdentifier, TokenNumber, TokenEOF,
			},
		},
		{
			name:  "keyword prefix is an identifier",
			input: "variable vars _var",
			want: []TokenKind{
				TokenIdentifier, TokenIdentifier, TokenIdentifier, TokenEOF,
			},
		},
		{
			name:  "exponent marker without digits",
			input: "1e",
			want:  []TokenKind{TokenNumber, TokenIdentifier, TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(lexAll(t, tt.input))
			if !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []string{
		"10", "10.", "10.5", ".5", "1e3", ".5E+3", "-2.0e-2", "+7", "0", "-0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			toks := lexAll(t, input)
			if len(toks) != 2 || toks[0].Kind != TokenNumber {
				t.Fatalf("tokens = %v, want a single number", toks)
			}

			if toks[0].Lexeme != input {
				t.Errorf("lexeme = %q, want %q", toks[0].Lexeme, input)
			}
		})
	}
}

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"say \"hi\""`, `say "hi"`},
		{`"a\\b"`, `a\b`},
		{`"tab\there"`, "tab\there"},
		{`"line\nbreak"`, "line\nbreak"},
		{`"été"`, "été"},
		{`"héllo wörld"`, "héllo wörld"},
		{`"# not a comment"`, "# not a comment"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := lexAll(t, tt.input)
			if toks[0].Kind != TokenString {
				t.Fatalf("kind = %v, want string", toks[0].Kind)
			}

			got, err := decodeString(toks[0].Lexeme)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			if got != tt.want {
				t.Errorf("decoded = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	toks := lexAll(t, "var x 2\n  var é_ \"ü\"")

	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 4, Line: 1, Column: 5},
		{Offset: 6, Line: 1, Column: 7},
		{Offset: 7, Line: 1, Column: 8},
	}

	for i, pos := range want {
		if toks[i].Pos != pos {
			t.Errorf("token %d (%v) at %+v, want %+v", i, toks[i], toks[i].Pos, pos)
		}
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		column  int
		message string
	}{
		{"unexpected character", "var a @", 1, 7, "unexpected character '@'"},
		{"uppercase identifier", "var\nvar X 1", 2, 5, "unexpected character 'X'"},
		{"unterminated string", `var a "abc`, 1, 7, "unterminated string"},
		{"string broken by newline", "var a \"abc\n\"", 1, 7, "unterminated string"},
		{"invalid escape", `var a "\q"`, 1, 7, "invalid string literal"},
		{"raw control character", "var a \"\x01\"", 1, 7, "invalid string literal"},
		{"invalid utf-8", "var a \"\xff\"", 1, 7, "invalid UTF-8 encoding"},
		{"truncated utf-8", "var a \"ab\xe2\x82\"", 1, 7, "invalid UTF-8 encoding"},
		{"lone dot", "var a .", 1, 7, `malformed number "."`},
		{"lone sign", "var a -", 1, 7, `malformed number "-"`},
		{"sign before letter", "var a +x", 1, 7, `malformed number "+"`},
		{"out of range", "var a 1e400", 1, 7, "number out of range 1e400"},
		{"lone caret", "var a ^x", 1, 7, "unexpected character '^'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			for _, e := range Tokens(tt.input) {
				if e != nil {
					err = e
				}
			}

			var syn *SyntaxError
			if !errors.As(err, &syn) {
				t.Fatalf("error = %v, want *SyntaxError", err)
			}

			if syn.Pos.Line != tt.line || syn.Pos.Column != tt.column {
				t.Errorf("position = %s, want %d:%d", syn.Pos, tt.line, tt.column)
			}

			if !strings.Contains(syn.Msg, tt.message) {
				t.Errorf("message = %q, want it to contain %q", syn.Msg, tt.message)
			}

			if !errors.Is(err, ErrSyntax) {
				t.Error("errors.Is(err, ErrSyntax) = false")
			}
		})
	}
}

func TestTokens_Restartable(t *testing.T) {
	seq := Tokens("var a (1, 2)")

	first := kinds(collect(seq))
	second := kinds(collect(seq))

	if !equalKinds(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
}

func TestTokens_EarlyExit(t *testing.T) {
	n := 0
	for range Tokens("var a 1\nvar b 2\nvar c 3") {
		n++
		if n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("iterated %d tokens, want 2", n)
	}
}

func TestLexer_NextAfterEOF(t *testing.T) {
	l := NewLexer("x")

	for range 3 {
		if _, err := l.Next(); err != nil {
			t.Fatal(err)
		}
	}

	tok, err := l.Next()
	if err != nil || tok.Kind != TokenEOF {
		t.Errorf("Next() = %v, %v; want EOF", tok, err)
	}
}

func collect(seq func(func(Token, error) bool)) []Token {
	var toks []Token

	seq(func(tok Token, err error) bool {
		if err != nil {
			return false
		}

		toks = append(toks, tok)

		return true
	})

	return toks
}
