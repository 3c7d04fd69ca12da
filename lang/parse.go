package lang

import (
	"context"
	"log/slog"
	"strconv"
)

// ParseString parses an AST from a string.
//
// The grammar is:
//
//	program     → (declaration | NEWLINE)* EOF
//	declaration → "var" IDENTIFIER value (NEWLINE | EOF)
//	value       → reference | array | STRING | NUMBER
//	reference   → "^[" IDENTIFIER "]"
//	array       → "(" [ value ("," value)* ] ")"
//
// The first token that violates the grammar is reported as a [*SyntaxError].
func ParseString(ctx context.Context, s string, opts ...Option) (*AST, error) {
	ast := NewAST(opts...)

	p := &parser{
		lex:      NewLexer(s),
		src:      s,
		maxDepth: ast.opts.maxDepth,
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	decls, err := p.parseProgram()
	if err != nil {
		ast.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	ast.Declarations = decls

	ast.logger.TraceContext(ctx, "parse complete",
		slog.Int("declaration_count", len(ast.Declarations)))

	return ast, nil
}

// parser holds the parser state. tok is the single token of look-ahead.
type parser struct {
	lex      *Lexer
	src      string
	tok      Token
	maxDepth int
}

// next advances the look-ahead token.
func (p *parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

// parseProgram parses declarations until EOF, skipping blank lines.
func (p *parser) parseProgram() ([]*Declaration, error) {
	decls := make([]*Declaration, 0)

	for {
		switch p.tok.Kind {
		case TokenEOF:
			return decls, nil

		case TokenNewline:
			if err := p.next(); err != nil {
				return nil, err
			}

		case TokenKeyword:
			decl, err := p.parseDeclaration()
			if err != nil {
				return nil, err
			}

			decls = append(decls, decl)

		default:
			return nil, p.unexpected(TokenKeyword, TokenNewline, TokenEOF)
		}
	}
}

// parseDeclaration parses: "var" IDENTIFIER value (NEWLINE | EOF).
// The terminating token is left for parseProgram.
func (p *parser) parseDeclaration() (*Declaration, error) {
	pos := p.tok.Pos

	if _, err := p.expect(TokenKeyword); err != nil {
		return nil, err
	}

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	value, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}

	if p.tok.Kind != TokenNewline && p.tok.Kind != TokenEOF {
		return nil, p.unexpected(TokenNewline, TokenEOF)
	}

	return &Declaration{
		Name:  name.Lexeme,
		Value: value,
		Pos:   pos,
	}, nil
}

// parseValue parses a reference, array, string, or number. depth is the
// number of arrays enclosing the value.
func (p *parser) parseValue(depth int) (Value, error) {
	tok := p.tok

	switch tok.Kind {
	case TokenNumber:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number "+tok.Lexeme)
		}

		return Number(f), p.next()

	case TokenString:
		s, err := decodeString(tok.Lexeme)
		if err != nil {
			return nil, p.errorAt(tok, "invalid string literal: "+err.Error())
		}

		return Text(s), p.next()

	case TokenRefOpen:
		return p.parseReference()

	case TokenLParen:
		return p.parseArray(depth + 1)

	default:
		return nil, p.unexpected(
			TokenRefOpen, TokenLParen, TokenString, TokenNumber,
		)
	}
}

// parseReference parses: "^[" IDENTIFIER "]".
func (p *parser) parseReference() (Value, error) {
	pos := p.tok.Pos

	if _, err := p.expect(TokenRefOpen); err != nil {
		return nil, err
	}

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenRefClose); err != nil {
		return nil, err
	}

	return Reference{Name: name.Lexeme, Pos: pos}, nil
}

// parseArray parses: "(" [ value ("," value)* ] ")".
func (p *parser) parseArray(depth int) (Value, error) {
	if depth > p.maxDepth {
		return nil, p.errorAt(p.tok,
			"arrays nested deeper than "+strconv.Itoa(p.maxDepth)+" levels")
	}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	elems := make(Array, 0)

	if p.tok.Kind == TokenRParen {
		return elems, p.next()
	}

	for {
		elem, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}

		elems = append(elems, elem)

		switch p.tok.Kind {
		case TokenComma:
			if err := p.next(); err != nil {
				return nil, err
			}

		case TokenRParen:
			return elems, p.next()

		default:
			return nil, p.unexpected(TokenComma, TokenRParen)
		}
	}
}

// expect consumes the look-ahead token if it has the given kind.
func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, p.unexpected(kind)
	}

	return tok, p.next()
}

// unexpected reports the look-ahead token as a syntax error.
func (p *parser) unexpected(expected ...TokenKind) *SyntaxError {
	err := p.errorAt(p.tok, "unexpected "+p.tok.String())

	err.Expected = make([]string, len(expected))
	for i, kind := range expected {
		err.Expected[i] = kind.describe()
	}

	return err
}

func (p *parser) errorAt(tok Token, msg string) *SyntaxError {
	return &SyntaxError{
		Msg:    msg,
		Lexeme: tok.Lexeme,
		Source: p.src,
		Pos:    tok.Pos,
	}
}
