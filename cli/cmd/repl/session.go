package repl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/vcfg/lang"
	"github.com/ardnew/vcfg/log"
)

// session holds the declarations entered so far and the document they
// resolve to. The document always corresponds to the current declarations.
type session struct {
	ast    *lang.AST
	doc    *lang.Document
	opts   []lang.Option
	logger log.Logger
}

func newSession(
	ctx context.Context,
	ast *lang.AST,
	logger log.Logger,
	opts ...lang.Option,
) (*session, error) {
	if ast == nil {
		ast = lang.NewAST(opts...)
	}

	doc, err := ast.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	return &session{ast: ast, doc: doc, opts: opts, logger: logger}, nil
}

// isDeclaration reports whether line starts with the var keyword.
func isDeclaration(line string) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "var")

	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// eval runs one line of input and returns the text to print. Declarations
// are appended to the session; anything else is evaluated as a query.
func (s *session) eval(ctx context.Context, line string) (string, error) {
	if isDeclaration(line) {
		return s.declare(ctx, line)
	}

	result, err := s.doc.Query(ctx, line)
	if err != nil {
		return "", err
	}

	return formatResult(lang.FromNative(result)), nil
}

// declare parses line as declarations and re-resolves the session with them
// appended. On error the session is unchanged.
func (s *session) declare(ctx context.Context, line string) (string, error) {
	part, err := lang.ParseString(ctx, line, s.opts...)
	if err != nil {
		return "", err
	}

	next := lang.NewAST(s.opts...)
	next.Append(s.ast.Declarations...)
	next.Append(part.Declarations...)

	if err := s.replace(ctx, next); err != nil {
		return "", err
	}

	names := part.Names()

	s.logger.TraceContext(ctx, "repl declare",
		slog.Any("names", names),
		slog.Int("constants", s.doc.Len()))

	var b strings.Builder

	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}

		val, _ := s.doc.Get(name)
		b.WriteString(name + " = " + preview(val))
	}

	return b.String(), nil
}

// replace resolves ast and, if it succeeds, makes it the session's AST.
func (s *session) replace(ctx context.Context, ast *lang.AST) error {
	doc, err := ast.Resolve(ctx)
	if err != nil {
		return err
	}

	s.ast, s.doc = ast, doc

	return nil
}

// source returns the session's declarations in canonical syntax.
func (s *session) source(ctx context.Context) (string, error) {
	var b strings.Builder
	if err := s.ast.Format(ctx, &b); err != nil {
		return "", err
	}

	return b.String(), nil
}

// formatResult renders a query result as compact JSON, falling back to Go
// syntax for values JSON cannot represent, such as functions.
func formatResult(v any) string {
	var b strings.Builder

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}

	return strings.TrimSuffix(b.String(), "\n")
}
