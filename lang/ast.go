package lang

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/ardnew/vcfg/log"
)

// AST is the parsed, unresolved form of a document: its declarations in
// source order, duplicates included.
type AST struct {
	Declarations []*Declaration
	opts         options    // configuration options
	logger       log.Logger // structured logger (zero value discards)
}

// Declaration represents one statement: var Name Value.
type Declaration struct {
	Value Value
	Name  string
	Pos   Position
}

// DefaultMaxDepth is the default limit on array nesting during parsing and on
// reference chain length during resolution.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 256

// options holds AST configuration options.
type options struct {
	maxDepth int
	strict   bool
}

// Option configures parsing or resolution behavior.
type Option func(*AST)

// WithMaxDepth sets the maximum array nesting depth and reference chain
// length. Values less than 1 select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(ast *AST) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		ast.opts.maxDepth = depth
	}
}

// WithStrict makes a repeated declaration of the same name a
// [DuplicateDeclaration] error instead of silently overwriting the earlier
// value.
func WithStrict(strict bool) Option {
	return func(ast *AST) {
		ast.opts.strict = strict
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(ast *AST) {
		ast.logger = logger
	}
}

// NewAST returns an empty AST configured with opts.
func NewAST(opts ...Option) *AST {
	ast := new(AST)
	ast.opts.maxDepth = DefaultMaxDepth

	for _, opt := range opts {
		opt(ast)
	}

	return ast
}

// Append adds declarations to the end of the AST.
func (ast *AST) Append(decls ...*Declaration) {
	ast.Declarations = append(ast.Declarations, decls...)
}

// Lookup returns the declaration that defines name in the resolved document,
// which is the last one in source order.
func (ast *AST) Lookup(name string) (*Declaration, bool) {
	for i := len(ast.Declarations) - 1; i >= 0; i-- {
		if ast.Declarations[i].Name == name {
			return ast.Declarations[i], true
		}
	}

	return nil, false
}

// All returns an iterator over all declarations in source order.
func (ast *AST) All() iter.Seq[*Declaration] {
	return func(yield func(*Declaration) bool) {
		for _, decl := range ast.Declarations {
			if !yield(decl) {
				return
			}
		}
	}
}

// Names returns the distinct declared names in order of first declaration.
func (ast *AST) Names() []string {
	seen := make(map[string]struct{}, len(ast.Declarations))
	names := make([]string, 0, len(ast.Declarations))

	for _, decl := range ast.Declarations {
		if _, ok := seen[decl.Name]; ok {
			continue
		}

		seen[decl.Name] = struct{}{}
		names = append(names, decl.Name)
	}

	return names
}

// Print writes an indented tree of the AST to w.
func (ast *AST) Print(ctx context.Context, w io.Writer) {
	ast.logger.TraceContext(ctx, "print ast",
		slog.Int("declaration_count", len(ast.Declarations)))

	fmt.Fprintln(w, "AST")

	for _, decl := range ast.Declarations {
		decl.Print(w, 1)
	}
}

// Print writes the declaration and its value tree to w at the given depth.
func (d *Declaration) Print(w io.Writer, indent int) {
	fmt.Fprintf(w, "%sDeclaration %s @%s\n",
		strings.Repeat("  ", indent), d.Name, d.Pos)

	printValue(w, d.Value, indent+1)
}

func printValue(w io.Writer, v Value, indent int) {
	pad := strings.Repeat("  ", indent)

	switch v := v.(type) {
	case Number:
		fmt.Fprintf(w, "%sNumber %s\n", pad, v)
	case Text:
		fmt.Fprintf(w, "%sText %q\n", pad, string(v))
	case Reference:
		fmt.Fprintf(w, "%sReference %s @%s\n", pad, v.Name, v.Pos)
	case Array:
		fmt.Fprintf(w, "%sArray (%d)\n", pad, len(v))

		for _, elem := range v {
			printValue(w, elem, indent+1)
		}
	default:
		fmt.Fprintf(w, "%s<unknown>\n", pad)
	}
}
