package lang

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/vcfg/log"
)

// Resolve substitutes every reference in the AST and returns the resulting
// document.
//
// Declarations are collected into an environment first, so references may
// name declarations that appear later in the source. When a name is declared
// more than once the last value wins, unless [WithStrict] is set.
//
// The AST is not modified; resolving it again yields an identical document.
func (ast *AST) Resolve(ctx context.Context) (*Document, error) {
	env, err := ast.environment()
	if err != nil {
		ast.logger.TraceContext(ctx, "resolve failed", slog.Any("error", err))

		return nil, err
	}

	r := &resolver{
		env:      env,
		active:   make(map[string]int),
		done:     make(map[string]bool, len(env.keys)),
		maxDepth: ast.opts.maxDepth,
		logger:   ast.logger,
	}

	for _, name := range env.keys {
		if _, err := r.resolveName(ctx, name, Position{}); err != nil {
			ast.logger.TraceContext(ctx, "resolve failed", slog.Any("error", err))

			return nil, err
		}
	}

	ast.logger.TraceContext(ctx, "resolve complete",
		slog.Int("name_count", len(env.keys)))

	return newDocument(env.keys, env.values), nil
}

// ParseConfig parses and resolves text in one step.
func ParseConfig(ctx context.Context, text string, opts ...Option) (*Document, error) {
	ast, err := ParseString(ctx, text, opts...)
	if err != nil {
		return nil, err
	}

	return ast.Resolve(ctx)
}

// environment is the working name→value mapping of a single Resolve call.
// keys holds each name once, in order of first declaration.
type environment struct {
	keys   []string
	values map[string]Value
}

// environment collects the declarations into a fresh environment.
func (ast *AST) environment() (*environment, error) {
	env := &environment{
		keys:   make([]string, 0, len(ast.Declarations)),
		values: make(map[string]Value, len(ast.Declarations)),
	}

	for _, decl := range ast.Declarations {
		if _, ok := env.values[decl.Name]; ok {
			if ast.opts.strict {
				return nil, &SemanticError{
					Kind: DuplicateDeclaration,
					Name: decl.Name,
					Pos:  decl.Pos,
				}
			}
		} else {
			env.keys = append(env.keys, decl.Name)
		}

		env.values[decl.Name] = decl.Value
	}

	return env, nil
}

// resolver performs depth-first substitution over an environment.
//
// stack holds the names currently being resolved, and active maps each of
// them to its index in stack. Once a name is resolved its value in env is
// replaced and done records it, so every name is resolved at most once.
type resolver struct {
	env      *environment
	active   map[string]int
	done     map[string]bool
	logger   log.Logger
	stack    []string
	maxDepth int
}

// resolveName returns the resolved value of name. pos is the position of the
// reference being followed, or the zero Position for a top-level name.
func (r *resolver) resolveName(
	ctx context.Context,
	name string,
	pos Position,
) (Value, error) {
	if r.done[name] {
		return r.env.values[name], nil
	}

	if i, ok := r.active[name]; ok {
		chain := append(slices.Clone(r.stack[i:]), name)

		return nil, &SemanticError{
			Kind:  CircularDependency,
			Name:  name,
			Chain: chain,
			Pos:   pos,
		}
	}

	raw, ok := r.env.values[name]
	if !ok {
		return nil, &SemanticError{
			Kind: UndefinedConstant,
			Name: name,
			Pos:  pos,
		}
	}

	if len(r.stack) >= r.maxDepth {
		return nil, &SemanticError{
			Kind: DepthExceeded,
			Name: name,
			Pos:  pos,
		}
	}

	r.active[name] = len(r.stack)
	r.stack = append(r.stack, name)

	resolved, err := r.resolveValue(ctx, raw)

	r.stack = r.stack[:len(r.stack)-1]
	delete(r.active, name)

	if err != nil {
		return nil, err
	}

	r.env.values[name] = resolved
	r.done[name] = true

	r.logger.TraceContext(ctx, "resolved",
		slog.String("name", name),
		slog.String("kind", resolved.Kind().String()))

	return resolved, nil
}

// resolveValue returns v with every reference substituted. Arrays are copied;
// the input is never modified.
func (r *resolver) resolveValue(ctx context.Context, v Value) (Value, error) {
	switch v := v.(type) {
	case Number, Text:
		return v, nil

	case Array:
		out := make(Array, len(v))

		for i, elem := range v {
			resolved, err := r.resolveValue(ctx, elem)
			if err != nil {
				return nil, err
			}

			out[i] = resolved
		}

		return out, nil

	case Reference:
		return r.resolveName(ctx, v.Name, v.Pos)

	default:
		return nil, ErrInvalidValueType.With(slog.Any("value", v))
	}
}
