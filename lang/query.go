package lang

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Query is a compiled expr-lang expression bound to a resolved [Document].
//
// The expression environment holds every name of the document, converted
// with [Native], together with the built-in functions (see [BuiltinKeys]).
type Query struct {
	env     map[string]any
	program *vm.Program
	Source  string
}

// CompileQuery compiles source against doc. Process environment entries
// ("KEY=VALUE") for the env() function are taken from environ, or from
// os.Environ if environ is empty.
func CompileQuery(doc *Document, source string, environ ...string) (*Query, error) {
	env := makeBuiltinEnv()
	env["env"] = envFunc(processEnvMap(environ))

	for key, val := range doc.All() {
		env[key] = Native(val)
	}

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrQueryCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return &Query{env: env, program: program, Source: source}, nil
}

// Run evaluates the query.
func (q *Query) Run(_ context.Context) (any, error) {
	result, err := expr.Run(q.program, q.env)
	if err != nil {
		return nil, ErrQueryEvaluate.Wrap(err).
			With(slog.String("source", q.Source))
	}

	return result, nil
}

// Query compiles and evaluates source against d.
func (d *Document) Query(
	ctx context.Context,
	source string,
	environ ...string,
) (any, error) {
	q, err := CompileQuery(d, source, environ...)
	if err != nil {
		return nil, err
	}

	return q.Run(ctx)
}
