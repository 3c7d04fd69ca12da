package lang

// Builder provides a programmatic API for constructing an [AST] without
// parsing source text. This is useful for generating configuration files or
// for testing.
//
// Example:
//
//	b := lang.NewBuilder()
//	ast := b.AST(
//	    b.Var("x", b.Number(2)),
//	    b.Var("y", b.Array(b.Ref("x"), b.Number(3))),
//	)
type Builder struct {
	opts []Option
}

// NewBuilder creates a new AST builder. The options are applied to every
// AST it creates.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: opts}
}

// Var creates a [Declaration].
func (b *Builder) Var(name string, value Value) *Declaration {
	return &Declaration{Name: name, Value: value}
}

// Number creates a [Number].
func (b *Builder) Number(f float64) Value { return Number(f) }

// String creates a [Text].
func (b *Builder) String(s string) Value { return Text(s) }

// Array creates an [Array] of the given elements. It is never nil.
func (b *Builder) Array(elems ...Value) Value {
	return append(make(Array, 0, len(elems)), elems...)
}

// Ref creates a [Reference] to name.
func (b *Builder) Ref(name string) Value { return Reference{Name: name} }

// AST creates an [AST] with the given declarations.
func (b *Builder) AST(decls ...*Declaration) *AST {
	ast := NewAST(b.opts...)
	ast.Append(decls...)

	return ast
}
