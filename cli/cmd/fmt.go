package cmd

import (
	"context"

	"github.com/ardnew/vcfg/lang"
)

// Fmt parses its input without resolving it and prints it in the chosen
// representation.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical var syntax (default)."`
	AST    AST    `cmd:""                    help:"Print the abstract syntax tree."`
	Tokens Tokens `cmd:""                    help:"Print the token stream."`
}

// Native formats input as canonical var syntax: one declaration per line,
// comments dropped, numbers normalized.
type Native struct {
	File string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) error {
	ast, err := parseFile(ctx, f.File)
	if err != nil {
		return err
	}

	return ast.Format(ctx, outputFrom(ctx))
}

// AST prints the abstract syntax tree of the input.
type AST struct {
	File string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt ast command.
func (a *AST) Run(ctx context.Context) error {
	ast, err := parseFile(ctx, a.File)
	if err != nil {
		return err
	}

	ast.Print(ctx, outputFrom(ctx))

	return nil
}

// Tokens prints one line per token of the input.
type Tokens struct {
	File string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	src, err := readSource(ctx, t.File)
	if err != nil {
		return err
	}

	return lang.FormatTokens(ctx, outputFrom(ctx), src)
}
