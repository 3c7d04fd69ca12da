package cmd

import (
	"context"

	"github.com/ardnew/vcfg/cli/cmd/repl"
	"github.com/ardnew/vcfg/log"
)

// Repl starts an interactive session over the declarations of its input.
// Without an input the session starts empty, leaving stdin to the terminal.
type Repl struct {
	Input    string `help:"Input file to preload"                           name:"input" placeholder:"FILE" short:"i"`
	Strict   bool   `help:"Reject duplicate declarations"`
	MaxDepth int    `help:"Maximum array nesting and reference chain depth" default:"256" name:"max-depth"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	src := Source{Input: r.Input, Strict: r.Strict, MaxDepth: r.MaxDepth}

	ast, err := src.Parse(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, ast, kongVar(ctx, CacheIdentifier), log.Default(),
		src.options()...)
}
