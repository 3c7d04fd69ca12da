package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/vcfg/lang"
)

// Query evaluates an expression against the resolved document.
type Query struct {
	Source `embed:""`

	Pretty bool   `                   help:"Indent the JSON result"`
	Expr   string `arg:"" name:"expr" help:"Expression over the document's constants and the built-in functions; numbers print as in build output"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) error {
	doc, err := q.Resolve(ctx)
	if err != nil {
		return err
	}

	result, err := doc.Query(ctx, q.Expr)
	if err != nil {
		return err
	}

	indent := 0
	if q.Pretty {
		indent = 2
	}

	return writeJSON(outputFrom(ctx), lang.FromNative(result), indent)
}

// writeJSON writes v to w as JSON followed by a newline.
func writeJSON(w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	if err := enc.Encode(v); err != nil {
		return ErrJSONMarshal.Wrap(err).With(slog.Any("value", v))
	}

	return nil
}
