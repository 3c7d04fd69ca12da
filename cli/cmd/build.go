package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/vcfg/lang"
)

// Build resolves the input and prints the document.
type Build struct {
	Source `embed:""`

	Format string `default:"json" enum:"json,yaml,var" help:"Output format (${enum})" short:"f"`
	Pretty bool   `                                     help:"Indent nested output"`
	Indent int    `default:"2"                          help:"Indent width used with --pretty"`
}

// Run executes the build command.
func (b *Build) Run(ctx context.Context) error {
	doc, err := b.Resolve(ctx)
	if err != nil {
		return err
	}

	indent := 0
	if b.Pretty {
		indent = b.Indent
	}

	return writeDocument(ctx, outputFrom(ctx), doc, b.Format, indent)
}

// writeDocument writes doc to w in the named format.
func writeDocument(
	ctx context.Context,
	w io.Writer,
	doc *lang.Document,
	format string,
	indent int,
) error {
	switch format {
	case "", "json":
		if err := doc.FormatJSON(ctx, w, indent); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

	case "yaml":
		if err := doc.FormatYAML(ctx, w, indent); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

	case "var":
		if err := doc.Format(ctx, w); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

	default:
		return ErrInvalidFormat.Wrapf("%q", format).
			With(slog.String("valid", "json, yaml, var"))
	}

	return nil
}
