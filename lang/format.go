package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the AST in native syntax, one declaration per line.
// Comments and blank lines of the original source are not preserved.
func (ast *AST) Format(ctx context.Context, w io.Writer) error {
	ast.logger.TraceContext(ctx, "format native",
		slog.Int("declaration_count", len(ast.Declarations)))

	var buf bytes.Buffer

	for _, decl := range ast.Declarations {
		if err := formatDeclaration(&buf, decl.Name, decl.Value); err != nil {
			return err
		}
	}

	_, err := w.Write(buf.Bytes())

	return err
}

// Format writes the document in native syntax. The output parses and
// resolves to an equal document.
func (d *Document) Format(_ context.Context, w io.Writer) error {
	var buf bytes.Buffer

	for key, val := range d.All() {
		if err := formatDeclaration(&buf, key, val); err != nil {
			return err
		}
	}

	_, err := w.Write(buf.Bytes())

	return err
}

// FormatJSON writes the document as JSON followed by a newline. If indent is
// positive, nested elements are indented by that many spaces per level.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(d)
}

// FormatYAML writes the document as YAML. If indent is zero, flow style is
// used.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, d, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// FormatTokens writes one line per token of src: position, kind, and
// lexeme. Lexing stops at the first error, which is returned.
func FormatTokens(_ context.Context, w io.Writer, src string) error {
	for tok, err := range Tokens(src) {
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%-8s %-10s %q\n",
			tok.Pos, tok.Kind, tok.Lexeme); err != nil {
			return err
		}
	}

	return nil
}

func formatDeclaration(buf *bytes.Buffer, name string, v Value) error {
	buf.WriteString(keywordVar)
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteByte(' ')

	if err := formatValue(buf, v); err != nil {
		return err
	}

	buf.WriteByte('\n')

	return nil
}

// formatValue writes v in native syntax.
func formatValue(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case Number:
		b, err := v.MarshalJSON()
		if err != nil {
			return err
		}

		buf.Write(b)

	case Text:
		return appendJSONString(buf, string(v))

	case Reference:
		buf.WriteString(v.String())

	case Array:
		buf.WriteByte('(')

		for i, elem := range v {
			if i > 0 {
				buf.WriteString(", ")
			}

			if err := formatValue(buf, elem); err != nil {
				return err
			}
		}

		buf.WriteByte(')')

	default:
		return ErrInvalidValueType.With(slog.Any("value", v))
	}

	return nil
}
