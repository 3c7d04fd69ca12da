package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vcfg/lang"
	"github.com/ardnew/vcfg/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable name, or "" if ctx carries no kong
// context or the variable is undefined.
func kongVar(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}

type (
	inputKey  struct{}
	outputKey struct{}
)

// WithInput returns a new context.Context in which r replaces stdin as the
// reader for the "-" source.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

// WithOutput returns a new context.Context in which w replaces stdout as the
// destination of command output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Source selects, parses, and resolves the input file of a command.
type Source struct {
	Input    string `default:"-"   help:"Input file or '-' for stdin"                   name:"input" placeholder:"FILE" short:"i"`
	Strict   bool   `              help:"Reject duplicate declarations"`
	MaxDepth int    `default:"256" help:"Maximum array nesting and reference chain depth" name:"max-depth"`
}

func (s *Source) options() []lang.Option {
	return []lang.Option{
		lang.WithStrict(s.Strict),
		lang.WithMaxDepth(s.MaxDepth),
		lang.WithLogger(log.Default()),
	}
}

// Parse reads the input and returns its AST. An empty Input yields an empty
// AST.
func (s *Source) Parse(ctx context.Context) (*lang.AST, error) {
	if s.Input == "" {
		return lang.NewAST(s.options()...), nil
	}

	return parseFile(ctx, s.Input, s.options()...)
}

// Resolve parses the input and resolves its declarations.
func (s *Source) Resolve(ctx context.Context) (*lang.Document, error) {
	ast, err := s.Parse(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := ast.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "document resolved",
		slog.String("file", s.Input),
		slog.Int("constants", doc.Len()))

	return doc, nil
}

func parseFile(
	ctx context.Context,
	path string,
	opts ...lang.Option,
) (*lang.AST, error) {
	r, err := openInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	log.DebugContext(ctx, "parse input", slog.String("file", path))

	return lang.ParseReader(ctx, r, opts...)
}

// openInput opens path for reading, or the context's stdin for "-".
func openInput(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return io.NopCloser(inputFrom(ctx)), nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound.Wrapf("%s", path).
				With(slog.String("file", path))
		}

		return nil, ErrOpenInput.Wrap(err).With(slog.String("file", path))
	}

	return file, nil
}

// readSource returns the entire content of path, or of stdin for "-".
func readSource(ctx context.Context, path string) (string, error) {
	r, err := openInput(ctx, path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", lang.ErrReadInput.Wrap(err).With(slog.String("file", path))
	}

	return string(data), nil
}
