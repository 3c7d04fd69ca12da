package lang

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// parseCache stores parse results keyed by source hash and parse options.
// Declarations are never modified after parsing, so entries may be shared
// by concurrent callers.
var parseCache sync.Map

// cacheEntry records the outcome of parsing one source.
type cacheEntry struct {
	once  sync.Once
	decls []*Declaration
	err   error
}

// ParseReader parses an AST from an io.Reader.
//
// Parse results are cached by content, so reading identical input again
// skips lexing and parsing. Use [ParseString] to bypass the cache.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*AST, error) {
	// Prefetch the input while earlier chunks are consumed.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return parseCached(ctx, string(data), opts...)
}

// parseCached parses source, reusing the declarations of any earlier parse of
// the same source with the same options.
func parseCached(ctx context.Context, source string, opts ...Option) (*AST, error) {
	ast := NewAST(opts...)

	hash := xxh3.HashString(source)
	key := strconv.FormatUint(hash, 36) + ":" + strconv.Itoa(ast.opts.maxDepth)

	value, hit := parseCache.LoadOrStore(key, new(cacheEntry))

	entry, ok := value.(*cacheEntry)
	if !ok {
		return nil, ErrInvalidValueType.
			With(slog.String("issue", "invalid entry type in parse cache"))
	}

	ast.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", hit))

	entry.once.Do(func() {
		parsed, err := ParseString(ctx, source, opts...)
		if err != nil {
			entry.err = err

			return
		}

		entry.decls = parsed.Declarations
	})

	if entry.err != nil {
		return nil, entry.err
	}

	// Clone so that Append on one AST cannot grow into another's backing
	// array.
	ast.Declarations = slices.Clone(entry.decls)

	return ast, nil
}

// ClearCache removes all cached parse results.
func ClearCache() {
	parseCache.Clear()
}
