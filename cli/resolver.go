package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vcfg/lang"
	"github.com/ardnew/vcfg/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads a configuration
// file written in the var language.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config")
//
// Each constant of the resolved document supplies the flag of the same name,
// with underscores standing in for hyphens:
//
//	var log_level "debug"
//	var log_pretty "false"
//	var input ("a.vcfg", "b.vcfg")
//
// is equivalent to
//
//	--log-level=debug --no-log-pretty --input=a.vcfg,b.vcfg
//
// Numbers are passed to kong as strings and arrays as lists of strings;
// nested arrays are joined with commas. A file
// that fails to parse or resolve is logged and ignored. Command-line flags
// override config file values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		ast, err := lang.ParseReader(ctx, r, lang.WithLogger(log.Default()))
		if err == nil {
			var doc *lang.Document
			if doc, err = ast.Resolve(ctx); err == nil {
				return makeConfig(doc), nil
			}
		}

		log.WarnContext(ctx, "ignoring configuration file", slog.Any("error", err))

		return config{}, nil
	}
}

// config implements [kong.Resolver] for var language configuration files.
type config map[string]any

func makeConfig(doc *lang.Document) config {
	c := make(config, doc.Len())

	for name, val := range doc.All() {
		c[name] = flagArg(val)
	}

	return c
}

// flagArg converts a resolved value into a form kong can decode into any
// flag type.
func flagArg(v lang.Value) any {
	switch v := v.(type) {
	case lang.Number:
		return strconv.FormatFloat(float64(v), 'f', -1, 64)
	case lang.Text:
		return string(v)
	case lang.Array:
		elems := make([]any, len(v))
		for i, elem := range v {
			elems[i] = stringArg(elem)
		}

		return elems
	default:
		return nil
	}
}

func stringArg(v lang.Value) string {
	switch v := flagArg(v).(type) {
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i], _ = p.(string)
		}

		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found; let kong use the default.
	return nil, nil
}
