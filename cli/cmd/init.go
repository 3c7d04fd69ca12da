package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vcfg/lang"
	"github.com/ardnew/vcfg/log"
	"github.com/ardnew/vcfg/pkg"
	"github.com/ardnew/vcfg/profile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// ignoredFlags lists flag name prefixes never written to the configuration
// file.
var ignoredFlags = []string{"help", "version", profile.Tag}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# %s configuration\n", pkg.Name)

	err = buildAST(ktx).Format(ctx, file)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildAST declares one constant per application-level flag that has a
// value. Flag names map to identifiers by replacing hyphens with
// underscores.
func buildAST(ktx *kong.Context) *lang.AST {
	b := lang.NewBuilder()

	var decls []*lang.Declaration

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoredFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagValue(b, ktx.FlagValue(flag)); val != nil {
			decls = append(decls, b.Var(configIdentifier(flag.Name), val))
		}
	}

	return b.AST(decls...)
}

// configIdentifier returns the constant name used for a flag.
func configIdentifier(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// flagValue converts a flag value into a constant value, or nil if the flag
// is unset. Booleans are written as strings, since the language has no
// boolean literal.
func flagValue(b *lang.Builder, v any) lang.Value {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		return b.String(fmt.Sprint(rv.Bool()))

	case reflect.String:
		if rv.String() == "" {
			return nil
		}

		return b.String(rv.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return b.Number(float64(rv.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return b.Number(float64(rv.Uint()))

	case reflect.Float32, reflect.Float64:
		return b.Number(rv.Float())

	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return nil
		}

		elems := make([]lang.Value, 0, rv.Len())

		for i := range rv.Len() {
			if elem := flagValue(b, rv.Index(i).Interface()); elem != nil {
				elems = append(elems, elem)
			}
		}

		return b.Array(elems...)

	default:
		return b.String(fmt.Sprint(v))
	}
}
