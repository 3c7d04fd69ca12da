package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vcfg/cli/cmd"
	"github.com/ardnew/vcfg/lang"
	"github.com/ardnew/vcfg/pkg"
)

// CLI is the top-level command-line interface for vcfg.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Build cmd.Build `cmd:"" default:"withargs" help:"Resolve input and print the document (default)"`
	Fmt   cmd.Fmt   `cmd:""                    help:"Format input without resolving it"`
	Query cmd.Query `cmd:""                    help:"Evaluate an expression against the document"`
	Repl  cmd.Repl  `cmd:""                    help:"Start an interactive session"`
	Init  cmd.Init  `cmd:""                    help:"Initialize configuration file"`
}

// Exit codes returned by [ExitCode].
const (
	ExitOK    = 0
	ExitError = 1 // invalid input: syntax, semantic, or query errors
	ExitUsage = 2 // missing input file or invalid command line
)

// Run executes the vcfg CLI with the given context and arguments.
// The exit function is called by kong after printing help or the version.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}

// ExitCode returns the process exit code for an error returned by [Run].
func ExitCode(err error) int {
	var perr *kong.ParseError

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, cmd.ErrFileNotFound), errors.As(err, &perr):
		return ExitUsage
	default:
		return ExitError
	}
}

// Report writes the message of an error returned by [Run] to w, followed by
// the offending source line for syntax errors.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(w, err)

	var syn *lang.SyntaxError
	if errors.As(err, &syn) {
		fmt.Fprint(w, syn.Context())
	}
}

func joinSeq(seq iter.Seq[string]) string {
	return strings.Join(slices.Collect(seq), ",")
}
