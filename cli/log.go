package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vcfg/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler, so errors reported during parsing are already
// formatted as requested.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}"  enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"${logFormatDefault}" enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                                      help:"Set timestamp layout, or 'none'."`
	Caller     bool      `default:"false"                                        help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                         help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelDefault":  log.DefaultLevel.String(),
		"logLevelEnum":     joinSeq(log.Levels()),
		"logFormatDefault": log.DefaultFormat.String(),
		"logFormatEnum":    joinSeq(log.Formats()),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies the parsed configuration to the default logger. The returned
// function logs completion of the command.
func (f *logConfig) start(ctx context.Context) (stop func()) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)

	return func() { log.TraceContext(ctx, "command finished") }
}

// scan performs an early pass over command-line arguments to apply logger
// configuration before kong begins parsing, regardless of flag position.
// Level and format are also applied by their UnmarshalText methods during
// parsing, but boolean flags never pass through that interface.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		negated := false
		if rest, ok := strings.CutPrefix(name, "--no-log-"); ok {
			name, negated = rest, true
		} else if rest, ok := strings.CutPrefix(name, "--log-"); ok {
			name = rest
		} else {
			continue
		}

		switch name {
		case "level", "format", "time-layout":
			if negated {
				continue
			}

			// Non-boolean flag: consume next arg as value if not assigned.
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				value = args[i+1]
				i++
			}

			f.scanValue(name, value)

		case "caller", "pretty":
			enable := true
			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			f.scanBool(name, enable != negated)
		}
	}
}

func (f *logConfig) scanValue(name, value string) {
	switch name {
	case "level":
		_ = f.Level.UnmarshalText([]byte(value))
	case "format":
		_ = f.Format.UnmarshalText([]byte(value))
	case "time-layout":
		f.TimeLayout = value
		log.Config(log.WithTimeLayout(value))
	}
}

func (f *logConfig) scanBool(name string, enable bool) {
	switch name {
	case "caller":
		f.Caller = enable
		log.Config(log.WithCaller(enable))
	case "pretty":
		f.Pretty = enable
		log.Config(log.WithPretty(enable))
	}
}
