package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)  // trace
	LevelDebug Level = Level(slog.LevelDebug) // debug
	LevelInfo  Level = Level(slog.LevelInfo)  // info
	LevelWarn  Level = Level(slog.LevelWarn)  // warn
	LevelError Level = Level(slog.LevelError) // error
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelWarn

// Levels returns an iterator over the names of all defined log levels.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range []Level{
			LevelTrace,
			LevelDebug,
			LevelInfo,
			LevelWarn,
			LevelError,
		} {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel parses a string representation of a log level.
// Valid level strings are "TRACE", "DEBUG", "INFO", "WARN", and "ERROR",
// optionally followed by a "+" or "-" and an integer offset; see
// [slog.Level.UnmarshalText]. Unrecognized strings yield [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	// slog does not know about trace.
	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatText

// Formats returns an iterator over the names of all defined log formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatText, FormatJSON} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat parses a string representation of a log format.
// Valid format strings are "json" and "text".
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatJSON.String():
		return FormatJSON
	case FormatText.String():
		return FormatText
	default:
		return DefaultFormat
	}
}

// FormatTime defines a function that formats a time.Time value as a string.
// An empty result omits the timestamp.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the default used when no valid time layout is provided.
const DefaultTimeLayout = time.RFC3339

// DefaultCaller is the default setting for including caller information
// in log output.
const DefaultCaller = false

// DefaultPretty is the default setting for pretty printing log output.
const DefaultPretty = true

// config holds the configuration of a Logger. It is copied, never shared,
// so a Logger may be used from multiple goroutines.
type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// makeConfig creates a new config with defaults applied, overridden by any
// provided options.
func makeConfig(w io.Writer, opts ...Option) config {
	return apply(config{}, append([]Option{WithDefaults(w)}, opts...)...)
}

// handler creates a slog.Handler based on the configuration.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					formatted := c.formatTime(t)
					if formatted == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(formatted)
				}

			case slog.LevelKey:
				// Show "TRACE" instead of "DEBUG-4".
				if level, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(strings.ToUpper(Level(level).String()))
				}
			}

			return a
		},
	}

	if c.pretty {
		return newPrettyHandler(c.output, c.format, opts)
	}

	switch c.format {
	case FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case FormatText:
		return slog.NewTextHandler(c.output, opts)
	default:
		return slog.DiscardHandler
	}
}

// WithDefaults returns a functional option that resets every setting to its
// default and directs output to w.
func WithDefaults(w io.Writer) Option {
	return func(c config) config {
		c = WithOutput(w)(c)
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty

		return c
	}
}

// WithOutput returns a functional option that sets the output [io.Writer]
// for log messages.
// If a nil writer is provided, [io.Discard] is used instead.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel returns a functional option that sets the minimum log level.
// Messages below this level are discarded.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat returns a functional option that sets the output format
// for log messages.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout returns a functional option that sets the layout used to
// format log timestamps.
//
// The layout string can be one of the named layouts from the [time] package
// (for example, "RFC3339" or "RFC3339Nano"). Otherwise, it is passed verbatim
// to [time.Time.Format].
//
// An empty layout, or "none", disables timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.formatTime = makeFormatTimeFunc(layout)

		return c
	}
}

// WithCaller returns a functional option that controls whether caller
// information is included in log output.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty returns a functional option that controls whether log output
// is colorized for terminals. Colors are only emitted when the output is a
// terminal that supports them.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

// timeLayout maps named layouts to their corresponding time.Time constants.
var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"timeonly":    time.TimeOnly,

	"stamp":      time.Stamp,
	"stampmilli": time.StampMilli,
	"ms":         time.StampMilli,
	"stampmicro": time.StampMicro,
	"us":         time.StampMicro,
	"stampnano":  time.StampNano,
	"ns":         time.StampNano,

	"none": "",
}

func makeFormatTimeFunc(layout string) FormatTime {
	// Normalize only for lookup; custom layouts are used verbatim.
	key := strings.Map(
		func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}

			return -1
		},
		strings.ToLower(layout),
	)

	if key == "" {
		return func(time.Time) string { return "" }
	}

	if std, ok := timeLayout[key]; ok {
		if std == "" {
			return func(time.Time) string { return "" }
		}

		layout = std
	}

	return func(t time.Time) string { return t.Format(layout) }
}
