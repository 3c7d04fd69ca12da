// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Time formatting, caller information, output format, and colorization are
// applied at logger creation time using functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("document resolved", slog.Int("constants", n))
//	logger.Error("resolve failed", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a new logger from an existing configuration, and
// [Config] does the same for the package-level logger returned by [Default].
//
// # Adding Attributes
//
// Attributes added with [Logger.With] are included in every subsequent
// message:
//
//	logger = logger.With(slog.String("input", path))
//	logger.Debug("parsing") // includes input=path
//
// # Context-Aware Logging
//
// Each level has a context-aware and a context-unaware variant. The
// context-unaware variants use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Messages below the configured level are discarded. The default is
// [LevelWarn], so diagnostics stay quiet unless asked for.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. With [WithPretty] enabled, both
// formats are colorized when the output is a terminal and written as plain
// text otherwise.
package log
