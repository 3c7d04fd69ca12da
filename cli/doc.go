// Package cli contains the command line interface for vcfg.
//
// # Usage
//
//	vcfg [build] [-i FILE] [--format json|yaml|var] [--pretty] [--strict] [--max-depth N]
//	vcfg fmt [native|ast|tokens] [FILE]
//	vcfg query [-i FILE] EXPR
//	vcfg repl [-i FILE]
//	vcfg init [--force]
//
// Input "-" (the default for build and query) reads stdin. Each command
// reads exactly one input; references resolve only within that file.
//
// # Exit Codes
//
//   - 0: success
//   - 1: the input has a syntax or semantic error, or a query failed
//   - 2: an input file does not exist, or the command line is invalid
//
// Errors are printed to stderr; syntax errors include the offending source
// line.
//
// # Configuration File
//
// Flag defaults are read from $XDG_CONFIG_HOME/vcfg/config, written in the
// var language itself, and from config.json beside it. Constant names are
// flag names with underscores in place of hyphens:
//
//	var log_level "debug"
//	var max_depth 64
//
// Command-line flags override config file values. The init command writes
// the current flag values to the configuration file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output on terminals
//
// Logs are written to stderr.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o vcfg .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/vcfg/pprof)
package cli
