// Package cmd implements the vcfg subcommands: build, fmt, query, repl, and
// init.
//
// Commands read their input through [Source], which accepts one or more
// files ("-" for stdin) and merges their declarations in order, so a later
// file overrides an earlier one. Output goes to the writer stored with
// [WithOutput], or stdout.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file written by init.
	ConfigIdentifier = "config"
)
