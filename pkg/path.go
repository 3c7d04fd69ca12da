package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name used for the configuration and cache
// directories.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		return prefixOf(id)
	},
)

var prefixRules = []struct {
	rex *regexp.Regexp
	rep string
}{
	{regexp.MustCompile(`^__debug_bin\d*$`), Name},
	{regexp.MustCompile(`^\.+`), ""},
}

func prefixOf(path string) string {
	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	for _, rule := range prefixRules {
		id = rule.rex.ReplaceAllString(id, rule.rep)
	}

	if id == "" {
		return Name
	}

	return id
}

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return userDir(os.UserConfigDir, ".config")
	},
)

// CacheDir returns the cache directory path used for transient files such
// as profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return userDir(os.UserCacheDir, ".cache")
	},
)

// userDir joins Prefix to the directory returned by base, falling back to
// home/fallback and then the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if wd, werr := os.Getwd(); werr == nil {
			dir = wd
		} else {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
