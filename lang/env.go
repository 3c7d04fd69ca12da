package lang

// This file defines the built-in environment available to query expressions.
// It is lazily initialized once per process and cloned on every access, so
// callers may mutate the returned map without affecting the shared copy.
//
// Document names shadow built-in names.

import (
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

//nolint:gochecknoglobals
var (
	builtinOnce sync.Once
	builtinEnv  map[string]any
)

// makeBuiltinEnv returns a clone of the built-in environment.
func makeBuiltinEnv() map[string]any {
	builtinOnce.Do(func() {
		builtinEnv = map[string]any{
			"platform": getPlatform(),
			"hostname": getHostname(),
			"cwd":      getCwd,

			"file": map[string]any{
				"exists": fileExists,
				"isDir":  fileIsDir,
			},

			"path": map[string]any{
				"abs": pathAbs,
				"cat": pathCat,
				"rel": pathRel,
			},

			// PATH-like list manipulation.
			"mung": map[string]any{
				"prefix":   mungPrefix,
				"prefixif": mungPrefixIf,
			},
		}
	})

	return maps.Clone(builtinEnv)
}

// BuiltinKeys returns the sorted top-level names of the built-in query
// environment, including "env".
func BuiltinKeys() []string {
	keys := slices.Collect(maps.Keys(makeBuiltinEnv()))
	keys = append(keys, "env")
	slices.Sort(keys)

	return keys
}

// BuiltinLookup returns the sorted member names of the built-in namespace at
// the dot-separated path, or nil if path does not name a namespace. The empty
// path returns [BuiltinKeys].
func BuiltinLookup(path string) []string {
	if path == "" {
		return BuiltinKeys()
	}

	v, ok := BuiltinValue(path)
	if !ok {
		return nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)

	return keys
}

// BuiltinValue returns the built-in value, function, or namespace at the
// dot-separated path. The "env" function is not included.
func BuiltinValue(path string) (any, bool) {
	var current any = makeBuiltinEnv()

	for seg := range strings.SplitSeq(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		if current, ok = m[seg]; !ok {
			return nil, false
		}
	}

	return current, true
}

// platform identifies the host operating system and architecture using Go
// naming conventions.
type platform struct {
	OS   string
	Arch string
}

func getPlatform() platform {
	p := platform{OS: runtime.GOOS, Arch: runtime.GOARCH}

	if o, ok := os.LookupEnv("GOHOSTOS"); ok {
		p.OS = o
	}

	if a, ok := os.LookupEnv("GOHOSTARCH"); ok {
		p.Arch = a
	}

	return p
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

// mungPrefix prepends each prefix to the list held in key, removing
// duplicates.
func mungPrefix(key string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

// mungPrefixIf is like mungPrefix but keeps only items accepted by predicate.
func mungPrefixIf(
	key string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(key),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}

// processEnvMap converts "KEY=VALUE" entries to a map.
// If environ is empty, os.Environ() is used.
func processEnvMap(environ []string) map[string]string {
	if len(environ) == 0 {
		environ = os.Environ()
	}

	result := make(map[string]string, len(environ))

	for _, entry := range environ {
		if key, value, ok := strings.Cut(entry, "="); ok {
			result[key] = value
		}
	}

	return result
}

// envFunc returns the built-in env() function giving query expressions
// access to the process environment.
func envFunc(processEnv map[string]string) func(string) string {
	return func(key string) string {
		return processEnv[key]
	}
}
