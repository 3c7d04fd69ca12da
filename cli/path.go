package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/vcfg/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// cacheDir returns the directory for transient files: REPL history and
// profiles.
func cacheDir() string { return pkg.CacheDir() }

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
