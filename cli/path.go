package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/menugen/pkg"
)

const (
	// baseConfig is the base name of the configuration file.
	baseConfig = "config"
	configExt  = ".yaml"
)

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

func configDir() string { return pkg.ConfigDir() }

func cacheDir() string { return pkg.CacheDir() }

// configPath joins the configuration directory with elem.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
