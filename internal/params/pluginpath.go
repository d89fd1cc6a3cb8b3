package params

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// BundleExtension is the directory extension of an installed plugin bundle.
const BundleExtension = ".sdPlugin"

// ErrNoBundle is returned when a path is not inside a plugin bundle.
var ErrNoBundle = errors.New("not inside a " + BundleExtension + " bundle")

// PluginPath returns the nearest enclosing plugin bundle directory of path.
//
// Paths containing ".." are rejected rather than resolved.
func PluginPath(path string) (string, error) {
	if path == "" || !filepath.IsAbs(path) {
		return "", ErrNoBundle
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return "", ErrNoBundle
		}
	}

	dir := filepath.Clean(path)
	for {
		base := filepath.Base(dir)
		if strings.HasSuffix(base, BundleExtension) && base != BundleExtension {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoBundle
		}
		dir = parent
	}
}

// ExecutablePluginPath returns the bundle directory of the running executable.
func ExecutablePluginPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return PluginPath(exe)
}
