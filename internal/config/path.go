// Package config resolves rfq settings from flags, environment and the config file.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands environment variables and then a leading ~ in path.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// expandPaths applies ExpandPath to each setting in place.
func expandPaths(paths ...*string) {
	for _, p := range paths {
		*p = ExpandPath(*p)
	}
}
