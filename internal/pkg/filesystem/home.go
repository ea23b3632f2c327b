// Package filesystem anchors drupai state paths in the user's home.
package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir resolves the home directory that anchors ~/.drupai and
// ~/sites. When the home cannot be determined it falls back to ".".
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// StateDir is the root directory for drupai's own files: the config
// file and the dispatch history live under it.
func StateDir() string {
	return filepath.Join(UserHomeDir(), ".drupai")
}
