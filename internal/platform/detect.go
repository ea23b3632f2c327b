// Package platform detects which local-environment backend governs a site
// directory and drives the lifecycle operations against it.
package platform

import (
	"os"
	"path/filepath"

	"github.com/doeshing/drupai-go/internal/domain"
)

// Marker files checked during detection. The ddev marker is checked first;
// if a directory somehow carries both, ddev wins.
const (
	ddevMarker  = ".ddev/config.yaml"
	landoMarker = ".lando.yml"
)

// Detect inspects a site directory's on-disk markers and reports the
// governing platform. It never guesses: a directory with neither marker is
// PlatformUnknown. Detection is recomputed on every call so that a
// directory reconfigured between calls is always honored.
func Detect(dir string) domain.Platform {
	if fileExists(filepath.Join(dir, filepath.FromSlash(ddevMarker))) {
		return domain.PlatformDDEV
	}
	if fileExists(filepath.Join(dir, landoMarker)) {
		return domain.PlatformLando
	}
	return domain.PlatformUnknown
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
