package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/drupai-go/internal/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("name: test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetect(t *testing.T) {
	t.Run("ddev marker", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, ".ddev", "config.yaml"))
		if got := Detect(dir); got != domain.PlatformDDEV {
			t.Errorf("Detect = %q", got)
		}
	})

	t.Run("lando marker", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, ".lando.yml"))
		if got := Detect(dir); got != domain.PlatformLando {
			t.Errorf("Detect = %q", got)
		}
	})

	t.Run("both markers prefers ddev", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, ".ddev", "config.yaml"))
		touch(t, filepath.Join(dir, ".lando.yml"))
		if got := Detect(dir); got != domain.PlatformDDEV {
			t.Errorf("Detect = %q", got)
		}
	})

	t.Run("unchanged directory detects the same", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, ".ddev", "config.yaml"))
		first := Detect(dir)
		second := Detect(dir)
		if first != domain.PlatformDDEV || second != first {
			t.Errorf("Detect twice = %q, %q", first, second)
		}
	})

	t.Run("no markers", func(t *testing.T) {
		if got := Detect(t.TempDir()); got != domain.PlatformUnknown {
			t.Errorf("Detect = %q", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		if got := Detect(filepath.Join(t.TempDir(), "nope")); got != domain.PlatformUnknown {
			t.Errorf("Detect = %q", got)
		}
	})

	t.Run("marker is a directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, ".lando.yml"), 0o755); err != nil {
			t.Fatal(err)
		}
		if got := Detect(dir); got != domain.PlatformUnknown {
			t.Errorf("Detect = %q", got)
		}
	})
}
