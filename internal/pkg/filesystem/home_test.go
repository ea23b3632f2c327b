package filesystem

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestStateDirUnderHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME override is POSIX only")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := StateDir(); got != filepath.Join(home, ".drupai") {
		t.Errorf("StateDir() = %q", got)
	}
}

func TestUserHomeDirFallback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME override is POSIX only")
	}
	t.Setenv("HOME", "")
	if got := UserHomeDir(); got != "." {
		t.Errorf("UserHomeDir() = %q", got)
	}
}
