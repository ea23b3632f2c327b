package cli

import (
	"testing"
	"time"

	"github.com/doeshing/drupai-go/internal/app"
)

func TestRootAcceptsRunFlags(t *testing.T) {
	root := buildRootCmd(&app.Container{})

	for _, name := range []string{"provider", "output", "timeout"} {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered on the root command", name)
		}
	}

	if err := root.ParseFlags([]string{"show me the latest posts", "-o", "json", "-p", "ollama", "--timeout", "30s"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if got, _ := root.Flags().GetString("output"); got != "json" {
		t.Errorf("output = %q", got)
	}
	if got, _ := root.Flags().GetString("provider"); got != "ollama" {
		t.Errorf("provider = %q", got)
	}
	if got, _ := root.Flags().GetDuration("timeout"); got != 30*time.Second {
		t.Errorf("timeout = %v", got)
	}
}
