package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

type kindFactory struct {
	provider *scriptedProvider
	model    domain.ModelDefinition
}

func (k *kindFactory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	k.model = model
	return k.provider, nil
}

func generatorConfig() domain.Config {
	return domain.Config{
		AI: domain.AISettings{DefaultModel: "claude-sonnet-4"},
		Models: []domain.ModelDefinition{
			{Name: "claude-sonnet-4", Endpoint: "https://api.anthropic.com/v1/messages"},
			{Name: "local-llama", Endpoint: "http://localhost:11434/api/chat"},
		},
	}
}

func TestGenerateUsesDefaultModel(t *testing.T) {
	factory := &kindFactory{provider: &scriptedProvider{text: "<p>Coffee is complicated.</p>"}}
	g := NewGenerator(generatorConfig(), factory, silentLogger{})

	body, err := g.Generate(context.Background(), "coffee brewing", "article", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if body != "<p>Coffee is complicated.</p>" {
		t.Errorf("body = %q", body)
	}
	if factory.model.Name != "claude-sonnet-4" {
		t.Errorf("selected model = %q", factory.model.Name)
	}
	if !strings.Contains(factory.provider.req.Prompt, "coffee brewing") {
		t.Errorf("prompt = %q", factory.provider.req.Prompt)
	}
}

func TestGenerateOverrideByProviderKind(t *testing.T) {
	factory := &kindFactory{provider: &scriptedProvider{text: "body"}}
	g := NewGenerator(generatorConfig(), factory, silentLogger{})

	if _, err := g.Generate(context.Background(), "topic", "article", "ollama"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if factory.model.Name != "local-llama" {
		t.Errorf("selected model = %q, want the ollama entry", factory.model.Name)
	}
}

func TestGenerateUnknownOverride(t *testing.T) {
	g := NewGenerator(generatorConfig(), &kindFactory{provider: &scriptedProvider{}}, silentLogger{})

	_, err := g.Generate(context.Background(), "topic", "article", "gemini")
	if err == nil {
		t.Fatal("expected error for unknown override")
	}
	f, ok := domain.AsFailure(err)
	if !ok || f.Kind != domain.ProviderFailure {
		t.Fatalf("failure = %v", err)
	}
	if len(f.Suggestions) == 0 || !strings.Contains(f.Suggestions[0], "claude-sonnet-4") {
		t.Errorf("suggestions = %v", f.Suggestions)
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	factory := &kindFactory{provider: &scriptedProvider{text: "   \n"}}
	g := NewGenerator(generatorConfig(), factory, silentLogger{})

	if _, err := g.Generate(context.Background(), "topic", "article", ""); err == nil {
		t.Fatal("expected error for empty provider response")
	}
}

func TestSuggestTags(t *testing.T) {
	factory := &kindFactory{provider: &scriptedProvider{text: "Go, Drupal , automation,\n"}}
	g := NewGenerator(generatorConfig(), factory, silentLogger{})

	tags, err := g.SuggestTags(context.Background(), "<p>body</p>")
	if err != nil {
		t.Fatalf("SuggestTags: %v", err)
	}
	want := []string{"go", "drupal", "automation"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v", tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
	if factory.provider.req.MaxTokens != 128 {
		t.Errorf("MaxTokens = %d", factory.provider.req.MaxTokens)
	}
}
