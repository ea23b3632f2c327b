package ai

import (
	"context"
	"testing"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

type silentLogger struct{}

func (silentLogger) Debug(string, map[string]interface{})        {}
func (silentLogger) Info(string, map[string]interface{})         {}
func (silentLogger) Warn(string, map[string]interface{})         {}
func (silentLogger) Error(string, error, map[string]interface{}) {}

type scriptedProvider struct {
	text string
	err  error

	req ports.ProviderRequest
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Model() domain.ModelDefinition { return domain.ModelDefinition{} }

func (s *scriptedProvider) Generate(_ context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	s.req = req
	return ports.ProviderResponse{Text: s.text}, s.err
}

type scriptedFactory struct {
	provider ports.Provider
	err      error
}

func (s scriptedFactory) ForModel(domain.ModelDefinition) (ports.Provider, error) {
	return s.provider, s.err
}

func classifierConfig() domain.Config {
	return domain.Config{
		AI: domain.AISettings{ClassifierModel: "claude-sonnet-4"},
		Models: []domain.ModelDefinition{{
			Name:     "claude-sonnet-4",
			Endpoint: "https://api.anthropic.com/v1/messages",
		}},
	}
}

func TestClassifierDisabledWithoutModel(t *testing.T) {
	c := NewClassifier(domain.Config{}, scriptedFactory{}, silentLogger{})
	if c.Enabled() {
		t.Error("classifier should be disabled when no model is configured")
	}

	missing := domain.Config{AI: domain.AISettings{ClassifierModel: "nope"}}
	if NewClassifier(missing, scriptedFactory{}, silentLogger{}).Enabled() {
		t.Error("classifier should be disabled when the named model is absent")
	}
}

func TestClassifyParsesJSON(t *testing.T) {
	provider := &scriptedProvider{text: `{"operation": "query-search", "params": {"search_term": "drupal", "count": 3}}`}
	c := NewClassifier(classifierConfig(), scriptedFactory{provider: provider}, silentLogger{})
	if !c.Enabled() {
		t.Fatal("classifier should be enabled")
	}

	in, err := c.Classify(context.Background(), "look up drupal things")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if in.Operation != domain.OpQuerySearch {
		t.Errorf("Operation = %q", in.Operation)
	}
	if in.Source != domain.SourceAI {
		t.Errorf("Source = %q", in.Source)
	}
	if term, _ := in.Params.String("search_term"); term != "drupal" {
		t.Errorf("search_term = %q", term)
	}
	if n, _ := in.Params.Int("count"); n != 3 {
		t.Errorf("count = %d", n)
	}
	if provider.req.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d", provider.req.MaxTokens)
	}
}

func TestClassifyStripsCodeFence(t *testing.T) {
	provider := &scriptedProvider{text: "```json\n{\"operation\": \"delete-node\", \"params\": {\"node_id\": 7}}\n```"}
	c := NewClassifier(classifierConfig(), scriptedFactory{provider: provider}, silentLogger{})

	in, err := c.Classify(context.Background(), "get rid of number seven")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if in.Operation != domain.OpDeleteNode {
		t.Errorf("Operation = %q", in.Operation)
	}
}

func TestClassifyUnknownOperation(t *testing.T) {
	provider := &scriptedProvider{text: `{"operation": "unknown", "params": {}}`}
	c := NewClassifier(classifierConfig(), scriptedFactory{provider: provider}, silentLogger{})

	in, err := c.Classify(context.Background(), "make me a sandwich")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if in.Operation != domain.OpUnknown {
		t.Errorf("Operation = %q", in.Operation)
	}
}

func TestClassifyMalformedResponse(t *testing.T) {
	provider := &scriptedProvider{text: "sure, I'd be happy to help with that!"}
	c := NewClassifier(classifierConfig(), scriptedFactory{provider: provider}, silentLogger{})

	_, err := c.Classify(context.Background(), "whatever")
	if err == nil {
		t.Fatal("expected error for non-JSON response")
	}
	f, ok := domain.AsFailure(err)
	if !ok || f.Kind != domain.ProviderFailure {
		t.Errorf("failure = %v", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInferProviderKind(t *testing.T) {
	cases := []struct {
		endpoint string
		name     string
		want     domain.ProviderKind
	}{
		{"https://api.anthropic.com/v1/messages", "claude-sonnet-4", domain.ProviderKindAnthropic},
		{"https://api.openai.com/v1/chat/completions", "gpt-4o", domain.ProviderKindOpenAI},
		{"http://localhost:11434/api/chat", "llama3", domain.ProviderKindOllama},
		{"http://127.0.0.1:11434/api/chat", "llama3", domain.ProviderKindOllama},
		{"https://internal.example.com/llm", "ollama-mirror", domain.ProviderKindOllama},
		{"https://internal.example.com/llm", "mystery", domain.ProviderKindUnknown},
	}
	for _, tc := range cases {
		if got := inferProviderKind(tc.endpoint, tc.name); got != tc.want {
			t.Errorf("inferProviderKind(%q, %q) = %q, want %q", tc.endpoint, tc.name, got, tc.want)
		}
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	_, err := NewFactory().ForModel(domain.ModelDefinition{
		Name:     "mystery",
		Endpoint: "https://internal.example.com/llm",
	})
	if err == nil {
		t.Fatal("expected error for undeterminable provider")
	}
	f, ok := domain.AsFailure(err)
	if !ok || f.Kind != domain.ProviderFailure {
		t.Errorf("failure = %v", err)
	}
}
