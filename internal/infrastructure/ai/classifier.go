package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

const classifySystemPrompt = `You classify operator requests for a Drupal management agent.
Respond with a single JSON object and nothing else:
{"operation": "<operation>", "params": {<string keys and values>}}

Operations and their params:
  create-post   {"title" or "topic", "content_type", "tags"}
  edit-node     {"node_id", "title" or "body"}
  delete-node   {"node_id"}
  upload-media  {"file_path", "alt_text"}
  run-drush     {"command", "module"}
  query-latest  {"count", "content_type"}
  query-search  {"search_term", "count"}
  query-users   {"role", "count"}
  query-tagged  {"tags", "count"}
  create-site   {"project_name", "platform"}
  start-site    {"project_name"}
  stop-site     {"project_name"}
  restart-site  {"project_name"}
  status-site   {"project_name"}

If the request fits none of these, use {"operation": "unknown", "params": {}}.`

// Classifier is the AI fallback for inputs no pattern rule matches.
type Classifier struct {
	model   domain.ModelDefinition
	enabled bool
	factory ports.ProviderFactory
	log     ports.Logger
}

// NewClassifier builds the classifier from configuration. An empty
// classifier_model disables it; the resolver then skips straight to the
// unresolved sentinel.
func NewClassifier(cfg domain.Config, factory ports.ProviderFactory, log ports.Logger) *Classifier {
	c := &Classifier{factory: factory, log: log}
	name := cfg.AI.ClassifierModel
	if name == "" {
		return c
	}
	for _, m := range cfg.Models {
		if strings.EqualFold(m.Name, name) {
			c.model = m
			c.enabled = true
			return c
		}
	}
	log.Warn("classifier model not found in models list", map[string]interface{}{"model": name})
	return c
}

// Enabled implements ports.IntentClassifier.
func (c *Classifier) Enabled() bool {
	return c.enabled
}

// Classify implements ports.IntentClassifier. The caller bounds ctx; no
// additional timeout is applied here.
func (c *Classifier) Classify(ctx context.Context, raw string) (domain.Intent, error) {
	provider, err := c.factory.ForModel(c.model)
	if err != nil {
		return domain.Intent{}, err
	}

	resp, err := provider.Generate(ctx, ports.ProviderRequest{
		System:    classifySystemPrompt,
		Prompt:    raw,
		MaxTokens: 512,
	})
	if err != nil {
		return domain.Intent{}, err
	}

	var parsed struct {
		Operation string                 `json:"operation"`
		Params    map[string]interface{} `json:"params"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &parsed); err != nil {
		return domain.Intent{}, domain.WrapFailure(domain.ProviderFailure, err,
			"classifier returned malformed JSON")
	}

	op := domain.Operation(parsed.Operation)
	if !op.Known() {
		return domain.Unresolved(raw), nil
	}

	params := domain.Params{}
	for k, v := range parsed.Params {
		params[k] = v
	}

	c.log.Debug("classifier resolved intent", map[string]interface{}{
		"operation": string(op),
	})

	return domain.Intent{Operation: op, Params: params, Source: domain.SourceAI}, nil
}

// stripCodeFence unwraps a ```json ... ``` block if the model added one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if first == "json" || first == "" {
			s = s[i+1:]
		}
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

var _ ports.IntentClassifier = (*Classifier)(nil)
