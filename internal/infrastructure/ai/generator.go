package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

const generateSystemPrompt = `You are a professional content writer for a Drupal site.
Write well-structured, engaging prose. Respond with the article body only:
no title line, no markdown headings, no preamble.`

const tagSystemPrompt = `You suggest taxonomy terms for Drupal content.
Respond with 3 to 5 short lowercase tags separated by commas. Nothing else.`

// Generator produces node bodies and tag suggestions through a configured
// provider. Model selection honors an explicit override by model name or
// provider kind, falling back to the configured default.
type Generator struct {
	models       []domain.ModelDefinition
	defaultModel string
	factory      ports.ProviderFactory
	timeout      time.Duration
	log          ports.Logger
}

// NewGenerator builds a generator from the loaded configuration.
func NewGenerator(cfg domain.Config, factory ports.ProviderFactory, log ports.Logger) *Generator {
	timeout := time.Duration(cfg.AI.GenerateTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = domain.DefaultGenerateTimeout
	}
	return &Generator{
		models:       cfg.Models,
		defaultModel: cfg.AI.DefaultModel,
		factory:      factory,
		timeout:      timeout,
		log:          log,
	}
}

// Generate implements ports.ContentGenerator.
func (g *Generator) Generate(ctx context.Context, topic, contentType, providerOverride string) (string, error) {
	provider, err := g.provider(providerOverride)
	if err != nil {
		return "", err
	}

	g.log.Debug("generating content", map[string]interface{}{
		"provider": provider.Name(),
		"model":    provider.Model().Name,
		"topic":    topic,
	})

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := provider.Generate(ctx, ports.ProviderRequest{
		System: generateSystemPrompt,
		Prompt: fmt.Sprintf("Write a Drupal %s about: %s", contentTypeLabel(contentType), topic),
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", domain.NewFailure(domain.ProviderFailure,
			"%s returned an empty body for topic %q", provider.Name(), topic)
	}
	return resp.Text, nil
}

// SuggestTags implements ports.ContentGenerator.
func (g *Generator) SuggestTags(ctx context.Context, body string) ([]string, error) {
	provider, err := g.provider("")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := provider.Generate(ctx, ports.ProviderRequest{
		System:    tagSystemPrompt,
		Prompt:    "Suggest tags for this content:\n\n" + truncate(body, 2000),
		MaxTokens: 128,
	})
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, part := range strings.Split(resp.Text, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// provider resolves an override to a model. An override matches either a
// model name from config or a provider kind (anthropic, openai, ollama).
func (g *Generator) provider(override string) (ports.Provider, error) {
	name := override
	if name == "" {
		name = g.defaultModel
	}

	if model, ok := g.findByName(name); ok {
		return g.factory.ForModel(model)
	}
	if model, ok := g.findByKind(name); ok {
		return g.factory.ForModel(model)
	}

	return nil, domain.NewFailure(domain.ProviderFailure,
		"no configured model matches %q", name).
		WithSuggestions("add the model to the models list in config, or use one of: " + g.modelNames())
}

func (g *Generator) findByName(name string) (domain.ModelDefinition, bool) {
	for _, m := range g.models {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return domain.ModelDefinition{}, false
}

func (g *Generator) findByKind(kind string) (domain.ModelDefinition, bool) {
	for _, m := range g.models {
		if string(inferProviderKind(m.Endpoint, m.Name)) == strings.ToLower(kind) {
			return m, true
		}
	}
	return domain.ModelDefinition{}, false
}

func (g *Generator) modelNames() string {
	names := make([]string, 0, len(g.models))
	for _, m := range g.models {
		names = append(names, m.Name)
	}
	return strings.Join(names, ", ")
}

func contentTypeLabel(contentType string) string {
	switch contentType {
	case "", "article":
		return "blog article"
	case "page":
		return "static page"
	default:
		return contentType + " entry"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

var _ ports.ContentGenerator = (*Generator)(nil)
