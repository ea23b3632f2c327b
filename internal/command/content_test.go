package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

func TestCreatePostValidate(t *testing.T) {
	cmd, err := NewRegistry(&Deps{}).Create(ruleIntent(domain.OpCreatePost, domain.Params{}))
	require.NoError(t, err)

	err = cmd.Validate()
	require.Error(t, err)
	f, ok := domain.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, domain.ValidationFailure, f.Kind)
	assert.NotEmpty(t, f.Suggestions)
}

func TestCreatePostGeneratesFromTopic(t *testing.T) {
	gen := &stubGenerator{body: "<p>Brewing is chemistry.</p>", tags: []string{"coffee", "brewing"}}
	content := &stubContent{ref: ports.NodeRef{ID: 12, UUID: "u-12", URL: "https://drupal.ddev.site/node/12"}}
	deps := &Deps{Generator: gen, Content: content, Logger: nopLogger{}}

	cmd, err := NewRegistry(deps).Create(ruleIntent(domain.OpCreatePost, domain.Params{
		"topic":       "coffee brewing",
		"ai_provider": "ollama",
	}))
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	res := cmd.Execute(context.Background())
	require.True(t, res.Success, res.Message)

	assert.Equal(t, "coffee brewing", gen.topic)
	assert.Equal(t, "ollama", gen.override)
	assert.Equal(t, "Coffee Brewing", content.draft.Title)
	assert.Equal(t, "<p>Brewing is chemistry.</p>", content.draft.Body)
	assert.Equal(t, []string{"coffee", "brewing"}, content.draft.Tags)
	assert.Equal(t, 12, res.Data["node_id"])
}

func TestCreatePostExplicitTitleSkipsGenerator(t *testing.T) {
	gen := &stubGenerator{genErr: errBoom}
	content := &stubContent{ref: ports.NodeRef{ID: 3}}
	deps := &Deps{Generator: gen, Content: content, Logger: nopLogger{}}

	cmd, err := NewRegistry(deps).Create(ruleIntent(domain.OpCreatePost, domain.Params{
		"title": "Summer Recipes",
		"body":  "Fresh tomatoes and basil.",
	}))
	require.NoError(t, err)

	res := cmd.Execute(context.Background())
	require.True(t, res.Success, res.Message)

	assert.Equal(t, "Summer Recipes", content.draft.Title)
	assert.Contains(t, content.draft.Body, "Fresh tomatoes and basil.")
	assert.Empty(t, gen.topic, "generator must not run when a body is supplied")
}

func TestCreatePostGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{genErr: domain.NewFailure(domain.ProviderFailure, "model unavailable")}
	deps := &Deps{Generator: gen, Content: &stubContent{}, Logger: nopLogger{}}

	cmd, err := NewRegistry(deps).Create(ruleIntent(domain.OpCreatePost, domain.Params{
		"topic": "winter hiking",
	}))
	require.NoError(t, err)

	res := cmd.Execute(context.Background())
	require.False(t, res.Success)
	assert.Equal(t, string(domain.ProviderFailure), res.Data["error"])
	assert.Equal(t, "model unavailable", res.Message)
}

func TestCreatePostTagSuggestionFailureIsNonFatal(t *testing.T) {
	gen := &stubGenerator{body: "<p>Generated.</p>", tagsErr: errBoom}
	content := &stubContent{ref: ports.NodeRef{ID: 8}}
	deps := &Deps{Generator: gen, Content: content, Logger: nopLogger{}}

	cmd, err := NewRegistry(deps).Create(ruleIntent(domain.OpCreatePost, domain.Params{
		"topic": "anything",
		"tags":  []string{"manual"},
	}))
	require.NoError(t, err)

	res := cmd.Execute(context.Background())
	require.True(t, res.Success, res.Message)
	assert.Equal(t, []string{"manual"}, content.draft.Tags)
}
