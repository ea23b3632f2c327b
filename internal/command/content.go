package command

import (
	"context"
	"fmt"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/intent"
	"github.com/doeshing/drupai-go/internal/ports"
)

// CreatePost creates an article or blog post, generating the body with the
// configured AI provider when only a topic is given.
type CreatePost struct {
	Title       string
	Topic       string
	Body        string
	ContentType string
	Provider    string
	Tags        []string

	deps *Deps
}

func newCreatePost(in domain.Intent, deps *Deps) Command {
	cmd := &CreatePost{ContentType: "article", deps: deps}
	cmd.Title, _ = in.Params.String("title")
	cmd.Topic, _ = in.Params.String("topic")
	cmd.Body, _ = in.Params.String("body")
	cmd.Provider, _ = in.Params.String("ai_provider")
	if ct, ok := in.Params.String("content_type"); ok {
		cmd.ContentType = ct
	}
	cmd.Tags, _ = in.Params.StringSlice("tags")
	return cmd
}

func (c *CreatePost) Validate() error {
	if c.Title == "" && c.Topic == "" {
		return missingParam("title or topic").WithSuggestions(
			`try: create a post titled "My Title"`,
			`try: create a post about some topic`,
		)
	}
	return nil
}

func (c *CreatePost) Execute(ctx context.Context) domain.Result {
	title := c.Title
	body := c.Body
	tags := c.Tags

	if body == "" && c.Topic != "" {
		generated, err := c.deps.Generator.Generate(ctx, c.Topic, c.ContentType, c.Provider)
		if err != nil {
			return domain.ResultFromError(err)
		}
		body = generated
		// Tag suggestions are best-effort; a provider hiccup here must not
		// sink an otherwise successful creation.
		if suggested, err := c.deps.Generator.SuggestTags(ctx, body); err == nil && len(suggested) > 0 {
			tags = suggested
		}
	}

	if title == "" {
		title = intent.TitleFromTopic(c.Topic)
	}
	if body == "" {
		body = "<p>" + title + "</p>"
	}

	ref, err := c.deps.Content.CreateNode(ctx, ports.NodeDraft{
		Title:       title,
		Body:        intent.HTMLBody(body),
		ContentType: c.ContentType,
		Tags:        tags,
	})
	if err != nil {
		return domain.ResultFromError(err)
	}

	return domain.OK(fmt.Sprintf("Created post: %s", title), map[string]any{
		"node_id":      ref.ID,
		"url":          ref.URL,
		"uuid":         ref.UUID,
		"title":        title,
		"content_type": c.ContentType,
		"tags":         tags,
	})
}
