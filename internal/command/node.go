package command

import (
	"context"
	"fmt"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/intent"
)

// EditNode updates the title and/or body of an existing node.
type EditNode struct {
	NodeID      int
	Title       string
	Body        string
	ContentType string

	deps *Deps
}

func newEditNode(in domain.Intent, deps *Deps) Command {
	cmd := &EditNode{ContentType: "article", deps: deps}
	cmd.NodeID, _ = in.Params.Int("node_id")
	cmd.Title, _ = in.Params.String("title")
	cmd.Body, _ = in.Params.String("body")
	if ct, ok := in.Params.String("content_type"); ok {
		cmd.ContentType = ct
	}
	return cmd
}

func (c *EditNode) Validate() error {
	if c.NodeID <= 0 {
		return missingParam("node_id")
	}
	if c.Title == "" && c.Body == "" {
		return missingParam("title or body")
	}
	return nil
}

func (c *EditNode) Execute(ctx context.Context) domain.Result {
	fields := map[string]any{}
	if c.Title != "" {
		fields["title"] = c.Title
	}
	if c.Body != "" {
		fields["body"] = map[string]any{
			"value":  intent.HTMLBody(c.Body),
			"format": "full_html",
		}
	}

	ref, err := c.deps.Content.UpdateNode(ctx, c.NodeID, c.ContentType, fields)
	if err != nil {
		return domain.ResultFromError(err)
	}

	return domain.OK(fmt.Sprintf("Updated node %d", c.NodeID), map[string]any{
		"node_id": ref.ID,
		"url":     ref.URL,
	})
}

// DeleteNode removes a node.
type DeleteNode struct {
	NodeID      int
	ContentType string

	deps *Deps
}

func newDeleteNode(in domain.Intent, deps *Deps) Command {
	cmd := &DeleteNode{ContentType: "article", deps: deps}
	cmd.NodeID, _ = in.Params.Int("node_id")
	if ct, ok := in.Params.String("content_type"); ok {
		cmd.ContentType = ct
	}
	return cmd
}

func (c *DeleteNode) Validate() error {
	if c.NodeID <= 0 {
		return missingParam("node_id")
	}
	return nil
}

func (c *DeleteNode) Execute(ctx context.Context) domain.Result {
	if err := c.deps.Content.DeleteNode(ctx, c.NodeID, c.ContentType); err != nil {
		return domain.ResultFromError(err)
	}
	return domain.OK(fmt.Sprintf("Deleted node %d", c.NodeID), map[string]any{
		"node_id": c.NodeID,
	})
}
