package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/drupai-go/internal/domain"
)

func clampLimit(n int) int {
	if n <= 0 {
		return domain.DefaultQueryLimit
	}
	if n > domain.MaxQueryLimit {
		return domain.MaxQueryLimit
	}
	return n
}

// QueryLatest lists the most recently created nodes of a content type.
type QueryLatest struct {
	Count       int
	ContentType string

	deps *Deps
}

func newQueryLatest(in domain.Intent, deps *Deps) Command {
	cmd := &QueryLatest{ContentType: "article", deps: deps}
	cmd.Count, _ = in.Params.Int("count")
	if ct, ok := in.Params.String("content_type"); ok {
		cmd.ContentType = ct
	}
	return cmd
}

func (c *QueryLatest) Validate() error { return nil }

func (c *QueryLatest) Execute(ctx context.Context) domain.Result {
	limit := clampLimit(c.Count)
	nodes, err := c.deps.Query.LatestNodes(ctx, c.ContentType, limit)
	if err != nil {
		return domain.ResultFromError(err)
	}
	return domain.OK(fmt.Sprintf("Found %d %s node(s)", len(nodes), c.ContentType), map[string]any{
		"count":        len(nodes),
		"content_type": c.ContentType,
		"items":        nodes,
	})
}

// QuerySearch finds nodes whose title matches a term.
type QuerySearch struct {
	Term        string
	Count       int
	ContentType string

	deps *Deps
}

func newQuerySearch(in domain.Intent, deps *Deps) Command {
	cmd := &QuerySearch{ContentType: "article", deps: deps}
	cmd.Term, _ = in.Params.String("search_term")
	cmd.Count, _ = in.Params.Int("count")
	if ct, ok := in.Params.String("content_type"); ok {
		cmd.ContentType = ct
	}
	return cmd
}

func (c *QuerySearch) Validate() error {
	if c.Term == "" {
		return missingParam("search_term")
	}
	return nil
}

func (c *QuerySearch) Execute(ctx context.Context) domain.Result {
	nodes, err := c.deps.Query.SearchNodes(ctx, c.Term, c.ContentType, clampLimit(c.Count))
	if err != nil {
		return domain.ResultFromError(err)
	}
	return domain.OK(fmt.Sprintf("Found %d node(s) matching %q", len(nodes), c.Term), map[string]any{
		"count":       len(nodes),
		"search_term": c.Term,
		"items":       nodes,
	})
}

// QueryUsers lists users holding a role.
type QueryUsers struct {
	Role  string
	Count int

	deps *Deps
}

func newQueryUsers(in domain.Intent, deps *Deps) Command {
	cmd := &QueryUsers{deps: deps}
	cmd.Role, _ = in.Params.String("role")
	cmd.Count, _ = in.Params.Int("count")
	return cmd
}

func (c *QueryUsers) Validate() error {
	if c.Role == "" {
		return missingParam("role")
	}
	return nil
}

func (c *QueryUsers) Execute(ctx context.Context) domain.Result {
	users, err := c.deps.Query.UsersByRole(ctx, c.Role, clampLimit(c.Count))
	if err != nil {
		return domain.ResultFromError(err)
	}
	return domain.OK(fmt.Sprintf("Found %d user(s) with role %q", len(users), c.Role), map[string]any{
		"count": len(users),
		"role":  c.Role,
		"items": users,
	})
}

// QueryTagged lists nodes carrying specific taxonomy tags.
type QueryTagged struct {
	Tags        []string
	Count       int
	ContentType string

	deps *Deps
}

func newQueryTagged(in domain.Intent, deps *Deps) Command {
	cmd := &QueryTagged{ContentType: "article", deps: deps}
	cmd.Tags, _ = in.Params.StringSlice("tags")
	cmd.Count, _ = in.Params.Int("count")
	if ct, ok := in.Params.String("content_type"); ok {
		cmd.ContentType = ct
	}
	return cmd
}

func (c *QueryTagged) Validate() error {
	if len(c.Tags) == 0 {
		return missingParam("tags")
	}
	return nil
}

func (c *QueryTagged) Execute(ctx context.Context) domain.Result {
	nodes, err := c.deps.Query.NodesWithTags(ctx, c.Tags, c.ContentType, clampLimit(c.Count))
	if err != nil {
		return domain.ResultFromError(err)
	}
	return domain.OK(fmt.Sprintf("Found %d node(s) tagged %s", len(nodes), strings.Join(c.Tags, ", ")), map[string]any{
		"count": len(nodes),
		"tags":  c.Tags,
		"items": nodes,
	})
}
