package command

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/intent"
	"github.com/doeshing/drupai-go/internal/platform"
	"github.com/doeshing/drupai-go/internal/ports"
)

// CreateSite scaffolds a brand-new Drupal project under the configured
// sites root and brings it up on the requested platform.
type CreateSite struct {
	Project  string
	Platform string

	deps *Deps
}

func newCreateSite(in domain.Intent, deps *Deps) Command {
	cmd := &CreateSite{deps: deps}
	if name, ok := in.Params.String("project_name"); ok {
		cmd.Project = intent.Slug(name)
	}
	cmd.Platform, _ = in.Params.String("platform")
	return cmd
}

func (c *CreateSite) Validate() error {
	if c.Project == "" {
		return missingParam("project_name")
	}
	switch c.Platform {
	case string(domain.PlatformDDEV), string(domain.PlatformLando):
		return nil
	case "":
		return missingParam("platform")
	default:
		return domain.NewFailure(domain.ValidationFailure,
			"unsupported platform %q", c.Platform).
			WithSuggestions("use ddev or lando")
	}
}

func (c *CreateSite) Execute(ctx context.Context) domain.Result {
	spec := ports.SiteSpec{
		Name:      c.Project,
		Platform:  domain.Platform(c.Platform),
		Directory: filepath.Join(c.deps.Config.Sites.Root, c.Project),
	}

	info, err := c.deps.Scaffold.CreateSite(ctx, spec)
	if err != nil {
		return domain.ResultFromError(err)
	}

	return domain.OK(
		fmt.Sprintf("Site %q created and running at %s", info.Name, info.URL),
		map[string]any{
			"project_name": info.Name,
			"platform":     string(info.Platform),
			"url":          info.URL,
			"directory":    info.Directory,
			"admin_user":   info.AdminUser,
			"admin_pass":   info.AdminPass,
		},
	)
}

// StartSite brings an existing site's services up.
type StartSite struct {
	Project string
	deps    *Deps
}

func newStartSite(in domain.Intent, deps *Deps) Command {
	cmd := &StartSite{deps: deps}
	cmd.Project, _ = in.Params.String("project_name")
	return cmd
}

func (c *StartSite) Validate() error {
	if c.Project == "" {
		return missingParam("project_name")
	}
	return nil
}

func (c *StartSite) Execute(ctx context.Context) domain.Result {
	return lifecycleResult(ctx, c.deps, c.Project, "started", c.deps.Sites.Start)
}

// StopSite shuts an existing site's services down.
type StopSite struct {
	Project string
	deps    *Deps
}

func newStopSite(in domain.Intent, deps *Deps) Command {
	cmd := &StopSite{deps: deps}
	cmd.Project, _ = in.Params.String("project_name")
	return cmd
}

func (c *StopSite) Validate() error {
	if c.Project == "" {
		return missingParam("project_name")
	}
	return nil
}

func (c *StopSite) Execute(ctx context.Context) domain.Result {
	return lifecycleResult(ctx, c.deps, c.Project, "stopped", c.deps.Sites.Stop)
}

// RestartSite cycles an existing site's services.
type RestartSite struct {
	Project string
	deps    *Deps
}

func newRestartSite(in domain.Intent, deps *Deps) Command {
	cmd := &RestartSite{deps: deps}
	cmd.Project, _ = in.Params.String("project_name")
	return cmd
}

func (c *RestartSite) Validate() error {
	if c.Project == "" {
		return missingParam("project_name")
	}
	return nil
}

func (c *RestartSite) Execute(ctx context.Context) domain.Result {
	return lifecycleResult(ctx, c.deps, c.Project, "restarted", c.deps.Sites.Restart)
}

// StatusSite reports the observed state of an existing site.
type StatusSite struct {
	Project string
	deps    *Deps
}

func newStatusSite(in domain.Intent, deps *Deps) Command {
	cmd := &StatusSite{deps: deps}
	cmd.Project, _ = in.Params.String("project_name")
	return cmd
}

func (c *StatusSite) Validate() error {
	if c.Project == "" {
		return missingParam("project_name")
	}
	return nil
}

func (c *StatusSite) Execute(ctx context.Context) domain.Result {
	site, err := c.deps.Sites.Descriptor(c.Project)
	if err != nil {
		return domain.ResultFromError(err)
	}

	report, err := c.deps.Sites.Status(ctx, site)
	if err != nil {
		return domain.ResultFromError(err)
	}

	return domain.OK(
		fmt.Sprintf("Site %q is %s", site.Name, report.Status),
		map[string]any{
			"project_name": site.Name,
			"platform":     string(site.Platform),
			"status":       string(report.Status),
			"url":          report.URL,
			"directory":    site.Directory,
		},
	)
}

type lifecycleFn func(context.Context, domain.SiteDescriptor) (platform.Report, error)

func lifecycleResult(ctx context.Context, deps *Deps, project, verb string, fn lifecycleFn) domain.Result {
	site, err := deps.Sites.Descriptor(project)
	if err != nil {
		return domain.ResultFromError(err)
	}

	report, err := fn(ctx, site)
	if err != nil {
		return domain.ResultFromError(err)
	}

	return domain.OK(
		fmt.Sprintf("Site %q %s", site.Name, verb),
		map[string]any{
			"project_name": site.Name,
			"platform":     string(site.Platform),
			"status":       string(report.Status),
			"url":          report.URL,
			"directory":    site.Directory,
		},
	)
}
