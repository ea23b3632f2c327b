// Package scaffold provisions new Drupal projects on a local platform.
package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/platform"
	"github.com/doeshing/drupai-go/internal/ports"
)

// Scaffolder creates a composer project, configures the platform, starts
// it, and installs Drupal. Every step is an external tool invocation; the
// directory is checked before anything is written.
type Scaffolder struct {
	runner ports.ProcessRunner
	tools  domain.ToolSettings
	sites  domain.SiteSettings
	log    ports.Logger
}

// NewScaffolder builds a scaffolder from the loaded configuration.
func NewScaffolder(runner ports.ProcessRunner, cfg domain.Config, log ports.Logger) *Scaffolder {
	return &Scaffolder{runner: runner, tools: cfg.Tools, sites: cfg.Sites, log: log}
}

// landoFile mirrors the .lando.yml a fresh Drupal recipe needs.
type landoFile struct {
	Name   string `yaml:"name"`
	Recipe string `yaml:"recipe"`
	Config struct {
		Webroot string `yaml:"webroot"`
		PHP     string `yaml:"php,omitempty"`
	} `yaml:"config"`
}

// CreateSite implements ports.SiteScaffolder.
func (s *Scaffolder) CreateSite(ctx context.Context, spec ports.SiteSpec) (ports.SiteInfo, error) {
	if err := s.checkDirectory(spec.Directory); err != nil {
		return ports.SiteInfo{}, err
	}

	composer, err := s.lookTool(s.tools.Composer, "composer", "https://getcomposer.org/download/")
	if err != nil {
		return ports.SiteInfo{}, err
	}
	platformTool, err := s.platformTool(spec.Platform)
	if err != nil {
		return ports.SiteInfo{}, err
	}

	if err := os.MkdirAll(filepath.Dir(spec.Directory), domain.DirectoryPermissions); err != nil {
		return ports.SiteInfo{}, err
	}

	s.log.Info("scaffolding site", map[string]interface{}{
		"name":     spec.Name,
		"platform": string(spec.Platform),
		"dir":      spec.Directory,
	})

	if err := s.step(ctx, "", composer, domain.ScaffoldTimeout,
		"create-project", "drupal/recommended-project", spec.Directory, "--no-interaction"); err != nil {
		return ports.SiteInfo{}, err
	}
	if err := s.step(ctx, spec.Directory, composer, domain.ScaffoldTimeout,
		"require", "drush/drush", "--no-interaction"); err != nil {
		return ports.SiteInfo{}, err
	}

	switch spec.Platform {
	case domain.PlatformDDEV:
		err = s.provisionDDEV(ctx, platformTool, spec)
	case domain.PlatformLando:
		err = s.provisionLando(ctx, platformTool, spec)
	default:
		err = domain.NewFailure(domain.ValidationFailure, "unsupported platform %q", spec.Platform)
	}
	if err != nil {
		return ports.SiteInfo{}, err
	}

	site := domain.SiteDescriptor{Name: spec.Name, Directory: spec.Directory, Platform: spec.Platform}
	return ports.SiteInfo{
		Name:      spec.Name,
		URL:       platform.URL(site),
		Directory: spec.Directory,
		Platform:  spec.Platform,
		AdminUser: s.sites.AdminUser,
		AdminPass: s.sites.AdminPass,
	}, nil
}

func (s *Scaffolder) provisionDDEV(ctx context.Context, tool string, spec ports.SiteSpec) error {
	if err := s.step(ctx, spec.Directory, tool, domain.LifecycleStartTimeout,
		"config",
		"--project-type="+s.sites.ProjectType,
		"--project-name="+spec.Name,
		"--docroot=web"); err != nil {
		return err
	}
	if err := s.step(ctx, spec.Directory, tool, domain.LifecycleStartTimeout, "start"); err != nil {
		return err
	}
	return s.step(ctx, spec.Directory, tool, domain.ScaffoldTimeout,
		"drush", "site:install", "--yes",
		"--account-name="+s.sites.AdminUser,
		"--account-pass="+s.sites.AdminPass)
}

func (s *Scaffolder) provisionLando(ctx context.Context, tool string, spec ports.SiteSpec) error {
	var lf landoFile
	lf.Name = spec.Name
	lf.Recipe = s.sites.ProjectType
	lf.Config.Webroot = "web"

	raw, err := yaml.Marshal(lf)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(spec.Directory, ".lando.yml"), raw, 0o644); err != nil {
		return err
	}

	if err := s.step(ctx, spec.Directory, tool, domain.LifecycleStartTimeout, "start"); err != nil {
		return err
	}
	return s.step(ctx, spec.Directory, tool, domain.ScaffoldTimeout,
		"drush", "site:install", "--yes",
		"--account-name="+s.sites.AdminUser,
		"--account-pass="+s.sites.AdminPass)
}

// step runs one tool invocation and folds a non-zero exit into a failure.
func (s *Scaffolder) step(ctx context.Context, dir, tool string, timeout time.Duration, args ...string) error {
	res, err := s.runner.Run(ctx, ports.ProcessSpec{
		Path:    tool,
		Args:    args,
		Dir:     dir,
		Timeout: timeout,
	})
	if err != nil {
		return domain.WrapFailure(domain.PlatformFailure, err,
			"%s %v did not complete", filepath.Base(tool), args)
	}
	if res.ExitCode != 0 {
		return domain.NewFailure(domain.PlatformFailure,
			"%s %v failed (exit %d)", filepath.Base(tool), args, res.ExitCode).
			WithSuggestions(trimOutput(res.Stderr))
	}
	return nil
}

// checkDirectory refuses to scaffold into an existing non-empty directory.
func (s *Scaffolder) checkDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return domain.NewFailure(domain.ValidationFailure,
			"directory %s already exists and is not empty", dir).
			WithSuggestions("pick a different project name or remove the directory yourself")
	}
	return nil
}

func (s *Scaffolder) platformTool(p domain.Platform) (string, error) {
	switch p {
	case domain.PlatformDDEV:
		return s.lookTool(s.tools.DDEV, "ddev", "https://ddev.com/get-started/")
	case domain.PlatformLando:
		return s.lookTool(s.tools.Lando, "lando", "https://docs.lando.dev/getting-started/installation.html")
	default:
		return "", domain.NewFailure(domain.ValidationFailure, "unsupported platform %q", p)
	}
}

func (s *Scaffolder) lookTool(configured, fallback, install string) (string, error) {
	name := configured
	if name == "" {
		name = fallback
	}
	path, err := s.runner.LookPath(name)
	if err != nil {
		return "", domain.NewFailure(domain.PlatformFailure,
			"%s is not installed or not on PATH", name).
			WithSuggestions("install it: " + install)
	}
	return path, nil
}

func trimOutput(s string) string {
	const max = 200
	if len(s) > max {
		s = s[:max]
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}

var _ ports.SiteScaffolder = (*Scaffolder)(nil)
