package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

// Report is the normalized outcome of one lifecycle operation.
type Report struct {
	Status domain.SiteStatus
	URL    string
	Output string
}

// Manager runs lifecycle operations against managed sites. It holds no
// per-site state: the platform is re-derived from disk on every call.
type Manager struct {
	runner ports.ProcessRunner
	tools  domain.ToolSettings
	root   string
	log    ports.Logger
}

// NewManager builds a lifecycle manager over the configured sites root.
func NewManager(runner ports.ProcessRunner, cfg domain.Config, log ports.Logger) *Manager {
	return &Manager{runner: runner, tools: cfg.Tools, root: cfg.Sites.Root, log: log}
}

// Descriptor locates a site by name and detects its platform. A missing
// directory and an undetectable platform are distinct failures: the former
// suggests creating the site, the latter points at the missing marker files.
func (m *Manager) Descriptor(name string) (domain.SiteDescriptor, error) {
	dir := filepath.Join(m.root, name)
	if _, err := os.Stat(dir); err != nil {
		return domain.SiteDescriptor{}, domain.NewFailure(domain.NotFoundFailure,
			"site directory not found: %s", dir).
			WithSuggestions(fmt.Sprintf("create it first: drupai \"create a ddev site named %s\"", name))
	}

	p := Detect(dir)
	if p == domain.PlatformUnknown {
		return domain.SiteDescriptor{}, domain.NewFailure(domain.PlatformFailure,
			"cannot determine platform for site %q", name).
			WithSuggestions(
				fmt.Sprintf("expected %s or %s under %s", ddevMarker, landoMarker, dir),
			)
	}

	return domain.SiteDescriptor{Name: name, Directory: dir, Platform: p}, nil
}

// Start brings the site's services up.
func (m *Manager) Start(ctx context.Context, site domain.SiteDescriptor) (Report, error) {
	return m.run(ctx, site, lifecycleOp{
		verb:    "start",
		args:    []string{"start"},
		timeout: domain.LifecycleStartTimeout,
		status:  domain.StatusRunning,
	})
}

// Stop shuts the site's services down.
func (m *Manager) Stop(ctx context.Context, site domain.SiteDescriptor) (Report, error) {
	return m.run(ctx, site, lifecycleOp{
		verb:    "stop",
		args:    []string{"stop"},
		timeout: domain.LifecycleStopTimeout,
		status:  domain.StatusStopped,
	})
}

// Restart cycles the site's services.
func (m *Manager) Restart(ctx context.Context, site domain.SiteDescriptor) (Report, error) {
	return m.run(ctx, site, lifecycleOp{
		verb:    "restart",
		args:    []string{"restart"},
		timeout: domain.LifecycleStartTimeout,
		status:  domain.StatusRunning,
	})
}

// Status queries the site without mutating anything. The observed state is
// parsed from the tool's textual output rather than assumed from the verb.
func (m *Manager) Status(ctx context.Context, site domain.SiteDescriptor) (Report, error) {
	args := []string{"status"}
	if site.Platform == domain.PlatformLando {
		args = []string{"info"}
	}
	report, err := m.run(ctx, site, lifecycleOp{
		verb:    "status",
		args:    args,
		timeout: domain.LifecycleStatusTimeout,
		status:  domain.StatusRunning,
	})
	if err != nil {
		return report, err
	}
	report.Status = parseStatus(report.Output)
	return report, nil
}

// URL returns the canonical local URL for a site on its platform.
func URL(site domain.SiteDescriptor) string {
	switch site.Platform {
	case domain.PlatformDDEV:
		return fmt.Sprintf("https://%s.ddev.site", site.Name)
	case domain.PlatformLando:
		return fmt.Sprintf("https://%s.lndo.site", site.Name)
	default:
		return ""
	}
}

type lifecycleOp struct {
	verb    string
	args    []string
	timeout time.Duration
	status  domain.SiteStatus
}

func (m *Manager) run(ctx context.Context, site domain.SiteDescriptor, op lifecycleOp) (Report, error) {
	path, err := m.toolPath(site.Platform)
	if err != nil {
		return Report{Status: domain.StatusError}, err
	}

	m.log.Info("lifecycle operation", map[string]interface{}{
		"site":     site.Name,
		"platform": string(site.Platform),
		"verb":     op.verb,
	})

	res, err := m.runner.Run(ctx, ports.ProcessSpec{
		Path:    path,
		Args:    op.args,
		Dir:     site.Directory,
		Timeout: op.timeout,
	})
	if err != nil {
		return Report{Status: domain.StatusError}, domain.WrapFailure(domain.PlatformFailure, err,
			"%s %s did not complete for site %q", site.Platform, op.verb, site.Name)
	}
	if res.ExitCode != 0 {
		return Report{Status: domain.StatusError, Output: res.Stderr}, domain.NewFailure(domain.PlatformFailure,
			"%s %s failed for site %q (exit %d)", site.Platform, op.verb, site.Name, res.ExitCode).
			WithSuggestions(strings.TrimSpace(firstLine(res.Stderr)))
	}

	return Report{Status: op.status, URL: URL(site), Output: res.Stdout}, nil
}

func (m *Manager) toolPath(p domain.Platform) (string, error) {
	var tool, install string
	switch p {
	case domain.PlatformDDEV:
		tool, install = m.tools.DDEV, "https://ddev.com/get-started/"
		if tool == "" {
			tool = "ddev"
		}
	case domain.PlatformLando:
		tool, install = m.tools.Lando, "https://docs.lando.dev/getting-started/installation.html"
		if tool == "" {
			tool = "lando"
		}
	default:
		return "", domain.NewFailure(domain.PlatformFailure, "unsupported platform %q", p)
	}

	path, err := m.runner.LookPath(tool)
	if err != nil {
		return "", domain.NewFailure(domain.PlatformFailure, "%s is not installed or not on PATH", p).
			WithSuggestions("install it: " + install)
	}
	return path, nil
}

var okWord = regexp.MustCompile(`(?i)\bok\b`)

// parseStatus normalizes tool output into a canonical status. "not
// running" is checked before "running" so the substring match cannot
// lie, and "ok" only counts as a standalone word. Output naming no known
// state reads as stopped; hard failures carry StatusError from the
// lifecycle error paths.
func parseStatus(output string) domain.SiteStatus {
	lower := strings.ToLower(output)
	switch {
	case strings.Contains(lower, "not running"), strings.Contains(lower, "stopped"), strings.Contains(lower, "paused"):
		return domain.StatusStopped
	case strings.Contains(lower, "running"), okWord.MatchString(output):
		return domain.StatusRunning
	default:
		return domain.StatusStopped
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
