package services

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

// drupalProbeTimeout bounds the base URL reachability check.
const drupalProbeTimeout = 5 * time.Second

// Doctor runs environment diagnostics: external tools, API keys, the
// Drupal connection, and local storage.
type Doctor struct {
	cfg        domain.Config
	runner     ports.ProcessRunner
	history    ports.HistoryRepository
	httpClient *http.Client
}

// NewDoctor builds the diagnostics service.
func NewDoctor(cfg domain.Config, runner ports.ProcessRunner, history ports.HistoryRepository) *Doctor {
	return &Doctor{
		cfg:        cfg,
		runner:     runner,
		history:    history,
		httpClient: &http.Client{Timeout: drupalProbeTimeout},
	}
}

// Run executes all checks and returns a report. It never errors: problems
// surface as warn or error entries in the report itself.
func (d *Doctor) Run() domain.HealthReport {
	var checks []domain.HealthCheck

	checks = append(checks, d.toolCheck("drush", d.cfg.Tools.Drush))
	checks = append(checks, d.toolCheck("ddev", d.cfg.Tools.DDEV))
	checks = append(checks, d.toolCheck("lando", d.cfg.Tools.Lando))
	checks = append(checks, d.toolCheck("composer", d.cfg.Tools.Composer))

	checks = append(checks, d.drupalCheck())
	checks = append(checks, d.apiKeyCheck())
	checks = append(checks, d.classifierCheck())
	checks = append(checks, d.sitesRootCheck())
	checks = append(checks, d.historyCheck())

	return domain.HealthReport{Checks: checks}
}

func (d *Doctor) toolCheck(name, configured string) domain.HealthCheck {
	tool := configured
	if tool == "" {
		tool = name
	}
	if path, err := d.runner.LookPath(tool); err == nil {
		return ok("Tool "+name, path)
	}
	return warn("Tool "+name, tool+" not found on PATH")
}

func (d *Doctor) drupalCheck() domain.HealthCheck {
	if d.cfg.Drupal.BaseURL == "" {
		return warn("Drupal", "base_url not configured")
	}
	if d.cfg.Drupal.Username == "" {
		return warn("Drupal", fmt.Sprintf("%s configured but no username set", d.cfg.Drupal.BaseURL))
	}
	if err := d.probeDrupal(); err != nil {
		return warn("Drupal", fmt.Sprintf("%s is not reachable: %v", d.cfg.Drupal.BaseURL, err))
	}
	return ok("Drupal", fmt.Sprintf("%s reachable as %s", d.cfg.Drupal.BaseURL, d.cfg.Drupal.Username))
}

// probeDrupal issues one bounded HEAD request against the base URL. Any
// response below 500 counts as reachable.
func (d *Doctor) probeDrupal() error {
	req, err := http.NewRequest(http.MethodHead, d.cfg.Drupal.BaseURL, nil)
	if err != nil {
		return err
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

func (d *Doctor) apiKeyCheck() domain.HealthCheck {
	for _, model := range d.cfg.Models {
		if strings.Contains(model.Endpoint, "anthropic.com") {
			if envMissing(model.AuthEnvVar, "ANTHROPIC_API_KEY") {
				return warn("API keys", "ANTHROPIC_API_KEY missing")
			}
		} else if strings.Contains(model.Endpoint, "openai.com") {
			if envMissing(model.AuthEnvVar, "OPENAI_API_KEY") {
				return warn("API keys", "OPENAI_API_KEY missing")
			}
		}
	}
	return ok("API keys", "detected for configured providers")
}

func (d *Doctor) classifierCheck() domain.HealthCheck {
	if d.cfg.AI.ClassifierModel == "" {
		return warn("Classifier", "disabled; unmatched input resolves to unknown")
	}
	return ok("Classifier", d.cfg.AI.ClassifierModel)
}

func (d *Doctor) sitesRootCheck() domain.HealthCheck {
	root := d.cfg.Sites.Root
	if root == "" {
		return warn("Sites root", "sites.root not configured")
	}
	if _, err := os.Stat(root); err != nil {
		return warn("Sites root", fmt.Sprintf("%s does not exist yet", root))
	}
	return ok("Sites root", root)
}

func (d *Doctor) historyCheck() domain.HealthCheck {
	if d.history == nil {
		return warn("History", "store unavailable")
	}
	return ok("History", d.history.Path())
}

func envMissing(primary, fallback string) bool {
	if primary != "" && os.Getenv(primary) != "" {
		return false
	}
	if fallback != "" && os.Getenv(fallback) != "" {
		return false
	}
	return true
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}
