package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/pkg/filesystem"
	"github.com/doeshing/drupai-go/internal/ports"
)

// FileLoader loads YAML configuration from ~/.drupai/config.yaml (overridable via DRUPAI_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Reset rewrites the config file with defaults and returns them.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	cfg := DefaultConfig()
	if err := writeDefault(path, cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("DRUPAI_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.StateDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Drupal: domain.DrupalSettings{
			BaseURL:         "https://drupal.ddev.site",
			Username:        "admin",
			GraphQLEndpoint: "/graphql",
			TimeoutSeconds:  30,
		},
		AI: domain.AISettings{
			DefaultModel:           "claude-sonnet-4",
			ClassifierModel:        "claude-sonnet-4",
			ClassifyTimeoutSeconds: 15,
			GenerateTimeoutSeconds: 120,
		},
		Models: []domain.ModelDefinition{
			{
				Name:       "claude-sonnet-4",
				Endpoint:   "https://api.anthropic.com/v1/messages",
				AuthEnvVar: "ANTHROPIC_API_KEY",
				ModelID:    "claude-3-5-sonnet-20240620",
				MaxTokens:  2048,
			},
		},
		Tools: domain.ToolSettings{
			Drush:    "drush",
			DDEV:     "ddev",
			Lando:    "lando",
			Composer: "composer",
		},
		Sites: domain.SiteSettings{
			Root:        filepath.Join(filesystem.UserHomeDir(), "sites"),
			ProjectType: "drupal10",
			AdminUser:   "admin",
			AdminPass:   "admin",
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.AI.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.AI.DefaultModel = cfg.Models[0].Name
	}
	if cfg.AI.ClassifyTimeoutSeconds == 0 {
		cfg.AI.ClassifyTimeoutSeconds = 15
	}
	if cfg.AI.GenerateTimeoutSeconds == 0 {
		cfg.AI.GenerateTimeoutSeconds = 120
	}
	if cfg.Drupal.TimeoutSeconds == 0 {
		cfg.Drupal.TimeoutSeconds = 30
	}
	if cfg.Tools.Drush == "" {
		cfg.Tools.Drush = "drush"
	}
	if cfg.Tools.DDEV == "" {
		cfg.Tools.DDEV = "ddev"
	}
	if cfg.Tools.Lando == "" {
		cfg.Tools.Lando = "lando"
	}
	if cfg.Tools.Composer == "" {
		cfg.Tools.Composer = "composer"
	}
	if cfg.Sites.Root == "" {
		cfg.Sites.Root = filepath.Join(filesystem.UserHomeDir(), "sites")
	}
	if cfg.Sites.ProjectType == "" {
		cfg.Sites.ProjectType = "drupal10"
	}
	if cfg.Sites.AdminUser == "" {
		cfg.Sites.AdminUser = "admin"
	}
	if cfg.Sites.AdminPass == "" {
		cfg.Sites.AdminPass = "admin"
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}


var _ ports.ConfigProvider = (*FileLoader)(nil)
