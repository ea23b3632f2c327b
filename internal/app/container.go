// Package app wires the dependency graph.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/doeshing/drupai-go/internal/command"
	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/infrastructure/ai"
	"github.com/doeshing/drupai-go/internal/infrastructure/config"
	"github.com/doeshing/drupai-go/internal/infrastructure/drupal"
	"github.com/doeshing/drupai-go/internal/infrastructure/history"
	"github.com/doeshing/drupai-go/internal/infrastructure/run"
	"github.com/doeshing/drupai-go/internal/infrastructure/scaffold"
	"github.com/doeshing/drupai-go/internal/intent"
	"github.com/doeshing/drupai-go/internal/pkg/logger"
	"github.com/doeshing/drupai-go/internal/platform"
	"github.com/doeshing/drupai-go/internal/ports"
	"github.com/doeshing/drupai-go/internal/services"
)

// Container wires application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Dispatcher     *services.Dispatcher
	Registry       *command.Registry
	Doctor         *services.Doctor
	HistoryStore   ports.HistoryRepository
	Sites          *platform.Manager
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph. It fails fast when the
// pattern table resolves operations the registry cannot build.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	runner := run.NewExecRunner()
	historyStore := history.NewSQLiteStore()
	sites := platform.NewManager(runner, cfg, log)

	factory := ai.NewFactory()
	generator := ai.NewGenerator(cfg, factory, log)
	classifier := ai.NewClassifier(cfg, factory, log)

	deps := &command.Deps{
		Config:    cfg,
		Content:   drupal.NewJSONAPIClient(cfg.Drupal, log),
		Query:     drupal.NewGraphQLClient(cfg.Drupal, log),
		Generator: generator,
		Runner:    runner,
		Scaffold:  scaffold.NewScaffolder(runner, cfg, log),
		Sites:     sites,
		Logger:    log,
	}
	registry := command.NewRegistry(deps)

	if err := verifyRegistry(registry); err != nil {
		return nil, err
	}

	classifyTimeout := time.Duration(cfg.AI.ClassifyTimeoutSeconds) * time.Second
	resolver := intent.NewResolver(intent.Rules(), classifier, classifyTimeout, log)

	dispatcher := services.NewDispatcher(resolver, registry, historyStore, log)
	doctor := services.NewDoctor(cfg, runner, historyStore)

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Dispatcher:     dispatcher,
		Registry:       registry,
		Doctor:         doctor,
		HistoryStore:   historyStore,
		Sites:          sites,
		Logger:         log,
	}, nil
}

// verifyRegistry checks that every operation the pattern table can resolve
// has a registered command. A mismatch is a packaging bug, not a runtime
// condition, so it aborts startup.
func verifyRegistry(registry *command.Registry) error {
	registered := make(map[domain.Operation]bool)
	for _, op := range registry.Operations() {
		registered[op] = true
	}
	for _, op := range intent.RuleOperations() {
		if !registered[op] {
			return fmt.Errorf("pattern table resolves %q but no command is registered for it", op)
		}
	}
	return nil
}
