// Package command holds the dispatchable unit of work for every operation.
//
// Each operation has one concrete command struct carrying exactly the typed
// fields that operation needs. Commands are single-use values: the registry
// builds a fresh instance per dispatch and nothing is cached across calls.
package command

import (
	"context"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/platform"
	"github.com/doeshing/drupai-go/internal/ports"
)

// Command is the polymorphic contract every operation implements.
//
// Validate is pure: it checks presence and shape of the required parameters
// and returns a ValidationFailure when they are missing or malformed.
// Execute performs the side effects and always returns the uniform result
// envelope; collaborator errors are converted, never propagated.
type Command interface {
	Validate() error
	Execute(ctx context.Context) domain.Result
}

// Deps bundles the collaborators commands execute against. It is built once
// in the app container and shared read-only by every dispatch.
type Deps struct {
	Config    domain.Config
	Content   ports.ContentClient
	Query     ports.QueryClient
	Generator ports.ContentGenerator
	Runner    ports.ProcessRunner
	Scaffold  ports.SiteScaffolder
	Sites     *platform.Manager
	Logger    ports.Logger
}

func missingParam(name string) *domain.Failure {
	return domain.NewFailure(domain.ValidationFailure, "missing required parameter: %s", name)
}
