package command

import (
	"github.com/doeshing/drupai-go/internal/domain"
)

// Builder constructs a command from an intent's parameter mapping. Builders
// never fail: type coercion happens here, presence checks in Validate.
type Builder func(domain.Intent, *Deps) Command

// Registry maps operation identifiers to command builders. It is built once
// at startup, passed by reference into the dispatcher, and never mutated
// afterwards, so it is safe to share across concurrent dispatches.
type Registry struct {
	deps     *Deps
	builders map[domain.Operation]Builder
}

// NewRegistry builds the full operation table.
func NewRegistry(deps *Deps) *Registry {
	return &Registry{
		deps: deps,
		builders: map[domain.Operation]Builder{
			domain.OpCreatePost:  newCreatePost,
			domain.OpEditNode:    newEditNode,
			domain.OpDeleteNode:  newDeleteNode,
			domain.OpUploadMedia: newUploadMedia,
			domain.OpRunDrush:    newRunDrush,
			domain.OpQueryLatest: newQueryLatest,
			domain.OpQuerySearch: newQuerySearch,
			domain.OpQueryUsers:  newQueryUsers,
			domain.OpQueryTagged: newQueryTagged,
			domain.OpCreateSite:  newCreateSite,
			domain.OpStartSite:   newStartSite,
			domain.OpStopSite:    newStopSite,
			domain.OpRestartSite: newRestartSite,
			domain.OpStatusSite:  newStatusSite,
		},
	}
}

// Operations returns the registered operations in the domain's stable order.
func (r *Registry) Operations() []domain.Operation {
	ops := make([]domain.Operation, 0, len(r.builders))
	for _, op := range domain.Operations() {
		if _, ok := r.builders[op]; ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// Create builds a fresh command instance for the intent. A resolved
// operation with no registered builder is an internal-consistency failure;
// the startup sync check makes it unreachable in a correctly built binary.
func (r *Registry) Create(intent domain.Intent) (Command, error) {
	builder, ok := r.builders[intent.Operation]
	if !ok {
		return nil, domain.NewFailure(domain.UnknownOperationFailure,
			"no command registered for operation %q", intent.Operation)
	}
	return builder(intent, r.deps), nil
}
