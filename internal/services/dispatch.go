// Package services contains the orchestration layer between the CLI surface
// and the command registry.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/drupai-go/internal/command"
	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/intent"
	"github.com/doeshing/drupai-go/internal/ports"
)

// Dispatcher is the single entry point for turning raw operator text into
// an executed command and a uniform result envelope. It never returns an
// error: every failure mode is folded into the envelope so callers have
// exactly one shape to render.
type Dispatcher struct {
	resolver *intent.Resolver
	registry *command.Registry
	history  ports.HistoryRepository
	log      ports.Logger
}

// NewDispatcher wires the dispatch pipeline.
func NewDispatcher(resolver *intent.Resolver, registry *command.Registry, history ports.HistoryRepository, log ports.Logger) *Dispatcher {
	return &Dispatcher{resolver: resolver, registry: registry, history: history, log: log}
}

// Dispatch resolves raw input to an intent, builds the matching command,
// validates, executes, and records the outcome. providerOverride, when
// non-empty, forces the AI provider used for content generation.
func (d *Dispatcher) Dispatch(ctx context.Context, raw, providerOverride string) domain.Result {
	started := time.Now()
	requestID := uuid.NewString()

	in := d.resolver.Resolve(ctx, raw)

	d.log.Info("dispatching", map[string]interface{}{
		"request_id": requestID,
		"operation":  string(in.Operation),
		"source":     string(in.Source),
	})

	result := d.execute(ctx, in, providerOverride)
	result = withRequestID(result, requestID)

	d.record(domain.DispatchRecord{
		ID:         requestID,
		Timestamp:  started,
		Input:      raw,
		Operation:  string(in.Operation),
		Source:     string(in.Source),
		Success:    result.Success,
		Message:    result.Message,
		DurationMS: time.Since(started).Milliseconds(),
	})

	return result
}

func (d *Dispatcher) execute(ctx context.Context, in domain.Intent, providerOverride string) domain.Result {
	if !in.Operation.Known() {
		return unresolvedResult(in)
	}

	if providerOverride != "" && in.Operation == domain.OpCreatePost {
		in.Params["ai_provider"] = providerOverride
	}

	cmd, err := d.registry.Create(in)
	if err != nil {
		return domain.ResultFromError(err)
	}
	if err := cmd.Validate(); err != nil {
		return domain.ResultFromError(err)
	}
	return cmd.Execute(ctx)
}

func (d *Dispatcher) record(rec domain.DispatchRecord) {
	if d.history == nil {
		return
	}
	if err := d.history.Save(rec); err != nil {
		d.log.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func unresolvedResult(in domain.Intent) domain.Result {
	raw, _ := in.Params.String("raw")
	return domain.ResultFromError(
		domain.NewFailure(domain.ParseFailure,
			"could not understand the request: %s", raw).
			WithSuggestions(
				"try: create a post about 'your topic'",
				"try: show me the latest 5 posts",
				"try: start the site my-blog",
				"try: run drush cache:clear",
			))
}

func withRequestID(r domain.Result, id string) domain.Result {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	r.Data["request_id"] = id
	return r
}
