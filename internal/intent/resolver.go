// Package intent maps free-form operator input onto structured operations.
//
// Resolution is deterministic: an ordered pattern table is consulted first,
// an optional AI classifier second, and an explicit unresolved sentinel
// last. The resolver never returns an error; unrecognized input is data,
// not a fault.
package intent

import (
	"context"
	"strings"
	"time"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

// Resolver turns raw text into an Intent.
type Resolver struct {
	rules      []Rule
	classifier ports.IntentClassifier
	timeout    time.Duration
	log        ports.Logger
}

// NewResolver builds a resolver over the given pattern table. classifier
// may be nil; timeout bounds the classification fallback and falls back to
// the domain default when zero.
func NewResolver(rules []Rule, classifier ports.IntentClassifier, timeout time.Duration, log ports.Logger) *Resolver {
	if timeout <= 0 {
		timeout = domain.DefaultClassifyTimeout
	}
	return &Resolver{rules: rules, classifier: classifier, timeout: timeout, log: log}
}

// Resolve maps raw input to an Intent. Pattern rules are evaluated in
// declaration order against the trimmed input; matching is case-insensitive
// but captures keep the original casing for extraction. A structural match
// whose mandatory roles cannot all be filled does not win; evaluation
// continues with later rules.
func (r *Resolver) Resolve(ctx context.Context, raw string) domain.Intent {
	text := strings.TrimSpace(raw)
	if text == "" {
		return domain.Unresolved(raw)
	}

	for i := range r.rules {
		rule := r.rules[i]
		match := rule.Matcher.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		extraction := Extract(rule, match)
		if !extraction.Complete() {
			r.log.Debug("rule matched but roles incomplete", map[string]interface{}{
				"operation": string(rule.Operation),
				"missing":   strings.Join(extraction.Missing, ","),
			})
			continue
		}
		return domain.Intent{
			Operation: rule.Operation,
			Params:    extraction.Params,
			Source:    domain.SourceRule,
		}
	}

	if r.classifier != nil && r.classifier.Enabled() {
		if intent, ok := r.classify(ctx, text); ok {
			return intent
		}
	}

	return domain.Unresolved(raw)
}

func (r *Resolver) classify(ctx context.Context, text string) (domain.Intent, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	intent, err := r.classifier.Classify(ctx, text)
	if err != nil {
		// Timeouts and malformed responses are treated as no match.
		r.log.Warn("intent classification failed", map[string]interface{}{"error": err.Error()})
		return domain.Intent{}, false
	}
	if !intent.Operation.Known() {
		return domain.Intent{}, false
	}
	intent.Source = domain.SourceAI
	if intent.Params == nil {
		intent.Params = domain.Params{}
	}
	return intent, true
}
