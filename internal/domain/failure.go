package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies user-facing failures. Every failure is caught at
// the dispatch boundary and converted to a Result; none propagate as raw
// errors to the CLI.
type FailureKind string

const (
	// ParseFailure: no intent could be resolved from the input.
	ParseFailure FailureKind = "parse_failure"
	// ValidationFailure: parameters present but invalid or incomplete.
	ValidationFailure FailureKind = "validation_failure"
	// NotFoundFailure: referenced site, node, or file does not exist.
	NotFoundFailure FailureKind = "not_found"
	// PlatformFailure: external tool missing, unreachable, or exited non-zero.
	PlatformFailure FailureKind = "platform_failure"
	// ProviderFailure: AI or Drupal backend unavailable, unauthorized, or timed out.
	ProviderFailure FailureKind = "provider_failure"
	// UnknownOperationFailure: a resolved operation has no registered command.
	// Unreachable when the pattern table and registry are kept in sync, which
	// the container verifies at startup.
	UnknownOperationFailure FailureKind = "unknown_operation"
)

// Failure is the typed error carried across the dispatch pipeline.
type Failure struct {
	Kind        FailureKind
	Message     string
	Suggestions []string
	Err         error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure builds a failure with a preformatted message.
func NewFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapFailure attaches an underlying cause without leaking it into the
// user-facing message.
func WrapFailure(kind FailureKind, err error, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// WithSuggestions attaches remediation hints and returns f for chaining.
// Empty hints are dropped.
func (f *Failure) WithSuggestions(hints ...string) *Failure {
	for _, hint := range hints {
		if hint != "" {
			f.Suggestions = append(f.Suggestions, hint)
		}
	}
	return f
}

// AsFailure unwraps err into a *Failure when possible.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Result converts the failure into the uniform envelope.
func (f *Failure) Result() Result {
	data := map[string]any{"error": string(f.Kind)}
	if len(f.Suggestions) > 0 {
		data["suggestions"] = f.Suggestions
	}
	return Result{Success: false, Message: f.Message, Data: data}
}
