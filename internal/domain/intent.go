// Package domain defines core business entities and value objects for drupai.
//
// The domain layer is independent of infrastructure concerns and represents
// pure data structures shared by the resolver, the command registry, and the
// CLI surface.
package domain

// Operation identifies one of the structured operations the agent can run.
type Operation string

const (
	OpCreatePost  Operation = "create-post"
	OpEditNode    Operation = "edit-node"
	OpDeleteNode  Operation = "delete-node"
	OpUploadMedia Operation = "upload-media"
	OpRunDrush    Operation = "run-drush"
	OpQueryLatest Operation = "query-latest"
	OpQuerySearch Operation = "query-search"
	OpQueryUsers  Operation = "query-users"
	OpQueryTagged Operation = "query-tagged"
	OpCreateSite  Operation = "create-site"
	OpStartSite   Operation = "start-site"
	OpStopSite    Operation = "stop-site"
	OpRestartSite Operation = "restart-site"
	OpStatusSite  Operation = "status-site"

	// OpUnknown is the sentinel for input no rule or classifier could map.
	// It is never registered with the command registry.
	OpUnknown Operation = "unknown"
)

// Operations lists every dispatchable operation, in a stable order.
func Operations() []Operation {
	return []Operation{
		OpCreatePost, OpEditNode, OpDeleteNode, OpUploadMedia, OpRunDrush,
		OpQueryLatest, OpQuerySearch, OpQueryUsers, OpQueryTagged,
		OpCreateSite, OpStartSite, OpStopSite, OpRestartSite, OpStatusSite,
	}
}

// Known reports whether o names a dispatchable operation.
func (o Operation) Known() bool {
	for _, op := range Operations() {
		if o == op {
			return true
		}
	}
	return false
}

// ConfidenceSource records how an intent was derived.
type ConfidenceSource string

const (
	SourceRule       ConfidenceSource = "rule-matched"
	SourceAI         ConfidenceSource = "ai-inferred"
	SourceUnresolved ConfidenceSource = "unresolved"
)

// Intent is the resolved (operation, parameters) pair for one input.
// It is produced once per input and consumed once by the command registry.
type Intent struct {
	Operation Operation
	Params    Params
	Source    ConfidenceSource
}

// Unresolved builds the sentinel intent for input that could not be mapped.
func Unresolved(raw string) Intent {
	return Intent{
		Operation: OpUnknown,
		Params:    Params{"raw": raw},
		Source:    SourceUnresolved,
	}
}

// Params carries extracted parameter values keyed by role name. Values are
// strings, ints, or string slices depending on the role type; the typed
// accessors below tolerate the loose shapes an AI classifier may return.
type Params map[string]any

// String returns the named parameter as a trimmed string.
func (p Params) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Int returns the named parameter as an int. JSON-decoded payloads carry
// numbers as float64, so both forms are accepted.
func (p Params) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// StringSlice returns the named parameter as a slice of strings.
func (p Params) StringSlice(key string) ([]string, bool) {
	switch v := p[key].(type) {
	case []string:
		return v, len(v) > 0
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out, len(out) > 0
	case string:
		if v == "" {
			return nil, false
		}
		return []string{v}, true
	default:
		return nil, false
	}
}
