package intent

import (
	"strconv"
	"strings"

	"github.com/doeshing/drupai-go/internal/domain"
)

// Extraction is the outcome of applying a rule's roles to a match. Params
// holds every role that could be filled (including defaults); Missing lists
// mandatory roles that could not.
type Extraction struct {
	Params  domain.Params
	Missing []string
}

// Complete reports whether every mandatory role was satisfied.
func (e Extraction) Complete() bool {
	return len(e.Missing) == 0
}

// Extract fills the rule's parameter roles from a regexp submatch. It is
// purely functional over its inputs: rule constants are copied, never
// mutated, and the original casing of captured text is preserved except
// where a role kind normalizes it.
func Extract(rule Rule, match []string) Extraction {
	params := domain.Params{}
	for key, value := range rule.Consts {
		params[key] = value
	}

	var missing []string
	for _, role := range rule.Roles {
		span := ""
		if role.Group > 0 && role.Group < len(match) {
			span = match[role.Group]
		}
		value, ok := extractRole(role, span)
		if !ok {
			if role.Required {
				missing = append(missing, role.Name)
			}
			continue
		}
		params[role.Name] = value
	}
	return Extraction{Params: params, Missing: missing}
}

func extractRole(role Role, span string) (any, bool) {
	switch role.Kind {
	case RoleIdentifier:
		// Keep leading dots so relative paths like ./cat.jpg stay intact.
		v := strings.Trim(CleanText(span), `'"`)
		v = strings.TrimRight(v, `.,!?`)
		if v == "" {
			v = role.Default
		}
		return v, v != ""

	case RoleQuoted:
		if quoted, ok := FirstQuoted(span); ok {
			return quoted, true
		}
		v := CleanText(span)
		if v == "" {
			v = role.Default
		}
		return v, v != ""

	case RoleFree:
		v := CleanText(span)
		if v == "" {
			v = role.Default
		}
		return v, v != ""

	case RoleEnum:
		// Unmatched vocabulary values pass through here and are rejected
		// by the consuming command.
		v := strings.ToLower(CleanText(span))
		if v == "" {
			v = role.Default
		}
		return v, v != ""

	case RoleCount:
		raw := CleanText(span)
		if raw == "" {
			raw = role.Default
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false
		}
		return n, true

	case RoleList:
		items := SplitList(span)
		if len(items) == 0 {
			return nil, false
		}
		return items, true

	default:
		return nil, false
	}
}
