package intent

import (
	"regexp"

	"github.com/doeshing/drupai-go/internal/domain"
)

// RoleKind selects the extraction strategy for one parameter role.
type RoleKind int

const (
	// RoleIdentifier is a site/project name, node id, file path, or module
	// name: quotes and surrounding punctuation are trimmed, empty rejected.
	RoleIdentifier RoleKind = iota
	// RoleQuoted prefers the first quoted substring of the span and falls
	// back to the full cleaned span.
	RoleQuoted
	// RoleFree is whatever text the capture holds, cleaned.
	RoleFree
	// RoleEnum is matched case-insensitively against a fixed vocabulary by
	// the consuming command; extraction lowercases and passes it through.
	RoleEnum
	// RoleCount is an integer with an optional default.
	RoleCount
	// RoleList is a comma/semicolon/pipe separated list.
	RoleList
)

// Role maps one capture group of a rule to a semantic parameter.
type Role struct {
	Name     string
	Kind     RoleKind
	Group    int
	Required bool
	Default  string
}

// Rule is one entry of the pattern table: a matcher, the operation it
// produces, the roles its captures fill, and constant parameters implied by
// the phrasing itself.
type Rule struct {
	Matcher   *regexp.Regexp
	Operation domain.Operation
	Roles     []Role
	Consts    domain.Params
}

// Rules returns the pattern table. Rules are evaluated strictly in
// declaration order and the first structural match wins, so more specific
// patterns are declared before looser ones that could match the same text.
// The ordering is part of the resolver contract.
func Rules() []Rule {
	return defaultRules
}

// RuleOperations returns the distinct operations the table can produce, in
// first-appearance order. The container checks this set against the command
// registry at startup.
func RuleOperations() []domain.Operation {
	seen := map[domain.Operation]bool{}
	var ops []domain.Operation
	for _, rule := range defaultRules {
		if !seen[rule.Operation] {
			seen[rule.Operation] = true
			ops = append(ops, rule.Operation)
		}
	}
	return ops
}

var defaultRules = []Rule{
	// Content creation. The "titled" and "using <provider>" forms come
	// before the generic topic form.
	{
		Matcher:   regexp.MustCompile(`(?i)create\s+.*(?:post|article|blog).*titled?\s+['"]([^'"]+)['"]`),
		Operation: domain.OpCreatePost,
		Roles:     []Role{{Name: "title", Kind: RoleQuoted, Group: 1, Required: true}},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)(?:generate|create)\s+.*(?:content|post|article|blog).*using\s+(\w+)\s+about\s+(.+)`),
		Operation: domain.OpCreatePost,
		Roles: []Role{
			{Name: "ai_provider", Kind: RoleEnum, Group: 1},
			{Name: "topic", Kind: RoleFree, Group: 2, Required: true},
		},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)create\s+.*(?:post|article|blog).*\babout\s+(.+)`),
		Operation: domain.OpCreatePost,
		Roles:     []Role{{Name: "topic", Kind: RoleFree, Group: 1, Required: true}},
	},

	// Node operations.
	{
		Matcher:   regexp.MustCompile(`(?i)edit\s+.*node\s+(\d+).*\bto\s+['"]([^'"]+)['"]`),
		Operation: domain.OpEditNode,
		Roles: []Role{
			{Name: "node_id", Kind: RoleCount, Group: 1, Required: true},
			{Name: "title", Kind: RoleQuoted, Group: 2, Required: true},
		},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)update\s+.*node\s+(\d+).*\bbody\b.*['"]([^'"]+)['"]`),
		Operation: domain.OpEditNode,
		Roles: []Role{
			{Name: "node_id", Kind: RoleCount, Group: 1, Required: true},
			{Name: "body", Kind: RoleQuoted, Group: 2, Required: true},
		},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)delete\s+.*node\s+(\d+)`),
		Operation: domain.OpDeleteNode,
		Roles:     []Role{{Name: "node_id", Kind: RoleCount, Group: 1, Required: true}},
	},

	// Media.
	{
		Matcher:   regexp.MustCompile(`(?i)upload\s+(\S+)\s+.*\balt(?:\s+text)?\s+['"]([^'"]+)['"]`),
		Operation: domain.OpUploadMedia,
		Roles: []Role{
			{Name: "file_path", Kind: RoleIdentifier, Group: 1, Required: true},
			{Name: "alt_text", Kind: RoleQuoted, Group: 2},
		},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)upload\s+(\S+)`),
		Operation: domain.OpUploadMedia,
		Roles:     []Role{{Name: "file_path", Kind: RoleIdentifier, Group: 1, Required: true}},
	},

	// Drush maintenance operations.
	{
		Matcher:   regexp.MustCompile(`(?i)(?:clear|flush)\s+.*cache`),
		Operation: domain.OpRunDrush,
		Consts:    domain.Params{"command": "cache:clear"},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)rebuild\s+.*cache`),
		Operation: domain.OpRunDrush,
		Consts:    domain.Params{"command": "cache:rebuild"},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)run\s+cron`),
		Operation: domain.OpRunDrush,
		Consts:    domain.Params{"command": "cron:run"},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)enable\s+.*module\s+([\w.-]+)`),
		Operation: domain.OpRunDrush,
		Roles:     []Role{{Name: "module", Kind: RoleIdentifier, Group: 1, Required: true}},
		Consts:    domain.Params{"command": "pm:enable"},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)disable\s+.*module\s+([\w.-]+)`),
		Operation: domain.OpRunDrush,
		Roles:     []Role{{Name: "module", Kind: RoleIdentifier, Group: 1, Required: true}},
		Consts:    domain.Params{"command": "pm:disable"},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)\bdrush\s+(.+)`),
		Operation: domain.OpRunDrush,
		Roles:     []Role{{Name: "command", Kind: RoleFree, Group: 1, Required: true}},
	},

	// Read-only queries. Counted form before the uncounted default.
	{
		Matcher:   regexp.MustCompile(`(?i)(?:show|get|list)\s+.*(?:latest|recent)\s+(\d+)\s+(?:blog\s+)?(?:posts?|articles?)`),
		Operation: domain.OpQueryLatest,
		Roles:     []Role{{Name: "count", Kind: RoleCount, Group: 1, Default: "10"}},
		Consts:    domain.Params{"content_type": "article"},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)(?:show|get|list)\s+.*(?:latest|recent)\s+(?:blog\s+)?(?:posts?|articles?)`),
		Operation: domain.OpQueryLatest,
		Roles:     []Role{{Name: "count", Kind: RoleCount, Default: "10"}},
		Consts:    domain.Params{"content_type": "article"},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)(?:get|show|find)\s+.*(?:posts?|articles?|nodes?)\s+.*tagged\s+['"]([^'"]+)['"]`),
		Operation: domain.OpQueryTagged,
		Roles:     []Role{{Name: "tags", Kind: RoleList, Group: 1, Required: true}},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)(?:find|search)\s+.*(?:posts?|articles?|nodes?|content)\s+.*\babout\s+(.+)`),
		Operation: domain.OpQuerySearch,
		Roles:     []Role{{Name: "search_term", Kind: RoleFree, Group: 1, Required: true}},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)(?:get|show|list)\s+.*users\s+.*with\s+role\s+['"]?([\w-]+)['"]?`),
		Operation: domain.OpQueryUsers,
		Roles:     []Role{{Name: "role", Kind: RoleIdentifier, Group: 1, Required: true}},
	},

	// Site creation. The platform-prefixed form first, then the suffixed or
	// bare form defaulting to ddev.
	{
		Matcher:   regexp.MustCompile(`(?i)create\s+.*\b(ddev|lando)\s+site\s+named?\s+([A-Za-z0-9_-]+)`),
		Operation: domain.OpCreateSite,
		Roles: []Role{
			{Name: "platform", Kind: RoleEnum, Group: 1},
			{Name: "project_name", Kind: RoleIdentifier, Group: 2, Required: true},
		},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)create\s+.*site\s+named?\s+([A-Za-z0-9_-]+)(?:\s+(?:using|with)\s+(ddev|lando))?`),
		Operation: domain.OpCreateSite,
		Roles: []Role{
			{Name: "project_name", Kind: RoleIdentifier, Group: 1, Required: true},
			{Name: "platform", Kind: RoleEnum, Group: 2, Default: "ddev"},
		},
	},

	// Lifecycle. restart precedes start; the word-boundary anchors keep
	// "restart" out of the start rule, but the relative order stays the
	// contract and is pinned by tests.
	{
		Matcher:   regexp.MustCompile(`(?i)\brestart\s+(?:the\s+)?(?:site\s+|project\s+)?([A-Za-z0-9_-]+)`),
		Operation: domain.OpRestartSite,
		Roles:     []Role{{Name: "project_name", Kind: RoleIdentifier, Group: 1, Required: true}},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)\bstart\s+(?:the\s+)?(?:site\s+|project\s+)?([A-Za-z0-9_-]+)`),
		Operation: domain.OpStartSite,
		Roles:     []Role{{Name: "project_name", Kind: RoleIdentifier, Group: 1, Required: true}},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)\bstop\s+(?:the\s+)?(?:site\s+|project\s+)?([A-Za-z0-9_-]+)`),
		Operation: domain.OpStopSite,
		Roles:     []Role{{Name: "project_name", Kind: RoleIdentifier, Group: 1, Required: true}},
	},
	{
		Matcher:   regexp.MustCompile(`(?i)\bstatus\s+(?:of\s+|for\s+)?(?:the\s+)?(?:site\s+|project\s+)?([A-Za-z0-9_-]+)`),
		Operation: domain.OpStatusSite,
		Roles:     []Role{{Name: "project_name", Kind: RoleIdentifier, Group: 1, Required: true}},
	},
	{
		// Looser trailing form ("my-blog status"); must stay after the
		// leading form so "status of site x" resolves the same way always.
		Matcher:   regexp.MustCompile(`(?i)\b([A-Za-z0-9_-]+)\s+status\b`),
		Operation: domain.OpStatusSite,
		Roles:     []Role{{Name: "project_name", Kind: RoleIdentifier, Group: 1, Required: true}},
	},
}
