package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/drupai-go/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

type stubClassifier struct {
	enabled bool
	intent  domain.Intent
	err     error
	called  bool
}

func (s *stubClassifier) Enabled() bool { return s.enabled }

func (s *stubClassifier) Classify(ctx context.Context, raw string) (domain.Intent, error) {
	s.called = true
	return s.intent, s.err
}

func newTestResolver(classifier *stubClassifier) *Resolver {
	if classifier == nil {
		return NewResolver(Rules(), nil, 0, nopLogger{})
	}
	return NewResolver(Rules(), classifier, 0, nopLogger{})
}

func TestResolveRuleMatches(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		op     domain.Operation
		params domain.Params
	}{
		{
			name:   "status of site",
			input:  "what is the status of site my-blog",
			op:     domain.OpStatusSite,
			params: domain.Params{"project_name": "my-blog"},
		},
		{
			name:   "latest counted articles",
			input:  "get the latest 5 articles",
			op:     domain.OpQueryLatest,
			params: domain.Params{"count": 5, "content_type": "article"},
		},
		{
			name:   "latest uncounted defaults to ten",
			input:  "show me the latest posts",
			op:     domain.OpQueryLatest,
			params: domain.Params{"count": 10, "content_type": "article"},
		},
		{
			name:   "create post titled",
			input:  `create a post titled "Summer Recipes"`,
			op:     domain.OpCreatePost,
			params: domain.Params{"title": "Summer Recipes"},
		},
		{
			name:   "create post about topic",
			input:  "create a blog post about coffee brewing",
			op:     domain.OpCreatePost,
			params: domain.Params{"topic": "coffee brewing"},
		},
		{
			name:   "generate using provider",
			input:  "generate a post using ollama about winter hiking",
			op:     domain.OpCreatePost,
			params: domain.Params{"ai_provider": "ollama", "topic": "winter hiking"},
		},
		{
			name:   "edit node title",
			input:  `edit the node 42 title to "New Title"`,
			op:     domain.OpEditNode,
			params: domain.Params{"node_id": 42, "title": "New Title"},
		},
		{
			name:   "delete node",
			input:  "delete node 7",
			op:     domain.OpDeleteNode,
			params: domain.Params{"node_id": 7},
		},
		{
			name:   "upload with alt text",
			input:  `upload ./cat.jpg with alt text "a sleepy cat"`,
			op:     domain.OpUploadMedia,
			params: domain.Params{"file_path": "./cat.jpg", "alt_text": "a sleepy cat"},
		},
		{
			name:   "clear cache",
			input:  "clear the cache",
			op:     domain.OpRunDrush,
			params: domain.Params{"command": "cache:clear"},
		},
		{
			name:   "enable module",
			input:  "enable the module pathauto",
			op:     domain.OpRunDrush,
			params: domain.Params{"command": "pm:enable", "module": "pathauto"},
		},
		{
			name:   "raw drush",
			input:  "drush config:export",
			op:     domain.OpRunDrush,
			params: domain.Params{"command": "config:export"},
		},
		{
			name:   "tagged query",
			input:  `find posts tagged 'go, drupal'`,
			op:     domain.OpQueryTagged,
			params: domain.Params{"tags": []string{"go", "drupal"}},
		},
		{
			name:   "users by role",
			input:  "show all users with role editor",
			op:     domain.OpQueryUsers,
			params: domain.Params{"role": "editor"},
		},
		{
			name:   "create site with platform prefix",
			input:  "create a lando site named client-demo",
			op:     domain.OpCreateSite,
			params: domain.Params{"platform": "lando", "project_name": "client-demo"},
		},
		{
			name:   "create site default platform",
			input:  "create a site named my-shop",
			op:     domain.OpCreateSite,
			params: domain.Params{"project_name": "my-shop", "platform": "ddev"},
		},
		{
			name:   "start site",
			input:  "start the site my-blog",
			op:     domain.OpStartSite,
			params: domain.Params{"project_name": "my-blog"},
		},
		{
			name:   "restart is not start",
			input:  "restart my-blog",
			op:     domain.OpRestartSite,
			params: domain.Params{"project_name": "my-blog"},
		},
		{
			name:   "trailing status form",
			input:  "my-blog status",
			op:     domain.OpStatusSite,
			params: domain.Params{"project_name": "my-blog"},
		},
	}

	r := newTestResolver(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Resolve(context.Background(), tc.input)
			if got.Operation != tc.op {
				t.Fatalf("operation = %q, want %q", got.Operation, tc.op)
			}
			if got.Source != domain.SourceRule {
				t.Fatalf("source = %q, want %q", got.Source, domain.SourceRule)
			}
			if diff := cmp.Diff(tc.params, got.Params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveUnresolved(t *testing.T) {
	r := newTestResolver(nil)
	got := r.Resolve(context.Background(), "please make me a sandwich")
	if got.Operation != domain.OpUnknown {
		t.Fatalf("operation = %q, want unknown", got.Operation)
	}
	if got.Source != domain.SourceUnresolved {
		t.Fatalf("source = %q", got.Source)
	}
	if raw, _ := got.Params.String("raw"); raw != "please make me a sandwich" {
		t.Errorf("raw param = %q", raw)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	r := newTestResolver(nil)
	if got := r.Resolve(context.Background(), "   "); got.Operation != domain.OpUnknown {
		t.Fatalf("operation = %q, want unknown", got.Operation)
	}
}

func TestResolveClassifierFallback(t *testing.T) {
	classifier := &stubClassifier{
		enabled: true,
		intent: domain.Intent{
			Operation: domain.OpQuerySearch,
			Params:    domain.Params{"search_term": "coffee"},
		},
	}
	r := newTestResolver(classifier)

	got := r.Resolve(context.Background(), "anything about coffee maybe?")
	if !classifier.called {
		t.Fatal("classifier was not consulted")
	}
	if got.Operation != domain.OpQuerySearch {
		t.Fatalf("operation = %q", got.Operation)
	}
	if got.Source != domain.SourceAI {
		t.Fatalf("source = %q, want %q", got.Source, domain.SourceAI)
	}
}

func TestResolveClassifierErrorFallsThrough(t *testing.T) {
	classifier := &stubClassifier{enabled: true, err: errors.New("timeout")}
	r := newTestResolver(classifier)

	got := r.Resolve(context.Background(), "gibberish input")
	if got.Operation != domain.OpUnknown {
		t.Fatalf("operation = %q, want unknown after classifier error", got.Operation)
	}
}

func TestResolveClassifierDisabledSkipped(t *testing.T) {
	classifier := &stubClassifier{enabled: false}
	r := newTestResolver(classifier)

	r.Resolve(context.Background(), "gibberish input")
	if classifier.called {
		t.Fatal("disabled classifier must not be consulted")
	}
}

func TestResolveRuleMatchedSkipsClassifier(t *testing.T) {
	classifier := &stubClassifier{enabled: true}
	r := newTestResolver(classifier)

	got := r.Resolve(context.Background(), "delete node 3")
	if got.Operation != domain.OpDeleteNode {
		t.Fatalf("operation = %q", got.Operation)
	}
	if classifier.called {
		t.Fatal("classifier must not run when a rule matches")
	}
}

func TestRuleOperationsAllKnown(t *testing.T) {
	for _, op := range RuleOperations() {
		if !op.Known() {
			t.Errorf("pattern table produces unknown operation %q", op)
		}
	}
}
