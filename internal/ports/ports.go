// Package ports defines the interfaces between the dispatch core and its
// external collaborators.
//
// Following the ports-and-adapters pattern, the resolver, registry, and
// commands depend only on these interfaces; concrete implementations live
// in the infrastructure layer (HTTP clients, subprocess runners, SQLite).
package ports

import (
	"context"
	"time"

	"github.com/doeshing/drupai-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.drupai/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// NodeDraft is the input for content creation.
type NodeDraft struct {
	Title       string
	Body        string
	ContentType string
	Tags        []string
}

// NodeRef identifies a created or updated node.
type NodeRef struct {
	ID   int
	UUID string
	URL  string
}

// MediaRef identifies an uploaded media entity.
type MediaRef struct {
	ID        int
	UUID      string
	Filename  string
	SizeBytes int64
}

// ContentClient is the document-style API of the content backend.
type ContentClient interface {
	CreateNode(ctx context.Context, draft NodeDraft) (NodeRef, error)
	UpdateNode(ctx context.Context, id int, contentType string, fields map[string]any) (NodeRef, error)
	DeleteNode(ctx context.Context, id int, contentType string) error
	UploadMedia(ctx context.Context, filePath, altText, title string) (MediaRef, error)
}

// NodeSummary is one row of a read-only content query.
type NodeSummary struct {
	ID      int    `json:"nid"`
	Title   string `json:"title"`
	Created string `json:"created"`
}

// UserSummary is one row of a user query.
type UserSummary struct {
	ID   int    `json:"uid"`
	Name string `json:"name"`
	Mail string `json:"mail"`
}

// QueryClient is the read-only query-language endpoint of the backend.
type QueryClient interface {
	LatestNodes(ctx context.Context, contentType string, limit int) ([]NodeSummary, error)
	SearchNodes(ctx context.Context, term, contentType string, limit int) ([]NodeSummary, error)
	UsersByRole(ctx context.Context, role string, limit int) ([]UserSummary, error)
	NodesWithTags(ctx context.Context, tags []string, contentType string, limit int) ([]NodeSummary, error)
}

// ProviderRequest carries one text-generation call.
type ProviderRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// ProviderResponse holds the generated text.
type ProviderResponse struct {
	Text string
}

// Provider is a single AI text-generation backend.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderFactory builds provider instances from model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// ContentGenerator produces Drupal-ready content via a configured provider.
// providerOverride may name a model or a provider kind; empty selects the
// configured default.
type ContentGenerator interface {
	Generate(ctx context.Context, topic, contentType, providerOverride string) (string, error)
	SuggestTags(ctx context.Context, body string) ([]string, error)
}

// IntentClassifier is the optional AI fallback for inputs no pattern rule
// matches. Enabled reports whether a classifier model is configured; when
// it is not, the resolver skips straight to the unresolved sentinel.
type IntentClassifier interface {
	Enabled() bool
	Classify(ctx context.Context, raw string) (domain.Intent, error)
}

// ProcessSpec describes one subprocess invocation.
type ProcessSpec struct {
	Path    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// ProcessResult is the entire contract with an external CLI tool.
type ProcessResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// ProcessRunner invokes external tools (drush, ddev, lando, composer).
type ProcessRunner interface {
	// Run executes the spec and returns its output. A non-zero exit is not
	// an error at this level; callers interpret ExitCode.
	Run(ctx context.Context, spec ProcessSpec) (ProcessResult, error)
	// LookPath resolves a tool name to an absolute path.
	LookPath(name string) (string, error)
}

// SiteSpec describes a site to provision.
type SiteSpec struct {
	Name      string
	Platform  domain.Platform
	Directory string
}

// SiteInfo reports a provisioned site.
type SiteInfo struct {
	Name      string
	URL       string
	Directory string
	Platform  domain.Platform
	AdminUser string
	AdminPass string
}

// SiteScaffolder provisions new local sites.
type SiteScaffolder interface {
	CreateSite(ctx context.Context, spec SiteSpec) (SiteInfo, error)
}

// HistoryRepository persists the dispatch log.
type HistoryRepository interface {
	Save(domain.DispatchRecord) error
	Records(limit int, search string) ([]domain.DispatchRecord, error)
	Clear() error
	Path() string
}

// Logger provides structured logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
