package domain

import "strings"

// Config mirrors ~/.drupai/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Drupal              DrupalSettings    `yaml:"drupal"`
	AI                  AISettings        `yaml:"ai"`
	Models              []ModelDefinition `yaml:"models"`
	Tools               ToolSettings      `yaml:"tools"`
	Sites               SiteSettings      `yaml:"sites"`
}

// DrupalSettings describe the content backend the agent talks to.
type DrupalSettings struct {
	BaseURL         string `yaml:"base_url"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TimeoutSeconds  int    `yaml:"timeout"`
}

// GraphQLURL returns the full query endpoint.
func (d DrupalSettings) GraphQLURL() string {
	endpoint := d.GraphQLEndpoint
	if endpoint == "" {
		endpoint = "/graphql"
	}
	return strings.TrimRight(d.BaseURL, "/") + endpoint
}

// JSONAPIURL returns the document API root.
func (d DrupalSettings) JSONAPIURL() string {
	return strings.TrimRight(d.BaseURL, "/") + "/jsonapi"
}

// AISettings select models and bound the slow paths.
type AISettings struct {
	// DefaultModel names the entry in Models used for content generation.
	DefaultModel string `yaml:"default_model"`
	// ClassifierModel names the model used for the intent-classification
	// fallback. Empty disables the fallback entirely.
	ClassifierModel string `yaml:"classifier_model"`
	// ClassifyTimeoutSeconds bounds the classification call.
	ClassifyTimeoutSeconds int `yaml:"classify_timeout"`
	// GenerateTimeoutSeconds bounds content generation.
	GenerateTimeoutSeconds int `yaml:"generate_timeout"`
}

// ToolSettings hold executable names or paths for the external CLIs.
type ToolSettings struct {
	Drush    string `yaml:"drush"`
	DDEV     string `yaml:"ddev"`
	Lando    string `yaml:"lando"`
	Composer string `yaml:"composer"`
}

// SiteSettings configure local site provisioning.
type SiteSettings struct {
	// Root is the directory holding one subdirectory per managed site.
	Root string `yaml:"root"`
	// ProjectType is the ddev project type / lando recipe base.
	ProjectType string `yaml:"project_type"`
	AdminUser   string `yaml:"admin_user"`
	AdminPass   string `yaml:"admin_pass"`
}
