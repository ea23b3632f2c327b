package drupal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

// GraphQLClient runs read-only content queries against the backend's
// GraphQL endpoint. Writes never go through here.
type GraphQLClient struct {
	settings   domain.DrupalSettings
	httpClient *http.Client
	log        ports.Logger
}

// NewGraphQLClient builds the read client.
func NewGraphQLClient(settings domain.DrupalSettings, log ports.Logger) *GraphQLClient {
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = domain.DefaultHTTPTimeout
	}
	return &GraphQLClient{
		settings:   settings,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

const latestNodesQuery = `
query LatestNodes($type: String!, $limit: Int!) {
  nodeQuery(
    limit: $limit
    sort: [{field: "created", direction: DESC}]
    filter: {conditions: [
      {field: "type", value: [$type]}
      {field: "status", value: ["1"]}
    ]}
  ) {
    entities { entityId entityLabel entityCreated }
  }
}`

const searchNodesQuery = `
query SearchNodes($type: String!, $term: String!, $limit: Int!) {
  nodeQuery(
    limit: $limit
    sort: [{field: "created", direction: DESC}]
    filter: {conditions: [
      {field: "type", value: [$type]}
      {field: "status", value: ["1"]}
      {field: "title", value: [$term], operator: LIKE}
    ]}
  ) {
    entities { entityId entityLabel entityCreated }
  }
}`

const nodesWithTagsQuery = `
query NodesWithTags($type: String!, $tags: [String], $limit: Int!) {
  nodeQuery(
    limit: $limit
    sort: [{field: "created", direction: DESC}]
    filter: {conditions: [
      {field: "type", value: [$type]}
      {field: "status", value: ["1"]}
      {field: "field_tags.entity.name", value: $tags, operator: IN}
    ]}
  ) {
    entities { entityId entityLabel entityCreated }
  }
}`

const usersByRoleQuery = `
query UsersByRole($role: String!, $limit: Int!) {
  userQuery(
    limit: $limit
    filter: {conditions: [
      {field: "roles", value: [$role]}
      {field: "status", value: ["1"]}
    ]}
  ) {
    entities {
      ... on User { uid name mail }
    }
  }
}`

type graphQLEntity struct {
	EntityID      string `json:"entityId"`
	EntityLabel   string `json:"entityLabel"`
	EntityCreated string `json:"entityCreated"`
}

type graphQLUser struct {
	UID  json.Number `json:"uid"`
	Name string      `json:"name"`
	Mail string      `json:"mail"`
}

// LatestNodes implements ports.QueryClient.
func (c *GraphQLClient) LatestNodes(ctx context.Context, contentType string, limit int) ([]ports.NodeSummary, error) {
	return c.nodeQuery(ctx, latestNodesQuery, map[string]any{
		"type":  contentType,
		"limit": limit,
	})
}

// SearchNodes implements ports.QueryClient. The term is matched against
// titles with a contains semantic.
func (c *GraphQLClient) SearchNodes(ctx context.Context, term, contentType string, limit int) ([]ports.NodeSummary, error) {
	return c.nodeQuery(ctx, searchNodesQuery, map[string]any{
		"type":  contentType,
		"term":  "%" + term + "%",
		"limit": limit,
	})
}

// NodesWithTags implements ports.QueryClient.
func (c *GraphQLClient) NodesWithTags(ctx context.Context, tags []string, contentType string, limit int) ([]ports.NodeSummary, error) {
	return c.nodeQuery(ctx, nodesWithTagsQuery, map[string]any{
		"type":  contentType,
		"tags":  tags,
		"limit": limit,
	})
}

// UsersByRole implements ports.QueryClient.
func (c *GraphQLClient) UsersByRole(ctx context.Context, role string, limit int) ([]ports.UserSummary, error) {
	raw, err := c.execute(ctx, usersByRoleQuery, map[string]any{
		"role":  role,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		UserQuery struct {
			Entities []graphQLUser `json:"entities"`
		} `json:"userQuery"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	users := make([]ports.UserSummary, 0, len(payload.UserQuery.Entities))
	for _, e := range payload.UserQuery.Entities {
		id, _ := strconv.Atoi(e.UID.String())
		users = append(users, ports.UserSummary{ID: id, Name: e.Name, Mail: e.Mail})
	}
	return users, nil
}

func (c *GraphQLClient) nodeQuery(ctx context.Context, query string, variables map[string]any) ([]ports.NodeSummary, error) {
	raw, err := c.execute(ctx, query, variables)
	if err != nil {
		return nil, err
	}

	var payload struct {
		NodeQuery struct {
			Entities []graphQLEntity `json:"entities"`
		} `json:"nodeQuery"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	nodes := make([]ports.NodeSummary, 0, len(payload.NodeQuery.Entities))
	for _, e := range payload.NodeQuery.Entities {
		id, _ := strconv.Atoi(e.EntityID)
		nodes = append(nodes, ports.NodeSummary{ID: id, Title: e.EntityLabel, Created: e.EntityCreated})
	}
	return nodes, nil
}

// execute posts one GraphQL operation and returns the data payload.
// Transport errors and GraphQL-level errors both surface as failures.
func (c *GraphQLClient) execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.settings.GraphQLURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.settings.Username != "" {
		req.SetBasicAuth(c.settings.Username, c.settings.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapFailure(domain.ProviderFailure, err,
			"cannot reach Drupal GraphQL at %s", c.settings.GraphQLURL()).
			WithSuggestions("check base_url and graphql_endpoint in config", "is the graphql module enabled?")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, domain.NewFailure(domain.ProviderFailure,
			"Drupal GraphQL returned %s", resp.Status)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Errors) > 0 {
		return nil, domain.NewFailure(domain.ProviderFailure,
			"GraphQL query failed: %s", envelope.Errors[0].Message)
	}
	return envelope.Data, nil
}

var _ ports.QueryClient = (*GraphQLClient)(nil)
