// Package drupal holds the HTTP clients for the content backend: the
// JSON:API document client for writes and the GraphQL client for reads.
package drupal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

const jsonAPIContentType = "application/vnd.api+json"

// JSONAPIClient talks to the backend's JSON:API surface for node and media
// writes. Sessions are cookie based: the first call logs in and caches the
// CSRF token for the life of the client.
type JSONAPIClient struct {
	settings   domain.DrupalSettings
	httpClient *http.Client
	log        ports.Logger

	mu        sync.Mutex
	csrfToken string
}

// NewJSONAPIClient builds the write client.
func NewJSONAPIClient(settings domain.DrupalSettings, log ports.Logger) *JSONAPIClient {
	jar, _ := cookiejar.New(nil)
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = domain.DefaultHTTPTimeout
	}
	return &JSONAPIClient{
		settings:   settings,
		httpClient: &http.Client{Jar: jar, Timeout: timeout},
		log:        log,
	}
}

type jsonAPIDocument struct {
	Data jsonAPIResource `json:"data"`
}

type jsonAPIResource struct {
	Type          string                 `json:"type"`
	ID            string                 `json:"id,omitempty"`
	Attributes    map[string]any         `json:"attributes,omitempty"`
	Relationships map[string]any         `json:"relationships,omitempty"`
	Meta          map[string]any         `json:"meta,omitempty"`
	Links         map[string]jsonAPILink `json:"links,omitempty"`
}

type jsonAPILink struct {
	Href string `json:"href"`
}

// CreateNode implements ports.ContentClient.
func (c *JSONAPIClient) CreateNode(ctx context.Context, draft ports.NodeDraft) (ports.NodeRef, error) {
	attributes := map[string]any{
		"title":  draft.Title,
		"status": true,
		"body": map[string]any{
			"value":  draft.Body,
			"format": "full_html",
		},
	}

	doc := jsonAPIDocument{Data: jsonAPIResource{
		Type:       "node--" + draft.ContentType,
		Attributes: attributes,
	}}
	if rel, err := c.tagRelationships(ctx, draft.Tags); err != nil {
		c.log.Warn("tag attachment skipped", map[string]interface{}{"error": err.Error()})
	} else if rel != nil {
		doc.Data.Relationships = rel
	}

	var created jsonAPIDocument
	url := c.settings.JSONAPIURL() + "/node/" + draft.ContentType
	if err := c.do(ctx, http.MethodPost, url, doc, &created); err != nil {
		return ports.NodeRef{}, err
	}

	return c.nodeRef(created.Data), nil
}

// UpdateNode implements ports.ContentClient. The public node id is resolved
// to the document UUID first; an id no document matches is a not-found.
func (c *JSONAPIClient) UpdateNode(ctx context.Context, id int, contentType string, fields map[string]any) (ports.NodeRef, error) {
	uuid, err := c.resolveUUID(ctx, id, contentType)
	if err != nil {
		return ports.NodeRef{}, err
	}

	doc := jsonAPIDocument{Data: jsonAPIResource{
		Type:       "node--" + contentType,
		ID:         uuid,
		Attributes: fields,
	}}

	var updated jsonAPIDocument
	url := c.settings.JSONAPIURL() + "/node/" + contentType + "/" + uuid
	if err := c.do(ctx, http.MethodPatch, url, doc, &updated); err != nil {
		return ports.NodeRef{}, err
	}

	return c.nodeRef(updated.Data), nil
}

// DeleteNode implements ports.ContentClient.
func (c *JSONAPIClient) DeleteNode(ctx context.Context, id int, contentType string) error {
	uuid, err := c.resolveUUID(ctx, id, contentType)
	if err != nil {
		return err
	}
	url := c.settings.JSONAPIURL() + "/node/" + contentType + "/" + uuid
	return c.do(ctx, http.MethodDelete, url, nil, nil)
}

// UploadMedia implements ports.ContentClient. The binary is posted to the
// image field's upload endpoint, which creates the file entity; a media
// entity referencing it is created second.
func (c *JSONAPIClient) UploadMedia(ctx context.Context, filePath, altText, title string) (ports.MediaRef, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return ports.MediaRef{}, domain.WrapFailure(domain.NotFoundFailure, err,
			"cannot read file %s", filePath)
	}
	filename := filepath.Base(filePath)

	fileDoc, err := c.uploadBinary(ctx, filename, data)
	if err != nil {
		return ports.MediaRef{}, err
	}

	mediaDoc := jsonAPIDocument{Data: jsonAPIResource{
		Type: "media--image",
		Attributes: map[string]any{
			"name": title,
		},
		Relationships: map[string]any{
			"field_media_image": map[string]any{
				"data": map[string]any{
					"type": "file--file",
					"id":   fileDoc.Data.ID,
					"meta": map[string]any{"alt": altText},
				},
			},
		},
	}}

	var created jsonAPIDocument
	url := c.settings.JSONAPIURL() + "/media/image"
	if err := c.do(ctx, http.MethodPost, url, mediaDoc, &created); err != nil {
		return ports.MediaRef{}, err
	}

	return ports.MediaRef{
		ID:        internalID(created.Data, "drupal_internal__mid"),
		UUID:      created.Data.ID,
		Filename:  filename,
		SizeBytes: int64(len(data)),
	}, nil
}

func (c *JSONAPIClient) uploadBinary(ctx context.Context, filename string, data []byte) (jsonAPIDocument, error) {
	url := c.settings.JSONAPIURL() + "/media/image/field_media_image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return jsonAPIDocument{}, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", jsonAPIContentType)
	req.Header.Set("Content-Disposition", fmt.Sprintf(`file; filename="%s"`, filename))

	var doc jsonAPIDocument
	if err := c.send(req, &doc); err != nil {
		return jsonAPIDocument{}, err
	}
	return doc, nil
}

// resolveUUID maps a public node id to its JSON:API document UUID.
func (c *JSONAPIClient) resolveUUID(ctx context.Context, id int, contentType string) (string, error) {
	url := fmt.Sprintf("%s/node/%s?filter[drupal_internal__nid]=%d",
		c.settings.JSONAPIURL(), contentType, id)

	var listing struct {
		Data []jsonAPIResource `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, url, nil, &listing); err != nil {
		return "", err
	}
	if len(listing.Data) == 0 {
		return "", domain.NewFailure(domain.NotFoundFailure,
			"no %s node with id %d", contentType, id).
			WithSuggestions("list recent content: show me the latest posts")
	}
	return listing.Data[0].ID, nil
}

// tagRelationships resolves tag names to taxonomy terms, creating terms
// that do not exist yet, and returns the field_tags relationship payload.
func (c *JSONAPIClient) tagRelationships(ctx context.Context, tags []string) (map[string]any, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	refs := make([]map[string]any, 0, len(tags))
	for _, tag := range tags {
		uuid, err := c.ensureTerm(ctx, tag)
		if err != nil {
			return nil, err
		}
		refs = append(refs, map[string]any{"type": "taxonomy_term--tags", "id": uuid})
	}

	return map[string]any{
		"field_tags": map[string]any{"data": refs},
	}, nil
}

func (c *JSONAPIClient) ensureTerm(ctx context.Context, name string) (string, error) {
	url := c.settings.JSONAPIURL() + "/taxonomy_term/tags?filter[name]=" + name

	var listing struct {
		Data []jsonAPIResource `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, url, nil, &listing); err != nil {
		return "", err
	}
	if len(listing.Data) > 0 {
		return listing.Data[0].ID, nil
	}

	doc := jsonAPIDocument{Data: jsonAPIResource{
		Type:       "taxonomy_term--tags",
		Attributes: map[string]any{"name": name},
	}}
	var created jsonAPIDocument
	if err := c.do(ctx, http.MethodPost, c.settings.JSONAPIURL()+"/taxonomy_term/tags", doc, &created); err != nil {
		return "", err
	}
	return created.Data.ID, nil
}

func (c *JSONAPIClient) nodeRef(res jsonAPIResource) ports.NodeRef {
	ref := ports.NodeRef{
		ID:   internalID(res, "drupal_internal__nid"),
		UUID: res.ID,
	}
	if ref.ID > 0 {
		ref.URL = fmt.Sprintf("%s/node/%d", c.settings.BaseURL, ref.ID)
	}
	return ref
}

func (c *JSONAPIClient) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", jsonAPIContentType)
	if body != nil {
		req.Header.Set("Content-Type", jsonAPIContentType)
	}

	return c.send(req, out)
}

func (c *JSONAPIClient) send(req *http.Request, out any) error {
	if err := c.authenticate(req.Context()); err != nil {
		return err
	}

	c.mu.Lock()
	token := c.csrfToken
	c.mu.Unlock()
	if token != "" && req.Method != http.MethodGet {
		req.Header.Set("X-CSRF-Token", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapFailure(domain.ProviderFailure, err,
			"cannot reach Drupal at %s", c.settings.BaseURL).
			WithSuggestions("check base_url in config", "is the site running?")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NewFailure(domain.NotFoundFailure, "Drupal returned 404 for %s", req.URL.Path)
	case resp.StatusCode >= 400:
		return domain.NewFailure(domain.ProviderFailure,
			"Drupal returned %s for %s %s", resp.Status, req.Method, req.URL.Path).
			WithSuggestions(errorDetail(raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// authenticate performs the cookie login once per client.
func (c *JSONAPIClient) authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.csrfToken != "" || c.settings.Username == "" {
		return nil
	}

	payload, _ := json.Marshal(map[string]string{
		"name": c.settings.Username,
		"pass": c.settings.Password,
	})
	url := c.settings.BaseURL + "/user/login?_format=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapFailure(domain.ProviderFailure, err,
			"cannot reach Drupal at %s", c.settings.BaseURL).
			WithSuggestions("check base_url in config", "is the site running?")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.NewFailure(domain.ProviderFailure,
			"Drupal login failed for user %q (%s)", c.settings.Username, resp.Status).
			WithSuggestions("check username and password in config")
	}

	var login struct {
		CSRFToken string `json:"csrf_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return err
	}
	c.csrfToken = login.CSRFToken
	return nil
}

func internalID(res jsonAPIResource, key string) int {
	v, ok := res.Attributes[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		id, _ := strconv.Atoi(n)
		return id
	default:
		return 0
	}
}

func errorDetail(raw []byte) string {
	var body struct {
		Errors []struct {
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Errors) > 0 {
		return body.Errors[0].Detail
	}
	return ""
}

var _ ports.ContentClient = (*JSONAPIClient)(nil)
