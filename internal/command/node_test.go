package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

func TestEditNodeValidate(t *testing.T) {
	reg := NewRegistry(&Deps{})

	cases := []struct {
		name   string
		params domain.Params
		valid  bool
	}{
		{"missing node id", domain.Params{"title": "x"}, false},
		{"missing fields", domain.Params{"node_id": 42}, false},
		{"title only", domain.Params{"node_id": 42, "title": "New Title"}, true},
		{"body only", domain.Params{"node_id": 42, "body": "text"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := reg.Create(ruleIntent(domain.OpEditNode, tc.params))
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if got := cmd.Validate() == nil; got != tc.valid {
				t.Errorf("Validate() valid = %v, want %v", got, tc.valid)
			}
		})
	}
}

func TestEditNodeBuildsFieldMap(t *testing.T) {
	content := &stubContent{ref: ports.NodeRef{ID: 42, URL: "https://drupal.ddev.site/node/42"}}
	cmd, err := NewRegistry(&Deps{Content: content}).Create(ruleIntent(domain.OpEditNode, domain.Params{
		"node_id": 42,
		"title":   "New Title",
		"body":    "Fresh body.",
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := cmd.Execute(context.Background())
	if !res.Success {
		t.Fatalf("Execute failed: %s", res.Message)
	}
	if content.updatedID != 42 {
		t.Errorf("updated node %d, want 42", content.updatedID)
	}
	if content.fields["title"] != "New Title" {
		t.Errorf("title field = %v", content.fields["title"])
	}
	body, ok := content.fields["body"].(map[string]any)
	if !ok {
		t.Fatalf("body field = %T", content.fields["body"])
	}
	if body["format"] != "full_html" {
		t.Errorf("body format = %v", body["format"])
	}
}

func TestDeleteNode(t *testing.T) {
	content := &stubContent{}
	cmd, err := NewRegistry(&Deps{Content: content}).Create(ruleIntent(domain.OpDeleteNode, domain.Params{
		"node_id": 7,
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := cmd.Execute(context.Background())
	if !res.Success {
		t.Fatalf("Execute failed: %s", res.Message)
	}
	if content.deletedID != 7 {
		t.Errorf("deleted node %d, want 7", content.deletedID)
	}
}

func TestUploadMediaMissingFile(t *testing.T) {
	cmd, err := NewRegistry(&Deps{Content: &stubContent{}}).Create(ruleIntent(domain.OpUploadMedia, domain.Params{
		"file_path": filepath.Join(t.TempDir(), "nope.jpg"),
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := cmd.Execute(context.Background())
	if res.Success {
		t.Fatal("expected failure for missing file")
	}
	if res.Data["error"] != string(domain.NotFoundFailure) {
		t.Errorf("error kind = %v", res.Data["error"])
	}
}

func TestUploadMediaDefaultsAltFromFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sleepy-cat.jpg")
	if err := os.WriteFile(path, []byte("jpegdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	content := &stubContent{media: ports.MediaRef{ID: 5, Filename: "sleepy-cat.jpg"}}
	cmd, err := NewRegistry(&Deps{Content: content}).Create(ruleIntent(domain.OpUploadMedia, domain.Params{
		"file_path": path,
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := cmd.Execute(context.Background())
	if !res.Success {
		t.Fatalf("Execute failed: %s", res.Message)
	}
	if res.Data["alt_text"] != "Sleepy Cat" {
		t.Errorf("alt_text = %v", res.Data["alt_text"])
	}
	if res.Data["media_id"] != 5 {
		t.Errorf("media_id = %v", res.Data["media_id"])
	}
}
