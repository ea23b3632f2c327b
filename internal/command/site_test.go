package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/platform"
	"github.com/doeshing/drupai-go/internal/ports"
)

func writeMarker(t *testing.T, dir, marker string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(marker))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("name: test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func siteDeps(t *testing.T, runner ports.ProcessRunner) (*Deps, string) {
	t.Helper()
	root := t.TempDir()
	cfg := domain.Config{Sites: domain.SiteSettings{Root: root}}
	deps := &Deps{
		Config: cfg,
		Sites:  platform.NewManager(runner, cfg, nopLogger{}),
		Logger: nopLogger{},
	}
	return deps, root
}

func TestCreateSiteValidate(t *testing.T) {
	reg := NewRegistry(&Deps{})

	cases := []struct {
		name   string
		params domain.Params
		valid  bool
	}{
		{"ok ddev", domain.Params{"project_name": "my-blog", "platform": "ddev"}, true},
		{"ok lando", domain.Params{"project_name": "client-demo", "platform": "lando"}, true},
		{"missing name", domain.Params{"platform": "ddev"}, false},
		{"missing platform", domain.Params{"project_name": "my-blog"}, false},
		{"bad platform", domain.Params{"project_name": "my-blog", "platform": "docker"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := reg.Create(ruleIntent(domain.OpCreateSite, tc.params))
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if got := cmd.Validate() == nil; got != tc.valid {
				t.Errorf("Validate() valid = %v, want %v", got, tc.valid)
			}
		})
	}
}

func TestCreateSiteSlugsProjectName(t *testing.T) {
	scaffold := &stubScaffold{info: ports.SiteInfo{
		Name:     "my-new-shop",
		URL:      "https://my-new-shop.ddev.site",
		Platform: domain.PlatformDDEV,
	}}
	deps, root := siteDeps(t, &stubRunner{})
	deps.Scaffold = scaffold

	cmd, err := NewRegistry(deps).Create(ruleIntent(domain.OpCreateSite, domain.Params{
		"project_name": "My New Shop",
		"platform":     "ddev",
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := cmd.Execute(context.Background())
	if !res.Success {
		t.Fatalf("Execute failed: %s", res.Message)
	}
	if scaffold.spec.Name != "my-new-shop" {
		t.Errorf("spec.Name = %q", scaffold.spec.Name)
	}
	if want := filepath.Join(root, "my-new-shop"); scaffold.spec.Directory != want {
		t.Errorf("spec.Directory = %q, want %q", scaffold.spec.Directory, want)
	}
	if res.Data["url"] != "https://my-new-shop.ddev.site" {
		t.Errorf("url = %v", res.Data["url"])
	}
}

func TestStartSiteUnknownDirectory(t *testing.T) {
	deps, _ := siteDeps(t, &stubRunner{})
	cmd, err := NewRegistry(deps).Create(ruleIntent(domain.OpStartSite, domain.Params{
		"project_name": "ghost",
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := cmd.Execute(context.Background())
	if res.Success {
		t.Fatal("expected failure for missing site directory")
	}
	if res.Data["error"] != string(domain.NotFoundFailure) {
		t.Errorf("error kind = %v", res.Data["error"])
	}
	if _, ok := res.Data["suggestions"]; !ok {
		t.Error("expected a create-it-first suggestion")
	}
}

func TestStartSiteRunsPlatformTool(t *testing.T) {
	runner := &stubRunner{result: ports.ProcessResult{Stdout: "Successfully started my-blog\n"}}
	deps, root := siteDeps(t, runner)
	writeMarker(t, filepath.Join(root, "my-blog"), ".ddev/config.yaml")

	cmd, err := NewRegistry(deps).Create(ruleIntent(domain.OpStartSite, domain.Params{
		"project_name": "my-blog",
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := cmd.Execute(context.Background())
	if !res.Success {
		t.Fatalf("Execute failed: %s", res.Message)
	}
	if runner.spec.Path != "/usr/local/bin/ddev" {
		t.Errorf("tool path = %q", runner.spec.Path)
	}
	if len(runner.spec.Args) != 1 || runner.spec.Args[0] != "start" {
		t.Errorf("args = %v", runner.spec.Args)
	}
	if res.Data["status"] != string(domain.StatusRunning) {
		t.Errorf("status = %v", res.Data["status"])
	}
	if res.Data["url"] != "https://my-blog.ddev.site" {
		t.Errorf("url = %v", res.Data["url"])
	}
}

func TestStatusSiteReportsParsedState(t *testing.T) {
	runner := &stubRunner{result: ports.ProcessResult{Stdout: "Project my-blog is not running\n"}}
	deps, root := siteDeps(t, runner)
	writeMarker(t, filepath.Join(root, "my-blog"), ".ddev/config.yaml")

	cmd, err := NewRegistry(deps).Create(ruleIntent(domain.OpStatusSite, domain.Params{
		"project_name": "my-blog",
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := cmd.Execute(context.Background())
	if !res.Success {
		t.Fatalf("Execute failed: %s", res.Message)
	}
	if res.Data["status"] != string(domain.StatusStopped) {
		t.Errorf("status = %v", res.Data["status"])
	}
}

func TestStopSiteLandoUsesLandoTool(t *testing.T) {
	runner := &stubRunner{}
	deps, root := siteDeps(t, runner)
	writeMarker(t, filepath.Join(root, "client-demo"), ".lando.yml")

	cmd, err := NewRegistry(deps).Create(ruleIntent(domain.OpStopSite, domain.Params{
		"project_name": "client-demo",
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := cmd.Execute(context.Background())
	if !res.Success {
		t.Fatalf("Execute failed: %s", res.Message)
	}
	if runner.spec.Path != "/usr/local/bin/lando" {
		t.Errorf("tool path = %q", runner.spec.Path)
	}
	if res.Data["platform"] != string(domain.PlatformLando) {
		t.Errorf("platform = %v", res.Data["platform"])
	}
}
