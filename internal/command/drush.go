package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

// RunDrush shells an arbitrary maintenance operation through the drush CLI.
type RunDrush struct {
	Command string
	Module  string
	Args    []string

	deps *Deps
}

func newRunDrush(in domain.Intent, deps *Deps) Command {
	cmd := &RunDrush{deps: deps}
	cmd.Command, _ = in.Params.String("command")
	cmd.Module, _ = in.Params.String("module")
	cmd.Args, _ = in.Params.StringSlice("args")
	return cmd
}

func (c *RunDrush) Validate() error {
	if c.Command == "" {
		return missingParam("command")
	}
	return nil
}

func (c *RunDrush) Execute(ctx context.Context) domain.Result {
	tool := c.deps.Config.Tools.Drush
	if tool == "" {
		tool = "drush"
	}
	path, err := c.deps.Runner.LookPath(tool)
	if err != nil {
		return domain.NewFailure(domain.PlatformFailure, "drush is not installed or not on PATH").
			WithSuggestions(
				"install drush: composer require drush/drush",
				"or set tools.drush in ~/.drupai/config.yaml",
			).Result()
	}

	args := strings.Fields(c.Command)
	if c.Module != "" {
		args = append(args, c.Module)
	}
	args = append(args, c.Args...)
	// Module and cache operations are non-interactive by contract.
	if strings.HasPrefix(c.Command, "pm:") || strings.HasPrefix(c.Command, "updatedb") || strings.HasPrefix(c.Command, "config:") {
		args = append(args, "--yes")
	}

	c.deps.Logger.Info("running drush", map[string]interface{}{"args": strings.Join(args, " ")})

	res, err := c.deps.Runner.Run(ctx, ports.ProcessSpec{
		Path:    path,
		Args:    args,
		Timeout: domain.DrushTimeout,
	})
	if err != nil {
		return domain.WrapFailure(domain.PlatformFailure, err, "drush %s did not complete", c.Command).
			WithSuggestions("check that the Drupal site is reachable from this directory").Result()
	}
	if res.ExitCode != 0 {
		return domain.NewFailure(domain.PlatformFailure, "drush %s exited with status %d", c.Command, res.ExitCode).
			WithSuggestions(firstLine(res.Stderr)).Result()
	}

	return domain.OK(fmt.Sprintf("drush %s completed", c.Command), map[string]any{
		"command":     c.Command,
		"stdout":      res.Stdout,
		"exit_code":   res.ExitCode,
		"duration_ms": res.Duration.Milliseconds(),
	})
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "re-run with drush directly for full output"
	}
	return s
}
