// Package run executes external tools as direct subprocesses. Arguments are
// always passed as a vector; nothing is ever routed through a shell.
package run

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/doeshing/drupai-go/internal/ports"
)

// ExecRunner runs tools on the host.
type ExecRunner struct{}

// NewExecRunner builds a runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements ports.ProcessRunner. A non-zero exit is reported through
// ExitCode, not as an error; errors mean the process could not run at all
// or was cut off by the deadline.
func (r *ExecRunner) Run(ctx context.Context, spec ports.ProcessSpec) (ports.ProcessResult, error) {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, spec.Path, spec.Args...)
	c.Dir = spec.Dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start)

	result := ports.ProcessResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, err
	}
	return result, nil
}

// LookPath implements ports.ProcessRunner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

var _ ports.ProcessRunner = (*ExecRunner)(nil)
