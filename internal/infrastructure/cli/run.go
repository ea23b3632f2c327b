package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/drupai-go/internal/app"
)

// ErrDispatchFailed signals a rendered failure result. The envelope has
// already been printed; main only maps this to a non-zero exit code.
var ErrDispatchFailed = errors.New("dispatch failed")

// runFlags are shared between `drupai run ...` and the bare-argument
// form `drupai "..."`; both commands register their own copy.
type runFlags struct {
	provider string
	output   string
	timeout  time.Duration
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.provider, "provider", "p", "", "Override the AI provider or model for content generation")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "Output format: json, text, or table")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Overall request timeout (0 = per-operation defaults)")
}

func runRequest(container *app.Container, flags *runFlags, cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flags.output)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	result := container.Dispatcher.Dispatch(ctx, strings.Join(args, " "), flags.provider)
	if err := Render(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}
	if !result.Success {
		return ErrDispatchFailed
	}
	return nil
}

func newRunCommand(container *app.Container) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [natural language]",
		Short: "Resolve a request and execute it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(container, flags, cmd, args)
		},
	}
	flags.register(cmd)

	return cmd
}

func parseFormat(output string) (Format, error) {
	switch strings.ToLower(output) {
	case "json":
		return FormatJSON, nil
	case "", "text":
		return FormatText, nil
	case "table":
		return FormatTable, nil
	default:
		return "", errors.New("unsupported output format: " + output)
	}
}
