// Package cli wires the cobra command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/drupai-go/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd builds the container and the full command tree. Bare
// arguments are treated as a natural-language request.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	return buildRootCmd(container), nil
}

func buildRootCmd(container *app.Container) *cobra.Command {
	rootFlags := &runFlags{}

	root := &cobra.Command{
		Use:   "drupai [request]",
		Short: "drupai - natural language control for Drupal sites",
		Long:  "drupai turns natural language into Drupal content operations and local site management.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runRequest(container, rootFlags, cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// The bare form takes the same flags as the run subcommand.
	rootFlags.register(root)

	root.AddCommand(newRunCommand(container))
	root.AddCommand(newCreateSiteCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newSetupCommand(container))
	root.AddCommand(newVersionCommand())
	return root
}
