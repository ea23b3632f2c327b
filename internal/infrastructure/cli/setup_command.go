package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/drupai-go/internal/app"
)

func newSetupCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Write the default configuration and show next steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Loading writes the default file on first run.
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("setup failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration: %s\n", container.ConfigLoader.Path())
			fmt.Fprintf(out, "Drupal backend: %s\n", cfg.Drupal.BaseURL)
			fmt.Fprintf(out, "Sites root: %s\n", cfg.Sites.Root)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  1. drupai config edit   (point drupal.base_url at your site)")
			fmt.Fprintln(out, "  2. export ANTHROPIC_API_KEY=<key>   (enables content generation)")
			fmt.Fprintln(out, "  3. drupai doctor   (verify tools and credentials)")
			return nil
		},
	}
}
