package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/drupai-go/internal/app"
	"github.com/doeshing/drupai-go/internal/domain"
)

// newCreateSiteCommand is the explicit counterpart of the natural-language
// create-site path; it builds the same command through the same registry.
func newCreateSiteCommand(container *app.Container) *cobra.Command {
	var (
		platform string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "create-site <name>",
		Short: "Scaffold and start a new Drupal site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(output)
			if err != nil {
				return err
			}

			in := domain.Intent{
				Operation: domain.OpCreateSite,
				Params: domain.Params{
					"project_name": args[0],
					"platform":     platform,
				},
				Source: domain.SourceRule,
			}

			c, err := container.Registry.Create(in)
			if err != nil {
				return err
			}

			var result domain.Result
			if err := c.Validate(); err != nil {
				result = domain.ResultFromError(err)
			} else {
				result = c.Execute(cmd.Context())
			}

			if err := Render(cmd.OutOrStdout(), format, result); err != nil {
				return err
			}
			if !result.Success {
				return ErrDispatchFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", string(domain.PlatformDDEV), "Local platform: ddev or lando")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: json, text, or table")

	return cmd
}
