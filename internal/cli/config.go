package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/treb-multichain/internal/cli/render"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show multichain.toml merged with MULTICHAIN_* environment variables and
flags. The private key is never printed, only the address it signs for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}

			if a.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
		},
	}

	return cmd
}
