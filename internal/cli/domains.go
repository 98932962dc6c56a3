package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/treb-multichain/internal/cli/render"
)

// NewDomainsCmd creates the domains command
func NewDomainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "domains",
		Aliases: []string{"networks"},
		Short:   "List bridge domains and configured networks",
		Long: `List the domains registered with the bridge of the selected environment
and check that every configured network is routed by it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.ListNetworks.Run(cmd.Context())
			stopProgress(a)
			if err != nil {
				return err
			}

			if a.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), render.NewNetworksOutput(result))
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}

	return cmd
}
