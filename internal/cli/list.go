package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/treb-multichain/internal/cli/render"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		contractName    string
		allEnvironments bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployments from the journal",
		Long: `List the deployments submitted from this project, oldest first.
Only deployments of the selected environment are shown unless --all is set.`,
		Example: `  # List all Counter deployments
  treb-multichain list --contract Counter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				Contract:        contractName,
				AllEnvironments: allEnvironments,
			})
			stopProgress(a)
			if err != nil {
				return err
			}

			if a.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), !a.Config.NonInteractive).RenderDeploymentList(result)
		},
	}
	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().BoolVar(&allEnvironments, "all", false, "Include every environment")

	return cmd
}
