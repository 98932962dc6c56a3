package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/treb-multichain/internal/app"
	"github.com/trebuchet-org/treb-multichain/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "treb-multichain",
		Short: "Deterministic multichain contract deployments over a cross-chain bridge",
		Long: `treb-multichain deploys one contract to several networks with a single
funded transaction. The origin adapter deploys locally and forwards the
init code over the bridge; every destination lands on an address derived
from the sender and the salt.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipAppInit(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}
			cmd.SetContext(ctx)

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("environment", "", "Bridge environment (mainnet, testnet, devnet, local)")
	flags.StringP("network", "n", "", "Origin network the deploy transaction is sent on")
	flags.String("deployment-networks", "", "Comma separated networks allowed as destinations")
	flags.String("adapter", "", "Deploy adapter address")
	flags.String("private-key", "", "Private key signing the deploy transaction")
	flags.Duration("poll-interval", 0, "Interval between bridge status queries")
	flags.Duration("timeout", 0, "Overall command timeout (default 30m)")
	flags.Bool("debug", false, "Enable debug output")
	flags.Bool("non-interactive", false, "Disable interactive prompts")
	flags.BoolP("yes", "y", false, "Skip confirmation before sending funded transactions")
	flags.Bool("json", false, "Output in JSON format")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewDeployCmd(),
		NewDeployBytecodeCmd(),
		NewStatusCmd(),
		NewPredictCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewDomainsCmd(),
		NewListCmd(),
		NewConfigCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func skipAppInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// stopProgress halts the spinner before anything is written to stdout
func stopProgress(a *app.App) {
	if s, ok := a.Progress.(interface{ Stop() }); ok {
		s.Stop()
	}
}
