package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/treb-multichain/internal/cli/render"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// NewPredictCmd creates the predict command
func NewPredictCmd() *cobra.Command {
	var (
		salt     string
		sender   string
		factory  string
		unique   bool
		networks []string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict deployment addresses without sending a transaction",
		Example: `  treb-multichain predict --salt 0x00...01
  treb-multichain predict --salt 0x00...01 --sender 0xf39F... --unique --networks sepolia,holesky`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			if salt == "" {
				return fmt.Errorf("--salt is required")
			}
			parsed, err := fortify.ParseSalt(salt)
			if err != nil {
				return err
			}
			params := usecase.PredictAddressParams{
				Salt:             parsed,
				IsUniquePerChain: unique,
				Networks:         networks,
			}
			if sender != "" {
				addr, err := parseAddressFlag("sender", sender)
				if err != nil {
					return err
				}
				params.Sender = addr
			}
			if factory != "" {
				addr, err := parseAddressFlag("factory", factory)
				if err != nil {
					return err
				}
				params.Factory = &addr
			}

			result, err := a.PredictAddress.Run(cmd.Context(), params)
			stopProgress(a)
			if err != nil {
				return err
			}

			if a.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewPredictRenderer(cmd.OutOrStdout()).RenderPrediction(result)
		},
	}
	cmd.Flags().StringVar(&salt, "salt", "", "32 byte hex salt")
	cmd.Flags().StringVar(&sender, "sender", "", "Deployer address (defaults to the configured signer)")
	cmd.Flags().StringVar(&factory, "factory", "", "Factory address (defaults to the adapter's factory)")
	cmd.Flags().BoolVar(&unique, "unique", false, "Predict per chain unique addresses")
	cmd.Flags().StringSliceVar(&networks, "networks", nil, "Networks to predict for (defaults to deployment_networks)")

	return cmd
}

func parseAddressFlag(name, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid --%s address %q", name, value)
	}
	return common.HexToAddress(value), nil
}
