package cli

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var domainIDs []uint

	cmd := &cobra.Command{
		Use:   "status <tx-hash>",
		Short: "Wait for the bridge to execute a deployment on every domain",
		Long: `Poll the bridge status service until every destination of a deploy
transaction was executed or failed. Domains recorded in the deployment
journal are used when --domains is omitted.`,
		Example: `  treb-multichain status 0x5c50...
  treb-multichain status 0x5c50... --domains 2,6`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			txHash, err := parseTxHash(args[0])
			if err != nil {
				return err
			}
			ids, err := toDomainIDs(domainIDs)
			if err != nil {
				return err
			}

			if err := a.Deploy.Initialize(cmd.Context()); err != nil {
				stopProgress(a)
				return err
			}
			domains, err := a.Deploy.Domains()
			if err != nil {
				return err
			}
			return waitAndRender(cmd, a, domains, txHash, ids)
		},
	}
	cmd.Flags().UintSliceVar(&domainIDs, "domains", nil, "Domain ids to wait for (defaults to the journaled deployment)")

	return cmd
}

func parseTxHash(s string) (common.Hash, error) {
	raw := common.FromHex(s)
	if len(raw) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid transaction hash %q", s)
	}
	return common.BytesToHash(raw), nil
}

func toDomainIDs(ids []uint) ([]uint8, error) {
	out := make([]uint8, 0, len(ids))
	seen := make(map[uint8]bool, len(ids))
	for _, id := range ids {
		if id > 255 {
			return nil, fmt.Errorf("invalid domain id %s", strconv.FormatUint(uint64(id), 10))
		}
		if seen[uint8(id)] {
			continue
		}
		seen[uint8(id)] = true
		out = append(out, uint8(id))
	}
	return out, nil
}
