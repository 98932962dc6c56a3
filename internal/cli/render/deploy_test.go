package render

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
)

var testDomains = []domain.Domain{
	{ID: 2, ChainID: 11155111, Name: "sepolia", Type: domain.DomainTypeEVM},
	{ID: 6, ChainID: 17000, Name: "holesky", Type: domain.DomainTypeEVM},
}

func init() {
	color.NoColor = true
}

func TestDeployRenderer_RenderDeploy(t *testing.T) {
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	result := &domain.DeployResult{
		TransactionHash:    common.HexToHash("0xabc"),
		DomainIDs:          []uint8{2, 6},
		Fees:               []*big.Int{big.NewInt(0), big.NewInt(1666666666666666)},
		PredictedAddresses: map[uint8]common.Address{2: addr, 6: addr},
	}

	var out bytes.Buffer
	require.NoError(t, NewDeployRenderer(&out, testDomains).RenderDeploy(result))

	s := out.String()
	assert.Contains(t, s, "Deployment submitted")
	assert.Contains(t, s, "0.001666666666666666")
	assert.Contains(t, s, "holesky")
	assert.Contains(t, s, addr.Hex())
	assert.Contains(t, s, "status "+result.TransactionHash.Hex())
}

func TestDeployRenderer_RenderStatus(t *testing.T) {
	tx := common.HexToHash("0xabc")
	infos := []domain.DeploymentInfo{
		{Network: "sepolia", DomainID: 2, ContractAddress: common.HexToAddress("0x01"), TransactionHash: tx},
	}
	statusErr := errors.Join(
		&domain.TransferFailedError{DomainID: 6, Network: "holesky", ExplorerURL: "https://scan/transfer/0xabc"},
		fmt.Errorf("mumbai (domain 7): %w", errors.New("context deadline exceeded")),
	)

	var out bytes.Buffer
	require.NoError(t, NewDeployRenderer(&out, testDomains).RenderStatus(tx, infos, statusErr))

	s := out.String()
	assert.Contains(t, s, "sepolia")
	assert.Contains(t, s, "holesky (domain 6) failed https://scan/transfer/0xabc")
	assert.Contains(t, s, "mumbai (domain 7)")
	assert.NotContains(t, s, "Deployed on")

	output := NewStatusOutput(tx, infos, statusErr)
	assert.Len(t, output.Deployments, 1)
	assert.Len(t, output.Errors, 2)
	assert.True(t, IsTransferFailure(statusErr))
}

func TestFormatEther(t *testing.T) {
	assert.Equal(t, "0", FormatEther(nil))
	assert.Equal(t, "0", FormatEther(big.NewInt(0)))
	assert.Equal(t, "1", FormatEther(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)))
	assert.Equal(t, "0.01", FormatEther(big.NewInt(10_000_000_000_000_000)))
}

func TestNewDeployOutput(t *testing.T) {
	result := &domain.DeployResult{
		DomainIDs: []uint8{2, 9},
		Fees:      []*big.Int{big.NewInt(0), big.NewInt(5)},
		DryRun:    true,
	}
	out := NewDeployOutput(result, testDomains)
	assert.Empty(t, out.TransactionHash)
	assert.Equal(t, "5", out.TotalFee)
	require.Len(t, out.Domains, 2)
	assert.Equal(t, "sepolia", out.Domains[0].Network)
	assert.Empty(t, out.Domains[1].Network)
}
