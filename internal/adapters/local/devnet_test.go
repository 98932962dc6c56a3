package local

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-multichain/internal/adapters/abi"
	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

const counterABI = `[{"type":"constructor","inputs":[{"name":"start","type":"uint256"}]}]`

var (
	counterCode = common.FromHex("0x6080604052348015600f57600080fd5b50")
	salt        = fortify.Salt(common.HexToHash("0x01"))
)

func testConfig(deployTo ...string) *config.RuntimeConfig {
	networks := map[string]*config.Network{}
	for _, d := range MockDomains {
		networks[d.Name] = &config.Network{Name: d.Name}
	}
	return &config.RuntimeConfig{
		AutoConfirm: true,
		Multichain: &config.MultichainConfig{
			Environment:        domain.EnvironmentLocal,
			Network:            "sepolia",
			DeploymentNetworks: deployTo,
			AdapterAddress:     config.DefaultAdapterAddress,
			GasLimit:           config.DefaultGasLimit,
			PollInterval:       time.Millisecond,
			Networks:           networks,
		},
	}
}

func newOrchestrator(t *testing.T, cfg *config.RuntimeConfig) (*Devnet, *usecase.DeployMultichain) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dev, err := NewDevnet(cfg, log)
	require.NoError(t, err)
	uc := usecase.NewDeployMultichain(cfg, dev, dev.Resolver(), dev, abi.NewArgumentMapper(log), nil, dev, nil, nil, nil, log)
	require.NoError(t, uc.Initialize(context.Background()))
	return dev, uc
}

func counterArgs(networks ...string) domain.NetworkArgs {
	args := make(domain.NetworkArgs, len(networks))
	for i, n := range networks {
		args[i] = domain.NetworkArgument{Network: n, ConstructorArgs: []domain.Value{domain.Uint(uint64(i + 1))}}
	}
	return args
}

func TestDevnet_DeployAndTrack(t *testing.T) {
	ctx := context.Background()
	dev, uc := newOrchestrator(t, testConfig("sepolia", "holesky", "mumbai"))

	result, err := uc.DeployBytecode(ctx, usecase.DeployBytecodeParams{
		Bytecode:    counterCode,
		ABI:         counterABI,
		NetworkArgs: counterArgs("sepolia", "holesky", "mumbai"),
		Options:     domain.DeployOptions{Salt: &salt},
	})
	require.NoError(t, err)

	assert.Equal(t, []uint8{2, 6, 7}, result.DomainIDs)
	require.Len(t, result.Fees, 3)
	assert.Equal(t, int64(0), result.Fees[0].Int64())
	assert.Equal(t, big.NewInt(1666666666666666), result.Fees[1])
	assert.Equal(t, big.NewInt(1428571428571428), result.Fees[2])

	// the local deployment is mined with the funded transaction
	var deployed []common.Address
	for _, ev := range result.Events {
		if ev.Type == domain.EventDeployed {
			deployed = append(deployed, ev.NewContract)
		}
	}
	assert.Equal(t, []common.Address{result.PredictedAddresses[2]}, deployed)

	for _, id := range []uint8{2, 6, 7} {
		chain, ok := dev.Chain(id)
		require.True(t, ok)
		account := chain.Ledger.Account(result.PredictedAddresses[id])
		require.NotNil(t, account, "domain %d", id)
		assert.NotEmpty(t, account.Code)
	}
	// same salt and sender, so every chain shares the address
	assert.Equal(t, result.PredictedAddresses[2], result.PredictedAddresses[6])

	infos, err := uc.GetDeploymentInfo(ctx, result.TransactionHash, result.DomainIDs)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "sepolia", infos[0].Network)
	assert.Equal(t, result.TransactionHash, infos[0].TransactionHash)
	assert.Equal(t, "holesky", infos[1].Network)
	assert.NotEqual(t, result.TransactionHash, infos[1].TransactionHash)
	// no journal here, so addresses come from the origin receipt
	assert.Equal(t, result.PredictedAddresses[2], infos[0].ContractAddress)
	assert.Equal(t, result.PredictedAddresses[6], infos[1].ContractAddress)

	receipt, err := dev.DeployReceipt(ctx, result.TransactionHash, config.DefaultAdapterAddress)
	require.NoError(t, err)
	assert.Equal(t, result.Events, receipt.Events)
	_, err = dev.DeployReceipt(ctx, common.HexToHash("0x01"), config.DefaultAdapterAddress)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDevnet_UniquePerChain(t *testing.T) {
	ctx := context.Background()
	dev, uc := newOrchestrator(t, testConfig("sepolia", "holesky"))

	result, err := uc.DeployBytecode(ctx, usecase.DeployBytecodeParams{
		Bytecode:    counterCode,
		ABI:         counterABI,
		NetworkArgs: counterArgs("sepolia", "holesky"),
		Options:     domain.DeployOptions{Salt: &salt, IsUniquePerChain: true},
	})
	require.NoError(t, err)
	assert.NotEqual(t, result.PredictedAddresses[2], result.PredictedAddresses[6])

	holesky, _ := dev.Chain(6)
	assert.NotNil(t, holesky.Ledger.Account(result.PredictedAddresses[6]))
}

func TestDevnet_TransferStatus(t *testing.T) {
	ctx := context.Background()
	dev, uc := newOrchestrator(t, testConfig("holesky"))

	result, err := uc.DeployBytecode(ctx, usecase.DeployBytecodeParams{
		Bytecode:    counterCode,
		ABI:         counterABI,
		NetworkArgs: counterArgs("holesky"),
		Options:     domain.DeployOptions{Salt: &salt},
	})
	require.NoError(t, err)

	transfer, err := dev.TransferStatus(ctx, domain.EnvironmentLocal, result.TransactionHash, 6)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferExecuted, transfer.Status)
	assert.Equal(t, uint8(2), transfer.FromDomainID)

	_, err = dev.TransferStatus(ctx, domain.EnvironmentLocal, result.TransactionHash, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// redeploying the same salt collides on the destination
	again, err := uc.DeployBytecode(ctx, usecase.DeployBytecodeParams{
		Bytecode:    counterCode,
		ABI:         counterABI,
		NetworkArgs: counterArgs("holesky"),
		Options:     domain.DeployOptions{Salt: &salt},
	})
	require.NoError(t, err)
	transfer, err = dev.TransferStatus(ctx, domain.EnvironmentLocal, again.TransactionHash, 6)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferFailed, transfer.Status)

	_, err = uc.GetDeploymentInfo(ctx, again.TransactionHash, again.DomainIDs)
	assert.ErrorIs(t, err, domain.ErrTransferFailed)
}

func TestDevnet_Resolver(t *testing.T) {
	dev, err := NewDevnet(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	id, err := dev.Resolver().ChainID(context.Background(), &config.Network{Name: "Holesky"})
	require.NoError(t, err)
	assert.Equal(t, uint64(17000), id)

	id, err = dev.Resolver().ChainID(context.Background(), &config.Network{Name: "anvil", ChainID: 31337})
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), id)

	_, err = dev.Resolver().ChainID(context.Background(), &config.Network{Name: "anvil"})
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)

	origin, err := dev.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), origin)

	_, err = dev.AdapterInfo(context.Background(), common.HexToAddress("0x01"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
