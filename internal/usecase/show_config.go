package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
)

// ShowConfigResult is the resolved configuration with secrets removed
type ShowConfigResult struct {
	ConfigPath         string
	Exists             bool
	Environment        string
	Network            string
	DeploymentNetworks []string
	AdapterAddress     common.Address
	GasLimit           uint64
	PollInterval       string
	Timeout            string
	ArtifactsDir       string
	Sender             common.Address
	HasSigner          bool
	Networks           []*config.Network
	Endpoints          config.Endpoints
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config  *config.RuntimeConfig
	gateway AdapterGateway
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, gateway AdapterGateway) *ShowConfig {
	return &ShowConfig{
		config:  cfg,
		gateway: gateway,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	mc := uc.config.Multichain
	result := &ShowConfigResult{
		ConfigPath:         uc.config.ConfigFile,
		Exists:             uc.config.ConfigFile != "",
		Environment:        string(mc.Environment),
		Network:            mc.Network,
		DeploymentNetworks: mc.DeploymentNetworks,
		AdapterAddress:     mc.AdapterAddress,
		GasLimit:           mc.GasLimit,
		PollInterval:       mc.PollInterval.String(),
		ArtifactsDir:       mc.ArtifactsDir,
		Endpoints:          mc.Endpoints,
		Sender:             uc.gateway.Sender(),
	}
	if uc.config.Timeout > 0 {
		result.Timeout = uc.config.Timeout.String()
	}
	result.HasSigner = result.Sender != (common.Address{})

	for _, name := range mc.NetworkNames() {
		result.Networks = append(result.Networks, mc.Networks[name])
	}
	return result, nil
}
