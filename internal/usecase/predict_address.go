package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// PredictAddressParams describes a deployment to predict without sending it.
type PredictAddressParams struct {
	Sender           common.Address
	Salt             fortify.Salt
	IsUniquePerChain bool
	// Networks defaults to the configured deployment networks
	Networks []string
	// Adapter and Factory default to the configured adapter and its factory
	Adapter *common.Address
	Factory *common.Address
}

// PredictedAddress is the address of one network.
type PredictedAddress struct {
	Network  string
	DomainID uint8
	ChainID  uint64
	Address  common.Address
}

// PredictAddressResult lists the predicted addresses.
type PredictAddressResult struct {
	FortifiedSalt fortify.Salt
	Adapter       common.Address
	Factory       common.Address
	Addresses     []PredictedAddress
}

// PredictAddress computes where a deployment would land on each network.
type PredictAddress struct {
	config   *config.RuntimeConfig
	registry DomainRegistry
	gateway  AdapterGateway
}

// NewPredictAddress creates a new PredictAddress use case
func NewPredictAddress(cfg *config.RuntimeConfig, registry DomainRegistry, gateway AdapterGateway) *PredictAddress {
	return &PredictAddress{config: cfg, registry: registry, gateway: gateway}
}

// Run executes the use case
func (uc *PredictAddress) Run(ctx context.Context, params PredictAddressParams) (*PredictAddressResult, error) {
	mc := uc.config.Multichain

	adapter := mc.AdapterAddress
	if params.Adapter != nil {
		adapter = *params.Adapter
	}
	var factory common.Address
	if params.Factory != nil {
		factory = *params.Factory
	} else {
		info, err := uc.gateway.AdapterInfo(ctx, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to read adapter %s: %w", adapter.Hex(), err)
		}
		factory = info.Factory
	}

	sender := params.Sender
	if sender == (common.Address{}) {
		sender = uc.gateway.Sender()
	}

	networks := params.Networks
	if len(networks) == 0 {
		networks = mc.DeploymentNetworks
	}

	domains, err := uc.registry.Domains(ctx, mc.Environment)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]domain.Domain, len(domains))
	for _, d := range domains {
		byName[d.Name] = d
	}

	result := &PredictAddressResult{
		FortifiedSalt: fortify.Fortify(adapter, sender, params.Salt, params.IsUniquePerChain),
		Adapter:       adapter,
		Factory:       factory,
	}
	var unknown []string
	for _, name := range networks {
		d, ok := byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		_, addr, err := fortify.Predict(factory, adapter, sender, params.Salt, params.IsUniquePerChain, new(big.Int).SetUint64(d.ChainID))
		if err != nil {
			return nil, err
		}
		result.Addresses = append(result.Addresses, PredictedAddress{
			Network:  d.Name,
			DomainID: d.ID,
			ChainID:  d.ChainID,
			Address:  addr,
		})
	}
	if len(unknown) > 0 {
		return nil, &domain.UnknownNetworksError{Networks: unknown}
	}
	return result, nil
}
