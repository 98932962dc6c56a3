package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
)

// ListNetworksResult contains the bridge domains of the environment and the
// status of every configured network
type ListNetworksResult struct {
	Environment domain.Environment
	Domains     []domain.Domain
	Networks    []NetworkStatus
}

// NetworkStatus represents the status of a configured network
type NetworkStatus struct {
	Name       string
	ChainID    uint64
	DomainID   uint8
	Routed     bool
	Origin     bool
	Deployment bool
	Error      error
}

// ListNetworks is a use case for listing bridge domains and configured networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	registry DomainRegistry
	chains   ChainIDResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, registry DomainRegistry, chains ChainIDResolver) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		registry: registry,
		chains:   chains,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	mc := uc.config.Multichain
	domains, err := uc.registry.Domains(ctx, mc.Environment)
	if err != nil {
		return nil, err
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i].ID < domains[j].ID })
	byChain := lo.KeyBy(domains, func(d domain.Domain) uint64 { return d.ChainID })
	deployment := lo.SliceToMap(mc.DeploymentNetworks, func(n string) (string, bool) { return n, true })

	networks := make([]NetworkStatus, 0, len(mc.Networks))
	for _, name := range mc.NetworkNames() {
		status := NetworkStatus{
			Name:       name,
			Origin:     name == mc.Network,
			Deployment: deployment[name],
		}
		chainID, err := uc.chains.ChainID(ctx, mc.Networks[name])
		if err != nil {
			status.Error = err
		} else {
			status.ChainID = chainID
			if d, ok := byChain[chainID]; ok {
				status.Routed = true
				status.DomainID = d.ID
			}
		}
		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Environment: mc.Environment,
		Domains:     domains,
		Networks:    networks,
	}, nil
}
