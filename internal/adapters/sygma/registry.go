package sygma

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// sharedConfig is the subset of the shared configuration document we read
type sharedConfig struct {
	Domains []struct {
		ID      uint8  `json:"id"`
		ChainID uint64 `json:"chainId"`
		Name    string `json:"name"`
		Type    string `json:"type"`
	} `json:"domains"`
}

// Registry loads bridge domains from the shared configuration
type Registry struct {
	client *Client

	mu    sync.Mutex
	cache map[domain.Environment][]domain.Domain
}

var _ usecase.DomainRegistry = (*Registry)(nil)

// NewRegistry creates a new shared configuration backed registry
func NewRegistry(client *Client) *Registry {
	return &Registry{
		client: client,
		cache:  make(map[domain.Environment][]domain.Domain),
	}
}

// Domains returns the EVM domains of env. Results are cached per
// environment for the life of the process.
func (r *Registry) Domains(ctx context.Context, env domain.Environment) ([]domain.Domain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[env]; ok {
		return cached, nil
	}

	eps, err := r.client.endpoints(env)
	if err != nil {
		return nil, err
	}
	var doc sharedConfig
	if err := r.client.getJSON(ctx, eps.SharedConfig, &doc); err != nil {
		return nil, fmt.Errorf("failed to load shared config: %w", err)
	}

	domains := make([]domain.Domain, 0, len(doc.Domains))
	for _, d := range doc.Domains {
		kind := domain.DomainType(strings.ToLower(d.Type))
		if kind != domain.DomainTypeEVM {
			r.client.log.Debug("skipping non EVM domain", "domain", d.ID, "name", d.Name, "type", d.Type)
			continue
		}
		domains = append(domains, domain.Domain{
			ID:      d.ID,
			ChainID: d.ChainID,
			Name:    d.Name,
			Type:    kind,
		})
	}
	if len(domains) == 0 {
		return nil, fmt.Errorf("shared config for %s lists no EVM domains", env)
	}
	r.cache[env] = domains
	return domains, nil
}
