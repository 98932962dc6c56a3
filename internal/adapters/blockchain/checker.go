package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

const rpcTimeout = 5 * time.Second

// Checker resolves network chain ids over RPC
type Checker struct {
	log *slog.Logger

	mu    sync.Mutex
	cache map[string]uint64
}

var _ usecase.ChainIDResolver = (*Checker)(nil)

// NewChecker creates a new RPC chain id resolver
func NewChecker(log *slog.Logger) *Checker {
	return &Checker{
		log:   log.With("component", "rpc"),
		cache: make(map[string]uint64),
	}
}

// ChainID returns the configured chain id of network, or asks its RPC
// endpoint when none is configured. A configured id is verified against
// the endpoint only when it has to be dialed anyway.
func (c *Checker) ChainID(ctx context.Context, network *config.Network) (uint64, error) {
	if network.ChainID != 0 {
		return network.ChainID, nil
	}
	if network.RPCURL == "" {
		return 0, fmt.Errorf("network %s has neither chain_id nor rpc_url", network.Name)
	}

	c.mu.Lock()
	cached, ok := c.cache[network.RPCURL]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	c.log.Debug("resolved chain id", "network", network.Name, "chain_id", id)

	c.mu.Lock()
	c.cache[network.RPCURL] = id.Uint64()
	c.mu.Unlock()
	return id.Uint64(), nil
}
