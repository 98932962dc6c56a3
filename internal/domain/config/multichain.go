package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
)

// DefaultAdapterAddress is where the deploy adapter lives on every
// supported chain.
var DefaultAdapterAddress = common.HexToAddress("0x85d62ad850b322152bf4ad9147bfbf097da42217")

const (
	DefaultPollInterval = 2 * time.Second
	DefaultGasLimit     = 2_000_000
)

// MultichainConfig is the resolved multichain.toml plus flag overrides.
type MultichainConfig struct {
	Environment        domain.Environment
	Network            string // origin network the funded transaction is sent on
	DeploymentNetworks []string
	AdapterAddress     common.Address
	GasLimit           uint64
	PollInterval       time.Duration
	ArtifactsDir       string

	Networks  map[string]*Network
	Sender    SenderConfig
	Endpoints Endpoints
}

// Network is an RPC reachable chain.
type Network struct {
	Name    string
	ChainID uint64 // zero until resolved over RPC
	RPCURL  string
}

// SenderConfig holds the key that signs the funded transaction.
type SenderConfig struct {
	PrivateKey string
}

// Endpoints override the bridge service URLs of the environment.
type Endpoints struct {
	SharedConfig string
	Indexer      string
	Explorer     string
}

// OriginNetwork returns the network the deploy transaction is sent on.
func (c *MultichainConfig) OriginNetwork() (*Network, error) {
	if c.Network == "" {
		return nil, fmt.Errorf("no origin network configured, set --network or network in multichain.toml")
	}
	n, ok := c.Networks[c.Network]
	if !ok {
		return nil, fmt.Errorf("network %s: %w", c.Network, domain.ErrNotFound)
	}
	return n, nil
}

// NetworkNames returns the configured network names sorted.
func (c *MultichainConfig) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every deployment network has a network entry.
func (c *MultichainConfig) Validate() error {
	var missing []string
	for _, name := range c.DeploymentNetworks {
		if _, ok := c.Networks[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingNetworksError{Networks: missing}
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	return nil
}
