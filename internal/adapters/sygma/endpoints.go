package sygma

import (
	"fmt"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
)

// Endpoints are the bridge service URLs of one environment
type Endpoints struct {
	SharedConfig string
	Indexer      string
	Explorer     string
}

// DefaultEndpoints contains the public services of each hosted environment
var DefaultEndpoints = map[domain.Environment]Endpoints{
	domain.EnvironmentMainnet: {
		SharedConfig: "https://sygma-assets-mainnet.s3.us-east-2.amazonaws.com/shared-config-mainnet.json",
		Indexer:      "https://api.buildwithsygma.com",
		Explorer:     "https://scan.buildwithsygma.com",
	},
	domain.EnvironmentTestnet: {
		SharedConfig: "https://chainbridge-assets-stage.s3.us-east-2.amazonaws.com/shared-config-test.json",
		Indexer:      "https://api.test.buildwithsygma.com",
		Explorer:     "https://scan.test.buildwithsygma.com",
	},
	domain.EnvironmentDevnet: {
		SharedConfig: "https://chainbridge-assets-stage.s3.us-east-2.amazonaws.com/shared-config-dev.json",
		Indexer:      "https://api.dev.buildwithsygma.com",
		Explorer:     "https://scan.dev.buildwithsygma.com",
	},
}

// ResolveEndpoints merges configured overrides over the defaults of env
func ResolveEndpoints(env domain.Environment, overrides config.Endpoints) (Endpoints, error) {
	eps, ok := DefaultEndpoints[env]
	if !ok && overrides == (config.Endpoints{}) {
		return Endpoints{}, fmt.Errorf("no bridge services for the %s environment", env)
	}
	if overrides.SharedConfig != "" {
		eps.SharedConfig = overrides.SharedConfig
	}
	if overrides.Indexer != "" {
		eps.Indexer = overrides.Indexer
	}
	if overrides.Explorer != "" {
		eps.Explorer = overrides.Explorer
	}
	return eps, nil
}
