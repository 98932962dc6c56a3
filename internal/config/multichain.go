package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
)

// ConfigFileName is the project configuration file.
const ConfigFileName = "multichain.toml"

// MultichainTOML represents the raw multichain.toml structure
type MultichainTOML struct {
	Environment        string                 `toml:"environment"`
	Network            string                 `toml:"network"`
	DeploymentNetworks []string               `toml:"deployment_networks"`
	AdapterAddress     string                 `toml:"adapter_address"`
	GasLimit           uint64                 `toml:"gas_limit"`
	PollInterval       string                 `toml:"poll_interval"`
	ArtifactsDir       string                 `toml:"artifacts_dir"`
	Networks           map[string]NetworkTOML `toml:"networks"`
	Sender             SenderTOML             `toml:"sender"`
	Endpoints          EndpointsTOML          `toml:"endpoints"`
}

type NetworkTOML struct {
	RPCURL  string `toml:"rpc_url"`
	ChainID uint64 `toml:"chain_id"`
}

type SenderTOML struct {
	PrivateKey string `toml:"private_key"`
}

type EndpointsTOML struct {
	SharedConfig string `toml:"shared_config"`
	Indexer      string `toml:"indexer"`
	Explorer     string `toml:"explorer"`
}

// LoadMultichainConfig reads .env files and multichain.toml from
// projectRoot. A missing config file yields the defaults.
func LoadMultichainConfig(projectRoot string) (*config.MultichainConfig, string, error) {
	loadEnvFiles(projectRoot)

	path := filepath.Join(projectRoot, ConfigFileName)
	var raw MultichainTOML
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
		}
		path = ""
	}

	cfg, err := fromTOML(&raw)
	if err != nil {
		return nil, "", fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	return cfg, path, nil
}

func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

func fromTOML(raw *MultichainTOML) (*config.MultichainConfig, error) {
	cfg := &config.MultichainConfig{
		Environment:        domain.EnvironmentTestnet,
		Network:            raw.Network,
		DeploymentNetworks: raw.DeploymentNetworks,
		AdapterAddress:     config.DefaultAdapterAddress,
		GasLimit:           config.DefaultGasLimit,
		PollInterval:       config.DefaultPollInterval,
		ArtifactsDir:       raw.ArtifactsDir,
		Networks:           make(map[string]*config.Network),
		Sender: config.SenderConfig{
			PrivateKey: os.ExpandEnv(raw.Sender.PrivateKey),
		},
		Endpoints: config.Endpoints{
			SharedConfig: os.ExpandEnv(raw.Endpoints.SharedConfig),
			Indexer:      os.ExpandEnv(raw.Endpoints.Indexer),
			Explorer:     os.ExpandEnv(raw.Endpoints.Explorer),
		},
	}

	if raw.Environment != "" {
		env, err := domain.ParseEnvironment(raw.Environment)
		if err != nil {
			return nil, err
		}
		cfg.Environment = env
	}
	if raw.AdapterAddress != "" {
		addr, err := parseAddress(raw.AdapterAddress)
		if err != nil {
			return nil, err
		}
		cfg.AdapterAddress = addr
	}
	if raw.GasLimit != 0 {
		cfg.GasLimit = raw.GasLimit
	}
	if raw.PollInterval != "" {
		d, err := time.ParseDuration(raw.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}

	for name, n := range raw.Networks {
		cfg.Networks[name] = &config.Network{
			Name:    name,
			ChainID: n.ChainID,
			RPCURL:  os.ExpandEnv(n.RPCURL),
		}
	}
	return cfg, nil
}

// applyOverrides lets flags and MULTICHAIN_* variables win over the file.
func applyOverrides(cfg *config.MultichainConfig, v *viper.Viper) error {
	if s := v.GetString("environment"); s != "" {
		env, err := domain.ParseEnvironment(s)
		if err != nil {
			return err
		}
		cfg.Environment = env
	}
	if s := v.GetString("network"); s != "" {
		cfg.Network = s
	}
	if s := v.GetString("adapter"); s != "" {
		addr, err := parseAddress(s)
		if err != nil {
			return err
		}
		cfg.AdapterAddress = addr
	}
	if d := v.GetDuration("poll_interval"); d > 0 {
		cfg.PollInterval = d
	}
	if s := v.GetString("private_key"); s != "" {
		cfg.Sender.PrivateKey = s
	}
	if s := v.GetString("deployment_networks"); s != "" {
		cfg.DeploymentNetworks = splitList(s)
	}
	return nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
