package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Execution settings
	Debug          bool
	NonInteractive bool
	AutoConfirm    bool // Skip confirmation prompts before funded transactions
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Resolved configurations
	Multichain *MultichainConfig
	ConfigFile string // Path of the loaded multichain.toml, empty when defaults were used
}
