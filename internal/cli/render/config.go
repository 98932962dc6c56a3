package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// ConfigRenderer renders configuration-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{out: out}
}

// RenderConfig renders the resolved configuration
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintln(r.out, "No multichain.toml found, using defaults")
	} else {
		fmt.Fprintf(r.out, "📁 config: %s\n", getRelativePath(result.ConfigPath))
	}
	fmt.Fprintln(r.out)

	printSection(r.out, "Current config:")
	row := func(label, value string) {
		if value == "" {
			value = color.New(color.Faint).Sprint("(not set)")
		}
		fmt.Fprintf(r.out, "  %-20s %s\n", label, value)
	}
	row("Environment", result.Environment)
	row("Network", result.Network)
	row("Deployment networks", strings.Join(result.DeploymentNetworks, ", "))
	row("Adapter", result.AdapterAddress.Hex())
	row("Gas limit", fmt.Sprintf("%d", result.GasLimit))
	row("Poll interval", result.PollInterval)
	row("Timeout", result.Timeout)
	row("Artifacts", result.ArtifactsDir)
	if result.HasSigner {
		row("Sender", result.Sender.Hex())
	} else {
		row("Sender", "")
	}

	if len(result.Networks) > 0 {
		fmt.Fprintln(r.out)
		printSection(r.out, "Networks:")
		for _, n := range result.Networks {
			chain := "chain id from rpc"
			if n.ChainID != 0 {
				chain = fmt.Sprintf("chain %d", n.ChainID)
			}
			fmt.Fprintf(r.out, "  %-20s %s %s\n", n.Name, chain, labelStyle.Sprint(n.RPCURL))
		}
	}

	if result.Endpoints.SharedConfig != "" || result.Endpoints.Indexer != "" || result.Endpoints.Explorer != "" {
		fmt.Fprintln(r.out)
		printSection(r.out, "Endpoints:")
		row("Shared config", result.Endpoints.SharedConfig)
		row("Indexer", result.Endpoints.Indexer)
		row("Explorer", result.Endpoints.Explorer)
	}
	return nil
}
