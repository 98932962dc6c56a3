package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// NetworksRenderer renders bridge domains and configured networks
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the domain table followed by the configured
// networks and whether the bridge routes them
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	title := cases.Title(language.English)

	printSection(r.out, fmt.Sprintf("🌉 %s domains", title.String(string(result.Environment))))
	if len(result.Domains) == 0 {
		fmt.Fprintln(r.out, "  No domains registered")
	} else {
		t := newTable(r.out, table.Row{"Domain", "Name", "Chain ID", "Type"})
		for _, d := range result.Domains {
			t.AppendRow(table.Row{d.ID, networkStyle.Sprint(d.Name), d.ChainID, title.String(string(d.Type))})
		}
		t.Render()
	}
	fmt.Fprintln(r.out)

	printSection(r.out, "🌐 Configured networks")
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "  No networks configured in multichain.toml [networks]")
		return nil
	}
	for _, network := range result.Networks {
		var tags []string
		if network.Origin {
			tags = append(tags, "origin")
		}
		if network.Deployment {
			tags = append(tags, "deploy")
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " " + labelStyle.Sprintf("[%s]", strings.Join(tags, ", "))
		}

		switch {
		case network.Error != nil:
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v%s\n", network.Name, network.Error, suffix)
		case !network.Routed:
			fmt.Fprintf(r.out, "  ⚠️  %s - Chain ID: %d, %s%s\n", network.Name, network.ChainID, pendingStyle.Sprint("not routed"), suffix)
		default:
			fmt.Fprintf(r.out, "  ✅ %s - Chain ID: %d, Domain: %d%s\n", network.Name, network.ChainID, network.DomainID, suffix)
		}
	}
	return nil
}
