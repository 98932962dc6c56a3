package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// PredictRenderer renders predicted deployment addresses
type PredictRenderer struct {
	out io.Writer
}

// NewPredictRenderer creates a new predict renderer
func NewPredictRenderer(out io.Writer) *PredictRenderer {
	return &PredictRenderer{out: out}
}

// RenderPrediction renders one row per network
func (r *PredictRenderer) RenderPrediction(result *usecase.PredictAddressResult) error {
	printSection(r.out, "🔮 Predicted addresses")
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Adapter:"), result.Adapter.Hex())
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Factory:"), result.Factory.Hex())
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Fortified salt:"), result.FortifiedSalt.Hex())
	fmt.Fprintln(r.out)

	t := newTable(r.out, table.Row{"Network", "Domain", "Chain ID", "Address"})
	for _, p := range result.Addresses {
		t.AppendRow(table.Row{networkStyle.Sprint(p.Network), p.DomainID, p.ChainID, addressStyle.Sprint(p.Address.Hex())})
	}
	t.Render()
	return nil
}
