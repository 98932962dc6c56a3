package render

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// DeployRenderer renders deploy results and bridge execution status
type DeployRenderer struct {
	out   io.Writer
	names map[uint8]string
}

// NewDeployRenderer creates a renderer that labels domains with their
// registry names
func NewDeployRenderer(out io.Writer, domains []domain.Domain) *DeployRenderer {
	return &DeployRenderer{
		out: out,
		names: lo.SliceToMap(domains, func(d domain.Domain) (uint8, string) {
			return d.ID, d.Name
		}),
	}
}

func (r *DeployRenderer) domainName(id uint8) string {
	if name, ok := r.names[id]; ok {
		return name
	}
	return fmt.Sprintf("domain %d", id)
}

// RenderDeploy renders the submitted transaction, the fee vector and the
// address every destination will receive
func (r *DeployRenderer) RenderDeploy(result *domain.DeployResult) error {
	total := usecase.SumFees(result.Fees)
	if result.DryRun {
		printSection(r.out, "🔎 Dry run")
	} else {
		fmt.Fprintln(r.out, FormatSuccess("Deployment submitted"))
		fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Transaction:"), hashStyle.Sprint(result.TransactionHash.Hex()))
	}
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Salt:"), result.Salt.Hex())
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprint("Fortified salt:"), result.FortifiedSalt.Hex())
	fmt.Fprintf(r.out, "  %s %s ETH\n", labelStyle.Sprint("Total fee:"), FormatEther(total))
	fmt.Fprintln(r.out)

	t := newTable(r.out, table.Row{"Network", "Domain", "Fee (ETH)", "Address"})
	for i, id := range result.DomainIDs {
		var fee *big.Int
		if i < len(result.Fees) {
			fee = result.Fees[i]
		}
		addr := result.PredictedAddresses[id]
		t.AppendRow(table.Row{networkStyle.Sprint(r.domainName(id)), id, FormatEther(fee), addressStyle.Sprint(addr.Hex())})
	}
	t.Render()

	if !result.DryRun && len(result.DomainIDs) > 1 {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Track remote executions with: treb-multichain status %s\n", result.TransactionHash.Hex())
	}
	return nil
}

// RenderStatus renders the resolved deployments of a transaction, followed by
// one line per failed or unresolved domain
func (r *DeployRenderer) RenderStatus(txHash common.Hash, infos []domain.DeploymentInfo, statusErr error) error {
	printSection(r.out, fmt.Sprintf("📦 Deployment %s", txHash.Hex()))

	sorted := append([]domain.DeploymentInfo(nil), infos...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DomainID < sorted[j].DomainID })

	if len(sorted) > 0 {
		t := newTable(r.out, table.Row{"", "Network", "Domain", "Address", "Transaction"})
		for _, info := range sorted {
			t.AppendRow(table.Row{
				okStyle.Sprint("✓"),
				networkStyle.Sprint(info.Network),
				info.DomainID,
				addressStyle.Sprint(info.ContractAddress.Hex()),
				hashStyle.Sprint(info.TransactionHash.Hex()),
			})
		}
		t.Render()
	}

	for _, err := range unwrapJoined(statusErr) {
		var failed *domain.TransferFailedError
		switch {
		case errors.As(err, &failed):
			line := fmt.Sprintf("  %s %s (domain %d) failed", failStyle.Sprint("✗"), failed.Network, failed.DomainID)
			if failed.ExplorerURL != "" {
				line += " " + labelStyle.Sprint(failed.ExplorerURL)
			}
			fmt.Fprintln(r.out, line)
		default:
			fmt.Fprintf(r.out, "  %s %v\n", pendingStyle.Sprint("…"), err)
		}
	}

	if statusErr == nil {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed on %d network(s)", len(sorted))))
	}
	return nil
}

// unwrapJoined flattens an errors.Join tree one level deep
func unwrapJoined(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
