package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// DeploymentsRenderer renders the deployment journal
type DeploymentsRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, color bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out, color: color}
}

// RenderDeploymentList renders journaled deployments, newest first
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	t := newTable(r.out, table.Row{"Created", "Contract", "Env", "Networks", "Address", "Transaction"})
	for _, rec := range result.Deployments {
		t.AppendRow(table.Row{
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.contractName(rec),
			string(rec.Environment),
			strings.Join(rec.Networks, ", "),
			r.addressCell(rec),
			hashStyle.Sprint(shortHash(rec.TransactionHash.Hex())),
		})
	}
	t.Render()

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total deployments: %d\n", result.Summary.Total)
	if len(result.Summary.ByEnvironment) > 1 {
		envs := lo.Keys(result.Summary.ByEnvironment)
		sort.Slice(envs, func(i, j int) bool { return envs[i] < envs[j] })
		for _, env := range envs {
			fmt.Fprintf(r.out, "  %s: %d\n", env, result.Summary.ByEnvironment[env])
		}
	}
	return nil
}

func (r *DeploymentsRenderer) contractName(rec *domain.DeploymentRecord) string {
	name := rec.Contract
	if name == "" {
		name = "<bytecode>"
	}
	if !r.color {
		return name
	}
	return networkStyle.Sprint(name)
}

// addressCell shows the shared address, or marks per-chain addresses
func (r *DeploymentsRenderer) addressCell(rec *domain.DeploymentRecord) string {
	addrs := lo.Uniq(lo.Values(rec.PredictedAddresses))
	switch len(addrs) {
	case 0:
		return "-"
	case 1:
		return addrs[0].Hex()
	default:
		return fmt.Sprintf("%d addresses (unique per chain)", len(addrs))
	}
}

func shortHash(h string) string {
	if len(h) <= 14 {
		return h
	}
	return h[:10] + "…" + h[len(h)-4:]
}
