package render

import (
	"errors"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// DeployOutput is the --json shape of a deploy result
type DeployOutput struct {
	TransactionHash string             `json:"transactionHash,omitempty"`
	DryRun          bool               `json:"dryRun,omitempty"`
	Salt            string             `json:"salt"`
	FortifiedSalt   string             `json:"fortifiedSalt"`
	TotalFee        string             `json:"totalFee"`
	Domains         []DeployDomainJSON `json:"domains"`
	Status          *StatusOutput      `json:"status,omitempty"`
}

// DeployDomainJSON is one destination of a deploy result
type DeployDomainJSON struct {
	DomainID uint8  `json:"domainId"`
	Network  string `json:"network,omitempty"`
	Fee      string `json:"fee"`
	Address  string `json:"address"`
}

// StatusOutput is the --json shape of a status query
type StatusOutput struct {
	TransactionHash string           `json:"transactionHash"`
	Deployments     []DeploymentJSON `json:"deployments"`
	Errors          []string         `json:"errors,omitempty"`
}

// DeploymentJSON is one resolved deployment
type DeploymentJSON struct {
	Network         string `json:"network"`
	DomainID        uint8  `json:"domainId"`
	ContractAddress string `json:"contractAddress"`
	TransactionHash string `json:"transactionHash"`
	ExplorerURL     string `json:"explorerUrl,omitempty"`
}

// NewDeployOutput converts a deploy result for JSON output
func NewDeployOutput(result *domain.DeployResult, domains []domain.Domain) DeployOutput {
	names := make(map[uint8]string, len(domains))
	for _, d := range domains {
		names[d.ID] = d.Name
	}
	out := DeployOutput{
		DryRun:        result.DryRun,
		Salt:          result.Salt.Hex(),
		FortifiedSalt: result.FortifiedSalt.Hex(),
		TotalFee:      usecase.SumFees(result.Fees).String(),
	}
	if result.TransactionHash != (common.Hash{}) {
		out.TransactionHash = result.TransactionHash.Hex()
	}
	for i, id := range result.DomainIDs {
		fee := "0"
		if i < len(result.Fees) && result.Fees[i] != nil {
			fee = result.Fees[i].String()
		}
		out.Domains = append(out.Domains, DeployDomainJSON{
			DomainID: id,
			Network:  names[id],
			Fee:      fee,
			Address:  result.PredictedAddresses[id].Hex(),
		})
	}
	return out
}

// NewStatusOutput converts resolved deployments and the joined failures
func NewStatusOutput(txHash common.Hash, infos []domain.DeploymentInfo, statusErr error) StatusOutput {
	out := StatusOutput{TransactionHash: txHash.Hex(), Deployments: []DeploymentJSON{}}
	sorted := append([]domain.DeploymentInfo(nil), infos...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DomainID < sorted[j].DomainID })
	for _, info := range sorted {
		out.Deployments = append(out.Deployments, DeploymentJSON{
			Network:         info.Network,
			DomainID:        info.DomainID,
			ContractAddress: info.ContractAddress.Hex(),
			TransactionHash: info.TransactionHash.Hex(),
			ExplorerURL:     info.ExplorerURL,
		})
	}
	for _, err := range unwrapJoined(statusErr) {
		out.Errors = append(out.Errors, err.Error())
	}
	return out
}

// IsTransferFailure reports whether err carries a failed bridge transfer
func IsTransferFailure(err error) bool {
	return errors.Is(err, domain.ErrTransferFailed)
}

// NetworksOutput is the --json shape of the domains command
type NetworksOutput struct {
	Environment domain.Environment `json:"environment"`
	Domains     []domain.Domain    `json:"domains"`
	Networks    []NetworkJSON      `json:"networks"`
}

// NetworkJSON is one configured network
type NetworkJSON struct {
	Name       string `json:"name"`
	ChainID    uint64 `json:"chainId,omitempty"`
	DomainID   uint8  `json:"domainId,omitempty"`
	Routed     bool   `json:"routed"`
	Origin     bool   `json:"origin,omitempty"`
	Deployment bool   `json:"deployment,omitempty"`
	Error      string `json:"error,omitempty"`
}

// NewNetworksOutput converts a domains listing, flattening errors to text
func NewNetworksOutput(result *usecase.ListNetworksResult) NetworksOutput {
	out := NetworksOutput{Environment: result.Environment, Domains: result.Domains, Networks: []NetworkJSON{}}
	for _, n := range result.Networks {
		item := NetworkJSON{
			Name:       n.Name,
			ChainID:    n.ChainID,
			DomainID:   n.DomainID,
			Routed:     n.Routed,
			Origin:     n.Origin,
			Deployment: n.Deployment,
		}
		if n.Error != nil {
			item.Error = n.Error.Error()
		}
		out.Networks = append(out.Networks, item)
	}
	return out
}
