// Package local runs a multichain deployment against in-process chains. It
// backs the "local" environment: every mock domain gets its own ledger with
// the factory, bridge and deploy adapter installed, and deposits are
// relayed as soon as the funded transaction succeeds.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/trebuchet-org/treb-multichain/internal/crosschain"
	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// MockDomains are the domains of the local environment
var MockDomains = []domain.Domain{
	{ID: 1, ChainID: 5, Name: "goerli", Type: domain.DomainTypeEVM},
	{ID: 2, ChainID: 11155111, Name: "sepolia", Type: domain.DomainTypeEVM},
	{ID: 6, ChainID: 17000, Name: "holesky", Type: domain.DomainTypeEVM},
	{ID: 7, ChainID: 80001, Name: "mumbai", Type: domain.DomainTypeEVM},
}

// DevSender signs for the local environment when no key is configured
var DevSender = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

var relayer = common.BytesToAddress(crypto.Keccak256([]byte("relayer"))[12:])

// Devnet is a set of in-process chains joined by a relaying bridge
type Devnet struct {
	layout  crosschain.Layout
	domains []domain.Domain
	chains  map[uint8]*crosschain.Chain
	origin  *crosschain.Chain
	sender  common.Address
	log     *slog.Logger

	mu        sync.Mutex
	transfers map[common.Hash]map[uint8]*domain.Transfer
	receipts  map[common.Hash]*domain.DeployReceipt
}

var (
	_ usecase.DomainRegistry         = (*Devnet)(nil)
	_ usecase.ChainIDResolver        = (*NetworkResolver)(nil)
	_ usecase.AdapterGateway         = (*Devnet)(nil)
	_ usecase.TransferStatusProvider = (*Devnet)(nil)
)

// NewDevnet creates the chains of MockDomains. The origin is the domain
// named like the configured network, else the first one.
func NewDevnet(cfg *config.RuntimeConfig, log *slog.Logger) (*Devnet, error) {
	layout := crosschain.DefaultLayout()
	if cfg.Multichain.AdapterAddress != (common.Address{}) {
		layout.Adapter = cfg.Multichain.AdapterAddress
	}

	d := &Devnet{
		layout:    layout,
		domains:   MockDomains,
		chains:    make(map[uint8]*crosschain.Chain, len(MockDomains)),
		sender:    DevSender,
		log:       log.With("component", "devnet"),
		transfers: make(map[common.Hash]map[uint8]*domain.Transfer),
		receipts:  make(map[common.Hash]*domain.DeployReceipt),
	}
	for _, dom := range d.domains {
		d.chains[dom.ID] = crosschain.NewChain(dom.ID, new(big.Int).SetUint64(dom.ChainID), layout)
	}

	d.origin = d.chains[d.domains[0].ID]
	for _, dom := range d.domains {
		if strings.EqualFold(dom.Name, cfg.Multichain.Network) {
			d.origin = d.chains[dom.ID]
		}
		if n, ok := cfg.Multichain.Networks[cfg.Multichain.Network]; ok && n.ChainID != 0 && n.ChainID == dom.ChainID {
			d.origin = d.chains[dom.ID]
		}
	}

	if key := strings.TrimPrefix(strings.TrimSpace(cfg.Multichain.Sender.PrivateKey), "0x"); key != "" {
		pk, err := crypto.HexToECDSA(key)
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
		d.sender = crypto.PubkeyToAddress(pk.PublicKey)
	}
	return d, nil
}

// Chain returns the chain of a domain
func (d *Devnet) Chain(domainID uint8) (*crosschain.Chain, bool) {
	c, ok := d.chains[domainID]
	return c, ok
}

// Domains returns the mock domains
func (d *Devnet) Domains(_ context.Context, _ domain.Environment) ([]domain.Domain, error) {
	return d.domains, nil
}

// NetworkResolver resolves configured networks without RPC access
type NetworkResolver struct {
	domains []domain.Domain
}

// Resolver returns the chain id resolver of the devnet
func (d *Devnet) Resolver() *NetworkResolver {
	return &NetworkResolver{domains: d.domains}
}

// ChainID resolves a network by configured id or by mock domain name
func (r *NetworkResolver) ChainID(_ context.Context, network *config.Network) (uint64, error) {
	if network.ChainID != 0 {
		return network.ChainID, nil
	}
	for _, dom := range r.domains {
		if strings.EqualFold(dom.Name, network.Name) {
			return dom.ChainID, nil
		}
	}
	return 0, fmt.Errorf("network %s: %w", network.Name, domain.ErrUnknownNetwork)
}

// ChainID returns the chain id of the origin chain
func (d *Devnet) ChainID(context.Context) (uint64, error) {
	return d.origin.Ledger.ChainID().Uint64(), nil
}

// Sender returns the local signer
func (d *Devnet) Sender() common.Address {
	return d.sender
}

// AdapterInfo describes the adapter installed on the origin chain
func (d *Devnet) AdapterInfo(_ context.Context, addr common.Address) (*domain.AdapterInfo, error) {
	if addr != d.layout.Adapter {
		return nil, fmt.Errorf("deploy adapter %s: %w", addr.Hex(), domain.ErrNotFound)
	}
	a := d.origin.Adapter
	return &domain.AdapterInfo{
		Address:    a.Address(),
		Factory:    a.Factory(),
		Bridge:     a.Bridge(),
		ResourceID: a.ResourceID(),
		DomainID:   a.DomainID(),
	}, nil
}

// EstimateDeployGas charges intrinsic creation gas plus calldata
func (d *Devnet) EstimateDeployGas(_ context.Context, code []byte) (uint64, error) {
	return params.TxGasContractCreation + uint64(len(code))*params.TxDataNonZeroGasEIP2028, nil
}

// CalculateDeployFee quotes fees on the origin chain
func (d *Devnet) CalculateDeployFee(_ context.Context, req *domain.DeployRequest) ([]*big.Int, error) {
	p, err := deployParams(req, nil)
	if err != nil {
		return nil, err
	}
	fees, err := d.origin.CalculateDeployFee(d.sender, p)
	if err != nil {
		return nil, err
	}
	out := make([]*big.Int, len(fees))
	for i, fee := range fees {
		out[i] = fee.ToBig()
	}
	return out, nil
}

// Deploy executes the funded transaction on the origin chain and relays
// every deposit it made
func (d *Devnet) Deploy(_ context.Context, req *domain.DeployRequest, fees []*big.Int, opts domain.TxOptions) (*domain.DeployReceipt, error) {
	p, err := deployParams(req, fees)
	if err != nil {
		return nil, err
	}
	value := new(uint256.Int)
	if opts.Value != nil {
		if overflow := value.SetFromBig(opts.Value); overflow {
			return nil, fmt.Errorf("value %s overflows uint256", opts.Value)
		}
	}

	receipt, err := d.origin.Deploy(d.sender, value, p)
	if err != nil {
		return nil, err
	}
	d.log.Info("local deploy executed", "tx", receipt.TxHash.Hex(), "origin", d.origin.DomainID)

	out := &domain.DeployReceipt{TransactionHash: receipt.TxHash, Events: adapterEvents(receipt, d.layout.Adapter)}
	d.mu.Lock()
	d.receipts[receipt.TxHash] = out
	d.mu.Unlock()
	d.relay(receipt)
	return out, nil
}

// DeployReceipt returns a deploy transaction executed by this devnet
func (d *Devnet) DeployReceipt(_ context.Context, txHash common.Hash, adapter common.Address) (*domain.DeployReceipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	receipt, ok := d.receipts[txHash]
	if !ok || adapter != d.layout.Adapter {
		return nil, fmt.Errorf("deploy receipt %s: %w", txHash.Hex(), domain.ErrNotFound)
	}
	copied := *receipt
	return &copied, nil
}

func (d *Devnet) relay(receipt *crosschain.Receipt) {
	d.mu.Lock()
	defer d.mu.Unlock()

	transfers := make(map[uint8]*domain.Transfer)
	d.transfers[receipt.TxHash] = transfers
	for destination, proposals := range d.origin.ProposalsFrom(receipt) {
		transfer := &domain.Transfer{
			Status:        domain.TransferExecuted,
			FromDomainID:  d.origin.DomainID,
			ToDomainID:    destination,
			DepositTxHash: receipt.TxHash,
		}
		transfers[destination] = transfer

		chain, ok := d.chains[destination]
		if !ok {
			transfer.Status = domain.TransferFailed
			continue
		}
		for _, proposal := range proposals {
			executed, err := chain.ExecuteProposal(relayer, proposal)
			if err != nil {
				d.log.Warn("proposal rejected", "destination", destination, "nonce", proposal.DepositNonce, "error", err)
				transfer.Status = domain.TransferFailed
				continue
			}
			transfer.ExecutionTxHash = executed.TxHash
			for _, log := range executed.Logs {
				if failed, ok := log.Event.(crosschain.FailedHandlerExecution); ok {
					d.log.Warn("remote deployment failed", "destination", destination, "reason", failed.Reason)
					transfer.Status = domain.TransferFailed
				}
			}
		}
	}
}

// TransferStatus returns the relayed outcome of a deposit
func (d *Devnet) TransferStatus(_ context.Context, _ domain.Environment, txHash common.Hash, domainID uint8) (*domain.Transfer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	transfer, ok := d.transfers[txHash][domainID]
	if !ok {
		return nil, fmt.Errorf("transfer %s to domain %d: %w", txHash.Hex(), domainID, domain.ErrNotFound)
	}
	copied := *transfer
	return &copied, nil
}

// ExplorerURL is empty, there is no explorer for local chains
func (d *Devnet) ExplorerURL(domain.Environment, common.Hash) string {
	return ""
}

func deployParams(req *domain.DeployRequest, fees []*big.Int) (crosschain.DeployParams, error) {
	gasLimit := new(uint256.Int)
	if req.GasLimit != nil {
		if overflow := gasLimit.SetFromBig(req.GasLimit); overflow {
			return crosschain.DeployParams{}, fmt.Errorf("gas limit overflows uint256")
		}
	}
	p := crosschain.DeployParams{
		InitCode:             req.InitCode,
		GasLimit:             gasLimit,
		Salt:                 req.Salt,
		IsUniquePerChain:     req.IsUniquePerChain,
		ConstructorArgs:      req.ConstructorArgs,
		InitDatas:            req.InitDatas,
		DestinationDomainIDs: req.DomainIDs,
	}
	for _, fee := range fees {
		v := new(uint256.Int)
		if fee != nil {
			if overflow := v.SetFromBig(fee); overflow {
				return p, fmt.Errorf("fee %s overflows uint256", fee)
			}
		}
		p.Fees = append(p.Fees, v)
	}
	return p, nil
}

func adapterEvents(receipt *crosschain.Receipt, adapter common.Address) []domain.AdapterEvent {
	var out []domain.AdapterEvent
	for _, log := range receipt.Logs {
		if log.Address != adapter {
			continue
		}
		switch ev := log.Event.(type) {
		case crosschain.DeployRequested:
			out = append(out, domain.AdapterEvent{
				Type:          domain.EventDeployRequested,
				Sender:        ev.Sender,
				FortifiedSalt: ev.FortifiedSalt,
				DomainID:      ev.DestinationDomainID,
			})
		case crosschain.Deployed:
			out = append(out, domain.AdapterEvent{
				Type:          domain.EventDeployed,
				FortifiedSalt: ev.FortifiedSalt,
				NewContract:   ev.NewContract,
			})
		}
	}
	return out
}
