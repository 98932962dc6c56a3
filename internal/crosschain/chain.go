package crosschain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

// Layout fixes the addresses shared by every chain of a network. The
// adapter and factory must be identical everywhere for remote addresses
// to be predictable.
type Layout struct {
	Factory    common.Address
	Bridge     common.Address
	Handler    common.Address
	Adapter    common.Address
	ResourceID common.Hash
	FlatFee    *uint256.Int
}

// DefaultLayout uses the canonical CreateX and adapter addresses and a
// flat fee of 0.01 ether.
func DefaultLayout() Layout {
	return Layout{
		Factory:    common.HexToAddress("0xba5Ed099633D3B313e4D5F7bdc1305d3c28ba5Ed"),
		Bridge:     common.BytesToAddress(crypto.Keccak256([]byte("bridge"))[12:]),
		Handler:    common.BytesToAddress(crypto.Keccak256([]byte("permissionless-generic-handler"))[12:]),
		Adapter:    common.HexToAddress("0x85d62ad850b322152bf4ad9147bfbf097da42217"),
		ResourceID: common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000500"),
		FlatFee:    new(uint256.Int).Div(uint256.NewInt(params.Ether), uint256.NewInt(100)),
	}
}

// Chain bundles one ledger with its deployed contracts.
type Chain struct {
	DomainID uint8
	Ledger   *Ledger
	Factory  *CreateXFactory
	Bridge   *ReferenceBridge
	Handler  *GenericHandler
	Adapter  *DeployAdapter
}

// NewChain creates a ledger for domainID with the contracts of layout
// installed.
func NewChain(domainID uint8, chainID *big.Int, layout Layout) *Chain {
	ledger := NewLedger(chainID)
	factory := NewCreateXFactory(layout.Factory)
	bridge := NewReferenceBridge(layout.Bridge, domainID, NewBasicFeeHandler(layout.FlatFee))
	handler := NewGenericHandler(layout.Handler, layout.Bridge)
	bridge.RegisterHandler(layout.ResourceID, layout.Handler)
	adapter := NewDeployAdapter(layout.Adapter, factory, bridge, layout.ResourceID, domainID)

	ledger.Install(layout.Factory, factory)
	ledger.Install(layout.Bridge, bridge)
	ledger.Install(layout.Handler, handler)
	ledger.Install(layout.Adapter, adapter)

	return &Chain{
		DomainID: domainID,
		Ledger:   ledger,
		Factory:  factory,
		Bridge:   bridge,
		Handler:  handler,
		Adapter:  adapter,
	}
}

// Deploy sends a funded deploy transaction from sender.
func (c *Chain) Deploy(sender common.Address, value *uint256.Int, p DeployParams) (*Receipt, error) {
	return c.Ledger.Transact(sender, c.Adapter.Address(), value, func(tx *Tx, msg Msg) error {
		return c.Adapter.Deploy(tx, msg, p)
	})
}

// CalculateDeployFee quotes fees as a read-only call from sender.
func (c *Chain) CalculateDeployFee(sender common.Address, p DeployParams) ([]*uint256.Int, error) {
	var fees []*uint256.Int
	err := c.Ledger.View(sender, func(tx *Tx, msg Msg) error {
		var err error
		fees, err = c.Adapter.CalculateDeployFee(tx, msg, p)
		return err
	})
	return fees, err
}

// ExecuteProposal delivers a relayed deposit, sent by relayer.
func (c *Chain) ExecuteProposal(relayer common.Address, p Proposal) (*Receipt, error) {
	return c.Ledger.Transact(relayer, c.Bridge.Address(), nil, func(tx *Tx, msg Msg) error {
		return c.Bridge.ExecuteProposal(tx, msg, p)
	})
}

// ProposalsFrom extracts the proposals carried by Deposit events in a
// receipt of this chain.
func (c *Chain) ProposalsFrom(receipt *Receipt) map[uint8][]Proposal {
	out := make(map[uint8][]Proposal)
	for _, log := range receipt.Logs {
		dep, ok := log.Event.(Deposit)
		if !ok || log.Address != c.Bridge.Address() {
			continue
		}
		out[dep.DestinationDomainID] = append(out[dep.DestinationDomainID], Proposal{
			OriginDomainID: c.DomainID,
			DepositNonce:   dep.DepositNonce,
			ResourceID:     dep.ResourceID,
			Data:           dep.Data,
		})
	}
	return out
}
