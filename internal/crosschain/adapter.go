// Package crosschain is an in-process model of the contracts taking part
// in a multichain deployment: the deploy adapter, a CreateX style factory
// and a generic message bridge. Contracts run inside ledger transactions,
// so a failing call reverts every change it made.
package crosschain

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// DeployParams are the arguments of deploy and calculateDeployFee. Fees is
// ignored by CalculateDeployFee.
type DeployParams struct {
	InitCode             []byte
	GasLimit             *uint256.Int
	Salt                 fortify.Salt
	IsUniquePerChain     bool
	ConstructorArgs      [][]byte
	InitDatas            [][]byte
	DestinationDomainIDs []uint8
	Fees                 []*uint256.Int
}

// DeployAdapter fans a deployment out to the local factory and, through
// the bridge, to the adapters living at the same address on other chains.
// It keeps no state besides its immutable configuration.
type DeployAdapter struct {
	address    common.Address
	factory    Factory
	bridge     Bridge
	resourceID common.Hash
	domainID   uint8
}

// NewDeployAdapter creates the adapter at addr for the local domain.
func NewDeployAdapter(addr common.Address, factory Factory, bridge Bridge, resourceID common.Hash, domainID uint8) *DeployAdapter {
	return &DeployAdapter{
		address:    addr,
		factory:    factory,
		bridge:     bridge,
		resourceID: resourceID,
		domainID:   domainID,
	}
}

// Address returns the adapter's own address.
func (a *DeployAdapter) Address() common.Address { return a.address }

// Factory returns the FACTORY address.
func (a *DeployAdapter) Factory() common.Address { return a.factory.Address() }

// Bridge returns the BRIDGE address.
func (a *DeployAdapter) Bridge() common.Address { return a.bridge.Address() }

// ResourceID returns RESOURCE_ID.
func (a *DeployAdapter) ResourceID() common.Hash { return a.resourceID }

// DomainID returns DOMAIN_ID.
func (a *DeployAdapter) DomainID() uint8 { return a.domainID }

// Fortify binds rawSalt to this adapter and sender.
func (a *DeployAdapter) Fortify(sender common.Address, rawSalt fortify.Salt, isUniquePerChain bool) fortify.Salt {
	return fortify.Fortify(a.address, sender, rawSalt, isUniquePerChain)
}

// ComputeContractAddress predicts the address on the chain of tx.
func (a *DeployAdapter) ComputeContractAddress(tx *Tx, sender common.Address, rawSalt fortify.Salt, isUniquePerChain bool) (common.Address, error) {
	return a.ComputeContractAddressForChain(sender, rawSalt, isUniquePerChain, tx.ChainID())
}

// ComputeContractAddressForChain predicts the address on the given chain.
func (a *DeployAdapter) ComputeContractAddressForChain(sender common.Address, rawSalt fortify.Salt, isUniquePerChain bool, chainID *big.Int) (common.Address, error) {
	salt := a.Fortify(sender, rawSalt, isUniquePerChain)
	return fortify.ComputeAddressForChain(a.factory.Address(), a.address, salt, chainID)
}

// PrepareDepositData builds the payload deposited for one remote domain.
func (a *DeployAdapter) PrepareDepositData(gasLimit *uint256.Int, initCode, initData []byte, fortifiedSalt fortify.Salt) ([]byte, error) {
	return PrepareDepositData(a.address, gasLimit, initCode, initData, fortifiedSalt)
}

// CalculateDeployFee quotes the fee of every destination. The local
// domain is always free.
func (a *DeployAdapter) CalculateDeployFee(tx *Tx, msg Msg, p DeployParams) ([]*uint256.Int, error) {
	n := len(p.DestinationDomainIDs)
	if len(p.ConstructorArgs) != n || len(p.InitDatas) != n {
		return nil, ErrInvalidLength
	}

	salt := a.Fortify(msg.Sender, p.Salt, p.IsUniquePerChain)
	fees := make([]*uint256.Int, n)
	for i, domainID := range p.DestinationDomainIDs {
		if domainID == a.domainID {
			fees[i] = new(uint256.Int)
			continue
		}
		data, err := a.PrepareDepositData(p.GasLimit, concat(p.InitCode, p.ConstructorArgs[i]), p.InitDatas[i], salt)
		if err != nil {
			return nil, err
		}
		fee, err := a.bridge.FeeHandler().CalculateFee(a.address, a.domainID, domainID, a.resourceID, data, nil)
		if err != nil {
			return nil, fmt.Errorf("fee for domain %d: %w", domainID, err)
		}
		fees[i] = fee
	}
	return fees, nil
}

// Deploy validates lengths and payment, then dispatches every destination
// in the given order. Callers run it inside Ledger.Transact so any error
// reverts the whole call.
func (a *DeployAdapter) Deploy(tx *Tx, msg Msg, p DeployParams) error {
	n := len(p.DestinationDomainIDs)
	if len(p.ConstructorArgs) != n || len(p.InitDatas) != n || len(p.Fees) != n {
		return ErrInvalidLength
	}

	total := new(uint256.Int)
	for _, fee := range p.Fees {
		if fee == nil {
			fee = new(uint256.Int)
		}
		if _, overflow := total.AddOverflow(total, fee); overflow {
			return ErrFeeOverflow
		}
	}
	value := msg.Value
	if value == nil {
		value = new(uint256.Int)
	}
	if value.Lt(total) {
		return fmt.Errorf("%w: sent %s, fees total %s", ErrInsufficientFee, value.Dec(), total.Dec())
	}
	if value.Gt(total) {
		return fmt.Errorf("%w: sent %s, fees total %s", ErrExcessFee, value.Dec(), total.Dec())
	}

	salt := a.Fortify(msg.Sender, p.Salt, p.IsUniquePerChain)
	for i, domainID := range p.DestinationDomainIDs {
		initCode := concat(p.InitCode, p.ConstructorArgs[i])

		if domainID == a.domainID {
			if p.Fees[i] != nil && !p.Fees[i].IsZero() {
				return fmt.Errorf("%w: local domain fee must be zero", ErrExcessFee)
			}
			if _, err := a.deployLocal(tx, initCode, p.InitDatas[i], salt); err != nil {
				return err
			}
			continue
		}

		data, err := a.PrepareDepositData(p.GasLimit, initCode, p.InitDatas[i], salt)
		if err != nil {
			return err
		}
		fee := p.Fees[i]
		if fee == nil {
			fee = new(uint256.Int)
		}
		if _, err := a.bridge.Deposit(tx, Msg{Sender: a.address, Value: fee}, domainID, a.resourceID, data, nil); err != nil {
			return fmt.Errorf("deposit to domain %d: %w", domainID, err)
		}
		tx.Emit(a.address, DeployRequested{
			Sender:              msg.Sender,
			FortifiedSalt:       salt,
			DestinationDomainID: domainID,
		})
	}
	return nil
}

// Execute is the bridge callback on the destination chain. Only the
// handler the bridge routes RESOURCE_ID to may call it, and only for
// messages deposited by this adapter.
func (a *DeployAdapter) Execute(tx *Tx, msg Msg, originDepositor common.Address, initCode, initData []byte, fortifiedSalt fortify.Salt) error {
	handler, ok := a.bridge.HandlerFor(a.resourceID)
	if !ok || msg.Sender != handler {
		return ErrInvalidHandler
	}
	if originDepositor != a.address {
		return ErrInvalidOrigin
	}
	_, err := a.deployLocal(tx, initCode, initData, fortifiedSalt)
	return err
}

// Call decodes calldata addressed to the adapter. Only execute is
// reachable this way.
func (a *DeployAdapter) Call(tx *Tx, msg Msg, calldata []byte) error {
	if len(calldata) < 4 || !bytes.Equal(calldata[:4], adapterABI.ExecuteSelector()) {
		return ErrUnknownSelector
	}
	input, err := adapterABI.UnpackExecuteInput(calldata[4:])
	if err != nil {
		return fmt.Errorf("failed to decode execute call: %w", err)
	}
	return a.Execute(tx, msg, input.OriginDepositor, input.InitCode, input.InitData, input.FortifiedSalt)
}

func (a *DeployAdapter) deployLocal(tx *Tx, initCode, initData []byte, salt fortify.Salt) (common.Address, error) {
	self := Msg{Sender: a.address, Value: new(uint256.Int)}
	var (
		addr common.Address
		err  error
	)
	if len(initData) == 0 {
		addr, err = a.factory.DeployCreate3(tx, self, salt, initCode)
	} else {
		addr, err = a.factory.DeployCreate3AndInit(tx, self, salt, initCode, initData)
	}
	if err != nil {
		return common.Address{}, err
	}
	tx.Emit(a.address, Deployed{FortifiedSalt: salt, NewContract: addr})
	return addr, nil
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

var _ Executor = (*DeployAdapter)(nil)
