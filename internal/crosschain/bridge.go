package crosschain

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// FeeHandler quotes the fee the bridge charges for a deposit.
type FeeHandler interface {
	CalculateFee(sender common.Address, fromDomainID, destinationDomainID uint8, resourceID common.Hash, depositData, feeData []byte) (*uint256.Int, error)
}

// Bridge is the origin side of the message bridge as seen by the adapter.
type Bridge interface {
	Address() common.Address
	FeeHandler() FeeHandler
	HandlerFor(resourceID common.Hash) (common.Address, bool)
	Deposit(tx *Tx, msg Msg, destinationDomainID uint8, resourceID common.Hash, depositData, feeData []byte) (uint64, error)
}

// Handler processes deposits and proposals for the resource ids it is
// registered for.
type Handler interface {
	Deposit(tx *Tx, msg Msg, resourceID common.Hash, depositor common.Address, data []byte) ([]byte, error)
	ExecuteProposal(tx *Tx, msg Msg, resourceID common.Hash, data []byte) error
}

// Executor is a contract the generic handler can deliver calldata to.
type Executor interface {
	Call(tx *Tx, msg Msg, calldata []byte) error
}

// Proposal is a deposit relayed to its destination chain.
type Proposal struct {
	OriginDomainID uint8
	DepositNonce   uint64
	ResourceID     common.Hash
	Data           []byte
}

// BasicFeeHandler charges a flat fee divided by the destination domain id.
type BasicFeeHandler struct {
	flatFee *uint256.Int
}

// NewBasicFeeHandler returns a fee handler quoting flatFee / destinationDomainID.
func NewBasicFeeHandler(flatFee *uint256.Int) *BasicFeeHandler {
	return &BasicFeeHandler{flatFee: new(uint256.Int).Set(flatFee)}
}

func (h *BasicFeeHandler) CalculateFee(_ common.Address, _, destinationDomainID uint8, _ common.Hash, _, _ []byte) (*uint256.Int, error) {
	if destinationDomainID == 0 {
		return nil, fmt.Errorf("%w: 0", ErrDomainNotSupported)
	}
	return new(uint256.Int).Div(h.flatFee, uint256.NewInt(uint64(destinationDomainID))), nil
}

// ReferenceBridge is a minimal bridge: it charges the fee handler's quote,
// forwards deposits to the registered handler and executes relayed
// proposals exactly once. Counters live in ledger storage so they roll back
// with the transaction.
type ReferenceBridge struct {
	address    common.Address
	domainID   uint8
	feeHandler FeeHandler
	handlers   map[common.Hash]common.Address
}

// NewReferenceBridge creates a bridge for the given local domain.
func NewReferenceBridge(addr common.Address, domainID uint8, feeHandler FeeHandler) *ReferenceBridge {
	return &ReferenceBridge{
		address:    addr,
		domainID:   domainID,
		feeHandler: feeHandler,
		handlers:   make(map[common.Hash]common.Address),
	}
}

func (b *ReferenceBridge) Address() common.Address { return b.address }

func (b *ReferenceBridge) DomainID() uint8 { return b.domainID }

func (b *ReferenceBridge) FeeHandler() FeeHandler { return b.feeHandler }

// RegisterHandler routes resourceID to the handler contract at handler.
func (b *ReferenceBridge) RegisterHandler(resourceID common.Hash, handler common.Address) {
	b.handlers[resourceID] = handler
}

func (b *ReferenceBridge) HandlerFor(resourceID common.Hash) (common.Address, bool) {
	addr, ok := b.handlers[resourceID]
	return addr, ok
}

// Deposit charges the quoted fee and hands the payload to the handler.
// The value attached by the caller moves to the bridge.
func (b *ReferenceBridge) Deposit(tx *Tx, msg Msg, destinationDomainID uint8, resourceID common.Hash, depositData, feeData []byte) (uint64, error) {
	if destinationDomainID == b.domainID {
		return 0, fmt.Errorf("%w: deposit to current domain %d", ErrDomainNotSupported, destinationDomainID)
	}
	handler, err := b.handler(tx, resourceID)
	if err != nil {
		return 0, err
	}

	fee, err := b.feeHandler.CalculateFee(msg.Sender, b.domainID, destinationDomainID, resourceID, depositData, feeData)
	if err != nil {
		return 0, err
	}
	value := msg.Value
	if value == nil {
		value = new(uint256.Int)
	}
	if !value.Eq(fee) {
		return 0, fmt.Errorf("%w: supplied %s, expected %s", ErrIncorrectFeeSupplied, value.Dec(), fee.Dec())
	}
	if err := tx.Transfer(msg.Sender, b.address, value); err != nil {
		return 0, err
	}

	nonce := b.nextDepositNonce(tx, destinationDomainID)
	response, err := handler.Deposit(tx, Msg{Sender: b.address, Value: new(uint256.Int)}, resourceID, msg.Sender, depositData)
	if err != nil {
		return 0, err
	}

	tx.Emit(b.address, Deposit{
		DestinationDomainID: destinationDomainID,
		ResourceID:          resourceID,
		DepositNonce:        nonce,
		User:                msg.Sender,
		Data:                depositData,
		HandlerResponse:     response,
		Fee:                 new(uint256.Int).Set(value),
	})
	return nonce, nil
}

// ExecuteProposal delivers a relayed deposit to its handler. A failing
// handler call is reported with FailedHandlerExecution and leaves the
// nonce unused so the proposal can be retried.
func (b *ReferenceBridge) ExecuteProposal(tx *Tx, msg Msg, p Proposal) error {
	key := nonceKey(p.OriginDomainID, p.DepositNonce)
	if tx.Load(b.address, key) != (common.Hash{}) {
		return fmt.Errorf("%w: domain %d nonce %d", ErrNonceUsed, p.OriginDomainID, p.DepositNonce)
	}
	handler, err := b.handler(tx, p.ResourceID)
	if err != nil {
		return err
	}

	tx.Store(b.address, key, common.BytesToHash([]byte{1}))
	err = tx.Try(func() error {
		return handler.ExecuteProposal(tx, Msg{Sender: b.address, Value: new(uint256.Int)}, p.ResourceID, p.Data)
	})
	if err != nil {
		tx.Store(b.address, key, common.Hash{})
		tx.Emit(b.address, FailedHandlerExecution{
			Reason:         err.Error(),
			OriginDomainID: p.OriginDomainID,
			DepositNonce:   p.DepositNonce,
		})
		return nil
	}

	tx.Emit(b.address, ProposalExecution{
		OriginDomainID: p.OriginDomainID,
		DepositNonce:   p.DepositNonce,
		DataHash:       crypto.Keccak256Hash(p.Data),
	})
	return nil
}

func (b *ReferenceBridge) handler(tx *Tx, resourceID common.Hash) (Handler, error) {
	addr, ok := b.handlers[resourceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceIDNotMapped, resourceID.Hex())
	}
	contract, ok := tx.Contract(addr)
	if !ok {
		return nil, fmt.Errorf("%w: handler %s", ErrNoContract, addr.Hex())
	}
	handler, ok := contract.(Handler)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a handler", ErrNoContract, addr.Hex())
	}
	return handler, nil
}

func (b *ReferenceBridge) nextDepositNonce(tx *Tx, destinationDomainID uint8) uint64 {
	key := crypto.Keccak256Hash([]byte("depositCounts"), []byte{destinationDomainID})
	current := new(uint256.Int).SetBytes(tx.Load(b.address, key).Bytes())
	current.AddUint64(current, 1)
	tx.Store(b.address, key, current.Bytes32())
	return current.Uint64()
}

func nonceKey(originDomainID uint8, nonce uint64) common.Hash {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], nonce)
	return crypto.Keccak256Hash([]byte("usedNonces"), []byte{originDomainID}, n[:])
}

// GenericHandler forwards the execution data of a deposit to the target
// contract named inside the payload.
type GenericHandler struct {
	address common.Address
	bridge  common.Address
}

// NewGenericHandler creates a handler at addr serving bridge.
func NewGenericHandler(addr, bridge common.Address) *GenericHandler {
	return &GenericHandler{address: addr, bridge: bridge}
}

func (h *GenericHandler) Address() common.Address { return h.address }

// Deposit checks that the payload names the actual depositor.
func (h *GenericHandler) Deposit(_ *Tx, msg Msg, _ common.Hash, depositor common.Address, data []byte) ([]byte, error) {
	if msg.Sender != h.bridge {
		return nil, ErrSenderNotBridge
	}
	decoded, err := DecodeDepositData(data)
	if err != nil {
		return nil, err
	}
	if decoded.Depositor != depositor {
		return nil, fmt.Errorf("%w: payload names %s, deposit made by %s", ErrIncorrectDepositor, decoded.Depositor.Hex(), depositor.Hex())
	}
	return nil, nil
}

// ExecuteProposal calls the payload target with selector, depositor and
// execution data.
func (h *GenericHandler) ExecuteProposal(tx *Tx, msg Msg, _ common.Hash, data []byte) error {
	if msg.Sender != h.bridge {
		return ErrSenderNotBridge
	}
	decoded, err := DecodeDepositData(data)
	if err != nil {
		return err
	}
	contract, ok := tx.Contract(decoded.Contract)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoContract, decoded.Contract.Hex())
	}
	target, ok := contract.(Executor)
	if !ok {
		return fmt.Errorf("%w: %s does not accept calls", ErrNoContract, decoded.Contract.Hex())
	}
	return target.Call(tx, Msg{Sender: h.address, Value: new(uint256.Int)}, decoded.ExecuteCalldata())
}

var (
	_ Bridge  = (*ReferenceBridge)(nil)
	_ Handler = (*GenericHandler)(nil)
)
