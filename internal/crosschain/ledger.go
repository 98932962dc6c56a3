package crosschain

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Event is anything a contract emits into the transaction log.
type Event interface {
	EventName() string
}

// Log is an event together with the contract that emitted it.
type Log struct {
	Address common.Address
	Event   Event
}

// Receipt is the outcome of a successful transaction.
type Receipt struct {
	TxHash common.Hash
	From   common.Address
	To     common.Address
	Logs   []Log
}

// Msg carries the caller and attached value of a contract call.
type Msg struct {
	Sender common.Address
	Value  *uint256.Int
}

// Account is the ledger state of one address. Code holds the init code a
// contract was created with; runtime behaviour is not modelled, calls made
// to plain code accounts are recorded in Calls.
type Account struct {
	Code    []byte
	Calls   [][]byte
	Balance *uint256.Int
	Storage map[common.Hash]common.Hash
}

func (a *Account) clone() *Account {
	out := &Account{
		Code:    a.Code,
		Calls:   slices.Clone(a.Calls),
		Balance: new(uint256.Int),
		Storage: maps.Clone(a.Storage),
	}
	if a.Balance != nil {
		out.Balance.Set(a.Balance)
	}
	return out
}

// Ledger is a single chain holding accounts, installed contracts and the
// receipts of executed transactions. Every transaction is atomic: a
// failing call leaves no trace in state or logs.
type Ledger struct {
	mu        sync.Mutex
	chainID   *big.Int
	accounts  map[common.Address]*Account
	contracts map[common.Address]any
	receipts  map[common.Hash]*Receipt
	txCount   uint64
}

// NewLedger creates an empty ledger for the given chain id.
func NewLedger(chainID *big.Int) *Ledger {
	return &Ledger{
		chainID:   new(big.Int).Set(chainID),
		accounts:  make(map[common.Address]*Account),
		contracts: make(map[common.Address]any),
		receipts:  make(map[common.Hash]*Receipt),
	}
}

// ChainID returns the chain id of the ledger.
func (l *Ledger) ChainID() *big.Int {
	return new(big.Int).Set(l.chainID)
}

// Install places a contract implementation at addr.
func (l *Ledger) Install(addr common.Address, contract any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.contracts[addr] = contract
	acc := l.account(addr)
	if len(acc.Code) == 0 {
		acc.Code = []byte{0x00}
	}
}

// Account returns a copy of the state held at addr, or nil.
func (l *Ledger) Account(addr common.Address) *Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[addr]
	if !ok {
		return nil
	}
	return acc.clone()
}

// Receipt returns the receipt of a transaction executed on this ledger.
func (l *Ledger) Receipt(hash common.Hash) (*Receipt, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.receipts[hash]
	return r, ok
}

// Transact executes fn as a transaction sent by from to the contract at to
// with value attached. The value is credited to the callee before fn runs.
func (l *Ledger) Transact(from, to common.Address, value *uint256.Int, fn func(tx *Tx, msg Msg) error) (*Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if value == nil {
		value = new(uint256.Int)
	}
	l.txCount++
	tx := &Tx{ledger: l, hash: l.txHash(from)}
	err := tx.Try(func() error {
		l.account(to).Balance.Add(l.account(to).Balance, value)
		return fn(tx, Msg{Sender: from, Value: value})
	})
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{TxHash: tx.hash, From: from, To: to, Logs: tx.logs}
	l.receipts[tx.hash] = receipt
	return receipt, nil
}

// View runs fn against the current state and discards every change, like
// an eth_call.
func (l *Ledger) View(from common.Address, fn func(tx *Tx, msg Msg) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &Tx{ledger: l}
	snapshot := l.snapshot()
	defer l.restore(snapshot)
	return fn(tx, Msg{Sender: from, Value: new(uint256.Int)})
}

func (l *Ledger) txHash(from common.Address) common.Hash {
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], l.txCount)
	return crypto.Keccak256Hash(common.LeftPadBytes(l.chainID.Bytes(), 32), from.Bytes(), counter[:])
}

func (l *Ledger) account(addr common.Address) *Account {
	acc, ok := l.accounts[addr]
	if !ok {
		acc = &Account{Balance: new(uint256.Int)}
		l.accounts[addr] = acc
	}
	return acc
}

func (l *Ledger) snapshot() map[common.Address]*Account {
	out := make(map[common.Address]*Account, len(l.accounts))
	for addr, acc := range l.accounts {
		out[addr] = acc.clone()
	}
	return out
}

func (l *Ledger) restore(snapshot map[common.Address]*Account) {
	l.accounts = snapshot
}

// Tx is the execution context handed to contracts during a transaction.
type Tx struct {
	ledger *Ledger
	hash   common.Hash
	logs   []Log
}

// Hash returns the hash of the running transaction.
func (tx *Tx) Hash() common.Hash { return tx.hash }

// ChainID returns the chain id the transaction executes on.
func (tx *Tx) ChainID() *big.Int { return tx.ledger.ChainID() }

// Emit appends an event to the transaction log.
func (tx *Tx) Emit(emitter common.Address, event Event) {
	tx.logs = append(tx.logs, Log{Address: emitter, Event: event})
}

// Try runs fn and rolls back state and logs written by it when it fails.
func (tx *Tx) Try(fn func() error) error {
	snapshot := tx.ledger.snapshot()
	mark := len(tx.logs)
	if err := fn(); err != nil {
		tx.ledger.restore(snapshot)
		tx.logs = tx.logs[:mark]
		return err
	}
	return nil
}

// Transfer moves amount between two accounts.
func (tx *Tx) Transfer(from, to common.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}
	src := tx.ledger.account(from)
	if src.Balance.Lt(amount) {
		return fmt.Errorf("%w: %s holds %s, needs %s", ErrInsufficientBalance, from.Hex(), src.Balance.Dec(), amount.Dec())
	}
	dst := tx.ledger.account(to)
	src.Balance.Sub(src.Balance, amount)
	dst.Balance.Add(dst.Balance, amount)
	return nil
}

// HasCode reports whether addr is occupied.
func (tx *Tx) HasCode(addr common.Address) bool {
	acc, ok := tx.ledger.accounts[addr]
	return ok && len(acc.Code) > 0
}

// SetCode creates a contract account at addr.
func (tx *Tx) SetCode(addr common.Address, code []byte) {
	tx.ledger.account(addr).Code = bytes.Clone(code)
}

// Load reads a storage slot of addr.
func (tx *Tx) Load(addr common.Address, key common.Hash) common.Hash {
	return tx.ledger.account(addr).Storage[key]
}

// Store writes a storage slot of addr.
func (tx *Tx) Store(addr common.Address, key, value common.Hash) {
	acc := tx.ledger.account(addr)
	if acc.Storage == nil {
		acc.Storage = make(map[common.Hash]common.Hash)
	}
	acc.Storage[key] = value
}

// Contract returns the implementation installed at addr.
func (tx *Tx) Contract(addr common.Address) (any, bool) {
	c, ok := tx.ledger.contracts[addr]
	return c, ok
}

// RecordCall stores calldata delivered to a plain code account.
func (tx *Tx) RecordCall(addr common.Address, data []byte) {
	acc := tx.ledger.account(addr)
	acc.Calls = append(acc.Calls, bytes.Clone(data))
}

// Logs returns the events emitted so far.
func (tx *Tx) Logs() []Log {
	return slices.Clone(tx.logs)
}

// Balances returns every non-zero balance on the ledger.
func (l *Ledger) Balances() map[common.Address]*uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[common.Address]*uint256.Int)
	for addr, acc := range l.accounts {
		if bal := acc.Balance; !bal.IsZero() {
			out[addr] = new(uint256.Int).Set(bal)
		}
	}
	return out
}
