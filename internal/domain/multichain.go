package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// Environment selects the bridge deployment a run talks to.
type Environment string

const (
	EnvironmentMainnet Environment = "mainnet"
	EnvironmentTestnet Environment = "testnet"
	EnvironmentDevnet  Environment = "devnet"
	EnvironmentLocal   Environment = "local"
)

// ParseEnvironment validates an environment name.
func ParseEnvironment(s string) (Environment, error) {
	switch env := Environment(strings.ToLower(strings.TrimSpace(s))); env {
	case EnvironmentMainnet, EnvironmentTestnet, EnvironmentDevnet, EnvironmentLocal:
		return env, nil
	}
	return "", fmt.Errorf("%w: %q (expected mainnet, testnet, devnet or local)", ErrInvalidEnvironment, s)
}

// DomainType is the kind of ledger behind a domain.
type DomainType string

const (
	DomainTypeEVM       DomainType = "evm"
	DomainTypeSubstrate DomainType = "substrate"
	DomainTypeBitcoin   DomainType = "btc"
)

// Domain is a bridge registered destination.
type Domain struct {
	ID      uint8      `json:"id"`
	ChainID uint64     `json:"chainId"`
	Name    string     `json:"name"`
	Type    DomainType `json:"type"`
}

// InitCall is a method invoked on the new contract right after creation.
type InitCall struct {
	MethodName string  `json:"initMethodName" yaml:"initMethodName"`
	MethodArgs []Value `json:"initMethodArgs" yaml:"initMethodArgs"`
}

// NetworkArgument holds the per network deployment arguments.
type NetworkArgument struct {
	Network         string
	ConstructorArgs []Value
	InitCall        *InitCall
}

// NetworkArgs is the ordered list of destinations of one deployment.
type NetworkArgs []NetworkArgument

// Names returns the network names in order.
func (n NetworkArgs) Names() []string {
	out := make([]string, len(n))
	for i, arg := range n {
		out[i] = arg.Network
	}
	return out
}

// EncodedArgs is the output of mapping NetworkArgs against the registry and
// an ABI. All slices are index aligned.
type EncodedArgs struct {
	DomainIDs       []uint8
	Domains         []Domain
	ConstructorArgs [][]byte
	InitDatas       [][]byte
}

// TxOptions are extra settings for the funded deploy transaction.
type TxOptions struct {
	GasLimit  uint64
	GasFeeCap *big.Int
	GasTipCap *big.Int
	Nonce     *uint64
	// Value is always replaced by the sum of the quoted fees.
	Value *big.Int
}

// DeployOptions tune a single deployment.
type DeployOptions struct {
	Salt             *fortify.Salt
	IsUniquePerChain bool
	// GasLimit forwarded to remote executions; estimated when zero.
	GasLimit       uint64
	AdapterAddress *common.Address
	TxOptions      TxOptions
	// DryRun stops after quoting fees.
	DryRun bool
}

// DeployRequest is the resolved input handed to the adapter gateway.
type DeployRequest struct {
	Adapter          common.Address
	InitCode         []byte
	GasLimit         *big.Int
	Salt             fortify.Salt
	IsUniquePerChain bool
	ConstructorArgs  [][]byte
	InitDatas        [][]byte
	DomainIDs        []uint8
}

// DeployResult is returned once the funded transaction was mined.
type DeployResult struct {
	TransactionHash    common.Hash
	DomainIDs          []uint8
	Salt               fortify.Salt
	FortifiedSalt      fortify.Salt
	Fees               []*big.Int
	PredictedAddresses map[uint8]common.Address
	Events             []AdapterEvent
	DryRun             bool
}

// AdapterEventType names an event the deploy adapter emits.
type AdapterEventType string

const (
	EventDeployRequested AdapterEventType = "DeployRequested"
	EventDeployed        AdapterEventType = "Deployed"
)

// AdapterEvent is a decoded DeployRequested or Deployed log.
type AdapterEvent struct {
	Type          AdapterEventType
	Sender        common.Address // DeployRequested only
	FortifiedSalt fortify.Salt
	DomainID      uint8          // DeployRequested only
	NewContract   common.Address // Deployed only
}

// DeployReceipt is the mined deploy transaction.
type DeployReceipt struct {
	TransactionHash common.Hash
	BlockNumber     uint64
	GasUsed         uint64
	Events          []AdapterEvent
}

// TransferStatus is the bridge's view of one cross-chain message.
type TransferStatus string

const (
	TransferPending  TransferStatus = "pending"
	TransferExecuted TransferStatus = "executed"
	TransferFailed   TransferStatus = "failed"
)

// Transfer is a status service record for one destination domain.
type Transfer struct {
	Status          TransferStatus
	FromDomainID    uint8
	ToDomainID      uint8
	DepositTxHash   common.Hash
	ExecutionTxHash common.Hash
	ExplorerURL     string
	UpdatedAt       time.Time
}

// DeploymentInfo is the per network outcome reported to the caller.
type DeploymentInfo struct {
	Network         string
	DomainID        uint8
	ContractAddress common.Address
	ExplorerURL     string
	TransactionHash common.Hash
}

// DeploymentRecord is what the deployment journal keeps for a submitted
// deployment.
type DeploymentRecord struct {
	ID                 string                   `json:"id"`
	Environment        Environment              `json:"environment"`
	OriginChainID      uint64                   `json:"originChainId"`
	TransactionHash    common.Hash              `json:"transactionHash"`
	Contract           string                   `json:"contract,omitempty"`
	Sender             common.Address           `json:"sender"`
	Adapter            common.Address           `json:"adapter"`
	Salt               fortify.Salt             `json:"salt"`
	FortifiedSalt      fortify.Salt             `json:"fortifiedSalt"`
	IsUniquePerChain   bool                     `json:"isUniquePerChain"`
	DomainIDs          DomainIDList             `json:"domainIds"`
	Networks           []string                 `json:"networks"`
	PredictedAddresses map[uint8]common.Address `json:"predictedAddresses"`
	CreatedAt          time.Time                `json:"createdAt"`
}

// AdapterInfo is the immutable configuration of a deployed adapter.
type AdapterInfo struct {
	Address    common.Address
	Factory    common.Address
	Bridge     common.Address
	ResourceID common.Hash
	DomainID   uint8
}

// Artifact is a compiled contract.
type Artifact struct {
	Name       string
	SourcePath string
	ABI        string
	Bytecode   []byte
}

// DomainIDList is a list of domain ids that serializes as numbers.
type DomainIDList []uint8

func (l DomainIDList) MarshalJSON() ([]byte, error) {
	ids := make([]uint, len(l))
	for i, id := range l {
		ids[i] = uint(id)
	}
	return json.Marshal(ids)
}

func (l *DomainIDList) UnmarshalJSON(data []byte) error {
	var ids []uint8
	var raw []json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, n := range raw {
		v, err := n.Int64()
		if err != nil || v < 0 || v > 255 {
			return fmt.Errorf("invalid domain id %s", n)
		}
		ids = append(ids, uint8(v))
	}
	*l = ids
	return nil
}
