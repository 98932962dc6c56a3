package crosschain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// DeployRequested is emitted by the adapter for every remote destination.
type DeployRequested struct {
	Sender              common.Address
	FortifiedSalt       fortify.Salt
	DestinationDomainID uint8
}

func (DeployRequested) EventName() string { return "DeployRequested" }

// Deployed is emitted by the adapter once a contract exists on its chain.
type Deployed struct {
	FortifiedSalt fortify.Salt
	NewContract   common.Address
}

func (Deployed) EventName() string { return "Deployed" }

// ContractCreation is emitted by the factory.
type ContractCreation struct {
	NewContract common.Address
	Salt        common.Hash
}

func (ContractCreation) EventName() string { return "ContractCreation" }

// Deposit is emitted by the bridge when a message leaves the origin chain.
type Deposit struct {
	DestinationDomainID uint8
	ResourceID          common.Hash
	DepositNonce        uint64
	User                common.Address
	Data                []byte
	HandlerResponse     []byte
	Fee                 *uint256.Int
}

func (Deposit) EventName() string { return "Deposit" }

// ProposalExecution is emitted by the destination bridge after the handler
// call succeeded.
type ProposalExecution struct {
	OriginDomainID uint8
	DepositNonce   uint64
	DataHash       common.Hash
}

func (ProposalExecution) EventName() string { return "ProposalExecution" }

// FailedHandlerExecution is emitted by the destination bridge when the
// handler call reverted. The proposal itself does not revert.
type FailedHandlerExecution struct {
	Reason         string
	OriginDomainID uint8
	DepositNonce   uint64
}

func (FailedHandlerExecution) EventName() string { return "FailedHandlerExecution" }
