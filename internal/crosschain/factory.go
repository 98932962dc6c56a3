package crosschain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// Factory deploys contracts to addresses that depend only on the factory,
// the caller and the salt.
type Factory interface {
	Address() common.Address
	DeployCreate3(tx *Tx, msg Msg, salt fortify.Salt, initCode []byte) (common.Address, error)
	DeployCreate3AndInit(tx *Tx, msg Msg, salt fortify.Salt, initCode, data []byte) (common.Address, error)
}

// CreateXFactory models the CREATE3 entry points of CreateX.
type CreateXFactory struct {
	address common.Address
}

// NewCreateXFactory returns a factory living at addr.
func NewCreateXFactory(addr common.Address) *CreateXFactory {
	return &CreateXFactory{address: addr}
}

func (f *CreateXFactory) Address() common.Address { return f.address }

// DeployCreate3 deploys initCode with the guarded salt. The target address
// must be empty.
func (f *CreateXFactory) DeployCreate3(tx *Tx, msg Msg, salt fortify.Salt, initCode []byte) (common.Address, error) {
	guarded, err := fortify.GuardSalt(msg.Sender, salt, tx.ChainID())
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}
	addr := fortify.Create3Address(f.address, guarded)
	if tx.HasCode(addr) || len(initCode) == 0 {
		return common.Address{}, fmt.Errorf("%w: %s", ErrFailedContractCreation, addr.Hex())
	}
	tx.SetCode(addr, initCode)
	tx.Emit(f.address, ContractCreation{NewContract: addr, Salt: guarded})
	return addr, nil
}

// DeployCreate3AndInit deploys initCode and then calls the new contract
// with data.
func (f *CreateXFactory) DeployCreate3AndInit(tx *Tx, msg Msg, salt fortify.Salt, initCode, data []byte) (common.Address, error) {
	addr, err := f.DeployCreate3(tx, msg, salt, initCode)
	if err != nil {
		return common.Address{}, err
	}
	if len(data) < 4 {
		return common.Address{}, fmt.Errorf("%w: calldata too short for %s", ErrFailedContractInitialisation, addr.Hex())
	}
	tx.RecordCall(addr, data)
	return addr, nil
}

var _ Factory = (*CreateXFactory)(nil)
