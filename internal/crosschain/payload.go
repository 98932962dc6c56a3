package crosschain

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/trebuchet-org/treb-multichain/internal/adapters/abi/bindings"
	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

var adapterABI = bindings.NewCrosschainDeployAdapter()

// DepositData is the decoded payload of a generic handler deposit.
type DepositData struct {
	GasLimit      *uint256.Int
	Selector      []byte
	Contract      common.Address
	Depositor     common.Address
	ExecutionData []byte
}

// PrepareDepositData builds the bridge payload that makes the handler on
// the destination chain call execute on target. The origin depositor word
// of the execute arguments is left out; the handler supplies it.
//
//	gasLimit (32) | len(selector) (2) | selector | 20 | target | 20 | target | execute args[32:]
func PrepareDepositData(target common.Address, gasLimit *uint256.Int, initCode, initData []byte, salt fortify.Salt) ([]byte, error) {
	call, err := adapterABI.TryPackExecute(common.Address{}, initCode, initData, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to encode execute arguments: %w", err)
	}
	selector := call[:4]
	args := call[4+32:]

	if gasLimit == nil {
		gasLimit = new(uint256.Int)
	}
	gas := gasLimit.Bytes32()

	out := make([]byte, 0, 32+2+len(selector)+2*(1+common.AddressLength)+len(args))
	out = append(out, gas[:]...)
	out = binary.BigEndian.AppendUint16(out, uint16(len(selector)))
	out = append(out, selector...)
	out = append(out, common.AddressLength)
	out = append(out, target.Bytes()...)
	out = append(out, common.AddressLength)
	out = append(out, target.Bytes()...)
	out = append(out, args...)
	return out, nil
}

// DecodeDepositData splits a payload produced by PrepareDepositData.
func DecodeDepositData(data []byte) (*DepositData, error) {
	r := payloadReader{data: data}
	gas := r.next(32)
	selLen := r.next(2)
	if r.err != nil {
		return nil, r.err
	}
	selector := r.next(int(binary.BigEndian.Uint16(selLen)))
	contract := r.address()
	depositor := r.address()
	if r.err != nil {
		return nil, r.err
	}
	return &DepositData{
		GasLimit:      new(uint256.Int).SetBytes(gas),
		Selector:      selector,
		Contract:      contract,
		Depositor:     depositor,
		ExecutionData: data[r.pos:],
	}, nil
}

// ExecuteCalldata is what the handler sends to the target contract.
func (d *DepositData) ExecuteCalldata() []byte {
	out := make([]byte, 0, len(d.Selector)+32+len(d.ExecutionData))
	out = append(out, d.Selector...)
	out = append(out, common.LeftPadBytes(d.Depositor.Bytes(), 32)...)
	out = append(out, d.ExecutionData...)
	return out
}

type payloadReader struct {
	data []byte
	pos  int
	err  error
}

func (r *payloadReader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalidDepositData, n, r.pos, len(r.data))
		return nil
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out
}

func (r *payloadReader) address() common.Address {
	l := r.next(1)
	if r.err != nil {
		return common.Address{}
	}
	if int(l[0]) != common.AddressLength {
		r.err = fmt.Errorf("%w: address length %d", ErrInvalidDepositData, l[0])
		return common.Address{}
	}
	return common.BytesToAddress(r.next(common.AddressLength))
}
