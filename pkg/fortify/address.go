package fortify

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ProxyInitCodeHash is the keccak256 of the CREATE3 proxy child init code
// used by CreateX.
var ProxyInitCodeHash = common.HexToHash("0x21c35dbe1b344a2488cf3321d6ce542f8e9f305544ff09e4993a62319a497c1f")

var (
	// ErrInvalidSalt mirrors the CreateX InvalidSalt revert.
	ErrInvalidSalt = errors.New("invalid salt")
	// ErrChainIDRequired is returned when a per-chain salt is resolved without a chain id.
	ErrChainIDRequired = errors.New("chain id required for salts unique per chain")
)

type senderKind int

const (
	senderCaller senderKind = iota
	senderZero
	senderRandom
)

// GuardSalt applies the CreateX salt guard as seen from a call made by
// caller on the chain with the given id.
func GuardSalt(caller common.Address, salt Salt, chainID *big.Int) (common.Hash, error) {
	kind := senderRandom
	switch salt.Deployer() {
	case caller:
		kind = senderCaller
	case common.Address{}:
		kind = senderZero
	}
	flag := salt.Flag()

	switch {
	case kind == senderCaller && flag == FlagUnique:
		if chainID == nil {
			return common.Hash{}, ErrChainIDRequired
		}
		return crypto.Keccak256Hash(
			common.LeftPadBytes(caller.Bytes(), 32),
			common.LeftPadBytes(chainID.Bytes(), 32),
			salt[:],
		), nil
	case kind == senderCaller && flag == FlagShared:
		return crypto.Keccak256Hash(common.LeftPadBytes(caller.Bytes(), 32), salt[:]), nil
	case kind == senderCaller:
		return common.Hash{}, fmt.Errorf("%w: flag byte 0x%02x", ErrInvalidSalt, flag)
	case kind == senderZero && flag == FlagUnique:
		if chainID == nil {
			return common.Hash{}, ErrChainIDRequired
		}
		return crypto.Keccak256Hash(common.LeftPadBytes(chainID.Bytes(), 32), salt[:]), nil
	case kind == senderZero && flag != FlagShared:
		return common.Hash{}, fmt.Errorf("%w: flag byte 0x%02x", ErrInvalidSalt, flag)
	default:
		return crypto.Keccak256Hash(salt[:]), nil
	}
}

// Create2Address is the CREATE2 address of initCodeHash deployed by
// deployer with salt.
func Create2Address(deployer common.Address, salt common.Hash, initCodeHash common.Hash) common.Address {
	return crypto.CreateAddress2(deployer, salt, initCodeHash.Bytes())
}

// Create3Address returns the address a CREATE3 deployment by factory with
// the already guarded salt ends up at. The address does not depend on the
// deployed init code.
func Create3Address(factory common.Address, guardedSalt common.Hash) common.Address {
	proxy := Create2Address(factory, guardedSalt, ProxyInitCodeHash)
	return crypto.CreateAddress(proxy, 1)
}

// ComputeAddressForChain returns where the adapter deploys a contract with
// the fortified salt on the chain with the given id.
func ComputeAddressForChain(factory, adapter common.Address, salt Salt, chainID *big.Int) (common.Address, error) {
	guarded, err := GuardSalt(adapter, salt, chainID)
	if err != nil {
		return common.Address{}, err
	}
	return Create3Address(factory, guarded), nil
}

// ComputeAddress is ComputeAddressForChain for salts shared by every chain.
// The factory and adapter must live at the same address on each chain.
func ComputeAddress(factory, adapter common.Address, salt Salt) (common.Address, error) {
	return ComputeAddressForChain(factory, adapter, salt, nil)
}

// Predict fortifies rawSalt for sender and resolves the resulting address
// on the chain with the given id.
func Predict(factory, adapter, sender common.Address, rawSalt Salt, isUniquePerChain bool, chainID *big.Int) (Salt, common.Address, error) {
	salt := Fortify(adapter, sender, rawSalt, isUniquePerChain)
	addr, err := ComputeAddressForChain(factory, adapter, salt, chainID)
	return salt, addr, err
}
