// Package fortify derives the salts and CREATE3 addresses used by the
// multichain deploy adapter.
//
// A fortified salt binds a caller chosen raw salt to the adapter that
// performs the deployment, the account that requested it, and a flag that
// selects whether the resulting address is shared by every chain or unique
// per chain:
//
//	adapter (20 bytes) | flag (1 byte) | keccak256(sender, rawSalt)[:11]
//
// Because the salt starts with the adapter address, CreateX treats it as a
// permissioned salt: only the adapter itself can deploy with it.
package fortify

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// SaltLength is the byte length of raw and fortified salts.
	SaltLength = 32
	// hashLength is the number of sender/salt hash bytes kept in a fortified salt.
	hashLength = 11

	flagOffset = common.AddressLength
	hashOffset = flagOffset + 1
)

// Uniqueness flag values stored at byte 20 of a fortified salt.
const (
	FlagShared byte = 0x00
	FlagUnique byte = 0x01
)

// Salt is a 32 byte deployment salt, raw or fortified.
type Salt [SaltLength]byte

// Fortify builds the fortified salt for a deployment requested by sender
// through the adapter at adapter.
func Fortify(adapter, sender common.Address, rawSalt Salt, isUniquePerChain bool) Salt {
	var out Salt
	copy(out[:flagOffset], adapter.Bytes())
	if isUniquePerChain {
		out[flagOffset] = FlagUnique
	} else {
		out[flagOffset] = FlagShared
	}
	digest := crypto.Keccak256(sender.Bytes(), rawSalt[:])
	copy(out[hashOffset:], digest[:hashLength])
	return out
}

// Deployer returns the address prefix of the salt.
func (s Salt) Deployer() common.Address {
	return common.BytesToAddress(s[:flagOffset])
}

// Flag returns the raw uniqueness byte.
func (s Salt) Flag() byte {
	return s[flagOffset]
}

// IsUniquePerChain reports whether the salt requests a per-chain address.
func (s Salt) IsUniquePerChain() bool {
	return s[flagOffset] == FlagUnique
}

// Hash returns the salt as a common.Hash.
func (s Salt) Hash() common.Hash {
	return common.Hash(s)
}

func (s Salt) Hex() string {
	return hexutil.Encode(s[:])
}

func (s Salt) String() string {
	return s.Hex()
}

// ParseSalt decodes a 0x prefixed or bare hex string of exactly 32 bytes.
func ParseSalt(value string) (Salt, error) {
	var out Salt
	raw := value
	if len(raw) >= 2 && (raw[:2] == "0x" || raw[:2] == "0X") {
		raw = raw[2:]
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return out, fmt.Errorf("invalid salt %q: %w", value, err)
	}
	if len(decoded) != SaltLength {
		return out, fmt.Errorf("invalid salt %q: expected %d bytes, got %d", value, SaltLength, len(decoded))
	}
	copy(out[:], decoded)
	return out, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Salt) MarshalText() ([]byte, error) {
	return []byte(s.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Salt) UnmarshalText(text []byte) error {
	parsed, err := ParseSalt(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
