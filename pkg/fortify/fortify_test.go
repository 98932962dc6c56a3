package fortify

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adapter = common.HexToAddress("0x85d62ad850b322152bf4ad9147bfbf097da42217")
	factory = common.HexToAddress("0xba5Ed099633D3B313e4D5F7bdc1305d3c28ba5Ed")
	alice   = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	bob     = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func mustSalt(t *testing.T, s string) Salt {
	t.Helper()
	salt, err := ParseSalt(s)
	require.NoError(t, err)
	return salt
}

func TestFortifyLayout(t *testing.T) {
	raw := mustSalt(t, "0xcafe00000000000000000000000000000000000000000000000000000000cafe")

	for _, unique := range []bool{false, true} {
		salt := Fortify(adapter, alice, raw, unique)

		assert.Equal(t, adapter, salt.Deployer())
		assert.Equal(t, unique, salt.IsUniquePerChain())

		packed := append(append([]byte{}, alice.Bytes()...), raw[:]...)
		digest := crypto.Keccak256(packed)
		assert.Equal(t, digest[:11], salt[21:])
	}
}

func TestFortifyChangesWithEveryInput(t *testing.T) {
	raw := mustSalt(t, "0xcafe00000000000000000000000000000000000000000000000000000000cafe")
	other := mustSalt(t, "0xbeef00000000000000000000000000000000000000000000000000000000beef")

	base := Fortify(adapter, alice, raw, false)
	assert.Equal(t, base, Fortify(adapter, alice, raw, false), "deterministic")

	assert.NotEqual(t, base, Fortify(adapter, bob, raw, false), "sender")
	assert.NotEqual(t, base, Fortify(adapter, alice, other, false), "salt")
	assert.NotEqual(t, base, Fortify(adapter, alice, raw, true), "flag")
	assert.NotEqual(t, base, Fortify(factory, alice, raw, false), "adapter")
}

func TestComputeAddress(t *testing.T) {
	raw := mustSalt(t, "0xcafe00000000000000000000000000000000000000000000000000000000cafe")

	t.Run("shared salt gives the same address on every chain", func(t *testing.T) {
		salt := Fortify(adapter, alice, raw, false)
		onOne, err := ComputeAddressForChain(factory, adapter, salt, big.NewInt(1))
		require.NoError(t, err)
		onTwo, err := ComputeAddressForChain(factory, adapter, salt, big.NewInt(11155111))
		require.NoError(t, err)
		anywhere, err := ComputeAddress(factory, adapter, salt)
		require.NoError(t, err)

		assert.Equal(t, onOne, onTwo)
		assert.Equal(t, onOne, anywhere)
	})

	t.Run("unique salt differs per chain", func(t *testing.T) {
		salt := Fortify(adapter, alice, raw, true)
		onOne, err := ComputeAddressForChain(factory, adapter, salt, big.NewInt(1))
		require.NoError(t, err)
		onTwo, err := ComputeAddressForChain(factory, adapter, salt, big.NewInt(5))
		require.NoError(t, err)
		assert.NotEqual(t, onOne, onTwo)

		_, err = ComputeAddress(factory, adapter, salt)
		assert.ErrorIs(t, err, ErrChainIDRequired)
	})

	t.Run("unique and shared families are disjoint", func(t *testing.T) {
		chainID := big.NewInt(10)
		_, shared, err := Predict(factory, adapter, alice, raw, false, chainID)
		require.NoError(t, err)
		_, unique, err := Predict(factory, adapter, alice, raw, true, chainID)
		require.NoError(t, err)
		assert.NotEqual(t, shared, unique)
	})
}

func TestGuardSalt(t *testing.T) {
	raw := mustSalt(t, "0x0101010101010101010101010101010101010101010101010101010101010101")
	chainID := big.NewInt(17000)

	t.Run("caller shared", func(t *testing.T) {
		salt := Fortify(adapter, alice, raw, false)
		got, err := GuardSalt(adapter, salt, chainID)
		require.NoError(t, err)
		want := crypto.Keccak256Hash(common.LeftPadBytes(adapter.Bytes(), 32), salt[:])
		assert.Equal(t, want, got)
	})

	t.Run("caller unique", func(t *testing.T) {
		salt := Fortify(adapter, alice, raw, true)
		got, err := GuardSalt(adapter, salt, chainID)
		require.NoError(t, err)
		want := crypto.Keccak256Hash(
			common.LeftPadBytes(adapter.Bytes(), 32),
			common.LeftPadBytes(chainID.Bytes(), 32),
			salt[:],
		)
		assert.Equal(t, want, got)
	})

	t.Run("caller with unknown flag", func(t *testing.T) {
		salt := Fortify(adapter, alice, raw, false)
		salt[20] = 0x07
		_, err := GuardSalt(adapter, salt, chainID)
		assert.ErrorIs(t, err, ErrInvalidSalt)
	})

	t.Run("foreign prefix is hashed", func(t *testing.T) {
		salt := Fortify(adapter, alice, raw, false)
		got, err := GuardSalt(bob, salt, chainID)
		require.NoError(t, err)
		assert.Equal(t, crypto.Keccak256Hash(salt[:]), got)
	})
}

func TestCreate3Address(t *testing.T) {
	guarded := crypto.Keccak256Hash([]byte("guarded"))

	proxyPreimage := append([]byte{0xff}, factory.Bytes()...)
	proxyPreimage = append(proxyPreimage, guarded.Bytes()...)
	proxyPreimage = append(proxyPreimage, ProxyInitCodeHash.Bytes()...)
	proxy := common.BytesToAddress(crypto.Keccak256(proxyPreimage)[12:])

	rlp := append([]byte{0xd6, 0x94}, proxy.Bytes()...)
	rlp = append(rlp, 0x01)
	want := common.BytesToAddress(crypto.Keccak256(rlp)[12:])

	assert.Equal(t, want, Create3Address(factory, guarded))
}

func TestParseSalt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "prefixed", input: "0xab" + strings.Repeat("00", 31)},
		{name: "bare", input: "cafe00000000000000000000000000000000000000000000000000000000cafe"},
		{name: "short", input: "0xcafe", wantErr: true},
		{name: "not hex", input: "0xzz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salt, err := ParseSalt(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			roundTrip, err := ParseSalt(salt.Hex())
			require.NoError(t, err)
			assert.Equal(t, salt, roundTrip)
		})
	}
}
