package crosschain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDepositData(t *testing.T) {
	target := testLayout().Adapter
	salt := DefaultLayout().ResourceID

	data, err := PrepareDepositData(target, uint256.NewInt(21_000), initCode, nil, [32]byte(salt))
	require.NoError(t, err)

	decoded, err := DecodeDepositData(data)
	require.NoError(t, err)
	assert.Equal(t, adapterABI.ExecuteSelector(), decoded.Selector)

	input, err := adapterABI.UnpackExecuteInput(decoded.ExecuteCalldata()[4:])
	require.NoError(t, err)
	assert.Equal(t, target, input.OriginDepositor)
	assert.Equal(t, initCode, input.InitCode)
	assert.Empty(t, input.InitData)
	assert.Equal(t, [32]byte(salt), input.FortifiedSalt)

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{0, 31, 33, 38, 40, 60} {
			_, err := DecodeDepositData(data[:n])
			assert.ErrorIs(t, err, ErrInvalidDepositData, "length %d", n)
		}
	})

	t.Run("bad address length", func(t *testing.T) {
		broken := append([]byte{}, data...)
		broken[38] = 0x13
		_, err := DecodeDepositData(broken)
		assert.ErrorIs(t, err, ErrInvalidDepositData)
	})

	t.Run("handler rejects a foreign depositor", func(t *testing.T) {
		h := NewGenericHandler(common.Address{1}, common.Address{2})
		_, err := h.Deposit(nil, Msg{Sender: common.Address{2}}, common.Hash{}, common.Address{3}, data)
		assert.ErrorIs(t, err, ErrIncorrectDepositor)
	})
}
