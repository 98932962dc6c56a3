package abi

import (
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
)

const tokenABI = `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"owner","type":"address"},{"name":"supply","type":"uint256"}]},
	{"type":"function","name":"setName","stateMutability":"nonpayable","outputs":[],"inputs":[{"name":"name","type":"string"}]},
	{"type":"function","name":"setName","stateMutability":"nonpayable","outputs":[],"inputs":[{"name":"name","type":"string"},{"name":"version","type":"uint256"}]},
	{"type":"function","name":"configure","stateMutability":"nonpayable","outputs":[],"inputs":[
		{"name":"cfg","type":"tuple","components":[{"name":"limit","type":"uint8"},{"name":"tag","type":"bytes32"}]},
		{"name":"peers","type":"address[2]"},
		{"name":"deltas","type":"int8[]"}
	]}
]`

const counterABI = `[
	{"type":"function","name":"setName","stateMutability":"nonpayable","outputs":[],"inputs":[{"name":"name","type":"string"}]}
]`

var (
	testDomains = []domain.Domain{
		{ID: 1, ChainID: 5, Name: "goerli"},
		{ID: 2, ChainID: 11155111, Name: "sepolia"},
		{ID: 6, ChainID: 17000, Name: "holesky"},
	}
	owner = common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
)

func newMapper() *ArgumentMapper {
	return NewArgumentMapper(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func word(hex string) string {
	return strings.Repeat("0", 64-len(hex)) + hex
}

func TestMapNetworkArgs(t *testing.T) {
	m := newMapper()

	args := domain.NetworkArgs{
		{
			Network:         "holesky",
			ConstructorArgs: []domain.Value{domain.Address(owner), domain.Uint(1000)},
			InitCall:        &domain.InitCall{MethodName: "setName", MethodArgs: []domain.Value{domain.String("Pepe")}},
		},
		{
			Network:         "sepolia",
			ConstructorArgs: []domain.Value{domain.String(owner.Hex()), domain.String("0x10")},
		},
	}

	out, err := m.MapNetworkArgs(tokenABI, args, testDomains)
	require.NoError(t, err)

	assert.Equal(t, []uint8{6, 2}, out.DomainIDs)
	assert.Equal(t, "holesky", out.Domains[0].Name)
	assert.Equal(t, "sepolia", out.Domains[1].Name)

	ownerWord := word(strings.ToLower(owner.Hex()[2:]))
	assert.Equal(t, ownerWord+word("3e8"), common.Bytes2Hex(out.ConstructorArgs[0]))
	assert.Equal(t, ownerWord+word("10"), common.Bytes2Hex(out.ConstructorArgs[1]))

	setName := "c47f0027" + word("20") + word("4") + "50657065" + strings.Repeat("0", 56)
	assert.Equal(t, setName, common.Bytes2Hex(out.InitDatas[0]))
	assert.Empty(t, out.InitDatas[1])
	assert.NotNil(t, out.InitDatas[1])
}

func TestMapNetworkArgsErrors(t *testing.T) {
	m := newMapper()
	ctor := []domain.Value{domain.Address(owner), domain.Uint(1)}

	tests := []struct {
		name    string
		abi     string
		args    domain.NetworkArgs
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown network with suggestion",
			abi:     counterABI,
			args:    domain.NetworkArgs{{Network: "sepoli"}, {Network: "holesky"}, {Network: "base"}},
			wantErr: domain.ErrUnknownNetwork,
			wantMsg: "Unavailable Networks in networkArgs: sepoli and base\n  sepoli: did you mean sepolia?",
		},
		{
			name:    "duplicate network",
			abi:     counterABI,
			args:    domain.NetworkArgs{{Network: "holesky"}, {Network: "holesky"}},
			wantMsg: "network holesky is listed more than once",
		},
		{
			name:    "missing constructor args",
			abi:     tokenABI,
			args:    domain.NetworkArgs{{Network: "holesky"}},
			wantErr: domain.ErrMissingConstructorArgs,
			wantMsg: "holesky: constructor: missing constructor arguments: expected 2",
		},
		{
			name:    "unexpected constructor args",
			abi:     counterABI,
			args:    domain.NetworkArgs{{Network: "goerli", ConstructorArgs: []domain.Value{domain.Uint(1)}}},
			wantErr: domain.ErrUnexpectedConstructorArgs,
		},
		{
			name:    "constructor argument count",
			abi:     tokenABI,
			args:    domain.NetworkArgs{{Network: "goerli", ConstructorArgs: []domain.Value{domain.Address(owner)}}},
			wantErr: domain.ErrArgumentCount,
		},
		{
			name: "init method not found",
			abi:  tokenABI,
			args: domain.NetworkArgs{{
				Network:         "goerli",
				ConstructorArgs: ctor,
				InitCall:        &domain.InitCall{MethodName: "initialize"},
			}},
			wantErr: domain.ErrInitMethodNotFound,
			wantMsg: "InitMethod initialize not found in ABI",
		},
		{
			name: "init argument count",
			abi:  counterABI,
			args: domain.NetworkArgs{{
				Network:  "goerli",
				InitCall: &domain.InitCall{MethodName: "setName"},
			}},
			wantErr: domain.ErrArgumentCount,
		},
		{
			name: "address from text",
			abi:  tokenABI,
			args: domain.NetworkArgs{{
				Network:         "goerli",
				ConstructorArgs: []domain.Value{domain.String("alice"), domain.Uint(1)},
			}},
			wantErr: domain.ErrArgumentType,
			wantMsg: "goerli: constructor argument owner:",
		},
		{
			name: "negative uint",
			abi:  tokenABI,
			args: domain.NetworkArgs{{
				Network:         "goerli",
				ConstructorArgs: []domain.Value{domain.Address(owner), domain.Int(-1)},
			}},
			wantErr: domain.ErrArgumentType,
		},
		{
			name:    "malformed abi",
			abi:     `{"nope"`,
			args:    domain.NetworkArgs{{Network: "goerli"}},
			wantMsg: "failed to parse ABI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := m.MapNetworkArgs(tt.abi, tt.args, testDomains)
			require.Error(t, err)
			assert.Nil(t, out)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestEncodeInitCallOverloads(t *testing.T) {
	parsed, err := ParseABI(tokenABI)
	require.NoError(t, err)

	one, err := EncodeInitCall(parsed, &domain.InitCall{MethodName: "setName", MethodArgs: []domain.Value{domain.String("Pepe")}})
	require.NoError(t, err)
	assert.Equal(t, "c47f0027", common.Bytes2Hex(one[:4]))

	two, err := EncodeInitCall(parsed, &domain.InitCall{MethodName: "setName", MethodArgs: []domain.Value{domain.String("Pepe"), domain.Uint(2)}})
	require.NoError(t, err)
	assert.Equal(t, parsed.Methods["setName0"].ID, two[:4])

	bySig, err := EncodeInitCall(parsed, &domain.InitCall{MethodName: "setName(string,uint256)", MethodArgs: []domain.Value{domain.String("Pepe"), domain.Uint(2)}})
	require.NoError(t, err)
	assert.Equal(t, two, bySig)

	empty, err := EncodeInitCall(parsed, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, empty)
}

func TestConvertComposite(t *testing.T) {
	parsed, err := ParseABI(tokenABI)
	require.NoError(t, err)

	peer := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	tag := "0x" + strings.Repeat("ab", 32)
	call := &domain.InitCall{
		MethodName: "configure",
		MethodArgs: []domain.Value{
			domain.Tuple(domain.Uint(7), domain.String(tag)),
			domain.Array(domain.Address(owner), domain.String(peer.Hex())),
			domain.Array(domain.Int(-128), domain.Int(127)),
		},
	}
	data, err := EncodeInitCall(parsed, call)
	require.NoError(t, err)

	method := parsed.Methods["configure"]
	assert.Equal(t, method.ID, data[:4])
	unpacked, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Len(t, unpacked, 3)

	peers := unpacked[1].([2]common.Address)
	assert.Equal(t, [2]common.Address{owner, peer}, peers)
	assert.Equal(t, []int8{-128, 127}, unpacked[2].([]int8))

	t.Run("fixed array length", func(t *testing.T) {
		call := *call
		call.MethodArgs = []domain.Value{call.MethodArgs[0], domain.Array(domain.Address(owner)), call.MethodArgs[2]}
		_, err := EncodeInitCall(parsed, &call)
		assert.ErrorIs(t, err, domain.ErrArgumentType)
	})

	t.Run("int8 overflow", func(t *testing.T) {
		call := *call
		call.MethodArgs = []domain.Value{call.MethodArgs[0], call.MethodArgs[1], domain.Array(domain.Int(128))}
		_, err := EncodeInitCall(parsed, &call)
		assert.ErrorIs(t, err, domain.ErrArgumentType)
	})

	t.Run("bytes32 length", func(t *testing.T) {
		call := *call
		call.MethodArgs = []domain.Value{domain.Tuple(domain.Uint(7), domain.Bytes([]byte{1})), call.MethodArgs[1], call.MethodArgs[2]}
		_, err := EncodeInitCall(parsed, &call)
		assert.ErrorIs(t, err, domain.ErrArgumentType)
	})
}

func TestToIntegerBounds(t *testing.T) {
	parsed, err := ParseABI(tokenABI)
	require.NoError(t, err)
	uint256 := parsed.Constructor.Inputs[1].Type

	maxUint := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	n, err := toInteger(uint256, domain.BigUint(maxUint))
	require.NoError(t, err)
	assert.Equal(t, maxUint, n)

	_, err = toInteger(uint256, domain.BigUint(new(big.Int).Add(maxUint, big.NewInt(1))))
	assert.ErrorIs(t, err, domain.ErrArgumentType)

	n, err = toInteger(uint256, domain.Bytes([]byte{0x01, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, int64(256), n.Int64())
}

const vaultABI = `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[
		{"name":"owner","type":"address"},
		{"name":"cap","type":"uint256"},
		{"name":"decimals","type":"uint8"},
		{"name":"offset","type":"int64"},
		{"name":"tag","type":"bytes32"},
		{"name":"blob","type":"bytes"},
		{"name":"name","type":"string"},
		{"name":"paused","type":"bool"},
		{"name":"guardians","type":"address[2]"},
		{"name":"weights","type":"uint256[]"},
		{"name":"cfg","type":"tuple","components":[{"name":"limit","type":"uint8"},{"name":"salt","type":"bytes32"}]},
		{"name":"routes","type":"tuple[]","components":[{"name":"to","type":"address"},{"name":"deltas","type":"int8[]"}]}
	]},
	{"type":"function","name":"setName","stateMutability":"nonpayable","outputs":[],"inputs":[{"name":"name","type":"string"}]},
	{"type":"function","name":"setName","stateMutability":"nonpayable","outputs":[],"inputs":[{"name":"name","type":"string"},{"name":"version","type":"uint256"}]}
]`

func TestDecodeConstructorArgsRoundTrip(t *testing.T) {
	parsed, err := ParseABI(vaultABI)
	require.NoError(t, err)

	tag := common.HexToHash("0x01").Bytes()
	guardian := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	huge, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)

	tests := []struct {
		name string
		args []domain.Value
	}{
		{
			name: "scalars and composites",
			args: []domain.Value{
				domain.Address(owner),
				domain.Uint(1_000_000),
				domain.Uint(18),
				domain.Int(-42),
				domain.Bytes(tag),
				domain.Bytes([]byte{0xde, 0xad, 0xbe, 0xef}),
				domain.String("vault"),
				domain.Bool(true),
				domain.Array(domain.Address(owner), domain.Address(guardian)),
				domain.Array(domain.Uint(1), domain.Uint(2), domain.Uint(3)),
				domain.Tuple(domain.Uint(7), domain.Bytes(tag)),
				domain.Array(
					domain.Tuple(domain.Address(guardian), domain.Array(domain.Int(-1), domain.Int(127))),
					domain.Tuple(domain.Address(owner), domain.Array()),
				),
			},
		},
		{
			name: "zero values and bounds",
			args: []domain.Value{
				domain.Address(common.Address{}),
				domain.BigUint(huge),
				domain.Uint(0),
				domain.Int(-9_223_372_036_854_775_808),
				domain.Bytes(make([]byte, 32)),
				domain.Bytes([]byte{}),
				domain.String(""),
				domain.Bool(false),
				domain.Array(domain.Address(guardian), domain.Address(guardian)),
				domain.Array(),
				domain.Tuple(domain.Uint(255), domain.Bytes(make([]byte, 32))),
				domain.Array(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeConstructorArgs(parsed, tt.args)
			require.NoError(t, err)

			decoded, err := DecodeConstructorArgs(parsed, encoded)
			require.NoError(t, err)
			assert.True(t, domain.ValuesEqual(tt.args, decoded), "got %v", decoded)
		})
	}
}

func TestDecodeMappedNetworkArgs(t *testing.T) {
	parsed, err := ParseABI(tokenABI)
	require.NoError(t, err)

	args := domain.NetworkArgs{
		{
			Network:         "holesky",
			ConstructorArgs: []domain.Value{domain.Address(owner), domain.Uint(1000)},
			InitCall:        &domain.InitCall{MethodName: "setName", MethodArgs: []domain.Value{domain.String("Pepe"), domain.Uint(2)}},
		},
		{
			Network: "goerli",
			// quoted scalars decode to their canonical kinds
			ConstructorArgs: []domain.Value{domain.String(owner.Hex()), domain.String("0x10")},
		},
	}
	encoded, err := newMapper().MapNetworkArgs(tokenABI, args, testDomains)
	require.NoError(t, err)

	holesky, err := DecodeConstructorArgs(parsed, encoded.ConstructorArgs[0])
	require.NoError(t, err)
	assert.True(t, domain.ValuesEqual(args[0].ConstructorArgs, holesky))

	call, err := DecodeInitCall(parsed, encoded.InitDatas[0])
	require.NoError(t, err)
	require.NotNil(t, call)
	assert.Equal(t, "setName", call.MethodName)
	assert.True(t, domain.ValuesEqual(args[0].InitCall.MethodArgs, call.MethodArgs))

	goerli, err := DecodeConstructorArgs(parsed, encoded.ConstructorArgs[1])
	require.NoError(t, err)
	assert.True(t, domain.ValuesEqual([]domain.Value{domain.Address(owner), domain.Uint(16)}, goerli))

	call, err = DecodeInitCall(parsed, encoded.InitDatas[1])
	require.NoError(t, err)
	assert.Nil(t, call)
}

func TestDecodeConstructorArgsErrors(t *testing.T) {
	token, err := ParseABI(tokenABI)
	require.NoError(t, err)
	_, err = DecodeConstructorArgs(token, []byte{0x01})
	assert.Error(t, err)

	counter, err := ParseABI(counterABI)
	require.NoError(t, err)
	values, err := DecodeConstructorArgs(counter, nil)
	require.NoError(t, err)
	assert.Empty(t, values)
	_, err = DecodeConstructorArgs(counter, []byte{0x01})
	assert.ErrorIs(t, err, domain.ErrUnexpectedConstructorArgs)

	_, err = DecodeInitCall(counter, []byte{0x01, 0x02})
	assert.Error(t, err)
	_, err = DecodeInitCall(counter, []byte{0xde, 0xad, 0xbe, 0xef})
	assert.Error(t, err)
}
