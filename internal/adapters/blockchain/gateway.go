package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	abiadapter "github.com/trebuchet-org/treb-multichain/internal/adapters/abi"
	"github.com/trebuchet-org/treb-multichain/internal/adapters/abi/bindings"
	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// ErrNoSigner is returned when a transaction must be signed without a key
var ErrNoSigner = errors.New("no private key configured, set MULTICHAIN_PRIVATE_KEY or [sender] private_key")

// Backend is the subset of ethclient.Client the gateway uses
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

var _ Backend = (*ethclient.Client)(nil)

// AdapterGateway sends calls and the funded deploy transaction to the
// deploy adapter on the origin network
type AdapterGateway struct {
	cfg     *config.RuntimeConfig
	adapter *bindings.CrosschainDeployAdapter
	decoder *abiadapter.EventDecoder
	key     *ecdsa.PrivateKey
	sender  common.Address
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

var _ usecase.AdapterGateway = (*AdapterGateway)(nil)

// NewAdapterGateway creates a gateway that dials the origin network on
// first use
func NewAdapterGateway(cfg *config.RuntimeConfig, log *slog.Logger) (*AdapterGateway, error) {
	return newAdapterGateway(cfg, nil, log)
}

// NewAdapterGatewayWithBackend creates a gateway over an existing backend
func NewAdapterGatewayWithBackend(cfg *config.RuntimeConfig, backend Backend, log *slog.Logger) (*AdapterGateway, error) {
	return newAdapterGateway(cfg, backend, log)
}

func newAdapterGateway(cfg *config.RuntimeConfig, backend Backend, log *slog.Logger) (*AdapterGateway, error) {
	g := &AdapterGateway{
		cfg:     cfg,
		adapter: bindings.NewCrosschainDeployAdapter(),
		decoder: abiadapter.NewEventDecoder(),
		log:     log.With("component", "gateway"),
		backend: backend,
	}
	if hexKey := strings.TrimPrefix(strings.TrimSpace(cfg.Multichain.Sender.PrivateKey), "0x"); hexKey != "" {
		key, err := crypto.HexToECDSA(hexKey)
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
		g.key = key
		g.sender = crypto.PubkeyToAddress(key.PublicKey)
	}
	return g, nil
}

func (g *AdapterGateway) connect(ctx context.Context) (Backend, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.backend != nil {
		return g.backend, nil
	}
	network, err := g.cfg.Multichain.OriginNetwork()
	if err != nil {
		return nil, err
	}
	dialCtx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()
	client, err := ethclient.DialContext(dialCtx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s RPC: %w", network.Name, err)
	}
	g.backend = client
	return client, nil
}

// ChainID returns the origin chain id
func (g *AdapterGateway) ChainID(ctx context.Context) (uint64, error) {
	id, err := g.chainIDBig(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (g *AdapterGateway) chainIDBig(ctx context.Context) (*big.Int, error) {
	backend, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	cached := g.chainID
	g.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	id, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network, err := g.cfg.Multichain.OriginNetwork(); err == nil && network.ChainID != 0 && network.ChainID != id.Uint64() {
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, id.Uint64())
	}

	g.mu.Lock()
	g.chainID = id
	g.mu.Unlock()
	return id, nil
}

// Sender is the address of the configured key, zero without one
func (g *AdapterGateway) Sender() common.Address {
	return g.sender
}

// AdapterInfo reads the immutable adapter configuration
func (g *AdapterGateway) AdapterInfo(ctx context.Context, addr common.Address) (*domain.AdapterInfo, error) {
	backend, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}
	code, err := backend.CodeAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code: %w", err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("deploy adapter %s: %w", addr.Hex(), domain.ErrNotFound)
	}

	info := &domain.AdapterInfo{Address: addr}
	if info.Factory, err = call(ctx, g, addr, g.adapter.PackFACTORY(), g.adapter.UnpackFACTORY); err != nil {
		return nil, err
	}
	if info.Bridge, err = call(ctx, g, addr, g.adapter.PackBRIDGE(), g.adapter.UnpackBRIDGE); err != nil {
		return nil, err
	}
	resourceID, err := call(ctx, g, addr, g.adapter.PackRESOURCEID(), g.adapter.UnpackRESOURCEID)
	if err != nil {
		return nil, err
	}
	info.ResourceID = common.Hash(resourceID)
	if info.DomainID, err = call(ctx, g, addr, g.adapter.PackDOMAINID(), g.adapter.UnpackDOMAINID); err != nil {
		return nil, err
	}
	return info, nil
}

// EstimateDeployGas estimates a plain creation of code from the sender
func (g *AdapterGateway) EstimateDeployGas(ctx context.Context, code []byte) (uint64, error) {
	backend, err := g.connect(ctx)
	if err != nil {
		return 0, err
	}
	return backend.EstimateGas(ctx, ethereum.CallMsg{From: g.sender, Data: code})
}

// CalculateDeployFee quotes the per destination fees
func (g *AdapterGateway) CalculateDeployFee(ctx context.Context, req *domain.DeployRequest) ([]*big.Int, error) {
	data, err := g.adapter.TryPackCalculateDeployFee(req.InitCode, req.GasLimit, req.Salt, req.IsUniquePerChain, req.ConstructorArgs, req.InitDatas, req.DomainIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to pack calculateDeployFee: %w", err)
	}
	return call(ctx, g, req.Adapter, data, g.adapter.UnpackCalculateDeployFee)
}

// Deploy signs and sends the funded deploy transaction, then waits until it
// is mined
func (g *AdapterGateway) Deploy(ctx context.Context, req *domain.DeployRequest, fees []*big.Int, opts domain.TxOptions) (*domain.DeployReceipt, error) {
	if g.key == nil {
		return nil, ErrNoSigner
	}
	backend, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}
	chainID, err := g.chainIDBig(ctx)
	if err != nil {
		return nil, err
	}

	data, err := g.adapter.TryPackDeploy(req.InitCode, req.GasLimit, req.Salt, req.IsUniquePerChain, req.ConstructorArgs, req.InitDatas, req.DomainIDs, fees)
	if err != nil {
		return nil, fmt.Errorf("failed to pack deploy: %w", err)
	}
	value := opts.Value
	if value == nil {
		value = new(big.Int)
	}
	msg := ethereum.CallMsg{From: g.sender, To: &req.Adapter, Value: value, Data: data}

	tx, err := g.buildTx(ctx, backend, chainID, msg, opts)
	if err != nil {
		return nil, err
	}
	auth := bind.NewKeyedTransactor(g.key, chainID)
	signed, err := auth.Signer(auth.From, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := backend.SendTransaction(ctx, signed); err != nil {
		return nil, g.decoder.WrapRevert(fmt.Errorf("failed to send transaction: %w", err))
	}
	g.log.Info("deploy transaction sent", "tx", signed.Hash().Hex(), "nonce", signed.Nonce(), "gas", signed.Gas(), "value", value)

	receipt, err := bind.WaitMined(ctx, backend, signed.Hash())
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", signed.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		// Replay at the mined block to recover the revert reason
		_, callErr := backend.CallContract(ctx, msg, receipt.BlockNumber)
		if callErr != nil {
			return nil, fmt.Errorf("deploy transaction %s reverted: %w", signed.Hash().Hex(), g.decoder.WrapRevert(callErr))
		}
		return nil, fmt.Errorf("deploy transaction %s reverted", signed.Hash().Hex())
	}

	return g.toDeployReceipt(receipt, req.Adapter), nil
}

// DeployReceipt loads a mined deploy transaction and decodes the events
// adapter emitted in it
func (g *AdapterGateway) DeployReceipt(ctx context.Context, txHash common.Hash, adapter common.Address) (*domain.DeployReceipt, error) {
	backend, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}
	receipt, err := backend.TransactionReceipt(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, fmt.Errorf("receipt %s: %w", txHash.Hex(), domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt %s: %w", txHash.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("deploy transaction %s reverted", txHash.Hex())
	}
	return g.toDeployReceipt(receipt, adapter), nil
}

func (g *AdapterGateway) toDeployReceipt(receipt *types.Receipt, adapter common.Address) *domain.DeployReceipt {
	out := &domain.DeployReceipt{
		TransactionHash: receipt.TxHash,
		GasUsed:         receipt.GasUsed,
		Events:          g.decoder.DecodeReceipt(receipt, adapter),
	}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return out
}

func (g *AdapterGateway) buildTx(ctx context.Context, backend Backend, chainID *big.Int, msg ethereum.CallMsg, opts domain.TxOptions) (*types.Transaction, error) {
	var err error
	nonce := uint64(0)
	if opts.Nonce != nil {
		nonce = *opts.Nonce
	} else if nonce, err = backend.PendingNonceAt(ctx, g.sender); err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	tip := opts.GasTipCap
	if tip == nil {
		if tip, err = backend.SuggestGasTipCap(ctx); err != nil {
			return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
		}
	}
	feeCap := opts.GasFeeCap
	if feeCap == nil {
		head, err := backend.HeaderByNumber(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest header: %w", err)
		}
		baseFee := head.BaseFee
		if baseFee == nil {
			baseFee = new(big.Int)
		}
		feeCap = new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(2)), tip)
	}

	gas := opts.GasLimit
	if gas == 0 {
		msg.GasTipCap, msg.GasFeeCap = tip, feeCap
		estimate, err := backend.EstimateGas(ctx, msg)
		if err != nil {
			return nil, g.decoder.WrapRevert(fmt.Errorf("failed to estimate gas: %w", err))
		}
		gas = estimate * 12 / 10
	}

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        msg.To,
		Value:     msg.Value,
		Data:      msg.Data,
	}), nil
}

func call[T any](ctx context.Context, g *AdapterGateway, to common.Address, data []byte, unpack func([]byte) (T, error)) (T, error) {
	var zero T
	backend, err := g.connect(ctx)
	if err != nil {
		return zero, err
	}
	out, err := backend.CallContract(ctx, ethereum.CallMsg{From: g.sender, To: &to, Data: data}, nil)
	if err != nil {
		return zero, g.decoder.WrapRevert(err)
	}
	return unpack(out)
}
