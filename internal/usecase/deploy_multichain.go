package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/pkg/fortify"
)

// Remote executions get this much headroom over a plain creation estimate.
const (
	gasHeadroomNum = 14
	gasHeadroomDen = 10
)

// DeployMultichainParams deploys a contract by artifact name.
type DeployMultichainParams struct {
	ContractName string
	NetworkArgs  domain.NetworkArgs
	Options      domain.DeployOptions
}

// DeployBytecodeParams deploys raw bytecode with its ABI.
type DeployBytecodeParams struct {
	Bytecode    []byte
	ABI         string
	NetworkArgs domain.NetworkArgs
	Options     domain.DeployOptions
	// Contract labels the deployment in the journal
	Contract string
}

// DeployMultichain is the multichain deployment orchestrator. It is built
// without I/O; Initialize must complete before any other method is used.
type DeployMultichain struct {
	cfg       *config.RuntimeConfig
	registry  DomainRegistry
	chains    ChainIDResolver
	gateway   AdapterGateway
	mapper    ArgumentMapper
	artifacts ArtifactRepository
	status    TransferStatusProvider
	journal   DeploymentJournal
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger

	mu    sync.Mutex
	state *orchestratorState
}

type orchestratorState struct {
	domains       []domain.Domain
	byID          map[uint8]domain.Domain
	originChainID uint64
	adapter       *domain.AdapterInfo
}

// NewDeployMultichain creates the orchestrator
func NewDeployMultichain(
	cfg *config.RuntimeConfig,
	registry DomainRegistry,
	chains ChainIDResolver,
	gateway AdapterGateway,
	mapper ArgumentMapper,
	artifacts ArtifactRepository,
	status TransferStatusProvider,
	journal DeploymentJournal,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployMultichain {
	if progress == nil {
		progress = NopProgress{}
	}
	return &DeployMultichain{
		cfg:       cfg,
		registry:  registry,
		chains:    chains,
		gateway:   gateway,
		mapper:    mapper,
		artifacts: artifacts,
		status:    status,
		journal:   journal,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "orchestrator"),
	}
}

// Initialize fetches the domain registry, checks that the origin and every
// deployment network are routed by the bridge and reads the adapter
// configuration.
// It runs once; later calls return immediately.
func (uc *DeployMultichain) Initialize(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state != nil {
		return nil
	}

	mc := uc.cfg.Multichain
	domains, err := uc.registry.Domains(ctx, mc.Environment)
	if err != nil {
		return fmt.Errorf("failed to load %s domains: %w", mc.Environment, err)
	}
	byID := lo.KeyBy(domains, func(d domain.Domain) uint8 { return d.ID })
	routed := lo.SliceToMap(domains, func(d domain.Domain) (uint64, bool) { return d.ChainID, true })

	var unrouted []domain.NetworkRef
	for _, name := range mc.DeploymentNetworks {
		network, ok := mc.Networks[name]
		if !ok {
			return &domain.MissingNetworksError{Networks: []string{name}}
		}
		chainID, err := uc.chains.ChainID(ctx, network)
		if err != nil {
			return fmt.Errorf("failed to resolve chain id of %s: %w", name, err)
		}
		if !routed[chainID] {
			unrouted = append(unrouted, domain.NetworkRef{Name: name, ChainID: chainID})
		}
	}

	originChainID, err := uc.gateway.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to read origin chain id: %w", err)
	}
	if !routed[originChainID] && !lo.ContainsBy(unrouted, func(n domain.NetworkRef) bool { return n.ChainID == originChainID }) {
		unrouted = append(unrouted, domain.NetworkRef{Name: mc.Network, ChainID: originChainID})
	}
	if len(unrouted) > 0 {
		return &domain.UnroutedNetworksError{Environment: mc.Environment, Networks: unrouted}
	}

	adapter, err := uc.gateway.AdapterInfo(ctx, mc.AdapterAddress)
	if err != nil {
		return fmt.Errorf("failed to read adapter %s: %w", mc.AdapterAddress.Hex(), err)
	}

	uc.state = &orchestratorState{
		domains:       domains,
		byID:          byID,
		originChainID: originChainID,
		adapter:       adapter,
	}
	uc.log.Debug("initialized", "environment", mc.Environment, "domains", len(domains), "origin_chain", originChainID, "local_domain", adapter.DomainID)
	return nil
}

func (uc *DeployMultichain) initialized() (*orchestratorState, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state == nil {
		return nil, domain.ErrNotInitialized
	}
	return uc.state, nil
}

// Domains returns the registry loaded by Initialize.
func (uc *DeployMultichain) Domains() ([]domain.Domain, error) {
	st, err := uc.initialized()
	if err != nil {
		return nil, err
	}
	return st.domains, nil
}

// Deploy loads the named artifact and deploys it.
func (uc *DeployMultichain) Deploy(ctx context.Context, params DeployMultichainParams) (*domain.DeployResult, error) {
	if _, err := uc.initialized(); err != nil {
		return nil, err
	}
	artifact, err := uc.artifacts.GetArtifact(ctx, params.ContractName)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", params.ContractName, err)
	}
	return uc.DeployBytecode(ctx, DeployBytecodeParams{
		Bytecode:    artifact.Bytecode,
		ABI:         artifact.ABI,
		NetworkArgs: params.NetworkArgs,
		Options:     params.Options,
		Contract:    artifact.Name,
	})
}

// DeployBytecode encodes the per network arguments, quotes the fees and
// submits one funded transaction. It does not wait for remote execution.
func (uc *DeployMultichain) DeployBytecode(ctx context.Context, params DeployBytecodeParams) (*domain.DeployResult, error) {
	st, err := uc.initialized()
	if err != nil {
		return nil, err
	}
	if len(params.Bytecode) == 0 {
		return nil, fmt.Errorf("empty bytecode")
	}
	opts := params.Options

	encoded, err := uc.mapper.MapNetworkArgs(params.ABI, params.NetworkArgs, st.domains)
	if err != nil {
		return nil, err
	}

	adapter, err := uc.adapterFor(ctx, st, opts.AdapterAddress)
	if err != nil {
		return nil, err
	}

	salt, err := saltOrRandom(opts.Salt)
	if err != nil {
		return nil, err
	}

	req := &domain.DeployRequest{
		Adapter:          adapter.Address,
		InitCode:         params.Bytecode,
		GasLimit:         new(big.Int).SetUint64(uc.gasLimit(ctx, opts.GasLimit, params.Bytecode, encoded)),
		Salt:             salt,
		IsUniquePerChain: opts.IsUniquePerChain,
		ConstructorArgs:  encoded.ConstructorArgs,
		InitDatas:        encoded.InitDatas,
		DomainIDs:        encoded.DomainIDs,
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "fees", Message: "Quoting bridge fees", Spinner: true})
	fees, err := uc.gateway.CalculateDeployFee(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate deploy fee: %w", err)
	}
	if len(fees) != len(req.DomainIDs) {
		return nil, fmt.Errorf("%w: %d fees for %d domains", domain.ErrFeeMismatch, len(fees), len(req.DomainIDs))
	}
	total := SumFees(fees)

	sender := uc.gateway.Sender()
	result := &domain.DeployResult{
		DomainIDs:          req.DomainIDs,
		Salt:               salt,
		FortifiedSalt:      fortify.Fortify(adapter.Address, sender, salt, opts.IsUniquePerChain),
		Fees:               fees,
		PredictedAddresses: make(map[uint8]common.Address, len(encoded.Domains)),
	}
	for _, d := range encoded.Domains {
		_, addr, err := fortify.Predict(adapter.Factory, adapter.Address, sender, salt, opts.IsUniquePerChain, new(big.Int).SetUint64(d.ChainID))
		if err != nil {
			return nil, fmt.Errorf("failed to predict address on %s: %w", d.Name, err)
		}
		result.PredictedAddresses[d.ID] = addr
		if d.ID != adapter.DomainID {
			uc.log.Info("predicted remote address", "network", d.Name, "domain", d.ID, "address", addr.Hex())
		}
	}

	if opts.DryRun {
		result.DryRun = true
		return result, nil
	}

	if err := uc.confirm(ctx, encoded, total); err != nil {
		return nil, err
	}

	txOpts := opts.TxOptions
	if txOpts.Value != nil && txOpts.Value.Cmp(total) != 0 {
		uc.log.Warn("ignoring caller supplied value, paying the quoted fees", "value", txOpts.Value, "fees", total)
	}
	txOpts.Value = total

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "deploy", Message: "Submitting deploy transaction", Spinner: true})
	receipt, err := uc.gateway.Deploy(ctx, req, fees, txOpts)
	if err != nil {
		return nil, fmt.Errorf("deploy transaction failed: %w", err)
	}
	result.TransactionHash = receipt.TransactionHash
	result.Events = receipt.Events
	for _, ev := range receipt.Events {
		if ev.Type != domain.EventDeployed {
			continue
		}
		if predicted := result.PredictedAddresses[adapter.DomainID]; predicted != ev.NewContract {
			uc.log.Warn("local deployment differs from prediction", "predicted", predicted.Hex(), "actual", ev.NewContract.Hex())
			result.PredictedAddresses[adapter.DomainID] = ev.NewContract
		}
	}
	uc.log.Info("deploy transaction mined", "tx", receipt.TransactionHash.Hex(), "block", receipt.BlockNumber, "domains", req.DomainIDs, "fees", total)

	uc.record(ctx, st, params.Contract, sender, adapter, encoded, result, opts.IsUniquePerChain)
	return result, nil
}

func (uc *DeployMultichain) adapterFor(ctx context.Context, st *orchestratorState, override *common.Address) (*domain.AdapterInfo, error) {
	if override == nil || *override == st.adapter.Address {
		return st.adapter, nil
	}
	info, err := uc.gateway.AdapterInfo(ctx, *override)
	if err != nil {
		return nil, fmt.Errorf("failed to read adapter %s: %w", override.Hex(), err)
	}
	return info, nil
}

// gasLimit picks the gas forwarded to remote executions: the explicit
// option, else 1.4x a creation estimate, else the configured default.
func (uc *DeployMultichain) gasLimit(ctx context.Context, explicit uint64, bytecode []byte, encoded *domain.EncodedArgs) uint64 {
	if explicit > 0 {
		return explicit
	}
	code := bytecode
	if len(encoded.ConstructorArgs) > 0 {
		code = append(append([]byte{}, bytecode...), encoded.ConstructorArgs[0]...)
	}
	estimate, err := uc.gateway.EstimateDeployGas(ctx, code)
	if err != nil || estimate == 0 {
		uc.log.Warn("gas estimation failed, using configured gas limit", "error", err, "gas_limit", uc.cfg.Multichain.GasLimit)
		return uc.cfg.Multichain.GasLimit
	}
	return estimate * gasHeadroomNum / gasHeadroomDen
}

func (uc *DeployMultichain) confirm(ctx context.Context, encoded *domain.EncodedArgs, total *big.Int) error {
	if uc.confirmer == nil || uc.cfg.AutoConfirm || uc.cfg.NonInteractive {
		return nil
	}
	names := lo.Map(encoded.Domains, func(d domain.Domain, _ int) string { return d.Name })
	ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy to %s paying %s ETH in bridge fees", domain.JoinAnd(names), FormatEther(total)))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCancelled
	}
	return nil
}

func (uc *DeployMultichain) record(ctx context.Context, st *orchestratorState, contract string, sender common.Address, adapter *domain.AdapterInfo, encoded *domain.EncodedArgs, result *domain.DeployResult, unique bool) {
	if uc.journal == nil {
		return
	}
	rec := &domain.DeploymentRecord{
		ID:                 uuid.NewString(),
		Environment:        uc.cfg.Multichain.Environment,
		OriginChainID:      st.originChainID,
		TransactionHash:    result.TransactionHash,
		Contract:           contract,
		Sender:             sender,
		Adapter:            adapter.Address,
		Salt:               result.Salt,
		FortifiedSalt:      result.FortifiedSalt,
		IsUniquePerChain:   unique,
		DomainIDs:          result.DomainIDs,
		Networks:           lo.Map(encoded.Domains, func(d domain.Domain, _ int) string { return d.Name }),
		PredictedAddresses: result.PredictedAddresses,
		CreatedAt:          time.Now().UTC(),
	}
	if err := uc.journal.Save(ctx, rec); err != nil {
		uc.log.Warn("failed to record deployment", "tx", result.TransactionHash.Hex(), "error", err)
	}
}

func saltOrRandom(salt *fortify.Salt) (fortify.Salt, error) {
	if salt != nil {
		return *salt, nil
	}
	var out fortify.Salt
	if _, err := rand.Read(out[:]); err != nil {
		return out, fmt.Errorf("failed to generate salt: %w", err)
	}
	return out, nil
}

// SumFees adds up a fee vector. Nil entries count as zero.
func SumFees(fees []*big.Int) *big.Int {
	return lo.Reduce(fees, func(acc *big.Int, fee *big.Int, _ int) *big.Int {
		if fee == nil {
			return acc
		}
		return acc.Add(acc, fee)
	}, new(big.Int))
}

// FormatEther renders wei as a decimal ether amount.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	f := new(big.Float).SetPrec(256).SetInt(wei)
	f.Quo(f, new(big.Float).SetInt64(params.Ether))
	return f.Text('f', 18)
}
