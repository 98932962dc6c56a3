package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
)

// DomainRegistry supplies the bridge domains of an environment
type DomainRegistry interface {
	Domains(ctx context.Context, env domain.Environment) ([]domain.Domain, error)
}

// ChainIDResolver resolves the chain id of a configured network
type ChainIDResolver interface {
	ChainID(ctx context.Context, network *config.Network) (uint64, error)
}

// AdapterGateway talks to the deploy adapter on the origin chain
type AdapterGateway interface {
	// ChainID returns the chain id of the origin network
	ChainID(ctx context.Context) (uint64, error)
	// Sender is the account that signs the funded transaction
	Sender() common.Address
	// AdapterInfo reads the immutable adapter configuration
	AdapterInfo(ctx context.Context, adapter common.Address) (*domain.AdapterInfo, error)
	// EstimateDeployGas estimates a plain creation of code
	EstimateDeployGas(ctx context.Context, code []byte) (uint64, error)
	// CalculateDeployFee quotes the fee vector for req
	CalculateDeployFee(ctx context.Context, req *domain.DeployRequest) ([]*big.Int, error)
	// Deploy submits the funded deploy transaction and waits for it to be mined
	Deploy(ctx context.Context, req *domain.DeployRequest, fees []*big.Int, opts domain.TxOptions) (*domain.DeployReceipt, error)
	// DeployReceipt loads a mined deploy transaction with its adapter events
	DeployReceipt(ctx context.Context, txHash common.Hash, adapter common.Address) (*domain.DeployReceipt, error)
}

// TransferStatusProvider reads the bridge status service
type TransferStatusProvider interface {
	TransferStatus(ctx context.Context, env domain.Environment, txHash common.Hash, domainID uint8) (*domain.Transfer, error)
	ExplorerURL(env domain.Environment, txHash common.Hash) string
}

// ArtifactRepository loads compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*domain.Artifact, error)
}

// ArtifactSelector disambiguates artifacts sharing a contract name
type ArtifactSelector interface {
	SelectArtifact(ctx context.Context, artifacts []*domain.Artifact, prompt string) (*domain.Artifact, error)
}

// ArgumentMapper encodes per network arguments against an ABI
type ArgumentMapper interface {
	MapNetworkArgs(contractABI string, args domain.NetworkArgs, domains []domain.Domain) (*domain.EncodedArgs, error)
}

// DeploymentJournal records submitted deployments
type DeploymentJournal interface {
	Save(ctx context.Context, record *domain.DeploymentRecord) error
	Get(ctx context.Context, txHash common.Hash) (*domain.DeploymentRecord, error)
	List(ctx context.Context) ([]*domain.DeploymentRecord, error)
}

// Confirmer asks the user before funded transactions are sent
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
