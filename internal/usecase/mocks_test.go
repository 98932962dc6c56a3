package usecase_test

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// MockRegistry is a mock implementation of DomainRegistry
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Domains(ctx context.Context, env domain.Environment) ([]domain.Domain, error) {
	args := m.Called(ctx, env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Domain), args.Error(1)
}

// MockChainResolver is a mock implementation of ChainIDResolver
type MockChainResolver struct {
	mock.Mock
}

func (m *MockChainResolver) ChainID(ctx context.Context, network *config.Network) (uint64, error) {
	args := m.Called(ctx, network.Name)
	return args.Get(0).(uint64), args.Error(1)
}

// MockGateway is a mock implementation of AdapterGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ChainID(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockGateway) Sender() common.Address {
	return m.Called().Get(0).(common.Address)
}

func (m *MockGateway) AdapterInfo(ctx context.Context, adapter common.Address) (*domain.AdapterInfo, error) {
	args := m.Called(ctx, adapter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdapterInfo), args.Error(1)
}

func (m *MockGateway) EstimateDeployGas(ctx context.Context, code []byte) (uint64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockGateway) CalculateDeployFee(ctx context.Context, req *domain.DeployRequest) ([]*big.Int, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*big.Int), args.Error(1)
}

func (m *MockGateway) Deploy(ctx context.Context, req *domain.DeployRequest, fees []*big.Int, opts domain.TxOptions) (*domain.DeployReceipt, error) {
	args := m.Called(ctx, req, fees, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeployReceipt), args.Error(1)
}

func (m *MockGateway) DeployReceipt(ctx context.Context, txHash common.Hash, adapter common.Address) (*domain.DeployReceipt, error) {
	args := m.Called(ctx, txHash, adapter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeployReceipt), args.Error(1)
}

// MockMapper is a mock implementation of ArgumentMapper
type MockMapper struct {
	mock.Mock
}

func (m *MockMapper) MapNetworkArgs(contractABI string, networkArgs domain.NetworkArgs, domains []domain.Domain) (*domain.EncodedArgs, error) {
	args := m.Called(contractABI, networkArgs, domains)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EncodedArgs), args.Error(1)
}

// MockArtifacts is a mock implementation of ArtifactRepository
type MockArtifacts struct {
	mock.Mock
}

func (m *MockArtifacts) GetArtifact(ctx context.Context, name string) (*domain.Artifact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

// MockStatus is a mock implementation of TransferStatusProvider
type MockStatus struct {
	mock.Mock
}

func (m *MockStatus) TransferStatus(ctx context.Context, env domain.Environment, txHash common.Hash, domainID uint8) (*domain.Transfer, error) {
	args := m.Called(ctx, env, txHash, domainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockStatus) ExplorerURL(env domain.Environment, txHash common.Hash) string {
	return m.Called(env, txHash).String(0)
}

// MockJournal is a mock implementation of DeploymentJournal
type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Save(ctx context.Context, record *domain.DeploymentRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockJournal) Get(ctx context.Context, txHash common.Hash) (*domain.DeploymentRecord, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeploymentRecord), args.Error(1)
}

func (m *MockJournal) List(ctx context.Context) ([]*domain.DeploymentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DeploymentRecord), args.Error(1)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}
