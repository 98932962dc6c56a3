package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

const (
	TrebDir        = ".treb"
	JournalFile    = "multichain.json"
	journalVersion = "1.0.0"
)

// journalFile is the on-disk layout of the deployment journal
type journalFile struct {
	Version     string                              `json:"version"`
	Deployments map[string]*domain.DeploymentRecord `json:"deployments"`
}

// FileRepository stores submitted deployments in .treb/multichain.json,
// keyed by origin transaction hash
type FileRepository struct {
	dataDir     string
	mu          sync.RWMutex
	deployments map[common.Hash]*domain.DeploymentRecord
	byContract  map[string][]common.Hash
}

// NewFileRepository loads the journal kept in dataDir
func NewFileRepository(dataDir string) (*FileRepository, error) {
	m := &FileRepository{
		dataDir:     dataDir,
		deployments: make(map[common.Hash]*domain.DeploymentRecord),
		byContract:  make(map[string][]common.Hash),
	}
	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load deployment journal: %w", err)
	}
	return m, nil
}

// NewFileRepositoryFromConfig creates a new FileRepository from RuntimeConfig
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) (*FileRepository, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(cfg.ProjectRoot, TrebDir)
	}
	return NewFileRepository(dataDir)
}

// Path is the journal file location
func (m *FileRepository) Path() string {
	return filepath.Join(m.dataDir, JournalFile)
}

func (m *FileRepository) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var file journalFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%s: %w", m.Path(), err)
	}
	for key, record := range file.Deployments {
		if record == nil {
			continue
		}
		if record.TransactionHash == (common.Hash{}) {
			record.TransactionHash = common.HexToHash(key)
		}
		m.deployments[record.TransactionHash] = record
	}
	m.rebuildLookups()
	return nil
}

// save writes the journal atomically. Callers hold the write lock.
func (m *FileRepository) save() error {
	if err := os.MkdirAll(m.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", m.dataDir, err)
	}

	file := journalFile{
		Version:     journalVersion,
		Deployments: make(map[string]*domain.DeploymentRecord, len(m.deployments)),
	}
	for hash, record := range m.deployments {
		file.Deployments[hash.Hex()] = record
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	path := m.Path()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func (m *FileRepository) rebuildLookups() {
	m.byContract = make(map[string][]common.Hash)
	for hash, record := range m.deployments {
		if record.Contract == "" {
			continue
		}
		key := strings.ToLower(record.Contract)
		m.byContract[key] = append(m.byContract[key], hash)
	}
}

// Save records a deployment, replacing any entry with the same hash
func (m *FileRepository) Save(ctx context.Context, record *domain.DeploymentRecord) error {
	if record.TransactionHash == (common.Hash{}) {
		return fmt.Errorf("deployment record without transaction hash")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.deployments[record.TransactionHash] = record
	m.rebuildLookups()
	return m.save()
}

// Get returns the deployment submitted in txHash
func (m *FileRepository) Get(ctx context.Context, txHash common.Hash) (*domain.DeploymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.deployments[txHash]
	if !ok {
		return nil, fmt.Errorf("deployment %s: %w", txHash.Hex(), domain.ErrNotFound)
	}
	return record, nil
}

// List returns every recorded deployment, oldest first
func (m *FileRepository) List(ctx context.Context) ([]*domain.DeploymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*domain.DeploymentRecord, 0, len(m.deployments))
	for _, record := range m.deployments {
		records = append(records, record)
	}
	slices.SortFunc(records, compareRecords)
	return records, nil
}

// ByContract returns the deployments of a contract, oldest first
func (m *FileRepository) ByContract(ctx context.Context, contract string) []*domain.DeploymentRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []*domain.DeploymentRecord
	for _, hash := range m.byContract[strings.ToLower(contract)] {
		records = append(records, m.deployments[hash])
	}
	slices.SortFunc(records, compareRecords)
	return records
}

func compareRecords(a, b *domain.DeploymentRecord) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.TransactionHash.Hex(), b.TransactionHash.Hex())
}

var _ usecase.DeploymentJournal = (*FileRepository)(nil)
