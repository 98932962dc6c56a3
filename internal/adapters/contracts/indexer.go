package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sahilm/fuzzy"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// Default artifact folders of Foundry and Hardhat projects
var defaultArtifactDirs = []string{"out", "artifacts"}

// Indexer discovers compiled contracts in the artifact folders
type Indexer struct {
	projectRoot string
	dirs        []string
	selector    usecase.ArtifactSelector
	log         *slog.Logger

	mu        sync.RWMutex
	indexed   bool
	artifacts map[string]*domain.Artifact   // key: "path:Name" or "Name" if unique
	byName    map[string][]*domain.Artifact // key: contract name
	unlinked  map[string]string             // key: "path:Name", value: artifact file
}

var _ usecase.ArtifactRepository = (*Indexer)(nil)

// NewIndexer creates an indexer over the configured artifacts directory,
// or over out/ and artifacts/ when none is set. selector may be nil.
func NewIndexer(cfg *config.RuntimeConfig, selector usecase.ArtifactSelector, log *slog.Logger) *Indexer {
	dirs := defaultArtifactDirs
	if cfg.Multichain != nil && cfg.Multichain.ArtifactsDir != "" {
		dirs = []string{cfg.Multichain.ArtifactsDir}
	}
	return &Indexer{
		projectRoot: cfg.ProjectRoot,
		dirs:        dirs,
		selector:    selector,
		log:         log.With("component", "artifacts"),
	}
}

// Index walks the artifact folders and rebuilds the index
func (i *Indexer) Index() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.artifacts = make(map[string]*domain.Artifact)
	i.byName = make(map[string][]*domain.Artifact)
	i.unlinked = make(map[string]string)

	found := false
	for _, dir := range i.dirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(i.projectRoot, dir)
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}
		found = true

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}
			return i.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", root, err)
		}
	}
	if !found {
		return fmt.Errorf("no artifacts directory found (looked for %s), build the project first", strings.Join(i.dirs, ", "))
	}

	i.indexed = true
	i.log.Debug("indexed artifacts", "contracts", len(i.byName))
	return nil
}

// artifactFile covers the Foundry and Hardhat artifact layouts. Foundry
// nests the bytecode in an object, Hardhat stores the hex string.
type artifactFile struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
	Metadata     json.RawMessage `json:"metadata"`
}

type foundryBytecode struct {
	Object string `json:"object"`
}

type foundryMetadata struct {
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// processArtifact indexes a single artifact file. Files that are not
// contract artifacts are skipped.
func (i *Indexer) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil || len(file.ABI) == 0 || len(file.Bytecode) == 0 {
		return nil
	}

	bytecode, name, source := i.resolveLayout(path, &file)
	if name == "" || bytecode == "" || bytecode == "0x" {
		return nil
	}
	key := source + ":" + name

	code, err := hexutil.Decode(bytecode)
	if err != nil {
		if strings.Contains(bytecode, "__") {
			i.unlinked[key] = path
			return nil
		}
		i.log.Debug("skipping artifact with invalid bytecode", "path", path, "error", err)
		return nil
	}

	artifact := &domain.Artifact{
		Name:       name,
		SourcePath: source,
		ABI:        string(file.ABI),
		Bytecode:   code,
	}

	// Foundry writes one file per compiler version; the first one wins
	if _, exists := i.artifacts[key]; exists {
		return nil
	}
	i.artifacts[key] = artifact

	if existing, exists := i.byName[name]; exists {
		i.byName[name] = append(existing, artifact)
		delete(i.artifacts, name)
	} else {
		i.byName[name] = []*domain.Artifact{artifact}
		i.artifacts[name] = artifact
	}
	return nil
}

func (i *Indexer) resolveLayout(path string, file *artifactFile) (bytecode, name, source string) {
	// Hardhat
	if err := json.Unmarshal(file.Bytecode, &bytecode); err == nil {
		return bytecode, file.ContractName, file.SourceName
	}

	// Foundry
	var fb foundryBytecode
	if err := json.Unmarshal(file.Bytecode, &fb); err != nil {
		return "", "", ""
	}
	var meta foundryMetadata
	if len(file.Metadata) > 0 && json.Unmarshal(file.Metadata, &meta) == nil {
		for src, contract := range meta.Settings.CompilationTarget {
			return fb.Object, contract, src
		}
	}
	// out/<File>.sol/<Name>[.<version>].json
	base := strings.TrimSuffix(filepath.Base(path), ".json")
	if dot := strings.Index(base, "."); dot > 0 {
		base = base[:dot]
	}
	return fb.Object, base, filepath.Base(filepath.Dir(path))
}

// GetArtifact returns the artifact for "Name" or "path/File.sol:Name".
// Ambiguous names are resolved through the selector when one is set.
func (i *Indexer) GetArtifact(ctx context.Context, name string) (*domain.Artifact, error) {
	if err := i.ensureIndexed(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	artifact, ok := i.artifacts[name]
	candidates := i.byName[name]
	unlinkedPath, unlinked := i.unlinkedArtifact(name)
	i.mu.RUnlock()

	if ok {
		return artifact, nil
	}
	if len(candidates) > 1 {
		if i.selector == nil {
			return nil, fmt.Errorf("multiple contracts named %s, use one of %s", name, strings.Join(artifactKeys(candidates), ", "))
		}
		return i.selector.SelectArtifact(ctx, candidates, fmt.Sprintf("Multiple contracts named %s, select one", name))
	}
	if unlinked {
		return nil, fmt.Errorf("contract %s has unlinked library references (%s), deploy the libraries and link them first", name, unlinkedPath)
	}

	err := fmt.Errorf("contract %s: %w", name, domain.ErrNotFound)
	if suggestions := i.suggest(name); len(suggestions) > 0 {
		err = fmt.Errorf("contract %s: %w, did you mean %s?", name, domain.ErrNotFound, domain.JoinOr(suggestions))
	}
	return nil, err
}

// Names returns every indexed contract name sorted
func (i *Indexer) Names() ([]string, error) {
	if err := i.ensureIndexed(); err != nil {
		return nil, err
	}
	i.mu.RLock()
	defer i.mu.RUnlock()

	names := make([]string, 0, len(i.byName))
	for name := range i.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (i *Indexer) ensureIndexed() error {
	i.mu.RLock()
	indexed := i.indexed
	i.mu.RUnlock()
	if indexed {
		return nil
	}
	return i.Index()
}

func (i *Indexer) unlinkedArtifact(name string) (string, bool) {
	if path, ok := i.unlinked[name]; ok {
		return path, true
	}
	for key, path := range i.unlinked {
		if strings.HasSuffix(key, ":"+name) {
			return path, true
		}
	}
	return "", false
}

func (i *Indexer) suggest(name string) []string {
	i.mu.RLock()
	names := make([]string, 0, len(i.byName))
	for n := range i.byName {
		names = append(names, n)
	}
	i.mu.RUnlock()
	sort.Strings(names)

	var out []string
	for _, match := range fuzzy.Find(name, names) {
		out = append(out, match.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func artifactKeys(artifacts []*domain.Artifact) []string {
	keys := make([]string, len(artifacts))
	for i, a := range artifacts {
		keys[i] = a.SourcePath + ":" + a.Name
	}
	sort.Strings(keys)
	return keys
}
