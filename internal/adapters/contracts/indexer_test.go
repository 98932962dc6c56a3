package contracts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

const (
	counterFoundry = `{
  "abi": [{"type":"constructor","inputs":[{"name":"start","type":"uint256"}]}],
  "bytecode": {"object": "0x6080604052", "linkReferences": {}},
  "deployedBytecode": {"object": "0x6080"},
  "metadata": {"settings": {"compilationTarget": {"src/Counter.sol": "Counter"}}}
}`
	tokenFoundry = `{
  "abi": [],
  "bytecode": {"object": "0x60016002"}
}`
	interfaceFoundry = `{
  "abi": [{"type":"function","name":"count","inputs":[],"outputs":[]}],
  "bytecode": {"object": "0x"},
  "metadata": {"settings": {"compilationTarget": {"src/ICounter.sol": "ICounter"}}}
}`
	linkedFoundry = `{
  "abi": [],
  "bytecode": {"object": "0x6080__$1234567890abcdef1234567890abcdef12$__6000"},
  "metadata": {"settings": {"compilationTarget": {"src/Vault.sol": "Vault"}}}
}`
	greeterHardhat = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "Greeter",
  "sourceName": "contracts/Greeter.sol",
  "abi": [{"type":"constructor","inputs":[{"name":"greeting","type":"string"}]}],
  "bytecode": "0x60806040",
  "deployedBytecode": "0x6080"
}`
	dupHardhat = `{
  "contractName": "Counter",
  "sourceName": "contracts/legacy/Counter.sol",
  "abi": [],
  "bytecode": "0x6001"
}`
)

func writeArtifacts(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newTestIndexer(root string, selector usecase.ArtifactSelector) *Indexer {
	cfg := &config.RuntimeConfig{ProjectRoot: root, Multichain: &config.MultichainConfig{}}
	return NewIndexer(cfg, selector, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubSelector struct {
	calls  int
	choice int
}

func (s *stubSelector) SelectArtifact(_ context.Context, artifacts []*domain.Artifact, _ string) (*domain.Artifact, error) {
	s.calls++
	return artifacts[s.choice], nil
}

func TestIndexer_GetArtifact(t *testing.T) {
	root := writeArtifacts(t, map[string]string{
		"out/Counter.sol/Counter.json":                     counterFoundry,
		"out/Token.sol/Token.0.8.24.json":                  tokenFoundry,
		"out/ICounter.sol/ICounter.json":                   interfaceFoundry,
		"out/Vault.sol/Vault.json":                         linkedFoundry,
		"out/build-info/abc.json":                          `{"abi": [], "bytecode": "0x6001", "contractName": "Hidden"}`,
		"artifacts/contracts/Greeter.sol/Greeter.json":     greeterHardhat,
		"artifacts/contracts/Greeter.sol/Greeter.dbg.json": `{"_format": "hh-sol-dbg-1", "buildInfo": "../../build-info/x.json"}`,
		"artifacts/build-info/x.json":                      `{"abi": [], "bytecode": "0x6001", "contractName": "Hidden"}`,
	})
	indexer := newTestIndexer(root, nil)
	ctx := context.Background()

	t.Run("foundry", func(t *testing.T) {
		artifact, err := indexer.GetArtifact(ctx, "Counter")
		require.NoError(t, err)
		assert.Equal(t, "Counter", artifact.Name)
		assert.Equal(t, "src/Counter.sol", artifact.SourcePath)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, artifact.Bytecode)
		assert.Contains(t, artifact.ABI, `"constructor"`)
	})

	t.Run("foundry without metadata", func(t *testing.T) {
		artifact, err := indexer.GetArtifact(ctx, "Token")
		require.NoError(t, err)
		assert.Equal(t, "Token.sol", artifact.SourcePath)
		assert.Equal(t, "[]", artifact.ABI)
	})

	t.Run("hardhat", func(t *testing.T) {
		artifact, err := indexer.GetArtifact(ctx, "contracts/Greeter.sol:Greeter")
		require.NoError(t, err)
		assert.Equal(t, "Greeter", artifact.Name)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40}, artifact.Bytecode)
	})

	t.Run("interfaces are not deployable", func(t *testing.T) {
		_, err := indexer.GetArtifact(ctx, "ICounter")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("build info is skipped", func(t *testing.T) {
		_, err := indexer.GetArtifact(ctx, "Hidden")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unlinked libraries", func(t *testing.T) {
		_, err := indexer.GetArtifact(ctx, "Vault")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unlinked library references")
	})

	t.Run("suggestions", func(t *testing.T) {
		_, err := indexer.GetArtifact(ctx, "Countr")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "did you mean Counter?")
	})

	names, err := indexer.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"Counter", "Greeter", "Token"}, names)
}

func TestIndexer_Ambiguous(t *testing.T) {
	files := map[string]string{
		"out/Counter.sol/Counter.json":                        counterFoundry,
		"artifacts/contracts/legacy/Counter.sol/Counter.json": dupHardhat,
	}
	ctx := context.Background()

	t.Run("without selector", func(t *testing.T) {
		indexer := newTestIndexer(writeArtifacts(t, files), nil)
		_, err := indexer.GetArtifact(ctx, "Counter")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contracts/legacy/Counter.sol:Counter, src/Counter.sol:Counter")

		artifact, err := indexer.GetArtifact(ctx, "src/Counter.sol:Counter")
		require.NoError(t, err)
		assert.Equal(t, "src/Counter.sol", artifact.SourcePath)
	})

	t.Run("with selector", func(t *testing.T) {
		selector := &stubSelector{choice: 1}
		indexer := newTestIndexer(writeArtifacts(t, files), selector)
		artifact, err := indexer.GetArtifact(ctx, "Counter")
		require.NoError(t, err)
		assert.Equal(t, 1, selector.calls)
		assert.Equal(t, "Counter", artifact.Name)
	})
}

func TestIndexer_ConfiguredDir(t *testing.T) {
	root := writeArtifacts(t, map[string]string{
		"build/Counter.sol/Counter.json": counterFoundry,
		"out/Token.sol/Token.json":       tokenFoundry,
	})
	cfg := &config.RuntimeConfig{ProjectRoot: root, Multichain: &config.MultichainConfig{ArtifactsDir: "build"}}
	indexer := NewIndexer(cfg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := indexer.GetArtifact(context.Background(), "Counter")
	require.NoError(t, err)
	_, err = indexer.GetArtifact(context.Background(), "Token")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIndexer_NoArtifacts(t *testing.T) {
	indexer := newTestIndexer(t.TempDir(), nil)
	_, err := indexer.GetArtifact(context.Background(), "Counter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build the project first")
}
