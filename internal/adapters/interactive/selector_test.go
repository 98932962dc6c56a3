package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
)

func TestSelectArtifact_NonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
	one := &domain.Artifact{Name: "Counter", SourcePath: "src/Counter.sol"}
	two := &domain.Artifact{Name: "Counter", SourcePath: "src/legacy/Counter.sol"}

	got, err := s.SelectArtifact(context.Background(), []*domain.Artifact{one}, "pick")
	require.NoError(t, err)
	assert.Same(t, one, got)

	_, err = s.SelectArtifact(context.Background(), []*domain.Artifact{one, two}, "pick")
	assert.ErrorContains(t, err, "non-interactive")

	_, err = s.SelectArtifact(context.Background(), nil, "pick")
	assert.Error(t, err)
}

func TestConfirm_NonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
	ok, err := s.Confirm(context.Background(), "Deploy?")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "--yes")
}

func TestFuzzySearch(t *testing.T) {
	items := formatArtifactOptions([]*domain.Artifact{
		{Name: "Counter", SourcePath: "src/Counter.sol"},
		{Name: "Greeter", SourcePath: "contracts/Greeter.sol"},
	})
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 1))
	assert.True(t, search("cntr", 0))
	assert.False(t, search("cntq", 1))
	assert.True(t, search("greeter", 1))
}
