package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// SelectorAdapter handles interactive selection and confirmation
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectArtifact asks the user to pick one of several artifacts
func (s *SelectorAdapter) SelectArtifact(ctx context.Context, artifacts []*domain.Artifact, prompt string) (*domain.Artifact, error) {
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts provided for selection")
	}
	if len(artifacts) == 1 {
		return artifacts[0], nil
	}
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode, use path:Name")
	}

	options := formatArtifactOptions(artifacts)
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return artifacts[index], nil
}

// Confirm asks a yes/no question, defaulting to no
func (s *SelectorAdapter) Confirm(ctx context.Context, message string) (bool, error) {
	if s.config.NonInteractive {
		return false, fmt.Errorf("confirmation not available in non-interactive mode, pass --yes")
	}

	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, domain.ErrCancelled
		}
		return false, err
	}
	return true, nil
}

// formatArtifactOptions renders "Name (path/to/File.sol)"
func formatArtifactOptions(artifacts []*domain.Artifact) []string {
	options := make([]string, len(artifacts))
	for i, artifact := range artifacts {
		name := color.New(color.FgWhite, color.Bold).Sprint(artifact.Name)
		path := color.New(color.FgBlue).Sprint(strings.TrimPrefix(artifact.SourcePath, "src/"))
		options[i] = fmt.Sprintf("%s (%s)", name, path)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])
		if strings.Contains(item, input) {
			return true
		}
		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var (
	_ usecase.ArtifactSelector = (*SelectorAdapter)(nil)
	_ usecase.Confirmer        = (*SelectorAdapter)(nil)
)
