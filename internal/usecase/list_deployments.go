package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
)

// ListDeploymentsParams contains parameters for listing recorded deployments
type ListDeploymentsParams struct {
	Contract string
	// AllEnvironments disables the environment filter
	AllEnvironments bool
}

// DeploymentListResult contains the matching records and a summary
type DeploymentListResult struct {
	Deployments []*domain.DeploymentRecord
	Summary     DeploymentSummary
}

// DeploymentSummary counts records per dimension
type DeploymentSummary struct {
	Total         int
	ByEnvironment map[domain.Environment]int
	ByContract    map[string]int
	ByDomain      map[uint8]int
}

// ListDeployments is the use case for listing journaled deployments
type ListDeployments struct {
	config  *config.RuntimeConfig
	journal DeploymentJournal
	sink    ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, journal DeploymentJournal, sink ProgressSink) *ListDeployments {
	if sink == nil {
		sink = NopProgress{}
	}
	return &ListDeployments{
		config:  cfg,
		journal: journal,
		sink:    sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment journal",
		Spinner: true,
	})

	records, err := uc.journal.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.DeploymentRecord, 0, len(records))
	for _, rec := range records {
		if !params.AllEnvironments && rec.Environment != uc.config.Multichain.Environment {
			continue
		}
		if params.Contract != "" && !strings.EqualFold(rec.Contract, params.Contract) {
			continue
		}
		filtered = append(filtered, rec)
	}

	// Newest first
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(filtered),
		Total:   len(filtered),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: filtered,
		Summary:     summarize(filtered),
	}, nil
}

func summarize(records []*domain.DeploymentRecord) DeploymentSummary {
	summary := DeploymentSummary{
		Total:         len(records),
		ByEnvironment: make(map[domain.Environment]int),
		ByContract:    make(map[string]int),
		ByDomain:      make(map[uint8]int),
	}
	for _, rec := range records {
		summary.ByEnvironment[rec.Environment]++
		if rec.Contract != "" {
			summary.ByContract[rec.Contract]++
		}
		for _, id := range rec.DomainIDs {
			summary.ByDomain[id]++
		}
	}
	return summary
}
