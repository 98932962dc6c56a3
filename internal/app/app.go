package app

import (
	"log/slog"

	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Progress usecase.ProgressSink

	// Use cases
	Deploy          *usecase.DeployMultichain
	ListNetworks    *usecase.ListNetworks
	ListDeployments *usecase.ListDeployments
	PredictAddress  *usecase.PredictAddress
	ShowConfig      *usecase.ShowConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	progress usecase.ProgressSink,
	deploy *usecase.DeployMultichain,
	listNetworks *usecase.ListNetworks,
	listDeployments *usecase.ListDeployments,
	predictAddress *usecase.PredictAddress,
	showConfig *usecase.ShowConfig,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		Progress:        progress,
		Deploy:          deploy,
		ListNetworks:    listNetworks,
		ListDeployments: listDeployments,
		PredictAddress:  predictAddress,
		ShowConfig:      showConfig,
	}, nil
}
