//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/treb-multichain/internal/adapters"
	"github.com/trebuchet-org/treb-multichain/internal/config"
	"github.com/trebuchet-org/treb-multichain/internal/logging"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployMultichain,
		usecase.NewListNetworks,
		usecase.NewListDeployments,
		usecase.NewPredictAddress,
		usecase.NewShowConfig,

		// App
		NewApp,
	)
	return nil, nil
}
