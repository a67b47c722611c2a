//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/agentnft/beaconctl/internal/adapters"
	"github.com/agentnft/beaconctl/internal/config"
	"github.com/agentnft/beaconctl/internal/logging"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Pipeline components
		usecase.NewStorageSlotReader,
		usecase.NewSafetyValidator,
		usecase.NewAuthorizationChecker,
		usecase.NewUpgradeExecutor,
		usecase.NewPostUpgradeVerifier,

		// Use cases
		usecase.NewUpgradeBeacons,
		usecase.NewInspectBeacons,
		usecase.NewGetNonceStatus,
		usecase.NewClearStuckNonces,
		usecase.NewShowToken,

		// App
		NewApp,
	)
	return nil, nil
}
