package app

import (
	"log/slog"

	"github.com/agentnft/beaconctl/internal/adapters/blockchain"
	"github.com/agentnft/beaconctl/internal/domain/config"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	UpgradeBeacons   *usecase.UpgradeBeacons
	InspectBeacons   *usecase.InspectBeacons
	GetNonceStatus   *usecase.GetNonceStatus
	ClearStuckNonces *usecase.ClearStuckNonces
	ShowToken        *usecase.ShowToken

	// Adapters (needed for shutdown)
	client *blockchain.ClientAdapter
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	upgradeBeacons *usecase.UpgradeBeacons,
	inspectBeacons *usecase.InspectBeacons,
	getNonceStatus *usecase.GetNonceStatus,
	clearStuckNonces *usecase.ClearStuckNonces,
	showToken *usecase.ShowToken,
	client *blockchain.ClientAdapter,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		UpgradeBeacons:   upgradeBeacons,
		InspectBeacons:   inspectBeacons,
		GetNonceStatus:   getNonceStatus,
		ClearStuckNonces: clearStuckNonces,
		ShowToken:        showToken,
		client:           client,
	}, nil
}

// Close releases the RPC connection, if one was opened
func (a *App) Close() {
	if a.client != nil {
		a.client.Close()
	}
}
