package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// maxConcurrentInspections bounds parallel module reads against the RPC node
const maxConcurrentInspections = 4

// InspectBeaconsParams contains parameters for inspecting modules
type InspectBeaconsParams struct {
	Only []string
}

// InspectBeacons reads the on-chain state of every module with a proxy configured
type InspectBeacons struct {
	cfg       *config.RuntimeConfig
	slots     *StorageSlotReader
	contracts ContractBinder
	progress  ProgressSink
	log       *slog.Logger
}

// NewInspectBeacons creates a new InspectBeacons use case
func NewInspectBeacons(
	cfg *config.RuntimeConfig,
	slots *StorageSlotReader,
	contracts ContractBinder,
	progress ProgressSink,
	log *slog.Logger,
) *InspectBeacons {
	return &InspectBeacons{
		cfg:       cfg,
		slots:     slots,
		contracts: contracts,
		progress:  progress,
		log:       log,
	}
}

// Run reads beacon, implementation, owner and version for each module. It never
// signs anything. Read failures are reported per module and do not fail the call.
func (uc *InspectBeacons) Run(ctx context.Context, params InspectBeaconsParams) ([]*domain.BeaconInfo, error) {
	only := make(map[domain.Module]bool, len(params.Only))
	for _, name := range params.Only {
		module, err := domain.ParseModule(strings.TrimSpace(name))
		if err != nil {
			return nil, &domain.ConfigurationError{Field: "only", Reason: unknownModuleReason(name)}
		}
		only[module] = true
	}

	var infos []*domain.BeaconInfo
	for _, module := range domain.UpgradeOrder {
		if len(only) > 0 && !only[module] {
			continue
		}
		mc := uc.cfg.Upgrade.Modules[module]
		if strings.TrimSpace(mc.Proxy) == "" {
			continue
		}
		if !common.IsHexAddress(strings.TrimSpace(mc.Proxy)) {
			return nil, &domain.ConfigurationError{Module: module, Field: "proxy", Reason: "not a valid hex address: " + mc.Proxy}
		}

		info := &domain.BeaconInfo{
			Module:  module,
			Enabled: mc.Enabled,
			Proxy:   common.HexToAddress(strings.TrimSpace(mc.Proxy)),
		}
		if common.IsHexAddress(strings.TrimSpace(mc.Implementation)) {
			info.PendingTarget = common.HexToAddress(strings.TrimSpace(mc.Implementation))
		}
		infos = append(infos, info)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Total:   len(infos),
		Message: fmt.Sprintf("Inspecting %d module(s)", len(infos)),
		Spinner: true,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentInspections)
	for _, info := range infos {
		g.Go(func() error {
			uc.inspect(gctx, info)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted, Total: len(infos)})
	return infos, nil
}

// inspect fills info in place. Each goroutine owns exactly one info.
func (uc *InspectBeacons) inspect(ctx context.Context, info *domain.BeaconInfo) {
	log := uc.log.With("module", info.Module, "proxy", info.Proxy.Hex())

	version, err := uc.contracts.Bind(info.Proxy).Version(ctx)
	if err != nil {
		log.Debug("version() not readable", "error", err)
	} else {
		info.Version = version
	}

	beacon, err := uc.slots.ReadBeacon(ctx, info.Proxy)
	if err != nil {
		info.Errors = append(info.Errors, err.Error())
		return
	}
	if beacon == (common.Address{}) {
		info.Errors = append(info.Errors, (&domain.StorageReadError{Proxy: info.Proxy}).Error())
		return
	}
	info.Beacon = beacon

	contract := uc.contracts.Bind(beacon)
	if impl, err := contract.Implementation(ctx); err != nil {
		info.Errors = append(info.Errors, fmt.Sprintf("implementation(): %v", err))
	} else {
		info.Implementation = impl
	}
	if owner, err := contract.Owner(ctx); err != nil {
		info.Errors = append(info.Errors, fmt.Sprintf("owner(): %v", err))
	} else {
		info.Owner = owner
	}
}
