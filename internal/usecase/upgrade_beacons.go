package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// UpgradeBeaconsParams contains parameters for an upgrade run
type UpgradeBeaconsParams struct {
	// Only restricts the run to the named modules (name or config key)
	Only []string
}

// UpgradeBeacons drives every configured module through the upgrade pipeline
type UpgradeBeacons struct {
	cfg       *config.RuntimeConfig
	slots     *StorageSlotReader
	safety    *SafetyValidator
	auth      *AuthorizationChecker
	executor  *UpgradeExecutor
	verifier  *PostUpgradeVerifier
	contracts ContractBinder
	signer    Signer
	confirmer Confirmer
	metrics   UpgradeMetrics
	progress  ProgressSink
	log       *slog.Logger
}

// NewUpgradeBeacons creates a new UpgradeBeacons use case
func NewUpgradeBeacons(
	cfg *config.RuntimeConfig,
	slots *StorageSlotReader,
	safety *SafetyValidator,
	auth *AuthorizationChecker,
	executor *UpgradeExecutor,
	verifier *PostUpgradeVerifier,
	contracts ContractBinder,
	signer Signer,
	confirmer Confirmer,
	metrics UpgradeMetrics,
	progress ProgressSink,
	log *slog.Logger,
) *UpgradeBeacons {
	return &UpgradeBeacons{
		cfg:       cfg,
		slots:     slots,
		safety:    safety,
		auth:      auth,
		executor:  executor,
		verifier:  verifier,
		contracts: contracts,
		signer:    signer,
		confirmer: confirmer,
		metrics:   metrics,
		progress:  progress,
		log:       log,
	}
}

// Run validates the configuration, then upgrades the enabled modules one by
// one in dependency order. A configuration problem aborts before any network
// call and returns no summary. Per-module failures are recorded in the summary
// and do not stop the remaining modules.
func (uc *UpgradeBeacons) Run(ctx context.Context, params UpgradeBeaconsParams) (*domain.UpgradeSummary, error) {
	start := time.Now()

	plan, err := uc.cfg.Upgrade.Plan()
	if err != nil {
		return nil, err
	}

	excluded, err := applyOnlyFilter(plan, params.Only)
	if err != nil {
		return nil, err
	}

	enabled := lo.CountBy(plan, func(p domain.PlannedModule) bool { return p.Enabled && !excluded[p.Module] })

	signer := uc.signer.Address()
	if enabled > 0 && signer == (common.Address{}) {
		return nil, &domain.ConfigurationError{
			Field:  "private_key",
			Reason: "a signer is required when at least one module is enabled",
		}
	}

	if enabled > 0 && !uc.cfg.AssumeYes && !uc.cfg.NonInteractive {
		ok, err := uc.confirmer.Confirm(ctx, uc.confirmPrompt(enabled, signer))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrAborted
		}
	}

	summary := &domain.UpgradeSummary{
		Results: make([]*domain.UpgradeResult, 0, len(plan)),
		Signer:  signer,
	}
	if uc.cfg.Network != nil {
		summary.ChainID = uc.cfg.Network.ChainID
	}

	current := 0
	for _, planned := range plan {
		result := &domain.UpgradeResult{Module: planned.Module, State: domain.StatePending}
		summary.Results = append(summary.Results, result)

		if !planned.Enabled || excluded[planned.Module] {
			result.State = domain.StateSkipped
			result.Outcome = domain.OutcomeSkipped
			if planned.Enabled {
				result.Warnings = append(result.Warnings, "excluded by --only")
			}
			uc.log.Debug("module skipped", "module", planned.Module)
			uc.metrics.ObserveModule(result)
			continue
		}

		current++
		if err := ctx.Err(); err != nil {
			result.Proxy = planned.Target.Proxy
			result.Implementation = planned.Target.Implementation
			result.Fail(fmt.Errorf("%w: %w", domain.ErrInterrupted, err))
			uc.log.Warn("module not attempted", "module", planned.Module, "error", err)
			uc.metrics.ObserveModule(result)
			continue
		}
		if uc.upgradeModule(ctx, *planned.Target, result, current, enabled) {
			summary.TransactionsSubmitted++
		}
		uc.metrics.ObserveModule(result)

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:    StageModuleDone,
			Current:  current,
			Total:    enabled,
			Message:  planned.Module.String(),
			Metadata: result,
		})
	}

	summary.Duration = time.Since(start)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted, Total: enabled})

	uc.metrics.ObserveRun(summary)
	if err := uc.metrics.Flush(); err != nil {
		uc.log.Warn("failed to write metrics", "error", err)
	}

	return summary, nil
}

// upgradeModule runs one module through the pipeline and records the outcome
// in result. It reports whether a transaction was submitted.
func (uc *UpgradeBeacons) upgradeModule(ctx context.Context, target domain.UpgradeTarget, result *domain.UpgradeResult, current, total int) (sent bool) {
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	log := uc.log.With("module", target.Module, "proxy", target.Proxy.Hex())
	report := func(stage, msg string, spin bool) {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   stage,
			Current: current,
			Total:   total,
			Message: fmt.Sprintf("%s: %s", target.Module, msg),
			Spinner: spin,
		})
	}

	result.Proxy = target.Proxy
	result.Implementation = target.Implementation

	report(StageResolving, "reading beacon slot", true)
	beacon, err := uc.slots.ReadBeacon(ctx, target.Proxy)
	if err != nil {
		result.Fail(err)
		return false
	}
	if beacon == (common.Address{}) {
		result.Fail(&domain.StorageReadError{Proxy: target.Proxy})
		return false
	}
	target.Beacon = beacon
	result.Beacon = beacon
	log = log.With("beacon", beacon.Hex())
	log.Debug("beacon resolved")

	if uc.cfg.Upgrade.SafetyChecks {
		report(StageChecking, "running safety checks", true)
		safety, err := uc.safety.Check(ctx, target.Proxy, target.Implementation)
		if err != nil {
			result.Fail(&domain.SafetyCheckError{
				Proxy:          target.Proxy,
				Implementation: target.Implementation,
				Failures:       []string{err.Error()},
			})
			return false
		}
		result.Warnings = append(result.Warnings, safety.Warnings...)
		result.Version = safety.Version
		if !safety.OK {
			result.Fail(&domain.SafetyCheckError{
				Proxy:          target.Proxy,
				Implementation: target.Implementation,
				Failures:       safety.Failures,
			})
			return false
		}
	} else {
		result.Warnings = append(result.Warnings, "safety checks disabled")
	}
	result.Advance(domain.StateSafetyChecked)

	report(StageAuthorizing, "checking beacon owner", true)
	signer := uc.signer.Address().Hex()
	isOwner, owner, err := uc.auth.VerifyOwner(ctx, beacon, signer)
	if err != nil {
		result.Fail(&domain.AuthorizationError{Beacon: beacon, Signer: signer, Err: err})
		return false
	}
	if !isOwner {
		result.Fail(&domain.AuthorizationError{Beacon: beacon, Signer: signer, Owner: owner})
		return false
	}
	result.Advance(domain.StateAuthorized)

	previous, err := uc.contracts.Bind(beacon).Implementation(ctx)
	if err != nil {
		log.Debug("current implementation not readable", "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not read current implementation: %v", err))
	} else {
		result.PreviousImplementation = previous
		if previous == target.Implementation {
			result.Warnings = append(result.Warnings, "beacon already points to the target implementation")
		}
	}

	report(StageSubmitting, "submitting upgradeTo", true)
	receipt, err := uc.executor.Execute(ctx, beacon, target.Implementation)
	sent = submitted(receipt, err)
	if receipt != nil {
		result.TxHash = receipt.TxHash
		if receipt.BlockNumber != nil {
			result.BlockNumber = receipt.BlockNumber.Uint64()
		}
		result.GasUsed = receipt.GasUsed
	}
	if err != nil {
		log.Debug("upgrade transaction failed", "error", err)
		result.Fail(err)
		return sent
	}
	result.Advance(domain.StateExecuted)
	if warning := uc.verifier.CheckReceipt(receipt, beacon, target.Implementation); warning != "" {
		log.Debug("unexpected upgrade receipt", "warning", warning)
		result.Warnings = append(result.Warnings, warning)
	}

	report(StageVerifying, "verifying implementation", true)
	ok, actual, err := uc.verifier.Verify(ctx, beacon, target.Implementation)
	if err != nil {
		result.Fail(&domain.VerificationMismatch{Beacon: beacon, Expected: target.Implementation, Err: err})
		return sent
	}
	if !ok {
		result.Fail(&domain.VerificationMismatch{Beacon: beacon, Expected: target.Implementation, Actual: actual})
		return sent
	}

	result.Succeed()
	log.Debug("module upgraded", "tx", result.TxHash.Hex(), "block", result.BlockNumber)
	return sent
}

func (uc *UpgradeBeacons) confirmPrompt(enabled int, signer common.Address) string {
	network := "the configured network"
	if uc.cfg.Network != nil {
		network = uc.cfg.Network.Name
	}
	return fmt.Sprintf("Upgrade %d module(s) on %s as %s", enabled, network, signer.Hex())
}

// applyOnlyFilter returns the enabled modules that the --only list leaves out.
// Unknown names and names of disabled modules are configuration errors.
func applyOnlyFilter(plan []domain.PlannedModule, only []string) (map[domain.Module]bool, error) {
	excluded := make(map[domain.Module]bool)
	if len(only) == 0 {
		return excluded, nil
	}

	selected := make(map[domain.Module]bool, len(only))
	for _, name := range only {
		module, err := domain.ParseModule(strings.TrimSpace(name))
		if err != nil {
			return nil, &domain.ConfigurationError{Field: "only", Reason: unknownModuleReason(name)}
		}
		selected[module] = true
	}

	for _, p := range plan {
		switch {
		case selected[p.Module] && !p.Enabled:
			return nil, &domain.ConfigurationError{
				Module: p.Module,
				Field:  "enabled",
				Reason: "selected with --only but not enabled",
			}
		case p.Enabled && !selected[p.Module]:
			excluded[p.Module] = true
		}
	}

	return excluded, nil
}

func unknownModuleReason(name string) string {
	candidates := make([]string, 0, 2*len(domain.UpgradeOrder))
	for _, m := range domain.UpgradeOrder {
		candidates = append(candidates, m.String(), m.Key())
	}

	reason := fmt.Sprintf("unknown module %q", name)
	if matches := fuzzy.Find(name, candidates); len(matches) > 0 {
		return fmt.Sprintf("%s, did you mean %q?", reason, matches[0].Str)
	}
	return fmt.Sprintf("%s (known: %s)", reason, strings.Join(domain.ModuleNames(), ", "))
}
