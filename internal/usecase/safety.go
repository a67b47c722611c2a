package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
)

// SafetyReport is the outcome of the pre-upgrade checks
type SafetyReport struct {
	OK       bool
	Failures []string
	Warnings []string
	Version  string
}

// SafetyValidator runs read-only checks before an upgrade is submitted
type SafetyValidator struct {
	chain     ChainClient
	contracts ContractBinder
	log       *slog.Logger
}

// NewSafetyValidator creates a new SafetyValidator
func NewSafetyValidator(chain ChainClient, contracts ContractBinder, log *slog.Logger) *SafetyValidator {
	return &SafetyValidator{chain: chain, contracts: contracts, log: log}
}

// Check verifies that both the new implementation and the proxy have code and
// reads version() through the proxy. Only a failed code read is returned as an
// error; a failed version read is a warning.
func (v *SafetyValidator) Check(ctx context.Context, proxy, newImpl common.Address) (*SafetyReport, error) {
	report := &SafetyReport{}

	for _, target := range []struct {
		label string
		addr  common.Address
	}{
		{"implementation", newImpl},
		{"proxy", proxy},
	} {
		code, err := v.chain.CodeAt(ctx, target.addr)
		if err != nil {
			return nil, fmt.Errorf("failed to read code of %s %s: %w", target.label, target.addr.Hex(), err)
		}
		if len(code) == 0 {
			report.Failures = append(report.Failures, fmt.Sprintf("no code at %s %s", target.label, target.addr.Hex()))
		}
	}

	if len(report.Failures) > 0 {
		return report, nil
	}
	report.OK = true

	version, err := v.contracts.Bind(proxy).Version(ctx)
	if err != nil {
		v.log.Debug("version() not readable", "proxy", proxy.Hex(), "error", err)
		report.Warnings = append(report.Warnings, fmt.Sprintf("could not read version() through proxy: %v", err))
	} else {
		report.Version = version
	}

	return report, nil
}
