package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ModuleConfig is the operator-supplied configuration for one module.
// Addresses are kept as given and validated by UpgradeConfig.Plan.
type ModuleConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	Proxy          string `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	Implementation string `json:"implementation,omitempty" yaml:"implementation,omitempty"`
}

// UpgradeConfig is the declarative description of an upgrade run
type UpgradeConfig struct {
	Modules      map[Module]ModuleConfig
	SafetyChecks bool
}

// PlannedModule is one entry of a validated upgrade plan
type PlannedModule struct {
	Module  Module
	Enabled bool
	Target  *UpgradeTarget // nil when disabled
}

// UpgradeTarget is an enabled module with validated addresses.
// Beacon is filled in at run time from the proxy's storage.
type UpgradeTarget struct {
	Module         Module
	Proxy          common.Address
	Implementation common.Address
	Beacon         common.Address
}

// Plan validates the configuration and returns all known modules in upgrade
// order. Any enabled module with a missing or malformed address fails the
// whole plan with a ConfigurationError.
func (c *UpgradeConfig) Plan() ([]PlannedModule, error) {
	plan := make([]PlannedModule, 0, len(UpgradeOrder))

	for _, module := range UpgradeOrder {
		mc, ok := c.Modules[module]
		if !ok || !mc.Enabled {
			plan = append(plan, PlannedModule{Module: module})
			continue
		}

		proxy, err := requireAddress(module, "proxy", mc.Proxy)
		if err != nil {
			return nil, err
		}
		impl, err := requireAddress(module, "implementation", mc.Implementation)
		if err != nil {
			return nil, err
		}

		plan = append(plan, PlannedModule{
			Module:  module,
			Enabled: true,
			Target: &UpgradeTarget{
				Module:         module,
				Proxy:          proxy,
				Implementation: impl,
			},
		})
	}

	return plan, nil
}

// EnabledCount returns the number of enabled modules
func (c *UpgradeConfig) EnabledCount() int {
	n := 0
	for _, mc := range c.Modules {
		if mc.Enabled {
			n++
		}
	}
	return n
}

func requireAddress(module Module, field, value string) (common.Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return common.Address{}, &ConfigurationError{
			Module: module,
			Field:  field,
			Reason: "required when the module is enabled",
		}
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, &ConfigurationError{
			Module: module,
			Field:  field,
			Reason: "not a valid hex address: " + value,
		}
	}
	addr := common.HexToAddress(value)
	if addr == (common.Address{}) {
		return common.Address{}, &ConfigurationError{
			Module: module,
			Field:  field,
			Reason: "must not be the zero address",
		}
	}
	return addr, nil
}

// SameAddress compares two hex addresses case-insensitively
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// UpgradeState is the position of a module in the upgrade pipeline
type UpgradeState string

const (
	StatePending       UpgradeState = "pending"
	StateSafetyChecked UpgradeState = "safety-checked"
	StateAuthorized    UpgradeState = "authorized"
	StateExecuted      UpgradeState = "executed"
	StateVerified      UpgradeState = "verified"
	StateFailed        UpgradeState = "failed"
	StateSkipped       UpgradeState = "skipped"
)

// Outcome is the terminal result of a module
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// UpgradeResult records what happened to one module during a run
type UpgradeResult struct {
	Module                 Module
	State                  UpgradeState
	Outcome                Outcome
	FailedAt               UpgradeState // last state reached before failing
	Proxy                  common.Address
	Beacon                 common.Address
	PreviousImplementation common.Address
	Implementation         common.Address
	Version                string
	TxHash                 common.Hash
	BlockNumber            uint64
	GasUsed                uint64
	Warnings               []string
	Err                    error
	Duration               time.Duration
}

// Advance moves the result to the next pipeline state
func (r *UpgradeResult) Advance(state UpgradeState) {
	r.State = state
}

// Fail marks the result as failed with err, remembering the last state reached
func (r *UpgradeResult) Fail(err error) {
	r.FailedAt = r.State
	r.State = StateFailed
	r.Outcome = OutcomeFailed
	r.Err = err
}

// Succeed marks the result as verified
func (r *UpgradeResult) Succeed() {
	r.State = StateVerified
	r.Outcome = OutcomeSuccess
}

// ErrorKind returns the taxonomy name of the failure, if any
func (r *UpgradeResult) ErrorKind() string {
	return ErrorKind(r.Err)
}

// UpgradeSummary aggregates the results of one run in upgrade order
type UpgradeSummary struct {
	Results               []*UpgradeResult
	TransactionsSubmitted int
	Signer                common.Address
	ChainID               uint64
	Duration              time.Duration
}

// Success is true iff no enabled module failed. A run with every module
// skipped is vacuously successful.
func (s *UpgradeSummary) Success() bool {
	for _, r := range s.Results {
		if r.Outcome == OutcomeFailed {
			return false
		}
	}
	return true
}

// ExitCode maps the aggregate to the process exit code
func (s *UpgradeSummary) ExitCode() int {
	if s.Success() {
		return 0
	}
	return 1
}

// Count returns the number of results with the given outcome
func (s *UpgradeSummary) Count(outcome Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}
