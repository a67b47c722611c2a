package domain

import "github.com/ethereum/go-ethereum/common"

// BeaconInfo is the on-chain state of one module's proxy and beacon
type BeaconInfo struct {
	Module         Module         `json:"module" yaml:"module"`
	Enabled        bool           `json:"enabled" yaml:"enabled"`
	Proxy          common.Address `json:"proxy" yaml:"proxy"`
	Beacon         common.Address `json:"beacon" yaml:"beacon"`
	Implementation common.Address `json:"implementation" yaml:"implementation"`
	Owner          common.Address `json:"owner" yaml:"owner"`
	Version        string         `json:"version,omitempty" yaml:"version,omitempty"`
	PendingTarget  common.Address `json:"pendingTarget,omitempty" yaml:"pendingTarget,omitempty"`
	Errors         []string       `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// UpToDate reports whether the beacon already points at the configured target
func (b *BeaconInfo) UpToDate() bool {
	return b.PendingTarget != (common.Address{}) && b.PendingTarget == b.Implementation
}
