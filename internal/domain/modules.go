package domain

import (
	"fmt"
	"strings"
)

// Module identifies one beacon-proxied contract module
type Module string

const (
	ModuleTEEVerifier Module = "TEEVerifier"
	ModuleVerifier    Module = "Verifier"
	ModuleAgentNFT    Module = "AgentNFT"
	ModuleAgentMarket Module = "AgentMarket"
)

// UpgradeOrder is the fixed dependency order modules are processed in.
// The attestation verifiers come first; the token and marketplace follow.
var UpgradeOrder = []Module{
	ModuleTEEVerifier,
	ModuleVerifier,
	ModuleAgentNFT,
	ModuleAgentMarket,
}

var moduleKeys = map[Module]string{
	ModuleTEEVerifier: "tee_verifier",
	ModuleVerifier:    "verifier",
	ModuleAgentNFT:    "agent_nft",
	ModuleAgentMarket: "agent_market",
}

// Key returns the configuration key of the module (e.g. "agent_nft")
func (m Module) Key() string {
	if key, ok := moduleKeys[m]; ok {
		return key
	}
	return strings.ToLower(string(m))
}

func (m Module) String() string {
	return string(m)
}

// ModuleNames returns the names of all known modules in upgrade order
func ModuleNames() []string {
	names := make([]string, len(UpgradeOrder))
	for i, m := range UpgradeOrder {
		names[i] = string(m)
	}
	return names
}

// ParseModule resolves a module by name or configuration key, case-insensitively
func ParseModule(name string) (Module, error) {
	for _, m := range UpgradeOrder {
		if strings.EqualFold(name, string(m)) || strings.EqualFold(name, m.Key()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown module %q", name)
}
