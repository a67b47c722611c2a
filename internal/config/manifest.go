package config

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// LoadManifest reads and parses an upgrade.toml manifest
func LoadManifest(path string) (*config.ManifestFile, error) {
	var manifest config.ManifestFile

	md, err := toml.DecodeFile(path, &manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}

	for key := range manifest.Modules {
		if _, err := domain.ParseModule(key); err != nil {
			return nil, fmt.Errorf("%s: [modules.%s]: %w (known: %v)", path, key, err, domain.ModuleNames())
		}
	}

	return &manifest, nil
}

// applyManifestDefaults registers manifest values as viper defaults so that
// environment variables and flags still override them
func applyManifestDefaults(v *viper.Viper, manifest *config.ManifestFile) {
	u := manifest.Upgrade

	if u.Network != "" {
		v.SetDefault("network", u.Network)
	}
	if u.ChainID != 0 {
		v.SetDefault("chain_id", u.ChainID)
	}
	if u.SafetyChecks != nil {
		v.SetDefault("safety_checks", *u.SafetyChecks)
	}
	if u.ReceiptTimeout != "" {
		v.SetDefault("receipt_timeout", u.ReceiptTimeout)
	}
	if u.PollInterval != "" {
		v.SetDefault("poll_interval", u.PollInterval)
	}
	if u.GasLimit != 0 {
		v.SetDefault("gas_limit", u.GasLimit)
	}
	if u.MaxFeeGwei != 0 {
		v.SetDefault("max_fee_gwei", strconv.FormatFloat(u.MaxFeeGwei, 'f', -1, 64))
	}
	if u.PriorityFeeGwei != 0 {
		v.SetDefault("priority_fee_gwei", strconv.FormatFloat(u.PriorityFeeGwei, 'f', -1, 64))
	}

	if len(manifest.Networks) > 0 {
		v.SetDefault("networks", manifest.Networks)
	}

	for key, m := range manifest.Modules {
		module, err := domain.ParseModule(key)
		if err != nil {
			continue
		}
		prefix := module.Key()
		v.SetDefault(prefix+".enabled", m.Enabled)
		if m.Proxy != "" {
			v.SetDefault(prefix+".proxy", m.Proxy)
		}
		if m.Implementation != "" {
			v.SetDefault(prefix+".implementation", m.Implementation)
		}
	}
}
