package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// EnvPrefix is the prefix of every environment variable the tool reads
const EnvPrefix = "UPGRADE"

// DefaultManifestName is looked up in the working directory when --manifest is not given
const DefaultManifestName = "upgrade.toml"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	workDir := v.GetString("work_dir")
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}

	output, ok := config.ParseOutputFormat(v.GetString("output"))
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q (use table, json or yaml)", v.GetString("output"))
	}

	cfg := &config.RuntimeConfig{
		WorkDir:        workDir,
		ManifestPath:   v.GetString("manifest_path"),
		PrivateKey:     strings.TrimSpace(v.GetString("private_key")),
		ReceiptTimeout: v.GetDuration("receipt_timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		AssumeYes:      v.GetBool("yes"),
		Output:         output,
		MetricsFile:    v.GetString("metrics_file"),
		Timeout:        v.GetDuration("timeout"),
		Upgrade:        upgradeConfigFromViper(v),
	}

	if cfg.ReceiptTimeout <= 0 {
		return nil, fmt.Errorf("receipt_timeout must be positive, got %s", cfg.ReceiptTimeout)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll_interval must be positive, got %s", cfg.PollInterval)
	}

	gas, err := gasSettingsFromViper(v)
	if err != nil {
		return nil, err
	}
	cfg.Gas = gas

	network, err := resolveNetwork(v)
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	slog.Debug("runtime config loaded",
		"manifest", cfg.ManifestPath,
		"enabled_modules", cfg.Upgrade.EnabledCount(),
		"safety_checks", cfg.Upgrade.SafetyChecks,
	)

	return cfg, nil
}

// upgradeConfigFromViper builds the module table. Addresses are not validated
// here; UpgradeConfig.Plan reports problems as ConfigurationError.
func upgradeConfigFromViper(v *viper.Viper) domain.UpgradeConfig {
	uc := domain.UpgradeConfig{
		Modules:      make(map[domain.Module]domain.ModuleConfig, len(domain.UpgradeOrder)),
		SafetyChecks: v.GetBool("safety_checks"),
	}

	for _, module := range domain.UpgradeOrder {
		key := module.Key()
		uc.Modules[module] = domain.ModuleConfig{
			Enabled:        v.GetBool(key + ".enabled"),
			Proxy:          strings.TrimSpace(v.GetString(key + ".proxy")),
			Implementation: strings.TrimSpace(v.GetString(key + ".implementation")),
		}
	}

	return uc
}

func gasSettingsFromViper(v *viper.Viper) (config.GasSettings, error) {
	maxFee, err := GweiToWei(v.GetString("max_fee_gwei"))
	if err != nil {
		return config.GasSettings{}, fmt.Errorf("invalid max_fee_gwei: %w", err)
	}
	tip, err := GweiToWei(v.GetString("priority_fee_gwei"))
	if err != nil {
		return config.GasSettings{}, fmt.Errorf("invalid priority_fee_gwei: %w", err)
	}
	if maxFee != nil && tip != nil && tip.Cmp(maxFee) > 0 {
		return config.GasSettings{}, fmt.Errorf("priority_fee_gwei must not exceed max_fee_gwei")
	}

	return config.GasSettings{
		GasLimit:       v.GetUint64("gas_limit"),
		MaxFee:         maxFee,
		MaxPriorityFee: tip,
	}, nil
}

// resolveNetwork picks the RPC endpoint: an explicit rpc_url wins, otherwise
// the named network is looked up in the manifest's [networks] table.
func resolveNetwork(v *viper.Viper) (*config.Network, error) {
	chainID := v.GetUint64("chain_id")
	name := v.GetString("network")

	if rpcURL := strings.TrimSpace(v.GetString("rpc_url")); rpcURL != "" {
		if name == "" {
			name = "custom"
		}
		return &config.Network{Name: name, RPCURL: os.ExpandEnv(rpcURL), ChainID: chainID}, nil
	}

	if name == "" {
		return nil, nil
	}

	endpoints := v.GetStringMapString("networks")
	raw, ok := endpoints[strings.ToLower(name)]
	if !ok {
		known := getMapKeys(endpoints)
		sort.Strings(known)
		return nil, fmt.Errorf("network '%s' not found in [networks] (known: %s)", name, strings.Join(known, ", "))
	}

	rpcURL := os.ExpandEnv(raw)
	if rpcURL == "" {
		if envVar, isVar := DetectEnvVar(raw); isVar {
			return nil, fmt.Errorf("network '%s' uses ${%s} which is not set", name, envVar)
		}
		return nil, fmt.Errorf("network '%s' has an empty RPC URL", name)
	}

	return &config.Network{Name: name, RPCURL: rpcURL, ChainID: chainID}, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(workDir string, cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()

	// .env files must be loaded before anything reads the environment
	LoadDotEnv(workDir)

	// Set up environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("work_dir", workDir)
	v.SetDefault("safety_checks", true)
	v.SetDefault("receipt_timeout", "2m")
	v.SetDefault("poll_interval", "2s")
	v.SetDefault("timeout", "0s")
	v.SetDefault("output", string(config.OutputTable))
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)

	for _, f := range []string{"manifest", "network", "rpc-url", "chain-id"} {
		bindFlag(v, cmd, f)
	}

	manifestPath := v.GetString("manifest")
	explicit := manifestPath != ""
	if !explicit {
		manifestPath = filepath.Join(workDir, DefaultManifestName)
	}

	if _, err := os.Stat(manifestPath); err == nil {
		manifest, err := LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		applyManifestDefaults(v, manifest)
		v.Set("manifest_path", manifestPath)
	} else if explicit {
		return nil, fmt.Errorf("manifest %s not found", manifestPath)
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		bindFlag(v, cmd, f.Name)
	})

	return v, nil
}

// bindFlag binds a flag by name using the underscore form of its name as key
func bindFlag(v *viper.Viper, cmd *cobra.Command, name string) {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return
	}
	key := strings.ReplaceAll(f.Name, "-", "_")
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// getMapKeys returns the keys of a map as a slice
func getMapKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
