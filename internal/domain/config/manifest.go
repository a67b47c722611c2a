package config

// ManifestFile represents the raw upgrade.toml structure
//
//	[upgrade]
//	safety_checks = true
//	receipt_timeout = "2m"
//
//	[networks]
//	zg-testnet = "${ZG_TESTNET_RPC_URL}"
//
//	[modules.verifier]
//	enabled = true
//	proxy = "0x..."
//	implementation = "0x..."
type ManifestFile struct {
	Upgrade  ManifestUpgrade           `toml:"upgrade"`
	Networks map[string]string         `toml:"networks"`
	Modules  map[string]ManifestModule `toml:"modules"`
}

// ManifestUpgrade holds run-wide settings
type ManifestUpgrade struct {
	Network         string  `toml:"network"`
	ChainID         uint64  `toml:"chain_id"`
	SafetyChecks    *bool   `toml:"safety_checks"`
	ReceiptTimeout  string  `toml:"receipt_timeout"`
	PollInterval    string  `toml:"poll_interval"`
	GasLimit        uint64  `toml:"gas_limit"`
	MaxFeeGwei      float64 `toml:"max_fee_gwei"`
	PriorityFeeGwei float64 `toml:"priority_fee_gwei"`
}

// ManifestModule is one [modules.<key>] table
type ManifestModule struct {
	Enabled        bool   `toml:"enabled"`
	Proxy          string `toml:"proxy"`
	Implementation string `toml:"implementation"`
}
