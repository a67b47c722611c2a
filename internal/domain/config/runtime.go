package config

import (
	"math/big"
	"time"

	"github.com/agentnft/beaconctl/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	WorkDir      string
	ManifestPath string // empty when no manifest was found

	// Network settings
	Network *Network

	// Signer
	PrivateKey string

	// Upgrade run
	Upgrade        domain.UpgradeConfig
	ReceiptTimeout time.Duration
	PollInterval   time.Duration
	Gas            GasSettings

	// Execution settings
	Debug          bool
	NonInteractive bool
	AssumeYes      bool
	Output         OutputFormat
	MetricsFile    string
	Timeout        time.Duration
}

// Network represents network configuration
type Network struct {
	ChainID uint64 `json:"chainId"`
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
}

// GasSettings are explicit gas values. Zero or nil means "ask the node".
type GasSettings struct {
	GasLimit       uint64
	MaxFee         *big.Int
	MaxPriorityFee *big.Int
}

// OutputFormat selects how results are printed
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates an output format name
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(s) {
	case "", OutputTable:
		return OutputTable, true
	case OutputJSON:
		return OutputJSON, true
	case OutputYAML:
		return OutputYAML, true
	default:
		return "", false
	}
}
