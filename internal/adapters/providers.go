package adapters

import (
	"github.com/google/wire"

	"github.com/agentnft/beaconctl/internal/adapters/abi"
	"github.com/agentnft/beaconctl/internal/adapters/blockchain"
	"github.com/agentnft/beaconctl/internal/adapters/interactive"
	"github.com/agentnft/beaconctl/internal/adapters/metrics"
	"github.com/agentnft/beaconctl/internal/adapters/progress"
	"github.com/agentnft/beaconctl/internal/adapters/signer"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// BlockchainSet provides the JSON-RPC client and the contract bindings on top of it
var BlockchainSet = wire.NewSet(
	blockchain.NewClientAdapter,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.ClientAdapter)),

	blockchain.NewContractsAdapter,
	wire.Bind(new(usecase.ContractBinder), new(*blockchain.ContractsAdapter)),
	wire.Bind(new(usecase.TokenBinder), new(*blockchain.ContractsAdapter)),
)

// ABISet provides receipt log decoding
var ABISet = wire.NewSet(
	abi.NewEventDecoder,
	wire.Bind(new(usecase.UpgradeEventDecoder), new(*abi.EventDecoder)),
)

// SignerSet provides the transaction signer
var SignerSet = wire.NewSet(
	signer.NewPrivateKeySigner,
	wire.Bind(new(usecase.Signer), new(*signer.PrivateKeySigner)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPromptConfirmer,
	wire.Bind(new(usecase.Confirmer), new(*interactive.PromptConfirmer)),
)

// MetricsSet provides the Prometheus recorder
var MetricsSet = wire.NewSet(
	metrics.NewRecorder,
	wire.Bind(new(usecase.UpgradeMetrics), new(*metrics.Recorder)),
)

// ProgressSet provides the terminal progress sink
var ProgressSet = wire.NewSet(
	progress.ProvideProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BlockchainSet,
	ABISet,
	SignerSet,
	InteractiveSet,
	MetricsSet,
	ProgressSet,
)
