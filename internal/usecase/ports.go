package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/agentnft/beaconctl/internal/domain"
)

// ChainClient is the JSON-RPC surface the use cases need
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	StorageAt(ctx context.Context, addr common.Address, slot common.Hash) ([]byte, error)
	CodeAt(ctx context.Context, addr common.Address) ([]byte, error)
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	// SendTransaction signs req with signer and submits it. It returns once the
	// node accepted the transaction; it does not wait for inclusion.
	SendTransaction(ctx context.Context, req TxRequest, signer Signer) (common.Hash, error)
	// WaitForReceipt polls for the receipt of hash and returns *domain.TimeoutError
	// when it does not appear within timeout.
	WaitForReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error)
	NonceAt(ctx context.Context, account common.Address) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
}

// TxRequest describes a dynamic fee transaction. Zero or nil fields are
// filled in by the client from the node (nonce, gas estimate, fee suggestion).
type TxRequest struct {
	To             common.Address
	Data           []byte
	Value          *big.Int
	Nonce          *uint64
	GasLimit       uint64
	MaxFee         *big.Int
	MaxPriorityFee *big.Int
}

// Signer signs transactions for a single account
type Signer interface {
	// Address returns the signer's account, or the zero address when no key is configured
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// UpgradeableContract is the capability set of a beacon and of the proxies behind it
type UpgradeableContract interface {
	Address() common.Address
	Owner(ctx context.Context) (common.Address, error)
	Implementation(ctx context.Context) (common.Address, error)
	// Version reads version() and is meant to be called on a proxy
	Version(ctx context.Context) (string, error)
	// UpgradeTo submits upgradeTo(newImplementation) and returns the transaction hash
	UpgradeTo(ctx context.Context, newImplementation common.Address) (common.Hash, error)
}

// ContractBinder binds the upgradeable capability to an address
type ContractBinder interface {
	Bind(addr common.Address) UpgradeableContract
}

// TokenContract reads AgentNFT token state
type TokenContract interface {
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)
	DataDescriptionsOf(ctx context.Context, tokenID *big.Int) ([]string, error)
	DataHashesOf(ctx context.Context, tokenID *big.Int) ([]common.Hash, error)
}

// TokenBinder binds the AgentNFT read capability to an address
type TokenBinder interface {
	BindToken(addr common.Address) TokenContract
}

// UpgradeEventDecoder extracts beacon Upgraded events from receipt logs
type UpgradeEventDecoder interface {
	DecodeUpgraded(logs []*types.Log) []domain.UpgradedEvent
}

// Confirmer asks the operator to approve an action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// UpgradeMetrics records upgrade outcomes
type UpgradeMetrics interface {
	ObserveModule(result *domain.UpgradeResult)
	ObserveRun(summary *domain.UpgradeSummary)
	Flush() error
}

// NopMetrics discards all observations
type NopMetrics struct{}

func (NopMetrics) ObserveModule(*domain.UpgradeResult) {}
func (NopMetrics) ObserveRun(*domain.UpgradeSummary)   {}
func (NopMetrics) Flush() error                        { return nil }

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Progress stages reported by the use cases
const (
	StageResolving   = "Resolving"
	StageChecking    = "Checking"
	StageAuthorizing = "Authorizing"
	StageSubmitting  = "Submitting"
	StageConfirming  = "Confirming"
	StageVerifying   = "Verifying"
	StageModuleDone  = "ModuleDone"
	StageReplacing   = "Replacing"
	StageSettling    = "Settling"
	StageCompleted   = "Completed"
)
