package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// UpgradeExecutor submits the upgrade transaction and waits for its receipt
type UpgradeExecutor struct {
	chain     ChainClient
	contracts ContractBinder
	timeout   time.Duration
}

// NewUpgradeExecutor creates a new UpgradeExecutor
func NewUpgradeExecutor(chain ChainClient, contracts ContractBinder, cfg *config.RuntimeConfig) *UpgradeExecutor {
	return &UpgradeExecutor{chain: chain, contracts: contracts, timeout: cfg.ReceiptTimeout}
}

// Execute sends exactly one upgradeTo transaction. It never retries. A
// rejected or reverted transaction is a *domain.TransactionError; a receipt that
// does not arrive in time, including when ctx's deadline passes first, is a
// *domain.TimeoutError. The receipt is returned whenever one was obtained,
// including for reverts.
func (e *UpgradeExecutor) Execute(ctx context.Context, beacon, newImpl common.Address) (*types.Receipt, error) {
	hash, err := e.contracts.Bind(beacon).UpgradeTo(ctx, newImpl)
	if err != nil {
		return nil, &domain.TransactionError{Beacon: beacon, Err: err}
	}

	receipt, err := e.chain.WaitForReceipt(ctx, hash, e.timeout)
	if err != nil {
		var timeoutErr *domain.TimeoutError
		if errors.As(err, &timeoutErr) {
			return nil, timeoutErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &domain.TimeoutError{TxHash: hash, Timeout: e.timeout}
		}
		return nil, &domain.TransactionError{Beacon: beacon, TxHash: hash, Err: err}
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, &domain.TransactionError{
			Beacon: beacon,
			TxHash: hash,
			Err:    fmt.Errorf("reverted in block %v", receipt.BlockNumber),
		}
	}

	return receipt, nil
}

// submitted reports whether an Execute outcome means a transaction reached the node
func submitted(receipt *types.Receipt, err error) bool {
	if receipt != nil {
		return true
	}
	var timeoutErr *domain.TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}
	var txErr *domain.TransactionError
	return errors.As(err, &txErr) && txErr.TxHash != (common.Hash{})
}
