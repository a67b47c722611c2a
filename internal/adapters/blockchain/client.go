package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// gasHeadroomPercent is applied on top of eth_estimateGas
const gasHeadroomPercent = 120

// ClientAdapter implements the ChainClient interface using ethclient.
// The connection is opened on first use, so commands that never reach the
// chain work without an RPC endpoint.
type ClientAdapter struct {
	network      *config.Network
	pollInterval time.Duration
	log          *slog.Logger

	mu      sync.Mutex
	client  *ethclient.Client
	chainID uint64
}

// NewClientAdapter creates a new chain client adapter
func NewClientAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ClientAdapter {
	return &ClientAdapter{
		network:      cfg.Network,
		pollInterval: cfg.PollInterval,
		log:          log.With("component", "chain"),
	}
}

// connect dials the RPC endpoint and checks the chain ID once
func (c *ClientAdapter) connect(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.network == nil || c.network.RPCURL == "" {
		return nil, &domain.ConfigurationError{Field: "network", Reason: "no RPC endpoint configured (use --network or --rpc-url)"}
	}

	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	// A configured chain ID of 0 accepts whatever the node reports
	if c.network.ChainID != 0 && networkChainID.Uint64() != c.network.ChainID {
		client.Close()
		return nil, &domain.ConfigurationError{
			Field:  "chain_id",
			Reason: fmt.Sprintf("chain ID mismatch: expected %d, got %d", c.network.ChainID, networkChainID.Uint64()),
		}
	}

	c.client = client
	c.chainID = networkChainID.Uint64()
	c.log.Debug("connected", "network", c.network.Name, "chain_id", c.chainID)
	return client, nil
}

// Close releases the RPC connection if one was opened
func (c *ClientAdapter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

// ChainID returns the chain ID reported by the node
func (c *ClientAdapter) ChainID(ctx context.Context) (uint64, error) {
	if _, err := c.connect(ctx); err != nil {
		return 0, err
	}
	return c.chainID, nil
}

// StorageAt reads one storage slot at the latest block
func (c *ClientAdapter) StorageAt(ctx context.Context, addr common.Address, slot common.Hash) ([]byte, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.StorageAt(ctx, addr, slot, nil)
}

// CodeAt returns the runtime bytecode at addr
func (c *ClientAdapter) CodeAt(ctx context.Context, addr common.Address) ([]byte, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.CodeAt(ctx, addr, nil)
}

// Call executes a read-only call against the latest block
func (c *ClientAdapter) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

// NonceAt returns the nonce of the latest block
func (c *ClientAdapter) NonceAt(ctx context.Context, account common.Address) (uint64, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	return client.NonceAt(ctx, account, nil)
}

// PendingNonceAt returns the nonce including transactions in the pool
func (c *ClientAdapter) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	return client.PendingNonceAt(ctx, account)
}

// SendTransaction fills in whatever req leaves open, signs and submits a
// dynamic fee transaction
func (c *ClientAdapter) SendTransaction(ctx context.Context, req usecase.TxRequest, signer usecase.Signer) (common.Hash, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	from := signer.Address()
	if from == (common.Address{}) {
		return common.Hash{}, domain.ErrNoSigner
	}

	var nonce uint64
	if req.Nonce != nil {
		nonce = *req.Nonce
	} else if nonce, err = client.PendingNonceAt(ctx, from); err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	tip, maxFee, err := c.fees(ctx, client, req.MaxPriorityFee, req.MaxFee)
	if err != nil {
		return common.Hash{}, err
	}

	gasLimit := req.GasLimit
	if gasLimit == 0 {
		estimate, err := client.EstimateGas(ctx, ethereum.CallMsg{
			From:      from,
			To:        &req.To,
			GasFeeCap: maxFee,
			GasTipCap: tip,
			Value:     value,
			Data:      req.Data,
		})
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
		}
		gasLimit = estimate * gasHeadroomPercent / 100
	}

	to := req.To
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   new(big.Int).SetUint64(c.chainID),
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: maxFee,
		Gas:       gasLimit,
		To:        &to,
		Value:     value,
		Data:      req.Data,
	})

	signed, err := signer.SignTx(tx, new(big.Int).SetUint64(c.chainID))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, err
	}

	c.log.Debug("transaction sent",
		"hash", signed.Hash().Hex(),
		"to", to.Hex(),
		"nonce", nonce,
		"gas", gasLimit,
		"max_fee", maxFee,
		"tip", tip,
	)
	return signed.Hash(), nil
}

// fees resolves the tip and fee cap. Missing values come from the node: the
// tip from eth_maxPriorityFeePerGas and the cap as twice the gas price plus
// the tip. The tip never exceeds the cap.
func (c *ClientAdapter) fees(ctx context.Context, client *ethclient.Client, tip, maxFee *big.Int) (*big.Int, *big.Int, error) {
	var err error
	if tip == nil {
		if tip, err = client.SuggestGasTipCap(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to suggest priority fee: %w", err)
		}
	}
	if maxFee == nil {
		price, err := client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to suggest gas price: %w", err)
		}
		maxFee = new(big.Int).Add(new(big.Int).Mul(price, big.NewInt(2)), tip)
	}
	if tip.Cmp(maxFee) > 0 {
		tip = new(big.Int).Set(maxFee)
	}
	return tip, maxFee, nil
}

// WaitForReceipt polls for the receipt of hash until timeout elapses
func (c *ClientAdapter) WaitForReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(waitCtx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) && waitCtx.Err() == nil {
			c.log.Debug("receipt poll failed", "hash", hash.Hex(), "error", err)
		}

		select {
		case <-waitCtx.Done():
			// A passed deadline leaves the tx pending, only cancellation is not a timeout
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, ctx.Err()
			}
			waited := timeout
			if ctx.Err() != nil {
				waited = time.Since(start).Round(time.Millisecond)
			}
			return nil, &domain.TimeoutError{TxHash: hash, Timeout: waited}
		case <-ticker.C:
		}
	}
}

// Ensure the adapter implements the interface
var _ usecase.ChainClient = (*ClientAdapter)(nil)
