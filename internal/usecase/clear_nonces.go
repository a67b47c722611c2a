package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/time/rate"

	"github.com/agentnft/beaconctl/internal/domain"
)

// Replacement defaults: a plain transfer with fees high enough to displace
// whatever is sitting in the pool.
var (
	DefaultReplacementFees = domain.FeeCaps{
		MaxFee:         gwei(120),
		MaxPriorityFee: gwei(25),
	}
	DefaultEscalatedFees = domain.FeeCaps{
		MaxFee:         gwei(200),
		MaxPriorityFee: gwei(50),
	}
)

const (
	// DefaultReplacementGas is the intrinsic gas of a plain transfer
	DefaultReplacementGas uint64 = 21000
	// DefaultSendInterval paces replacements to stay under RPC rate limits
	DefaultSendInterval = 3 * time.Second
)

// GetNonceStatus reads the confirmed and pending nonce of the signer
type GetNonceStatus struct {
	chain  ChainClient
	signer Signer
}

// NewGetNonceStatus creates a new GetNonceStatus use case
func NewGetNonceStatus(chain ChainClient, signer Signer) *GetNonceStatus {
	return &GetNonceStatus{chain: chain, signer: signer}
}

// Run returns the nonce status of the signer account
func (uc *GetNonceStatus) Run(ctx context.Context) (*domain.NonceStatus, error) {
	account := uc.signer.Address()
	if account == (common.Address{}) {
		return nil, &domain.ConfigurationError{Field: "private_key", Reason: "required to inspect the signer's nonces"}
	}
	return readNonceStatus(ctx, uc.chain, account)
}

func readNonceStatus(ctx context.Context, chain ChainClient, account common.Address) (*domain.NonceStatus, error) {
	latest, err := chain.NonceAt(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest nonce: %w", err)
	}
	pending, err := chain.PendingNonceAt(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending nonce: %w", err)
	}
	return &domain.NonceStatus{Account: account, Latest: latest, Pending: pending}, nil
}

// ClearStuckNoncesParams contains parameters for clearing stuck nonces
type ClearStuckNoncesParams struct {
	Fees          domain.FeeCaps
	EscalatedFees domain.FeeCaps
	GasLimit      uint64
	// Interval is the minimum spacing between replacement sends; zero disables pacing
	Interval time.Duration
	// Settle is how long to wait before re-reading nonces; zero skips the re-read
	Settle time.Duration
}

// ClearStuckNonces replaces every pending nonce of the signer with a zero value
// self-transfer
type ClearStuckNonces struct {
	chain    ChainClient
	signer   Signer
	progress ProgressSink
	log      *slog.Logger
}

// NewClearStuckNonces creates a new ClearStuckNonces use case
func NewClearStuckNonces(chain ChainClient, signer Signer, progress ProgressSink, log *slog.Logger) *ClearStuckNonces {
	return &ClearStuckNonces{chain: chain, signer: signer, progress: progress, log: log}
}

// Run sends one replacement per stuck nonce, escalating fees once when the node
// reports the replacement as underpriced. Failed sends are recorded and the
// remaining nonces are still attempted.
func (uc *ClearStuckNonces) Run(ctx context.Context, params ClearStuckNoncesParams) (*domain.NonceClearResult, error) {
	account := uc.signer.Address()
	if account == (common.Address{}) {
		return nil, &domain.ConfigurationError{Field: "private_key", Reason: "required to clear stuck nonces"}
	}
	params = withReplacementDefaults(params)

	before, err := readNonceStatus(ctx, uc.chain, account)
	if err != nil {
		return nil, err
	}
	result := &domain.NonceClearResult{Before: *before}

	stuck := before.Stuck()
	if stuck == 0 {
		uc.progress.Info("No stuck transactions found")
		result.After = before
		return result, nil
	}

	limit := rate.Inf
	if params.Interval > 0 {
		limit = rate.Every(params.Interval)
	}
	limiter := rate.NewLimiter(limit, 1)

	for i := uint64(0); i < stuck; i++ {
		nonce := before.Latest + i
		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageReplacing,
			Current: int(i) + 1,
			Total:   int(stuck),
			Message: fmt.Sprintf("Replacing nonce %d", nonce),
			Spinner: true,
		})
		result.Replacements = append(result.Replacements, uc.replace(ctx, account, nonce, params))
	}

	if params.Settle <= 0 {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
		return result, nil
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageSettling,
		Message: fmt.Sprintf("Waiting %s for replacements to be mined", params.Settle),
		Spinner: true,
	})
	select {
	case <-ctx.Done():
		return result, ctx.Err()
	case <-time.After(params.Settle):
	}

	after, err := readNonceStatus(ctx, uc.chain, account)
	if err != nil {
		return result, err
	}
	result.After = after
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	return result, nil
}

func (uc *ClearStuckNonces) replace(ctx context.Context, account common.Address, nonce uint64, params ClearStuckNoncesParams) domain.NonceReplacement {
	rep := domain.NonceReplacement{Nonce: nonce}

	send := func(fees domain.FeeCaps) (common.Hash, error) {
		n := nonce
		return uc.chain.SendTransaction(ctx, TxRequest{
			To:             account,
			Value:          new(big.Int),
			Nonce:          &n,
			GasLimit:       params.GasLimit,
			MaxFee:         fees.MaxFee,
			MaxPriorityFee: fees.MaxPriorityFee,
		}, uc.signer)
	}

	hash, err := send(params.Fees)
	if err != nil && isUnderpriced(err) {
		uc.log.Debug("replacement underpriced, escalating fees", "nonce", nonce, "error", err)
		rep.Escalated = true
		hash, err = send(params.EscalatedFees)
	}
	if err != nil {
		uc.progress.Error(fmt.Sprintf("Failed to clear nonce %d: %v", nonce, err))
		rep.Error = err.Error()
		return rep
	}

	rep.TxHash = hash
	return rep
}

func withReplacementDefaults(params ClearStuckNoncesParams) ClearStuckNoncesParams {
	if params.Fees.MaxFee == nil {
		params.Fees.MaxFee = DefaultReplacementFees.MaxFee
	}
	if params.Fees.MaxPriorityFee == nil {
		params.Fees.MaxPriorityFee = DefaultReplacementFees.MaxPriorityFee
	}
	if params.EscalatedFees.MaxFee == nil {
		params.EscalatedFees.MaxFee = DefaultEscalatedFees.MaxFee
	}
	if params.EscalatedFees.MaxPriorityFee == nil {
		params.EscalatedFees.MaxPriorityFee = DefaultEscalatedFees.MaxPriorityFee
	}
	if params.GasLimit == 0 {
		params.GasLimit = DefaultReplacementGas
	}
	return params
}

func gwei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000))
}

// isUnderpriced matches the replacement rejections of geth and its forks
func isUnderpriced(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "underpriced") || strings.Contains(msg, "fee too low")
}
