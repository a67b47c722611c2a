package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

var (
	signerAddr = common.HexToAddress("0x5151515151515151515151515151515151515151")
	otherOwner = common.HexToAddress("0x0bad0bad0bad0bad0bad0bad0bad0bad0bad0bad")
	proxyA     = common.HexToAddress("0xa1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1")
	beaconA    = common.HexToAddress("0xb1b1b1b1b1b1b1b1b1b1b1b1b1b1b1b1b1b1b1b1")
	oldImplA   = common.HexToAddress("0xc0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0")
	newImplA   = common.HexToAddress("0xc1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1")
	proxyB     = common.HexToAddress("0xa2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2")
	beaconB    = common.HexToAddress("0xb2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2b2")
	oldImplB   = common.HexToAddress("0xd0d0d0d0d0d0d0d0d0d0d0d0d0d0d0d0d0d0d0d0")
	newImplB   = common.HexToAddress("0xd1d1d1d1d1d1d1d1d1d1d1d1d1d1d1d1d1d1d1d1")
	txHashA    = common.HexToHash("0xaaaa")
	txHashB    = common.HexToHash("0xbbbb")
	someCode   = []byte{0x60, 0x80, 0x60, 0x40}
)

type upgradeFixture struct {
	cfg       *config.RuntimeConfig
	chain     *MockChainClient
	binder    *MockBinder
	confirmer *MockConfirmer
	signer    staticSigner
	events    UpgradeEventDecoder
}

func newUpgradeFixture(modules map[domain.Module]domain.ModuleConfig) *upgradeFixture {
	return &upgradeFixture{
		cfg: &config.RuntimeConfig{
			Upgrade:        domain.UpgradeConfig{Modules: modules, SafetyChecks: true},
			ReceiptTimeout: time.Minute,
			AssumeYes:      true,
			Network:        &config.Network{Name: "zg-testnet", ChainID: 16602},
		},
		chain:     &MockChainClient{},
		binder:    NewMockBinder(),
		confirmer: &MockConfirmer{},
		signer:    staticSigner{addr: signerAddr},
	}
}

func (f *upgradeFixture) useCase(metrics UpgradeMetrics) *UpgradeBeacons {
	log := discardLogger()
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return NewUpgradeBeacons(
		f.cfg,
		NewStorageSlotReader(f.chain),
		NewSafetyValidator(f.chain, f.binder, log),
		NewAuthorizationChecker(f.binder),
		NewUpgradeExecutor(f.chain, f.binder, f.cfg),
		NewPostUpgradeVerifier(f.binder, f.events),
		f.binder,
		f.signer,
		f.confirmer,
		metrics,
		NopProgress{},
		log,
	)
}

// expectUpToOwner sets up beacon discovery, safety checks and ownership for one module
func (f *upgradeFixture) expectUpToOwner(proxy, beacon, newImpl, owner common.Address) {
	f.chain.On("StorageAt", mock.Anything, proxy, domain.BeaconSlot).Return(storageWord(beacon), nil)
	f.chain.On("CodeAt", mock.Anything, newImpl).Return(someCode, nil)
	f.chain.On("CodeAt", mock.Anything, proxy).Return(someCode, nil)
	f.binder.Contract(proxy).On("Version", mock.Anything).Return("1.2.0", nil)
	f.binder.Contract(beacon).On("Owner", mock.Anything).Return(owner, nil)
}

// expectUpgrade sets up a successful upgrade from oldImpl to newImpl
func (f *upgradeFixture) expectUpgrade(proxy, beacon, oldImpl, newImpl common.Address, hash common.Hash) {
	f.expectUpToOwner(proxy, beacon, newImpl, signerAddr)
	b := f.binder.Contract(beacon)
	b.On("Implementation", mock.Anything).Return(oldImpl, nil).Once()
	b.On("UpgradeTo", mock.Anything, newImpl).Return(hash, nil).Once()
	f.chain.On("WaitForReceipt", mock.Anything, hash, time.Minute).Return(&types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      hash,
		BlockNumber: big.NewInt(4242),
		GasUsed:     31_337,
	}, nil).Once()
	b.On("Implementation", mock.Anything).Return(newImpl, nil)
}

func enabled(proxy, impl common.Address) domain.ModuleConfig {
	return domain.ModuleConfig{Enabled: true, Proxy: proxy.Hex(), Implementation: impl.Hex()}
}

func TestStorageSlotReader(t *testing.T) {
	t.Run("discovery is idempotent", func(t *testing.T) {
		chain := &MockChainClient{}
		chain.On("StorageAt", mock.Anything, proxyA, domain.BeaconSlot).Return(storageWord(beaconA), nil).Twice()

		reader := NewStorageSlotReader(chain)
		first, err := reader.ReadBeacon(context.Background(), proxyA)
		require.NoError(t, err)
		second, err := reader.ReadBeacon(context.Background(), proxyA)
		require.NoError(t, err)

		assert.Equal(t, beaconA, first)
		assert.Equal(t, first, second)
		chain.AssertExpectations(t)
	})

	t.Run("unset slot is the zero address", func(t *testing.T) {
		chain := &MockChainClient{}
		chain.On("StorageAt", mock.Anything, proxyA, domain.BeaconSlot).Return(make([]byte, 32), nil)

		beacon, err := NewStorageSlotReader(chain).ReadBeacon(context.Background(), proxyA)
		require.NoError(t, err)
		assert.Equal(t, common.Address{}, beacon)
	})

	t.Run("network failure", func(t *testing.T) {
		chain := &MockChainClient{}
		chain.On("StorageAt", mock.Anything, proxyA, domain.BeaconSlot).Return(nil, errors.New("connection refused"))

		_, err := NewStorageSlotReader(chain).ReadBeacon(context.Background(), proxyA)
		var readErr *domain.StorageReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, proxyA, readErr.Proxy)
	})
}

func TestAuthorizationChecker(t *testing.T) {
	binder := NewMockBinder()
	binder.Contract(beaconA).On("Owner", mock.Anything).Return(signerAddr, nil)
	checker := NewAuthorizationChecker(binder)

	for _, signer := range []string{
		signerAddr.Hex(),
		strings.ToLower(signerAddr.Hex()),
		"0x" + strings.ToUpper(signerAddr.Hex()[2:]),
	} {
		ok, owner, err := checker.VerifyOwner(context.Background(), beaconA, signer)
		require.NoError(t, err)
		assert.True(t, ok, signer)
		assert.Equal(t, signerAddr, owner)
	}

	ok, _, err := checker.VerifyOwner(context.Background(), beaconA, otherOwner.Hex())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSafetyValidator(t *testing.T) {
	t.Run("missing implementation code fails", func(t *testing.T) {
		chain := &MockChainClient{}
		chain.On("CodeAt", mock.Anything, newImplA).Return([]byte{}, nil)
		chain.On("CodeAt", mock.Anything, proxyA).Return(someCode, nil)

		report, err := NewSafetyValidator(chain, NewMockBinder(), discardLogger()).Check(context.Background(), proxyA, newImplA)
		require.NoError(t, err)
		assert.False(t, report.OK)
		require.Len(t, report.Failures, 1)
		assert.Contains(t, report.Failures[0], "no code at implementation")
	})

	t.Run("unreadable version is a warning", func(t *testing.T) {
		chain := &MockChainClient{}
		chain.On("CodeAt", mock.Anything, mock.Anything).Return(someCode, nil)
		binder := NewMockBinder()
		binder.Contract(proxyA).On("Version", mock.Anything).Return("", errors.New("execution reverted"))

		report, err := NewSafetyValidator(chain, binder, discardLogger()).Check(context.Background(), proxyA, newImplA)
		require.NoError(t, err)
		assert.True(t, report.OK)
		assert.Empty(t, report.Version)
		require.Len(t, report.Warnings, 1)
	})
}

func TestUpgradeBeacons_Success(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleAgentNFT: enabled(proxyA, newImplA),
	})
	f.expectUpgrade(proxyA, beaconA, oldImplA, newImplA, txHashA)

	summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
	require.NoError(t, err)

	require.Len(t, summary.Results, len(domain.UpgradeOrder))
	result := summary.Results[2]
	assert.Equal(t, domain.ModuleAgentNFT, result.Module)
	assert.Equal(t, domain.OutcomeSuccess, result.Outcome)
	assert.Equal(t, domain.StateVerified, result.State)
	assert.Equal(t, beaconA, result.Beacon)
	assert.Equal(t, oldImplA, result.PreviousImplementation)
	assert.Equal(t, newImplA, result.Implementation)
	assert.NotEqual(t, result.PreviousImplementation, result.Implementation)
	assert.Equal(t, txHashA, result.TxHash)
	assert.Equal(t, uint64(4242), result.BlockNumber)
	assert.Equal(t, "1.2.0", result.Version)
	assert.NoError(t, result.Err)

	assert.True(t, summary.Success())
	assert.Equal(t, 0, summary.ExitCode())
	assert.Equal(t, 1, summary.TransactionsSubmitted)
	assert.Equal(t, signerAddr, summary.Signer)
	assert.Equal(t, uint64(16602), summary.ChainID)
	f.chain.AssertExpectations(t)
	f.binder.AssertExpectations(t)
}

func TestUpgradeBeacons_NonCascadingFailure(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleVerifier: enabled(proxyA, newImplA),
		domain.ModuleAgentNFT: enabled(proxyB, newImplB),
	})
	f.expectUpToOwner(proxyA, beaconA, newImplA, otherOwner)
	f.expectUpgrade(proxyB, beaconB, oldImplB, newImplB, txHashB)

	summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
	require.NoError(t, err)

	verifier := summary.Results[1]
	assert.Equal(t, domain.ModuleVerifier, verifier.Module)
	assert.Equal(t, domain.OutcomeFailed, verifier.Outcome)
	assert.Equal(t, domain.StateSafetyChecked, verifier.FailedAt)
	var authErr *domain.AuthorizationError
	require.ErrorAs(t, verifier.Err, &authErr)
	assert.Equal(t, otherOwner, authErr.Owner)
	assert.Equal(t, signerAddr.Hex(), authErr.Signer)

	agentNFT := summary.Results[2]
	assert.Equal(t, domain.OutcomeSuccess, agentNFT.Outcome)

	assert.Equal(t, domain.OutcomeSkipped, summary.Results[0].Outcome)
	assert.Equal(t, domain.OutcomeSkipped, summary.Results[3].Outcome)
	assert.False(t, summary.Success())
	assert.Equal(t, 1, summary.ExitCode())
	assert.Equal(t, 1, summary.TransactionsSubmitted)
	f.binder.Contract(beaconA).AssertNotCalled(t, "UpgradeTo", mock.Anything, mock.Anything)
}

func TestUpgradeBeacons_VacuousSuccess(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleVerifier: {Enabled: false, Proxy: proxyA.Hex()},
	})
	f.signer = staticSigner{}
	f.cfg.AssumeYes = false

	summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
	require.NoError(t, err)

	assert.True(t, summary.Success())
	assert.Equal(t, 0, summary.ExitCode())
	assert.Zero(t, summary.TransactionsSubmitted)
	assert.Equal(t, len(domain.UpgradeOrder), summary.Count(domain.OutcomeSkipped))
	for _, r := range summary.Results {
		assert.Equal(t, domain.StateSkipped, r.State)
	}
	assert.Empty(t, f.chain.Calls)
	assert.Empty(t, f.confirmer.Calls)
}

func TestUpgradeBeacons_ConfigurationAbort(t *testing.T) {
	tests := []struct {
		name    string
		modules map[domain.Module]domain.ModuleConfig
		signer  staticSigner
		only    []string
		field   string
		reason  string
	}{
		{
			name: "enabled module without proxy",
			modules: map[domain.Module]domain.ModuleConfig{
				domain.ModuleTEEVerifier: {Enabled: true, Implementation: newImplA.Hex()},
				domain.ModuleAgentNFT:    enabled(proxyB, newImplB),
			},
			signer: staticSigner{addr: signerAddr},
			field:  "proxy",
		},
		{
			name: "missing signer",
			modules: map[domain.Module]domain.ModuleConfig{
				domain.ModuleAgentNFT: enabled(proxyB, newImplB),
			},
			field: "private_key",
		},
		{
			name: "unknown module in only",
			modules: map[domain.Module]domain.ModuleConfig{
				domain.ModuleAgentNFT: enabled(proxyB, newImplB),
			},
			signer: staticSigner{addr: signerAddr},
			only:   []string{"agentnf"},
			field:  "only",
			reason: `did you mean "(AgentNFT|agent_nft)"\?`,
		},
		{
			name: "only names a disabled module",
			modules: map[domain.Module]domain.ModuleConfig{
				domain.ModuleAgentNFT: enabled(proxyB, newImplB),
			},
			signer: staticSigner{addr: signerAddr},
			only:   []string{"verifier"},
			field:  "enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUpgradeFixture(tt.modules)
			f.signer = tt.signer

			summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{Only: tt.only})
			assert.Nil(t, summary)

			var cfgErr *domain.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			if tt.reason != "" {
				assert.Regexp(t, tt.reason, cfgErr.Reason)
			}
			assert.Empty(t, f.chain.Calls, "no network calls before validation")
		})
	}
}

func TestUpgradeBeacons_SafetyGating(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleAgentMarket: enabled(proxyA, newImplA),
	})
	f.chain.On("StorageAt", mock.Anything, proxyA, domain.BeaconSlot).Return(storageWord(beaconA), nil)
	f.chain.On("CodeAt", mock.Anything, newImplA).Return(nil, nil)
	f.chain.On("CodeAt", mock.Anything, proxyA).Return(someCode, nil)

	summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
	require.NoError(t, err)

	result := summary.Results[3]
	assert.Equal(t, domain.OutcomeFailed, result.Outcome)
	assert.Equal(t, domain.StatePending, result.FailedAt)
	assert.Equal(t, domain.KindSafetyCheck, result.ErrorKind())
	assert.Zero(t, summary.TransactionsSubmitted)
	f.binder.Contract(beaconA).AssertNotCalled(t, "UpgradeTo", mock.Anything, mock.Anything)
	f.binder.Contract(beaconA).AssertNotCalled(t, "Owner", mock.Anything)
}

func TestUpgradeBeacons_SafetyChecksDisabled(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleAgentNFT: enabled(proxyA, newImplA),
	})
	f.cfg.Upgrade.SafetyChecks = false

	f.chain.On("StorageAt", mock.Anything, proxyA, domain.BeaconSlot).Return(storageWord(beaconA), nil)
	b := f.binder.Contract(beaconA)
	b.On("Owner", mock.Anything).Return(signerAddr, nil)
	b.On("Implementation", mock.Anything).Return(newImplA, nil)
	b.On("UpgradeTo", mock.Anything, newImplA).Return(txHashA, nil)
	f.chain.On("WaitForReceipt", mock.Anything, txHashA, time.Minute).
		Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: txHashA, BlockNumber: big.NewInt(1)}, nil)

	summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
	require.NoError(t, err)

	result := summary.Results[2]
	assert.Equal(t, domain.OutcomeSuccess, result.Outcome)
	assert.Contains(t, result.Warnings, "safety checks disabled")
	assert.Contains(t, result.Warnings, "beacon already points to the target implementation")
	f.chain.AssertNotCalled(t, "CodeAt", mock.Anything, mock.Anything)
}

func TestUpgradeBeacons_PipelineFailures(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(f *upgradeFixture)
		kind      string
		failedAt  domain.UpgradeState
		submitted int
	}{
		{
			name: "empty beacon slot",
			setup: func(f *upgradeFixture) {
				f.chain.On("StorageAt", mock.Anything, proxyA, domain.BeaconSlot).Return(make([]byte, 32), nil)
			},
			kind:     domain.KindStorageRead,
			failedAt: domain.StatePending,
		},
		{
			name: "owner read fails",
			setup: func(f *upgradeFixture) {
				f.chain.On("StorageAt", mock.Anything, proxyA, domain.BeaconSlot).Return(storageWord(beaconA), nil)
				f.chain.On("CodeAt", mock.Anything, mock.Anything).Return(someCode, nil)
				f.binder.Contract(proxyA).On("Version", mock.Anything).Return("1", nil)
				f.binder.Contract(beaconA).On("Owner", mock.Anything).Return(common.Address{}, errors.New("rpc down"))
			},
			kind:     domain.KindAuthorization,
			failedAt: domain.StateSafetyChecked,
		},
		{
			name: "node rejects the transaction",
			setup: func(f *upgradeFixture) {
				f.expectUpToOwner(proxyA, beaconA, newImplA, signerAddr)
				b := f.binder.Contract(beaconA)
				b.On("Implementation", mock.Anything).Return(oldImplA, nil)
				b.On("UpgradeTo", mock.Anything, newImplA).Return(common.Hash{}, errors.New("insufficient funds"))
			},
			kind:     domain.KindTransaction,
			failedAt: domain.StateAuthorized,
		},
		{
			name: "transaction reverts",
			setup: func(f *upgradeFixture) {
				f.expectUpToOwner(proxyA, beaconA, newImplA, signerAddr)
				b := f.binder.Contract(beaconA)
				b.On("Implementation", mock.Anything).Return(oldImplA, nil)
				b.On("UpgradeTo", mock.Anything, newImplA).Return(txHashA, nil)
				f.chain.On("WaitForReceipt", mock.Anything, txHashA, time.Minute).
					Return(&types.Receipt{Status: types.ReceiptStatusFailed, TxHash: txHashA, BlockNumber: big.NewInt(9)}, nil)
			},
			kind:      domain.KindTransaction,
			failedAt:  domain.StateAuthorized,
			submitted: 1,
		},
		{
			name: "receipt wait times out",
			setup: func(f *upgradeFixture) {
				f.expectUpToOwner(proxyA, beaconA, newImplA, signerAddr)
				b := f.binder.Contract(beaconA)
				b.On("Implementation", mock.Anything).Return(oldImplA, nil)
				b.On("UpgradeTo", mock.Anything, newImplA).Return(txHashA, nil)
				f.chain.On("WaitForReceipt", mock.Anything, txHashA, time.Minute).
					Return(nil, &domain.TimeoutError{TxHash: txHashA, Timeout: time.Minute})
			},
			kind:      domain.KindTimeout,
			failedAt:  domain.StateAuthorized,
			submitted: 1,
		},
		{
			name: "beacon still points elsewhere",
			setup: func(f *upgradeFixture) {
				f.expectUpToOwner(proxyA, beaconA, newImplA, signerAddr)
				b := f.binder.Contract(beaconA)
				b.On("Implementation", mock.Anything).Return(oldImplA, nil)
				b.On("UpgradeTo", mock.Anything, newImplA).Return(txHashA, nil)
				f.chain.On("WaitForReceipt", mock.Anything, txHashA, time.Minute).
					Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: txHashA, BlockNumber: big.NewInt(9)}, nil)
			},
			kind:      domain.KindVerificationMismatch,
			failedAt:  domain.StateExecuted,
			submitted: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
				domain.ModuleVerifier: enabled(proxyA, newImplA),
			})
			tt.setup(f)

			summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
			require.NoError(t, err)

			result := summary.Results[1]
			assert.Equal(t, domain.OutcomeFailed, result.Outcome)
			assert.Equal(t, domain.StateFailed, result.State)
			assert.Equal(t, tt.kind, result.ErrorKind())
			assert.Equal(t, tt.failedAt, result.FailedAt)
			assert.Equal(t, tt.submitted, summary.TransactionsSubmitted)
			assert.False(t, summary.Success())
			assert.Equal(t, 1, summary.ExitCode())
		})
	}
}

func TestUpgradeBeacons_Timeout(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleTEEVerifier: enabled(proxyA, newImplA),
	})
	f.expectUpToOwner(proxyA, beaconA, newImplA, signerAddr)
	b := f.binder.Contract(beaconA)
	b.On("Implementation", mock.Anything).Return(oldImplA, nil)
	b.On("UpgradeTo", mock.Anything, newImplA).Return(txHashA, nil)
	f.chain.On("WaitForReceipt", mock.Anything, txHashA, time.Minute).
		Return(nil, &domain.TimeoutError{TxHash: txHashA, Timeout: time.Minute})

	summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
	require.NoError(t, err)

	var timeoutErr *domain.TimeoutError
	require.ErrorAs(t, summary.Results[0].Err, &timeoutErr)
	assert.Equal(t, txHashA, timeoutErr.TxHash)

	var txErr *domain.TransactionError
	assert.False(t, errors.As(summary.Results[0].Err, &txErr), "timeout must not be reported as a transaction error")
	assert.False(t, summary.Success())
}

func TestUpgradeExecutor_DeadlineIsTimeout(t *testing.T) {
	f := newUpgradeFixture(nil)
	f.binder.Contract(beaconA).On("UpgradeTo", mock.Anything, newImplA).Return(txHashA, nil)
	f.chain.On("WaitForReceipt", mock.Anything, txHashA, time.Minute).
		Return(nil, fmt.Errorf("poll receipt: %w", context.DeadlineExceeded))

	_, err := NewUpgradeExecutor(f.chain, f.binder, f.cfg).Execute(context.Background(), beaconA, newImplA)

	var timeoutErr *domain.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, txHashA, timeoutErr.TxHash)
	assert.Equal(t, domain.KindTimeout, domain.ErrorKind(err))
	assert.True(t, submitted(nil, err))
}

func TestUpgradeBeacons_InterruptedRun(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleVerifier: enabled(proxyA, newImplA),
		domain.ModuleAgentNFT: enabled(proxyB, newImplB),
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.expectUpToOwner(proxyA, beaconA, newImplA, signerAddr)
	b := f.binder.Contract(beaconA)
	b.On("Implementation", mock.Anything).Return(oldImplA, nil).Once()
	b.On("UpgradeTo", mock.Anything, newImplA).Return(txHashA, nil)
	f.chain.On("WaitForReceipt", mock.Anything, txHashA, time.Minute).
		Run(func(mock.Arguments) { cancel() }).
		Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: txHashA, BlockNumber: big.NewInt(1)}, nil)
	b.On("Implementation", mock.Anything).Return(newImplA, nil)

	summary, err := f.useCase(nil).Run(ctx, UpgradeBeaconsParams{})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeSuccess, summary.Results[1].Outcome)

	result := summary.Results[2]
	assert.Equal(t, domain.OutcomeFailed, result.Outcome)
	assert.Equal(t, domain.StatePending, result.FailedAt)
	assert.Equal(t, domain.KindInterrupted, result.ErrorKind())
	assert.ErrorIs(t, result.Err, context.Canceled)
	assert.Equal(t, proxyB, result.Proxy)
	assert.Equal(t, 1, summary.TransactionsSubmitted)
	assert.Equal(t, 1, summary.ExitCode())
	f.chain.AssertNotCalled(t, "StorageAt", mock.Anything, proxyB, mock.Anything)
}

func TestUpgradeBeacons_OnlyFilter(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleVerifier: enabled(proxyA, newImplA),
		domain.ModuleAgentNFT: enabled(proxyB, newImplB),
	})
	f.expectUpgrade(proxyB, beaconB, oldImplB, newImplB, txHashB)

	summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{Only: []string{"agent_nft"}})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeSkipped, summary.Results[1].Outcome)
	assert.Contains(t, summary.Results[1].Warnings, "excluded by --only")
	assert.Equal(t, domain.OutcomeSuccess, summary.Results[2].Outcome)
	f.chain.AssertNotCalled(t, "StorageAt", mock.Anything, proxyA, mock.Anything)
}

func TestUpgradeBeacons_Confirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
			domain.ModuleAgentNFT: enabled(proxyA, newImplA),
		})
		f.cfg.AssumeYes = false
		f.confirmer.On("Confirm", mock.Anything, mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, "1 module(s)") && strings.Contains(p, "zg-testnet")
		})).Return(false, nil)

		summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
		assert.Nil(t, summary)
		assert.ErrorIs(t, err, domain.ErrAborted)
		assert.Empty(t, f.chain.Calls)
		f.confirmer.AssertExpectations(t)
	})

	t.Run("non-interactive skips the prompt", func(t *testing.T) {
		f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
			domain.ModuleAgentNFT: enabled(proxyA, newImplA),
		})
		f.cfg.AssumeYes = false
		f.cfg.NonInteractive = true
		f.expectUpgrade(proxyA, beaconA, oldImplA, newImplA, txHashA)

		summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
		require.NoError(t, err)
		assert.True(t, summary.Success())
		assert.Empty(t, f.confirmer.Calls)
	})
}

func TestUpgradeBeacons_Metrics(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleAgentNFT: enabled(proxyA, newImplA),
	})
	f.expectUpgrade(proxyA, beaconA, oldImplA, newImplA, txHashA)

	metrics := &MockMetrics{}
	metrics.On("ObserveModule", mock.Anything).Return().Times(len(domain.UpgradeOrder))
	metrics.On("ObserveRun", mock.MatchedBy(func(s *domain.UpgradeSummary) bool { return s.Success() })).Return().Once()
	metrics.On("Flush").Return(errors.New("read-only file system")).Once()

	summary, err := f.useCase(metrics).Run(context.Background(), UpgradeBeaconsParams{})
	require.NoError(t, err, "metrics errors do not fail the run")
	assert.True(t, summary.Success())
	metrics.AssertExpectations(t)
}

// stubEvents returns fixed events for any receipt
type stubEvents []domain.UpgradedEvent

func (s stubEvents) DecodeUpgraded([]*types.Log) []domain.UpgradedEvent {
	return s
}

func TestPostUpgradeVerifier_CheckReceipt(t *testing.T) {
	receipt := &types.Receipt{TxHash: txHashA}

	tests := []struct {
		name   string
		events UpgradeEventDecoder
		want   string
	}{
		{"no decoder", nil, ""},
		{"matching event", stubEvents{{Beacon: beaconA, Implementation: newImplA}}, ""},
		{"no event", stubEvents{}, "receipt has no Upgraded event from the beacon"},
		{"event from another contract", stubEvents{{Beacon: beaconB, Implementation: newImplA}}, "receipt has no Upgraded event from the beacon"},
		{
			"other implementation",
			stubEvents{{Beacon: beaconA, Implementation: oldImplA}},
			"receipt reports Upgraded(" + oldImplA.Hex() + "), expected " + newImplA.Hex(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewPostUpgradeVerifier(NewMockBinder(), tt.events)
			assert.Equal(t, tt.want, v.CheckReceipt(receipt, beaconA, newImplA))
		})
	}
}

func TestUpgradeBeacons_ReceiptEventWarning(t *testing.T) {
	f := newUpgradeFixture(map[domain.Module]domain.ModuleConfig{
		domain.ModuleVerifier: enabled(proxyA, newImplA),
	})
	f.events = stubEvents{}
	f.expectUpgrade(proxyA, beaconA, oldImplA, newImplA, txHashA)

	summary, err := f.useCase(nil).Run(context.Background(), UpgradeBeaconsParams{})
	require.NoError(t, err)

	result := summary.Results[1]
	assert.Equal(t, domain.OutcomeSuccess, result.Outcome, "the on-chain read decides the outcome")
	assert.Contains(t, result.Warnings, "receipt has no Upgraded event from the beacon")
}
