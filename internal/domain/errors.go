package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrInvalidAddress is returned when an Ethereum address is malformed
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNoSigner is returned when a state-changing call is attempted without a signer
	ErrNoSigner = errors.New("no signer configured")

	// ErrAborted is returned when the operator declines to proceed
	ErrAborted = errors.New("aborted by operator")

	// ErrUpgradeFailed is returned when at least one enabled module failed
	ErrUpgradeFailed = errors.New("upgrade failed")

	// ErrInterrupted marks modules not started because the run's context ended
	ErrInterrupted = errors.New("not attempted, run interrupted")
)

// Error kinds, used for rendering and metrics labels
const (
	KindConfiguration        = "ConfigurationError"
	KindStorageRead          = "StorageReadError"
	KindSafetyCheck          = "SafetyCheckError"
	KindAuthorization        = "AuthorizationError"
	KindTransaction          = "TransactionError"
	KindTimeout              = "TimeoutError"
	KindVerificationMismatch = "VerificationMismatch"
	KindInterrupted          = "Interrupted"
	KindUnknown              = "Error"
)

// ConfigurationError aborts the whole run. It is never recorded per module.
type ConfigurationError struct {
	Module Module
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s.%s: %s", e.Module.Key(), e.Field, e.Reason)
}

// StorageReadError means the beacon of a proxy could not be resolved
type StorageReadError struct {
	Proxy common.Address
	Err   error
}

func (e *StorageReadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("beacon slot of proxy %s is empty (not a beacon proxy)", e.Proxy.Hex())
	}
	return fmt.Sprintf("failed to read beacon slot of proxy %s: %v", e.Proxy.Hex(), e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// SafetyCheckError means a pre-upgrade check failed; no transaction was sent
type SafetyCheckError struct {
	Proxy          common.Address
	Implementation common.Address
	Failures       []string
}

func (e *SafetyCheckError) Error() string {
	return fmt.Sprintf("safety checks failed: %s", strings.Join(e.Failures, "; "))
}

// AuthorizationError means the signer does not own the beacon
type AuthorizationError struct {
	Beacon common.Address
	Signer string
	Owner  common.Address
	Err    error
}

func (e *AuthorizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to read owner of beacon %s: %v", e.Beacon.Hex(), e.Err)
	}
	return fmt.Sprintf("signer %s is not the owner of beacon %s (owner is %s)",
		e.Signer, e.Beacon.Hex(), e.Owner.Hex())
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// TransactionError means the upgrade call was rejected or reverted
type TransactionError struct {
	Beacon common.Address
	TxHash common.Hash
	Err    error
}

func (e *TransactionError) Error() string {
	if e.TxHash == (common.Hash{}) {
		return fmt.Sprintf("upgrade transaction for beacon %s rejected: %v", e.Beacon.Hex(), e.Err)
	}
	return fmt.Sprintf("upgrade transaction %s for beacon %s failed: %v", e.TxHash.Hex(), e.Beacon.Hex(), e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// TimeoutError means a submitted transaction was not confirmed in time.
// The transaction may still confirm later; check chain state before retrying.
type TimeoutError struct {
	TxHash  common.Hash
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed within %s (it may still be mined, check chain state)",
		e.TxHash.Hex(), e.Timeout)
}

// VerificationMismatch means the beacon does not point at the expected
// implementation after a confirmed upgrade
type VerificationMismatch struct {
	Beacon   common.Address
	Expected common.Address
	Actual   common.Address
	Err      error
}

func (e *VerificationMismatch) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to read implementation of beacon %s: %v", e.Beacon.Hex(), e.Err)
	}
	return fmt.Sprintf("beacon %s points to %s, expected %s",
		e.Beacon.Hex(), e.Actual.Hex(), e.Expected.Hex())
}

func (e *VerificationMismatch) Unwrap() error { return e.Err }

// ErrorKind returns the taxonomy name of err
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var (
		configErr   *ConfigurationError
		storageErr  *StorageReadError
		safetyErr   *SafetyCheckError
		authErr     *AuthorizationError
		txErr       *TransactionError
		timeoutErr  *TimeoutError
		mismatchErr *VerificationMismatch
	)

	switch {
	case errors.As(err, &configErr):
		return KindConfiguration
	case errors.As(err, &storageErr):
		return KindStorageRead
	case errors.As(err, &safetyErr):
		return KindSafetyCheck
	case errors.As(err, &authErr):
		return KindAuthorization
	case errors.As(err, &timeoutErr):
		return KindTimeout
	case errors.As(err, &txErr):
		return KindTransaction
	case errors.As(err, &mismatchErr):
		return KindVerificationMismatch
	case errors.Is(err, ErrInterrupted):
		return KindInterrupted
	default:
		return KindUnknown
	}
}
