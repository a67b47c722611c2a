package signer

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// PrivateKeySigner signs transactions with a raw hex private key.
// Without a key it reports the zero address and refuses to sign.
type PrivateKeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewPrivateKeySigner parses the configured private key
func NewPrivateKeySigner(cfg *config.RuntimeConfig) (*PrivateKeySigner, error) {
	return ParsePrivateKey(cfg.PrivateKey)
}

// ParsePrivateKey parses a hex private key with or without 0x prefix. The
// key itself never appears in the returned error.
func ParsePrivateKey(privateKeyHex string) (*PrivateKeySigner, error) {
	privateKeyHex = strings.TrimSpace(privateKeyHex)
	privateKeyHex = strings.TrimPrefix(strings.TrimPrefix(privateKeyHex, "0x"), "0X")
	if privateKeyHex == "" {
		return &PrivateKeySigner{}, nil
	}

	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "private_key", Reason: "not a valid hex secp256k1 private key"}
	}

	return &PrivateKeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the signer's account
func (s *PrivateKeySigner) Address() common.Address {
	return s.address
}

// SignTx signs tx for chainID with the latest signer rules
func (s *PrivateKeySigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if s.key == nil {
		return nil, domain.ErrNoSigner
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}

// Ensure the adapter implements the interface
var _ usecase.Signer = (*PrivateKeySigner)(nil)
