package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// NonceStatus compares the confirmed and pending nonce of an account
type NonceStatus struct {
	Account common.Address `json:"account" yaml:"account"`
	Latest  uint64         `json:"latest" yaml:"latest"`
	Pending uint64         `json:"pending" yaml:"pending"`
}

// Stuck returns the number of transactions waiting in the pool
func (s NonceStatus) Stuck() uint64 {
	if s.Pending <= s.Latest {
		return 0
	}
	return s.Pending - s.Latest
}

// FeeCaps are explicit EIP-1559 fee values for a transaction
type FeeCaps struct {
	MaxFee         *big.Int
	MaxPriorityFee *big.Int
}

// NonceReplacement records the attempt to free one stuck nonce
type NonceReplacement struct {
	Nonce     uint64      `json:"nonce" yaml:"nonce"`
	TxHash    common.Hash `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	Escalated bool        `json:"escalated" yaml:"escalated"`
	Error     string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Sent reports whether a replacement transaction was accepted by the node
func (r NonceReplacement) Sent() bool {
	return r.Error == ""
}

// NonceClearResult is the outcome of clearing stuck nonces
type NonceClearResult struct {
	Before       NonceStatus        `json:"before" yaml:"before"`
	After        *NonceStatus       `json:"after,omitempty" yaml:"after,omitempty"`
	Replacements []NonceReplacement `json:"replacements" yaml:"replacements"`
}

// Cleared reports whether no nonce is known to be stuck anymore
func (r *NonceClearResult) Cleared() bool {
	if r.After != nil {
		return r.After.Stuck() == 0
	}
	for _, rep := range r.Replacements {
		if !rep.Sent() {
			return false
		}
	}
	return true
}
