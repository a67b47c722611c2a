package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenInfo is the public state of one AgentNFT token
type TokenInfo struct {
	Contract         common.Address `json:"contract" yaml:"contract"`
	TokenID          *big.Int       `json:"tokenId" yaml:"tokenId"`
	Owner            common.Address `json:"owner" yaml:"owner"`
	URI              string         `json:"uri,omitempty" yaml:"uri,omitempty"`
	DataDescriptions []string       `json:"dataDescriptions,omitempty" yaml:"dataDescriptions,omitempty"`
	DataHashes       []common.Hash  `json:"dataHashes,omitempty" yaml:"dataHashes,omitempty"`
	Warnings         []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
