package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
)

// ShowTokenParams contains parameters for showing a token
type ShowTokenParams struct {
	// Address overrides the configured agent_nft proxy
	Address string
	TokenID *big.Int
}

// ShowToken is the use case for reading an AgentNFT token
type ShowToken struct {
	cfg    *config.RuntimeConfig
	tokens TokenBinder
	sink   ProgressSink
}

// NewShowToken creates a new ShowToken use case
func NewShowToken(cfg *config.RuntimeConfig, tokens TokenBinder, sink ProgressSink) *ShowToken {
	return &ShowToken{cfg: cfg, tokens: tokens, sink: sink}
}

// Run reads owner, URI, data descriptions and data hashes of a token. The
// owner is required; the remaining reads degrade to warnings.
func (uc *ShowToken) Run(ctx context.Context, params ShowTokenParams) (*domain.TokenInfo, error) {
	if params.TokenID == nil || params.TokenID.Sign() < 0 {
		return nil, fmt.Errorf("token id must be a non-negative integer")
	}

	raw := strings.TrimSpace(params.Address)
	field := "address"
	if raw == "" {
		raw = strings.TrimSpace(uc.cfg.Upgrade.Modules[domain.ModuleAgentNFT].Proxy)
		field = "proxy"
	}
	if raw == "" {
		return nil, &domain.ConfigurationError{
			Module: domain.ModuleAgentNFT,
			Field:  "proxy",
			Reason: "set agent_nft.proxy or pass --address",
		}
	}
	if !common.IsHexAddress(raw) {
		return nil, &domain.ConfigurationError{Module: domain.ModuleAgentNFT, Field: field, Reason: "not a valid hex address: " + raw}
	}

	contract := common.HexToAddress(raw)
	token := uc.tokens.BindToken(contract)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Message: fmt.Sprintf("Reading token %s", params.TokenID),
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	info := &domain.TokenInfo{Contract: contract, TokenID: params.TokenID}

	owner, err := token.OwnerOf(ctx, params.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to read owner of token %s: %w", params.TokenID, err)
	}
	info.Owner = owner

	if uri, err := token.TokenURI(ctx, params.TokenID); err != nil {
		info.Warnings = append(info.Warnings, fmt.Sprintf("tokenURI: %v", err))
	} else {
		info.URI = uri
	}
	if descriptions, err := token.DataDescriptionsOf(ctx, params.TokenID); err != nil {
		info.Warnings = append(info.Warnings, fmt.Sprintf("dataDescriptionsOf: %v", err))
	} else {
		info.DataDescriptions = descriptions
	}
	if hashes, err := token.DataHashesOf(ctx, params.TokenID); err != nil {
		info.Warnings = append(info.Warnings, fmt.Sprintf("dataHashesOf: %v", err))
	} else {
		info.DataHashes = hashes
	}

	return info, nil
}
