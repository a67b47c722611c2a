package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/agentnft/beaconctl/internal/adapters/abi/bindings"
	"github.com/agentnft/beaconctl/internal/domain/config"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// ContractsAdapter binds the generated contract ABIs to a chain client
type ContractsAdapter struct {
	chain     usecase.ChainClient
	signer    usecase.Signer
	gas       config.GasSettings
	beacon    *bindings.UpgradeableBeacon
	versioned *bindings.Versioned
	nft       *bindings.AgentNFT
	log       *slog.Logger
}

// NewContractsAdapter creates a new contracts adapter
func NewContractsAdapter(chain usecase.ChainClient, signer usecase.Signer, cfg *config.RuntimeConfig, log *slog.Logger) *ContractsAdapter {
	return &ContractsAdapter{
		chain:     chain,
		signer:    signer,
		gas:       cfg.Gas,
		beacon:    bindings.NewUpgradeableBeacon(),
		versioned: bindings.NewVersioned(),
		nft:       bindings.NewAgentNFT(),
		log:       log.With("component", "contracts"),
	}
}

// Bind returns the upgradeable capability at addr
func (a *ContractsAdapter) Bind(addr common.Address) usecase.UpgradeableContract {
	return &upgradeable{ContractsAdapter: a, addr: addr}
}

// BindToken returns the AgentNFT read capability at addr
func (a *ContractsAdapter) BindToken(addr common.Address) usecase.TokenContract {
	return &agentToken{ContractsAdapter: a, addr: addr}
}

// call runs a view call and rejects an empty return, which is what an
// address without code answers
func (a *ContractsAdapter) call(ctx context.Context, addr common.Address, method string, data []byte) ([]byte, error) {
	out, err := a.chain.Call(ctx, addr, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty response from %s", method, addr.Hex())
	}
	return out, nil
}

type upgradeable struct {
	*ContractsAdapter
	addr common.Address
}

func (u *upgradeable) Address() common.Address { return u.addr }

func (u *upgradeable) Owner(ctx context.Context) (common.Address, error) {
	out, err := u.call(ctx, u.addr, "owner()", u.beacon.PackOwner())
	if err != nil {
		return common.Address{}, err
	}
	return u.beacon.UnpackOwner(out)
}

func (u *upgradeable) Implementation(ctx context.Context) (common.Address, error) {
	out, err := u.call(ctx, u.addr, "implementation()", u.beacon.PackImplementation())
	if err != nil {
		return common.Address{}, err
	}
	return u.beacon.UnpackImplementation(out)
}

func (u *upgradeable) Version(ctx context.Context) (string, error) {
	out, err := u.call(ctx, u.addr, "version()", u.versioned.PackVersion())
	if err != nil {
		return "", err
	}
	return u.versioned.UnpackVersion(out)
}

// UpgradeTo sends upgradeTo(newImplementation) with the configured gas settings
func (u *upgradeable) UpgradeTo(ctx context.Context, newImplementation common.Address) (common.Hash, error) {
	data, err := u.beacon.TryPackUpgradeTo(newImplementation)
	if err != nil {
		return common.Hash{}, err
	}

	u.log.Info("submitting upgrade", "beacon", u.addr.Hex(), "implementation", newImplementation.Hex())
	return u.chain.SendTransaction(ctx, usecase.TxRequest{
		To:             u.addr,
		Data:           data,
		GasLimit:       u.gas.GasLimit,
		MaxFee:         u.gas.MaxFee,
		MaxPriorityFee: u.gas.MaxPriorityFee,
	}, u.signer)
}

type agentToken struct {
	*ContractsAdapter
	addr common.Address
}

func (t *agentToken) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	out, err := t.call(ctx, t.addr, "ownerOf", t.nft.PackOwnerOf(tokenID))
	if err != nil {
		return common.Address{}, err
	}
	return t.nft.UnpackOwnerOf(out)
}

func (t *agentToken) TokenURI(ctx context.Context, tokenID *big.Int) (string, error) {
	out, err := t.call(ctx, t.addr, "tokenURI", t.nft.PackTokenURI(tokenID))
	if err != nil {
		return "", err
	}
	return t.nft.UnpackTokenURI(out)
}

func (t *agentToken) DataDescriptionsOf(ctx context.Context, tokenID *big.Int) ([]string, error) {
	out, err := t.call(ctx, t.addr, "dataDescriptionsOf", t.nft.PackDataDescriptionsOf(tokenID))
	if err != nil {
		return nil, err
	}
	return t.nft.UnpackDataDescriptionsOf(out)
}

func (t *agentToken) DataHashesOf(ctx context.Context, tokenID *big.Int) ([]common.Hash, error) {
	out, err := t.call(ctx, t.addr, "dataHashesOf", t.nft.PackDataHashesOf(tokenID))
	if err != nil {
		return nil, err
	}
	raw, err := t.nft.UnpackDataHashesOf(out)
	if err != nil {
		return nil, err
	}
	hashes := make([]common.Hash, len(raw))
	for i, h := range raw {
		hashes[i] = common.Hash(h)
	}
	return hashes, nil
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.ContractBinder = (*ContractsAdapter)(nil)
	_ usecase.TokenBinder    = (*ContractsAdapter)(nil)
)
