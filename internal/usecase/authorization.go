package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/agentnft/beaconctl/internal/domain"
)

// AuthorizationChecker confirms the signer may upgrade a beacon
type AuthorizationChecker struct {
	contracts ContractBinder
}

// NewAuthorizationChecker creates a new AuthorizationChecker
func NewAuthorizationChecker(contracts ContractBinder) *AuthorizationChecker {
	return &AuthorizationChecker{contracts: contracts}
}

// VerifyOwner reads owner() of the beacon and compares it with signer, ignoring case
func (a *AuthorizationChecker) VerifyOwner(ctx context.Context, beacon common.Address, signer string) (bool, common.Address, error) {
	owner, err := a.contracts.Bind(beacon).Owner(ctx)
	if err != nil {
		return false, common.Address{}, err
	}
	return domain.SameAddress(owner.Hex(), signer), owner, nil
}
