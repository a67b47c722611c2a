package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PostUpgradeVerifier re-reads the beacon after an upgrade
type PostUpgradeVerifier struct {
	contracts ContractBinder
	events    UpgradeEventDecoder
}

// NewPostUpgradeVerifier creates a new PostUpgradeVerifier. events may be nil,
// in which case receipts are not inspected.
func NewPostUpgradeVerifier(contracts ContractBinder, events UpgradeEventDecoder) *PostUpgradeVerifier {
	return &PostUpgradeVerifier{contracts: contracts, events: events}
}

// Verify reports whether the beacon's implementation() equals expected
func (v *PostUpgradeVerifier) Verify(ctx context.Context, beacon, expected common.Address) (bool, common.Address, error) {
	actual, err := v.contracts.Bind(beacon).Implementation(ctx)
	if err != nil {
		return false, common.Address{}, err
	}
	return actual == expected, actual, nil
}

// CheckReceipt looks for the beacon's Upgraded event in receipt and returns a
// warning when it is missing or names another implementation. The on-chain
// read in Verify stays authoritative.
func (v *PostUpgradeVerifier) CheckReceipt(receipt *types.Receipt, beacon, expected common.Address) string {
	if v.events == nil || receipt == nil {
		return ""
	}

	var other []string
	for _, event := range v.events.DecodeUpgraded(receipt.Logs) {
		if event.Beacon != beacon {
			continue
		}
		if event.Implementation == expected {
			return ""
		}
		other = append(other, event.Implementation.Hex())
	}

	if len(other) > 0 {
		return fmt.Sprintf("receipt reports Upgraded(%s), expected %s", other[len(other)-1], expected.Hex())
	}
	return "receipt has no Upgraded event from the beacon"
}
