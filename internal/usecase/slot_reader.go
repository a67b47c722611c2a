package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/agentnft/beaconctl/internal/domain"
)

// StorageSlotReader recovers the beacon behind a beacon proxy
type StorageSlotReader struct {
	chain ChainClient
}

// NewStorageSlotReader creates a new StorageSlotReader
func NewStorageSlotReader(chain ChainClient) *StorageSlotReader {
	return &StorageSlotReader{chain: chain}
}

// ReadBeacon returns the address stored in the proxy's beacon slot. An unset
// slot yields the zero address and no error; callers decide what that means.
func (r *StorageSlotReader) ReadBeacon(ctx context.Context, proxy common.Address) (common.Address, error) {
	word, err := r.chain.StorageAt(ctx, proxy, domain.BeaconSlot)
	if err != nil {
		return common.Address{}, &domain.StorageReadError{Proxy: proxy, Err: err}
	}
	return domain.BeaconFromWord(word), nil
}
