package abi

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/agentnft/beaconctl/internal/adapters/abi/bindings"
	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// EventDecoder decodes beacon events from transaction receipts
type EventDecoder struct {
	beacon *bindings.UpgradeableBeacon
	log    *slog.Logger
}

// NewEventDecoder creates a new event decoder
func NewEventDecoder(log *slog.Logger) *EventDecoder {
	return &EventDecoder{
		beacon: bindings.NewUpgradeableBeacon(),
		log:    log.With("component", "EventDecoder"),
	}
}

// DecodeUpgraded returns every Upgraded(address) event in logs, in log order.
// Logs with another signature are skipped.
func (e *EventDecoder) DecodeUpgraded(logs []*types.Log) []domain.UpgradedEvent {
	var events []domain.UpgradedEvent
	for _, log := range logs {
		// If there are no topics, we can't decode
		if log == nil || len(log.Topics) == 0 {
			continue
		}

		upgraded, err := e.beacon.UnpackUpgradedEvent(log)
		if err != nil {
			e.log.Debug("skipping log", "address", log.Address.Hex(), "index", log.Index, "error", err)
			continue
		}

		events = append(events, domain.UpgradedEvent{
			Beacon:         log.Address,
			Implementation: upgraded.Implementation,
			TxHash:         log.TxHash,
			LogIndex:       log.Index,
		})
	}
	return events
}

// Ensure the adapter implements the interface
var _ usecase.UpgradeEventDecoder = (*EventDecoder)(nil)
