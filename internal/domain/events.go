package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

type EventType string

const (
	EventTypeUpgraded EventType = "Upgraded"
)

// UpgradedEvent is an Upgraded(address) log emitted by a beacon
type UpgradedEvent struct {
	Beacon         common.Address
	Implementation common.Address
	TxHash         common.Hash
	LogIndex       uint
}

func (UpgradedEvent) ContractEventName() string {
	return string(EventTypeUpgraded)
}

func (e *UpgradedEvent) String() string {
	return fmt.Sprintf("%s: beacon=%s, impl=%s",
		e.ContractEventName(),
		e.Beacon.Hex()[:10]+"...",
		e.Implementation.Hex()[:10]+"...",
	)
}
