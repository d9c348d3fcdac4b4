// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// ContractCreatedEvent is published when a new contract is recorded.  It
// carries enough information for downstream consumers to log or trigger
// notifications without querying the primary database.
type ContractCreatedEvent struct {
	ContractID uint64   `json:"contract_id"`
	HotelName  string   `json:"hotel_name"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	MarkUpRate float64  `json:"mark_up_rate"`
	RoomTypes  []string `json:"room_types"`
}

// ContractDeletedEvent is published when a contract is removed.
type ContractDeletedEvent struct {
	ContractID uint64 `json:"contract_id"`
}

// ContractEvent is the envelope written to the contract.events queue.
type ContractEvent struct {
	Kind    string                `json:"kind"` // "created" or "deleted"
	Created *ContractCreatedEvent `json:"created,omitempty"`
	Deleted *ContractDeletedEvent `json:"deleted,omitempty"`
}
