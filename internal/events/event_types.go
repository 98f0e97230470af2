package events

import (
	"time"

	"github.com/stagepass/event-ticketing/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEventCreated      EventType = "event_created"
	EventEventUpdated      EventType = "event_updated"
	EventEventCancelled    EventType = "event_cancelled"
	EventTicketMinted      EventType = "ticket_minted"
	EventTicketListed      EventType = "ticket_listed"
	EventTicketTransferred EventType = "ticket_transferred"
	EventTicketInvalidated EventType = "ticket_invalidated"
)

// TransferKind distinguishes how ownership moved.
type TransferKind string

const (
	TransferKindResale TransferKind = "resale"
	TransferKindGift   TransferKind = "gift"
)

// Event represents a ledger event emitted after a committed mutation.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Actor     domain.Identity `json:"actor"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   interface{}     `json:"payload"`
}

// EventCreatedPayload payload.
type EventCreatedPayload struct {
	EventID   uint64          `json:"event_id"`
	Name      string          `json:"name"`
	Organizer domain.Identity `json:"organizer"`
	UnitPrice int64           `json:"unit_price"`
	Capacity  int             `json:"capacity"`
}

// EventUpdatedPayload payload.
type EventUpdatedPayload struct {
	EventID           uint64 `json:"event_id"`
	TotalCapacity     int    `json:"total_capacity"`
	RemainingCapacity int    `json:"remaining_capacity"`
}

// EventCancelledPayload payload.
type EventCancelledPayload struct {
	EventID uint64 `json:"event_id"`
}

// TicketMintedPayload payload.
type TicketMintedPayload struct {
	TicketID uint64          `json:"ticket_id"`
	EventID  uint64          `json:"event_id"`
	From     domain.Identity `json:"from"`
	To       domain.Identity `json:"to"`
	Price    int64           `json:"price"`
}

// TicketListedPayload payload.
type TicketListedPayload struct {
	TicketID      uint64 `json:"ticket_id"`
	EventID       uint64 `json:"event_id"`
	AskPrice      int64  `json:"ask_price"`
	OriginalPrice int64  `json:"original_price"`
}

// TicketTransferredPayload payload.
type TicketTransferredPayload struct {
	TicketID uint64          `json:"ticket_id"`
	EventID  uint64          `json:"event_id"`
	From     domain.Identity `json:"from"`
	To       domain.Identity `json:"to"`
	Price    int64           `json:"price"`
	Kind     TransferKind    `json:"kind"`
}

// TicketInvalidatedPayload payload.
type TicketInvalidatedPayload struct {
	TicketID uint64 `json:"ticket_id"`
	EventID  uint64 `json:"event_id"`
}
