package dto

import (
	"encoding/json"
	"time"
)

// CreateEventRequest payload.
type CreateEventRequest struct {
	Name        string    `json:"name"`
	StartsAt    time.Time `json:"starts_at"`
	Venue       string    `json:"venue"`
	UnitPrice   int64     `json:"unit_price"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
}

// UpdateEventRequest carries a partial update. Absent fields pass through
// unchanged; ImageURL is raw so that an explicit JSON null can clear the
// image reference.
type UpdateEventRequest struct {
	Name        *string         `json:"name"`
	StartsAt    *time.Time      `json:"starts_at"`
	Venue       *string         `json:"venue"`
	UnitPrice   *int64          `json:"unit_price"`
	Capacity    *int            `json:"capacity"`
	Description *string         `json:"description"`
	ImageURL    json.RawMessage `json:"image_url"`
}

// EventResponse response.
type EventResponse struct {
	ID                uint64    `json:"id"`
	Name              string    `json:"name"`
	StartsAt          time.Time `json:"starts_at"`
	Venue             string    `json:"venue"`
	UnitPrice         int64     `json:"unit_price"`
	TotalCapacity     int       `json:"total_capacity"`
	RemainingCapacity int       `json:"remaining_capacity"`
	Organizer         string    `json:"organizer"`
	IsActive          bool      `json:"is_active"`
	Description       string    `json:"description"`
	ImageURL          string    `json:"image_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// MintTicketRequest payload.
type MintTicketRequest struct {
	Class string `json:"class"`
	Seat  string `json:"seat"`
}

// ListResaleRequest payload.
type ListResaleRequest struct {
	AskPrice int64 `json:"ask_price"`
}

// GiftTransferRequest payload.
type GiftTransferRequest struct {
	Recipient string `json:"recipient"`
}

// ArchivedTransferResponse is one archived transfer row, including the mint.
type ArchivedTransferResponse struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Price int64     `json:"price"`
	Kind  string    `json:"kind"`
	At    time.Time `json:"at"`
}

// TransferRecordResponse is one entry of a ticket's history.
type TransferRecordResponse struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Price int64     `json:"price"`
	At    time.Time `json:"at"`
}

// TicketResponse response.
type TicketResponse struct {
	ID            uint64                   `json:"id"`
	EventID       uint64                   `json:"event_id"`
	Owner         string                   `json:"owner"`
	OriginalPrice int64                    `json:"original_price"`
	CurrentPrice  int64                    `json:"current_price"`
	IsValid       bool                     `json:"is_valid"`
	EventName     string                   `json:"event_name"`
	Class         string                   `json:"class,omitempty"`
	Seat          string                   `json:"seat,omitempty"`
	PurchasedAt   time.Time                `json:"purchased_at"`
	History       []TransferRecordResponse `json:"history"`
}

// VerifyResponse response.
type VerifyResponse struct {
	TicketID uint64 `json:"ticket_id"`
	Owner    string `json:"owner"`
	Valid    bool   `json:"valid"`
}

// SupplyResponse response.
type SupplyResponse struct {
	TotalSupply int `json:"total_supply"`
}

// BalanceResponse response.
type BalanceResponse struct {
	Identity string `json:"identity"`
	Balance  int    `json:"balance"`
}

// OwnerResponse response.
type OwnerResponse struct {
	TicketID uint64 `json:"ticket_id"`
	Owner    string `json:"owner"`
}

// TokenListResponse response.
type TokenListResponse struct {
	Identity string   `json:"identity"`
	Tokens   []uint64 `json:"tokens"`
}
