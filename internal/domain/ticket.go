package domain

import "time"

// TransferRecord is an immutable entry in a ticket's transfer history.
// Price is zero for gifts.
type TransferRecord struct {
	From  Identity
	To    Identity
	Price int64 // cents
	At    time.Time
}

// Ticket is a non-fungible admission record minted against an event.
// History is append-only: records are never removed or mutated, and the
// final record's To always equals Owner.
type Ticket struct {
	ID            uint64
	EventID       uint64
	Owner         Identity
	OriginalPrice int64 // cents, fixed at mint
	CurrentPrice  int64 // cents, basis for the next resale listing
	IsValid       bool
	EventName     string // snapshot at mint time
	Class         string
	Seat          string
	PurchasedAt   time.Time
	History       []TransferRecord
}

// Clone returns an independent copy, including its history slice.
func (t *Ticket) Clone() *Ticket {
	dup := *t
	dup.History = make([]TransferRecord, len(t.History))
	copy(dup.History, t.History)
	return &dup
}

// LastTransfer returns the most recent history record.
func (t *Ticket) LastTransfer() TransferRecord {
	return t.History[len(t.History)-1]
}
