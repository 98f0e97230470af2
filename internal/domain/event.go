package domain

import "time"

// Event is a schedulable occasion with finite ticket capacity. Events are
// never deleted; cancellation only clears IsActive.
type Event struct {
	ID                uint64
	Name              string
	StartsAt          time.Time
	Venue             string
	UnitPrice         int64 // cents
	TotalCapacity     int
	RemainingCapacity int
	Organizer         Identity
	IsActive          bool
	Description       string
	ImageURL          string // empty means no image reference
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Clone returns an independent copy safe to hand outside the store.
func (e *Event) Clone() *Event {
	dup := *e
	return &dup
}
