package ledger

import (
	"context"
	"sort"
	"strconv"

	"github.com/stagepass/event-ticketing/internal/domain"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

// EventStats aggregates per-event sales figures.
type EventStats struct {
	EventID           uint64 `json:"event_id"`
	Name              string `json:"name"`
	Sold              int    `json:"sold"`
	Revenue           int64  `json:"revenue"` // sum of original prices, cents
	ValidCount        int    `json:"valid_count"`
	RemainingCapacity int    `json:"remaining_capacity"`
	TotalCapacity     int    `json:"total_capacity"`
}

// Property is a string key/value pair in an NFT metadata projection.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TokenMetadata is the read-only projection served to NFT metadata consumers.
type TokenMetadata struct {
	TokenID    uint64          `json:"token_id"`
	Owner      domain.Identity `json:"owner"`
	Properties []Property      `json:"properties"`
}

// ActiveEvents lists events that are active, in the future, and still have
// remaining capacity, ordered by id.
func (s *Store) ActiveEvents(ctx context.Context) []domain.Event {
	now := s.clock.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Event, 0)
	for _, event := range s.events {
		if event.IsActive && event.StartsAt.After(now) && event.RemainingCapacity > 0 {
			out = append(out, *event.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EventsByOrganizer lists every event registered by the organizer, in
// creation order.
func (s *Store) EventsByOrganizer(ctx context.Context, organizer domain.Identity) []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.organizerEvents[organizer]
	out := make([]domain.Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.events[id].Clone())
	}
	return out
}

// TicketsByEvent lists every ticket minted against the event, in mint order.
func (s *Store) TicketsByEvent(ctx context.Context, eventID uint64) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.events[eventID]; !ok {
		return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
	}
	ids := s.eventTickets[eventID]
	out := make([]domain.Ticket, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.tickets[id].Clone())
	}
	return out, nil
}

// TicketsByOwner lists every ticket currently owned by the identity.
func (s *Store) TicketsByOwner(ctx context.Context, owner domain.Identity) []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.ownedIDs(owner)
	out := make([]domain.Ticket, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.tickets[id].Clone())
	}
	return out
}

// EventStats returns sales statistics for one event.
func (s *Store) EventStats(ctx context.Context, eventID uint64) (*EventStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[eventID]
	if !ok {
		return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
	}
	stats := &EventStats{
		EventID:           event.ID,
		Name:              event.Name,
		RemainingCapacity: event.RemainingCapacity,
		TotalCapacity:     event.TotalCapacity,
	}
	for _, id := range s.eventTickets[eventID] {
		ticket := s.tickets[id]
		stats.Sold++
		stats.Revenue += ticket.OriginalPrice
		if ticket.IsValid {
			stats.ValidCount++
		}
	}
	return stats, nil
}

// TokenMetadata projects a ticket for NFT metadata consumers.
func (s *Store) TokenMetadata(ctx context.Context, ticketID uint64) (*TokenMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[ticketID]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	props := []Property{
		{Key: "event_id", Value: strconv.FormatUint(ticket.EventID, 10)},
		{Key: "valid", Value: strconv.FormatBool(ticket.IsValid)},
		{Key: "event_name", Value: ticket.EventName},
	}
	if ticket.Class != "" {
		props = append(props, Property{Key: "class", Value: ticket.Class})
	}
	if ticket.Seat != "" {
		props = append(props, Property{Key: "seat", Value: ticket.Seat})
	}
	return &TokenMetadata{
		TokenID:    ticket.ID,
		Owner:      ticket.Owner,
		Properties: props,
	}, nil
}

// TotalSupply returns the number of tickets ever minted.
func (s *Store) TotalSupply(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}

// BalanceOf returns how many tickets the identity currently owns.
func (s *Store) BalanceOf(ctx context.Context, owner domain.Identity) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ownerTickets[owner])
}

// OwnerOf returns the current owner of a ticket.
func (s *Store) OwnerOf(ctx context.Context, ticketID uint64) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[ticketID]
	if !ok {
		return "", apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return ticket.Owner, nil
}

// TokensOf returns the ids of every ticket the identity currently owns.
func (s *Store) TokensOf(ctx context.Context, owner domain.Identity) []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownedIDs(owner)
}
