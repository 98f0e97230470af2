package ledger

import (
	"context"

	"go.uber.org/zap"

	"github.com/stagepass/event-ticketing/internal/domain"
	"github.com/stagepass/event-ticketing/internal/events"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

// resaleCapAllows reports whether ask satisfies the 1.2x cap over the
// original mint price. For non-negative integer cents, ask*10 <= original*12
// is exactly ask <= original + original/5; this form cannot overflow int64,
// so an arbitrarily large ask cannot wrap past the cap.
func resaleCapAllows(ask, original int64) bool {
	if ask <= original {
		return true
	}
	return ask-original <= original/5
}

// MintInput carries optional display metadata for a new ticket.
type MintInput struct {
	Class string
	Seat  string
}

// MintTicket issues a new ticket against an event's remaining capacity.
// Precondition checks, id allocation, capacity decrement, history seeding and
// index insertion are one atomic unit: a failed check leaves no effect.
func (s *Store) MintTicket(ctx context.Context, buyer domain.Identity, eventID uint64, input MintInput) (*domain.Ticket, error) {
	now := s.clock.Now()

	s.mu.Lock()
	event, ok := s.events[eventID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
	}
	if !event.IsActive {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidInput("event is not active", map[string]any{"event_id": eventID})
	}
	if !event.StartsAt.After(now) {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidInput("event already started", map[string]any{"event_id": eventID})
	}
	if event.RemainingCapacity <= 0 {
		s.mu.Unlock()
		return nil, apperrors.NewSoldOut(eventID)
	}

	s.nextTicketID++
	ticket := &domain.Ticket{
		ID:            s.nextTicketID,
		EventID:       eventID,
		Owner:         buyer,
		OriginalPrice: event.UnitPrice,
		CurrentPrice:  event.UnitPrice,
		IsValid:       true,
		EventName:     event.Name,
		Class:         input.Class,
		Seat:          input.Seat,
		PurchasedAt:   now,
		History: []domain.TransferRecord{
			{From: event.Organizer, To: buyer, Price: event.UnitPrice, At: now},
		},
	}
	event.RemainingCapacity--
	s.tickets[ticket.ID] = ticket
	s.eventTickets[eventID] = append(s.eventTickets[eventID], ticket.ID)
	s.addOwned(buyer, ticket.ID)
	organizer := event.Organizer
	out := ticket.Clone()
	s.mu.Unlock()

	s.committed("mint_ticket")
	s.logger.Info("ticket minted",
		zap.Uint64("ticket_id", out.ID),
		zap.Uint64("event_id", eventID),
		zap.String("owner", string(buyer)),
	)
	s.publish(ctx, events.Event{
		Type:  events.EventTicketMinted,
		Actor: buyer,
		Payload: events.TicketMintedPayload{
			TicketID: out.ID,
			EventID:  eventID,
			From:     organizer,
			To:       buyer,
			Price:    out.OriginalPrice,
		},
	})
	return out, nil
}

// ListForResale sets a ticket's asking price for resale. Only the current
// owner may list, and the ask must not exceed 1.2x the original mint price.
func (s *Store) ListForResale(ctx context.Context, caller domain.Identity, ticketID uint64, askPrice int64) (*domain.Ticket, error) {
	if askPrice < 0 {
		return nil, apperrors.NewInvalidInput("ask price must not be negative", nil)
	}

	s.mu.Lock()
	ticket, ok := s.tickets[ticketID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	if ticket.Owner != caller {
		s.mu.Unlock()
		return nil, apperrors.NewUnauthorized("only the ticket owner may list it for resale")
	}
	if !ticket.IsValid {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidOperation("ticket has been invalidated", map[string]any{"ticket_id": ticketID})
	}
	if !resaleCapAllows(askPrice, ticket.OriginalPrice) {
		s.mu.Unlock()
		return nil, apperrors.NewLimitExceeded("ask price exceeds the resale cap", map[string]any{
			"ask_price": askPrice,
			"max_price": ticket.OriginalPrice + ticket.OriginalPrice/5,
		})
	}
	ticket.CurrentPrice = askPrice
	out := ticket.Clone()
	s.mu.Unlock()

	s.committed("list_for_resale")
	s.publish(ctx, events.Event{
		Type:  events.EventTicketListed,
		Actor: caller,
		Payload: events.TicketListedPayload{
			TicketID:      out.ID,
			EventID:       out.EventID,
			AskPrice:      askPrice,
			OriginalPrice: out.OriginalPrice,
		},
	})
	return out, nil
}

// BuyResale transfers a ticket to the buyer at its current listed price.
// The history append, ownership reassignment and index move commit as one
// atomic unit. CurrentPrice is retained as the basis for future listings.
func (s *Store) BuyResale(ctx context.Context, buyer domain.Identity, ticketID uint64) (*domain.Ticket, error) {
	now := s.clock.Now()

	s.mu.Lock()
	ticket, ok := s.tickets[ticketID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	if !ticket.IsValid {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidOperation("ticket has been invalidated", map[string]any{"ticket_id": ticketID})
	}
	if ticket.Owner == buyer {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidOperation("buyer already owns this ticket", nil)
	}
	event := s.events[ticket.EventID]
	if !event.IsActive {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidOperation("event is not active", map[string]any{"event_id": event.ID})
	}
	if !event.StartsAt.After(now) {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidOperation("event already started", map[string]any{"event_id": event.ID})
	}

	seller := ticket.Owner
	price := ticket.CurrentPrice
	ticket.History = append(ticket.History, domain.TransferRecord{From: seller, To: buyer, Price: price, At: now})
	ticket.Owner = buyer
	s.moveOwned(seller, buyer, ticket.ID)
	out := ticket.Clone()
	s.mu.Unlock()

	s.committed("buy_resale")
	s.logger.Info("ticket resold",
		zap.Uint64("ticket_id", out.ID),
		zap.String("from", string(seller)),
		zap.String("to", string(buyer)),
		zap.Int64("price", price),
	)
	s.publish(ctx, events.Event{
		Type:  events.EventTicketTransferred,
		Actor: buyer,
		Payload: events.TicketTransferredPayload{
			TicketID: out.ID,
			EventID:  out.EventID,
			From:     seller,
			To:       buyer,
			Price:    price,
			Kind:     events.TransferKindResale,
		},
	})
	return out, nil
}

// GiftTransfer moves a ticket to the recipient at zero price. Event activity
// is deliberately not checked: a gift may move an already-issued ticket for
// a past or cancelled event, since invalidation is a separate control.
func (s *Store) GiftTransfer(ctx context.Context, caller domain.Identity, ticketID uint64, recipient domain.Identity) (*domain.Ticket, error) {
	if recipient == "" {
		return nil, apperrors.NewInvalidInput("recipient required", nil)
	}
	now := s.clock.Now()

	s.mu.Lock()
	ticket, ok := s.tickets[ticketID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	if ticket.Owner != caller {
		s.mu.Unlock()
		return nil, apperrors.NewUnauthorized("only the ticket owner may gift it")
	}
	if recipient == ticket.Owner {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidOperation("recipient already owns this ticket", nil)
	}
	if !ticket.IsValid {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidOperation("ticket has been invalidated", map[string]any{"ticket_id": ticketID})
	}

	ticket.History = append(ticket.History, domain.TransferRecord{From: caller, To: recipient, Price: 0, At: now})
	ticket.Owner = recipient
	s.moveOwned(caller, recipient, ticket.ID)
	out := ticket.Clone()
	s.mu.Unlock()

	s.committed("gift_transfer")
	s.publish(ctx, events.Event{
		Type:  events.EventTicketTransferred,
		Actor: caller,
		Payload: events.TicketTransferredPayload{
			TicketID: out.ID,
			EventID:  out.EventID,
			From:     caller,
			To:       recipient,
			Price:    0,
			Kind:     events.TransferKindGift,
		},
	})
	return out, nil
}

// InvalidateTicket permanently marks a ticket unusable. Only the organizer
// of the owning event or an Admin may invalidate. The state is terminal:
// every later ownership-changing operation fails.
func (s *Store) InvalidateTicket(ctx context.Context, caller domain.Identity, ticketID uint64) (*domain.Ticket, error) {
	s.mu.Lock()
	ticket, ok := s.tickets[ticketID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	event := s.events[ticket.EventID]
	if caller != event.Organizer && s.roles.RoleOf(caller) != domain.RoleAdmin {
		s.mu.Unlock()
		return nil, apperrors.NewUnauthorized("event organizer or admin required")
	}
	if !ticket.IsValid {
		s.mu.Unlock()
		return nil, apperrors.NewInvalidOperation("ticket already invalidated", map[string]any{"ticket_id": ticketID})
	}
	ticket.IsValid = false
	out := ticket.Clone()
	s.mu.Unlock()

	s.committed("invalidate_ticket")
	s.logger.Info("ticket invalidated", zap.Uint64("ticket_id", out.ID), zap.String("by", string(caller)))
	s.publish(ctx, events.Event{
		Type:    events.EventTicketInvalidated,
		Actor:   caller,
		Payload: events.TicketInvalidatedPayload{TicketID: out.ID, EventID: out.EventID},
	})
	return out, nil
}

// VerifyTicket reports whether the ticket exists, is valid, and is owned by
// claimedOwner. Pure read.
func (s *Store) VerifyTicket(ctx context.Context, ticketID uint64, claimedOwner domain.Identity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[ticketID]
	return ok && ticket.IsValid && ticket.Owner == claimedOwner
}

// GetTicket returns a snapshot of a single ticket.
func (s *Store) GetTicket(ctx context.Context, ticketID uint64) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[ticketID]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return ticket.Clone(), nil
}
