package ledger

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stagepass/event-ticketing/internal/domain"
	"github.com/stagepass/event-ticketing/internal/events"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

// CreateEventInput describes event creation payload.
type CreateEventInput struct {
	Name        string
	StartsAt    time.Time
	Venue       string
	UnitPrice   int64
	Capacity    int
	Description string
	ImageURL    string
}

// UpdateEventInput carries partial updates: nil fields pass through
// unchanged; ClearImage drops the image reference.
type UpdateEventInput struct {
	Name        *string
	StartsAt    *time.Time
	Venue       *string
	UnitPrice   *int64
	Capacity    *int
	Description *string
	ImageURL    *string
	ClearImage  bool
}

// CreateEvent registers a new event with full remaining capacity. The caller
// becomes its organizer and must hold the Organizer or Admin role.
func (s *Store) CreateEvent(ctx context.Context, caller domain.Identity, input CreateEventInput) (*domain.Event, error) {
	role := s.roles.RoleOf(caller)
	if role != domain.RoleOrganizer && role != domain.RoleAdmin {
		return nil, apperrors.NewUnauthorized("organizer or admin role required")
	}

	now := s.clock.Now()
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewInvalidInput("event name required", nil)
	}
	if !input.StartsAt.After(now) {
		return nil, apperrors.NewInvalidInput("event time must be in the future", nil)
	}
	if input.UnitPrice < 0 {
		return nil, apperrors.NewInvalidInput("unit price must not be negative", nil)
	}
	if input.Capacity < 0 {
		return nil, apperrors.NewInvalidInput("capacity must not be negative", nil)
	}

	s.mu.Lock()
	s.nextEventID++
	event := &domain.Event{
		ID:                s.nextEventID,
		Name:              name,
		StartsAt:          input.StartsAt,
		Venue:             input.Venue,
		UnitPrice:         input.UnitPrice,
		TotalCapacity:     input.Capacity,
		RemainingCapacity: input.Capacity,
		Organizer:         caller,
		IsActive:          true,
		Description:       input.Description,
		ImageURL:          input.ImageURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.events[event.ID] = event
	s.organizerEvents[caller] = append(s.organizerEvents[caller], event.ID)
	out := event.Clone()
	s.mu.Unlock()

	s.committed("create_event")
	s.logger.Info("event created", zap.Uint64("event_id", out.ID), zap.String("organizer", string(caller)))
	s.publish(ctx, events.Event{
		Type:  events.EventEventCreated,
		Actor: caller,
		Payload: events.EventCreatedPayload{
			EventID:   out.ID,
			Name:      out.Name,
			Organizer: out.Organizer,
			UnitPrice: out.UnitPrice,
			Capacity:  out.TotalCapacity,
		},
	})
	return out, nil
}

// UpdateEvent applies a partial update. Only the event's organizer or an
// Admin may update it. Growing total capacity creates exactly that much new
// remaining inventory; shrinking it reduces remaining capacity by the delta
// but never below zero and never touches already-minted tickets.
func (s *Store) UpdateEvent(ctx context.Context, caller domain.Identity, eventID uint64, input UpdateEventInput) (*domain.Event, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewInvalidInput("event name required", nil)
	}
	if input.UnitPrice != nil && *input.UnitPrice < 0 {
		return nil, apperrors.NewInvalidInput("unit price must not be negative", nil)
	}
	if input.Capacity != nil && *input.Capacity < 0 {
		return nil, apperrors.NewInvalidInput("capacity must not be negative", nil)
	}
	now := s.clock.Now()
	if input.StartsAt != nil && !input.StartsAt.After(now) {
		return nil, apperrors.NewInvalidInput("event time must be in the future", nil)
	}

	s.mu.Lock()
	event, ok := s.events[eventID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
	}
	if err := s.requireEventAuthority(event, caller); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if input.Name != nil {
		event.Name = strings.TrimSpace(*input.Name)
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.Venue != nil {
		event.Venue = *input.Venue
	}
	if input.UnitPrice != nil {
		event.UnitPrice = *input.UnitPrice
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.ImageURL != nil {
		event.ImageURL = *input.ImageURL
	} else if input.ClearImage {
		event.ImageURL = ""
	}
	if input.Capacity != nil {
		delta := *input.Capacity - event.TotalCapacity
		event.TotalCapacity = *input.Capacity
		event.RemainingCapacity += delta
		if event.RemainingCapacity < 0 {
			event.RemainingCapacity = 0
		}
	}
	event.UpdatedAt = now
	out := event.Clone()
	s.mu.Unlock()

	s.committed("update_event")
	s.publish(ctx, events.Event{
		Type:  events.EventEventUpdated,
		Actor: caller,
		Payload: events.EventUpdatedPayload{
			EventID:           out.ID,
			TotalCapacity:     out.TotalCapacity,
			RemainingCapacity: out.RemainingCapacity,
		},
	})
	return out, nil
}

// CancelEvent soft-deactivates an event. Tickets already minted are not
// touched; invalidation is a separate control.
func (s *Store) CancelEvent(ctx context.Context, caller domain.Identity, eventID uint64) (*domain.Event, error) {
	s.mu.Lock()
	event, ok := s.events[eventID]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
	}
	if err := s.requireEventAuthority(event, caller); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	event.IsActive = false
	event.UpdatedAt = s.clock.Now()
	out := event.Clone()
	s.mu.Unlock()

	s.committed("cancel_event")
	s.logger.Info("event cancelled", zap.Uint64("event_id", out.ID))
	s.publish(ctx, events.Event{
		Type:    events.EventEventCancelled,
		Actor:   caller,
		Payload: events.EventCancelledPayload{EventID: out.ID},
	})
	return out, nil
}

// GetEvent returns a snapshot of a single event.
func (s *Store) GetEvent(ctx context.Context, eventID uint64) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[eventID]
	if !ok {
		return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
	}
	return event.Clone(), nil
}

// requireEventAuthority checks caller == organizer or Admin. Callers hold
// the lock; the role directory has its own synchronization.
func (s *Store) requireEventAuthority(event *domain.Event, caller domain.Identity) error {
	if caller == event.Organizer {
		return nil
	}
	if s.roles.RoleOf(caller) == domain.RoleAdmin {
		return nil
	}
	return apperrors.NewUnauthorized("event organizer or admin required")
}
