package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stagepass/event-ticketing/internal/clock"
	"github.com/stagepass/event-ticketing/internal/directory"
	"github.com/stagepass/event-ticketing/internal/domain"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

var (
	testAdmin     = domain.Identity("admin-1")
	testOrganizer = domain.Identity("org-1")
	testAlice     = domain.Identity("alice")
	testBob       = domain.Identity("bob")
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()
	dir := directory.New(testAdmin)
	if err := dir.SetRole(testOrganizer, domain.RoleOrganizer, testAdmin); err != nil {
		t.Fatalf("seed organizer role: %v", err)
	}
	return NewStore(Dependencies{
		Clock: clock.NewFixed(now),
		Roles: dir,
	})
}

func createTestEvent(t *testing.T, s *Store, capacity int, price int64) uint64 {
	t.Helper()
	event, err := s.CreateEvent(context.Background(), testOrganizer, CreateEventInput{
		Name:      "Summer Fest",
		StartsAt:  testNow.Add(48 * time.Hour),
		Venue:     "Main Hall",
		UnitPrice: price,
		Capacity:  capacity,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event.ID
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	t.Run("creates event with full remaining capacity", func(t *testing.T) {
		s := newTestStore(t, testNow)
		event, err := s.CreateEvent(context.Background(), testOrganizer, CreateEventInput{
			Name:        "Summer Fest",
			StartsAt:    testNow.Add(24 * time.Hour),
			Venue:       "Main Hall",
			UnitPrice:   10000,
			Capacity:    50,
			Description: "outdoor stage",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if event.ID != 1 {
			t.Fatalf("expected first event id 1, got %d", event.ID)
		}
		if event.RemainingCapacity != 50 || event.TotalCapacity != 50 {
			t.Fatalf("expected remaining=total=50, got %d/%d", event.RemainingCapacity, event.TotalCapacity)
		}
		if !event.IsActive {
			t.Fatalf("expected new event to be active")
		}
		if event.Organizer != testOrganizer {
			t.Fatalf("expected organizer %s, got %s", testOrganizer, event.Organizer)
		}
	})

	t.Run("admin may create events", func(t *testing.T) {
		s := newTestStore(t, testNow)
		if _, err := s.CreateEvent(context.Background(), testAdmin, CreateEventInput{
			Name:     "Gala",
			StartsAt: testNow.Add(time.Hour),
			Capacity: 10,
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("plain user is unauthorized", func(t *testing.T) {
		s := newTestStore(t, testNow)
		_, err := s.CreateEvent(context.Background(), testAlice, CreateEventInput{
			Name:     "Gala",
			StartsAt: testNow.Add(time.Hour),
			Capacity: 10,
		})
		if !apperrors.HasCode(err, apperrors.CodeUnauthorized) {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		s := newTestStore(t, testNow)
		_, err := s.CreateEvent(context.Background(), testOrganizer, CreateEventInput{
			Name:     "   ",
			StartsAt: testNow.Add(time.Hour),
			Capacity: 10,
		})
		if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			t.Fatalf("expected INVALID_INPUT, got %v", err)
		}
	})

	t.Run("past or present start time is rejected", func(t *testing.T) {
		s := newTestStore(t, testNow)
		for _, startsAt := range []time.Time{testNow, testNow.Add(-time.Minute)} {
			_, err := s.CreateEvent(context.Background(), testOrganizer, CreateEventInput{
				Name:     "Gala",
				StartsAt: startsAt,
				Capacity: 10,
			})
			if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
				t.Fatalf("expected INVALID_INPUT for %v, got %v", startsAt, err)
			}
		}
	})
}

func TestUpdateEvent(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }

	t.Run("partial update leaves other fields unchanged", func(t *testing.T) {
		s := newTestStore(t, testNow)
		eventID := createTestEvent(t, s, 50, 10000)

		updated, err := s.UpdateEvent(context.Background(), testOrganizer, eventID, UpdateEventInput{
			Venue: strPtr("Side Hall"),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Venue != "Side Hall" {
			t.Fatalf("expected venue updated, got %q", updated.Venue)
		}
		if updated.Name != "Summer Fest" || updated.UnitPrice != 10000 || updated.TotalCapacity != 50 {
			t.Fatalf("unexpected changes to unrelated fields: %+v", updated)
		}
	})

	t.Run("capacity increase grows remaining by the delta", func(t *testing.T) {
		s := newTestStore(t, testNow)
		eventID := createTestEvent(t, s, 2, 10000)
		if _, err := s.MintTicket(context.Background(), testAlice, eventID, MintInput{}); err != nil {
			t.Fatalf("mint: %v", err)
		}

		updated, err := s.UpdateEvent(context.Background(), testOrganizer, eventID, UpdateEventInput{
			Capacity: intPtr(5),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.TotalCapacity != 5 || updated.RemainingCapacity != 4 {
			t.Fatalf("expected 5 total / 4 remaining, got %d/%d", updated.TotalCapacity, updated.RemainingCapacity)
		}
	})

	t.Run("capacity decrease below sold clamps remaining at zero", func(t *testing.T) {
		s := newTestStore(t, testNow)
		eventID := createTestEvent(t, s, 5, 10000)
		for i := 0; i < 3; i++ {
			if _, err := s.MintTicket(context.Background(), testAlice, eventID, MintInput{}); err != nil {
				t.Fatalf("mint %d: %v", i, err)
			}
		}

		updated, err := s.UpdateEvent(context.Background(), testOrganizer, eventID, UpdateEventInput{
			Capacity: intPtr(1),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.TotalCapacity != 1 || updated.RemainingCapacity != 0 {
			t.Fatalf("expected 1 total / 0 remaining, got %d/%d", updated.TotalCapacity, updated.RemainingCapacity)
		}
		// already-minted tickets are untouched
		tickets, err := s.TicketsByEvent(context.Background(), eventID)
		if err != nil {
			t.Fatalf("tickets by event: %v", err)
		}
		if len(tickets) != 3 {
			t.Fatalf("expected 3 tickets, got %d", len(tickets))
		}
		for _, ticket := range tickets {
			if !ticket.IsValid {
				t.Fatalf("expected ticket %d to stay valid", ticket.ID)
			}
		}
	})

	t.Run("stranger is unauthorized and event unchanged", func(t *testing.T) {
		s := newTestStore(t, testNow)
		eventID := createTestEvent(t, s, 50, 10000)

		_, err := s.UpdateEvent(context.Background(), testBob, eventID, UpdateEventInput{
			Name: strPtr("Hijacked"),
		})
		if !apperrors.HasCode(err, apperrors.CodeUnauthorized) {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
		event, err := s.GetEvent(context.Background(), eventID)
		if err != nil {
			t.Fatalf("get event: %v", err)
		}
		if event.Name != "Summer Fest" {
			t.Fatalf("expected event unchanged, got name %q", event.Name)
		}
	})

	t.Run("admin may update another organizer's event", func(t *testing.T) {
		s := newTestStore(t, testNow)
		eventID := createTestEvent(t, s, 50, 10000)
		if _, err := s.UpdateEvent(context.Background(), testAdmin, eventID, UpdateEventInput{
			Name: strPtr("Renamed"),
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("clear image drops the reference", func(t *testing.T) {
		s := newTestStore(t, testNow)
		event, err := s.CreateEvent(context.Background(), testOrganizer, CreateEventInput{
			Name:     "Gala",
			StartsAt: testNow.Add(time.Hour),
			Capacity: 10,
			ImageURL: "https://img.example/gala.png",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		updated, err := s.UpdateEvent(context.Background(), testOrganizer, event.ID, UpdateEventInput{
			ClearImage: true,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ImageURL != "" {
			t.Fatalf("expected image cleared, got %q", updated.ImageURL)
		}
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		s := newTestStore(t, testNow)
		_, err := s.UpdateEvent(context.Background(), testOrganizer, 99, UpdateEventInput{})
		if !apperrors.HasCode(err, apperrors.CodeNotFound) {
			t.Fatalf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestCancelEvent(t *testing.T) {
	t.Parallel()

	t.Run("cancel deactivates and blocks minting", func(t *testing.T) {
		s := newTestStore(t, testNow)
		eventID := createTestEvent(t, s, 50, 10000)

		event, err := s.CancelEvent(context.Background(), testOrganizer, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if event.IsActive {
			t.Fatalf("expected event inactive after cancel")
		}
		_, err = s.MintTicket(context.Background(), testAlice, eventID, MintInput{})
		if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			t.Fatalf("expected INVALID_INPUT minting on cancelled event, got %v", err)
		}
	})

	t.Run("stranger is unauthorized", func(t *testing.T) {
		s := newTestStore(t, testNow)
		eventID := createTestEvent(t, s, 50, 10000)
		_, err := s.CancelEvent(context.Background(), testAlice, eventID)
		if !apperrors.HasCode(err, apperrors.CodeUnauthorized) {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		s := newTestStore(t, testNow)
		_, err := s.CancelEvent(context.Background(), testOrganizer, 42)
		if !apperrors.HasCode(err, apperrors.CodeNotFound) {
			t.Fatalf("expected NOT_FOUND, got %v", err)
		}
	})
}
