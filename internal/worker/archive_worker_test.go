package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/stagepass/event-ticketing/internal/events"
	"github.com/stagepass/event-ticketing/internal/repository"
)

type fakeArchive struct {
	mu        sync.Mutex
	events    []events.Event
	transfers []repository.TransferRow
}

func (f *fakeArchive) InsertLedgerEvent(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeArchive) InsertTransfer(ctx context.Context, row repository.TransferRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transfers = append(f.transfers, row)
	return nil
}

func (f *fakeArchive) ListTransfersByTicket(ctx context.Context, ticketID uint64) ([]repository.TransferRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []repository.TransferRow{}
	for _, row := range f.transfers {
		if row.TicketID == ticketID {
			out = append(out, row)
		}
	}
	return out, nil
}

func TestArchiveWorker(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("mint archives an event row and a mint transfer", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()
		archive := &fakeArchive{}
		StartArchiveWorker(dispatcher, archive, zap.NewNop())

		err := dispatcher.Publish(context.Background(), events.Event{
			ID:        "evt-1",
			Type:      events.EventTicketMinted,
			Actor:     "alice",
			Timestamp: now,
			Payload: events.TicketMintedPayload{
				TicketID: 1,
				EventID:  7,
				From:     "organizer",
				To:       "alice",
				Price:    250,
			},
		})
		if err != nil {
			t.Fatalf("publish: %v", err)
		}

		if len(archive.events) != 1 || archive.events[0].ID != "evt-1" {
			t.Fatalf("expected 1 archived event, got %+v", archive.events)
		}
		if len(archive.transfers) != 1 {
			t.Fatalf("expected 1 transfer row, got %d", len(archive.transfers))
		}
		row := archive.transfers[0]
		if row.Kind != "mint" || row.TicketID != 1 || row.To != "alice" || row.Price != 250 {
			t.Fatalf("unexpected transfer row: %+v", row)
		}
	})

	t.Run("resale archives a transfer row with its kind", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()
		archive := &fakeArchive{}
		StartArchiveWorker(dispatcher, archive, zap.NewNop())

		err := dispatcher.Publish(context.Background(), events.Event{
			ID:        "evt-2",
			Type:      events.EventTicketTransferred,
			Actor:     "bob",
			Timestamp: now,
			Payload: events.TicketTransferredPayload{
				TicketID: 1,
				EventID:  7,
				From:     "alice",
				To:       "bob",
				Price:    280,
				Kind:     events.TransferKindResale,
			},
		})
		if err != nil {
			t.Fatalf("publish: %v", err)
		}

		if len(archive.transfers) != 1 || archive.transfers[0].Kind != "resale" {
			t.Fatalf("expected one resale row, got %+v", archive.transfers)
		}
		rows, err := archive.ListTransfersByTicket(context.Background(), 1)
		if err != nil || len(rows) != 1 {
			t.Fatalf("expected 1 row for ticket, got %v (%v)", rows, err)
		}
	})

	t.Run("cancellation archives only an event row", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()
		archive := &fakeArchive{}
		StartArchiveWorker(dispatcher, archive, zap.NewNop())

		err := dispatcher.Publish(context.Background(), events.Event{
			ID:        "evt-3",
			Type:      events.EventEventCancelled,
			Actor:     "organizer",
			Timestamp: now,
			Payload:   events.EventCancelledPayload{EventID: 7},
		})
		if err != nil {
			t.Fatalf("publish: %v", err)
		}

		if len(archive.events) != 1 || len(archive.transfers) != 0 {
			t.Fatalf("expected event row only, got %d events %d transfers", len(archive.events), len(archive.transfers))
		}
	})

	t.Run("nil repository registers nothing", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()
		StartArchiveWorker(dispatcher, nil, zap.NewNop())

		err := dispatcher.Publish(context.Background(), events.Event{
			ID:   "evt-4",
			Type: events.EventTicketMinted,
		})
		if err != nil {
			t.Fatalf("publish: %v", err)
		}
	})
}
