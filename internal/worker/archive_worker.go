package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/stagepass/event-ticketing/internal/events"
	"github.com/stagepass/event-ticketing/internal/repository"
)

// ArchiveWorker mirrors committed ledger events into the archive database.
// It subscribes to the dispatcher so the core never blocks on, or knows
// about, Postgres.
type ArchiveWorker struct {
	archive repository.ArchiveRepository
	logger  *zap.Logger
}

// StartArchiveWorker registers archive handlers on the dispatcher. A nil
// repository disables archiving.
func StartArchiveWorker(dispatcher events.Dispatcher, archive repository.ArchiveRepository, logger *zap.Logger) *ArchiveWorker {
	w := &ArchiveWorker{archive: archive, logger: logger}
	if dispatcher == nil || archive == nil {
		return w
	}

	for _, eventType := range []events.EventType{
		events.EventEventCreated,
		events.EventEventUpdated,
		events.EventEventCancelled,
		events.EventTicketMinted,
		events.EventTicketListed,
		events.EventTicketTransferred,
		events.EventTicketInvalidated,
	} {
		dispatcher.Subscribe(eventType, w.handleEvent)
	}
	dispatcher.Subscribe(events.EventTicketMinted, w.handleMint)
	dispatcher.Subscribe(events.EventTicketTransferred, w.handleTransfer)
	return w
}

func (w *ArchiveWorker) handleEvent(ctx context.Context, event events.Event) error {
	if err := w.archive.InsertLedgerEvent(ctx, event); err != nil {
		w.logger.Error("archive ledger event", zap.String("event_id", event.ID), zap.Error(err))
		return err
	}
	return nil
}

func (w *ArchiveWorker) handleMint(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketMintedPayload)
	if !ok {
		return nil
	}
	row := repository.TransferRow{
		TicketID: payload.TicketID,
		EventID:  payload.EventID,
		From:     payload.From,
		To:       payload.To,
		Price:    payload.Price,
		Kind:     "mint",
		At:       event.Timestamp,
	}
	if err := w.archive.InsertTransfer(ctx, row); err != nil {
		w.logger.Error("archive mint transfer", zap.Uint64("ticket_id", payload.TicketID), zap.Error(err))
		return err
	}
	return nil
}

func (w *ArchiveWorker) handleTransfer(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketTransferredPayload)
	if !ok {
		return nil
	}
	row := repository.TransferRow{
		TicketID: payload.TicketID,
		EventID:  payload.EventID,
		From:     payload.From,
		To:       payload.To,
		Price:    payload.Price,
		Kind:     string(payload.Kind),
		At:       event.Timestamp,
	}
	if err := w.archive.InsertTransfer(ctx, row); err != nil {
		w.logger.Error("archive transfer", zap.Uint64("ticket_id", payload.TicketID), zap.Error(err))
		return err
	}
	return nil
}
