package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagepass/event-ticketing/internal/domain"
	"github.com/stagepass/event-ticketing/internal/events"
)

// TransferRow is an archived transfer history entry.
type TransferRow struct {
	TicketID uint64
	EventID  uint64
	From     domain.Identity
	To       domain.Identity
	Price    int64
	Kind     string
	At       time.Time
}

// ArchiveRepository persists ledger events and transfer records to the
// archive database. The in-memory ledger remains authoritative; rows here
// exist for durability and offline reporting only.
type ArchiveRepository interface {
	InsertLedgerEvent(ctx context.Context, event events.Event) error
	InsertTransfer(ctx context.Context, row TransferRow) error
	ListTransfersByTicket(ctx context.Context, ticketID uint64) ([]TransferRow, error)
}

type archiveRepository struct {
	pool *pgxpool.Pool
}

// NewArchiveRepository instantiates the repository.
func NewArchiveRepository(pool *pgxpool.Pool) ArchiveRepository {
	return &archiveRepository{pool: pool}
}

func (r *archiveRepository) InsertLedgerEvent(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO ledger_events (id, event_type, actor, occurred_at, payload)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO NOTHING`
	_, err = r.pool.Exec(ctx, query, event.ID, string(event.Type), string(event.Actor), event.Timestamp, payload)
	return err
}

func (r *archiveRepository) InsertTransfer(ctx context.Context, row TransferRow) error {
	const query = `
        INSERT INTO transfer_records (ticket_id, event_id, sender, receiver, price, kind, transferred_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		row.TicketID,
		row.EventID,
		string(row.From),
		string(row.To),
		row.Price,
		row.Kind,
		row.At,
	)
	return err
}

func (r *archiveRepository) ListTransfersByTicket(ctx context.Context, ticketID uint64) ([]TransferRow, error) {
	const query = `
        SELECT ticket_id, event_id, sender, receiver, price, kind, transferred_at
        FROM transfer_records WHERE ticket_id=$1 ORDER BY transferred_at, id`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TransferRow{}
	for rows.Next() {
		var row TransferRow
		var sender, receiver string
		if err := rows.Scan(&row.TicketID, &row.EventID, &sender, &receiver, &row.Price, &row.Kind, &row.At); err != nil {
			return nil, err
		}
		row.From = domain.Identity(sender)
		row.To = domain.Identity(receiver)
		out = append(out, row)
	}
	return out, rows.Err()
}
