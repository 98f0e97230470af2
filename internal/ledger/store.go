package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stagepass/event-ticketing/internal/clock"
	"github.com/stagepass/event-ticketing/internal/domain"
	"github.com/stagepass/event-ticketing/internal/events"
	"github.com/stagepass/event-ticketing/internal/observability"
)

// RoleDirectory is the collaborator consulted for every authorization check.
type RoleDirectory interface {
	RoleOf(id domain.Identity) domain.Role
}

// Store owns all ledger state: events, tickets, and the derived indices.
// A single RWMutex makes every public operation linearizable; mutations hold
// the write lock for their whole critical section and reads observe one
// consistent snapshot under the read lock. Ledger events are published only
// after the mutation has committed and the lock is released.
type Store struct {
	mu    sync.RWMutex
	clock clock.Clock
	roles RoleDirectory

	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics

	events  map[uint64]*domain.Event
	tickets map[uint64]*domain.Ticket

	// derived indices, maintained inside the same critical section as the
	// entity mutation they reflect
	ownerTickets    map[domain.Identity]map[uint64]struct{}
	eventTickets    map[uint64][]uint64
	organizerEvents map[domain.Identity][]uint64

	nextEventID  uint64
	nextTicketID uint64
}

// Dependencies bundles collaborators for the store.
type Dependencies struct {
	Clock      clock.Clock
	Roles      RoleDirectory
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewStore constructs an empty ledger store.
func NewStore(deps Dependencies) *Store {
	if deps.Clock == nil {
		deps.Clock = clock.NewSystem()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Store{
		clock:           deps.Clock,
		roles:           deps.Roles,
		dispatcher:      deps.Dispatcher,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
		events:          make(map[uint64]*domain.Event),
		tickets:         make(map[uint64]*domain.Ticket),
		ownerTickets:    make(map[domain.Identity]map[uint64]struct{}),
		eventTickets:    make(map[uint64][]uint64),
		organizerEvents: make(map[domain.Identity][]uint64),
	}
}

// addOwned inserts a ticket id into an identity's owned set. Callers hold the
// write lock.
func (s *Store) addOwned(owner domain.Identity, ticketID uint64) {
	set, ok := s.ownerTickets[owner]
	if !ok {
		set = make(map[uint64]struct{})
		s.ownerTickets[owner] = set
	}
	set[ticketID] = struct{}{}
}

// moveOwned transfers a ticket id between owned sets. Callers hold the write
// lock.
func (s *Store) moveOwned(from, to domain.Identity, ticketID uint64) {
	if set, ok := s.ownerTickets[from]; ok {
		delete(set, ticketID)
	}
	s.addOwned(to, ticketID)
}

func (s *Store) ownedIDs(owner domain.Identity) []uint64 {
	set := s.ownerTickets[owner]
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) committed(op string) {
	s.metrics.RecordLedgerOp(op)
}

func (s *Store) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
