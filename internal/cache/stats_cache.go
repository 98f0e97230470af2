package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stagepass/event-ticketing/internal/events"
	"github.com/stagepass/event-ticketing/internal/ledger"
)

const statsKeyPrefix = "event:stats:"

// StatsCache caches per-event statistics in Redis for the read facade.
// Entries are invalidated on every mutation that changes an event's figures.
// A nil client disables the cache; all methods are nil-safe.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsCache constructs the cache.
func NewStatsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *StatsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsCache{client: client, ttl: ttl, logger: logger}
}

// Get returns cached stats for the event, if present.
func (c *StatsCache) Get(ctx context.Context, eventID uint64) (*ledger.EventStats, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, statsKey(eventID)).Bytes()
	if err != nil {
		return nil, false
	}
	var stats ledger.EventStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// Set stores stats for the event under the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats *ledger.EventStats) {
	if c == nil || c.client == nil || stats == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(stats.EventID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("stats cache set", zap.Uint64("event_id", stats.EventID), zap.Error(err))
	}
}

// Invalidate drops the cached stats for the event.
func (c *StatsCache) Invalidate(ctx context.Context, eventID uint64) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, statsKey(eventID)).Err(); err != nil {
		c.logger.Warn("stats cache invalidate", zap.Uint64("event_id", eventID), zap.Error(err))
	}
}

// RegisterInvalidation subscribes the cache to every mutation event that
// changes per-event figures.
func (c *StatsCache) RegisterInvalidation(dispatcher events.Dispatcher) {
	if c == nil || dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketMinted, func(ctx context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.TicketMintedPayload); ok {
			c.Invalidate(ctx, payload.EventID)
		}
		return nil
	})
	dispatcher.Subscribe(events.EventTicketInvalidated, func(ctx context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.TicketInvalidatedPayload); ok {
			c.Invalidate(ctx, payload.EventID)
		}
		return nil
	})
	dispatcher.Subscribe(events.EventEventUpdated, func(ctx context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.EventUpdatedPayload); ok {
			c.Invalidate(ctx, payload.EventID)
		}
		return nil
	})
}

func statsKey(eventID uint64) string {
	return statsKeyPrefix + strconv.FormatUint(eventID, 10)
}
