package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stagepass/event-ticketing/internal/observability"
	"github.com/stagepass/event-ticketing/internal/persistence"
)

// HealthHandler serves liveness, readiness and metrics endpoints.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
	metrics  *observability.Metrics
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{postgres: pg, redis: redis, metrics: metrics}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready. The ledger itself is always ready; collaborators
// report their own state.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{"ledger": "ok"}

	if h.postgres != nil && h.postgres.PoolHandle() != nil {
		if err := h.postgres.PoolHandle().Ping(c.UserContext()); err != nil {
			checks["postgres"] = "unreachable"
		} else {
			checks["postgres"] = "ok"
		}
	} else {
		checks["postgres"] = "disabled"
	}

	if h.redis != nil && h.redis.Client != nil {
		if err := h.redis.Ping(c.UserContext()); err != nil {
			checks["redis"] = "unreachable"
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "disabled"
	}

	return c.JSON(fiber.Map{"status": "ok", "checks": checks})
}

// Metrics GET /health/metrics.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errors, ledgerOps := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests":   requests,
		"errors":     errors,
		"ledger_ops": ledgerOps,
	})
}
