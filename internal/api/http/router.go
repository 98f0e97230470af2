package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stagepass/event-ticketing/internal/api/http/handlers"
	"github.com/stagepass/event-ticketing/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Events         *handlers.EventsHandler
	Tickets        *handlers.TicketsHandler
	NFT            *handlers.NFTHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads are public; every mutating
// endpoint requires an authenticated caller, with the finer authorization
// checks living in the ledger itself.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	app.Get("/events", cfg.Events.ListActive)
	app.Get("/events/:id", cfg.Events.Get)
	app.Get("/events/:id/tickets", cfg.Events.Tickets)
	app.Get("/events/:id/stats", cfg.Events.Stats)

	app.Get("/tickets/:id", cfg.Tickets.Get)
	app.Get("/tickets/:id/verify", cfg.Tickets.Verify)
	app.Get("/tickets/:id/transfers", cfg.Tickets.Transfers)
	app.Get("/tickets/:id/metadata", cfg.NFT.Metadata)

	app.Get("/supply", cfg.NFT.Supply)
	app.Get("/owners/:identity/tickets", cfg.NFT.OwnerTickets)
	app.Get("/owners/:identity/balance", cfg.NFT.Balance)
	app.Get("/owners/:identity/tokens", cfg.NFT.TokensOf)
	app.Get("/tokens/:id/owner", cfg.NFT.OwnerOf)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/events", cfg.Events.Create)
	protected.Patch("/events/:id", cfg.Events.Update)
	protected.Post("/events/:id/cancel", cfg.Events.Cancel)
	protected.Post("/events/:id/tickets", cfg.Events.Mint)

	protected.Post("/tickets/:id/list", cfg.Tickets.ListForResale)
	protected.Post("/tickets/:id/buy", cfg.Tickets.Buy)
	protected.Post("/tickets/:id/gift", cfg.Tickets.Gift)
	protected.Post("/tickets/:id/invalidate", cfg.Tickets.Invalidate)

	protected.Put("/admin/roles", cfg.Admin.SetRole)
	protected.Get("/admin/roles/:identity", cfg.Admin.GetRole)
}
