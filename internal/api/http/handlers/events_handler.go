package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/stagepass/event-ticketing/internal/api/dto"
	"github.com/stagepass/event-ticketing/internal/auth"
	"github.com/stagepass/event-ticketing/internal/cache"
	"github.com/stagepass/event-ticketing/internal/ledger"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

// EventsHandler exposes the event inventory and its read endpoints.
type EventsHandler struct {
	store *ledger.Store
	stats *cache.StatsCache
}

// NewEventsHandler constructs handler.
func NewEventsHandler(store *ledger.Store, stats *cache.StatsCache) *EventsHandler {
	return &EventsHandler{store: store, stats: stats}
}

// Create POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	event, err := h.store.CreateEvent(c.UserContext(), caller, ledger.CreateEventInput{
		Name:        req.Name,
		StartsAt:    req.StartsAt,
		Venue:       req.Venue,
		UnitPrice:   req.UnitPrice,
		Capacity:    req.Capacity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": eventResponse(event)})
}

// Update PATCH /events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	eventID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	input := ledger.UpdateEventInput{
		Name:        req.Name,
		StartsAt:    req.StartsAt,
		Venue:       req.Venue,
		UnitPrice:   req.UnitPrice,
		Capacity:    req.Capacity,
		Description: req.Description,
	}
	// Distinguish absent from explicit null: null clears the image.
	if len(req.ImageURL) > 0 {
		if string(req.ImageURL) == "null" {
			input.ClearImage = true
		} else {
			var url string
			if err := json.Unmarshal(req.ImageURL, &url); err != nil {
				return apperrors.NewInvalidInput("invalid image_url", nil)
			}
			input.ImageURL = &url
		}
	}

	event, err := h.store.UpdateEvent(c.UserContext(), caller, eventID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// Cancel POST /events/:id/cancel.
func (h *EventsHandler) Cancel(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	eventID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	event, err := h.store.CancelEvent(c.UserContext(), caller, eventID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// Get GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	event, err := h.store.GetEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// ListActive GET /events.
func (h *EventsHandler) ListActive(c *fiber.Ctx) error {
	events := h.store.ActiveEvents(c.UserContext())
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, eventResponse(&events[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Tickets GET /events/:id/tickets.
func (h *EventsHandler) Tickets(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	tickets, err := h.store.TicketsByEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Stats GET /events/:id/stats. Served cache-aside from Redis when available.
func (h *EventsHandler) Stats(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if stats, ok := h.stats.Get(c.UserContext(), eventID); ok {
		return c.JSON(fiber.Map{"data": stats})
	}
	stats, err := h.store.EventStats(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	h.stats.Set(c.UserContext(), stats)
	return c.JSON(fiber.Map{"data": stats})
}

// Mint POST /events/:id/tickets.
func (h *EventsHandler) Mint(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	eventID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.MintTicketRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewInvalidInput("invalid payload", nil)
		}
	}
	ticket, err := h.store.MintTicket(c.UserContext(), caller, eventID, ledger.MintInput{
		Class: req.Class,
		Seat:  req.Seat,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}
