package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stagepass/event-ticketing/internal/api/dto"
	"github.com/stagepass/event-ticketing/internal/auth"
	"github.com/stagepass/event-ticketing/internal/domain"
	"github.com/stagepass/event-ticketing/internal/ledger"
	"github.com/stagepass/event-ticketing/internal/repository"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

// TicketsHandler exposes ticket lifecycle endpoints. The archive is optional;
// without it the durable transfer log endpoint reports not found.
type TicketsHandler struct {
	store   *ledger.Store
	archive repository.ArchiveRepository
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(store *ledger.Store, archive repository.ArchiveRepository) *TicketsHandler {
	return &TicketsHandler{store: store, archive: archive}
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.store.GetTicket(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListForResale POST /tickets/:id/list.
func (h *TicketsHandler) ListForResale(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ListResaleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	ticket, err := h.store.ListForResale(c.UserContext(), caller, ticketID, req.AskPrice)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Buy POST /tickets/:id/buy.
func (h *TicketsHandler) Buy(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.store.BuyResale(c.UserContext(), caller, ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Gift POST /tickets/:id/gift.
func (h *TicketsHandler) Gift(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.GiftTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	ticket, err := h.store.GiftTransfer(c.UserContext(), caller, ticketID, domain.Identity(req.Recipient))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Invalidate POST /tickets/:id/invalidate.
func (h *TicketsHandler) Invalidate(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.store.InvalidateTicket(c.UserContext(), caller, ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Transfers GET /tickets/:id/transfers. Serves the durable transfer log from
// the Postgres archive, mint row included.
func (h *TicketsHandler) Transfers(c *fiber.Ctx) error {
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if h.archive == nil {
		return apperrors.NewNotFound("transfer archive", nil)
	}
	rows, err := h.archive.ListTransfersByTicket(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	items := make([]dto.ArchivedTransferResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ArchivedTransferResponse{
			From:  string(row.From),
			To:    string(row.To),
			Price: row.Price,
			Kind:  row.Kind,
			At:    row.At,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Verify GET /tickets/:id/verify?owner=<identity>.
func (h *TicketsHandler) Verify(c *fiber.Ctx) error {
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	owner := c.Query("owner")
	if owner == "" {
		return apperrors.NewInvalidInput("owner query parameter required", nil)
	}
	valid := h.store.VerifyTicket(c.UserContext(), ticketID, domain.Identity(owner))
	return c.JSON(fiber.Map{"data": dto.VerifyResponse{
		TicketID: ticketID,
		Owner:    owner,
		Valid:    valid,
	}})
}
