package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stagepass/event-ticketing/internal/api/dto"
	"github.com/stagepass/event-ticketing/internal/domain"
	"github.com/stagepass/event-ticketing/internal/ledger"
)

// NFTHandler serves the read-only NFT metadata projection.
type NFTHandler struct {
	store *ledger.Store
}

// NewNFTHandler constructs handler.
func NewNFTHandler(store *ledger.Store) *NFTHandler {
	return &NFTHandler{store: store}
}

// Metadata GET /tickets/:id/metadata.
func (h *NFTHandler) Metadata(c *fiber.Ctx) error {
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	metadata, err := h.store.TokenMetadata(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": metadata})
}

// Supply GET /supply.
func (h *NFTHandler) Supply(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.SupplyResponse{
		TotalSupply: h.store.TotalSupply(c.UserContext()),
	}})
}

// Balance GET /owners/:identity/balance.
func (h *NFTHandler) Balance(c *fiber.Ctx) error {
	identity := c.Params("identity")
	return c.JSON(fiber.Map{"data": dto.BalanceResponse{
		Identity: identity,
		Balance:  h.store.BalanceOf(c.UserContext(), domain.Identity(identity)),
	}})
}

// OwnerOf GET /tokens/:id/owner.
func (h *NFTHandler) OwnerOf(c *fiber.Ctx) error {
	ticketID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	owner, err := h.store.OwnerOf(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.OwnerResponse{
		TicketID: ticketID,
		Owner:    string(owner),
	}})
}

// TokensOf GET /owners/:identity/tokens.
func (h *NFTHandler) TokensOf(c *fiber.Ctx) error {
	identity := c.Params("identity")
	return c.JSON(fiber.Map{"data": dto.TokenListResponse{
		Identity: identity,
		Tokens:   h.store.TokensOf(c.UserContext(), domain.Identity(identity)),
	}})
}

// OwnerTickets GET /owners/:identity/tickets.
func (h *NFTHandler) OwnerTickets(c *fiber.Ctx) error {
	identity := c.Params("identity")
	tickets := h.store.TicketsByOwner(c.UserContext(), domain.Identity(identity))
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
