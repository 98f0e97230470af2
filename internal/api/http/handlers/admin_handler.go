package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stagepass/event-ticketing/internal/api/dto"
	"github.com/stagepass/event-ticketing/internal/auth"
	"github.com/stagepass/event-ticketing/internal/directory"
	"github.com/stagepass/event-ticketing/internal/domain"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

// AdminHandler exposes role directory administration.
type AdminHandler struct {
	directory *directory.Directory
}

// NewAdminHandler constructs handler.
func NewAdminHandler(dir *directory.Directory) *AdminHandler {
	return &AdminHandler{directory: dir}
}

// SetRole PUT /admin/roles. Directory enforces that the caller is an Admin.
func (h *AdminHandler) SetRole(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if req.Identity == "" {
		return apperrors.NewInvalidInput("identity required", nil)
	}
	if err := h.directory.SetRole(domain.Identity(req.Identity), domain.Role(req.Role), caller); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RoleResponse{
		Identity: req.Identity,
		Role:     req.Role,
	}})
}

// GetRole GET /admin/roles/:identity.
func (h *AdminHandler) GetRole(c *fiber.Ctx) error {
	identity := c.Params("identity")
	role := h.directory.RoleOf(domain.Identity(identity))
	return c.JSON(fiber.Map{"data": dto.RoleResponse{
		Identity: identity,
		Role:     string(role),
	}})
}
