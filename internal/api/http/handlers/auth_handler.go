package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/stagepass/event-ticketing/internal/api/dto"
	"github.com/stagepass/event-ticketing/internal/auth"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	registry *auth.AccountRegistry
	tokens   *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(registry *auth.AccountRegistry, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{registry: registry, tokens: tokens}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	identity, err := h.registry.Register(req.Username, req.Password)
	if err != nil {
		return err
	}
	token, expiresAt, err := h.tokens.GenerateToken(identity)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AuthResponse{
		Identity:  string(identity),
		Token:     token,
		ExpiresAt: expiresAt,
	}})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	identity, err := h.registry.Authenticate(req.Username, req.Password)
	if err != nil {
		return err
	}
	token, expiresAt, err := h.tokens.GenerateToken(identity)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Identity:  string(identity),
		Token:     token,
		ExpiresAt: expiresAt,
	}})
}
