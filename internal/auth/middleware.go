package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stagepass/event-ticketing/internal/domain"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

const callerKey = "auth_caller"

// Middleware validates bearer tokens and attaches the caller identity.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	identity, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthenticated("invalid token")
	}

	c.Locals(callerKey, identity)
	return c.Next()
}

// CallerFromContext retrieves the authenticated identity.
func CallerFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(callerKey)
	if val == nil {
		return "", false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok && identity != ""
}
