package auth

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/stagepass/event-ticketing/internal/domain"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

type account struct {
	identity     domain.Identity
	passwordHash string
}

// AccountRegistry maps usernames to identities. Accounts live in memory like
// the rest of the authoritative store; durable account storage is an
// external concern.
type AccountRegistry struct {
	mu         sync.RWMutex
	accounts   map[string]account
	bcryptCost int
}

// NewAccountRegistry constructs an empty registry.
func NewAccountRegistry(bcryptCost int) *AccountRegistry {
	return &AccountRegistry{
		accounts:   make(map[string]account),
		bcryptCost: bcryptCost,
	}
}

// Register creates an account and returns its freshly minted identity.
func (r *AccountRegistry) Register(username, password string) (domain.Identity, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return "", apperrors.NewInvalidInput("username required", nil)
	}
	if len(password) < 8 {
		return "", apperrors.NewInvalidInput("password must be at least 8 characters", nil)
	}

	hash, err := HashPassword(password, r.bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[username]; exists {
		return "", apperrors.NewAlreadyExists("account", map[string]any{"username": username})
	}
	identity := domain.Identity(uuid.NewString())
	r.accounts[username] = account{identity: identity, passwordHash: hash}
	return identity, nil
}

// Authenticate verifies credentials and returns the account's identity.
func (r *AccountRegistry) Authenticate(username, password string) (domain.Identity, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	r.mu.RLock()
	acct, exists := r.accounts[username]
	r.mu.RUnlock()

	if !exists {
		return "", apperrors.NewUnauthenticated("invalid credentials")
	}
	if err := ComparePassword(acct.passwordHash, password); err != nil {
		return "", apperrors.NewUnauthenticated("invalid credentials")
	}
	return acct.identity, nil
}
