package directory

import (
	"sync"

	"github.com/stagepass/event-ticketing/internal/domain"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

// Directory maps identities to roles. The ledger consults it for every
// authorization check but never owns or mutates it.
type Directory struct {
	mu    sync.RWMutex
	roles map[domain.Identity]domain.Role
}

// New creates a directory with the given identities seeded as Admin.
func New(admins ...domain.Identity) *Directory {
	roles := make(map[domain.Identity]domain.Role, len(admins))
	for _, id := range admins {
		roles[id] = domain.RoleAdmin
	}
	return &Directory{roles: roles}
}

// RoleOf returns the role assigned to the identity, defaulting to User.
func (d *Directory) RoleOf(id domain.Identity) domain.Role {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if role, ok := d.roles[id]; ok {
		return role
	}
	return domain.RoleUser
}

// SetRole assigns a role. Only an existing Admin may do so.
func (d *Directory) SetRole(id domain.Identity, role domain.Role, caller domain.Identity) error {
	if !role.Valid() {
		return apperrors.NewInvalidInput("unknown role", map[string]any{"role": role})
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.roles[caller] != domain.RoleAdmin {
		return apperrors.NewUnauthorized("admin role required")
	}
	d.roles[id] = role
	return nil
}
