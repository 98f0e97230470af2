package domain

// Identity is an opaque principal supplied by the calling environment.
// The ledger never fabricates identities; it only compares them.
type Identity string

// Role enumerates the authorization levels known to the role directory.
type Role string

const (
	RoleUser      Role = "USER"
	RoleOrganizer Role = "ORGANIZER"
	RoleAdmin     Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}
