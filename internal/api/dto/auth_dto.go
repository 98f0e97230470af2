package dto

import "time"

// RegisterRequest payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse returns the identity and its bearer token.
type AuthResponse struct {
	Identity  string    `json:"identity"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SetRoleRequest payload for role administration.
type SetRoleRequest struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
}

// RoleResponse for role lookups.
type RoleResponse struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
}
