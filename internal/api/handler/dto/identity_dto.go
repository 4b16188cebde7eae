package dto

import (
	"scaffold-rental/internal/domain/identity"
	"strings"
)

type TokenRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Secret   string `json:"secret" validate:"required,max=72"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type ProfileRequest struct {
	Name  string `json:"name" validate:"max=200"`
	Email string `json:"email" validate:"max=254"`
}

func (r ProfileRequest) ToDomain() identity.Profile {
	return identity.Profile{Name: strings.TrimSpace(r.Name), Email: strings.TrimSpace(r.Email)}
}

type RoleRequest struct {
	Role identity.Role `json:"role"`
}

type RoleResponse struct {
	Principal string        `json:"principal"`
	Role      identity.Role `json:"role"`
	IsAdmin   bool          `json:"isAdmin"`
}
