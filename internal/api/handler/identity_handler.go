package handler

import (
	"log/slog"
	"net/http"
	"scaffold-rental/internal/api/handler/dto"
	"scaffold-rental/internal/api/middleware"
	"scaffold-rental/internal/domain/identity"
)

type IdentityHandler struct {
	service identity.Service
	logger  *slog.Logger
}

func NewIdentityHandler(s identity.Service, l *slog.Logger) *IdentityHandler {
	if s == nil {
		panic("identity service cannot be nil")
	}
	return &IdentityHandler{
		service: s,
		logger:  l.With("component", "IdentityHandler"),
	}
}

// GetCallerRole handles GET /api/v1/me/role
// @Summary Caller role
// @Tags Identity
// @Produce json
// @Success 200 {object} dto.RoleResponse
// @Router /api/v1/me/role [get]
// @Security BearerAuth
func (h *IdentityHandler) GetCallerRole(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	role, err := h.service.Role(r.Context(), principal)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to resolve caller role", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.RoleResponse{Principal: principal, Role: role, IsAdmin: role == identity.Admin})
}

// GetCallerProfile handles GET /api/v1/me
// @Summary Caller profile
// @Tags Identity
// @Produce json
// @Success 200 {object} identity.Profile
// @Failure 404 {object} dto.ErrorResponse "No profile saved yet"
// @Router /api/v1/me [get]
// @Security BearerAuth
func (h *IdentityHandler) GetCallerProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Profile(r.Context(), middleware.PrincipalFrom(r.Context()))
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to get caller profile", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// SaveCallerProfile handles PUT /api/v1/me
// @Summary Save caller profile
// @Description Stores name and email. The first save registers the caller as a user.
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body dto.ProfileRequest true "Profile"
// @Success 200 {object} identity.Profile
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Anonymous caller"
// @Router /api/v1/me [put]
// @Security BearerAuth
func (h *IdentityHandler) SaveCallerProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}
	if err := dto.Validate(req); err != nil {
		respondError(w, err)
		return
	}

	saved, err := h.service.SaveProfile(r.Context(), middleware.PrincipalFrom(r.Context()), req.ToDomain())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to save caller profile", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

// GetUserProfile handles GET /api/v1/users/{principal}
// @Summary Read another user's profile (admin only)
// @Tags Identity
// @Produce json
// @Param principal path string true "Principal"
// @Success 200 {object} identity.Profile
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Router /api/v1/users/{principal} [get]
// @Security BearerAuth
func (h *IdentityHandler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := pathParam(r, "principal")
	if err != nil {
		respondError(w, err)
		return
	}
	p, err := h.service.UserProfile(r.Context(), middleware.PrincipalFrom(r.Context()), principal)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to get user profile", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// AssignRole handles PUT /api/v1/users/{principal}/role
// @Summary Assign a role (admin only)
// @Tags Identity
// @Accept json
// @Param principal path string true "Principal"
// @Param request body dto.RoleRequest true "Role"
// @Success 204 "Role assigned"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Router /api/v1/users/{principal}/role [put]
// @Security BearerAuth
func (h *IdentityHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	principal, err := pathParam(r, "principal")
	if err != nil {
		respondError(w, err)
		return
	}
	var req dto.RoleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidBody(err))
		return
	}

	if err := h.service.AssignRole(r.Context(), middleware.PrincipalFrom(r.Context()), principal, req.Role); err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to assign role", slog.Any("error", err))
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
