package handler

import (
	"log/slog"
	"net/http"
	"scaffold-rental/internal/api/handler/dto"
	"scaffold-rental/internal/api/middleware"
	"scaffold-rental/internal/config"
	"scaffold-rental/internal/domain/identity"
	"scaffold-rental/internal/pkg/apperrors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	cfg    config.AuthConfig
	roles  middleware.RoleResolver
	now    func() time.Time
	logger *slog.Logger
}

func NewAuthHandler(cfg config.AuthConfig, roles middleware.RoleResolver, l *slog.Logger) *AuthHandler {
	if roles == nil {
		panic("role resolver cannot be nil")
	}
	return &AuthHandler{
		cfg:    cfg,
		roles:  roles,
		now:    time.Now,
		logger: l.With("component", "AuthHandler"),
	}
}

// GenerateBearerToken issues an HS256 token whose subject is the username.
// Admin principals must present the admin secret, everyone else the client
// secret.
//
// @Summary Generate a JWT bearer token
// @Description Issues a token for the given username after checking its secret. The role claim is informational; roles are resolved on every request.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "username and secret"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Secret rejected"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, invalidBody(err))
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := dto.Validate(req); err != nil {
		respondError(w, err)
		return
	}

	role, err := h.roles.Role(r.Context(), req.Username)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to resolve role for token", slog.Any("error", err))
		respondError(w, err)
		return
	}
	if !h.secretMatches(role, req.Secret) {
		h.logger.WarnContext(r.Context(), "Rejected token request", slog.String("principal", req.Username), slog.String("role", role.String()))
		respondError(w, apperrors.ErrUnauthorized)
		return
	}

	ttl := h.cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := h.now()
	expires := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  req.Username,
		"role": role.String(),
		"iat":  now.Unix(),
		"exp":  expires.Unix(),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", slog.Any("error", err))
		respondError(w, apperrors.ErrInternalServer)
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", slog.String("principal", req.Username), slog.String("role", role.String()))
	respondJSON(w, http.StatusOK, dto.TokenResponse{Token: "Bearer " + tokenString, ExpiresAt: expires.Unix()})
}

func (h *AuthHandler) secretMatches(role identity.Role, secret string) bool {
	hash := h.cfg.ClientSecretHash
	if role == identity.Admin {
		hash = h.cfg.AdminSecretHash
	}
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
