package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"scaffold-rental/internal/config"
	"scaffold-rental/internal/domain/identity"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type principalKey struct{}

// WithPrincipal stores the authenticated principal on ctx.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFrom returns the principal set by AuthMiddleware, or "".
func PrincipalFrom(ctx context.Context) string {
	p, _ := ctx.Value(principalKey{}).(string)
	return p
}

// AuthMiddleware verifies the bearer token and stores its subject as the
// request principal. With auth disabled every request passes anonymously.
func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := validateJWT(r, cfg.JWTSecret, logger)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func validateJWT(r *http.Request, secret string, logger *slog.Logger) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.WarnContext(r.Context(), "AuthMiddleware: Missing Authorization header")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		logger.WarnContext(r.Context(), "AuthMiddleware: Invalid Authorization header format")
		return "", false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			logger.WarnContext(r.Context(), "AuthMiddleware: Unexpected signing method")
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		logger.WarnContext(r.Context(), "AuthMiddleware: Invalid token", slog.Any("error", err))
		return "", false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		logger.WarnContext(r.Context(), "AuthMiddleware: Token has no subject")
		return "", false
	}
	return sub, true
}

// RoleResolver is the part of identity.Service the role gate needs.
type RoleResolver interface {
	Role(ctx context.Context, principal string) (identity.Role, error)
}

// RequireWriter lets safe methods through and rejects mutations from callers
// whose role cannot write. It is a no-op when auth is disabled.
func RequireWriter(cfg config.AuthConfig, roles RoleResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			principal := PrincipalFrom(r.Context())
			role, err := roles.Role(r.Context(), principal)
			if err != nil {
				logger.ErrorContext(r.Context(), "Failed to resolve caller role", slog.Any("error", err))
				writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
				return
			}
			if !role.CanWrite() {
				logger.WarnContext(r.Context(), "Rejected write from read-only caller",
					slog.String("principal", principal), slog.String("role", role.String()))
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
