package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"scaffold-rental/internal/pkg/apperrors"
	"strings"
)

type Service interface {
	Role(ctx context.Context, principal string) (Role, error)
	IsAdmin(ctx context.Context, principal string) (bool, error)
	Profile(ctx context.Context, principal string) (Profile, error)
	UserProfile(ctx context.Context, caller, principal string) (Profile, error)
	SaveProfile(ctx context.Context, principal string, profile Profile) (Profile, error)
	AssignRole(ctx context.Context, caller, principal string, role Role) error
}

var _ Service = (*identityService)(nil)

type identityService struct {
	repo   Repository
	admins map[string]struct{}
	logger *slog.Logger
}

// NewService builds the identity service. Principals listed in admins always
// resolve to the admin role.
func NewService(repo Repository, admins []string, logger *slog.Logger) Service {
	if repo == nil {
		panic("identity repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}

	set := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		if a = strings.TrimSpace(a); a != "" {
			set[a] = struct{}{}
		}
	}

	return &identityService{
		repo:   repo,
		admins: set,
		logger: logger.With(slog.String("component", "identityService")),
	}
}

// Role resolves the caller's role. Unknown principals are guests until an
// admin assigns them a role.
func (s *identityService) Role(ctx context.Context, principal string) (Role, error) {
	if _, ok := s.admins[principal]; ok {
		return Admin, nil
	}
	if principal == "" {
		return Guest, nil
	}

	p, err := s.repo.FindProfile(ctx, principal)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return Guest, nil
		}
		s.logger.ErrorContext(ctx, "Repository error resolving role", slog.String("principal", principal), slog.Any("error", err))
		return Guest, fmt.Errorf("failed to resolve role: %w", err)
	}
	return p.Role, nil
}

func (s *identityService) IsAdmin(ctx context.Context, principal string) (bool, error) {
	role, err := s.Role(ctx, principal)
	if err != nil {
		return false, err
	}
	return role == Admin, nil
}

func (s *identityService) Profile(ctx context.Context, principal string) (Profile, error) {
	p, err := s.repo.FindProfile(ctx, principal)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return Profile{}, apperrors.ErrNotFound
		}
		return Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	if _, ok := s.admins[principal]; ok {
		p.Role = Admin
	}
	return p, nil
}

// UserProfile reads another principal's profile. Only admins may read profiles
// other than their own.
func (s *identityService) UserProfile(ctx context.Context, caller, principal string) (Profile, error) {
	if caller != principal {
		admin, err := s.IsAdmin(ctx, caller)
		if err != nil {
			return Profile{}, err
		}
		if !admin {
			return Profile{}, apperrors.ErrForbidden
		}
	}
	return s.Profile(ctx, principal)
}

// SaveProfile stores name and email. The role in the request is ignored and
// the stored role is kept, so a guest stays a guest.
func (s *identityService) SaveProfile(ctx context.Context, principal string, profile Profile) (Profile, error) {
	logger := s.logger.With(slog.String("principal", principal))
	if principal == "" {
		return Profile{}, apperrors.ErrUnauthorized
	}

	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.TrimSpace(profile.Email)
	if err := profile.Validate().Err(); err != nil {
		logger.WarnContext(ctx, "Profile validation failed", slog.Any("error", err))
		return Profile{}, err
	}

	role, err := s.Role(ctx, principal)
	if err != nil {
		return Profile{}, err
	}
	profile.Role = role

	if err := s.repo.SaveProfile(ctx, principal, profile); err != nil {
		logger.ErrorContext(ctx, "Repository failed to save profile", slog.Any("error", err))
		return Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	logger.InfoContext(ctx, "Saved caller profile", slog.String("role", role.String()))
	return profile, nil
}

func (s *identityService) AssignRole(ctx context.Context, caller, principal string, role Role) error {
	logger := s.logger.With(slog.String("caller", caller), slog.String("principal", principal))
	if !role.Valid() || strings.TrimSpace(principal) == "" {
		return apperrors.ErrInvalidArgument
	}

	admin, err := s.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !admin {
		logger.WarnContext(ctx, "Non-admin attempted role assignment")
		return apperrors.ErrForbidden
	}

	if err := s.repo.SetRole(ctx, principal, role); err != nil {
		logger.ErrorContext(ctx, "Repository failed to assign role", slog.Any("error", err))
		return fmt.Errorf("failed to assign role: %w", err)
	}
	logger.InfoContext(ctx, "Assigned role", slog.String("role", role.String()))
	return nil
}
