package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"scaffold-rental/internal/domain/identity"
	"scaffold-rental/internal/infrastructure/monitoring"
	"scaffold-rental/internal/pkg/apperrors"
	"time"
)

const (
	selectProfileQuery = `SELECT name, email, role FROM user_profiles WHERE principal = $1`

	upsertProfileQuery = `INSERT INTO user_profiles (principal, name, email, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (principal) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, role = EXCLUDED.role, updated_at = NOW()`

	upsertRoleQuery = `INSERT INTO user_profiles (principal, role)
		VALUES ($1, $2)
		ON CONFLICT (principal) DO UPDATE
		SET role = EXCLUDED.role, updated_at = NOW()`
)

type ProfileRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ identity.Repository = (*ProfileRepository)(nil)

func NewProfileRepository(db DBPool, logger *slog.Logger) *ProfileRepository {
	if db == nil {
		panic("DBPool cannot be nil for ProfileRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewProfileRepository, using default stderr handler")
	}
	return &ProfileRepository{
		db:     db,
		logger: logger.With("component", "ProfileRepository"),
	}
}

func (r *ProfileRepository) FindProfile(ctx context.Context, principal string) (identity.Profile, error) {
	start := time.Now()
	var (
		p    identity.Profile
		role string
	)
	err := r.db.QueryRow(ctx, selectProfileQuery, principal).Scan(&p.Name, &p.Email, &role)
	if err != nil {
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrNotFound) {
			monitoring.RecordDBQuery("user_profiles.find", "not_found", time.Since(start))
			return identity.Profile{}, apperrors.ErrNotFound
		}
		monitoring.RecordDBQuery("user_profiles.find", "error", time.Since(start))
		return identity.Profile{}, translated
	}
	monitoring.RecordDBQuery("user_profiles.find", "success", time.Since(start))

	if p.Role, err = identity.ParseRole(role); err != nil {
		r.logger.ErrorContext(ctx, "Stored role is not recognised", slog.String("principal", principal), slog.String("role", role))
		return identity.Profile{}, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return p, nil
}

func (r *ProfileRepository) SaveProfile(ctx context.Context, principal string, profile identity.Profile) error {
	start := time.Now()
	_, err := r.db.Exec(ctx, upsertProfileQuery, principal, profile.Name, profile.Email, profile.Role.String())
	if err != nil {
		monitoring.RecordDBQuery("user_profiles.save", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to save profile", slog.String("principal", principal), slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	monitoring.RecordDBQuery("user_profiles.save", "success", time.Since(start))
	return nil
}

func (r *ProfileRepository) SetRole(ctx context.Context, principal string, role identity.Role) error {
	start := time.Now()
	_, err := r.db.Exec(ctx, upsertRoleQuery, principal, role.String())
	if err != nil {
		monitoring.RecordDBQuery("user_profiles.set_role", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to set role", slog.String("principal", principal), slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	monitoring.RecordDBQuery("user_profiles.set_role", "success", time.Since(start))
	return nil
}
