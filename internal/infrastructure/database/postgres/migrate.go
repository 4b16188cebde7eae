package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"scaffold-rental/internal/pkg/apperrors"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates any missing tables. It is safe to run on every start.
func Migrate(ctx context.Context, db DBPool, logger *slog.Logger) error {
	logger.InfoContext(ctx, "Applying database schema...")
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		logger.ErrorContext(ctx, "Failed to apply database schema", slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	logger.InfoContext(ctx, "Database schema is up to date.")
	return nil
}
