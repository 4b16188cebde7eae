package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"scaffold-rental/internal/domain/record"
	"scaffold-rental/internal/infrastructure/monitoring"
	"scaffold-rental/internal/pkg/apperrors"
	"strings"
	"time"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// table maps one entity onto its table. The first column is the key.
type table[T record.Entity] struct {
	name    string
	columns []string
	scan    func(row rowScanner) (T, error)
	values  func(rec T) ([]any, error)
}

type queries struct {
	selectAll string
	selectOne string
	insert    string
	update    string
	delete    string
}

func (t table[T]) build() queries {
	key := t.columns[0]
	cols := strings.Join(t.columns, ", ")

	placeholders := make([]string, len(t.columns))
	for i := range t.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := make([]string, 0, len(t.columns))
	for i, c := range t.columns[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+2))
	}
	sets = append(sets, "updated_at = NOW()")

	return queries{
		selectAll: fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at, %s", cols, t.name, key),
		selectOne: fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", cols, t.name, key),
		insert:    fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, cols, strings.Join(placeholders, ", ")),
		update:    fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1", t.name, strings.Join(sets, ", "), key),
		delete:    fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.name, key),
	}
}

// RecordRepository stores one entity type in one table.
type RecordRepository[T record.Entity] struct {
	db      DBPool
	table   table[T]
	queries queries
	logger  *slog.Logger
}

func newRecordRepository[T record.Entity](db DBPool, t table[T], logger *slog.Logger) *RecordRepository[T] {
	if db == nil {
		panic("DBPool cannot be nil for " + t.name + " repository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to repository, using default stderr handler", "table", t.name)
	}
	return &RecordRepository[T]{
		db:      db,
		table:   t,
		queries: t.build(),
		logger:  logger.With("component", "RecordRepository", "table", t.name),
	}
}

func (r *RecordRepository[T]) observe(op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery(r.table.name+"."+op, status, time.Since(start))
}

func (r *RecordRepository[T]) FindAll(ctx context.Context) (recs []T, err error) {
	defer func(start time.Time) { r.observe("find_all", start, err) }(time.Now())
	r.logger.DebugContext(ctx, "Querying all records")

	rows, err := r.db.Query(ctx, r.queries.selectAll)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query records", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query %s: %w", apperrors.ErrDatabase, r.table.name, err)
	}
	defer rows.Close()

	recs = []T{}
	for rows.Next() {
		rec, scanErr := r.table.scan(rows)
		if scanErr != nil {
			r.logger.ErrorContext(ctx, "Failed to scan record row", slog.Any("error", scanErr))
			return nil, fmt.Errorf("%w: failed to scan %s row: %w", apperrors.ErrDatabase, r.table.name, scanErr)
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating record rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating %s rows: %w", apperrors.ErrDatabase, r.table.name, err)
	}

	r.logger.DebugContext(ctx, "Fetched records", slog.Int("count", len(recs)))
	return recs, nil
}

func (r *RecordRepository[T]) FindByKey(ctx context.Context, key string) (rec T, err error) {
	defer func(start time.Time) { r.observe("find_by_key", start, err) }(time.Now())

	rec, err = r.table.scan(r.db.QueryRow(ctx, r.queries.selectOne, key))
	if err != nil {
		var zero T
		translated := translateDBError(err, r.logger)
		if errors.Is(translated, apperrors.ErrNotFound) {
			r.logger.WarnContext(ctx, "Record not found", slog.String("key", key))
			return zero, apperrors.ErrNotFound
		}
		return zero, fmt.Errorf("failed to find %s %q: %w", r.table.name, key, translated)
	}
	return rec, nil
}

func (r *RecordRepository[T]) Insert(ctx context.Context, rec T) (err error) {
	defer func(start time.Time) { r.observe("insert", start, err) }(time.Now())
	logger := r.logger.With(slog.String("key", rec.Key()))
	logger.InfoContext(ctx, "Attempting to insert record")

	args, err := r.table.values(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidArgument, err)
	}

	if _, err = r.db.Exec(ctx, r.queries.insert, args...); err != nil {
		translated := translateDBError(err, logger)
		if errors.Is(translated, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Failed to insert record due to unique constraint violation")
			return translated
		}
		logger.ErrorContext(ctx, "Failed to insert record", slog.Any("error", err))
		return translated
	}

	logger.InfoContext(ctx, "Record inserted successfully")
	return nil
}

func (r *RecordRepository[T]) Update(ctx context.Context, key string, rec T) (err error) {
	defer func(start time.Time) { r.observe("update", start, err) }(time.Now())
	logger := r.logger.With(slog.String("key", key))
	logger.InfoContext(ctx, "Attempting to update record")

	args, err := r.table.values(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidArgument, err)
	}
	args[0] = key

	cmdTag, err := r.db.Exec(ctx, r.queries.update, args...)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update record", slog.Any("error", err))
		return translateDBError(err, logger)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Update affected zero rows, record likely not found")
		return apperrors.ErrNotFound
	}

	logger.InfoContext(ctx, "Record updated successfully")
	return nil
}

func (r *RecordRepository[T]) Delete(ctx context.Context, key string) (err error) {
	defer func(start time.Time) { r.observe("delete", start, err) }(time.Now())
	logger := r.logger.With(slog.String("key", key))

	cmdTag, err := r.db.Exec(ctx, r.queries.delete, key)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete record", slog.Any("error", err))
		return translateDBError(err, logger)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Delete affected zero rows, record likely not found")
		return apperrors.ErrNotFound
	}

	logger.InfoContext(ctx, "Record deleted successfully")
	return nil
}
