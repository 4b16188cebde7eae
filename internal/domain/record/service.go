package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"scaffold-rental/internal/event"
	"scaffold-rental/internal/infrastructure/monitoring"
	"scaffold-rental/internal/pkg/apperrors"
	"strings"
)

type Service[T Entity] interface {
	Collection() string
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, key string) (T, error)
	Add(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, key string, rec T) (T, error)
	Delete(ctx context.Context, key string) error
}

type service[T Entity] struct {
	collection string
	repo       Repository[T]
	checker    Checker[T]
	pub        event.EventPublisher
	logger     *slog.Logger
}

// NewService wires a collection service. checker and pub may be nil.
func NewService[T Entity](collection string, repo Repository[T], checker Checker[T], pub event.EventPublisher, logger *slog.Logger) Service[T] {
	if repo == nil {
		panic(collection + " repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler", "collection", collection)
	}

	if pub == nil {
		pub = event.NopPublisher{Logger: logger}
	}

	return &service[T]{
		collection: collection,
		repo:       repo,
		checker:    checker,
		pub:        pub,
		logger:     logger.With(slog.String("component", "recordService"), slog.String("collection", collection)),
	}
}

func (s *service[T]) Collection() string {
	return s.collection
}

func (s *service[T]) List(ctx context.Context) ([]T, error) {
	s.logger.DebugContext(ctx, "Calling repository FindAll")
	recs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing records", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list %s: %w", s.collection, err)
	}
	s.logger.InfoContext(ctx, "Successfully listed records", slog.Int("count", len(recs)))
	return recs, nil
}

func (s *service[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T
	key = strings.TrimSpace(key)
	if key == "" {
		return zero, apperrors.ErrInvalidArgument
	}

	rec, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Record not found by repository", slog.String("key", key))
			return zero, apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding record", slog.String("key", key), slog.Any("error", err))
		return zero, fmt.Errorf("failed to get %s %q: %w", s.collection, key, err)
	}
	return rec, nil
}

func (s *service[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	logger := s.logger.With(slog.String("key", rec.Key()))
	logger.InfoContext(ctx, "Attempting to add record")

	if err := s.check(ctx, rec); err != nil {
		logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return zero, err
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Record with this key already exists")
			return zero, apperrors.ErrAlreadyExists
		}
		logger.ErrorContext(ctx, "Repository failed to insert record", slog.Any("error", err))
		return zero, fmt.Errorf("failed to add %s: %w", s.collection, err)
	}

	monitoring.RecordMutation(s.collection, string(event.ActionCreated))
	s.publish(ctx, event.ActionCreated, rec.Key(), rec)
	logger.InfoContext(ctx, "Successfully added record")
	return rec, nil
}

func (s *service[T]) Update(ctx context.Context, key string, rec T) (T, error) {
	var zero T
	key = strings.TrimSpace(key)
	logger := s.logger.With(slog.String("key", key))
	logger.InfoContext(ctx, "Attempting to update record")

	if key == "" {
		return zero, apperrors.ErrInvalidArgument
	}
	if rec.Key() != key {
		logger.WarnContext(ctx, "Rejected key change on update", slog.String("body_key", rec.Key()))
		return zero, fmt.Errorf("%w: %w", apperrors.ErrImmutableField, apperrors.NewValidationError(keyField(rec), "key cannot be changed"))
	}

	if err := s.check(ctx, rec); err != nil {
		logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return zero, err
	}

	if err := s.repo.Update(ctx, key, rec); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Record not found for update")
			return zero, apperrors.ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository failed to update record", slog.Any("error", err))
		return zero, fmt.Errorf("failed to update %s %q: %w", s.collection, key, err)
	}

	monitoring.RecordMutation(s.collection, string(event.ActionUpdated))
	s.publish(ctx, event.ActionUpdated, key, rec)
	logger.InfoContext(ctx, "Successfully updated record")
	return rec, nil
}

func (s *service[T]) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	logger := s.logger.With(slog.String("key", key))
	if key == "" {
		return apperrors.ErrInvalidArgument
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Record not found for delete")
			return apperrors.ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository failed to delete record", slog.Any("error", err))
		return fmt.Errorf("failed to delete %s %q: %w", s.collection, key, err)
	}

	monitoring.RecordMutation(s.collection, string(event.ActionDeleted))
	s.publish(ctx, event.ActionDeleted, key, nil)
	logger.InfoContext(ctx, "Successfully deleted record")
	return nil
}

func (s *service[T]) check(ctx context.Context, rec T) error {
	if err := rec.Validate().Err(); err != nil {
		return err
	}
	if s.checker != nil {
		if err := s.checker.Check(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *service[T]) publish(ctx context.Context, action event.Action, key string, payload any) {
	ev := event.NewRecordEvent(s.collection, action, key, payload)
	if err := s.pub.PublishRecordEvent(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Record committed, but FAILED to publish event", slog.String("routingKey", ev.RoutingKey()), slog.Any("error", err))
	}
}

// KeyFielder is implemented by entities that name their key field for
// error reporting.
type KeyFielder interface {
	KeyField() string
}

func keyField(rec any) string {
	if kf, ok := rec.(KeyFielder); ok {
		return kf.KeyField()
	}
	return "key"
}
