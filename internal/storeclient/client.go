package storeclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"scaffold-rental/internal/pkg/apperrors"
)

// Client is the gateway to one collection. Reads before the session is ready
// return an empty collection; writes fail with ErrConnectionUnavailable. Remote
// errors are returned unchanged and never retried.
type Client[T any] struct {
	session    *Session
	collection string
	transport  Transport[T]
	logger     *slog.Logger
}

func NewClient[T any](session *Session, collection string, transport Transport[T]) *Client[T] {
	if session == nil {
		panic("session cannot be nil for store client")
	}
	if transport == nil {
		transport = NewHTTPTransport[T](session, collection)
	}
	return &Client[T]{
		session:    session,
		collection: collection,
		transport:  transport,
		logger:     session.logger.With("component", "storeclient.Client", "collection", collection),
	}
}

func (c *Client[T]) Collection() string { return c.collection }

func (c *Client[T]) List(ctx context.Context) ([]T, error) {
	if !c.session.Ready() {
		return []T{}, nil
	}

	if recs, ok := c.cached(ctx); ok {
		return recs, nil
	}

	recs, err := c.transport.List(ctx)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []T{}
	}
	c.store(ctx, recs)
	return recs, nil
}

func (c *Client[T]) Get(ctx context.Context, key string) (T, error) {
	if !c.session.Ready() {
		var zero T
		return zero, apperrors.ErrConnectionUnavailable
	}
	return c.transport.Get(ctx, key)
}

func (c *Client[T]) Add(ctx context.Context, rec T) error {
	if !c.session.Ready() {
		return apperrors.ErrConnectionUnavailable
	}
	if err := c.transport.Add(ctx, rec); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Client[T]) Update(ctx context.Context, key string, rec T) error {
	if !c.session.Ready() {
		return apperrors.ErrConnectionUnavailable
	}
	if err := c.transport.Update(ctx, key, rec); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Client[T]) Delete(ctx context.Context, key string) error {
	if !c.session.Ready() {
		return apperrors.ErrConnectionUnavailable
	}
	if err := c.transport.Delete(ctx, key); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// cached decodes the snapshot, so callers always get their own copy.
func (c *Client[T]) cached(ctx context.Context) ([]T, bool) {
	data, ok, err := c.session.cache.Get(ctx, c.collection)
	if err != nil {
		c.logger.WarnContext(ctx, "Cache read failed, fetching from record service", slog.Any("error", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		c.logger.WarnContext(ctx, "Discarding unreadable cache entry", slog.Any("error", err))
		_ = c.session.cache.Invalidate(ctx, c.collection)
		return nil, false
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, true
}

func (c *Client[T]) store(ctx context.Context, recs []T) {
	data, err := json.Marshal(recs)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to encode collection for cache", slog.Any("error", err))
		return
	}
	if err := c.session.cache.Set(ctx, c.collection, data); err != nil {
		c.logger.WarnContext(ctx, "Failed to cache collection", slog.Any("error", err))
	}
}

func (c *Client[T]) invalidate(ctx context.Context) {
	if err := c.session.cache.Invalidate(ctx, c.collection); err != nil {
		c.logger.WarnContext(ctx, "Failed to invalidate cached collection", slog.Any("error", err))
	}
}

func (c *Client[T]) String() string {
	return fmt.Sprintf("storeclient.Client[%s]", c.collection)
}
