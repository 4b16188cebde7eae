package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "collection:"

// Redis shares collection snapshots between clients through a Redis server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Redis {
	if client == nil {
		panic("redis client cannot be nil for Redis cache")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "RedisCache"),
	}
}

func Key(collection string) string {
	return keyPrefix + collection
}

func (r *Redis) Get(ctx context.Context, collection string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, Key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		r.logger.WarnContext(ctx, "Failed to read cached collection", slog.String("collection", collection), slog.Any("error", err))
		return nil, false, fmt.Errorf("redis get %s: %w", collection, err)
	}
	return data, true, nil
}

func (r *Redis) Set(ctx context.Context, collection string, data []byte) error {
	if err := r.client.Set(ctx, Key(collection), data, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "Failed to cache collection", slog.String("collection", collection), slog.Any("error", err))
		return fmt.Errorf("redis set %s: %w", collection, err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, collection string) error {
	if err := r.client.Del(ctx, Key(collection)).Err(); err != nil {
		r.logger.WarnContext(ctx, "Failed to invalidate cached collection", slog.String("collection", collection), slog.Any("error", err))
		return fmt.Errorf("redis del %s: %w", collection, err)
	}
	return nil
}
