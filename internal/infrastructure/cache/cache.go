// Package cache holds per-collection snapshots of list results. Values are
// opaque JSON documents so a single store can serve every collection.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"scaffold-rental/internal/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// Collection caches one document per collection name.
type Collection interface {
	Get(ctx context.Context, collection string) ([]byte, bool, error)
	Set(ctx context.Context, collection string, data []byte) error
	Invalidate(ctx context.Context, collection string) error
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// New builds the cache named by cfg.Cache. Redis needs a live client.
func New(cfg config.ClientConfig, rdb *redis.Client, logger *slog.Logger) (Collection, error) {
	switch cfg.Cache {
	case "", BackendMemory:
		return NewMemory(cfg.CacheTTL), nil
	case BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis cache selected but no redis client configured")
		}
		return NewRedis(rdb, cfg.CacheTTL, logger), nil
	case BackendNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache)
	}
}

// Nop never holds anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte) error         { return nil }
func (Nop) Invalidate(context.Context, string) error          { return nil }

var (
	_ Collection = Nop{}
	_ Collection = (*Memory)(nil)
	_ Collection = (*Redis)(nil)
)

func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
