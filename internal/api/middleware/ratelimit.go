package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"scaffold-rental/internal/config"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiterMiddleware limits requests per client IP. With a Redis client it
// counts a fixed window shared by every server instance; without one it keeps
// a token bucket per IP in process.
type RateLimiterMiddleware struct {
	limiters    sync.Map
	redisClient *redis.Client
	cfg         config.RateLimitConfig
	window      time.Duration
	logger      *slog.Logger
	stop        chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RateLimiterMiddleware {
	window := cfg.Window
	if window <= 0 {
		window = time.Second
	}
	rl := &RateLimiterMiddleware{
		redisClient: redisClient,
		cfg:         cfg,
		window:      window,
		logger:      logger.With("component", "RateLimiter"),
		stop:        make(chan struct{}),
	}

	switch {
	case !cfg.Enabled:
		rl.logger.Info("Rate limiting is disabled via configuration.")
	case redisClient != nil:
		rl.logger.Info("Rate limiter using Redis fixed window", "limit", cfg.RPS, "window", window)
	default:
		rl.logger.Info("Rate limiter using in-process token buckets", "rps", cfg.RPS, "burst", cfg.Burst)
		go rl.cleanupLimiters(10 * time.Minute)
	}
	return rl
}

// Stop ends the background cleanup of idle limiters.
func (rl *RateLimiterMiddleware) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiterMiddleware) getLimiter(ip string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(ip); ok {
		return limiter.(*rate.Limiter)
	}
	limiter, _ := rl.limiters.LoadOrStore(ip, rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst))
	return limiter.(*rate.Limiter)
}

func (rl *RateLimiterMiddleware) cleanupLimiters(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.limiters.Range(func(key, value any) bool {
				limiter := value.(*rate.Limiter)
				if limiter.Tokens() >= float64(limiter.Burst()) {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}

func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); xRealIP != "" && net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// allowRedis increments the caller's counter for the current window. Redis
// failures let the request through.
func (rl *RateLimiterMiddleware) allowRedis(r *http.Request, ip string) bool {
	ctx := r.Context()
	key := fmt.Sprintf("ratelimit:%s", ip)

	pipe := rl.redisClient.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.logger.ErrorContext(ctx, "Redis pipeline failed during rate limiting check", slog.Any("error", err), "ip", ip)
		return true
	}

	// A key without expiry was just created by INCR.
	if ttl := ttlCmd.Val(); ttl == -1 || ttl == -2 {
		if err := rl.redisClient.Expire(ctx, key, rl.window).Err(); err != nil {
			rl.logger.ErrorContext(ctx, "Failed to set Redis EXPIRE for rate limit key", slog.Any("error", err), "ip", ip)
		}
	}
	return incrCmd.Val() <= int64(rl.cfg.RPS)
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)

		var allowed bool
		if rl.redisClient != nil {
			allowed = rl.allowRedis(r, ip)
		} else {
			allowed = rl.getLimiter(ip).Allow()
		}

		if !allowed {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip)
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rl.window.Seconds()))
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
