// Package storeclient is the caller-side gateway to the record service. A
// Session owns the connection state and cache; Client values expose one
// collection each.
package storeclient

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"scaffold-rental/internal/config"
	"scaffold-rental/internal/infrastructure/cache"
	"scaffold-rental/internal/pkg/apperrors"
	"strings"
	"sync"
	"time"
)

// Session is created once at the application boundary and passed to every
// Client. It is safe for concurrent use.
type Session struct {
	baseURL    *url.URL
	httpClient *http.Client
	cache      cache.Collection
	logger     *slog.Logger

	mu    sync.RWMutex
	ready bool
	token string
}

func NewSession(cfg config.ClientConfig, store cache.Collection, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewSession, using default stderr handler")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid record service URL %q", apperrors.ErrInvalidArgument, cfg.BaseURL)
	}
	if store == nil {
		store = cache.Nop{}
	}
	// Zero leaves calls unbounded; a deadline is opt-in through client.timeout
	// or the caller's context.
	timeout := max(cfg.Timeout, 0)

	return &Session{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache:  store,
		token:  cfg.Token,
		logger: logger.With("component", "storeclient.Session"),
	}, nil
}

// Connect checks the record service health endpoint and marks the session
// ready. Until then reads return empty collections and writes fail.
func (s *Session) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL.JoinPath("health").String(), nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WarnContext(ctx, "Record service unreachable", slog.Any("error", err))
		return fmt.Errorf("%w: %w", apperrors.ErrConnectionUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.logger.WarnContext(ctx, "Record service is not healthy", slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: health check returned %s", apperrors.ErrConnectionUnavailable, resp.Status)
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "Connected to record service", slog.String("url", s.baseURL.String()))
	return nil
}

// Close marks the session not ready and releases idle connections.
func (s *Session) Close() {
	s.mu.Lock()
	s.ready = false
	s.mu.Unlock()
	s.httpClient.CloseIdleConnections()
}

func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) Cache() cache.Collection { return s.cache }
