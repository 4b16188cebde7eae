package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"scaffold-rental/internal/config"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns          int32 = 10
	defaultMaxConnIdleTime         = 5 * time.Minute
	defaultHealthCheckPeriod       = time.Minute
	defaultPingTimeout             = 5 * time.Second
	applicationName                = "scaffold-rental"
)

// NewConnectionPool opens the pool backing the record and profile tables and
// pings it once before handing it out.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty in configuration")
	}
	logger = logger.With("component", "postgres")

	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Opening record store pool",
		"host", poolConfig.ConnConfig.Host,
		"db", poolConfig.ConnConfig.Database,
		"maxConns", poolConfig.MaxConns,
		"minConns", poolConfig.MinConns)
	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := verifyConnection(ctx, dbpool, pingTimeout(cfg), logger); err != nil {
		dbpool.Close()
		return nil, err
	}

	logger.Info("Record store pool ready")
	return dbpool, nil
}

// configurePool applies the database section on top of the URL. Zero values
// fall back to the package defaults.
func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = min(cfg.MinConns, poolConfig.MaxConns)
	}
	poolConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	poolConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	return poolConfig, nil
}

func pingTimeout(cfg config.DatabaseConfig) time.Duration {
	if cfg.PingTimeout > 0 {
		return cfg.PingTimeout
	}
	return defaultPingTimeout
}

func verifyConnection(ctx context.Context, dbpool DBPool, timeout time.Duration, logger *slog.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := dbpool.Ping(pingCtx); err != nil {
		logger.Error("Failed to ping database", slog.Any("error", err))
		return fmt.Errorf("failed to ping database on connect: %w", err)
	}
	return nil
}
