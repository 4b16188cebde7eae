package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"scaffold-rental/internal/api"
	"scaffold-rental/internal/batch"
	"scaffold-rental/internal/config"
	"scaffold-rental/internal/domain/customer"
	"scaffold-rental/internal/domain/dashboard"
	"scaffold-rental/internal/domain/identity"
	"scaffold-rental/internal/domain/inventory"
	"scaffold-rental/internal/domain/record"
	"scaffold-rental/internal/domain/rental"
	"scaffold-rental/internal/domain/vendors"
	"scaffold-rental/internal/event"
	"scaffold-rental/internal/infrastructure/database/postgres"
	"scaffold-rental/internal/infrastructure/logging"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// @title Scaffold Rental API
// @version 1.0
// @description Record service for customers, vendors, scaffolding inventory and rental orders.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)
	rabbitMQConn := setupRabbitMQ(cfg, logger)
	redisClient := initializeRedisClient(cfg, logger)
	publisher := initializePublisher(cfg, rabbitMQConn, logger)

	svcs := initializeServices(cfg, newRepositories(dbPool, logger), publisher, logger)
	refreshJob := batch.NewRefreshDashboardJob(svcs.Dashboard, logger)

	cronScheduler := startBatchJobs(cfg, logger, refreshJob)
	router := api.SetupRouter(svcs, cfg, redisClient, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

// initializeDatabase returns nil when no database URL is configured; the
// server then keeps records in memory.
func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	if cfg.Database.URL == "" {
		logger.Warn("Database URL is not configured, records will be kept in memory.")
		return nil
	}

	logger.Info("Initializing database connection pool...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, dbPool, logger); err != nil {
			dbPool.Close()
			logger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	if dbPool == nil {
		return
	}
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

type repositories struct {
	customers record.Repository[customer.Customer]
	vendors   record.Repository[vendors.Vendor]
	items     record.Repository[inventory.Item]
	orders    record.Repository[rental.Order]
	profiles  identity.Repository
}

func newRepositories(dbPool *pgxpool.Pool, logger *slog.Logger) repositories {
	if dbPool == nil {
		return repositories{
			customers: record.NewMemoryRepository[customer.Customer](),
			vendors:   record.NewMemoryRepository[vendors.Vendor](),
			items:     record.NewMemoryRepository[inventory.Item](),
			orders:    record.NewMemoryRepository[rental.Order](),
			profiles:  identity.NewMemoryRepository(),
		}
	}
	return repositories{
		customers: postgres.NewCustomerRepository(dbPool, logger),
		vendors:   postgres.NewVendorRepository(dbPool, logger),
		items:     postgres.NewInventoryRepository(dbPool, logger),
		orders:    postgres.NewRentalOrderRepository(dbPool, logger),
		profiles:  postgres.NewProfileRepository(dbPool, logger),
	}
}

func initializePublisher(cfg *config.Config, conn *amqp.Connection, logger *slog.Logger) event.EventPublisher {
	if conn == nil {
		return event.NopPublisher{Logger: logger}
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to create RabbitMQ event publisher, events will be dropped", slog.Any("error", err))
		return event.NopPublisher{Logger: logger}
	}
	return publisher
}

func initializeServices(cfg *config.Config, repos repositories, pub event.EventPublisher, logger *slog.Logger) api.Services {
	logger.Info("Initializing application components...")
	svcs := api.Services{
		Customers: record.NewService(customer.Collection, repos.customers, nil, pub, logger),
		Vendors:   record.NewService(vendors.Collection, repos.vendors, nil, pub, logger),
		Inventory: record.NewService(inventory.Collection, repos.items, nil, pub, logger),
		Orders: record.NewService[rental.Order](rental.Collection, repos.orders,
			rental.ReferenceChecker{Customers: repos.customers, Items: repos.items}, pub, logger),
		Identity: identity.NewService(repos.profiles, cfg.Server.Auth.Admins, logger),
	}
	svcs.Dashboard = dashboard.NewService(svcs.Customers, svcs.Inventory, svcs.Orders)
	return svcs
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	closeRedisClient(redisClient, logger)
	shutdownHTTPServer(srv, serverErrors, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	switch {
	case rabbitConn == nil:
		logger.Info("RabbitMQ connection was not established, skipping close.")
	case rabbitConn.IsClosed():
		logger.Info("RabbitMQ connection already closed, skipping close.")
	default:
		logger.Info("Closing RabbitMQ connection...")
		if err := rabbitConn.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
		} else {
			logger.Info("RabbitMQ connection closed.")
		}
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

// initializeRedisClient returns nil when Redis is not configured. Rate limiting
// then uses in-process buckets.
func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis address is not configured, skipping Redis client.")
		return nil
	}

	logger.Info("Initializing central Redis client...")
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		logger.Error("Failed to connect to Redis", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		os.Exit(1)
		return nil
	}

	logger.Info("Central Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		logger.Info("Redis client was not initialized, skipping close.")
		return
	}
	logger.Info("Closing central Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close central Redis client connection gracefully", "error", err)
	} else {
		logger.Info("Central Redis client connection closed.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, refreshJob *batch.RefreshDashboardJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.DashboardRefreshSchedule
	if scheduleSpec == "" {
		scheduleSpec = "*/5 * * * *"
		logger.Warn("Dashboard refresh schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.DashboardRefreshTimeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "DashboardRefresh")
		jobLogger.Info("Cron triggered: Running dashboard refresh job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := refreshJob.Run(ctx); runErr != nil {
			jobLogger.Error("Dashboard refresh job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule dashboard refresh job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled dashboard refresh job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func connectRabbitMQ(uri string, attempts int, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 1; i <= attempts; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err),
		)
		if i < attempts {
			time.Sleep(time.Duration(i*2) * time.Second)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
}

// setupRabbitMQ returns nil when publishing is disabled or the broker cannot
// be reached. Record changes are still served; their events are dropped.
func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) *amqp.Connection {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ publishing is disabled via configuration.")
		return nil
	}
	uri, err := cfg.RabbitMQ.URI()
	if err != nil {
		logger.Error("Invalid RabbitMQ configuration", slog.Any("error", err))
		return nil
	}
	conn, err := connectRabbitMQ(uri, 5, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		return nil
	}
	return conn
}
