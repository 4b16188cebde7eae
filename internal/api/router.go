package api

import (
	"log/slog"
	"net/http"
	"scaffold-rental/internal/api/handler"
	"scaffold-rental/internal/api/handler/dto"
	mw "scaffold-rental/internal/api/middleware"
	"scaffold-rental/internal/config"
	"scaffold-rental/internal/domain/customer"
	"scaffold-rental/internal/domain/identity"
	"scaffold-rental/internal/domain/inventory"
	"scaffold-rental/internal/domain/record"
	"scaffold-rental/internal/domain/rental"
	"scaffold-rental/internal/domain/vendors"
	"time"

	_ "scaffold-rental/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/redis/go-redis/v9"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services are the domain collaborators the HTTP API exposes.
type Services struct {
	Customers record.Service[customer.Customer]
	Vendors   record.Service[vendors.Vendor]
	Inventory record.Service[inventory.Item]
	Orders    record.Service[rental.Order]
	Identity  identity.Service
	Dashboard handler.SummaryProvider
}

// SetupRouter builds the record service router. redisClient may be nil, in
// which case rate limiting falls back to in-process buckets.
func SetupRouter(svcs Services, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, redisClient, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)
	setupAuthRoutes(router, cfg, svcs.Identity, logger)
	setupAPIRoutes(router, cfg, svcs, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) {
	timeout := cfg.Server.WriteTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(timeout))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, redisClient, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, ids identity.Service, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, ids, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupAPIRoutes(router *chi.Mux, cfg *config.Config, svcs Services, logger *slog.Logger) {
	identityHandler := handler.NewIdentityHandler(svcs.Identity, logger)
	dashboardHandler := handler.NewDashboardHandler(svcs.Dashboard, logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))

		r.Get("/dashboard", dashboardHandler.GetDashboard)

		r.Route("/me", func(r chi.Router) {
			r.Get("/", identityHandler.GetCallerProfile)
			r.Put("/", identityHandler.SaveCallerProfile)
			r.Get("/role", identityHandler.GetCallerRole)
		})
		r.Route("/users/{principal}", func(r chi.Router) {
			r.Get("/", identityHandler.GetUserProfile)
			r.Put("/role", identityHandler.AssignRole)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireWriter(cfg.Server.Auth, svcs.Identity, logger))
			r.Route("/"+customer.Collection, handler.NewRecordHandler[customer.Customer, dto.CustomerRequest](svcs.Customers, logger).Routes)
			r.Route("/"+vendors.Collection, handler.NewRecordHandler[vendors.Vendor, dto.VendorRequest](svcs.Vendors, logger).Routes)
			r.Route("/"+inventory.Collection, handler.NewRecordHandler[inventory.Item, dto.InventoryItemRequest](svcs.Inventory, logger).Routes)
			r.Route("/"+rental.Collection, handler.NewRecordHandler[rental.Order, dto.RentalOrderRequest](svcs.Orders, logger).Routes)
		})
	})
}
