package batch

import (
	"context"
	"fmt"
	"log/slog"
	"scaffold-rental/internal/domain/dashboard"
	"scaffold-rental/internal/infrastructure/monitoring"
	"time"
)

type SummaryProvider interface {
	Summary(ctx context.Context) (dashboard.Summary, error)
}

// RefreshDashboardJob recomputes the business summary and publishes it as
// Prometheus gauges.
type RefreshDashboardJob struct {
	provider SummaryProvider
	publish  func(customers, inventoryUnits, activeOrders int64, inventoryValue float64)
	logger   *slog.Logger
}

func NewRefreshDashboardJob(provider SummaryProvider, logger *slog.Logger) *RefreshDashboardJob {
	if provider == nil || logger == nil {
		panic("RefreshDashboardJob dependencies cannot be nil")
	}
	return &RefreshDashboardJob{
		provider: provider,
		publish:  monitoring.SetDashboard,
		logger:   logger.With("job", "RefreshDashboard"),
	}
}

func (j *RefreshDashboardJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting dashboard refresh job.")

	s, err := j.provider.Summary(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to compute dashboard summary, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to compute summary: %w", err)
	}

	j.publish(s.TotalCustomers, s.InventoryUnits, s.ActiveOrders, s.InventoryValue.InexactFloat64())

	j.logger.InfoContext(ctx, "Dashboard refresh job finished successfully.",
		slog.Duration("duration", time.Since(startTime)),
		slog.Int64("customers", s.TotalCustomers),
		slog.Int64("inventory_units", s.InventoryUnits),
		slog.Int64("active_orders", s.ActiveOrders),
		slog.String("inventory_value", s.InventoryValue.String()),
	)
	return nil
}
