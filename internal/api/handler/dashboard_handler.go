package handler

import (
	"context"
	"log/slog"
	"net/http"
	"scaffold-rental/internal/domain/dashboard"
)

type SummaryProvider interface {
	Summary(ctx context.Context) (dashboard.Summary, error)
}

type DashboardHandler struct {
	provider SummaryProvider
	logger   *slog.Logger
}

func NewDashboardHandler(p SummaryProvider, l *slog.Logger) *DashboardHandler {
	return &DashboardHandler{provider: p, logger: l.With("component", "DashboardHandler")}
}

type dashboardResponse struct {
	Summary dashboard.Summary `json:"summary"`
	KPIs    []dashboard.KPI   `json:"kpis"`
}

// GetDashboard handles GET /api/v1/dashboard
// @Summary Business summary
// @Description Totals over customers, inventory and orders, with formatted KPI cards.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dashboardResponse
// @Router /api/v1/dashboard [get]
// @Security BearerAuth
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	s, err := h.provider.Summary(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to compute dashboard", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboardResponse{Summary: s, KPIs: s.KPIs()})
}
