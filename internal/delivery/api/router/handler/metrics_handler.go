package handler

import (
	"log/slog"
	"net/http"
	"time"

	"agromart/internal/delivery/api/middleware"
	"agromart/internal/delivery/api/response"
	"agromart/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// defaultDailyWindow is how many days back /metrics/daily reaches without a from date.
const defaultDailyWindow = 30

// MetricsHandlerParams holds dependencies for MetricsHandler, injected by Fx.
type MetricsHandlerParams struct {
	fx.In

	MetricsUC usecase.MetricsUsecase
	Logger    *slog.Logger
}

// MetricsHandler serves the caller's sales figures.
type MetricsHandler struct {
	metricsUC usecase.MetricsUsecase
	logger    *slog.Logger
	now       func() time.Time
}

// NewMetricsHandler is the constructor for MetricsHandler
func NewMetricsHandler(params MetricsHandlerParams) *MetricsHandler {
	return &MetricsHandler{
		metricsUC: params.MetricsUC,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// GetMetrics returns the caller's lifetime order counters
func (h *MetricsHandler) GetMetrics(c echo.Context) error {
	sellerID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	metrics, err := h.metricsUC.GetSellerMetrics(c.Request().Context(), sellerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, metrics)
}

// ListDailySales returns the caller's per-day rollup.
// Query: from, to (YYYY-MM-DD, inclusive). Defaults to the last 30 days.
func (h *MetricsHandler) ListDailySales(c echo.Context) error {
	sellerID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	to, err := queryDate(c, "to")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}
	from, err := queryDate(c, "from")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}

	end := h.now().UTC()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -(defaultDailyWindow - 1))
	if from != nil {
		start = *from
	}

	rows, err := h.metricsUC.ListDailySales(c.Request().Context(), sellerID, start, end)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, rows)
}
