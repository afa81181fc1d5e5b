package handler

import (
	"log/slog"
	"net/http"

	"agromart/internal/delivery/api/response"
	"agromart/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TipHandlerParams holds dependencies for TipHandler, injected by Fx.
type TipHandlerParams struct {
	fx.In

	TipUC  usecase.TipUsecase
	Logger *slog.Logger
}

// TipHandler serves the seller tip catalog.
type TipHandler struct {
	tipUC  usecase.TipUsecase
	logger *slog.Logger
}

// NewTipHandler is the constructor for TipHandler
func NewTipHandler(params TipHandlerParams) *TipHandler {
	return &TipHandler{
		tipUC:  params.TipUC,
		logger: params.Logger,
	}
}

// ListTips returns the catalog, optionally narrowed by ?category=
func (h *TipHandler) ListTips(c echo.Context) error {
	tips, err := h.tipUC.ListTips(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tips)
}
