package handler

import (
	"log/slog"
	"net/http"

	"agromart/internal/delivery/api/response"
	deliverycontext "agromart/internal/delivery/context"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// InternalHandlerParams holds dependencies for InternalHandler, injected by Fx.
type InternalHandlerParams struct {
	fx.In

	ProvisioningUC usecase.ProvisioningUsecase
	OrderUC        usecase.OrderUsecase
	ProfileUC      usecase.ProfileUsecase
	MetricsUC      usecase.MetricsUsecase
	TipUC          usecase.TipUsecase
	Logger         *slog.Logger
}

// InternalHandler serves the platform-only endpoints. Requests arrive with
// the service role already attached.
type InternalHandler struct {
	provisioningUC usecase.ProvisioningUsecase
	orderUC        usecase.OrderUsecase
	profileUC      usecase.ProfileUsecase
	metricsUC      usecase.MetricsUsecase
	tipUC          usecase.TipUsecase
	logger         *slog.Logger
}

// NewInternalHandler is the constructor for InternalHandler
func NewInternalHandler(params InternalHandlerParams) *InternalHandler {
	return &InternalHandler{
		provisioningUC: params.ProvisioningUC,
		orderUC:        params.OrderUC,
		profileUC:      params.ProfileUC,
		metricsUC:      params.MetricsUC,
		tipUC:          params.TipUC,
		logger:         params.Logger,
	}
}

// ReconcileResponse reports a metrics reconciliation run.
type ReconcileResponse struct {
	Sellers int         `json:"sellers"`
	Failed  []uuid.UUID `json:"failed"`
}

// ProvisionIdentity creates the profile of a newly issued identity
func (h *InternalHandler) ProvisionIdentity(c echo.Context) error {
	var req usecase.IdentityCreatedInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的身分資料")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	profile, err := h.provisioningUC.ProvisionProfile(c.Request().Context(), req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, profile)
}

// PlaceOrder records an order taken for a seller
func (h *InternalHandler) PlaceOrder(c echo.Context) error {
	var req usecase.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的訂單資料")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	order, err := h.orderUC.PlaceOrder(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, order)
}

// DeleteOrder removes an order and re-derives the seller's metrics
func (h *InternalHandler) DeleteOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的訂單編號")
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), orderID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteProfile removes a profile and everything it owns
func (h *InternalHandler) DeleteProfile(c echo.Context) error {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的帳戶編號")
	}

	if err := h.profileUC.DeleteProfile(c.Request().Context(), profileID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReconcileMetrics re-derives seller metrics from their orders.
// With ?seller_id= only that seller is reconciled.
func (h *InternalHandler) ReconcileMetrics(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("seller_id"); raw != "" {
		sellerID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "無效的賣家編號")
		}

		metrics, err := h.metricsUC.ReconcileSeller(ctx, sellerID)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, metrics)
	}

	result, err := h.metricsUC.ReconcileAll(ctx)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if len(result.Failed) > 0 {
		deliverycontext.LoggerOr(ctx, h.logger).Warn("Metrics reconciliation incomplete",
			slog.Int("sellers", result.Sellers),
			slog.Int("failed", len(result.Failed)),
		)
	}

	failed := result.Failed
	if failed == nil {
		failed = []uuid.UUID{}
	}

	return response.Success(c, http.StatusOK, ReconcileResponse{Sellers: result.Sellers, Failed: failed})
}

// ImportTips reloads the seller tip catalog from its configured source
func (h *InternalHandler) ImportTips(c echo.Context) error {
	imported, err := h.tipUC.ImportTips(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"imported": imported})
}
