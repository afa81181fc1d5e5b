package handler

import (
	"log/slog"
	"net/http"

	"agromart/internal/delivery/api/middleware"
	"agromart/internal/delivery/api/response"
	"agromart/internal/domain/entity"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves the orders received by the caller.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// UpdateOrderStatusRequest represents the request body for moving an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status entity.OrderStatus `json:"status" validate:"required,order_status"`
}

// ListOrders returns the caller's orders, newest first.
// Query: status, limit, offset.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	sellerID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	input := usecase.ListOrdersInput{}
	if raw := c.QueryParam("status"); raw != "" {
		status := entity.OrderStatus(raw)
		if !status.Valid() {
			return response.BadRequest(c, "INVALID_QUERY", "無效的訂單狀態")
		}
		input.Status = &status
	}

	var err error
	if input.Limit, err = queryInt(c, "limit", 0); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}
	if input.Offset, err = queryInt(c, "offset", 0); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), sellerID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

// GetOrder returns one order
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的訂單編號")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// ListOrderItems returns the lines of an order
func (h *OrderHandler) ListOrderItems(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的訂單編號")
	}

	items, err := h.orderUC.ListOrderItems(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items)
}

// UpdateOrderStatus moves an order to a new status
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的訂單編號")
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的訂單狀態資料")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}
