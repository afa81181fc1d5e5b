package handler

import (
	"log/slog"
	"net/http"

	"agromart/internal/delivery/api/middleware"
	"agromart/internal/delivery/api/response"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AddressHandlerParams holds dependencies for AddressHandler, injected by Fx.
type AddressHandlerParams struct {
	fx.In

	AddressUC usecase.AddressUsecase
	Logger    *slog.Logger
}

// AddressHandler serves the caller's shipping addresses.
type AddressHandler struct {
	addressUC usecase.AddressUsecase
	logger    *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler
func NewAddressHandler(params AddressHandlerParams) *AddressHandler {
	return &AddressHandler{
		addressUC: params.AddressUC,
		logger:    params.Logger,
	}
}

// CreateAddress adds an address to the caller's profile
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	var req usecase.AddressInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的地址資料")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	address, err := h.addressUC.CreateAddress(c.Request().Context(), profileID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, address)
}

// ListAddresses returns the caller's addresses
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	addresses, err := h.addressUC.ListAddresses(c.Request().Context(), profileID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, addresses)
}

// UpdateAddress replaces an address of the caller
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的地址編號")
	}

	var req usecase.AddressInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的地址資料")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	address, err := h.addressUC.UpdateAddress(c.Request().Context(), profileID, addressID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, address)
}

// DeleteAddress removes an address of the caller
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的地址編號")
	}

	if err := h.addressUC.DeleteAddress(c.Request().Context(), profileID, addressID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
