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

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the caller's product catalog.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// CreateProduct lists a new product for the caller
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	sellerID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	var req usecase.CreateProductInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的商品資料")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), sellerID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, product)
}

// ListProducts returns the caller's products.
// Query: category, active_only, limit, offset.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	sellerID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	input := usecase.ListProductsInput{}
	if raw := c.QueryParam("category"); raw != "" {
		category := entity.ProductCategory(raw)
		if !category.Valid() {
			return response.BadRequest(c, "INVALID_QUERY", "無效的商品分類")
		}
		input.Category = &category
	}

	activeOnly, err := queryBool(c, "active_only")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}
	if activeOnly != nil {
		input.ActiveOnly = *activeOnly
	}

	if input.Limit, err = queryInt(c, "limit", 0); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}
	if input.Offset, err = queryInt(c, "offset", 0); err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}

	products, err := h.productUC.ListProducts(c.Request().Context(), sellerID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// GetProduct returns one product
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的商品編號")
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// UpdateProduct changes the given fields of a product
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的商品編號")
	}

	var req usecase.UpdateProductInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的商品資料")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), productID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// DeleteProduct removes a product
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的商品編號")
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetProductQR renders the product share QR code as a PNG
func (h *ProductHandler) GetProductQR(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的商品編號")
	}

	png, err := h.productUC.GenerateProductQR(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
