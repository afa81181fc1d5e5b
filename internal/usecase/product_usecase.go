package usecase

import (
	"context"

	"agromart/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductInput defines the data required to list a new product.
type CreateProductInput struct {
	Name          string                 `json:"name" validate:"required,max=200"`
	Description   string                 `json:"description,omitempty"`
	Price         decimal.Decimal        `json:"price"`
	StockQuantity int                    `json:"stock_quantity" validate:"gte=0"`
	Category      entity.ProductCategory `json:"category" validate:"required,product_category"`
	IsActive      *bool                  `json:"is_active,omitempty"`
	IsFeatured    bool                   `json:"is_featured"`
	ImageURL      string                 `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateProductInput holds the product fields to change. Nil fields are left untouched.
type UpdateProductInput struct {
	Name          *string                 `json:"name,omitempty" validate:"omitempty,max=200"`
	Description   *string                 `json:"description,omitempty"`
	Price         *decimal.Decimal        `json:"price,omitempty"`
	StockQuantity *int                    `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Category      *entity.ProductCategory `json:"category,omitempty" validate:"omitempty,product_category"`
	IsActive      *bool                   `json:"is_active,omitempty"`
	IsFeatured    *bool                   `json:"is_featured,omitempty"`
	ImageURL      *string                 `json:"image_url,omitempty" validate:"omitempty,url"`
}

// ListProductsInput narrows a seller's product listing.
type ListProductsInput struct {
	Category   *entity.ProductCategory
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductUsecase manages a seller's catalog.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, sellerID uuid.UUID, input *CreateProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, sellerID uuid.UUID, input ListProductsInput) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	// GenerateProductQR renders a PNG QR code pointing at the product page.
	GenerateProductQR(ctx context.Context, productID uuid.UUID) ([]byte, error)
}
