package repository

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is missing or hidden from the caller.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows a product listing. Nil fields are ignored.
type ProductFilter struct {
	SellerID   uuid.UUID
	Category   *entity.ProductCategory
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository defines product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
