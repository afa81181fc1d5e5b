package service

import (
	"context"

	"agromart/internal/domain/entity"
)

// TipSource loads the seller tip catalog from external storage.
type TipSource interface {
	Load(ctx context.Context) ([]*entity.SellerTip, error)
}
