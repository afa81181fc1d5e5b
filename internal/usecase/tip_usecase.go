package usecase

import (
	"context"

	"agromart/internal/domain/entity"
)

// TipUsecase serves the seller tip catalog.
type TipUsecase interface {
	ListTips(ctx context.Context, category string) ([]*entity.SellerTip, error)
	// ImportTips loads the catalog from the configured source and upserts it. Service role only.
	ImportTips(ctx context.Context) (int, error)
}
