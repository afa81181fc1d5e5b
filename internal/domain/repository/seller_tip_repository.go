package repository

import (
	"context"

	"agromart/internal/domain/entity"
)

// SellerTipRepository defines access to the tip catalog.
type SellerTipRepository interface {
	// List returns tips ordered by title, optionally for one category.
	List(ctx context.Context, category string) ([]*entity.SellerTip, error)
	// Upsert inserts new tips and overwrites existing ones with the same ID.
	Upsert(ctx context.Context, tips []*entity.SellerTip) error
}
