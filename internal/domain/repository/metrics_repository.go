package repository

import (
	"context"
	"time"

	"agromart/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SellerMetricsRepository persists the per-seller lifetime aggregate.
type SellerMetricsRepository interface {
	// EnsureExists creates a zero row for the seller unless one is present.
	EnsureExists(ctx context.Context, sellerID uuid.UUID, now time.Time) error
	// LockForUpdate holds the seller's row until the transaction ends, so
	// concurrent recounts for one seller run one after another.
	LockForUpdate(ctx context.Context, sellerID uuid.UUID) error
	// Overwrite replaces every count and the sales sum of the seller's row.
	Overwrite(ctx context.Context, metrics *entity.SellerMetrics) error
	// FindByProfile returns nil without error when the seller has no row yet.
	FindByProfile(ctx context.Context, profileID uuid.UUID) (*entity.SellerMetrics, error)
}

// DailySalesRepository persists the per-seller per-day rollup.
type DailySalesRepository interface {
	// Increment adds amount and one order to the (profile, day) row, creating it when absent.
	// The add happens in a single statement so concurrent orders never lose an update.
	Increment(ctx context.Context, profileID uuid.UUID, day time.Time, amount decimal.Decimal, now time.Time) error
	// ListByProfile returns rows with from <= sales_date <= to, oldest first.
	ListByProfile(ctx context.Context, profileID uuid.UUID, from, to time.Time) ([]*entity.DailySales, error)
}
