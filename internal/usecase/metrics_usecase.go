package usecase

import (
	"context"
	"time"

	"agromart/internal/domain/entity"

	"github.com/google/uuid"
)

// ReconcileResult summarizes a metrics reconciliation run.
type ReconcileResult struct {
	Sellers int
	Failed  []uuid.UUID
}

// MetricsUsecase exposes the derived sales figures.
type MetricsUsecase interface {
	// GetSellerMetrics returns zero values when the seller has no orders yet.
	GetSellerMetrics(ctx context.Context, sellerID uuid.UUID) (*entity.SellerMetrics, error)
	// ListDailySales returns the rollup rows of days from..to inclusive.
	ListDailySales(ctx context.Context, sellerID uuid.UUID, from, to time.Time) ([]*entity.DailySales, error)
	// ReconcileSeller re-derives one seller's metrics from their orders. Service role only.
	ReconcileSeller(ctx context.Context, sellerID uuid.UUID) (*entity.SellerMetrics, error)
	// ReconcileAll re-derives the metrics of every seller. Service role only.
	ReconcileAll(ctx context.Context) (*ReconcileResult, error)
}
