// Package aggregate keeps the derived sales tables in step with orders.
//
// The aggregators run inside the transaction of the order write that
// triggered them and act with the service role, so a seller's own order
// update can refresh figures the seller is only allowed to read.
package aggregate

import (
	"context"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/repository"
	"agromart/internal/errors"

	"github.com/google/uuid"
)

// Metrics recomputes a seller's lifetime figures from the order table.
type Metrics struct {
	now func() time.Time
}

// NewMetrics returns a Metrics aggregator stamping rows with the wall clock.
func NewMetrics() *Metrics {
	return &Metrics{now: time.Now}
}

// Refresh ensures the seller has a metrics row, locks it, and overwrites it
// with a full recount of their orders. Running it twice without an intervening
// order write yields the same figures.
func (m *Metrics) Refresh(ctx context.Context, repos repository.RepositoryFactory, sellerID uuid.UUID) (*entity.SellerMetrics, error) {
	ctx = policy.AsService(ctx)
	now := m.now().UTC()

	metricsRepo := repos.SellerMetricsRepo()
	if err := metricsRepo.EnsureExists(ctx, sellerID, now); err != nil {
		return nil, aggregationFailed(err, "failed to ensure seller metrics row")
	}
	// The recount below must see every order committed before the lock was granted.
	if err := metricsRepo.LockForUpdate(ctx, sellerID); err != nil {
		return nil, aggregationFailed(err, "failed to lock seller metrics row")
	}

	tally, err := repos.OrderRepo().TallyBySeller(ctx, sellerID)
	if err != nil {
		return nil, aggregationFailed(err, "failed to tally seller orders")
	}

	metrics := &entity.SellerMetrics{
		ProfileID:       sellerID,
		TotalOrders:     tally.Total,
		CompletedOrders: tally.Completed,
		PendingOrders:   tally.Pending,
		CancelledOrders: tally.Cancelled,
		TotalSales:      tally.Sales,
		UpdatedAt:       now,
	}
	if err := metricsRepo.Overwrite(ctx, metrics); err != nil {
		return nil, aggregationFailed(err, "failed to overwrite seller metrics")
	}

	return metrics, nil
}

func aggregationFailed(err error, message string) error {
	return errors.Wrap(errors.Join(domainerrors.ErrAggregationFailed, err), message)
}
