package impl

import (
	"testing"
	"time"

	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/infra/persistence/sqlitetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsService_ZeroForNewSeller(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, ctx := f.seller(t)

	metrics, err := f.metrics.GetSellerMetrics(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, sellerID, metrics.ProfileID)
	assert.Zero(t, metrics.TotalOrders)
	assert.True(t, metrics.TotalSales.IsZero())
}

func TestMetricsService_ReconcileAllRepairsDrift(t *testing.T) {
	f := newServiceFixtures(t)
	aliceID, aliceCtx := f.seller(t)
	bobID, _ := f.seller(t)
	now := time.Now().UTC()

	f.placeOrder(t, aliceID, "10", now)
	f.placeOrder(t, aliceID, "15", now)
	f.placeOrder(t, bobID, "20", now)

	sqlitetest.Exec(t, f.db, "UPDATE seller_metrics SET total_orders = 99, pending_orders = 0 WHERE profile_id = ?", aliceID)

	// Sellers cannot trigger reconciliation.
	_, err := f.metrics.ReconcileAll(aliceCtx)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	_, err = f.metrics.ReconcileSeller(aliceCtx, aliceID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	result, err := f.metrics.ReconcileAll(serviceCtx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sellers)
	assert.Empty(t, result.Failed)

	metrics, err := f.metrics.GetSellerMetrics(aliceCtx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), metrics.TotalOrders)
	assert.Equal(t, int64(2), metrics.PendingOrders)

	again, err := f.metrics.ReconcileSeller(serviceCtx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, metrics.TotalOrders, again.TotalOrders)
	assert.Equal(t, metrics.PendingOrders, again.PendingOrders)
	assert.True(t, metrics.TotalSales.Equal(again.TotalSales))
}

func TestMetricsService_ReconcileSellerWithoutOrders(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, ctx := f.seller(t)

	metrics, err := f.metrics.ReconcileSeller(serviceCtx, sellerID)
	require.NoError(t, err)
	assert.Zero(t, metrics.TotalOrders)

	stored, err := f.metrics.GetSellerMetrics(ctx, sellerID)
	require.NoError(t, err)
	assert.Zero(t, stored.TotalOrders)

	_, err = f.metrics.ReconcileSeller(serviceCtx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrAggregationFailed)
}

func TestMetricsService_DailySalesRange(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, ctx := f.seller(t)
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	f.placeOrder(t, sellerID, "1", day)
	f.placeOrder(t, sellerID, "2", day.AddDate(0, 0, 1))
	f.placeOrder(t, sellerID, "4", day.AddDate(0, 0, 5))

	rows, err := f.metrics.ListDailySales(ctx, sellerID, day, day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = f.metrics.ListDailySales(ctx, sellerID, day, day.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.metrics.ListDailySales(ctx, sellerID, day, day.AddDate(2, 0, 0))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestMetricsService_SellerCannotReadAnotherSeller(t *testing.T) {
	f := newServiceFixtures(t)
	aliceID, aliceCtx := f.seller(t)
	_, bobCtx := f.seller(t)
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	f.placeOrder(t, aliceID, "30", day)
	f.placeOrder(t, aliceID, "12", day)

	own, err := f.metrics.GetSellerMetrics(aliceCtx, aliceID)
	require.NoError(t, err)
	require.Equal(t, int64(2), own.TotalOrders)

	seen, err := f.metrics.GetSellerMetrics(bobCtx, aliceID)
	require.NoError(t, err)
	assert.Zero(t, seen.TotalOrders)
	assert.True(t, seen.TotalSales.IsZero())

	ownRows, err := f.metrics.ListDailySales(aliceCtx, aliceID, day, day)
	require.NoError(t, err)
	require.Len(t, ownRows, 1)

	rows, err := f.metrics.ListDailySales(bobCtx, aliceID, day, day)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
