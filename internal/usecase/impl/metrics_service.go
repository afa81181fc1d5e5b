package impl

import (
	"context"
	"log/slog"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/repository"
	"agromart/internal/usecase"
	"agromart/internal/usecase/aggregate"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// maxDailySalesRange bounds a single daily sales query.
const maxDailySalesRange = 366 * 24 * time.Hour

// metricsService implements the MetricsUsecase interface.
type metricsService struct {
	txManager  repository.TransactionManager
	aggregator *aggregate.Aggregator
	logger     *slog.Logger
}

// NewMetricsService is the constructor for metricsService.
func NewMetricsService(
	txManager repository.TransactionManager,
	aggregator *aggregate.Aggregator,
	logger *slog.Logger,
) usecase.MetricsUsecase {
	return &metricsService{
		txManager:  txManager,
		aggregator: aggregator,
		logger:     logger,
	}
}

// GetSellerMetrics reads the stored aggregate. A seller without orders gets zeros.
func (srv *metricsService) GetSellerMetrics(ctx context.Context, sellerID uuid.UUID) (*entity.SellerMetrics, error) {
	var metrics *entity.SellerMetrics

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.SellerMetricsRepo().FindByProfile(ctx, sellerID)
		if err != nil {
			return err
		}
		metrics = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get seller metrics")
	}

	if metrics == nil {
		metrics = &entity.SellerMetrics{
			ProfileID:     sellerID,
			TotalSales:    decimal.Zero,
			AverageRating: decimal.Zero,
		}
	}

	return metrics, nil
}

// ListDailySales returns the rollup rows between two calendar days.
func (srv *metricsService) ListDailySales(ctx context.Context, sellerID uuid.UUID, from, to time.Time) ([]*entity.DailySales, error) {
	from = aggregate.SalesDay(from, time.UTC)
	to = aggregate.SalesDay(to, time.UTC)
	if to.Before(from) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "date range ends before it starts")
	}
	if to.Sub(from) > maxDailySalesRange {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "date range is longer than a year")
	}

	var rows []*entity.DailySales

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.DailySalesRepo().ListByProfile(ctx, sellerID, from, to)
		if err != nil {
			return err
		}
		rows = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list daily sales")
	}

	return rows, nil
}

// ReconcileSeller re-derives one seller's metrics from their orders.
func (srv *metricsService) ReconcileSeller(ctx context.Context, sellerID uuid.UUID) (*entity.SellerMetrics, error) {
	if !policy.IsService(ctx) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "metrics can only be reconciled by the platform")
	}

	var metrics *entity.SellerMetrics

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshed, err := srv.aggregator.Refresh(ctx, repoFactory, sellerID)
		if err != nil {
			return err
		}
		metrics = refreshed

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to reconcile seller metrics")
	}

	return metrics, nil
}

// ReconcileAll re-derives every seller's metrics, one transaction per seller,
// so one broken seller does not hold back the rest.
func (srv *metricsService) ReconcileAll(ctx context.Context) (*usecase.ReconcileResult, error) {
	if !policy.IsService(ctx) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "metrics can only be reconciled by the platform")
	}

	var sellerIDs []uuid.UUID

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListSellerIDs(ctx)
		if err != nil {
			return err
		}
		sellerIDs = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list sellers")
	}

	result := &usecase.ReconcileResult{Sellers: len(sellerIDs)}
	for _, sellerID := range sellerIDs {
		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(err, "reconciliation interrupted")
		}
		if _, err := srv.ReconcileSeller(ctx, sellerID); err != nil {
			srv.logger.Error("Failed to reconcile seller metrics", "sellerID", sellerID, "error", err)
			result.Failed = append(result.Failed, sellerID)
		}
	}

	srv.logger.Info("Metrics reconciliation finished",
		"sellers", result.Sellers,
		"failed", len(result.Failed),
	)

	return result, nil
}
