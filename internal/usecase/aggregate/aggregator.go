package aggregate

import (
	"context"
	"log/slog"

	"agromart/config"
	"agromart/internal/domain/entity"
	"agromart/internal/domain/repository"

	"github.com/google/uuid"
)

// Aggregator reacts to order writes the way row triggers would:
// inserts refresh metrics and the daily rollup, updates and deletes refresh metrics only.
type Aggregator struct {
	metrics *Metrics
	daily   *DailyRollup
	logger  *slog.Logger
}

// New builds an Aggregator from its parts.
func New(metrics *Metrics, daily *DailyRollup, logger *slog.Logger) *Aggregator {
	return &Aggregator{metrics: metrics, daily: daily, logger: logger}
}

// NewAggregator is the fx constructor.
func NewAggregator(cfg *config.Config, logger *slog.Logger) (*Aggregator, error) {
	daily, err := NewDailyRollupFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return New(NewMetrics(), daily, logger), nil
}

// OrderInserted runs after a new order row is written.
func (a *Aggregator) OrderInserted(ctx context.Context, repos repository.RepositoryFactory, order *entity.Order) error {
	if _, err := a.metrics.Refresh(ctx, repos, order.SellerID); err != nil {
		return err
	}
	if err := a.daily.Record(ctx, repos, order); err != nil {
		return err
	}

	a.logger.Debug("Aggregated new order",
		slog.String("orderID", order.ID.String()),
		slog.String("sellerID", order.SellerID.String()),
	)

	return nil
}

// OrderUpdated runs after an order's status or amount changed.
func (a *Aggregator) OrderUpdated(ctx context.Context, repos repository.RepositoryFactory, order *entity.Order) error {
	_, err := a.metrics.Refresh(ctx, repos, order.SellerID)

	return err
}

// OrderDeleted runs after an order was removed.
func (a *Aggregator) OrderDeleted(ctx context.Context, repos repository.RepositoryFactory, sellerID uuid.UUID) error {
	_, err := a.metrics.Refresh(ctx, repos, sellerID)

	return err
}

// Refresh re-derives one seller's metrics outside of any order write.
func (a *Aggregator) Refresh(ctx context.Context, repos repository.RepositoryFactory, sellerID uuid.UUID) (*entity.SellerMetrics, error) {
	return a.metrics.Refresh(ctx, repos, sellerID)
}
