package aggregate

import (
	"context"
	"time"

	"agromart/config"
	"agromart/internal/domain/entity"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/repository"
)

// DailyRollup adds each new order to its seller's sales day.
type DailyRollup struct {
	loc *time.Location
	now func() time.Time
}

// NewDailyRollup buckets days in loc. A nil loc means UTC.
func NewDailyRollup(loc *time.Location) *DailyRollup {
	if loc == nil {
		loc = time.UTC
	}

	return &DailyRollup{loc: loc, now: time.Now}
}

// NewDailyRollupFromConfig reads the rollup timezone from cfg.
func NewDailyRollupFromConfig(cfg *config.Config) (*DailyRollup, error) {
	if cfg.Rollup == nil {
		return NewDailyRollup(time.UTC), nil
	}
	loc, err := cfg.Rollup.Location()
	if err != nil {
		return nil, err
	}

	return NewDailyRollup(loc), nil
}

// Record adds order to the (seller, day of order.CreatedAt) row.
// It must only be called once per inserted order; status changes never touch the rollup.
func (d *DailyRollup) Record(ctx context.Context, repos repository.RepositoryFactory, order *entity.Order) error {
	day := SalesDay(order.CreatedAt, d.loc)

	err := repos.DailySalesRepo().Increment(policy.AsService(ctx), order.SellerID, day, order.TotalAmount, d.now().UTC())
	if err != nil {
		return aggregationFailed(err, "failed to record daily sales")
	}

	return nil
}

// SalesDay returns the calendar day of t in loc, as midnight UTC of that date.
func SalesDay(t time.Time, loc *time.Location) time.Time {
	y, m, day := t.In(loc).Date()

	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
