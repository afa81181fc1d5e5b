package postgres

import (
	"context"
	"time"

	"agromart/internal/domain/entity"
	"agromart/internal/domain/repository"
	"agromart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sellerMetricsRepository implements the repository.SellerMetricsRepository interface.
type sellerMetricsRepository struct {
	db *gorm.DB
}

// NewSellerMetricsRepository is the constructor for sellerMetricsRepository.
func NewSellerMetricsRepository(db *gorm.DB) repository.SellerMetricsRepository {
	return &sellerMetricsRepository{db: db}
}

// EnsureExists inserts a zero row for the seller, leaving an existing row untouched.
func (repo *sellerMetricsRepository) EnsureExists(ctx context.Context, sellerID uuid.UUID, now time.Time) error {
	metricsM := &model.SellerMetricsModel{
		ProfileID:     sellerID,
		TotalSales:    decimal.Zero,
		AverageRating: decimal.Zero,
		UpdatedAt:     now,
	}
	err := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}},
			DoNothing: true,
		}).
		Create(metricsM).Error
	if err != nil {
		return translateWriteError(err, "failed to ensure seller metrics row")
	}

	return nil
}

// LockForUpdate takes a row lock on the seller's metrics row. SQLite has no
// row locks and runs the plain select.
func (repo *sellerMetricsRepository) LockForUpdate(ctx context.Context, sellerID uuid.UUID) error {
	var metricsM model.SellerMetricsModel
	err := lockMetricsRow(repo.db.WithContext(ctx), sellerID).Take(&metricsM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Errorf("seller metrics row for %s is missing", sellerID)
		}

		return errors.Wrap(err, "failed to lock seller metrics row")
	}

	return nil
}

func lockMetricsRow(db *gorm.DB, sellerID uuid.UUID) *gorm.DB {
	return db.Model(&model.SellerMetricsModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("profile_id").
		Where("profile_id = ?", sellerID)
}

// Overwrite replaces the counts and sales sum. The rating is left alone.
func (repo *sellerMetricsRepository) Overwrite(ctx context.Context, metrics *entity.SellerMetrics) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SellerMetricsModel{}).
		Where("profile_id = ?", metrics.ProfileID).
		Updates(map[string]any{
			"total_orders":     metrics.TotalOrders,
			"completed_orders": metrics.CompletedOrders,
			"pending_orders":   metrics.PendingOrders,
			"cancelled_orders": metrics.CancelledOrders,
			"total_sales":      metrics.TotalSales,
			"updated_at":       metrics.UpdatedAt,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to overwrite seller metrics")
	}
	if result.RowsAffected == 0 {
		return errors.Errorf("seller metrics row for %s is missing", metrics.ProfileID)
	}

	return nil
}

// FindByProfile returns nil, nil when the seller has no row.
func (repo *sellerMetricsRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) (*entity.SellerMetrics, error) {
	var metricsM model.SellerMetricsModel
	err := repo.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&metricsM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find seller metrics")
	}

	return &entity.SellerMetrics{
		ProfileID:       metricsM.ProfileID,
		TotalOrders:     metricsM.TotalOrders,
		CompletedOrders: metricsM.CompletedOrders,
		PendingOrders:   metricsM.PendingOrders,
		CancelledOrders: metricsM.CancelledOrders,
		TotalSales:      metricsM.TotalSales,
		AverageRating:   metricsM.AverageRating,
		UpdatedAt:       metricsM.UpdatedAt,
	}, nil
}

// dailySalesRepository implements the repository.DailySalesRepository interface.
type dailySalesRepository struct {
	db *gorm.DB
}

// NewDailySalesRepository is the constructor for dailySalesRepository.
func NewDailySalesRepository(db *gorm.DB) repository.DailySalesRepository {
	return &dailySalesRepository{db: db}
}

// Increment upserts the (profile, day) row, adding to it on conflict.
func (repo *dailySalesRepository) Increment(ctx context.Context, profileID uuid.UUID, day time.Time, amount decimal.Decimal, now time.Time) error {
	salesM := &model.DailySalesModel{
		ID:          uuid.New(),
		ProfileID:   profileID,
		SalesDate:   day,
		TotalSales:  amount,
		TotalOrders: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "profile_id"}, {Name: "sales_date"}},
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "total_sales"}, Value: gorm.Expr("daily_sales.total_sales + excluded.total_sales")},
				{Column: clause.Column{Name: "total_orders"}, Value: gorm.Expr("daily_sales.total_orders + excluded.total_orders")},
				{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("excluded.updated_at")},
			},
		}).
		Create(salesM).Error
	if err != nil {
		return translateWriteError(err, "failed to increment daily sales")
	}

	return nil
}

// ListByProfile returns the rows between from and to inclusive, oldest first.
func (repo *dailySalesRepository) ListByProfile(ctx context.Context, profileID uuid.UUID, from, to time.Time) ([]*entity.DailySales, error) {
	var salesModels []*model.DailySalesModel
	err := repo.db.WithContext(ctx).
		Where("profile_id = ? AND sales_date >= ? AND sales_date <= ?", profileID, from, to).
		Order("sales_date ASC").
		Find(&salesModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list daily sales")
	}

	rows := make([]*entity.DailySales, 0, len(salesModels))
	for _, salesM := range salesModels {
		rows = append(rows, &entity.DailySales{
			ID:          salesM.ID,
			ProfileID:   salesM.ProfileID,
			SalesDate:   salesM.SalesDate,
			TotalSales:  salesM.TotalSales,
			TotalOrders: salesM.TotalOrders,
			CreatedAt:   salesM.CreatedAt,
			UpdatedAt:   salesM.UpdatedAt,
		})
	}

	return rows, nil
}
