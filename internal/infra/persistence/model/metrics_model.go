package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SellerMetricsModel is the GORM-specific struct for the 'seller_metrics' table.
// One row per seller, keyed by the profile ID.
type SellerMetricsModel struct {
	ProfileID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Profile         *ProfileModel   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	TotalOrders     int64           `gorm:"not null;default:0"`
	CompletedOrders int64           `gorm:"not null;default:0"`
	PendingOrders   int64           `gorm:"not null;default:0"`
	CancelledOrders int64           `gorm:"not null;default:0"`
	TotalSales      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	AverageRating   decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerMetricsModel) TableName() string {
	return "seller_metrics"
}

// DailySalesModel is the GORM-specific struct for the 'daily_sales' table.
type DailySalesModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_daily_sales_profile_date,priority:1"`
	Profile     *ProfileModel   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	SalesDate   time.Time       `gorm:"type:date;not null;uniqueIndex:uq_daily_sales_profile_date,priority:2"`
	TotalSales  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalOrders int64           `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (DailySalesModel) TableName() string {
	return "daily_sales"
}
