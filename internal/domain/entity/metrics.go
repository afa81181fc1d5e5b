package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SellerMetrics is the lifetime aggregate of a seller's orders.
// It is derived data and is only written by the metrics aggregator.
type SellerMetrics struct {
	ProfileID       uuid.UUID       `json:"profile_id"`
	TotalOrders     int64           `json:"total_orders"`
	CompletedOrders int64           `json:"completed_orders"` // Delivered
	PendingOrders   int64           `json:"pending_orders"`   // New and Pending
	CancelledOrders int64           `json:"cancelled_orders"`
	TotalSales      decimal.Decimal `json:"total_sales"` // Sum of Delivered order totals
	AverageRating   decimal.Decimal `json:"average_rating"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DailySales counts the orders a seller received on one calendar day.
type DailySales struct {
	ID          uuid.UUID       `json:"id"`
	ProfileID   uuid.UUID       `json:"profile_id"`
	SalesDate   time.Time       `json:"sales_date"` // Midnight UTC of the rollup day.
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalOrders int64           `json:"total_orders"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
