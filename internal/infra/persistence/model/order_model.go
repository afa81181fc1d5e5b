package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SellerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Seller            *ProfileModel   `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	CustomerName      string          `gorm:"type:varchar(255);not null"`
	CustomerEmail     string          `gorm:"type:varchar(255);not null;default:''"`
	CustomerPhone     string          `gorm:"type:varchar(50);not null;default:''"`
	Status            string          `gorm:"type:varchar(20);not null;default:'New';index;check:chk_orders_status,status IN ('New','Pending','Shipped','Delivered','Cancelled')"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;check:chk_orders_total,total_amount >= 0"`
	ShippingAddressID *uuid.UUID      `gorm:"type:uuid"`
	ShippingAddress   *AddressModel   `gorm:"foreignKey:ShippingAddressID;constraint:OnDelete:SET NULL"`
	Notes             string          `gorm:"type:text;not null;default:''"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
// ProductID becomes NULL when the product is deleted; the line itself is kept.
type OrderItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Order      *OrderModel     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ProductID  *uuid.UUID      `gorm:"type:uuid;index"`
	Product    *ProductModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	Quantity   int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;check:chk_order_items_unit_price,unit_price >= 0"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
