package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the GORM-specific struct for the 'products' table.
type ProductModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Seller        *ProfileModel   `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Description   string          `gorm:"type:text;not null;default:''"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;check:chk_products_price,price >= 0"`
	StockQuantity int             `gorm:"not null;default:0;check:chk_products_stock,stock_quantity >= 0"`
	Category      string          `gorm:"type:varchar(20);not null;check:chk_products_category,category IN ('Seeds','Fertilizers','Equipment','Tools','Accessories','Irrigation','Pesticides','Others')"`
	IsActive      bool            `gorm:"not null"`
	IsFeatured    bool            `gorm:"not null;default:false"`
	ImageURL      string          `gorm:"type:text;not null;default:''"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
