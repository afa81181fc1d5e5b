package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCategory is the product_category enumeration.
type ProductCategory string

const (
	ProductCategorySeeds       ProductCategory = "Seeds"
	ProductCategoryFertilizers ProductCategory = "Fertilizers"
	ProductCategoryEquipment   ProductCategory = "Equipment"
	ProductCategoryTools       ProductCategory = "Tools"
	ProductCategoryAccessories ProductCategory = "Accessories"
	ProductCategoryIrrigation  ProductCategory = "Irrigation"
	ProductCategoryPesticides  ProductCategory = "Pesticides"
	ProductCategoryOthers      ProductCategory = "Others"
)

// ProductCategories lists every category in declaration order.
var ProductCategories = []ProductCategory{
	ProductCategorySeeds,
	ProductCategoryFertilizers,
	ProductCategoryEquipment,
	ProductCategoryTools,
	ProductCategoryAccessories,
	ProductCategoryIrrigation,
	ProductCategoryPesticides,
	ProductCategoryOthers,
}

// Valid reports whether c is a known category.
func (c ProductCategory) Valid() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}

	return false
}

// Product is a listing owned by a seller.
type Product struct {
	ID            uuid.UUID       `json:"id"`
	SellerID      uuid.UUID       `json:"seller_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      ProductCategory `json:"category"`
	IsActive      bool            `json:"is_active"`
	IsFeatured    bool            `json:"is_featured"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
