package usecase

import (
	"context"
	"time"

	"agromart/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceOrderItemInput is one line of a new order.
type PlaceOrderItemInput struct {
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PlaceOrderInput defines a new order taken for a seller.
type PlaceOrderInput struct {
	SellerID      uuid.UUID `json:"seller_id" validate:"required"`
	OrderNumber   string    `json:"order_number,omitempty" validate:"max=50"`
	CustomerName  string    `json:"customer_name" validate:"required,max=200"`
	CustomerEmail string    `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone string    `json:"customer_phone,omitempty" validate:"max=50"`
	// Status defaults to New.
	Status            entity.OrderStatus `json:"status,omitempty" validate:"omitempty,order_status"`
	ShippingAddressID *uuid.UUID         `json:"shipping_address_id,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	// TotalAmount overrides the sum of the item totals when set.
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
	// PlacedAt backdates an imported order. Defaults to now.
	PlacedAt *time.Time            `json:"placed_at,omitempty"`
	Items    []PlaceOrderItemInput `json:"items" validate:"dive"`
}

// ListOrdersInput narrows a seller's order listing.
type ListOrdersInput struct {
	Status *entity.OrderStatus
	Limit  int
	Offset int
}

// OrderUsecase handles order intake and fulfilment. Every write keeps the
// seller's metrics and daily sales consistent in the same transaction.
type OrderUsecase interface {
	// PlaceOrder records an order with its items. Service role only.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context, sellerID uuid.UUID, input ListOrdersInput) ([]*entity.Order, error)
	ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	// DeleteOrder removes the order and its items. Service role only.
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
}
