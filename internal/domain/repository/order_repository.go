package repository

import (
	"context"
	"time"

	"agromart/internal/domain/entity"
	"agromart/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is missing or hidden from the caller.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNumberTaken is returned when the order number is already used.
	ErrOrderNumberTaken = errors.New("order number already exists")
)

// OrderFilter narrows an order listing.
type OrderFilter struct {
	SellerID uuid.UUID
	Status   *entity.OrderStatus
	Limit    int
	Offset   int
}

// OrderTally is a one-pass count of a seller's orders by status bucket.
// Shipped orders only contribute to Total.
type OrderTally struct {
	Total     int64
	Completed int64
	Pending   int64
	Cancelled int64
	Sales     decimal.Decimal
}

// OrderRepository defines order and order item persistence.
type OrderRepository interface {
	// Create inserts the order together with its items.
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, updatedAt time.Time) error
	// Delete removes the order; its items go with it.
	Delete(ctx context.Context, id uuid.UUID) error
	// TallyBySeller scans every order of the seller.
	TallyBySeller(ctx context.Context, sellerID uuid.UUID) (*OrderTally, error)
	// ListSellerIDs returns every seller that has a metrics row or at least one order.
	ListSellerIDs(ctx context.Context) ([]uuid.UUID, error)
}
