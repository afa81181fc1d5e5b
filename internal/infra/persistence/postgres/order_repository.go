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

const tallySelect = `COUNT(*) AS total,
COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed,
COALESCE(SUM(CASE WHEN status IN (?, ?) THEN 1 ELSE 0 END), 0) AS pending,
COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS cancelled,
COALESCE(SUM(CASE WHEN status = ? THEN total_amount ELSE 0 END), 0) AS sales`

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order row, then its items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	db := repo.db.WithContext(ctx)

	orderM := fromOrderDomain(order)
	if err := db.Omit(clause.Associations).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrOrderNumberTaken
		}

		return translateWriteError(err, "failed to create order")
	}

	if len(order.Items) > 0 {
		itemModels := make([]*model.OrderItemModel, 0, len(order.Items))
		for _, item := range order.Items {
			item.OrderID = order.ID
			itemModels = append(itemModels, fromOrderItemDomain(item))
		}
		if err := db.Omit(clause.Associations).Create(&itemModels).Error; err != nil {
			return translateWriteError(err, "failed to create order items")
		}
		for idx, itemM := range itemModels {
			order.Items[idx].CreatedAt = itemM.CreatedAt
		}
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order without its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&orderM).Error; err != nil {
		return nil, translateReadError(err, repository.ErrOrderNotFound, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// ExistsByOrderNumber reports whether any order, visible to the caller or not, uses orderNumber.
func (repo *orderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check order number")
	}

	return count > 0, nil
}

// List returns orders matching filter, newest first.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})
	if filter.SellerID != uuid.Nil {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var orderModels []*model.OrderModel
	if err := query.Order("created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// ListItems returns the lines of one order in insertion order.
func (repo *orderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	var itemModels []*model.OrderItemModel
	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&itemModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list order items")
	}

	items := make([]*entity.OrderItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toOrderItemDomain(itemM))
	}

	return items, nil
}

// UpdateStatus moves an order to status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, updatedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order and, by cascade, its items.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrderModel{})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

type tallyRow struct {
	Total     int64
	Completed int64
	Pending   int64
	Cancelled int64
	Sales     decimal.Decimal
}

// TallyBySeller counts every order of the seller in one pass.
func (repo *orderRepository) TallyBySeller(ctx context.Context, sellerID uuid.UUID) (*repository.OrderTally, error) {
	var row tallyRow
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select(tallySelect,
			string(entity.OrderStatusDelivered),
			string(entity.OrderStatusNew), string(entity.OrderStatusPending),
			string(entity.OrderStatusCancelled),
			string(entity.OrderStatusDelivered),
		).
		Where("seller_id = ?", sellerID).
		Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to tally seller orders")
	}

	return &repository.OrderTally{
		Total:     row.Total,
		Completed: row.Completed,
		Pending:   row.Pending,
		Cancelled: row.Cancelled,
		Sales:     row.Sales,
	}, nil
}

// ListSellerIDs returns the union of sellers with orders and sellers with a metrics row.
func (repo *orderRepository) ListSellerIDs(ctx context.Context) ([]uuid.UUID, error) {
	db := repo.db.WithContext(ctx)

	var fromOrders []uuid.UUID
	if err := db.Model(&model.OrderModel{}).Distinct().Pluck("seller_id", &fromOrders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sellers with orders")
	}
	var fromMetrics []uuid.UUID
	if err := db.Model(&model.SellerMetricsModel{}).Pluck("profile_id", &fromMetrics).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sellers with metrics")
	}

	seen := make(map[uuid.UUID]struct{}, len(fromOrders)+len(fromMetrics))
	sellerIDs := make([]uuid.UUID, 0, len(fromOrders)+len(fromMetrics))
	for _, id := range append(fromOrders, fromMetrics...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		sellerIDs = append(sellerIDs, id)
	}

	return sellerIDs, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:                data.ID,
		OrderNumber:       data.OrderNumber,
		SellerID:          data.SellerID,
		CustomerName:      data.CustomerName,
		CustomerEmail:     data.CustomerEmail,
		CustomerPhone:     data.CustomerPhone,
		Status:            entity.OrderStatus(data.Status),
		TotalAmount:       data.TotalAmount,
		ShippingAddressID: data.ShippingAddressID,
		Notes:             data.Notes,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:                data.ID,
		OrderNumber:       data.OrderNumber,
		SellerID:          data.SellerID,
		CustomerName:      data.CustomerName,
		CustomerEmail:     data.CustomerEmail,
		CustomerPhone:     data.CustomerPhone,
		Status:            string(data.Status),
		TotalAmount:       data.TotalAmount,
		ShippingAddressID: data.ShippingAddressID,
		Notes:             data.Notes,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:         data.ID,
		OrderID:    data.OrderID,
		ProductID:  data.ProductID,
		Quantity:   data.Quantity,
		UnitPrice:  data.UnitPrice,
		TotalPrice: data.TotalPrice,
		CreatedAt:  data.CreatedAt,
	}
}

func fromOrderItemDomain(data *entity.OrderItem) *model.OrderItemModel {
	if data == nil {
		return nil
	}

	return &model.OrderItemModel{
		ID:         data.ID,
		OrderID:    data.OrderID,
		ProductID:  data.ProductID,
		Quantity:   data.Quantity,
		UnitPrice:  data.UnitPrice,
		TotalPrice: data.TotalPrice,
		CreatedAt:  data.CreatedAt,
	}
}
