package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	deliverycontext "agromart/internal/delivery/context"
	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/repository"
	"agromart/internal/domain/service"
	"agromart/internal/usecase"
	"agromart/internal/usecase/aggregate"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const orderNumberPrefix = "ORD-"

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager  repository.TransactionManager
	aggregator *aggregate.Aggregator
	publisher  service.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	aggregator *aggregate.Aggregator,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager:  txManager,
		aggregator: aggregator,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

// PlaceOrder records a new order, refreshes the seller's metrics and daily
// sales in the same transaction, and announces the order once committed.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	order, err := srv.buildOrder(input)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		// 1. Reject a reused order number before touching any row
		taken, err := orderRepo.ExistsByOrderNumber(ctx, order.OrderNumber)
		if err != nil {
			return errors.Wrap(err, "failed to check order number")
		}
		if taken {
			return errors.Wrap(domainerrors.ErrOrderNumberConflict, order.OrderNumber)
		}

		// 2. Insert the order and its items
		if err := orderRepo.Create(ctx, order); err != nil {
			return translateRepoError(err, repository.ErrOrderNumberTaken, domainerrors.ErrOrderNumberConflict, "failed to create order")
		}

		// 3. Derived tables
		return srv.aggregator.OrderInserted(ctx, repoFactory, order)
	})

	if err != nil {
		srv.log(ctx).Warn("Order placement failed", "sellerID", input.SellerID, "error", err)

		return nil, errors.Wrap(err, "failed to place order")
	}

	srv.log(ctx).Info("Order placed",
		"orderID", order.ID,
		"orderNumber", order.OrderNumber,
		"sellerID", order.SellerID,
	)
	srv.publishOrderPlaced(ctx, order)

	return order, nil
}

func (srv *orderService) buildOrder(input *usecase.PlaceOrderInput) (*entity.Order, error) {
	if input.SellerID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "seller id is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.WithStack(domainerrors.ErrEmptyOrder)
	}

	status := input.Status
	if status == "" {
		status = entity.OrderStatusNew
	}
	if !status.Valid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidOrderStatus, string(status))
	}

	placedAt := srv.now().UTC()
	if input.PlacedAt != nil {
		placedAt = input.PlacedAt.UTC()
	}

	orderNumber := strings.TrimSpace(input.OrderNumber)
	if orderNumber == "" {
		generated, err := newOrderNumber(placedAt)
		if err != nil {
			return nil, err
		}
		orderNumber = generated
	}

	items := make([]*entity.OrderItem, 0, len(input.Items))
	total := decimal.Zero
	for idx, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "item %d: quantity must be positive", idx)
		}
		if item.UnitPrice.IsNegative() {
			return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "item %d: unit price must not be negative", idx)
		}

		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, &entity.OrderItem{
			ID:         uuid.New(),
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
			CreatedAt:  placedAt,
		})
	}
	if input.TotalAmount != nil {
		if input.TotalAmount.IsNegative() {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "total amount must not be negative")
		}
		total = *input.TotalAmount
	}

	return &entity.Order{
		ID:                uuid.New(),
		OrderNumber:       orderNumber,
		SellerID:          input.SellerID,
		CustomerName:      input.CustomerName,
		CustomerEmail:     input.CustomerEmail,
		CustomerPhone:     input.CustomerPhone,
		Status:            status,
		TotalAmount:       total,
		ShippingAddressID: input.ShippingAddressID,
		Notes:             input.Notes,
		Items:             items,
		CreatedAt:         placedAt,
		UpdatedAt:         placedAt,
	}, nil
}

// newOrderNumber returns ORD-YYYYMMDD-<8 hex>.
func newOrderNumber(at time.Time) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", errors.Wrap(err, "failed to generate order number")
	}

	return orderNumberPrefix + at.Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(suffix)), nil
}

// publishOrderPlaced is best effort: the order is already committed.
func (srv *orderService) publishOrderPlaced(ctx context.Context, order *entity.Order) {
	if srv.publisher == nil {
		return
	}

	event := &service.DomainEvent{
		RequestID: deliverycontext.RequestIDFrom(ctx),
		EventID:   uuid.NewString(),
		Type:      service.EventTypeOrderPlaced,
		OrderPlaced: &service.OrderPlacedEvent{
			OrderID:      order.ID.String(),
			OrderNumber:  order.OrderNumber,
			SellerID:     order.SellerID.String(),
			CustomerName: order.CustomerName,
			TotalAmount:  order.TotalAmount,
			PlacedAt:     order.CreatedAt,
		},
	}
	if err := srv.publisher.Publish(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order placed event",
			"orderID", order.ID,
			"eventID", event.EventID,
			"error", err,
		)
	}
}

// GetOrder retrieves one order with its items.
func (srv *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		found, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return translateRepoError(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound, "failed to find order")
		}
		items, err := orderRepo.ListItems(ctx, orderID)
		if err != nil {
			return errors.Wrap(err, "failed to list order items")
		}
		found.Items = items
		order = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}

	return order, nil
}

// ListOrders returns the seller's orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context, sellerID uuid.UUID, input usecase.ListOrdersInput) ([]*entity.Order, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidOrderStatus, string(*input.Status))
	}

	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().List(ctx, repository.OrderFilter{
			SellerID: sellerID,
			Status:   input.Status,
			Limit:    pageSize(input.Limit),
			Offset:   max(input.Offset, 0),
		})
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListOrderItems returns the lines of an order the caller can see.
func (srv *orderService) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	var items []*entity.OrderItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		if _, err := orderRepo.FindByID(ctx, orderID); err != nil {
			return translateRepoError(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound, "failed to find order")
		}
		found, err := orderRepo.ListItems(ctx, orderID)
		if err != nil {
			return errors.Wrap(err, "failed to list order items")
		}
		items = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list order items")
	}

	return items, nil
}

// UpdateOrderStatus moves an order along its lifecycle and refreshes the seller's metrics.
// The daily rollup is left alone: it only counts order intake.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidOrderStatus, string(status))
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		// 1. Find the order
		found, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return translateRepoError(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound, "failed to find order")
		}

		// 2. Check the transition
		if !found.Status.CanTransitionTo(status) {
			return errors.Wrapf(domainerrors.ErrInvalidStatusTransition, "%s to %s", found.Status, status)
		}
		if found.Status == status {
			order = found

			return nil
		}

		// 3. Write and re-derive metrics
		now := srv.now().UTC()
		if err := orderRepo.UpdateStatus(ctx, orderID, status, now); err != nil {
			return translateRepoError(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound, "failed to update order status")
		}
		found.Status = status
		found.UpdatedAt = now

		if err := srv.aggregator.OrderUpdated(ctx, repoFactory, found); err != nil {
			return err
		}
		order = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated", "orderID", orderID, "status", status)

	return order, nil
}

// DeleteOrder removes an order and its items, then refreshes the seller's metrics.
// Daily sales already recorded for the order stay as they are.
func (srv *orderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if !policy.IsService(ctx) {
		return errors.Wrap(domainerrors.ErrForbidden, "orders can only be deleted by the platform")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		found, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return translateRepoError(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound, "failed to find order")
		}
		if err := orderRepo.Delete(ctx, orderID); err != nil {
			return translateRepoError(err, repository.ErrOrderNotFound, domainerrors.ErrOrderNotFound, "failed to delete order")
		}

		return srv.aggregator.OrderDeleted(ctx, repoFactory, found.SellerID)
	})

	if err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted", "orderID", orderID)

	return nil
}
