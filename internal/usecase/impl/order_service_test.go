package impl

import (
	"context"
	"regexp"
	"testing"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/service"
	"agromart/internal/infra/persistence/model"
	"agromart/internal/infra/persistence/postgres"
	"agromart/internal/infra/persistence/sqlitetest"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_PlaceThenDeliver(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, sellerCtx := f.seller(t)
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	order := f.placeOrder(t, sellerID, "100", day.Add(10*time.Hour))
	assert.Equal(t, entity.OrderStatusNew, order.Status)

	metrics, err := f.metrics.GetSellerMetrics(sellerCtx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.TotalOrders)
	assert.Equal(t, int64(0), metrics.CompletedOrders)
	assert.Equal(t, int64(1), metrics.PendingOrders)
	assert.Equal(t, int64(0), metrics.CancelledOrders)
	assertDecimalEqual(t, "0", metrics.TotalSales)

	daily, err := f.metrics.ListDailySales(sellerCtx, sellerID, day, day)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, int64(1), daily[0].TotalOrders)
	assertDecimalEqual(t, "100", daily[0].TotalSales)

	updated, err := f.orders.UpdateOrderStatus(sellerCtx, order.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, updated.Status)

	metrics, err = f.metrics.GetSellerMetrics(sellerCtx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.TotalOrders)
	assert.Equal(t, int64(1), metrics.CompletedOrders)
	assert.Equal(t, int64(0), metrics.PendingOrders)
	assert.Equal(t, int64(0), metrics.CancelledOrders)
	assertDecimalEqual(t, "100", metrics.TotalSales)

	daily, err = f.metrics.ListDailySales(sellerCtx, sellerID, day, day)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, int64(1), daily[0].TotalOrders)
	assertDecimalEqual(t, "100", daily[0].TotalSales)
}

func TestOrderService_PlaceOrderComputesTotals(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, sellerCtx := f.seller(t)
	product, err := f.products.CreateProduct(sellerCtx, sellerID, &usecase.CreateProductInput{
		Name: "Drip line", Price: decimal.RequireFromString("3.25"), StockQuantity: 100, Category: entity.ProductCategoryIrrigation,
	})
	require.NoError(t, err)

	f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("*service.DomainEvent")).Return(nil).Once()

	order, err := f.orders.PlaceOrder(serviceCtx, &usecase.PlaceOrderInput{
		SellerID:     sellerID,
		CustomerName: "Wang",
		Items: []usecase.PlaceOrderItemInput{
			{ProductID: &product.ID, Quantity: 4, UnitPrice: product.Price},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("7.00")},
		},
	})
	require.NoError(t, err)

	assertDecimalEqual(t, "20", order.TotalAmount)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`), order.OrderNumber)

	items, err := f.orders.ListOrderItems(sellerCtx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	assertDecimalEqual(t, "20", total)
}

func TestOrderService_SameDayOrdersAddUp(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, sellerCtx := f.seller(t)
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	amounts := []string{"12.30", "0.70", "45", "1.99", "100"}
	for idx, amount := range amounts {
		f.placeOrder(t, sellerID, amount, day.Add(time.Duration(idx)*2*time.Hour))
	}

	daily, err := f.metrics.ListDailySales(sellerCtx, sellerID, day, day)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, int64(len(amounts)), daily[0].TotalOrders)
	assertDecimalEqual(t, "159.99", daily[0].TotalSales)
}

func TestOrderService_DuplicateOrderNumber(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, _ := f.seller(t)

	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	input := &usecase.PlaceOrderInput{
		SellerID:     sellerID,
		OrderNumber:  "ORD-FIXED-1",
		CustomerName: "Lin",
		Items:        []usecase.PlaceOrderItemInput{{Quantity: 2, UnitPrice: decimal.NewFromInt(5)}},
	}
	_, err := f.orders.PlaceOrder(serviceCtx, input)
	require.NoError(t, err)

	_, err = f.orders.PlaceOrder(serviceCtx, input)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNumberConflict)
}

func TestOrderService_PlaceOrderValidation(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, _ := f.seller(t)

	tests := []struct {
		name  string
		input *usecase.PlaceOrderInput
		want  error
	}{
		{
			name:  "no items",
			input: &usecase.PlaceOrderInput{SellerID: sellerID, CustomerName: "A"},
			want:  domainerrors.ErrEmptyOrder,
		},
		{
			name: "zero quantity",
			input: &usecase.PlaceOrderInput{SellerID: sellerID, CustomerName: "A",
				Items: []usecase.PlaceOrderItemInput{{Quantity: 0, UnitPrice: decimal.NewFromInt(1)}}},
			want: domainerrors.ErrValidationFailed,
		},
		{
			name: "unknown status",
			input: &usecase.PlaceOrderInput{SellerID: sellerID, CustomerName: "A", Status: "Lost",
				Items: []usecase.PlaceOrderItemInput{{Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}},
			want: domainerrors.ErrInvalidOrderStatus,
		},
		{
			name: "missing seller",
			input: &usecase.PlaceOrderInput{CustomerName: "A",
				Items: []usecase.PlaceOrderItemInput{{Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}},
			want: domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.PlaceOrder(serviceCtx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOrderService_SellersCannotPlaceOrders(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, sellerCtx := f.seller(t)

	_, err := f.orders.PlaceOrder(sellerCtx, &usecase.PlaceOrderInput{
		SellerID:     sellerID,
		CustomerName: "Self",
		Items:        []usecase.PlaceOrderItemInput{{Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_PublishFailureKeepsOrder(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, sellerCtx := f.seller(t)

	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	order, err := f.orders.PlaceOrder(serviceCtx, &usecase.PlaceOrderInput{
		SellerID:     sellerID,
		CustomerName: "Chen",
		Items:        []usecase.PlaceOrderItemInput{{Quantity: 1, UnitPrice: decimal.NewFromInt(9)}},
	})
	require.NoError(t, err)

	found, err := f.orders.GetOrder(sellerCtx, order.ID)
	require.NoError(t, err)
	assert.Len(t, found.Items, 1)
}

func TestOrderService_PublishesAfterCommit(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, _ := f.seller(t)

	f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("*service.DomainEvent")).
		Run(func(args mock.Arguments) {
			event := args.Get(1).(*service.DomainEvent)
			exists, err := postgres.NewOrderRepository(f.db).ExistsByOrderNumber(serviceCtx, event.OrderPlaced.OrderNumber)
			require.NoError(t, err)
			assert.True(t, exists, "order must be committed before the event goes out")
		}).
		Return(nil).Once()

	_, err := f.orders.PlaceOrder(serviceCtx, &usecase.PlaceOrderInput{
		SellerID:     sellerID,
		CustomerName: "Huang",
		Items:        []usecase.PlaceOrderItemInput{{Quantity: 3, UnitPrice: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
}

func TestOrderService_AggregatorFailureRollsBack(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, sellerCtx := f.seller(t)
	sqlitetest.Exec(t, f.db, `CREATE TRIGGER fail_daily_sales BEFORE INSERT ON daily_sales
BEGIN SELECT RAISE(ABORT, 'rollup unavailable'); END`)

	_, err := f.orders.PlaceOrder(serviceCtx, &usecase.PlaceOrderInput{
		SellerID:     sellerID,
		OrderNumber:  "ORD-DOOMED",
		CustomerName: "Nobody",
		Items:        []usecase.PlaceOrderItemInput{{Quantity: 1, UnitPrice: decimal.NewFromInt(50)}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAggregationFailed)

	orders, err := f.orders.ListOrders(sellerCtx, sellerID, usecase.ListOrdersInput{})
	require.NoError(t, err)
	assert.Empty(t, orders)

	var items int64
	require.NoError(t, f.db.WithContext(serviceCtx).Model(&model.OrderItemModel{}).Count(&items).Error)
	assert.Zero(t, items)

	metrics, err := postgres.NewSellerMetricsRepository(f.db).FindByProfile(serviceCtx, sellerID)
	require.NoError(t, err)
	assert.Nil(t, metrics)
}

func TestOrderService_StatusLifecycle(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, sellerCtx := f.seller(t)
	order := f.placeOrder(t, sellerID, "10", time.Now().UTC())

	_, err := f.orders.UpdateOrderStatus(sellerCtx, order.ID, entity.OrderStatusShipped)
	require.NoError(t, err)

	_, err = f.orders.UpdateOrderStatus(sellerCtx, order.ID, entity.OrderStatusPending)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)

	_, err = f.orders.UpdateOrderStatus(sellerCtx, order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = f.orders.UpdateOrderStatus(sellerCtx, order.ID, entity.OrderStatusDelivered)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)

	_, err = f.orders.UpdateOrderStatus(sellerCtx, order.ID, entity.OrderStatus("Lost"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)

	metrics, err := f.metrics.GetSellerMetrics(sellerCtx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.CancelledOrders)
	assert.Equal(t, int64(0), metrics.PendingOrders)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, sellerCtx := f.seller(t)
	keep := f.placeOrder(t, sellerID, "5", time.Now().UTC())
	drop := f.placeOrder(t, sellerID, "7", time.Now().UTC())

	err := f.orders.DeleteOrder(sellerCtx, drop.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, f.orders.DeleteOrder(serviceCtx, drop.ID))

	var items int64
	require.NoError(t, f.db.WithContext(serviceCtx).Model(&model.OrderItemModel{}).Where("order_id = ?", drop.ID).Count(&items).Error)
	assert.Zero(t, items)

	metrics, err := f.metrics.GetSellerMetrics(sellerCtx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.TotalOrders)

	_, err = f.orders.GetOrder(sellerCtx, keep.ID)
	require.NoError(t, err)

	err = f.orders.DeleteOrder(serviceCtx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_SellersAreIsolated(t *testing.T) {
	f := newServiceFixtures(t)
	_, aliceCtx := f.seller(t)
	bobID, bobCtx := f.seller(t)
	day := time.Date(2026, 7, 7, 0, 0, 0, 0, time.UTC)
	bobOrder := f.placeOrder(t, bobID, "80", day)

	bobProduct, err := f.products.CreateProduct(bobCtx, bobID, &usecase.CreateProductInput{
		Name: "Urea", Price: decimal.NewFromInt(15), StockQuantity: 4, Category: entity.ProductCategoryFertilizers,
	})
	require.NoError(t, err)
	bobTodo, err := f.todos.CreateTodo(bobCtx, bobID, &usecase.CreateTodoInput{Title: "Call supplier"})
	require.NoError(t, err)

	// Orders
	_, err = f.orders.GetOrder(aliceCtx, bobOrder.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	_, err = f.orders.UpdateOrderStatus(aliceCtx, bobOrder.ID, entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	_, err = f.orders.ListOrderItems(aliceCtx, bobOrder.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	orders, err := f.orders.ListOrders(aliceCtx, bobID, usecase.ListOrdersInput{})
	require.NoError(t, err)
	assert.Empty(t, orders)

	// Products
	_, err = f.products.GetProduct(aliceCtx, bobProduct.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	price := decimal.NewFromInt(1)
	_, err = f.products.UpdateProduct(aliceCtx, bobProduct.ID, &usecase.UpdateProductInput{Price: &price})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	assert.ErrorIs(t, f.products.DeleteProduct(aliceCtx, bobProduct.ID), domainerrors.ErrProductNotFound)
	_, err = f.products.CreateProduct(aliceCtx, bobID, &usecase.CreateProductInput{
		Name: "Planted", Price: decimal.NewFromInt(1), Category: entity.ProductCategoryOthers,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Todos
	done := true
	_, err = f.todos.UpdateTodo(aliceCtx, bobTodo.ID, &usecase.UpdateTodoInput{Completed: &done})
	assert.ErrorIs(t, err, domainerrors.ErrTodoNotFound)
	todos, err := f.todos.ListTodos(aliceCtx, bobID, nil)
	require.NoError(t, err)
	assert.Empty(t, todos)

	// Derived tables
	metrics, err := f.metrics.GetSellerMetrics(aliceCtx, bobID)
	require.NoError(t, err)
	assert.Zero(t, metrics.TotalOrders)
	daily, err := f.metrics.ListDailySales(aliceCtx, bobID, day, day)
	require.NoError(t, err)
	assert.Empty(t, daily)

	// Bob still sees everything untouched.
	found, err := f.orders.GetOrder(bobCtx, bobOrder.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusNew, found.Status)
	product, err := f.products.GetProduct(bobCtx, bobProduct.ID)
	require.NoError(t, err)
	assertDecimalEqual(t, "15", product.Price)
}

func TestOrderService_AnonymousCallerSeesNothing(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, _ := f.seller(t)
	order := f.placeOrder(t, sellerID, "3", time.Now().UTC())

	_, err := f.orders.GetOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)

	orders, err := f.orders.ListOrders(policy.WithCaller(context.Background(), policy.Caller{}), sellerID, usecase.ListOrdersInput{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}
