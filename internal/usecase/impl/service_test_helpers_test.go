package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"agromart/internal/domain/entity"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/repository"
	"agromart/internal/domain/service"
	"agromart/internal/infra/persistence/postgres"
	"agromart/internal/infra/persistence/sqlitetest"
	"agromart/internal/infra/qrcode"
	"agromart/internal/usecase"
	"agromart/internal/usecase/aggregate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var serviceCtx = policy.AsService(context.Background())

// mockEventPublisher is a testify mock of service.EventPublisher.
type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, event *service.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// stubTipSource returns a fixed catalog.
type stubTipSource struct {
	tips []*entity.SellerTip
	err  error
}

func (s stubTipSource) Load(context.Context) ([]*entity.SellerTip, error) {
	return s.tips, s.err
}

// serviceFixtures wires every service against one in-memory database.
type serviceFixtures struct {
	db           *gorm.DB
	txManager    repository.TransactionManager
	publisher    *mockEventPublisher
	provisioning usecase.ProvisioningUsecase
	profiles     usecase.ProfileUsecase
	addresses    usecase.AddressUsecase
	products     usecase.ProductUsecase
	orders       usecase.OrderUsecase
	todos        usecase.TodoUsecase
	metrics      usecase.MetricsUsecase
	notify       usecase.NotificationUsecase
}

func newServiceFixtures(t *testing.T) serviceFixtures {
	t.Helper()

	db := sqlitetest.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	txManager := postgres.NewTransactionManager(db)
	aggregator := aggregate.New(aggregate.NewMetrics(), aggregate.NewDailyRollup(time.UTC), logger)
	publisher := &mockEventPublisher{}
	t.Cleanup(func() { publisher.AssertExpectations(t) })

	return serviceFixtures{
		db:           db,
		txManager:    txManager,
		publisher:    publisher,
		provisioning: NewProvisioningService(txManager, logger),
		profiles:     NewProfileService(txManager, logger),
		addresses:    NewAddressService(txManager, logger),
		products:     NewProductService(txManager, newTestQRService(), logger),
		orders:       NewOrderService(txManager, aggregator, publisher, logger),
		todos:        NewTodoService(txManager, logger),
		metrics:      NewMetricsService(txManager, aggregator, logger),
		notify:       NewNotificationService(txManager, logger),
	}
}

// seller provisions a profile and returns a context authenticated as it.
func (f serviceFixtures) seller(t *testing.T) (uuid.UUID, context.Context) {
	t.Helper()

	id := uuid.New()
	_, err := f.provisioning.ProvisionProfile(context.Background(), usecase.IdentityCreatedInput{
		ID:    id,
		Email: id.String() + "@farm.example",
	})
	require.NoError(t, err)

	return id, policy.WithProfile(context.Background(), id)
}

// placeOrder takes an order for sellerID through the service, expecting one publish.
func (f serviceFixtures) placeOrder(t *testing.T, sellerID uuid.UUID, amount string, at time.Time) *entity.Order {
	t.Helper()

	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e *service.DomainEvent) bool {
		return e.Type == service.EventTypeOrderPlaced && e.OrderPlaced.SellerID == sellerID.String()
	})).Return(nil).Once()

	order, err := f.orders.PlaceOrder(serviceCtx, &usecase.PlaceOrderInput{
		SellerID:     sellerID,
		CustomerName: "Buyer",
		PlacedAt:     &at,
		Items: []usecase.PlaceOrderItemInput{
			{Quantity: 1, UnitPrice: decimal.RequireFromString(amount)},
		},
	})
	require.NoError(t, err)

	return order
}

func assertDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func newTestQRService() service.QRCodeService {
	return qrcode.NewQRCodeService(128, "M", "https://market.example")
}

func orderPlacedEvent(order *entity.Order) *service.OrderPlacedEvent {
	return &service.OrderPlacedEvent{
		OrderID:      order.ID.String(),
		OrderNumber:  order.OrderNumber,
		SellerID:     order.SellerID.String(),
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount,
		PlacedAt:     order.CreatedAt,
	}
}
