package postgres

import (
	"context"
	"testing"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/repository"
	"agromart/internal/infra/persistence/model"
	"agromart/internal/infra/persistence/sqlitetest"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var serviceCtx = policy.AsService(context.Background())

func createTestProfile(t *testing.T, db *gorm.DB) *entity.Profile {
	t.Helper()

	now := time.Now().UTC()
	profile := &entity.Profile{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		FullName:  "Test Seller",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, NewProfileRepository(db).Create(serviceCtx, profile))

	return profile
}

func createTestProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID) *entity.Product {
	t.Helper()

	product := &entity.Product{
		ID:            uuid.New(),
		SellerID:      sellerID,
		Name:          "Tomato seeds",
		Price:         decimal.RequireFromString("12.50"),
		StockQuantity: 10,
		Category:      entity.ProductCategorySeeds,
		IsActive:      true,
	}
	require.NoError(t, NewProductRepository(db).Create(serviceCtx, product))

	return product
}

func createTestOrder(t *testing.T, db *gorm.DB, sellerID uuid.UUID, status entity.OrderStatus, total string, productID *uuid.UUID) *entity.Order {
	t.Helper()

	amount := decimal.RequireFromString(total)
	order := &entity.Order{
		ID:           uuid.New(),
		OrderNumber:  "ORD-" + uuid.NewString(),
		SellerID:     sellerID,
		CustomerName: "Buyer",
		Status:       status,
		TotalAmount:  amount,
		Items: []*entity.OrderItem{
			{ID: uuid.New(), ProductID: productID, Quantity: 1, UnitPrice: amount, TotalPrice: amount},
		},
	}
	require.NoError(t, NewOrderRepository(db).Create(serviceCtx, order))

	return order
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := sqlitetest.New(t)
	txManager := NewTransactionManager(db)
	profileID := uuid.New()

	boom := errors.New("boom")
	err := txManager.Execute(serviceCtx, func(repoFactory repository.RepositoryFactory) error {
		now := time.Now().UTC()
		if err := repoFactory.ProfileRepo().Create(serviceCtx, &entity.Profile{
			ID: profileID, Email: "rollback@example.com", CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewProfileRepository(db).FindByID(serviceCtx, profileID)
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestProfileRepository_DuplicateIsReported(t *testing.T) {
	db := sqlitetest.New(t)
	profile := createTestProfile(t, db)

	dup := *profile
	err := NewProfileRepository(db).Create(serviceCtx, &dup)
	assert.ErrorIs(t, err, repository.ErrProfileExists)
}

func TestProfileRepository_EmailIsNotUnique(t *testing.T) {
	db := sqlitetest.New(t)
	profile := createTestProfile(t, db)

	other := *profile
	other.ID = uuid.New()
	require.NoError(t, NewProfileRepository(db).Create(serviceCtx, &other))

	found, err := NewProfileRepository(db).FindByID(serviceCtx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.Email, found.Email)
}

func TestProfileRepository_OwnerOnlySeesSelf(t *testing.T) {
	db := sqlitetest.New(t)
	alice := createTestProfile(t, db)
	bob := createTestProfile(t, db)

	repo := NewProfileRepository(db)
	found, err := repo.FindByID(policy.WithProfile(context.Background(), alice.ID), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, found.Email)

	_, err = repo.FindByID(policy.WithProfile(context.Background(), alice.ID), bob.ID)
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)

	bob.FullName = "Mallory"
	err = repo.Update(policy.WithProfile(context.Background(), alice.ID), bob)
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestProductRepository_CheckConstraint(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)

	err := NewProductRepository(db).Create(serviceCtx, &entity.Product{
		ID:       uuid.New(),
		SellerID: seller.ID,
		Name:     "Broken",
		Price:    decimal.NewFromInt(-1),
		Category: entity.ProductCategoryTools,
	})
	assert.ErrorIs(t, err, domainerrors.ErrConstraintViolation)
}

func TestProductRepository_UnknownSellerIsInvalidReference(t *testing.T) {
	db := sqlitetest.New(t)

	err := NewProductRepository(db).Create(serviceCtx, &entity.Product{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Name:     "Orphan",
		Price:    decimal.NewFromInt(1),
		Category: entity.ProductCategoryTools,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidReference)
}

func TestOrderRepository_CreateAndItems(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)
	product := createTestProduct(t, db, seller.ID)
	order := createTestOrder(t, db, seller.ID, entity.OrderStatusNew, "25.00", &product.ID)

	repo := NewOrderRepository(db)
	ownerCtx := policy.WithProfile(context.Background(), seller.ID)

	found, err := repo.FindByID(ownerCtx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, found.OrderNumber)
	assert.True(t, decimal.RequireFromString("25").Equal(found.TotalAmount))

	items, err := repo.ListItems(ownerCtx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, *items[0].ProductID)

	exists, err := repo.ExistsByOrderNumber(serviceCtx, order.OrderNumber)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOrderRepository_DuplicateOrderNumber(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)
	order := createTestOrder(t, db, seller.ID, entity.OrderStatusNew, "5", nil)

	err := NewOrderRepository(db).Create(serviceCtx, &entity.Order{
		ID:           uuid.New(),
		OrderNumber:  order.OrderNumber,
		SellerID:     seller.ID,
		CustomerName: "Other",
		Status:       entity.OrderStatusNew,
		TotalAmount:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, repository.ErrOrderNumberTaken)
}

func TestOrderRepository_TallyBySeller(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)
	other := createTestProfile(t, db)

	createTestOrder(t, db, seller.ID, entity.OrderStatusNew, "10", nil)
	createTestOrder(t, db, seller.ID, entity.OrderStatusPending, "20", nil)
	createTestOrder(t, db, seller.ID, entity.OrderStatusShipped, "40", nil)
	createTestOrder(t, db, seller.ID, entity.OrderStatusDelivered, "80", nil)
	createTestOrder(t, db, seller.ID, entity.OrderStatusDelivered, "1.5", nil)
	createTestOrder(t, db, seller.ID, entity.OrderStatusCancelled, "160", nil)
	createTestOrder(t, db, other.ID, entity.OrderStatusDelivered, "999", nil)

	tally, err := NewOrderRepository(db).TallyBySeller(serviceCtx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), tally.Total)
	assert.Equal(t, int64(2), tally.Completed)
	assert.Equal(t, int64(2), tally.Pending)
	assert.Equal(t, int64(1), tally.Cancelled)
	assert.True(t, decimal.RequireFromString("81.5").Equal(tally.Sales), tally.Sales.String())

	empty, err := NewOrderRepository(db).TallyBySeller(serviceCtx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.True(t, empty.Sales.IsZero())
}

func TestOrderRepository_DeletingProductKeepsLine(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)
	product := createTestProduct(t, db, seller.ID)
	order := createTestOrder(t, db, seller.ID, entity.OrderStatusNew, "12.50", &product.ID)

	require.NoError(t, NewProductRepository(db).Delete(serviceCtx, product.ID))

	items, err := NewOrderRepository(db).ListItems(serviceCtx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].ProductID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(items[0].UnitPrice))
}

func TestProfileRepository_DeleteCascades(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)
	product := createTestProduct(t, db, seller.ID)
	createTestOrder(t, db, seller.ID, entity.OrderStatusNew, "12.50", &product.ID)
	require.NoError(t, NewSellerMetricsRepository(db).EnsureExists(serviceCtx, seller.ID, time.Now().UTC()))
	require.NoError(t, NewDailySalesRepository(db).Increment(serviceCtx, seller.ID,
		time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(5), time.Now().UTC()))

	require.NoError(t, NewProfileRepository(db).Delete(serviceCtx, seller.ID))

	for _, m := range []any{
		&model.ProductModel{}, &model.OrderModel{}, &model.OrderItemModel{},
		&model.SellerMetricsModel{}, &model.DailySalesModel{},
	} {
		var count int64
		require.NoError(t, db.WithContext(serviceCtx).Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T", m)
	}
}

func TestSellerMetricsRepository_EnsureAndOverwrite(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)
	repo := NewSellerMetricsRepository(db)

	missing, err := repo.FindByProfile(serviceCtx, seller.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	now := time.Now().UTC()
	require.NoError(t, repo.EnsureExists(serviceCtx, seller.ID, now))
	require.NoError(t, repo.Overwrite(serviceCtx, &entity.SellerMetrics{
		ProfileID: seller.ID, TotalOrders: 3, CompletedOrders: 1, PendingOrders: 1, CancelledOrders: 1,
		TotalSales: decimal.NewFromInt(7), UpdatedAt: now,
	}))
	// A second ensure must not reset the row.
	require.NoError(t, repo.EnsureExists(serviceCtx, seller.ID, now))

	metrics, err := repo.FindByProfile(serviceCtx, seller.ID)
	require.NoError(t, err)
	require.NotNil(t, metrics)
	assert.Equal(t, int64(3), metrics.TotalOrders)
	assert.True(t, decimal.NewFromInt(7).Equal(metrics.TotalSales))

	err = repo.Overwrite(policy.WithProfile(context.Background(), seller.ID), metrics)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestSellerMetricsRepository_LockForUpdate(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)
	repo := NewSellerMetricsRepository(db)

	err := repo.LockForUpdate(serviceCtx, seller.ID)
	assert.ErrorContains(t, err, "is missing")

	require.NoError(t, repo.EnsureExists(serviceCtx, seller.ID, time.Now().UTC()))
	require.NoError(t, repo.LockForUpdate(serviceCtx, seller.ID))

	var metricsM model.SellerMetricsModel
	stmt := lockMetricsRow(db.Session(&gorm.Session{DryRun: true}), seller.ID).Take(&metricsM).Statement
	forClause, ok := stmt.Clauses["FOR"]
	require.True(t, ok, "select must carry a locking clause")
	assert.Equal(t, clause.Locking{Strength: "UPDATE"}, forClause.Expression)
}

func TestDailySalesRepository_IncrementAccumulates(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)
	repo := NewDailySalesRepository(db)

	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	require.NoError(t, repo.Increment(serviceCtx, seller.ID, day, decimal.NewFromInt(10), now))
	require.NoError(t, repo.Increment(serviceCtx, seller.ID, day, decimal.RequireFromString("2.5"), now))
	require.NoError(t, repo.Increment(serviceCtx, seller.ID, day.AddDate(0, 0, 1), decimal.NewFromInt(4), now))

	rows, err := repo.ListByProfile(policy.WithProfile(context.Background(), seller.ID), seller.ID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].TotalOrders)
	assert.True(t, decimal.RequireFromString("12.5").Equal(rows[0].TotalSales), rows[0].TotalSales.String())
	assert.Equal(t, int64(1), rows[1].TotalOrders)

	only, err := repo.ListByProfile(serviceCtx, seller.ID, day.AddDate(0, 0, 1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, only, 1)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	db := sqlitetest.New(t)
	seller := createTestProfile(t, db)
	repo := NewNotificationRepository(db)

	for range 3 {
		require.NoError(t, repo.Create(serviceCtx, &entity.Notification{
			ID: uuid.New(), ProfileID: seller.ID, Title: "t", Message: "m",
			Type: entity.NotificationTypeSystem, CreatedAt: time.Now().UTC(),
		}))
	}

	ownerCtx := policy.WithProfile(context.Background(), seller.ID)
	all, err := repo.List(ownerCtx, seller.ID, true, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	require.NoError(t, repo.MarkRead(ownerCtx, all[0].ID))
	marked, err := repo.MarkAllRead(ownerCtx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	unread, err := repo.List(ownerCtx, seller.ID, true, 0)
	require.NoError(t, err)
	assert.Empty(t, unread)

	err = repo.MarkRead(policy.WithProfile(context.Background(), uuid.New()), all[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotificationNotFound)
}

func TestSellerTipRepository_Upsert(t *testing.T) {
	db := sqlitetest.New(t)
	repo := NewSellerTipRepository(db)
	tipID := uuid.New()

	require.NoError(t, repo.Upsert(serviceCtx, []*entity.SellerTip{
		{ID: tipID, Title: "Water early", Content: "v1", Category: "irrigation", CreatedAt: time.Now().UTC()},
		{ID: uuid.New(), Title: "Price fairly", Content: "c", Category: "sales", CreatedAt: time.Now().UTC()},
	}))
	require.NoError(t, repo.Upsert(serviceCtx, []*entity.SellerTip{
		{ID: tipID, Title: "Water early", Content: "v2", Category: "irrigation", CreatedAt: time.Now().UTC()},
	}))

	readerCtx := policy.WithProfile(context.Background(), uuid.New())
	tips, err := repo.List(readerCtx, "irrigation")
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, "v2", tips[0].Content)

	all, err := repo.List(readerCtx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = repo.Upsert(readerCtx, []*entity.SellerTip{{ID: uuid.New(), Title: "x", Content: "y", Category: "z"}})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
