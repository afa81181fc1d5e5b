package impl

import (
	"bytes"
	"testing"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestProductService_CreateListUpdate(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, ctx := f.seller(t)

	inactive := false
	seeds, err := f.products.CreateProduct(ctx, sellerID, &usecase.CreateProductInput{
		Name: "Basil seeds", Price: decimal.RequireFromString("2.40"), StockQuantity: 30, Category: entity.ProductCategorySeeds,
	})
	require.NoError(t, err)
	assert.True(t, seeds.IsActive)

	_, err = f.products.CreateProduct(ctx, sellerID, &usecase.CreateProductInput{
		Name: "Old sprayer", Price: decimal.NewFromInt(80), Category: entity.ProductCategoryEquipment, IsActive: &inactive,
	})
	require.NoError(t, err)

	all, err := f.products.ListProducts(ctx, sellerID, usecase.ListProductsInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := f.products.ListProducts(ctx, sellerID, usecase.ListProductsInput{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, seeds.ID, active[0].ID)

	category := entity.ProductCategoryEquipment
	equipment, err := f.products.ListProducts(ctx, sellerID, usecase.ListProductsInput{Category: &category})
	require.NoError(t, err)
	require.Len(t, equipment, 1)

	stock := 12
	updated, err := f.products.UpdateProduct(ctx, seeds.ID, &usecase.UpdateProductInput{StockQuantity: &stock})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.StockQuantity)
}

func TestProductService_Validation(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, ctx := f.seller(t)

	_, err := f.products.CreateProduct(ctx, sellerID, &usecase.CreateProductInput{
		Name: "Goat", Price: decimal.NewFromInt(1), Category: "Livestock",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProductCategory)

	_, err = f.products.CreateProduct(ctx, sellerID, &usecase.CreateProductInput{
		Name: "Rake", Price: decimal.NewFromInt(-1), Category: entity.ProductCategoryTools,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	rake, err := f.products.CreateProduct(ctx, sellerID, &usecase.CreateProductInput{
		Name: "Rake", Price: decimal.NewFromInt(9), Category: entity.ProductCategoryTools,
	})
	require.NoError(t, err)

	negative := -3
	_, err = f.products.UpdateProduct(ctx, rake.ID, &usecase.UpdateProductInput{StockQuantity: &negative})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	bad := entity.ProductCategory("Livestock")
	_, err = f.products.ListProducts(ctx, sellerID, usecase.ListProductsInput{Category: &bad})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProductCategory)
}

func TestProductService_GenerateProductQR(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, ctx := f.seller(t)
	_, otherCtx := f.seller(t)

	product, err := f.products.CreateProduct(ctx, sellerID, &usecase.CreateProductInput{
		Name: "Pruning shears", Price: decimal.NewFromInt(25), Category: entity.ProductCategoryTools,
	})
	require.NoError(t, err)

	png, err := f.products.GenerateProductQR(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	_, err = f.products.GenerateProductQR(otherCtx, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	_, err = f.products.GenerateProductQR(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
