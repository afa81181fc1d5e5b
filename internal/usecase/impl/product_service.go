package impl

import (
	"context"
	"log/slog"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/repository"
	"agromart/internal/domain/service"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager repository.TransactionManager
	qrService service.QRCodeService
	logger    *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(
	txManager repository.TransactionManager,
	qrService service.QRCodeService,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		txManager: txManager,
		qrService: qrService,
		logger:    logger,
	}
}

// CreateProduct lists a new product for the seller. Products are active unless stated otherwise.
func (srv *productService) CreateProduct(ctx context.Context, sellerID uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateProductFields(input.Category, input.Price.IsNegative(), input.StockQuantity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:            uuid.New(),
		SellerID:      sellerID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		Category:      input.Category,
		IsActive:      true,
		IsFeatured:    input.IsFeatured,
		ImageURL:      input.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.logger.Info("Product created", "sellerID", sellerID, "productID", product.ID)

	return product, nil
}

// GetProduct retrieves one product visible to the caller.
func (srv *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			return translateRepoError(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound, "failed to find product")
		}
		product = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// ListProducts returns the seller's products, newest first.
func (srv *productService) ListProducts(ctx context.Context, sellerID uuid.UUID, input usecase.ListProductsInput) ([]*entity.Product, error) {
	if input.Category != nil && !input.Category.Valid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidProductCategory, string(*input.Category))
	}

	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().List(ctx, repository.ProductFilter{
			SellerID:   sellerID,
			Category:   input.Category,
			ActiveOnly: input.ActiveOnly,
			Limit:      pageSize(input.Limit),
			Offset:     max(input.Offset, 0),
		})
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		products = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// UpdateProduct changes the given product fields.
func (srv *productService) UpdateProduct(ctx context.Context, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		// 1. Find the product
		found, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			return translateRepoError(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound, "failed to find product")
		}

		// 2. Apply the changes
		if input.Name != nil {
			found.Name = *input.Name
		}
		if input.Description != nil {
			found.Description = *input.Description
		}
		if input.Price != nil {
			found.Price = *input.Price
		}
		if input.StockQuantity != nil {
			found.StockQuantity = *input.StockQuantity
		}
		if input.Category != nil {
			found.Category = *input.Category
		}
		if input.IsActive != nil {
			found.IsActive = *input.IsActive
		}
		if input.IsFeatured != nil {
			found.IsFeatured = *input.IsFeatured
		}
		if input.ImageURL != nil {
			found.ImageURL = *input.ImageURL
		}
		if err := validateProductFields(found.Category, found.Price.IsNegative(), found.StockQuantity); err != nil {
			return err
		}
		found.UpdatedAt = time.Now().UTC()

		// 3. Save
		if err := productRepo.Update(ctx, found); err != nil {
			return translateRepoError(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound, "failed to update product")
		}
		product = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product. Order lines that referenced it keep their snapshot.
func (srv *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().Delete(ctx, productID); err != nil {
			return translateRepoError(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound, "failed to delete product")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	srv.logger.Info("Product deleted", "productID", productID)

	return nil
}

// GenerateProductQR renders the share QR code of a product the caller can see.
func (srv *productService) GenerateProductQR(ctx context.Context, productID uuid.UUID) ([]byte, error) {
	if _, err := srv.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateProductQR(productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate product QR code")
	}

	return png, nil
}

func validateProductFields(category entity.ProductCategory, negativePrice bool, stock int) error {
	if !category.Valid() {
		return errors.Wrap(domainerrors.ErrInvalidProductCategory, string(category))
	}
	if negativePrice {
		return errors.Wrap(domainerrors.ErrValidationFailed, "price must not be negative")
	}
	if stock < 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "stock quantity must not be negative")
	}

	return nil
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}

	return min(limit, maxPageSize)
}
