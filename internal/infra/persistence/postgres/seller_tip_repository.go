package postgres

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/domain/repository"
	"agromart/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sellerTipRepository implements the repository.SellerTipRepository interface.
type sellerTipRepository struct {
	db *gorm.DB
}

// NewSellerTipRepository is the constructor for sellerTipRepository.
func NewSellerTipRepository(db *gorm.DB) repository.SellerTipRepository {
	return &sellerTipRepository{db: db}
}

func (repo *sellerTipRepository) List(ctx context.Context, category string) ([]*entity.SellerTip, error) {
	query := repo.db.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var tipModels []*model.SellerTipModel
	if err := query.Order("title ASC").Find(&tipModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list seller tips")
	}

	tips := make([]*entity.SellerTip, 0, len(tipModels))
	for _, data := range tipModels {
		tips = append(tips, &entity.SellerTip{
			ID:        data.ID,
			Title:     data.Title,
			Content:   data.Content,
			Category:  data.Category,
			CreatedAt: data.CreatedAt,
		})
	}

	return tips, nil
}

func (repo *sellerTipRepository) Upsert(ctx context.Context, tips []*entity.SellerTip) error {
	if len(tips) == 0 {
		return nil
	}

	tipModels := make([]*model.SellerTipModel, 0, len(tips))
	for _, tip := range tips {
		tipModels = append(tipModels, &model.SellerTipModel{
			ID:        tip.ID,
			Title:     tip.Title,
			Content:   tip.Content,
			Category:  tip.Category,
			CreatedAt: tip.CreatedAt,
		})
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "content", "category"}),
		}).
		Create(&tipModels).Error
	if err != nil {
		return translateWriteError(err, "failed to upsert seller tips")
	}

	return nil
}
