package impl

import (
	"context"
	"log/slog"
	"strings"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/repository"
	"agromart/internal/domain/service"
	"agromart/internal/usecase"

	"github.com/pkg/errors"
)

// tipService implements the TipUsecase interface.
type tipService struct {
	txManager repository.TransactionManager
	source    service.TipSource
	logger    *slog.Logger
}

// NewTipService is the constructor for tipService. source may be nil when no catalog is configured.
func NewTipService(
	txManager repository.TransactionManager,
	source service.TipSource,
	logger *slog.Logger,
) usecase.TipUsecase {
	return &tipService{
		txManager: txManager,
		source:    source,
		logger:    logger,
	}
}

func (srv *tipService) ListTips(ctx context.Context, category string) ([]*entity.SellerTip, error) {
	var tips []*entity.SellerTip

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.SellerTipRepo().List(ctx, strings.ToLower(strings.TrimSpace(category)))
		if err != nil {
			return err
		}
		tips = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller tips")
	}

	return tips, nil
}

// ImportTips replaces catalog entries with the ones found in the source.
// Tips missing from the source are kept.
func (srv *tipService) ImportTips(ctx context.Context) (int, error) {
	if srv.source == nil {
		return 0, errors.Wrap(domainerrors.ErrTipCatalogUnavailable, "no tip source configured")
	}

	tips, err := srv.source.Load(ctx)
	if err != nil {
		return 0, errors.Wrap(domainerrors.ErrTipCatalogUnavailable, err.Error())
	}
	if len(tips) == 0 {
		return 0, nil
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SellerTipRepo().Upsert(ctx, tips)
	})

	if err != nil {
		return 0, errors.Wrap(err, "failed to import seller tips")
	}

	srv.logger.Info("Seller tips imported", "count", len(tips))

	return len(tips), nil
}
