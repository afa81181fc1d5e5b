package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/repository"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// provisioningService implements the ProvisioningUsecase interface.
type provisioningService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
	now       func() time.Time
}

// NewProvisioningService is the constructor for provisioningService.
func NewProvisioningService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProvisioningUsecase {
	return &provisioningService{
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// ProvisionProfile creates the profile row of a new identity.
// It runs with the service role since profiles cannot be inserted by their owners.
func (srv *provisioningService) ProvisionProfile(ctx context.Context, input usecase.IdentityCreatedInput) (*entity.Profile, error) {
	email := strings.TrimSpace(input.Email)
	if input.ID == uuid.Nil || email == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "identity id and email are required")
	}

	now := srv.now().UTC()
	profile := &entity.Profile{
		ID:           input.ID,
		Email:        email,
		FullName:     input.FullName,
		BusinessName: input.BusinessName,
		BusinessType: input.BusinessType,
		Phone:        input.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	serviceCtx := policy.AsService(ctx)
	err := srv.txManager.Execute(serviceCtx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProfileRepo().Create(serviceCtx, profile); err != nil {
			return translateRepoError(err, repository.ErrProfileExists, domainerrors.ErrProfileAlreadyExists, "failed to create profile")
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Profile provisioning failed", "identityID", input.ID, "error", err)

		return nil, errors.Wrap(err, "failed to provision profile")
	}

	srv.logger.Info("Profile provisioned", "identityID", input.ID)

	return profile, nil
}
