// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/repository"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetProfile retrieves the caller's profile.
func (srv *profileService) GetProfile(ctx context.Context, profileID uuid.UUID) (*entity.Profile, error) {
	srv.logger.Debug("Getting profile", "profileID", profileID)

	var profile *entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProfileRepo().FindByID(ctx, profileID)
		if err != nil {
			return translateRepoError(err, repository.ErrProfileNotFound, domainerrors.ErrProfileNotFound, "failed to find profile")
		}
		profile = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return profile, nil
}

// UpdateProfile updates the mutable profile fields.
func (srv *profileService) UpdateProfile(ctx context.Context, profileID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Profile, error) {
	srv.logger.Info("Updating profile", "profileID", profileID)

	var profile *entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		// 1. Find the profile
		found, err := profileRepo.FindByID(ctx, profileID)
		if err != nil {
			return translateRepoError(err, repository.ErrProfileNotFound, domainerrors.ErrProfileNotFound, "failed to find profile")
		}

		// 2. Apply the changes
		if input.FullName != nil {
			found.FullName = *input.FullName
		}
		if input.BusinessName != nil {
			found.BusinessName = *input.BusinessName
		}
		if input.BusinessType != nil {
			found.BusinessType = *input.BusinessType
		}
		if input.Phone != nil {
			found.Phone = *input.Phone
		}
		if input.AvatarURL != nil {
			found.AvatarURL = *input.AvatarURL
		}
		found.UpdatedAt = time.Now().UTC()

		// 3. Save
		if err := profileRepo.Update(ctx, found); err != nil {
			return translateRepoError(err, repository.ErrProfileNotFound, domainerrors.ErrProfileNotFound, "failed to update profile")
		}
		profile = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return profile, nil
}

// DeleteProfile removes the profile. Addresses, products, orders, todos,
// metrics, daily sales and notifications go with it.
func (srv *profileService) DeleteProfile(ctx context.Context, profileID uuid.UUID) error {
	srv.logger.Info("Deleting profile", "profileID", profileID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProfileRepo().Delete(ctx, profileID); err != nil {
			return translateRepoError(err, repository.ErrProfileNotFound, domainerrors.ErrProfileNotFound, "failed to delete profile")
		}

		return nil
	})

	if err != nil {
		srv.logger.Error("failed to delete profile", "profileID", profileID, "error", err)

		return errors.Wrap(err, "failed to delete profile")
	}

	return nil
}
