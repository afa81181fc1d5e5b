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

// addressService implements the AddressUsecase interface.
type addressService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.AddressUsecase {
	return &addressService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateAddress adds an address. The first address of a profile becomes its default.
func (srv *addressService) CreateAddress(ctx context.Context, profileID uuid.UUID, input *usecase.AddressInput) (*entity.Address, error) {
	now := time.Now().UTC()
	address := &entity.Address{
		ID:        uuid.New(),
		ProfileID: profileID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyAddressInput(address, input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		existing, err := addressRepo.ListByProfile(ctx, profileID)
		if err != nil {
			return errors.Wrap(err, "failed to list addresses")
		}
		if len(existing) == 0 {
			address.IsDefault = true
		}

		if err := addressRepo.Create(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create address")
		}
		if address.IsDefault {
			if err := addressRepo.ClearDefault(ctx, profileID, address.ID); err != nil {
				return errors.Wrap(err, "failed to clear previous default address")
			}
		}

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create address")
	}

	srv.logger.Debug("Address created", "profileID", profileID, "addressID", address.ID)

	return address, nil
}

// ListAddresses returns the profile's addresses, default first.
func (srv *addressService) ListAddresses(ctx context.Context, profileID uuid.UUID) ([]*entity.Address, error) {
	var addresses []*entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AddressRepo().ListByProfile(ctx, profileID)
		if err != nil {
			return errors.Wrap(err, "failed to list addresses")
		}
		addresses = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	return addresses, nil
}

// UpdateAddress replaces every address field.
func (srv *addressService) UpdateAddress(ctx context.Context, profileID, addressID uuid.UUID, input *usecase.AddressInput) (*entity.Address, error) {
	var address *entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		found, err := addressRepo.FindByID(ctx, addressID)
		if err != nil {
			return translateRepoError(err, repository.ErrAddressNotFound, domainerrors.ErrAddressNotFound, "failed to find address")
		}
		if found.ProfileID != profileID {
			return errors.Wrap(domainerrors.ErrAddressNotFound, "address belongs to another profile")
		}

		applyAddressInput(found, input)
		found.UpdatedAt = time.Now().UTC()

		if err := addressRepo.Update(ctx, found); err != nil {
			return translateRepoError(err, repository.ErrAddressNotFound, domainerrors.ErrAddressNotFound, "failed to update address")
		}
		if found.IsDefault {
			if err := addressRepo.ClearDefault(ctx, profileID, found.ID); err != nil {
				return errors.Wrap(err, "failed to clear previous default address")
			}
		}
		address = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to update address")
	}

	return address, nil
}

// DeleteAddress removes an address. Orders shipped to it keep their row with no address.
func (srv *addressService) DeleteAddress(ctx context.Context, profileID, addressID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		found, err := addressRepo.FindByID(ctx, addressID)
		if err != nil {
			return translateRepoError(err, repository.ErrAddressNotFound, domainerrors.ErrAddressNotFound, "failed to find address")
		}
		if found.ProfileID != profileID {
			return errors.Wrap(domainerrors.ErrAddressNotFound, "address belongs to another profile")
		}

		if err := addressRepo.Delete(ctx, addressID); err != nil {
			return translateRepoError(err, repository.ErrAddressNotFound, domainerrors.ErrAddressNotFound, "failed to delete address")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to delete address")
	}

	return nil
}

// applyAddressInput copies input onto address. A default address stays
// default until another one takes over.
func applyAddressInput(address *entity.Address, input *usecase.AddressInput) {
	address.Line1 = input.Line1
	address.Line2 = input.Line2
	address.City = input.City
	address.State = input.State
	address.PostalCode = input.PostalCode
	address.Country = input.Country
	address.IsDefault = address.IsDefault || input.IsDefault
}
