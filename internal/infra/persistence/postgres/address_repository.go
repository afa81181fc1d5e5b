package postgres

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/domain/repository"
	"agromart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// addressRepository implements the repository.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

// Create persists a new address for a profile.
func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(addressM).Error; err != nil {
		return translateWriteError(err, "failed to create address")
	}

	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// FindByID retrieves an address by its unique ID.
func (repo *addressRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&addressM).Error; err != nil {
		return nil, translateReadError(err, repository.ErrAddressNotFound, "failed to find address by ID")
	}

	return toAddressDomain(&addressM), nil
}

// ListByProfile retrieves all addresses of a profile, default first.
func (repo *addressRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Address, error) {
	var addressModels []*model.AddressModel
	err := repo.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("is_default DESC").
		Order("created_at ASC").
		Find(&addressModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses by profile")
	}

	addresses := make([]*entity.Address, 0, len(addressModels))
	for _, addressM := range addressModels {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// Update updates an existing address record.
func (repo *addressRepository) Update(ctx context.Context, address *entity.Address) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("id = ?", address.ID).
		Updates(map[string]any{
			"line1":       address.Line1,
			"line2":       address.Line2,
			"city":        address.City,
			"state":       address.State,
			"postal_code": address.PostalCode,
			"country":     address.Country,
			"is_default":  address.IsDefault,
			"updated_at":  address.UpdatedAt,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// Delete removes an address by its ID.
func (repo *addressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AddressModel{})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// ClearDefault unsets the default flag on the profile's other addresses.
func (repo *addressRepository) ClearDefault(ctx context.Context, profileID, keepID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("profile_id = ? AND id <> ? AND is_default = ?", profileID, keepID, true).
		Update("is_default", false).Error
	if err != nil {
		return translateWriteError(err, "failed to clear default address")
	}

	return nil
}

// --- Mapper Functions ---

func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:         data.ID,
		ProfileID:  data.ProfileID,
		Line1:      data.Line1,
		Line2:      data.Line2,
		City:       data.City,
		State:      data.State,
		PostalCode: data.PostalCode,
		Country:    data.Country,
		IsDefault:  data.IsDefault,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:         data.ID,
		ProfileID:  data.ProfileID,
		Line1:      data.Line1,
		Line2:      data.Line2,
		City:       data.City,
		State:      data.State,
		PostalCode: data.PostalCode,
		Country:    data.Country,
		IsDefault:  data.IsDefault,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
