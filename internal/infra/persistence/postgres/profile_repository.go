package postgres

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/domain/repository"
	"agromart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// profileRepository implements the repository.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Create inserts a new profile row.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)
	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		// The primary key is the only unique key on profiles.
		if isUniqueConstraintViolation(err) {
			return repository.ErrProfileExists
		}

		return translateWriteError(err, "failed to create profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByID retrieves a profile by its ID.
func (repo *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&profileM).Error; err != nil {
		return nil, translateReadError(err, repository.ErrProfileNotFound, "failed to find profile by ID")
	}

	return toProfileDomain(&profileM), nil
}

// Update writes the mutable profile fields.
func (repo *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"full_name":     profile.FullName,
			"business_name": profile.BusinessName,
			"business_type": profile.BusinessType,
			"phone":         profile.Phone,
			"avatar_url":    profile.AvatarURL,
			"updated_at":    profile.UpdatedAt,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// Delete removes a profile. Owned rows are removed by cascading foreign keys.
func (repo *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProfileModel{})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		ID:           data.ID,
		Email:        data.Email,
		FullName:     data.FullName,
		BusinessName: data.BusinessName,
		BusinessType: data.BusinessType,
		Phone:        data.Phone,
		AvatarURL:    data.AvatarURL,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfileModel{
		ID:           data.ID,
		Email:        data.Email,
		FullName:     data.FullName,
		BusinessName: data.BusinessName,
		BusinessType: data.BusinessType,
		Phone:        data.Phone,
		AvatarURL:    data.AvatarURL,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
