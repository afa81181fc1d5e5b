// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"agromart/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, profileID uuid.UUID) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, profileID uuid.UUID, input *UpdateProfileInput) (*entity.Profile, error)
	// DeleteProfile removes the profile and everything it owns. Service role only.
	DeleteProfile(ctx context.Context, profileID uuid.UUID) error
}

// --- Input DTOs ---

// UpdateProfileInput holds the profile fields a user may change. Nil fields are left untouched.
type UpdateProfileInput struct {
	FullName     *string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,max=200"`
	BusinessType *string `json:"business_type,omitempty" validate:"omitempty,max=100"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	AvatarURL    *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}
