package usecase

import (
	"context"

	"agromart/internal/domain/entity"

	"github.com/google/uuid"
)

// IdentityCreatedInput describes an identity that has just been issued.
// Only ID and Email are required; the rest pre-fills the profile when the
// identity provider collected it at sign-up.
type IdentityCreatedInput struct {
	ID           uuid.UUID `json:"id" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	FullName     string    `json:"full_name,omitempty"`
	BusinessName string    `json:"business_name,omitempty"`
	BusinessType string    `json:"business_type,omitempty"`
	Phone        string    `json:"phone,omitempty"`
}

// ProvisioningUsecase creates the profile of a newly issued identity.
type ProvisioningUsecase interface {
	// ProvisionProfile inserts exactly one profile for the identity.
	// A second call for the same identity fails with ErrProfileAlreadyExists.
	ProvisionProfile(ctx context.Context, input IdentityCreatedInput) (*entity.Profile, error)
}
