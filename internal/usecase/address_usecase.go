package usecase

import (
	"context"

	"agromart/internal/domain/entity"

	"github.com/google/uuid"
)

// AddressInput is the full set of address fields.
type AddressInput struct {
	Line1      string `json:"line1" validate:"required,max=255"`
	Line2      string `json:"line2,omitempty" validate:"max=255"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state,omitempty" validate:"max=100"`
	PostalCode string `json:"postal_code,omitempty" validate:"max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	IsDefault  bool   `json:"is_default"`
}

// AddressUsecase manages a profile's shipping addresses.
// Setting an address as default clears the flag on the others.
type AddressUsecase interface {
	CreateAddress(ctx context.Context, profileID uuid.UUID, input *AddressInput) (*entity.Address, error)
	ListAddresses(ctx context.Context, profileID uuid.UUID) ([]*entity.Address, error)
	UpdateAddress(ctx context.Context, profileID, addressID uuid.UUID, input *AddressInput) (*entity.Address, error)
	DeleteAddress(ctx context.Context, profileID, addressID uuid.UUID) error
}
