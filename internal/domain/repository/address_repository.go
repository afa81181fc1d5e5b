package repository

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/errors"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address is missing or hidden from the caller.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines address persistence.
type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)
	// ListByProfile returns the default address first, then oldest first.
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Address, error)
	Update(ctx context.Context, address *entity.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ClearDefault unsets the default flag on every address of the profile except keepID.
	ClearDefault(ctx context.Context, profileID, keepID uuid.UUID) error
}
