// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
//
// Every method is subject to the ownership policy of the caller carried in ctx:
// rows the caller may not see behave as missing.
package repository

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for profile persistence.
var (
	// ErrProfileNotFound is returned when a profile is missing or hidden from the caller.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists is returned when a profile with the same ID or email already exists.
	ErrProfileExists = errors.New("profile already exists")
)

// ProfileRepository defines profile persistence.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	// Update writes the mutable profile fields. ID and email never change.
	Update(ctx context.Context, profile *entity.Profile) error
	// Delete removes the profile and, through cascading keys, everything it owns.
	Delete(ctx context.Context, id uuid.UUID) error
}
