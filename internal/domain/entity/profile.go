// Package entity contains the core business objects of the marketplace.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the account record of one identity, seller or customer.
// Its ID is the identity ID issued by the identity subsystem.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	BusinessName string    `json:"business_name"`
	BusinessType string    `json:"business_type"`
	Phone        string    `json:"phone"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
