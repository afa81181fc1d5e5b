// Package model holds the GORM-specific structs mapped to database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel is the GORM-specific struct for the 'profiles' table.
// Its ID is the identity ID assigned by the identity provider.
type ProfileModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;index"`
	FullName     string    `gorm:"type:varchar(255);not null;default:''"`
	BusinessName string    `gorm:"type:varchar(255);not null;default:''"`
	BusinessType string    `gorm:"type:varchar(100);not null;default:''"`
	Phone        string    `gorm:"type:varchar(50);not null;default:''"`
	AvatarURL    string    `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
