package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM-specific struct for the 'addresses' table.
type AddressModel struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ProfileID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	Profile    *ProfileModel `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Line1      string        `gorm:"type:varchar(255);not null"`
	Line2      string        `gorm:"type:varchar(255);not null;default:''"`
	City       string        `gorm:"type:varchar(100);not null"`
	State      string        `gorm:"type:varchar(100);not null;default:''"`
	PostalCode string        `gorm:"type:varchar(20);not null;default:''"`
	Country    string        `gorm:"type:varchar(100);not null"`
	IsDefault  bool          `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
