package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel is the GORM-specific struct for the 'notifications' table.
type NotificationModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Profile   *ProfileModel `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Title     string        `gorm:"type:varchar(255);not null"`
	Message   string        `gorm:"type:text;not null"`
	Type      string        `gorm:"type:varchar(50);not null;default:'system'"`
	IsRead    bool          `gorm:"not null;default:false;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}

// SellerTipModel is the GORM-specific struct for the 'seller_tips' table.
type SellerTipModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	Category  string    `gorm:"type:varchar(50);not null;default:'general';index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerTipModel) TableName() string {
	return "seller_tips"
}
