package model

import (
	"time"

	"github.com/google/uuid"
)

// TodoModel is the GORM-specific struct for the 'todos' table.
type TodoModel struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	Profile     *ProfileModel `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Title       string        `gorm:"type:varchar(255);not null"`
	Description string        `gorm:"type:text;not null;default:''"`
	Completed   bool          `gorm:"not null;default:false"`
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TodoModel) TableName() string {
	return "todos"
}
