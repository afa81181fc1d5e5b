package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification types created by the platform.
const (
	NotificationTypeOrderPlaced = "order_placed"
	NotificationTypeSystem      = "system"
)

// Notification is a message addressed to one profile.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
