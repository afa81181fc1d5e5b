package entity

import (
	"time"

	"github.com/google/uuid"
)

// SellerTip is read-only educational content visible to every signed-in user.
type SellerTip struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
