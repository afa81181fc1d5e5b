package repository

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/errors"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is missing or hidden from the caller.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// List returns newest first.
	List(ctx context.Context, profileID uuid.UUID, unreadOnly bool, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error)
}
