package usecase

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/domain/service"

	"github.com/google/uuid"
)

// NotificationUsecase defines the interface for in-app notifications.
type NotificationUsecase interface {
	ListNotifications(ctx context.Context, profileID uuid.UUID, unreadOnly bool, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error)
	// NotifyOrderPlaced tells the seller about a new order. Service role only.
	NotifyOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) (*entity.Notification, error)
}
