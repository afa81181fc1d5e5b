package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/repository"
	"agromart/internal/domain/service"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListNotifications returns the newest notifications of the profile.
func (s *notificationService) ListNotifications(ctx context.Context, profileID uuid.UUID, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	var notifications []*entity.Notification

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NotificationRepo().List(ctx, profileID, unreadOnly, pageSize(limit))
		if err != nil {
			return err
		}
		notifications = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NotificationRepo().MarkRead(ctx, notificationID); err != nil {
			return translateRepoError(err, repository.ErrNotificationNotFound, domainerrors.ErrNotificationNotFound, "failed to mark notification read")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var updated int64

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		count, err := repoFactory.NotificationRepo().MarkAllRead(ctx, profileID)
		if err != nil {
			return err
		}
		updated = count

		return nil
	})

	if err != nil {
		return 0, errors.Wrap(err, "failed to mark notifications read")
	}

	return updated, nil
}

// NotifyOrderPlaced stores an in-app notification for the seller of a new order.
func (s *notificationService) NotifyOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) (*entity.Notification, error) {
	if event == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "order placed event is empty")
	}
	sellerID, err := uuid.Parse(event.SellerID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid seller id")
	}

	notification := &entity.Notification{
		ID:        uuid.New(),
		ProfileID: sellerID,
		Title:     "新訂單",
		Message:   fmt.Sprintf("%s 下了訂單 %s，金額 %s", event.CustomerName, event.OrderNumber, event.TotalAmount.StringFixed(2)),
		Type:      entity.NotificationTypeOrderPlaced,
		CreatedAt: time.Now().UTC(),
	}

	err = s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NotificationRepo().Create(ctx, notification)
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create order notification")
	}

	s.logger.Debug("Order notification created", "sellerID", sellerID, "orderNumber", event.OrderNumber)

	return notification, nil
}
