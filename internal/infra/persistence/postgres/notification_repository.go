package postgres

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/domain/repository"
	"agromart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notificationM := &model.NotificationModel{
		ID:        notification.ID,
		ProfileID: notification.ProfileID,
		Title:     notification.Title,
		Message:   notification.Message,
		Type:      notification.Type,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(notificationM).Error; err != nil {
		return translateWriteError(err, "failed to create notification")
	}

	notification.CreatedAt = notificationM.CreatedAt

	return nil
}

func (repo *notificationRepository) List(ctx context.Context, profileID uuid.UUID, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	query := repo.db.WithContext(ctx).Where("profile_id = ?", profileID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notificationModels []*model.NotificationModel
	if err := query.Order("created_at DESC").Find(&notificationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for _, data := range notificationModels {
		notifications = append(notifications, &entity.Notification{
			ID:        data.ID,
			ProfileID: data.ProfileID,
			Title:     data.Title,
			Message:   data.Message,
			Type:      data.Type,
			IsRead:    data.IsRead,
			CreatedAt: data.CreatedAt,
		})
	}

	return notifications, nil
}

func (repo *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to mark notification read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

func (repo *notificationRepository) MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("profile_id = ? AND is_read = ?", profileID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, translateWriteError(result.Error, "failed to mark notifications read")
	}

	return result.RowsAffected, nil
}
