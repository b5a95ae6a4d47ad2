package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

type NotificationRepository interface {
	ListForUser(ctx context.Context, userID string) ([]*model.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	ClearForUser(ctx context.Context, userID string) error
}

type notificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	res := make([]*model.Notification, 0)
	err := r.db.WithContext(ctx).
		Where("to_id = ?", userID).
		Order("created_at DESC, id DESC").
		Preload("From", publicUser).
		Find(&res).Error
	return res, err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("to_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (r *notificationRepository) ClearForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("to_id = ?", userID).
		Delete(&model.Notification{}).Error
}
