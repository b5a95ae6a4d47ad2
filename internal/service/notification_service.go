package service

import (
	"context"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
)

type NotificationService interface {
	// List 最新在前，带触发者公开资料；读取即视为已读
	List(ctx context.Context, userID string) ([]*model.Notification, error)
	Clear(ctx context.Context, userID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]*model.Notification, error) {
	items, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *notificationService) Clear(ctx context.Context, userID string) error {
	return s.repo.ClearForUser(ctx, userID)
}
