package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

type FanRepository interface {
	// FanIDs 某用户的全部粉丝 id（followers 侧，来自冗余表）
	FanIDs(ctx context.Context, userID string) ([]string, error)
}

type fanRepository struct{ db *gorm.DB }

func NewFanRepository(db *gorm.DB) FanRepository { return &fanRepository{db: db} }

func (r *fanRepository) FanIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Fan{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("fan_id", &ids).Error
	return ids, err
}
