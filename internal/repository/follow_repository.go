package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

type FollowRepository interface {
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
	// FolloweeIDs 某用户关注的全部用户 id（following 侧）
	FolloweeIDs(ctx context.Context, followerID string) ([]string, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) FolloweeIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Order("created_at").
		Pluck("followee_id", &ids).Error
	return ids, err
}
