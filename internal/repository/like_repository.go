package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

type LikeRepository interface {
	Exists(ctx context.Context, postID, userID string) (bool, error)
	// LikerIDs 给某帖子点过赞的用户 id（post 侧）
	LikerIDs(ctx context.Context, postID string) ([]string, error)
	// LikedPostIDs 某用户点赞过的帖子 id（user 侧冗余表）
	LikedPostIDs(ctx context.Context, userID string) ([]string, error)
}

type likeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *likeRepository) LikerIDs(ctx context.Context, postID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("post_id = ?", postID).
		Order("created_at").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *likeRepository) LikedPostIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.LikedPost{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("post_id", &ids).Error
	return ids, err
}
