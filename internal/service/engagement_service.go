package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
)

// EngagementService 点赞 / 评论 / 关注，每个动作都是一次两侧关系的切换。
// 同一动作内的两张表（Like+LikedPost、Follow+Fan）在一个事务里落地，
// 不留半写状态
type EngagementService interface {
	// LikeUnlike 切换点赞，返回切换后的点赞者 id 集合
	LikeUnlike(ctx context.Context, actorID, postID string) ([]string, error)
	// Comment 追加评论，返回带评论的帖子
	Comment(ctx context.Context, actorID, postID, text string) (*model.Post, error)
	// FollowUnfollow 切换关注，返回切换后是否处于关注状态
	FollowUnfollow(ctx context.Context, actorID, targetID string) (bool, error)
}

type engagementService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
	notify   config.NotifyConfig
}

func NewEngagementService(db *gorm.DB, userRepo repository.UserRepository, postRepo repository.PostRepository, likeRepo repository.LikeRepository, notify config.NotifyConfig) EngagementService {
	return &engagementService{db: db, userRepo: userRepo, postRepo: postRepo, likeRepo: likeRepo, notify: notify}
}

func (s *engagementService) LikeUnlike(ctx context.Context, actorID, postID string) ([]string, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if liked {
			if err := tx.Where("post_id = ? AND user_id = ?", postID, actorID).Delete(&model.Like{}).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ? AND post_id = ?", actorID, postID).Delete(&model.LikedPost{}).Error
		}
		// 幂等：重复点赞不报错
		like := &model.Like{ID: uuid.New().String(), PostID: postID, UserID: actorID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		mirror := &model.LikedPost{ID: uuid.New().String(), UserID: actorID, PostID: postID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(mirror).Error; err != nil {
			return err
		}
		if s.notify.Like {
			n := &model.Notification{ID: uuid.New().String(), FromID: actorID, ToID: post.AuthorID, Type: model.NotificationLike}
			return tx.Create(n).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.likeRepo.LikerIDs(ctx, postID)
}

func (s *engagementService) Comment(ctx context.Context, actorID, postID, text string) (*model.Post, error) {
	if text == "" {
		return nil, ErrEmptyComment
	}
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c := &model.Comment{ID: uuid.New().String(), PostID: postID, UserID: actorID, Text: text}
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if s.notify.Comment {
			n := &model.Notification{ID: uuid.New().String(), FromID: actorID, ToID: post.AuthorID, Type: model.NotificationComment}
			return tx.Create(n).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListFeed(ctx, repository.FeedByIDs([]string{postID}))
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrPostNotFound
	}
	return posts[0], nil
}

func (s *engagementService) FollowUnfollow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, ErrFollowSelf
	}
	for _, id := range []string{actorID, targetID} {
		ok, err := s.userRepo.ExistsByID(ctx, id)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, ErrUserNotFound
		}
	}

	var following bool
	err := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Select("count(*) > 0").
		Where("follower_id = ? AND followee_id = ?", actorID, targetID).
		Find(&following).Error
	if err != nil {
		return false, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if following {
			if err := tx.Where("follower_id = ? AND followee_id = ?", actorID, targetID).Delete(&model.Follow{}).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ? AND fan_id = ?", targetID, actorID).Delete(&model.Fan{}).Error
		}
		f := &model.Follow{ID: uuid.New().String(), FollowerID: actorID, FolloweeID: targetID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error; err != nil {
			return err
		}
		fan := &model.Fan{ID: uuid.New().String(), UserID: targetID, FanID: actorID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(fan).Error; err != nil {
			return err
		}
		if s.notify.Follow {
			n := &model.Notification{ID: uuid.New().String(), FromID: actorID, ToID: targetID, Type: model.NotificationFollow}
			return tx.Create(n).Error
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return !following, nil
}
