package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/cacheindex"
	"github.com/d60-Lab/social-feed/internal/media"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

const (
	suggestedLimit = 4
	// 先随机取一批候选，再剔除自己和已关注的
	suggestedSamplePool = 10

	minPasswordLen = 6
)

// Profile 公开资料 + 两侧邻接（follows / fans 两张表各取一侧）
type Profile struct {
	model.User
	Followers []string `json:"followers"`
	Following []string `json:"following"`
}

// UpdateProfileInput 局部更新：空字段保持原值
type UpdateProfileInput struct {
	FullName        string
	Email           string
	Username        string
	Bio             string
	Link            string
	CurrentPassword string
	NewPassword     string
	ProfileImg      string
	CoverImg        string
}

type UserService interface {
	Profile(ctx context.Context, username string) (*Profile, error)
	// Suggested 最多 4 个随机推荐，排除自己和已关注用户
	Suggested(ctx context.Context, actorID string) ([]*model.User, error)
	Update(ctx context.Context, actorID string, in UpdateProfileInput) (*model.User, error)
	// Delete 删号并显式清理所有引用该用户的行
	Delete(ctx context.Context, actorID string) error
}

type userService struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	fanRepo    repository.FanRepository
	index      *cacheindex.UserIndex // 可为 nil（无 redis 时走 DB 随机采样）
	storage    media.Storage
	purger     *MediaPurger
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository, followRepo repository.FollowRepository, fanRepo repository.FanRepository, index *cacheindex.UserIndex, storage media.Storage, purger *MediaPurger) UserService {
	return &userService{db: db, userRepo: userRepo, followRepo: followRepo, fanRepo: fanRepo, index: index, storage: storage, purger: purger}
}

func (s *userService) Profile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	followers, err := s.fanRepo.FanIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.FolloweeIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return &Profile{User: *user, Followers: followers, Following: following}, nil
}

func (s *userService) Suggested(ctx context.Context, actorID string) ([]*model.User, error) {
	var candidates []*model.User
	if s.index != nil {
		ids, err := s.index.SampleIDs(ctx, suggestedSamplePool)
		if err != nil {
			logger.Warn("user index sample failed, falling back to db", zap.Error(err))
		} else if len(ids) > 0 {
			candidates, err = s.userRepo.ListPublicByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
		}
	}
	if candidates == nil {
		var err error
		candidates, err = s.userRepo.RandomSample(ctx, actorID, suggestedSamplePool)
		if err != nil {
			return nil, err
		}
	}

	followees, err := s.followRepo.FolloweeIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	followed := make(map[string]struct{}, len(followees))
	for _, id := range followees {
		followed[id] = struct{}{}
	}

	suggested := make([]*model.User, 0, suggestedLimit)
	for _, u := range candidates {
		if u.ID == actorID {
			continue
		}
		if _, ok := followed[u.ID]; ok {
			continue
		}
		u.Password = ""
		suggested = append(suggested, u)
		if len(suggested) == suggestedLimit {
			break
		}
	}
	return suggested, nil
}

func (s *userService) Update(ctx context.Context, actorID string, in UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 改密码必须同时给当前密码和新密码
	if (in.CurrentPassword == "") != (in.NewPassword == "") {
		return nil, ErrPasswordPair
	}
	if in.CurrentPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
			return nil, ErrPasswordMismatch
		}
		if len(in.NewPassword) < minPasswordLen {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	// 新图片：旧远端资源异步销毁，新图上传后替换引用
	if in.ProfileImg != "" {
		s.purger.Enqueue(user.ProfileImg)
		url, err := s.storage.Upload(ctx, in.ProfileImg)
		if err != nil {
			return nil, err
		}
		user.ProfileImg = url
	}
	if in.CoverImg != "" {
		s.purger.Enqueue(user.CoverImg)
		url, err := s.storage.Upload(ctx, in.CoverImg)
		if err != nil {
			return nil, err
		}
		user.CoverImg = url
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.Link != "" {
		user.Link = in.Link
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actorID string) error {
	user, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// 先取本人帖子的 id 和图片，事务提交后再异步销毁远端资源
	var posts []model.Post
	if err := s.db.WithContext(ctx).Select("id", "image_url").Where("author_id = ?", actorID).Find(&posts).Error; err != nil {
		return err
	}
	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.LikedPost{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", actorID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", actorID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", actorID).Delete(&model.LikedPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", actorID, actorID).Delete(&model.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR fan_id = ?", actorID, actorID).Delete(&model.Fan{}).Error; err != nil {
			return err
		}
		if err := tx.Where("from_id = ? OR to_id = ?", actorID, actorID).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", actorID).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, "id = ?", actorID).Error
	})
	if err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.Remove(ctx, actorID); err != nil {
			logger.Warn("user index remove failed", zap.String("user", actorID), zap.Error(err))
		}
	}
	for _, p := range posts {
		s.purger.Enqueue(p.ImageURL)
	}
	s.purger.Enqueue(user.ProfileImg)
	s.purger.Enqueue(user.CoverImg)
	return nil
}
