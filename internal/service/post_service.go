package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/media"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
)

type PostService interface {
	// Create 文本与图片至少其一；图片先上传到远端图床再落库
	Create(ctx context.Context, actorID, text, image string) (*model.Post, error)
	// Delete 仅作者本人可删；连带清理评论/点赞/冗余表并异步销毁远端图片
	Delete(ctx context.Context, actorID, postID string) error
}

type postService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	storage  media.Storage
	purger   *MediaPurger
}

func NewPostService(db *gorm.DB, userRepo repository.UserRepository, postRepo repository.PostRepository, storage media.Storage, purger *MediaPurger) PostService {
	return &postService{db: db, userRepo: userRepo, postRepo: postRepo, storage: storage, purger: purger}
}

func (s *postService) Create(ctx context.Context, actorID, text, image string) (*model.Post, error) {
	ok, err := s.userRepo.ExistsByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	if text == "" && image == "" {
		return nil, ErrEmptyPost
	}

	imageURL := ""
	if image != "" {
		imageURL, err = s.storage.Upload(ctx, image)
		if err != nil {
			return nil, err
		}
	}

	post := &model.Post{ID: uuid.New().String(), AuthorID: actorID, Text: text, ImageURL: imageURL}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, actorID, postID string) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != actorID {
		return ErrNotPostOwner
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.LikedPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", postID).Error
	})
	if err != nil {
		return err
	}

	if post.ImageURL != "" {
		s.purger.Enqueue(post.ImageURL)
	}
	return nil
}
