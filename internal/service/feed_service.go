package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
)

// FeedService 四种 Feed 共用同一套 join/排序/投影，只换基础谓词
type FeedService interface {
	All(ctx context.Context) ([]*model.Post, error)
	Following(ctx context.Context, actorID string) ([]*model.Post, error)
	ByUser(ctx context.Context, username string) ([]*model.Post, error)
	Liked(ctx context.Context, userID string) ([]*model.Post, error)
}

type feedService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	likeRepo   repository.LikeRepository
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository, followRepo repository.FollowRepository, likeRepo repository.LikeRepository) FeedService {
	return &feedService{postRepo: postRepo, userRepo: userRepo, followRepo: followRepo, likeRepo: likeRepo}
}

func (s *feedService) All(ctx context.Context) ([]*model.Post, error) {
	return s.postRepo.ListFeed(ctx, repository.FeedAll())
}

func (s *feedService) Following(ctx context.Context, actorID string) ([]*model.Post, error) {
	ok, err := s.userRepo.ExistsByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	followees, err := s.followRepo.FolloweeIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if len(followees) == 0 {
		return []*model.Post{}, nil
	}
	return s.postRepo.ListFeed(ctx, repository.FeedByAuthors(followees))
}

func (s *feedService) ByUser(ctx context.Context, username string) ([]*model.Post, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.postRepo.ListFeed(ctx, repository.FeedByAuthor(user.ID))
}

func (s *feedService) Liked(ctx context.Context, userID string) ([]*model.Post, error) {
	ok, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	likedIDs, err := s.likeRepo.LikedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(likedIDs) == 0 {
		return []*model.Post{}, nil
	}
	return s.postRepo.ListFeed(ctx, repository.FeedByIDs(likedIDs))
}
