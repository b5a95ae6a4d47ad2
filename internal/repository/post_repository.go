package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

// FeedFilter Feed 基础谓词；四种 Feed 只有它不同
type FeedFilter func(*gorm.DB) *gorm.DB

// FeedAll 全量
func FeedAll() FeedFilter {
	return func(db *gorm.DB) *gorm.DB { return db }
}

// FeedByAuthor 某个作者
func FeedByAuthor(authorID string) FeedFilter {
	return func(db *gorm.DB) *gorm.DB { return db.Where("posts.author_id = ?", authorID) }
}

// FeedByAuthors 作者集合（following feed）
func FeedByAuthors(authorIDs []string) FeedFilter {
	return func(db *gorm.DB) *gorm.DB { return db.Where("posts.author_id IN ?", authorIDs) }
}

// FeedByIDs 帖子 id 集合（liked feed）
func FeedByIDs(postIDs []string) FeedFilter {
	return func(db *gorm.DB) *gorm.DB { return db.Where("posts.id IN ?", postIDs) }
}

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	// ListFeed 统一的 join/排序/投影，caller 只提供基础谓词
	ListFeed(ctx context.Context, filter FeedFilter) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// publicUser 连带加载用户时排除密码列
func publicUser(db *gorm.DB) *gorm.DB {
	return db.Select(model.PublicColumns())
}

func (r *postRepository) ListFeed(ctx context.Context, filter FeedFilter) ([]*model.Post, error) {
	res := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).
		Scopes(filter).
		Order("posts.created_at DESC, posts.id DESC").
		Preload("Author", publicUser).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.User", publicUser).
		Preload("Likes").
		Find(&res).Error
	return res, err
}
