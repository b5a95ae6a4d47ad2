package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	Save(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ListPublicByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	// RandomSample 随机取最多 limit 个用户（排除 excludeID），密码列不查
	RandomSample(ctx context.Context, excludeID string, limit int) ([]*model.User, error)
	AllIDs(ctx context.Context) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) Save(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) ListPublicByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var res []*model.User
	err := r.db.WithContext(ctx).
		Select(model.PublicColumns()).
		Where("id IN ?", ids).
		Find(&res).Error
	return res, err
}

func (r *userRepository) RandomSample(ctx context.Context, excludeID string, limit int) ([]*model.User, error) {
	var res []*model.User
	// RANDOM() 在 sqlite / postgres 下都可用
	err := r.db.WithContext(ctx).
		Select(model.PublicColumns()).
		Where("id <> ?", excludeID).
		Order("RANDOM()").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *userRepository) AllIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.User{}).Pluck("id", &ids).Error
	return ids, err
}
