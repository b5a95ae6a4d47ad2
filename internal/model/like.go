package model

import "time"

// Like 点赞关系（post 侧）
type Like struct {
	ID        string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);index:idx_like_post;index:idx_like_pair,unique;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;index:idx_like_pair,unique"`
	CreatedAt time.Time `json:"-"`
}

func (Like) TableName() string { return "likes" }

// LikedPost 点赞关系（user 侧）冗余自 Like
type LikedPost struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"type:varchar(36);index:idx_liked_user;index:idx_liked_pair,unique;not null"`
	PostID    string    `gorm:"type:varchar(36);not null;index:idx_liked_pair,unique"`
	CreatedAt time.Time
}

func (LikedPost) TableName() string { return "liked_posts" }
