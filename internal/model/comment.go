package model

import "time"

// Comment 帖子评论，追加写，按 (created_at, id) 排序
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);index:idx_comment_post;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index:idx_comment_user;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Comment) TableName() string { return "comments" }
