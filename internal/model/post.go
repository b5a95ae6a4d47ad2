package model

import "time"

// Post 内容主体；创建时 Text / ImageURL 至少一个非空
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index:idx_post_author;not null"`
	Text      string    `json:"text" gorm:"type:text"`
	ImageURL  string    `json:"image_url" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_post_created"`
	UpdatedAt time.Time `json:"updated_at"`

	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments" gorm:"foreignKey:PostID"`
	Likes    []Like    `json:"likes" gorm:"foreignKey:PostID"`
}

func (Post) TableName() string { return "posts" }
