package model

import "time"

// User 账号主体；Password 永不序列化
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username   string    `json:"username" gorm:"type:varchar(64);uniqueIndex;not null"`
	Email      string    `json:"email" gorm:"type:varchar(128);uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"type:varchar(128);not null"`
	FullName   string    `json:"full_name" gorm:"type:varchar(128)"`
	Bio        string    `json:"bio" gorm:"type:text"`
	Link       string    `json:"link" gorm:"type:varchar(255)"`
	ProfileImg string    `json:"profile_img" gorm:"type:varchar(255)"`
	CoverImg   string    `json:"cover_img" gorm:"type:varchar(255)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// PublicColumns 对外投影的列（排除密码）
func PublicColumns() []string {
	return []string{"id", "username", "email", "full_name", "bio", "link", "profile_img", "cover_img", "created_at", "updated_at"}
}
