package model

import "time"

// NotificationType 互动类型
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationFollow  NotificationType = "follow"
	NotificationComment NotificationType = "comment"
)

// Notification 定向事件（from → to），只由互动操作产生
type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FromID    string           `json:"from_id" gorm:"type:varchar(36);index:idx_notification_from;not null"`
	ToID      string           `json:"to_id" gorm:"type:varchar(36);index:idx_notification_to;not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(16);not null"`
	Read      bool             `json:"read" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at"`

	From *User `json:"from,omitempty" gorm:"foreignKey:FromID"`
}

func (Notification) TableName() string { return "notifications" }
