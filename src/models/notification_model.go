package models

import (
	"time"
)

// Notification rows are created in bulk when a post arrives through the
// public API; only IsRead is ever mutated afterwards.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	PostID    uint      `json:"post_id" gorm:"not null"`
	Message   string    `json:"message" gorm:"type:varchar(500);not null"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID"`
}

type NotificationDto struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	PostID    uint      `json:"post_id"`
}
