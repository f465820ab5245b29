package models

import "time"

// Notification represents a user notification (PostgreSQL)
//
// One row per dedup key: (recipient, type) for NEW_FOLLOWER, (recipient,
// type, related_id) otherwise. Repeat events merge into the existing row
// instead of creating new ones.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Type        string    `json:"type" gorm:"size:30;index"` // NEW_FOLLOWER, NEW_POST_LIKE, NEW_POST_COMMENT, NEW_COMMENT_LIKE
	ActorID     uint      `json:"actor_id" gorm:"index"`     // most recent actor
	RelatedID   string    `json:"related_id"`                // recipe ID, comment ID, or follower's user ID
	Message     string    `json:"message"`
	ImageURL    string    `json:"image_url"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"` // set once at creation
	UpdatedAt   time.Time `json:"updated_at"`              // refreshed on every merge, drives the cooldown
}
