package models

import "time"

// Notification types
const (
	NotificationNewItem        = "new_item"
	NotificationStatusChange   = "status_change"
	NotificationPotentialMatch = "potential_match"
	NotificationChatMessage    = "chat_message"
)

// Notification is the persisted copy of a realtime signal (PostgreSQL),
// so users who were offline still see what happened.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // new_item, status_change, potential_match, chat_message
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ItemID      uint      `json:"item_id" gorm:"index"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
