package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is one message in an item's thread, stored in MongoDB.
// Messages are immutable once created and ordered by creation time.
type ChatMessage struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ItemID     uint               `json:"item_id" bson:"item_id"`
	SenderID   uint               `json:"sender_id" bson:"sender_id"`
	SenderName string             `json:"sender_name,omitempty" bson:"-"` // enriched from users, never stored
	Message    string             `json:"message" bson:"message"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// SendMessageRequest defines the request body for posting to a thread
type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}
