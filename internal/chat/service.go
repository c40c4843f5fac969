// Package chat implements per-item message threads: loading a thread with
// sender names resolved, validated sends, and the notice preview shown to
// other viewers when a message arrives.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/campusfind/backend/internal/models"
	"github.com/campusfind/backend/internal/repositories"
)

var (
	// ErrEmptyMessage is returned when the message body is empty or
	// whitespace-only; no insert is issued.
	ErrEmptyMessage = errors.New("message text is empty")
	// ErrNoSender is returned when there is no authenticated sender.
	ErrNoSender = errors.New("no authenticated sender")
)

// previewLimit caps the message preview embedded in notifications.
const previewLimit = 30

// Service provides thread operations over the message and user repositories.
type Service struct {
	messages repositories.MessageRepository
	users    repositories.UserRepository
}

// NewService creates a chat Service.
func NewService(messages repositories.MessageRepository, users repositories.UserRepository) *Service {
	return &Service{messages: messages, users: users}
}

// LoadThread returns all messages for an item ordered by creation time
// ascending, each enriched with the sender's display name.
func (s *Service) LoadThread(ctx context.Context, itemID uint) ([]models.ChatMessage, error) {
	messages, err := s.messages.GetMessagesByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string)
	for i := range messages {
		name, ok := names[messages[i].SenderID]
		if !ok {
			name = s.SenderName(messages[i].SenderID)
			names[messages[i].SenderID] = name
		}
		messages[i].SenderName = name
	}
	return messages, nil
}

// SendMessage validates and stores one message. The stored row is returned;
// rendering it in open threads is the change-feed subscription's job, the
// sender's own view included.
func (s *Service) SendMessage(ctx context.Context, itemID, senderID uint, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == 0 {
		return nil, ErrNoSender
	}

	msg := &models.ChatMessage{
		ItemID:   itemID,
		SenderID: senderID,
		Message:  text,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	msg.SenderName = s.SenderName(senderID)
	return msg, nil
}

// SenderName resolves a user's display name, falling back to "Unknown User"
// when the lookup fails.
func (s *Service) SenderName(userID uint) string {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		log.Printf("chat: resolving sender %d: %v", userID, err)
		return "Unknown User"
	}
	return user.Name
}

// Preview truncates a message body for notification text.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
