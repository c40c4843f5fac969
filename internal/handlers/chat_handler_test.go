package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/campusfind/backend/internal/chat"
	"github.com/campusfind/backend/internal/models"
	"github.com/campusfind/backend/internal/realtime"
)

type fakeMessageRepo struct{}

func (r *fakeMessageRepo) CreateMessage(context.Context, *models.ChatMessage) error {
	return nil
}

func (r *fakeMessageRepo) GetMessagesByItemID(context.Context, uint) ([]models.ChatMessage, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (r *fakeUserRepo) CreateUser(*models.User) error { return nil }
func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}
func (r *fakeUserRepo) GetUserByEmail(string) (*models.User, error)       { return nil, nil }
func (r *fakeUserRepo) GetUserByFirebaseUID(string) (*models.User, error) { return nil, nil }
func (r *fakeUserRepo) UpdateUser(*models.User) error                     { return nil }
func (r *fakeUserRepo) SearchUsers(string) ([]models.User, error)         { return nil, nil }

type fakeNotificationRepo struct {
	created []*models.Notification
}

func (r *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipientID(uint, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

func (r *fakeNotificationRepo) GetGrouped(uint) ([]models.Notification, []models.Notification, []models.Notification, []models.Notification, error) {
	return nil, nil, nil, nil, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(uint) (int64, error) { return 0, nil }
func (r *fakeNotificationRepo) MarkAsRead(uint, uint) error        { return nil }
func (r *fakeNotificationRepo) MarkAllAsRead(uint) error           { return nil }

func newTestChatHandler() (*ChatHandler, *fakeNotificationRepo) {
	users := &fakeUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Name: "Alice Johnson"},
	}}
	notifs := &fakeNotificationRepo{}
	service := chat.NewService(&fakeMessageRepo{}, users)
	return NewChatHandler(service, realtime.NewFeed(), notifs), notifs
}

func messageEvent(itemID, senderID uint, text string) realtime.Event {
	return realtime.Event{
		Op:    realtime.OpInsert,
		Table: realtime.TableMessages,
		New:   &models.ChatMessage{ItemID: itemID, SenderID: senderID, Message: text},
	}
}

func TestPushThreadEventFromOtherSender(t *testing.T) {
	h, notifs := newTestChatHandler()

	var sent []threadEvent
	h.pushThreadEvent(messageEvent(42, 7, "found your keys at the gym"), 9, func(ev threadEvent) {
		sent = append(sent, ev)
	})

	if len(sent) != 2 {
		t.Fatalf("expected message and notification events, got %d", len(sent))
	}
	if sent[0].Type != "message" {
		t.Errorf("expected first event type message, got %q", sent[0].Type)
	}
	if sent[0].Message.SenderName != "Alice Johnson" {
		t.Errorf("expected enriched sender name, got %q", sent[0].Message.SenderName)
	}
	if sent[1].Type != "notification" {
		t.Errorf("expected second event type notification, got %q", sent[1].Type)
	}
	wantDesc := "Alice Johnson: found your keys at the gym"
	if sent[1].Description != wantDesc {
		t.Errorf("expected description %q, got %q", wantDesc, sent[1].Description)
	}

	if len(notifs.created) != 1 {
		t.Fatalf("expected one persisted notification, got %d", len(notifs.created))
	}
	n := notifs.created[0]
	if n.Type != models.NotificationChatMessage {
		t.Errorf("expected type %q, got %q", models.NotificationChatMessage, n.Type)
	}
	if n.RecipientID != 9 {
		t.Errorf("expected recipient 9, got %d", n.RecipientID)
	}
	if n.ItemID != 42 {
		t.Errorf("expected item 42, got %d", n.ItemID)
	}
	if n.Message != wantDesc {
		t.Errorf("expected message %q, got %q", wantDesc, n.Message)
	}
}

func TestPushThreadEventFromViewerOwnMessage(t *testing.T) {
	h, notifs := newTestChatHandler()

	var sent []threadEvent
	h.pushThreadEvent(messageEvent(42, 7, "hello"), 7, func(ev threadEvent) {
		sent = append(sent, ev)
	})

	if len(sent) != 1 {
		t.Fatalf("expected only the message event, got %d", len(sent))
	}
	if sent[0].Type != "message" {
		t.Errorf("expected event type message, got %q", sent[0].Type)
	}
	if len(notifs.created) != 0 {
		t.Errorf("expected no persisted notification for own message, got %d", len(notifs.created))
	}
}

func TestPushThreadEventTruncatesLongPreview(t *testing.T) {
	h, notifs := newTestChatHandler()

	long := "this message is well over the preview limit and should be cut"
	var sent []threadEvent
	h.pushThreadEvent(messageEvent(42, 7, long), 9, func(ev threadEvent) {
		sent = append(sent, ev)
	})

	wantDesc := "Alice Johnson: " + chat.Preview(long)
	if len(sent) != 2 || sent[1].Description != wantDesc {
		t.Fatalf("expected truncated description %q, got %+v", wantDesc, sent)
	}
	if len(notifs.created) != 1 || notifs.created[0].Message != wantDesc {
		t.Fatalf("expected persisted notification with truncated preview, got %+v", notifs.created)
	}
}

func TestPushThreadEventIgnoresOtherPayloads(t *testing.T) {
	h, notifs := newTestChatHandler()

	var sent []threadEvent
	ev := realtime.Event{Op: realtime.OpInsert, Table: realtime.TableItems, New: &models.Item{ID: 1}}
	h.pushThreadEvent(ev, 9, func(e threadEvent) { sent = append(sent, e) })

	if len(sent) != 0 {
		t.Errorf("expected no events for a non-message payload, got %d", len(sent))
	}
	if len(notifs.created) != 0 {
		t.Errorf("expected no persisted notification, got %d", len(notifs.created))
	}
}
