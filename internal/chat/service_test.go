package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/campusfind/backend/internal/models"
)

type fakeMessageRepo struct {
	created  []models.ChatMessage
	messages []models.ChatMessage
	loadErr  error
}

func (r *fakeMessageRepo) CreateMessage(_ context.Context, msg *models.ChatMessage) error {
	msg.CreatedAt = time.Now()
	r.created = append(r.created, *msg)
	return nil
}

func (r *fakeMessageRepo) GetMessagesByItemID(_ context.Context, itemID uint) ([]models.ChatMessage, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.messages, nil
}

type fakeUserRepo struct {
	users   map[uint]*models.User
	lookups int
}

func (r *fakeUserRepo) CreateUser(*models.User) error { return nil }
func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.lookups++
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("record not found")
}
func (r *fakeUserRepo) GetUserByEmail(string) (*models.User, error)       { return nil, errors.New("record not found") }
func (r *fakeUserRepo) GetUserByFirebaseUID(string) (*models.User, error) { return nil, errors.New("record not found") }
func (r *fakeUserRepo) UpdateUser(*models.User) error                     { return nil }
func (r *fakeUserRepo) SearchUsers(string) ([]models.User, error)         { return nil, nil }

func newTestService() (*Service, *fakeMessageRepo, *fakeUserRepo) {
	messages := &fakeMessageRepo{}
	users := &fakeUserRepo{users: map[uint]*models.User{
		1: {ID: 1, Name: "Asha"},
		2: {ID: 2, Name: "Ben"},
	}}
	return NewService(messages, users), messages, users
}

func TestSendMessageRejectsEmptyBody(t *testing.T) {
	service, messages, _ := newTestService()

	for _, body := range []string{"", "   ", "\t\n  "} {
		_, err := service.SendMessage(context.Background(), 10, 1, body)
		if err != ErrEmptyMessage {
			t.Errorf("body %q: expected ErrEmptyMessage, got %v", body, err)
		}
	}
	if len(messages.created) != 0 {
		t.Errorf("expected no insert for empty bodies, got %d", len(messages.created))
	}
}

func TestSendMessageRequiresSender(t *testing.T) {
	service, messages, _ := newTestService()

	_, err := service.SendMessage(context.Background(), 10, 0, "hello")
	if err != ErrNoSender {
		t.Errorf("expected ErrNoSender, got %v", err)
	}
	if len(messages.created) != 0 {
		t.Errorf("expected no insert without a sender, got %d", len(messages.created))
	}
}

func TestSendMessageTrimsAndStores(t *testing.T) {
	service, messages, _ := newTestService()

	msg, err := service.SendMessage(context.Background(), 10, 1, "  hello there  ")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg.Message != "hello there" {
		t.Errorf("expected trimmed body, got %q", msg.Message)
	}
	if msg.SenderName != "Asha" {
		t.Errorf("expected sender name resolved, got %q", msg.SenderName)
	}
	if len(messages.created) != 1 {
		t.Errorf("expected 1 insert, got %d", len(messages.created))
	}
}

func TestLoadThreadEnrichesSenderNames(t *testing.T) {
	service, messages, users := newTestService()
	messages.messages = []models.ChatMessage{
		{ItemID: 10, SenderID: 1, Message: "Is this your phone?"},
		{ItemID: 10, SenderID: 2, Message: "Yes! Where did you find it?"},
		{ItemID: 10, SenderID: 1, Message: "Central Library Annex"},
	}

	thread, err := service.LoadThread(context.Background(), 10)
	if err != nil {
		t.Fatalf("LoadThread: %v", err)
	}
	if len(thread) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(thread))
	}
	wantNames := []string{"Asha", "Ben", "Asha"}
	for i, want := range wantNames {
		if thread[i].SenderName != want {
			t.Errorf("message %d: expected sender %q, got %q", i, want, thread[i].SenderName)
		}
	}
	// Names are cached per load: two distinct senders, two lookups.
	if users.lookups != 2 {
		t.Errorf("expected 2 user lookups, got %d", users.lookups)
	}
}

func TestLoadThreadUnknownSenderFallsBack(t *testing.T) {
	service, messages, _ := newTestService()
	messages.messages = []models.ChatMessage{
		{ItemID: 10, SenderID: 999, Message: "hi"},
	}

	thread, err := service.LoadThread(context.Background(), 10)
	if err != nil {
		t.Fatalf("LoadThread: %v", err)
	}
	if thread[0].SenderName != "Unknown User" {
		t.Errorf("expected fallback sender name, got %q", thread[0].SenderName)
	}
}

func TestLoadThreadPropagatesQueryError(t *testing.T) {
	service, messages, _ := newTestService()
	messages.loadErr = errors.New("no reachable servers")

	if _, err := service.LoadThread(context.Background(), 10); err == nil {
		t.Error("expected error from failed thread load")
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "hello", "hello"},
		{"exactly thirty", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"truncated", strings.Repeat("a", 31), strings.Repeat("a", 30) + "..."},
		{"multibyte", strings.Repeat("ß", 40), strings.Repeat("ß", 30) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.in); got != tt.want {
				t.Errorf("Preview(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
