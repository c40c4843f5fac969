package repositories

import (
	"testing"

	"github.com/campusfind/backend/internal/models"
)

func seedNotification(t *testing.T, repo NotificationRepository, recipientID uint) *models.Notification {
	t.Helper()
	n := &models.Notification{
		Type:        models.NotificationNewItem,
		RecipientID: recipientID,
		ItemID:      1,
		Title:       "New Found Item",
		Message:     "Water Bottle was reported found",
	}
	if err := repo.CreateNotification(n); err != nil {
		t.Fatalf("creating notification: %v", err)
	}
	return n
}

func TestMarkAsReadScopedToRecipient(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	n := seedNotification(t, repo, 1)

	// Another user marking this ID must not touch it
	if err := repo.MarkAsRead(n.ID, 2); err != nil {
		t.Fatalf("MarkAsRead as other user: %v", err)
	}
	count, err := repo.GetUnreadCount(1)
	if err != nil {
		t.Fatalf("GetUnreadCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected notification to stay unread, count = %d", count)
	}

	if err := repo.MarkAsRead(n.ID, 1); err != nil {
		t.Fatalf("MarkAsRead as recipient: %v", err)
	}
	count, err = repo.GetUnreadCount(1)
	if err != nil {
		t.Fatalf("GetUnreadCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected notification read, count = %d", count)
	}
}

func TestMarkAllAsReadLeavesOtherRecipients(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	seedNotification(t, repo, 1)
	seedNotification(t, repo, 1)
	seedNotification(t, repo, 2)

	if err := repo.MarkAllAsRead(1); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}

	count, err := repo.GetUnreadCount(1)
	if err != nil {
		t.Fatalf("GetUnreadCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no unread for recipient 1, got %d", count)
	}

	count, err = repo.GetUnreadCount(2)
	if err != nil {
		t.Fatalf("GetUnreadCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected recipient 2 untouched, got %d", count)
	}
}
