package realtime

import (
	"fmt"
	"log"
	"sync"

	"github.com/campusfind/backend/internal/models"
)

// State is the subscription lifecycle of a session.
type State int

const (
	StateUnsubscribed State = iota
	StateSubscribing
	StateSubscribed
)

// Matcher recomputes match candidates for a user. Implemented by
// matching.Engine; failures degrade to an empty list inside the engine.
type Matcher interface {
	FindMatches(userID uint) []models.Item
}

// NotificationSink persists a copy of each pushed signal.
type NotificationSink interface {
	CreateNotification(n *models.Notification) error
}

// Notice is one user-facing signal pushed over the session's transport.
type Notice struct {
	Type        string            `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	ItemID      uint              `json:"item_id,omitempty"`
	Status      models.ItemStatus `json:"status,omitempty"`
	UnseenCount int               `json:"unseen_count"`
	Matches     []models.Item     `json:"matches,omitempty"`
}

// Session tracks one signed-in user's live view of item changes: it owns a
// single feed subscription, a counter of unseen new items, and the
// translation of row events into notices. The owning transport calls Handle
// for each event in delivery order, so no internal reordering happens.
type Session struct {
	user    *models.User
	feed    *Feed
	matcher Matcher
	sink    NotificationSink
	push    func(Notice)

	mu     sync.Mutex
	sub    *Subscription
	state  State
	unseen int
}

// NewSession creates a session in the Unsubscribed state. push delivers
// notices to the user; sink and matcher may not be nil.
func NewSession(user *models.User, feed *Feed, matcher Matcher, sink NotificationSink, push func(Notice)) *Session {
	return &Session{
		user:    user,
		feed:    feed,
		matcher: matcher,
		sink:    sink,
		push:    push,
	}
}

// Subscribe opens the item-table subscription and resets the unseen counter.
func (s *Session) Subscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnsubscribed {
		return
	}
	s.state = StateSubscribing
	s.sub = s.feed.Subscribe(TableItems, nil)
	s.unseen = 0
	s.state = StateSubscribed
}

// Events exposes the subscription channel. Subscribe must have been called.
func (s *Session) Events() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub == nil {
		return nil
	}
	return s.sub.C
}

// Close tears the subscription down and returns the session to Unsubscribed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
	s.state = StateUnsubscribed
}

// State returns the current subscription state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Unseen returns the count of new items not yet acknowledged.
func (s *Session) Unseen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unseen
}

// Ack resets the unseen counter, e.g. when the user opens the items view.
func (s *Session) Ack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unseen = 0
}

// Handle translates one item-table event into notices. Inserts by other
// users bump the unseen counter; status changes on the user's own items
// produce a notice without touching the counter. Everything else is ignored.
func (s *Session) Handle(ev Event) {
	switch ev.Op {
	case OpInsert:
		item, ok := ev.New.(*models.Item)
		if !ok || item.ReportedByID == s.user.ID {
			return
		}
		s.mu.Lock()
		s.unseen++
		unseen := s.unseen
		s.mu.Unlock()
		s.emit(Notice{
			Type:        models.NotificationNewItem,
			Title:       fmt.Sprintf("New %s Item Reported", item.Status),
			Description: fmt.Sprintf("Someone reported a %s %s", item.Status, item.Title),
			ItemID:      item.ID,
			Status:      item.Status,
			UnseenCount: unseen,
		})
		if item.Status == models.ItemStatusFound {
			s.emit(Notice{
				Type:        models.NotificationPotentialMatch,
				Title:       "New Potential Match",
				Description: fmt.Sprintf("A %s was found at %s", item.Category, item.Location),
				ItemID:      item.ID,
				Status:      item.Status,
				UnseenCount: unseen,
				Matches:     s.matcher.FindMatches(s.user.ID),
			})
		}
	case OpUpdate:
		newItem, ok := ev.New.(*models.Item)
		if !ok || newItem.ReportedByID != s.user.ID {
			return
		}
		oldItem, ok := ev.Old.(*models.Item)
		if !ok || oldItem.Status == newItem.Status {
			return
		}
		s.emit(Notice{
			Type:        models.NotificationStatusChange,
			Title:       "Item Status Updated",
			Description: fmt.Sprintf("Your item %q status changed to %s", newItem.Title, newItem.Status),
			ItemID:      newItem.ID,
			Status:      newItem.Status,
			UnseenCount: s.Unseen(),
		})
	}
}

func (s *Session) emit(n Notice) {
	s.push(n)
	err := s.sink.CreateNotification(&models.Notification{
		Type:        n.Type,
		RecipientID: s.user.ID,
		ItemID:      n.ItemID,
		Title:       n.Title,
		Message:     n.Description,
	})
	if err != nil {
		log.Printf("realtime: persisting %s notification for user %d: %v", n.Type, s.user.ID, err)
	}
}
