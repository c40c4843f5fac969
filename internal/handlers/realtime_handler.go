package handlers

import (
	"log"
	"net/http"
	"sync"

	"github.com/campusfind/backend/internal/realtime"
	"github.com/campusfind/backend/internal/repositories"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// RealtimeHandler owns the item-changes websocket: one session per
// connection translating feed events into pushed notices.
type RealtimeHandler struct {
	userRepository repositories.UserRepository
	feed           *realtime.Feed
	matcher        realtime.Matcher
	sink           realtime.NotificationSink
	upgrader       websocket.Upgrader
}

// NewRealtimeHandler creates a new RealtimeHandler
func NewRealtimeHandler(userRepo repositories.UserRepository, feed *realtime.Feed, matcher realtime.Matcher, sink realtime.NotificationSink) *RealtimeHandler {
	return &RealtimeHandler{
		userRepository: userRepo,
		feed:           feed,
		matcher:        matcher,
		sink:           sink,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRealtimeRoutes registers the realtime websocket route
func (h *RealtimeHandler) RegisterRealtimeRoutes(g *echo.Group) {
	g.GET("/realtime/ws", h.ItemFeedSocket)
}

// clientMessage is what connected clients may send: currently only an
// acknowledgement that resets the unseen-item counter.
type clientMessage struct {
	Type string `json:"type"`
}

// ItemFeedSocket subscribes the signed-in user to item-table changes for
// the lifetime of the connection. No reconnect logic: a dropped connection
// stops delivering until the client reconnects.
func (h *RealtimeHandler) ItemFeedSocket(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	var writeMu sync.Mutex
	push := func(n realtime.Notice) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(n); err != nil {
			log.Printf("realtime: writing notice to user %d: %v", user.ID, err)
		}
	}

	session := realtime.NewSession(user, h.feed, h.matcher, h.sink, push)
	session.Subscribe()
	defer session.Close()

	go func() {
		for ev := range session.Events() {
			session.Handle(ev)
		}
	}()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return nil
		}
		if msg.Type == "ack" {
			session.Ack()
			push(realtime.Notice{Type: "ack", UnseenCount: 0})
		}
	}
}
