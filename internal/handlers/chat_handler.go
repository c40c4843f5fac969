package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/campusfind/backend/internal/chat"
	"github.com/campusfind/backend/internal/models"
	"github.com/campusfind/backend/internal/realtime"
	"github.com/campusfind/backend/internal/repositories"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// ChatHandler handles per-item message threads: REST for loading and
// sending, websocket for the live thread subscription.
type ChatHandler struct {
	chatService   *chat.Service
	feed          *realtime.Feed
	notifications repositories.NotificationRepository
	upgrader      websocket.Upgrader
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *chat.Service, feed *realtime.Feed, notifRepo repositories.NotificationRepository) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		feed:          feed,
		notifications: notifRepo,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterChatRoutes registers thread routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/items/:id/messages", h.GetThread)
	g.POST("/items/:id/messages", h.SendMessage)
	g.GET("/items/:id/chat/ws", h.ThreadSocket)
}

// GetThread loads an item's full message thread, oldest first
func (h *ChatHandler) GetThread(c echo.Context) error {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}

	messages, err := h.chatService.LoadThread(c.Request().Context(), uint(itemID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load thread")
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messages, "count": len(messages)})
}

// SendMessage posts one message to an item's thread. The response carries
// the stored message, but open thread views render it via the subscription.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.chatService.SendMessage(c.Request().Context(), uint(itemID), currentUserID, req.Message)
	switch err {
	case nil:
	case chat.ErrEmptyMessage:
		return echo.NewHTTPError(http.StatusBadRequest, "Message text is empty")
	case chat.ErrNoSender:
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send message")
	}

	return c.JSON(http.StatusCreated, msg)
}

// threadEvent is the wire shape pushed to an open thread view.
type threadEvent struct {
	Type        string              `json:"type"` // "message" or "notification"
	Message     *models.ChatMessage `json:"message,omitempty"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
}

// pushThreadEvent renders one feed event for a viewer: the enriched message
// always, plus a notification (pushed and persisted) when someone else sent it.
func (h *ChatHandler) pushThreadEvent(ev realtime.Event, viewerID uint, send func(threadEvent)) {
	msg, ok := ev.New.(*models.ChatMessage)
	if !ok {
		return
	}
	enriched := *msg
	enriched.SenderName = h.chatService.SenderName(msg.SenderID)
	send(threadEvent{Type: "message", Message: &enriched})

	if msg.SenderID == viewerID {
		return
	}

	description := fmt.Sprintf("%s: %s", enriched.SenderName, chat.Preview(msg.Message))
	send(threadEvent{
		Type:        "notification",
		Title:       "New Message",
		Description: description,
	})
	err := h.notifications.CreateNotification(&models.Notification{
		Type:        models.NotificationChatMessage,
		RecipientID: viewerID,
		ItemID:      msg.ItemID,
		Title:       "New Message",
		Message:     description,
	})
	if err != nil {
		log.Printf("chat: persisting message notification for user %d: %v", viewerID, err)
	}
}

// ThreadSocket streams new messages for one item to an open thread view.
// One feed subscription per socket; it closes when the socket does.
func (h *ChatHandler) ThreadSocket(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	sub := h.feed.Subscribe(realtime.TableMessages, func(ev realtime.Event) bool {
		msg, ok := ev.New.(*models.ChatMessage)
		return ok && ev.Op == realtime.OpInsert && msg.ItemID == uint(itemID)
	})
	defer sub.Close()

	var writeMu sync.Mutex
	send := func(ev threadEvent) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(ev); err != nil {
			log.Printf("chat: writing to thread socket for item %d: %v", itemID, err)
		}
	}

	go func() {
		for ev := range sub.C {
			h.pushThreadEvent(ev, currentUserID, send)
		}
	}()

	// Block until the client goes away; the deferred Close tears the
	// subscription down and ends the pump above.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
