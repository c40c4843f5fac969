package handlers

import (
	"net/http"

	"github.com/campusfind/backend/internal/matching"
	"github.com/labstack/echo/v4"
)

// MatchHandler exposes the matching engine over HTTP
type MatchHandler struct {
	engine *matching.Engine
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(engine *matching.Engine) *MatchHandler {
	return &MatchHandler{engine: engine}
}

// RegisterMatchRoutes registers match routes
func (h *MatchHandler) RegisterMatchRoutes(g *echo.Group) {
	g.GET("/matches", h.GetMatches)
}

// GetMatches returns candidate found items for the user's lost items.
// The engine degrades to an empty list on query failure, so this never 500s.
func (h *MatchHandler) GetMatches(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	matches := h.engine.FindMatches(currentUserID)
	return c.JSON(http.StatusOK, echo.Map{"matches": matches, "count": len(matches)})
}
