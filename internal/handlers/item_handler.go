package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campusfind/backend/internal/models"
	"github.com/campusfind/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ItemHandler handles HTTP requests related to lost/found item reports
type ItemHandler struct {
	itemRepository repositories.ItemRepository
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemRepo repositories.ItemRepository) *ItemHandler {
	return &ItemHandler{itemRepository: itemRepo}
}

// RegisterItemRoutes registers item-related routes
func (h *ItemHandler) RegisterItemRoutes(g *echo.Group) {
	g.GET("/items", h.GetItems)
	g.GET("/items/:id", h.GetItem)
	g.POST("/items", h.CreateItem)
	g.PUT("/items/:id", h.UpdateItem)
	g.PUT("/items/:id/status", h.UpdateItemStatus)
}

// GetItems lists items, newest first, with optional filters
func (h *ItemHandler) GetItems(c echo.Context) error {
	filter := models.ItemFilter{
		Status:   models.ItemStatus(c.QueryParam("status")),
		Category: models.ItemCategory(c.QueryParam("category")),
		Location: c.QueryParam("location"),
		Query:    c.QueryParam("q"),
	}

	items, err := h.itemRepository.GetItems(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// GetItem returns one item with its reporter
func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}

	item, err := h.itemRepository.GetItemByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}

// CreateItem reports a new lost or found item
func (h *ItemHandler) CreateItem(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected RFC 3339")
	}

	item := &models.Item{
		Title:        req.Title,
		Description:  req.Description,
		Category:     models.ItemCategory(req.Category),
		Status:       models.ItemStatus(req.Status),
		Images:       req.Images,
		Location:     req.Location,
		Department:   req.Department,
		Date:         date,
		ReportedByID: currentUserID,
	}

	if err := h.itemRepository.CreateItem(item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem edits an existing report. Only the reporter may edit.
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}

	var req models.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.itemRepository.GetItemByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if item.ReportedByID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the reporter can edit this item")
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Category != "" {
		item.Category = models.ItemCategory(req.Category)
	}
	if req.Images != nil {
		item.Images = req.Images
	}
	if req.Location != "" {
		item.Location = req.Location
	}
	if req.Department != "" {
		item.Department = req.Department
	}

	if err := h.itemRepository.UpdateItem(item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItemStatus transitions an item's status: lost items get claimed,
// found items get resolved. Only the reporter may transition.
func (h *ItemHandler) UpdateItemStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}

	var req models.UpdateItemStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.itemRepository.GetItemByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if item.ReportedByID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the reporter can update this item")
	}

	next := models.ItemStatus(req.Status)
	if !item.Status.CanTransitionTo(next) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status transition")
	}

	item.Status = next
	if err := h.itemRepository.UpdateItem(item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}
