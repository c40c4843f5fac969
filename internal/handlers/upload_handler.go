package handlers

import (
	"net/http"
	"strings"

	"github.com/campusfind/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// maxUploadSize caps image uploads at 5MB.
const maxUploadSize = 5 * 1024 * 1024

// UploadHandler stores item images and avatars in object storage
type UploadHandler struct {
	uploader *storage.Uploader
}

// NewUploadHandler creates a new UploadHandler. uploader may be nil when
// object storage is not configured; uploads then answer 503.
func NewUploadHandler(uploader *storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads/item-image", h.UploadItemImage)
	g.POST("/uploads/avatar", h.UploadAvatar)
}

// UploadItemImage stores one item photo and returns its public URL
func (h *UploadHandler) UploadItemImage(c echo.Context) error {
	return h.upload(c, "item-images")
}

// UploadAvatar stores a profile picture and returns its public URL
func (h *UploadHandler) UploadAvatar(c echo.Context) error {
	return h.upload(c, "avatars")
}

func (h *UploadHandler) upload(c echo.Context, folder string) error {
	if h.uploader == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Object storage is not configured")
	}

	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}
	if fileHeader.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File exceeds 5MB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only image uploads are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read file")
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request().Context(), folder, fileHeader.Filename, contentType, file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
