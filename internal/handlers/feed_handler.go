package handlers

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/photoshare-app/backend/internal/services"
)

// FeedHandler handles home feed reads
type FeedHandler struct {
	photos *services.PhotoService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(photos *services.PhotoService) *FeedHandler {
	return &FeedHandler{photos: photos}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns a page of the current user's materialized home feed. The
// read is a lookup over pre-fanned-out entries, not a scan of followed users.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	offset, limit := pageParams(c)
	views, total, err := h.photos.Feed(c.Request().Context(), currentUserID, offset, limit)
	if err != nil {
		return respondError(c, err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	page := offset/limit + 1

	return c.JSON(http.StatusOK, echo.Map{
		"photos": views,
		"meta": echo.Map{
			"currentPage":  page,
			"totalPages":   totalPages,
			"totalItems":   total,
			"itemsPerPage": limit,
		},
	})
}
