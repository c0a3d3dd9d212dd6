package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/photoshare-app/backend/internal/errs"
	"github.com/photoshare-app/backend/internal/models"
	"github.com/photoshare-app/backend/internal/search"
	"github.com/photoshare-app/backend/internal/services"
	"github.com/photoshare-app/backend/pkg/storage"
)

// PhotoHandler handles photo upload, deletion, reads, likes and photo search
type PhotoHandler struct {
	photos *services.PhotoService
	images storage.ImageStore
	index  search.Index
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photos *services.PhotoService, images storage.ImageStore, index search.Index) *PhotoHandler {
	return &PhotoHandler{photos: photos, images: images, index: index}
}

// RegisterPhotoRoutes registers photo-related routes
func (h *PhotoHandler) RegisterPhotoRoutes(g *echo.Group) {
	g.POST("/photos", h.UploadPhoto)
	g.GET("/photos", h.ExplorePhotos)
	g.GET("/photos/:id", h.GetPhoto)
	g.DELETE("/photos/:id", h.DeletePhoto)
	g.PUT("/photos/:id/like", h.UpdateLike)
	g.GET("/users/:id/photos", h.ListUserPhotos)
	g.GET("/photos/search", h.SearchPhotos)
	g.GET("/tags/top", h.TopTags)
}

// UploadPhoto accepts a multipart image upload plus metadata, stores the bytes
// and publishes the photo.
func (h *PhotoHandler) UploadPhoto(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return respondError(c, errs.ErrPhotoNotFound)
	}
	src, err := file.Open()
	if err != nil {
		return respondError(c, errs.ErrSaveFile)
	}
	defer src.Close()

	url, err := h.images.Upload(src, file.Filename, "images")
	if err != nil {
		return respondError(c, errs.ErrSaveFile)
	}

	ratio, _ := strconv.ParseFloat(c.FormValue("ratio"), 64)
	var tags []string
	if raw := c.FormValue("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	photo, err := h.photos.Publish(c.Request().Context(), currentUserID, services.PublishParams{
		URL:         url,
		Ratio:       ratio,
		Description: c.FormValue("description"),
		Location:    c.FormValue("location"),
		Tags:        tags,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, photo)
}

// GetPhoto returns one photo with its aggregate view
func (h *PhotoHandler) GetPhoto(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid photo ID")
	}

	view, err := h.photos.View(c.Request().Context(), uint(id), getUserIDFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeletePhoto deletes the current user's photo
func (h *PhotoHandler) DeletePhoto(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid photo ID")
	}

	photo, err := h.photos.Delete(c.Request().Context(), currentUserID, uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, photo)
}

// UpdateLike toggles the current user's like on a photo
func (h *PhotoHandler) UpdateLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid photo ID")
	}

	var req models.UpdateLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	photo, err := h.photos.SetLike(c.Request().Context(), currentUserID, uint(id), req.Like)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": req.Like, "photo_id": photo.ID})
}

// ListUserPhotos returns a page of a user's photos
func (h *PhotoHandler) ListUserPhotos(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	offset, limit := pageParams(c)

	views, err := h.photos.ListByUser(c.Request().Context(), uint(id), getUserIDFromContext(c), offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"photos": views})
}

// ExplorePhotos returns a page of the newest photos across all users
func (h *PhotoHandler) ExplorePhotos(c echo.Context) error {
	offset, limit := pageParams(c)

	views, err := h.photos.Explore(c.Request().Context(), getUserIDFromContext(c), offset, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"photos": views})
}

// SearchPhotos queries the photo search mirror
func (h *PhotoHandler) SearchPhotos(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing query")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	docs, err := h.index.SearchPhotos(c.Request().Context(), query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"photos": docs})
}

// TopTags returns the most used tags, optionally filtered by prefix
func (h *PhotoHandler) TopTags(c echo.Context) error {
	topN, _ := strconv.Atoi(c.QueryParam("top_n"))
	if topN < 1 || topN > 50 {
		topN = 5
	}

	tags, err := h.photos.TopTags(c.Request().Context(), c.QueryParam("text"), topN)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}

func pageParams(c echo.Context) (offset, limit int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return (page - 1) * limit, limit
}
