package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/photoshare-app/backend/internal/errs"
	"github.com/photoshare-app/backend/internal/models"
	"github.com/photoshare-app/backend/internal/search"
	"github.com/photoshare-app/backend/internal/services"
	"github.com/photoshare-app/backend/pkg/storage"
)

// UserHandler handles profile reads and updates plus user search
type UserHandler struct {
	users   *services.UserService
	follows *services.FollowService
	index   search.Index
	images  storage.ImageStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService, follows *services.FollowService, index search.Index, images storage.ImageStore) *UserHandler {
	return &UserHandler{users: users, follows: follows, index: index, images: images}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/profile/avatar", h.UploadAvatar)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// ProfileResponse is a user together with the aggregate view of their graph
// membership.
type ProfileResponse struct {
	models.UserCompact
	Description    string `json:"description"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	IsFollowing    bool   `json:"is_following"`
}

// GetProfile returns a user's profile with follower/following counts
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.users.Get(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}

	followers, following, err := h.follows.Counts(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isFollowing := false
	if viewerID := getUserIDFromContext(c); viewerID != 0 && viewerID != user.ID {
		isFollowing, err = h.follows.IsFollowing(c.Request().Context(), viewerID, user.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, ProfileResponse{
		UserCompact:    user.ToCompact(),
		Description:    user.Description,
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	})
}

// UpdateProfile updates the authenticated user's display fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), currentUserID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UploadAvatar stores a new avatar image for the authenticated user
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing avatar file")
	}
	src, err := file.Open()
	if err != nil {
		return respondError(c, errs.ErrSaveFile)
	}
	defer src.Close()

	url, err := h.images.Upload(src, file.Filename, "avatar")
	if err != nil {
		return respondError(c, errs.ErrSaveFile)
	}

	user, err := h.users.UpdateAvatar(c.Request().Context(), currentUserID, url)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers queries the user search mirror
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing query")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	docs, err := h.index.SearchUsers(c.Request().Context(), query, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": docs})
}

// GetFollowers lists the users following :id
func (h *UserHandler) GetFollowers(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	users, err := h.follows.Followers(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": toCompact(users)})
}

// GetFollowing lists the users :id follows
func (h *UserHandler) GetFollowing(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	users, err := h.follows.Following(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": toCompact(users)})
}

func toCompact(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}
