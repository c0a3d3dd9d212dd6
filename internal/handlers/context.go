package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/photoshare-app/backend/internal/errs"
	"github.com/photoshare-app/backend/internal/models"
	"github.com/photoshare-app/backend/internal/services"
)

// getUserIDFromContext returns the authenticated user's id, or 0 when the
// request carries no identity.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// respondError translates service errors into HTTP responses. Structured
// errors keep their {code, msg} body; everything else is a 500.
func respondError(c echo.Context, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return c.JSON(statusForCode(e.Code), e)
	}
	if errors.Is(err, services.ErrSelfFollow) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func statusForCode(code int) int {
	switch code {
	case errs.CodeNotAuthenticated, errs.CodeLoginFailed:
		return http.StatusUnauthorized
	case errs.CodeAlreadyExists:
		return http.StatusConflict
	case errs.CodeNotFound, errs.CodeAlreadyDeleted:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
