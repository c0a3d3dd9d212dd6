package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/photoshare-app/backend/pkg/geocode"
)

// GeocodeHandler proxies place-name suggestion queries
type GeocodeHandler struct {
	client geocode.Client
}

// NewGeocodeHandler creates a new GeocodeHandler
func NewGeocodeHandler(client geocode.Client) *GeocodeHandler {
	return &GeocodeHandler{client: client}
}

// RegisterGeocodeRoutes registers geocoding routes
func (h *GeocodeHandler) RegisterGeocodeRoutes(g *echo.Group) {
	g.GET("/locations/suggestions", h.Suggestions)
}

// Suggestions returns up to top_n address suggestions for a text query
func (h *GeocodeHandler) Suggestions(c echo.Context) error {
	if getUserIDFromContext(c) == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	text := c.QueryParam("text")
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing text")
	}
	topN, _ := strconv.Atoi(c.QueryParam("top_n"))
	if topN < 1 || topN > 15 {
		topN = 5
	}

	addresses, err := h.client.Suggestions(c.Request().Context(), text, topN)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	locations := make([]geocode.Location, len(addresses))
	for i, a := range addresses {
		locations[i] = geocode.ParseAddress(a)
	}
	return c.JSON(http.StatusOK, echo.Map{"locations": locations})
}
