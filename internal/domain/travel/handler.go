package travel

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/officura/officura/internal/platform/aigateway"
)

// Handler exposes the travel lookups over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a travel handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes binds travel routes to the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/recommendations", h.Recommendations)
	g.POST("/countries/search", h.SearchCountries)
	g.POST("/summary", h.Summary)
}

// Recommendations handles POST /travel/recommendations.
func (h *Handler) Recommendations(c echo.Context) error {
	var req RecommendationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Country) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "country is required")
	}

	recs, err := h.service.Recommendations(c.Request().Context(), req.Country)
	if err != nil {
		return aigateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": recs})
}

// SearchCountries handles POST /travel/countries/search.
func (h *Handler) SearchCountries(c echo.Context) error {
	var req CountrySearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	countries, err := h.service.SearchCountries(c.Request().Context(), req.SearchTerm)
	if err != nil {
		return aigateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "countries": countries})
}

// Summary handles POST /travel/summary.
func (h *Handler) Summary(c echo.Context) error {
	var req SummaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Country) == "" || req.TravelData == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "country and travelData are required")
	}

	summary, err := h.service.Summary(c.Request().Context(), req.Country, req.TravelData)
	if err != nil {
		return aigateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": summary})
}
