package medication

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/officura/officura/internal/platform/aigateway"
	"github.com/officura/officura/pkg/pagination"
)

// Handler exposes the medication catalog and lookups over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a medication handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes binds medication routes to the given group. The optional
// listing middleware (ETag, response cache) applies only to the catalog
// search, never to the gateway-backed lookups.
func (h *Handler) RegisterRoutes(g *echo.Group, listing ...echo.MiddlewareFunc) {
	g.GET("", h.SearchCatalog, listing...)
	g.POST("/info", h.Info)
	g.POST("/interactions", h.Interactions)
	g.POST("/phyto-interactions", h.PhytoInteractions)
	g.POST("/dosage", h.Dosage)
	g.POST("/equivalence", h.Equivalence)
}

// SearchCatalog handles GET /medications?q=.
func (h *Handler) SearchCatalog(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	matches := h.service.Search(q)
	params := pagination.FromContext(c)
	start, end := params.Slice(len(matches))
	return c.JSON(http.StatusOK, pagination.NewResponse(matches[start:end], len(matches), params.Limit, params.Offset))
}

// Info handles POST /medications/info.
func (h *Handler) Info(c echo.Context) error {
	var req InfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.MedicationName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "medicationName is required")
	}
	if req.Mode == "" {
		req.Mode = ModeContraindications
	}

	report, err := h.service.Info(c.Request().Context(), req.MedicationName, req.Mode)
	if err != nil {
		if errors.Is(err, ErrUnknownMode) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown info mode")
		}
		return aigateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": report})
}

// Interactions handles POST /medications/interactions.
func (h *Handler) Interactions(c echo.Context) error {
	var req InteractionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Medication1) == "" || strings.TrimSpace(req.Medication2) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "medication1 and medication2 are required")
	}

	report, err := h.service.Interactions(c.Request().Context(), req.Medication1, req.Medication2)
	if err != nil {
		return aigateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": report})
}

// PhytoInteractions handles POST /medications/phyto-interactions.
func (h *Handler) PhytoInteractions(c echo.Context) error {
	var req PhytoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Medication) == "" || strings.TrimSpace(req.Plant) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "medication and plant are required")
	}

	report, err := h.service.PhytoInteractions(c.Request().Context(), req.Medication, req.Plant)
	if err != nil {
		return aigateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": report})
}

// Dosage handles POST /medications/dosage.
func (h *Handler) Dosage(c echo.Context) error {
	var req NameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.MedicationName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "medicationName is required")
	}

	result, err := h.service.Dosage(c.Request().Context(), req.MedicationName)
	if err != nil {
		return aigateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": result})
}

// Equivalence handles POST /medications/equivalence.
func (h *Handler) Equivalence(c echo.Context) error {
	var req NameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.MedicationName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "medicationName is required")
	}

	result, err := h.service.Equivalence(c.Request().Context(), req.MedicationName)
	if err != nil {
		return aigateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": result})
}
