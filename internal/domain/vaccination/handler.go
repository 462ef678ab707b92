package vaccination

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the vaccination analysis over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a vaccination handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes binds vaccination routes to the given group. The optional
// listing middleware (ETag, response cache) applies only to the static
// schedule listing.
func (h *Handler) RegisterRoutes(g *echo.Group, listing ...echo.MiddlewareFunc) {
	g.GET("/vaccines", h.ListVaccines, listing...)
	g.POST("/analyze", h.Analyze)
}

// vaccineView is one schedule entry in the catalog listing.
type vaccineView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
	DueAge   string `json:"due_age"`
}

// ListVaccines handles GET /vaccinations/vaccines.
func (h *Handler) ListVaccines(c echo.Context) error {
	out := make([]vaccineView, 0, len(Schedule()))
	for _, r := range Schedule() {
		out = append(out, vaccineView{
			ID:       r.ID,
			Label:    r.Label,
			Category: r.Category,
			DueAge:   r.DueAge,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": out})
}

// Analyze handles POST /vaccinations/analyze.
func (h *Handler) Analyze(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Age == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "age is required")
	}
	if *req.Age < 0 || *req.Age > 120 {
		return echo.NewHTTPError(http.StatusBadRequest, "age must be between 0 and 120")
	}

	analysis := h.service.Analyze(c.Request().Context(), *req.Age, req.Completed, req.Sex, req.Pregnant)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    analysis,
	})
}
