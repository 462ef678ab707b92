package screening

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the questionnaire engine over HTTP.
type Handler struct {
	registry *Registry
}

// NewHandler creates a screening handler backed by the given registry.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes binds screening routes to the given group. The optional listing
// middleware (ETag, response cache) applies only to the static variant
// listing, never to session state.
func (h *Handler) RegisterRoutes(g *echo.Group, listing ...echo.MiddlewareFunc) {
	g.GET("/variants", h.ListVariants, listing...)
	g.POST("", h.CreateSession)
	g.GET("/:id", h.GetSession)
	g.POST("/:id/answer", h.AnswerSession)
	g.POST("/:id/age", h.AnswerAgeSession)
	g.POST("/:id/reset", h.ResetSession)
}

// variantView describes one questionnaire in the variant listing.
type variantView struct {
	Variant    string `json:"variant"`
	Title      string `json:"title"`
	TotalSteps int    `json:"total_steps"`
	Scored     bool   `json:"scored"`
}

// ageOptionView is one selectable age range.
type ageOptionView struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// sessionView is the wire representation of a session.
type sessionView struct {
	ID         string          `json:"id"`
	Variant    string          `json:"variant"`
	Title      string          `json:"title"`
	Phase      Phase           `json:"phase"`
	Step       int             `json:"step"`
	TotalSteps int             `json:"total_steps"`
	Question   string          `json:"question,omitempty"`
	AgeOptions []ageOptionView `json:"age_options,omitempty"`
	Score      *int            `json:"score,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
	Outcome    *Outcome        `json:"outcome,omitempty"`
}

func newSessionView(s *Session) sessionView {
	def, err := Lookup(s.Variant)
	if err != nil {
		// Registry only stores known variants.
		return sessionView{ID: s.ID, Variant: s.Variant}
	}

	step, total := CurrentStep(def, s.State)
	view := sessionView{
		ID:         s.ID,
		Variant:    def.Variant,
		Title:      def.Title,
		Phase:      s.State.Phase,
		Step:       step,
		TotalSteps: total,
		Question:   CurrentQuestion(def, s.State),
		Warnings:   s.State.Warnings,
		Outcome:    s.State.Outcome,
	}

	if s.State.Phase == PhaseAge {
		for _, b := range def.AgeBuckets {
			view.AgeOptions = append(view.AgeOptions, ageOptionView{Label: b.Label, Value: b.Value})
		}
	}
	if def.Scored() && (s.State.Phase == PhaseScoring || s.State.Phase == PhaseAge) {
		score := s.State.Score
		view.Score = &score
	}
	return view
}

// ListVariants handles GET /screenings/variants.
func (h *Handler) ListVariants(c echo.Context) error {
	out := make([]variantView, 0, len(Variants()))
	for _, d := range Variants() {
		out = append(out, variantView{
			Variant:    d.Variant,
			Title:      d.Title,
			TotalSteps: d.TotalSteps(),
			Scored:     d.Scored(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": out})
}

type createSessionRequest struct {
	Variant string `json:"variant"`
}

// CreateSession handles POST /screenings.
func (h *Handler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Variant == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "variant is required")
	}

	s, err := h.registry.Create(req.Variant)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, newSessionView(s))
}

// GetSession handles GET /screenings/:id.
func (h *Handler) GetSession(c echo.Context) error {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, newSessionView(s))
}

type answerRequest struct {
	Answer *bool `json:"answer"`
}

// AnswerSession handles POST /screenings/:id/answer.
func (h *Handler) AnswerSession(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Answer == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "answer is required")
	}

	s, err := h.registry.Answer(c.Param("id"), *req.Answer)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, newSessionView(s))
}

type ageRequest struct {
	Value string `json:"value"`
}

// AnswerAgeSession handles POST /screenings/:id/age.
func (h *Handler) AnswerAgeSession(c echo.Context) error {
	var req ageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "value is required")
	}

	s, err := h.registry.AnswerAge(c.Param("id"), req.Value)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, newSessionView(s))
}

// ResetSession handles POST /screenings/:id/reset.
func (h *Handler) ResetSession(c echo.Context) error {
	s, err := h.registry.Reset(c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, newSessionView(s))
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	case errors.Is(err, ErrUnknownVariant):
		return echo.NewHTTPError(http.StatusBadRequest, "unknown variant")
	case errors.Is(err, ErrRunTerminated):
		return echo.NewHTTPError(http.StatusConflict, "run already terminated")
	case errors.Is(err, ErrAwaitingAge):
		return echo.NewHTTPError(http.StatusBadRequest, "age answer expected")
	case errors.Is(err, ErrNotAgeStep):
		return echo.NewHTTPError(http.StatusBadRequest, "not at the age step")
	case errors.Is(err, ErrUnknownAgeBucket):
		return echo.NewHTTPError(http.StatusBadRequest, "unknown age bucket")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
