package aigateway

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPError maps gateway failures onto the statuses the counter application
// expects: 429 for rate limits, 402 for exhausted credits, 503 when no key
// is configured, 502 for everything else.
func HTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "Limite de requêtes atteinte, veuillez réessayer.")
	case errors.Is(err, ErrPaymentRequired):
		return echo.NewHTTPError(http.StatusPaymentRequired, "Crédits insuffisants.")
	case errors.Is(err, ErrNotConfigured):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service d'analyse indisponible.")
	default:
		return echo.NewHTTPError(http.StatusBadGateway, "Le service d'analyse a renvoyé une réponse invalide.")
	}
}
