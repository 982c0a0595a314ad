package handlers

import (
	"errors"
	"net/http"

	"github.com/ecovibe/community/backend/internal/middleware"
	"github.com/ecovibe/community/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// principalFromContext retrieves the Principal the auth middleware stored.
func principalFromContext(c echo.Context) (models.Principal, bool) {
	p, ok := c.Get(middleware.PrincipalContextKey).(models.Principal)
	return p, ok
}

// httpError maps domain errors onto HTTP status codes. Anything outside the taxonomy
// is an internal error.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, models.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrQuotaExceeded):
		return echo.NewHTTPError(http.StatusTooManyRequests, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
