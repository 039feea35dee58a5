package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/middleware"
)

// ValidateJSON validates request JSON through a fresh form from build, stores
// the final snapshot in context on success, or returns 400 with the error
// bundle when validation fails.
func ValidateJSON(build middleware.Builder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			values, errs, err := middleware.ValidateBody(c.Request().Context(), build, c.Request().Body)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			if len(errs) > 0 {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(errs))
			}
			ctx := middleware.ContextWithValues(c.Request().Context(), values)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValues fetches the validated snapshot from echo.Context.
func GetValues(c echo.Context) (goform.Values, bool) {
	return middleware.ValuesFromContext(c.Request().Context())
}
