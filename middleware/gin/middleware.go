package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/middleware"
)

// ValidateJSON validates request JSON through a fresh form from build, stores
// the final snapshot in the request context, and on validation failure
// responds 400 with the error bundle and aborts the chain.
func ValidateJSON(build middleware.Builder) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, errs, err := middleware.ValidateBody(c.Request.Context(), build, c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		if len(errs) > 0 {
			c.JSON(http.StatusBadRequest, middleware.ErrorPayload(errs))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithValues(c.Request.Context(), values))
		c.Next()
	}
}

// GetValues fetches the validated snapshot from gin.Context.
func GetValues(c *gin.Context) (goform.Values, bool) {
	return middleware.ValuesFromContext(c.Request.Context())
}
