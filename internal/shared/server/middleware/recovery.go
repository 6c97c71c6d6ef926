package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"applicant-tracker/internal/shared/server/respond"
	"applicant-tracker/internal/shared/telemetry"
)

// Recovery recovers from panics and answers with a plain 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				respond.Text(c, http.StatusInternalServerError, "internal", "Internal Server Error")
			}
		}()
		c.Next()
	}
}
