package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/shared/response"
)

// RequireAdmin checks the role attached by Auth. A valid credential with
// a non-admin role gets 403, not 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok || role != "admin" {
			response.ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", "admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
