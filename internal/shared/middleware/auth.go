package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/jwt"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// Auth resolves the caller's identity from the bearer token.
// On any failure it responds 401 and halts; on success the resolved
// userID and role are attached to the request context.
func Auth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read token from the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify and parse the JWT
		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			c.Abort()
			return
		}

		// 4. Attach identity to context for downstream use
		c.Set(ContextUserID, userID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// UserIDFromContext returns the authenticated user's id set by Auth.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// RoleFromContext returns the authenticated user's role set by Auth.
func RoleFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// AbortIfUnauthenticated is shared by handlers that require Auth to have run.
func AbortIfUnauthenticated(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := UserIDFromContext(c)
	if !ok {
		response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		c.Abort()
		return uuid.Nil, false
	}
	return userID, true
}
