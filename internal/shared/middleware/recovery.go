package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookreview-backend/internal/shared/response"
)

// Recovery turns a handler panic into a 500 response instead of a
// dropped connection. The panic value and stack stay in the logs; the
// client gets the same generic envelope every other 500 uses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.InternalServerError(c, "something went wrong")
				c.Abort()
			}
		}()

		c.Next()
	}
}
