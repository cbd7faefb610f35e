package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout bounds every request's context by the duration timeout returns at
// the start of the request. Zero disables the bound.
func Timeout(timeout func() time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := timeout()
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
