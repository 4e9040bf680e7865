// internal/middleware/rate_limit.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slabdesk/slabdesk-backend/internal/limiter"
	"github.com/slabdesk/slabdesk-backend/internal/utils"
)

// RateLimit throttles by client IP against the given store. Store errors
// (e.g. Redis unavailable) fail open so a degraded limiter does not take
// the API down with it.
func RateLimit(store limiter.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := store.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logrus.WithError(err).Warn("Rate limiter store unavailable")
			c.Next()
			return
		}

		if !allowed {
			utils.TooManyRequestsResponse(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
