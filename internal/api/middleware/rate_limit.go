package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianccgg/letranido-backend/pkg/redis"
	"github.com/cristianccgg/letranido-backend/pkg/response"
)

// RateLimit applies a redis sliding window per client IP and route.
// With rdb nil (redis unavailable) requests pass through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Redis trouble must not take the endpoint down.
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "Demasiadas solicitudes, intenta de nuevo en unos minutos")
			c.Abort()
			return
		}

		c.Next()
	}
}
